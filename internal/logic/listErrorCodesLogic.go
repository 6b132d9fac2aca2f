package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/zlovtnik/rclabsAPI-sub003/internal/svc"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/types"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/types/errorx"
)

type ListErrorCodesLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewListErrorCodesLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ListErrorCodesLogic {
	return &ListErrorCodesLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// ListErrorCodes returns the registry in code order.
func (l *ListErrorCodesLogic) ListErrorCodes() *types.ErrorCodesResponse {
	codes := errorx.AllCodes()
	resp := &types.ErrorCodesResponse{Codes: make([]types.ErrorCodeInfo, 0, len(codes))}

	for _, code := range codes {
		info, _ := errorx.LookupCode(code)
		resp.Codes = append(resp.Codes, types.ErrorCodeInfo{
			Code:        int(code),
			Name:        info.Name,
			Description: info.Description,
			Category:    info.Category,
			Retryable:   info.Retryable,
			HTTPStatus:  info.HTTPStatus,
		})
	}
	return resp
}
