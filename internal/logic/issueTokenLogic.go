package logic

import (
	"context"
	"crypto/subtle"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/zlovtnik/rclabsAPI-sub003/internal/svc"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/types"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/types/errorx"
)

const tokenTypeBearer = "Bearer"

type IssueTokenLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewIssueTokenLogic(ctx context.Context, svcCtx *svc.ServiceContext) *IssueTokenLogic {
	return &IssueTokenLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// IssueToken exchanges client credentials for an access token.
func (l *IssueTokenLogic) IssueToken(req *types.TokenRequest) (*types.TokenResponse, error) {
	secret, ok := l.svcCtx.Config.JWT.Clients[req.ClientID]
	// unknown clients still pay for a comparison
	match := subtle.ConstantTimeCompare([]byte(secret), []byte(req.ClientSecret)) == 1
	if !ok || !match {
		l.Infow("rejected token request", logx.Field("client_id", req.ClientID))
		return nil, errorx.New(errorx.CodeInvalidCredentials, "invalid client credentials").WithContext(l.ctx)
	}

	token, expires, err := l.svcCtx.Tokens.Issue(l.ctx, req.ClientID)
	if err != nil {
		return nil, errorx.Annotate(l.ctx, err)
	}

	return &types.TokenResponse{
		AccessToken: token,
		TokenType:   tokenTypeBearer,
		ExpiresAt:   expires,
	}, nil
}
