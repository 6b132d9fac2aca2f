package handler

import (
	"net/http"

	"github.com/zlovtnik/rclabsAPI-sub003/internal/logic"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/svc"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/types/response"
)

func ListErrorCodesHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := logic.NewListErrorCodesLogic(r.Context(), svcCtx)
		response.Success(w, r, l.ListErrorCodes())
	}
}
