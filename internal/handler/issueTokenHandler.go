package handler

import (
	"net/http"

	"github.com/zlovtnik/rclabsAPI-sub003/internal/logic"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/svc"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/types"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/types/response"
)

func IssueTokenHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.TokenRequest
		if !parseRequest(w, r, svcCtx, &req, "issue token") {
			return
		}

		l := logic.NewIssueTokenLogic(r.Context(), svcCtx)
		resp, err := l.IssueToken(&req)
		if err != nil {
			svcCtx.Mapper.WriteError(w, r, err, "issue token")
		} else {
			response.Success(w, r, resp)
		}
	}
}
