package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"github.com/zlovtnik/rclabsAPI-sub003/internal/svc"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/types/errorx"
	"github.com/zlovtnik/rclabsAPI-sub003/pkg/validate"
)

// parseRequest fills req from r and validates it. On failure the error
// response is already written and false is returned.
func parseRequest(w http.ResponseWriter, r *http.Request, svcCtx *svc.ServiceContext, req any, operation string) bool {
	if err := httpx.Parse(r, req); err != nil {
		ex := errorx.NewValidationError(errorx.CodeMalformedRequest, "request could not be parsed", "", "", nil).
			WithCause(err).
			WithContext(r.Context())
		svcCtx.Mapper.WriteError(w, r, ex, operation)
		return false
	}

	if result := validate.Check(r.Context(), req); !result.IsValid {
		svcCtx.Mapper.WriteValidation(w, r, result, operation)
		return false
	}
	return true
}
