package mapper

import (
	"net/http"

	"github.com/zlovtnik/rclabsAPI-sub003/internal/types/response"
	"github.com/zlovtnik/rclabsAPI-sub003/pkg/validate"
)

// Write copies resp onto w.
func Write(w http.ResponseWriter, resp *response.HTTPResponse) {
	resp.WriteTo(w)
}

// WriteError maps err and writes the result onto w.
func (m *Mapper) WriteError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	m.Map(r.Context(), err, operation).WriteTo(w)
}

// WriteValidation writes a failed validation result onto w.
func (m *Mapper) WriteValidation(w http.ResponseWriter, r *http.Request, result validate.Result, operation string) {
	m.FromValidationResult(r.Context(), result, operation).WriteTo(w)
}
