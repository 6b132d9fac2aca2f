package response

import (
	"net/http"
	"slices"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"
)

const (
	HeaderServer        = "Server"
	HeaderContentType   = "Content-Type"
	HeaderAllowOrigin   = "Access-Control-Allow-Origin"
	HeaderConnection    = "Connection"
	HeaderCorrelationID = "X-Correlation-ID"

	ContentTypeJSON = "application/json"
	ContentTypeText = "text/plain; charset=utf-8"
)

// Response is the envelope of successful API responses.
type Response struct {
	Msg  string `json:"msg"`
	Code int    `json:"code"`
	Data any    `json:"data,omitempty"` // omitted when empty
}

// HTTPResponse is a fully built response: status, headers and body bytes.
type HTTPResponse struct {
	Status int
	Header http.Header
	Body   []byte
}

// WriteTo copies the response onto w. Headers of the response replace
// any value already set on w under the same key.
func (r *HTTPResponse) WriteTo(w http.ResponseWriter) {
	for k, vs := range r.Header {
		w.Header()[k] = slices.Clone(vs)
	}

	status := r.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)

	if _, err := w.Write(r.Body); err != nil {
		logx.Errorw("write response body failed", logx.Field("err", err))
	}
}

// Success writes data in the success envelope.
func Success(w http.ResponseWriter, r *http.Request, data any) {
	httpx.WriteJsonCtx(r.Context(), w, http.StatusOK, Response{
		Msg:  "success",
		Code: http.StatusOK,
		Data: data,
	})
}

// Created writes data in the success envelope with status 201.
func Created(w http.ResponseWriter, r *http.Request, data any) {
	httpx.WriteJsonCtx(r.Context(), w, http.StatusCreated, Response{
		Msg:  "created",
		Code: http.StatusCreated,
		Data: data,
	})
}
