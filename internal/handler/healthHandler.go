package handler

import (
	"net/http"

	"github.com/zlovtnik/rclabsAPI-sub003/internal/svc"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/types/response"
)

type healthResponse struct {
	Status string           `json:"status"`
	TLS    bool             `json:"tls"`
	Cert   *tlsCertResponse `json:"cert,omitempty"`
}

type tlsCertResponse struct {
	Subject  string `json:"subject"`
	NotAfter string `json:"notAfter"`
}

func HealthHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok"}
		if svcCtx.TLS != nil {
			info := svcCtx.TLS.CertInfo()
			resp.TLS = true
			resp.Cert = &tlsCertResponse{
				Subject:  info.Subject,
				NotAfter: info.NotAfter.UTC().Format("2006-01-02T15:04:05Z"),
			}
		}
		response.Success(w, r, resp)
	}
}
