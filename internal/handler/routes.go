package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"

	"github.com/zlovtnik/rclabsAPI-sub003/internal/svc"
)

const apiPrefix = "/api/v1"

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	// correlation first so that recovered panics carry the request id
	server.Use(serverCtx.Correlation)
	server.Use(serverCtx.Recover)

	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodGet,
				Path:    "/health",
				Handler: HealthHandler(serverCtx),
			},
		},
	)

	server.AddRoutes(
		rest.WithMiddlewares(
			[]rest.Middleware{serverCtx.Limit},
			[]rest.Route{
				{
					Method:  http.MethodPost,
					Path:    "/auth/token",
					Handler: IssueTokenHandler(serverCtx),
				},
				{
					Method:  http.MethodGet,
					Path:    "/errors/codes",
					Handler: ListErrorCodesHandler(serverCtx),
				},
			}...,
		),
		rest.WithPrefix(apiPrefix),
	)

	server.AddRoutes(
		rest.WithMiddlewares(
			[]rest.Middleware{serverCtx.Limit, serverCtx.Auth},
			[]rest.Route{
				{
					Method:  http.MethodPost,
					Path:    "/jobs",
					Handler: CreateJobHandler(serverCtx),
				},
				{
					Method:  http.MethodGet,
					Path:    "/jobs/:id",
					Handler: GetJobHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/jobs/:id/start",
					Handler: StartJobHandler(serverCtx),
				},
			}...,
		),
		rest.WithPrefix(apiPrefix),
	)
}
