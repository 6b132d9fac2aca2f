package handler

import (
	"net/http"

	"github.com/zlovtnik/rclabsAPI-sub003/internal/logic"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/svc"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/types"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/types/response"
)

func CreateJobHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.CreateJobRequest
		if !parseRequest(w, r, svcCtx, &req, "create job") {
			return
		}

		l := logic.NewJobLogic(r.Context(), svcCtx)
		resp, err := l.CreateJob(&req)
		if err != nil {
			svcCtx.Mapper.WriteError(w, r, err, "create job")
		} else {
			response.Created(w, r, resp)
		}
	}
}

func GetJobHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.JobRequest
		if !parseRequest(w, r, svcCtx, &req, "get job") {
			return
		}

		l := logic.NewJobLogic(r.Context(), svcCtx)
		resp, err := l.GetJob(&req)
		if err != nil {
			svcCtx.Mapper.WriteError(w, r, err, "get job")
		} else {
			response.Success(w, r, resp)
		}
	}
}

func StartJobHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.JobRequest
		if !parseRequest(w, r, svcCtx, &req, "start job") {
			return
		}

		l := logic.NewJobLogic(r.Context(), svcCtx)
		resp, err := l.StartJob(&req)
		if err != nil {
			svcCtx.Mapper.WriteError(w, r, err, "start job")
		} else {
			response.Success(w, r, resp)
		}
	}
}
