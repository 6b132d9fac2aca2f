package logic

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/zlovtnik/rclabsAPI-sub003/internal/repository"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/svc"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/types"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/types/errorx"
)

type JobLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewJobLogic(ctx context.Context, svcCtx *svc.ServiceContext) *JobLogic {
	return &JobLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// CreateJob registers a pending job. Names are unique among active jobs.
func (l *JobLogic) CreateJob(req *types.CreateJobRequest) (*types.JobResponse, error) {
	now := time.Now().UTC()
	job := &repository.Job{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Source:    req.Source,
		Target:    req.Target,
		Schedule:  req.Schedule,
		State:     repository.JobPending,
		CreatedBy: l.user(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := l.svcCtx.Jobs.Create(l.ctx, job); err != nil {
		return nil, l.wrap(err, "create job")
	}

	l.Infow("job created", logx.Field("job_id", job.ID), logx.Field("name", job.Name))
	return toJobResponse(job), nil
}

func (l *JobLogic) GetJob(req *types.JobRequest) (*types.JobResponse, error) {
	job, err := l.svcCtx.Jobs.Get(l.ctx, req.ID)
	if err != nil {
		return nil, l.wrap(err, "get job")
	}
	return toJobResponse(job), nil
}

// StartJob moves a pending job to running.
func (l *JobLogic) StartJob(req *types.JobRequest) (*types.JobResponse, error) {
	job, err := l.svcCtx.Jobs.Update(l.ctx, req.ID, func(job *repository.Job) error {
		switch job.State {
		case repository.JobPending:
			now := time.Now().UTC()
			job.State = repository.JobRunning
			job.StartedAt = &now
			return nil
		case repository.JobRunning:
			return errorx.CreateBusinessError(errorx.CodeJobAlreadyRunning, "start job",
				"job "+job.ID+" is already running")
		default:
			ex := errorx.CreateBusinessError(errorx.CodeInvalidJobState, "start job",
				"job "+job.ID+" cannot be started from state "+string(job.State))
			ex.AddContext("state", string(job.State))
			return ex
		}
	})
	if err != nil {
		return nil, l.wrap(err, "start job")
	}

	l.Infow("job started", logx.Field("job_id", job.ID))
	return toJobResponse(job), nil
}

func (l *JobLogic) user() string {
	user, _ := l.ctx.Value(errorx.UserIDKey).(string)
	return user
}

// wrap keeps exceptions from lower layers and classifies anything else.
func (l *JobLogic) wrap(err error, operation string) error {
	if _, ok := errorx.AsException(err); ok {
		return errorx.Annotate(l.ctx, err)
	}
	return errorx.Wrap(err, errorx.CodeInternalError, operation+" failed").WithContext(l.ctx)
}

func toJobResponse(job *repository.Job) *types.JobResponse {
	return &types.JobResponse{
		ID:        job.ID,
		Name:      job.Name,
		Source:    job.Source,
		Target:    job.Target,
		Schedule:  job.Schedule,
		State:     string(job.State),
		CreatedBy: job.CreatedBy,
		CreatedAt: job.CreatedAt,
		UpdatedAt: job.UpdatedAt,
		StartedAt: job.StartedAt,
	}
}
