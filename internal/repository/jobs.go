//go:generate mockgen -source=$GOFILE -destination=./mock/jobs_mock.go -package=repository

package repository

import (
	"context"
	"sync"
	"time"

	"github.com/zeromicro/go-zero/core/jsonx"
	"github.com/zeromicro/go-zero/core/syncx"

	"github.com/zlovtnik/rclabsAPI-sub003/internal/repository/cachex"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/types/errorx"
)

type JobState string

const (
	JobPending   JobState = "pending"
	JobRunning   JobState = "running"
	JobSucceeded JobState = "succeeded"
	JobFailed    JobState = "failed"
)

// Active reports whether a job in state s still occupies its name.
func (s JobState) Active() bool {
	return s == JobPending || s == JobRunning
}

type Job struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Source    string     `json:"source"`
	Target    string     `json:"target"`
	Schedule  string     `json:"schedule,omitempty"`
	State     JobState   `json:"state"`
	CreatedBy string     `json:"createdBy,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	StartedAt *time.Time `json:"startedAt,omitempty"`
}

type Jobs interface {
	// Create stores a new job. A job whose name is held by an active job
	// fails with JOB_ALREADY_RUNNING.
	Create(ctx context.Context, job *Job) error
	// Get fails with JOB_NOT_FOUND for unknown ids.
	Get(ctx context.Context, id string) (*Job, error)
	// Update applies fn to the stored job and saves the result unless fn fails.
	Update(ctx context.Context, id string, fn func(job *Job) error) (*Job, error)
}

func NewJobs(cache cachex.JobCache, ttl time.Duration) Jobs {
	return &jobs{cache: cache, ttl: ttl, flight: syncx.NewSingleFlight()}
}

type jobs struct {
	// serializes read-modify-write cycles of this instance
	mu     sync.Mutex
	cache  cachex.JobCache
	ttl    time.Duration
	// concurrent reads of one id share a single cache round trip
	flight syncx.SingleFlight
}

func idKey(id string) string     { return "id:" + id }
func nameKey(name string) string { return "name:" + name }

func (s *jobs) Create(ctx context.Context, job *Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if holderID, ok, err := s.cache.Get(ctx, nameKey(job.Name)); err != nil {
		return err
	} else if ok {
		holder, err := s.load(ctx, holderID)
		if err != nil && !errorx.Is(err, errorx.CodeJobNotFound) {
			return err
		}
		if holder != nil && holder.State.Active() {
			return errorx.NewBusinessError(errorx.CodeJobAlreadyRunning,
				"a job with this name is already active", "create job", map[string]string{
					"job_id": holder.ID,
					"name":   job.Name,
				})
		}
	}

	if err := s.save(ctx, job); err != nil {
		return err
	}
	return s.cache.Set(ctx, nameKey(job.Name), job.ID, s.ttl)
}

func (s *jobs) Get(ctx context.Context, id string) (*Job, error) {
	v, err := s.flight.Do(idKey(id), func() (any, error) {
		return s.load(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	// callers may modify their copy
	job := *v.(*Job)
	return &job, nil
}

func (s *jobs) Update(ctx context.Context, id string, fn func(job *Job) error) (*Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(job); err != nil {
		return nil, err
	}
	job.UpdatedAt = time.Now().UTC()

	if err := s.save(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *jobs) load(ctx context.Context, id string) (*Job, error) {
	raw, ok, err := s.cache.Get(ctx, idKey(id))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errorx.NewBusinessError(errorx.CodeJobNotFound, "job not found", "get job",
			map[string]string{"job_id": id})
	}

	var job Job
	if err := jsonx.UnmarshalFromString(raw, &job); err != nil {
		return nil, errorx.NewSystemError(errorx.CodeInternalError, "stored job is corrupt", "job store",
			map[string]string{"job_id": id}).WithCause(err)
	}
	return &job, nil
}

func (s *jobs) save(ctx context.Context, job *Job) error {
	raw, err := jsonx.MarshalToString(job)
	if err != nil {
		return errorx.NewSystemError(errorx.CodeInternalError, "encode job failed", "job store",
			map[string]string{"job_id": job.ID}).WithCause(err)
	}
	return s.cache.Set(ctx, idKey(job.ID), raw, s.ttl)
}
