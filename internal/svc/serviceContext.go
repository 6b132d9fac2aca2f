package svc

import (
	"net/http"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/rest"

	"github.com/zlovtnik/rclabsAPI-sub003/internal/config"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/errorhandler"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/mapper"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/middleware"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/repository"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/repository/cachex"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/security/jwtkey"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/security/tlsconf"
	"github.com/zlovtnik/rclabsAPI-sub003/pkg/limit"
)

type ServiceContext struct {
	Config config.Config
	Mapper *mapper.Mapper
	Tokens *jwtkey.Manager
	Jobs   repository.Jobs
	// TLS is nil unless TLS is enabled
	TLS *tlsconf.Manager

	Correlation rest.Middleware
	Recover     rest.Middleware
	Auth        rest.Middleware
	// Limit passes everything through unless rate limiting is enabled
	Limit rest.Middleware
}

func NewServiceContext(c config.Config) *ServiceContext {
	m := mapper.New(c.Mapper, mapper.WithReporter(errorhandler.Report))

	tokens, err := jwtkey.New(c.JWT)
	logx.Must(err)

	jobs, err := newJobs(c.Jobs)
	logx.Must(err)

	svcCtx := &ServiceContext{
		Config:      c,
		Mapper:      m,
		Tokens:      tokens,
		Jobs:        jobs,
		Correlation: middleware.NewCorrelationMiddleware().Handle,
		Recover:     middleware.NewRecoverMiddleware(m).Handle,
		Auth:        middleware.NewAuthMiddleware(tokens, m).Handle,
		Limit:       passThrough,
	}

	if c.TLS.Enabled {
		svcCtx.TLS, err = tlsconf.New(c.TLS)
		logx.Must(err)
	}

	if c.RateLimit.Enabled {
		rdb, err := newRedis(c.RateLimit.Redis)
		logx.Must(err)
		// while redis is unreachable later on the limiter falls back to an in-process bucket
		l := limit.NewTokenLimit(c.RateLimit.Rate, c.RateLimit.Burst, rdb, c.RateLimit.Key)
		svcCtx.Limit = middleware.NewLimitMiddleware(l, m).Handle
	}

	return svcCtx
}

func newJobs(c config.JobsConf) (repository.Jobs, error) {
	if c.Redis.Host == "" {
		cache, err := cachex.NewLocalJobCache(0, c.Expire)
		if err != nil {
			return nil, err
		}
		return repository.NewJobs(cache, c.Expire), nil
	}

	rdb, err := newRedis(c.Redis)
	if err != nil {
		return nil, err
	}
	return repository.NewJobs(cachex.NewRedisJobCache(rdb, c.Key), c.Expire), nil
}

func newRedis(c config.RedisConf) (*redis.Redis, error) {
	return redis.NewRedis(redis.RedisConf{
		Host: c.Host,
		Type: c.Type,
		Pass: c.Password,
	})
}

func passThrough(next http.HandlerFunc) http.HandlerFunc {
	return next
}
