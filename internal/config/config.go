package config

import (
	"time"

	"github.com/zeromicro/go-zero/rest"
)

type Config struct {
	rest.RestConf

	Mapper       MapperConf
	ErrorHandler ErrorHandlerConf
	RateLimit    RateLimitConf
	TLS          TLSConf
	JWT          JWTConf
	Jobs         JobsConf
}

// MapperConf drives how errors are rendered as HTTP responses.
// The whole value is replaced on update, fields are never merged.
type MapperConf struct {
	DefaultStatus          int    `json:",default=500"`
	IncludeStackTrace      bool   `json:",optional"`
	IncludeInternalDetails bool   `json:",optional"`
	ServerHeader           string `json:",default=etlgateway"`
	CorsOrigin             string `json:",default=*"`
	KeepAlive              bool   `json:",default=true"`
}

type ErrorHandlerConf struct {
	BufferSize      int           `json:",default=1024"`
	MaxWorkers      int           `json:",default=4"`
	ShutdownTimeout time.Duration `json:",default=5s"`
}

type RedisConf struct {
	Host     string
	Password string `json:",optional"`
	Type     string `json:",default=node,options=node|cluster"`
}

type RateLimitConf struct {
	Enabled bool      `json:",optional"`
	Rate    int       `json:",default=100"`
	Burst   int       `json:",default=200"`
	Key     string    `json:",default=etlgateway:ratelimit"`
	Redis   RedisConf `json:",optional"`
}

type TLSConf struct {
	Enabled      bool   `json:",optional"`
	CertFile     string `json:",optional"`
	KeyFile      string `json:",optional"`
	ClientCAFile string `json:",optional"`
	MinVersion   string `json:",default=1.2,options=1.2|1.3"`
}

type JWTConf struct {
	Issuer    string        `json:",default=etlgateway"`
	TTL       time.Duration `json:",default=1h"`
	ActiveKey string
	// Keys maps key ids to HMAC secrets
	Keys map[string]string
	// Clients maps client ids to client secrets allowed to request tokens
	Clients map[string]string `json:",optional"`
}

// JobsConf selects the job store. With Redis.Host set jobs are shared
// through redis, otherwise they live in process memory.
type JobsConf struct {
	Expire time.Duration `json:",default=24h"`
	Key    string        `json:",default=etlgateway:jobs"`
	Redis  RedisConf     `json:",optional"`
}
