package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/zeromicro/go-zero/core/logx"
)

const (
	envKey     = "APP_ENV"
	defaultEnv = "dev"
)

// LoadEnv loads .env and then .env.<APP_ENV> from the working directory,
// later files overriding earlier ones. Missing files are skipped so that
// deployments can rely on the real environment alone.
func LoadEnv() {
	loadEnvFile(".env")

	env := os.Getenv(envKey)
	if env == "" {
		env = defaultEnv
		logx.Infof("%s not set, defaulting to: %s", envKey, env)
	}

	loadEnvFile(".env." + env)
}

func loadEnvFile(file string) bool {
	err := godotenv.Overload(file)
	switch {
	case err == nil:
		logx.Infow("environment file loaded", logx.Field("file", file))
		return true
	case errors.Is(err, fs.ErrNotExist):
		logx.Debugw("environment file not found", logx.Field("file", file))
	default:
		logx.Errorw("load environment file failed", logx.Field("file", file), logx.Field("err", err))
	}
	return false
}
