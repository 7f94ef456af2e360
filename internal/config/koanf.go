package config

import (
	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

// ServerKeys must be present before the API server can start.
var ServerKeys = []string{
	"GO_SERVER",
	"POSTGRES_URL",
	"REDIS_URL",
	"JWT_SECRET_KEY",
	"MINIO_URL",
	"MINIO_BUCKET_NAME",
}

func NewKoanf(log *zap.Logger, requiredKeys ...string) *koanf.Koanf {
	k := koanf.New(".")

	// .env is optional, containers get their values from the environment
	err := k.Load(file.Provider(".env"), dotenv.Parser())
	if err != nil {
		log.Debug(".env file not found, using environment variables", zap.Error(err))
	}

	// environment wins over .env
	err = k.Load(env.Provider("", ".", nil), nil)
	if err != nil {
		log.Fatal("failed to load environment variables", zap.Error(err))
	}

	for _, key := range requiredKeys {
		if k.String(key) == "" {
			log.Fatal("missing required configuration", zap.String("key", key))
		}
	}

	return k
}
