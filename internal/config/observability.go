package config

import (
	"github.com/ferdian3456/clubconnect/internal/observability"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

const defaultServiceName = "clubconnect"

func LoadObservabilityConfig(config *koanf.Koanf, log *zap.Logger) observability.Config {
	observabilityConfig := observability.Config{
		OtelEndpoint: config.String("OTEL_EXPORTER_OTLP_ENDPOINT"),
		ServiceName:  config.String("OTEL_SERVICE_NAME"),
		Environment:  config.String("ENVIRONMENT"),
		OtelHeaders:  config.String("OTEL_EXPORTER_OTLP_HEADERS"),
	}

	if observabilityConfig.ServiceName == "" {
		log.Debug("OTEL_SERVICE_NAME is not set, using default", zap.String("service", defaultServiceName))
		observabilityConfig.ServiceName = defaultServiceName
	}

	return observabilityConfig
}
