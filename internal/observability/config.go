package observability

// Config holds the OTLP exporter settings. An empty OtelEndpoint disables export.
type Config struct {
	OtelEndpoint string
	ServiceName  string
	Environment  string
	OtelHeaders  string
}

func (c Config) Enabled() bool {
	return c.OtelEndpoint != ""
}
