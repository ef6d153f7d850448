package config

import "strings"

// TelemetryConfig controls tracing export and the Prometheus endpoint.
type TelemetryConfig struct {
	// OTLPEndpoint is the collector address (host:port or URL). Empty keeps
	// tracing in-process: spans still carry trace IDs into logs but are not exported.
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	OTLPInsecure bool   `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"false"`
	ServiceName  string `env:"OTEL_SERVICE_NAME"           envDefault:"straycare"`

	// MetricsPath is where Prometheus metrics are served. Empty disables the endpoint.
	MetricsPath string `env:"METRICS_PATH" envDefault:"/metrics"`
}

// Sanitize applies guardrails to telemetry configuration values.
func (t *TelemetryConfig) Sanitize() {
	t.OTLPEndpoint = strings.TrimSpace(t.OTLPEndpoint)
	t.ServiceName = strings.TrimSpace(t.ServiceName)
	if t.ServiceName == "" {
		t.ServiceName = "straycare"
	}
	t.MetricsPath = strings.TrimSpace(t.MetricsPath)
	if t.MetricsPath != "" && !strings.HasPrefix(t.MetricsPath, "/") {
		t.MetricsPath = "/" + t.MetricsPath
	}
}
