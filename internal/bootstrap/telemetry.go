package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/straycare/straycare/config"
	"github.com/straycare/straycare/internal/telemetry"
)

// InitTracing builds the tracer provider and installs it globally.
func InitTracing(ctx context.Context, cfg config.TelemetryConfig, logger *slog.Logger) (*telemetry.Tracing, error) {
	tr, err := telemetry.NewTracing(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	tr.SetGlobal()
	logger.InfoContext(ctx, "tracing initialized",
		"service", cfg.ServiceName,
		"exporting", tr.Exporting,
	)
	return tr, nil
}
