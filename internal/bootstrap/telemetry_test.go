package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/straycare/straycare/config"
)

func TestInitTracingInstallsGlobalProvider(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tr, err := InitTracing(context.Background(), config.TelemetryConfig{ServiceName: "straycare-test"}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tr.Shutdown(context.Background()) })

	assert.False(t, tr.Exporting)
	assert.Same(t, tr.Provider, otel.GetTracerProvider())
}
