package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/board-api/config"
)

func TestInitDisabledIsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), &config.Config{})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitEnabledBuildsProvider(t *testing.T) {
	cfg := &config.Config{
		App:     config.AppConfig{Version: "1.0.0", Env: "test"},
		Tracing: config.TracingConfig{Enabled: true, Endpoint: "localhost:4318", Insecure: true, ServiceName: "board-api-test"},
	}
	// otlptracehttp.New 不会立即建立连接
	shutdown, err := Init(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}
