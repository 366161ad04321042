package obs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/farmer-shop/internal/obs"
)

func TestInitTracerNoneExporter(t *testing.T) {
	shutdown, err := obs.InitTracer(context.Background(), obs.TracingConfig{ServiceName: "shop-api", Exporter: "none"})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestInitTracerUnsupportedExporter(t *testing.T) {
	_, err := obs.InitTracer(context.Background(), obs.TracingConfig{ServiceName: "shop-api", Exporter: "zipkin"})
	require.Error(t, err)
}
