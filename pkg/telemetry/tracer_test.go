package telemetry_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/jhoicas/inventario-ledger/pkg/config"
	"github.com/jhoicas/inventario-ledger/pkg/telemetry"
)

// collector simula un receptor OTLP/HTTP y cuenta los envíos a /v1/traces.
func collector(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/v1/traces" {
			hits.Add(1)
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { otel.SetTracerProvider(noop.NewTracerProvider()) })
	return srv, &hits
}

func exportOneSpan(t *testing.T, endpoint string) {
	t.Helper()
	ctx := context.Background()
	shutdown, err := telemetry.Setup(ctx, config.TelemetryConfig{OTLPEndpoint: endpoint, ServiceName: "test"}, "1")
	require.NoError(t, err)

	_, span := otel.Tracer("telemetry_test").Start(ctx, "operacion")
	span.End()
	require.NoError(t, shutdown(ctx))
}

func TestSetup_EndpointComoURL(t *testing.T) {
	srv, hits := collector(t)

	exportOneSpan(t, srv.URL)
	assert.Equal(t, int32(1), hits.Load())
}

func TestSetup_EndpointHostPuerto(t *testing.T) {
	srv, hits := collector(t)

	exportOneSpan(t, strings.TrimPrefix(srv.URL, "http://"))
	assert.Equal(t, int32(1), hits.Load())
}

func TestSetup_EndpointConRutaDeSenal(t *testing.T) {
	srv, hits := collector(t)

	exportOneSpan(t, srv.URL+"/v1/traces")
	assert.Equal(t, int32(1), hits.Load())
}

func TestSetup_SinEndpoint(t *testing.T) {
	shutdown, err := telemetry.Setup(context.Background(), config.TelemetryConfig{}, "1")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_EndpointInvalido(t *testing.T) {
	_, err := telemetry.Setup(context.Background(), config.TelemetryConfig{OTLPEndpoint: "http://"}, "1")
	assert.Error(t, err)
}
