package processorclient

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func startHealthServer(t *testing.T) (*health.Server, string) {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)
	return hs, lis.Addr().String()
}

func TestClient_Status(t *testing.T) {
	hs, addr := startHealthServer(t)
	client, err := New(addr)
	require.NoError(t, err)
	defer client.Close()

	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	status, err := client.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "serving", status)

	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	status, err = client.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "not_serving", status)
}

func TestClient_UnknownServiceIsAnError(t *testing.T) {
	_, addr := startHealthServer(t)
	client, err := New(addr)
	require.NoError(t, err)
	defer client.Close()

	status, err := client.Status(context.Background())
	assert.Error(t, err)
	assert.Equal(t, "unreachable", status)
}
