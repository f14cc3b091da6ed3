// Package processorclient asks the media processor for its gRPC health status.
package processorclient

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name the processor registers.
const ServiceName = "trustimonials.processor"

// Client wraps the gRPC health client for the processor.
type Client struct {
	conn   *grpc.ClientConn
	health healthpb.HealthClient
}

// New creates a client for the processor at addr. The connection is
// established lazily on the first call.
func New(addr string) (*Client, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to create processor client for %s: %w", addr, err)
	}
	return &Client{conn: conn, health: healthpb.NewHealthClient(conn)}, nil
}

// Status returns the processor's serving status as a lowercase string, such
// as "serving" or "not_serving".
func (c *Client) Status(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	resp, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		return "unreachable", err
	}
	switch resp.GetStatus() {
	case healthpb.HealthCheckResponse_SERVING:
		return "serving", nil
	case healthpb.HealthCheckResponse_NOT_SERVING:
		return "not_serving", nil
	default:
		return "unknown", nil
	}
}

// Close closes the gRPC connection to the processor.
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
