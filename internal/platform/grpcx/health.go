package grpcx

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	healthProbeTimeout = time.Second
	healthBackoffStart = 200 * time.Millisecond
	healthBackoffCap   = time.Second
)

// WaitForHealth blocks until the peer's health service reports SERVING or
// the context ends. The empty service name probes overall server health.
// Probes back off exponentially up to one second between attempts.
func WaitForHealth(ctx context.Context, conn *grpc.ClientConn, service string, logf func(string, ...any)) error {
	if conn == nil {
		return fmt.Errorf("gRPC connection is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	client := healthpb.NewHealthClient(conn)
	backoff := healthBackoffStart
	for {
		state, err := probeHealth(ctx, client, service)
		if err == nil && state == healthpb.HealthCheckResponse_SERVING {
			if logf != nil {
				logf("gRPC health check is SERVING")
			}
			return nil
		}
		if logf != nil {
			if err != nil {
				logf("waiting for gRPC health: %v", err)
			} else {
				logf("waiting for gRPC health: status %s", state.String())
			}
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for gRPC health: %w", ctx.Err())
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > healthBackoffCap {
			backoff = healthBackoffCap
		}
	}
}

// probeHealth issues a single bounded health check call.
func probeHealth(ctx context.Context, client healthpb.HealthClient, service string) (healthpb.HealthCheckResponse_ServingStatus, error) {
	probeCtx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()

	resp, err := client.Check(probeCtx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, err
	}
	return resp.GetStatus(), nil
}
