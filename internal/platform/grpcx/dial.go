// Package grpcx provides the gRPC client plumbing chatguard tooling uses to
// reach the chat backend: default dial options with trace propagation and a
// health-gated connection setup.
package grpcx

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Dialer abstracts connection establishment so tests can substitute failures.
type Dialer interface {
	DialContext(ctx context.Context, addr string, opts ...grpc.DialOption) (*grpc.ClientConn, error)
}

// DialerFunc adapts a plain function to the Dialer interface.
type DialerFunc func(ctx context.Context, addr string, opts ...grpc.DialOption) (*grpc.ClientConn, error)

// DialContext implements Dialer.
func (fn DialerFunc) DialContext(ctx context.Context, addr string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	return fn(ctx, addr, opts...)
}

// DialStage names the phase where connection setup failed, so callers can
// distinguish an unreachable peer from one that is up but not serving.
type DialStage string

const (
	// DialStageConnect marks a transport-level dial failure.
	DialStageConnect DialStage = "connect"
	// DialStageHealth marks a peer that connected but never reported SERVING.
	DialStageHealth DialStage = "health"
)

// DialError reports a connection setup failure with its stage.
type DialError struct {
	Stage DialStage
	Err   error
}

func (e *DialError) Error() string {
	if e == nil {
		return "dial error"
	}
	return fmt.Sprintf("dial %s: %v", e.Stage, e.Err)
}

func (e *DialError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// DefaultClientDialOptions returns the standard dial options for in-process
// clients: plaintext transport and the OTel stats handler, so outbound calls
// propagate trace context whenever a provider is registered.
func DefaultClientDialOptions() []grpc.DialOption {
	return []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithBlock(),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}
}

// DialWithHealth dials addr and waits for its health service to report
// SERVING. dialTimeout bounds both phases together; the connection is closed
// when the health gate fails.
func DialWithHealth(ctx context.Context, dialer Dialer, addr string, dialTimeout time.Duration, logf func(string, ...any), opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if dialer == nil {
		dialer = DialerFunc(grpc.DialContext)
	}
	if dialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, dialTimeout)
		defer cancel()
	}

	conn, err := dialer.DialContext(ctx, addr, opts...)
	if err != nil {
		return nil, &DialError{Stage: DialStageConnect, Err: err}
	}
	if err := WaitForHealth(ctx, conn, "", logf); err != nil {
		_ = conn.Close()
		return nil, &DialError{Stage: DialStageHealth, Err: err}
	}
	return conn, nil
}
