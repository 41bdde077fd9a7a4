// Package cmd carries the shared entry-point plumbing for chatguard
// binaries: telemetry bootstrap around a command's run function and the
// fatal-exit helper mains use for unrecoverable errors.
package cmd

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/louisbranch/chatguard/internal/platform/otel"
)

const defaultShutdownTimeout = 5 * time.Second

// ServiceAccessCheck names the access-check command for startup telemetry.
const ServiceAccessCheck = "access-check"

// RunOptions controls shared entrypoint behavior for commands.
type RunOptions struct {
	// ShutdownTimeout caps telemetry flushing when the command exits.
	ShutdownTimeout time.Duration
}

// RunWithTelemetry configures tracing and executes a command run function.
func RunWithTelemetry(ctx context.Context, service string, run func(context.Context) error) error {
	return RunWithTelemetryAndOptions(ctx, service, RunOptions{}, run)
}

// RunWithTelemetryAndOptions is RunWithTelemetry with explicit options.
func RunWithTelemetryAndOptions(ctx context.Context, service string, options RunOptions, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	switch {
	case service == "":
		return errors.New("service name is required")
	case run == nil:
		return errors.New("run function is required")
	}

	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return err
	}
	defer flushTelemetry(service, shutdown, options.ShutdownTimeout)

	return run(ctx)
}

// flushTelemetry drains buffered spans on a fresh deadline. The parent
// context is usually already done by the time the command exits, so the
// flush cannot borrow it.
func flushTelemetry(service string, shutdown func(context.Context) error, timeout time.Duration) {
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		log.Printf("%s otel shutdown: %v", service, err)
	}
}
