// Package main evaluates a single authorization decision from the CLI.
//
// The process exits 0 when the check allows and 1 on deny or error, so the
// tool composes with shell scripts and health probes.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/chatguard/authz"
	entrypoint "github.com/louisbranch/chatguard/internal/platform/cmd"
	"github.com/louisbranch/chatguard/internal/platform/timeouts"
	"github.com/louisbranch/chatguard/internal/tools/accesscheck"
)

func main() {
	cfg, err := accesscheck.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		entrypoint.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	var decision authz.Decision
	err = entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceAccessCheck,
		entrypoint.RunOptions{ShutdownTimeout: timeouts.Shutdown},
		func(ctx context.Context) error {
			var runErr error
			decision, runErr = accesscheck.Run(ctx, cfg, os.Stdout)
			return runErr
		})
	if err != nil {
		entrypoint.Exitf("Error: %v", err)
	}
	if !decision.Allowed {
		os.Exit(1)
	}
}
