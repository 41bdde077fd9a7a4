// Package timeouts holds the duration bounds chatguard applies to outbound
// work. Guard lookups and tool dials share these so one slow dependency
// cannot stall an authorization decision indefinitely.
package timeouts

import "time"

// GRPCDial caps the wait time when dialing a gRPC peer.
const GRPCDial = 2 * time.Second

// StoreQuery caps the time allowed for a single resource directory lookup
// issued by the guard or the access-check tool.
const StoreQuery = 2 * time.Second

// Shutdown limits how long telemetry flushing may take during exit.
const Shutdown = 5 * time.Second
