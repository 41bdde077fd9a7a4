// Package store defines resource directory lookups for ownership checks.
//
// The guard only needs one thing from persistence: given a resource kind and
// ID, who owns it. Implementations adapt whatever holds the chat data — the
// backend's SQLite file, or an in-memory map in tests — to that single
// question, so policy evaluation itself never touches a database.
package store

import (
	"context"

	"github.com/louisbranch/chatguard/authz"
	"github.com/louisbranch/chatguard/internal/platform/errors"
)

// ErrNotFound indicates a requested resource is missing.
var ErrNotFound = errors.New(errors.CodeNotFound, "resource not found")

// Store resolves resources for ownership evaluation.
type Store interface {
	// GetResource returns the resource with the given kind and ID.
	// Returns ErrNotFound when no such resource exists.
	GetResource(ctx context.Context, kind authz.ResourceKind, id string) (authz.Resource, error)
}
