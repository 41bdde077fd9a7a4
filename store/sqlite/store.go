// Package sqlite provides a SQLite-backed resource directory.
//
// The store is a read-only adapter over the chat backend's database: the
// backend owns the schema and writes; chatguard only resolves ownership.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/louisbranch/chatguard/authz"
	apperrors "github.com/louisbranch/chatguard/internal/platform/errors"
	"github.com/louisbranch/chatguard/store"
)

// Store resolves resources from the chat backend's SQLite database.
type Store struct {
	sqlDB *sql.DB
}

// Open opens the chat database for resource lookups.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// GetResource returns the resource with the given kind and ID.
func (s *Store) GetResource(ctx context.Context, kind authz.ResourceKind, id string) (authz.Resource, error) {
	if err := ctx.Err(); err != nil {
		return authz.Resource{}, err
	}
	if s == nil || s.sqlDB == nil {
		return authz.Resource{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return authz.Resource{}, fmt.Errorf("resource id is required")
	}

	var query string
	switch kind {
	case authz.ResourceKindSession:
		query = `SELECT id, owner_id FROM chat_sessions WHERE id = ?`
	case authz.ResourceKindMessage:
		query = `SELECT id, owner_id FROM chat_messages WHERE id = ?`
	default:
		return authz.Resource{}, apperrors.WithMetadata(
			apperrors.CodeResourceKindInvalid,
			"unknown resource kind",
			map[string]string{"Kind": string(kind)},
		)
	}

	row := s.sqlDB.QueryRowContext(ctx, query, id)

	resource := authz.Resource{Kind: kind}
	var owner sql.NullString
	if err := row.Scan(&resource.ID, &owner); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return authz.Resource{}, store.ErrNotFound
		}
		return authz.Resource{}, fmt.Errorf("get %s resource: %w", kind, err)
	}
	// A NULL owner column means ownership is unknown; the empty OwnerID
	// denies ownership checks downstream.
	resource.OwnerID = strings.TrimSpace(owner.String)
	return resource, nil
}
