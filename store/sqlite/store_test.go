package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/louisbranch/chatguard/authz"
	apperrors "github.com/louisbranch/chatguard/internal/platform/errors"
	"github.com/louisbranch/chatguard/store"
)

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestGetResourceSession(t *testing.T) {
	t.Parallel()

	s := openTempStore(t)
	seedChatSchema(t, s)
	execSQL(t, s, `INSERT INTO chat_sessions (id, owner_id, title) VALUES ('sess-1', 'user-1', 'Greetings')`)

	got, err := s.GetResource(context.Background(), authz.ResourceKindSession, "sess-1")
	if err != nil {
		t.Fatalf("get resource: %v", err)
	}
	want := authz.Resource{Kind: authz.ResourceKindSession, ID: "sess-1", OwnerID: "user-1"}
	if got != want {
		t.Fatalf("GetResource = %+v, want %+v", got, want)
	}
}

func TestGetResourceMessage(t *testing.T) {
	t.Parallel()

	s := openTempStore(t)
	seedChatSchema(t, s)
	execSQL(t, s, `INSERT INTO chat_sessions (id, owner_id, title) VALUES ('sess-1', 'user-1', 'Greetings')`)
	execSQL(t, s, `INSERT INTO chat_messages (id, session_id, owner_id, body) VALUES ('msg-1', 'sess-1', 'user-1', 'hello')`)

	got, err := s.GetResource(context.Background(), authz.ResourceKindMessage, "msg-1")
	if err != nil {
		t.Fatalf("get resource: %v", err)
	}
	if got.OwnerID != "user-1" {
		t.Fatalf("owner = %q, want %q", got.OwnerID, "user-1")
	}
}

func TestGetResourceNotFound(t *testing.T) {
	t.Parallel()

	s := openTempStore(t)
	seedChatSchema(t, s)

	_, err := s.GetResource(context.Background(), authz.ResourceKindSession, "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetResourceNullOwner(t *testing.T) {
	t.Parallel()

	s := openTempStore(t)
	seedChatSchema(t, s)
	execSQL(t, s, `INSERT INTO chat_sessions (id, owner_id, title) VALUES ('sess-orphan', NULL, 'System session')`)

	got, err := s.GetResource(context.Background(), authz.ResourceKindSession, "sess-orphan")
	if err != nil {
		t.Fatalf("get resource: %v", err)
	}
	if got.OwnerID != "" {
		t.Fatalf("owner = %q, want empty for NULL column", got.OwnerID)
	}
}

func TestGetResourceRejectsUnknownKind(t *testing.T) {
	t.Parallel()

	s := openTempStore(t)
	seedChatSchema(t, s)

	_, err := s.GetResource(context.Background(), authz.ResourceKind("profile"), "p-1")
	if !apperrors.IsCode(err, apperrors.CodeResourceKindInvalid) {
		t.Fatalf("expected resource kind error, got %v", err)
	}
}

func TestGetResourceRequiresID(t *testing.T) {
	t.Parallel()

	s := openTempStore(t)
	seedChatSchema(t, s)

	if _, err := s.GetResource(context.Background(), authz.ResourceKindSession, "  "); err == nil {
		t.Fatal("expected id required error")
	}
}

func TestGetResourceHonorsContext(t *testing.T) {
	t.Parallel()

	s := openTempStore(t)
	seedChatSchema(t, s)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.GetResource(ctx, authz.ResourceKindSession, "sess-1"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "chat.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return s
}

// seedChatSchema creates the chat backend tables the store reads. Production
// databases are created by the backend itself; tests stand in for it here.
func seedChatSchema(t *testing.T, s *Store) {
	t.Helper()

	execSQL(t, s, `CREATE TABLE chat_sessions (
		id TEXT PRIMARY KEY,
		owner_id TEXT,
		title TEXT NOT NULL DEFAULT ''
	)`)
	execSQL(t, s, `CREATE TABLE chat_messages (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		owner_id TEXT,
		body TEXT NOT NULL DEFAULT ''
	)`)
}

func execSQL(t *testing.T, s *Store, query string) {
	t.Helper()

	if _, err := s.sqlDB.Exec(query); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}
