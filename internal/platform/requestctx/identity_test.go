package requestctx

import (
	"context"
	"testing"

	"github.com/louisbranch/chatguard/authz"
)

func TestIdentityFromContextRoundTrip(t *testing.T) {
	identity := authz.Identity{ID: "user-42", Role: authz.RoleCustomer, Authenticated: true}
	ctx := WithIdentity(context.Background(), identity)
	if got := IdentityFromContext(ctx); got != identity {
		t.Fatalf("IdentityFromContext = %+v, want %+v", got, identity)
	}
	if got := UserIDFromContext(ctx); got != "user-42" {
		t.Fatalf("UserIDFromContext = %q, want %q", got, "user-42")
	}
}

func TestIdentityFromContextEmpty(t *testing.T) {
	got := IdentityFromContext(context.Background())
	if got != authz.Anonymous {
		t.Fatalf("expected anonymous identity, got %+v", got)
	}
}

func TestIdentityFromContextNil(t *testing.T) {
	got := IdentityFromContext(nil)
	if got != authz.Anonymous {
		t.Fatalf("expected anonymous identity for nil context, got %+v", got)
	}
}

func TestWithIdentityNilContext(t *testing.T) {
	ctx := WithIdentity(nil, authz.Identity{ID: "user-99", Authenticated: true})
	if ctx == nil {
		t.Fatalf("expected non-nil context")
	}
	if got := UserIDFromContext(ctx); got != "user-99" {
		t.Fatalf("UserIDFromContext = %q, want %q", got, "user-99")
	}
}
