package grpcmeta

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/grpc/metadata"

	"github.com/louisbranch/chatguard/authz"
)

func TestRequestIDRoundTrip(t *testing.T) {
	if got := RequestIDFromContext(nil); got != "" {
		t.Fatalf("request id for nil context = %q, want empty", got)
	}

	ctx := WithRequestID(context.Background(), "req-1")
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Fatalf("request id = %q, want %q", got, "req-1")
	}
}

func TestIsPrintableASCII(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{name: "plain", value: "user-1", want: true},
		{name: "empty", value: "", want: false},
		{name: "newline", value: "line\n", want: false},
		{name: "delete control char", value: string([]byte{0x7f}), want: false},
		{name: "non-ascii", value: "usuário", want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsPrintableASCII(tc.value); got != tc.want {
				t.Fatalf("IsPrintableASCII(%q) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}

func TestHeaderValueSkipsUnprintable(t *testing.T) {
	md := metadata.MD{
		"X-Chatguard-Request-Id": {"\n", "req-1"},
	}
	if got := HeaderValue(md, RequestIDHeader); got != "req-1" {
		t.Fatalf("HeaderValue = %q, want %q", got, "req-1")
	}
	if got := HeaderValue(metadata.MD{}, RequestIDHeader); got != "" {
		t.Fatalf("HeaderValue on empty metadata = %q, want empty", got)
	}
}

func TestIdentityFromContext(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(
		UserIDHeader, "user-1",
		UserRoleHeader, "employee",
	))

	identity := IdentityFromContext(ctx)
	want := authz.Identity{ID: "user-1", Role: authz.RoleEmployee, Authenticated: true}
	if identity != want {
		t.Fatalf("IdentityFromContext = %+v, want %+v", identity, want)
	}
}

func TestIdentityFromContextWithoutHeaders(t *testing.T) {
	if got := IdentityFromContext(context.Background()); got != authz.Anonymous {
		t.Fatalf("expected anonymous identity, got %+v", got)
	}

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(
		UserRoleHeader, "admin",
	))
	if got := IdentityFromContext(ctx); got != authz.Anonymous {
		t.Fatalf("expected anonymous identity without user id, got %+v", got)
	}
}

func TestIdentityFromContextUnknownRole(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(
		UserIDHeader, "user-1",
		UserRoleHeader, "superuser",
	))

	identity := IdentityFromContext(ctx)
	if identity.Role != authz.RoleUnspecified {
		t.Fatalf("expected unspecified role for unknown label, got %q", identity.Role)
	}
	if !identity.Authenticated {
		t.Fatal("expected identity to stay authenticated")
	}
}

func TestBearerTokenFromContext(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"standard", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"lowercase scheme", "bearer abc.def.ghi", "abc.def.ghi"},
		{"not bearer", "Basic dXNlcjpwYXNz", ""},
		{"scheme only", "Bearer ", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(
				AuthorizationHeader, tc.header,
			))
			if got := BearerTokenFromContext(ctx); got != tc.want {
				t.Fatalf("BearerTokenFromContext = %q, want %q", got, tc.want)
			}
		})
	}

	if BearerTokenFromContext(context.Background()) != "" {
		t.Fatal("expected empty token without metadata")
	}
}

func TestEnsureRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming metadata.MD
		want     string
	}{
		{
			name:     "keeps inbound id",
			incoming: metadata.Pairs(RequestIDHeader, "req-1"),
			want:     "req-1",
		},
		{
			name:     "generates when absent",
			incoming: metadata.MD{},
			want:     "generated",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := metadata.NewIncomingContext(context.Background(), tc.incoming)
			updated, requestID, err := ensureRequestID(ctx, func() (string, error) {
				return "generated", nil
			})
			if err != nil {
				t.Fatalf("ensure request id: %v", err)
			}
			if requestID != tc.want {
				t.Fatalf("request id = %q, want %q", requestID, tc.want)
			}
			if got := RequestIDFromContext(updated); got != tc.want {
				t.Fatalf("context request id = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEnsureRequestIDGeneratorFailure(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.MD{})

	_, _, err := ensureRequestID(ctx, func() (string, error) {
		return "", errors.New("entropy exhausted")
	})
	if err == nil {
		t.Fatal("expected generator error")
	}
}

func TestResponseHeaders(t *testing.T) {
	md := responseHeaders("req-1")
	if HeaderValue(md, RequestIDHeader) != "req-1" {
		t.Fatal("expected request id in response headers")
	}
}
