package requestctx

import (
	"context"

	"github.com/louisbranch/chatguard/authz"
)

// identityContextKey is the context key for the resolved caller identity.
type identityContextKey struct{}

// WithIdentity stores the resolved caller identity in context.
func WithIdentity(ctx context.Context, identity authz.Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, identityContextKey{}, identity)
}

// IdentityFromContext returns the caller identity stored in context.
// Returns the anonymous identity when none was stored.
func IdentityFromContext(ctx context.Context) authz.Identity {
	if ctx == nil {
		return authz.Anonymous
	}
	value, ok := ctx.Value(identityContextKey{}).(authz.Identity)
	if !ok {
		return authz.Anonymous
	}
	return value
}

// UserIDFromContext returns the user identifier of the stored identity.
func UserIDFromContext(ctx context.Context) string {
	return IdentityFromContext(ctx).ID
}
