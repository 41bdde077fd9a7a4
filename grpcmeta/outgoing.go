package grpcmeta

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/louisbranch/chatguard/authz"
)

// WithUserID returns a context with user-id gRPC metadata when userID is non-empty.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, UserIDHeader, userID)
}

// WithUserRole returns a context with user-role gRPC metadata when role is set.
func WithUserRole(ctx context.Context, role authz.Role) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if role == authz.RoleUnspecified {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, UserRoleHeader, string(role))
}

// WithIdentity returns a context carrying an authenticated caller's identity
// headers. Unauthenticated identities produce no headers: absence on the wire
// is the anonymous-caller signal.
func WithIdentity(ctx context.Context, identity authz.Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if !identity.Authenticated || strings.TrimSpace(identity.ID) == "" {
		return ctx
	}
	return WithUserRole(WithUserID(ctx, identity.ID), identity.Role)
}

// WithBearerToken returns a context with an authorization bearer header when
// token is non-empty.
func WithBearerToken(ctx context.Context, token string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, AuthorizationHeader, "Bearer "+token)
}

// BearerTokenUnaryClientInterceptor appends a bearer access token to unary calls.
func BearerTokenUnaryClientInterceptor(token string) grpc.UnaryClientInterceptor {
	token = strings.TrimSpace(token)
	return func(
		ctx context.Context,
		method string,
		req any,
		reply any,
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		return invoker(WithBearerToken(ctx, token), method, req, reply, cc, opts...)
	}
}

// BearerTokenStreamClientInterceptor appends a bearer access token to stream calls.
func BearerTokenStreamClientInterceptor(token string) grpc.StreamClientInterceptor {
	token = strings.TrimSpace(token)
	return func(
		ctx context.Context,
		desc *grpc.StreamDesc,
		cc *grpc.ClientConn,
		method string,
		streamer grpc.Streamer,
		opts ...grpc.CallOption,
	) (grpc.ClientStream, error) {
		return streamer(WithBearerToken(ctx, token), desc, cc, method, opts...)
	}
}
