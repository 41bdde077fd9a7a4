// Package grpcmeta defines the gRPC metadata headers that carry caller
// identity and request correlation across chatguard-protected services.
//
// Identity headers are written by the session layer at the edge; services
// behind it treat their presence as the authenticated-caller signal. The
// bearer token travels on the standard authorization header and is only
// decoded when a policy needs the claim fallback.
package grpcmeta

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/louisbranch/chatguard/authz"
	"github.com/louisbranch/chatguard/internal/platform/id"
)

// RequestIDHeader is the gRPC metadata key for request correlation IDs.
const RequestIDHeader = "x-chatguard-request-id"

// UserIDHeader is the gRPC metadata key for the authenticated user ID.
// It is set by the session layer after authentication; downstream authz
// checks and audit logs attach caller context through it.
const UserIDHeader = "x-chatguard-user-id"

// UserRoleHeader is the gRPC metadata key for the authenticated user role.
const UserRoleHeader = "x-chatguard-user-role"

// AuthorizationHeader is the standard header carrying the bearer access token.
const AuthorizationHeader = "authorization"

const bearerPrefix = "bearer "

// requestIDKey carries the assigned request ID through context.
type requestIDKey struct{}

// WithRequestID returns a context carrying the given request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext returns the request ID assigned by the server
// interceptors, or empty when the call went through none.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	requestID, _ := ctx.Value(requestIDKey{}).(string)
	return requestID
}

// UserIDFromContext returns the user ID from incoming metadata.
func UserIDFromContext(ctx context.Context) string {
	return incomingHeader(ctx, UserIDHeader)
}

// UserRoleFromContext returns the normalized user role from incoming metadata.
func UserRoleFromContext(ctx context.Context) authz.Role {
	role, _ := authz.NormalizeRole(incomingHeader(ctx, UserRoleHeader))
	return role
}

// IdentityFromContext resolves the caller identity from incoming metadata.
//
// A request without a user-id header resolves to the anonymous identity:
// the session layer never propagates identity headers for callers it could
// not authenticate, so header presence and authentication coincide.
func IdentityFromContext(ctx context.Context) authz.Identity {
	userID := UserIDFromContext(ctx)
	if userID == "" {
		return authz.Anonymous
	}
	return authz.Identity{
		ID:            userID,
		Role:          UserRoleFromContext(ctx),
		Authenticated: true,
	}
}

// BearerTokenFromContext returns the bearer token from the authorization
// header, or empty when absent or not a bearer credential.
func BearerTokenFromContext(ctx context.Context) string {
	raw := incomingHeader(ctx, AuthorizationHeader)
	if len(raw) <= len(bearerPrefix) || !strings.EqualFold(raw[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(raw[len(bearerPrefix):])
}

// IsPrintableASCII reports whether value is non-empty printable ASCII.
func IsPrintableASCII(value string) bool {
	if value == "" {
		return false
	}
	for _, b := range []byte(value) {
		if b < 0x20 || b > 0x7e {
			return false
		}
	}
	return true
}

// HeaderValue returns the first printable value of the named header,
// matching metadata keys case-insensitively. Values with control bytes are
// skipped, so header data is always safe to log and to echo on responses.
func HeaderValue(md metadata.MD, name string) string {
	for key, values := range md {
		if !strings.EqualFold(key, name) {
			continue
		}
		if value := firstPrintable(values); value != "" {
			return value
		}
	}
	return ""
}

func firstPrintable(values []string) string {
	for _, value := range values {
		if IsPrintableASCII(value) {
			return value
		}
	}
	return ""
}

// incomingHeader reads one header from incoming call metadata.
func incomingHeader(ctx context.Context, name string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	return HeaderValue(md, name)
}

// UnaryServerInterceptor assigns every unary call a request ID, generating
// one when the client sent none, so guard denials and audit logs correlate
// across services. The ID is echoed back in response headers. A nil newID
// selects the default generator.
func UnaryServerInterceptor(newID func() (string, error)) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		callCtx, requestID, err := ensureRequestID(ctx, newID)
		if err != nil {
			return nil, status.Errorf(codes.Internal, "assign request id: %v", err)
		}
		if headerErr := grpc.SetHeader(callCtx, responseHeaders(requestID)); headerErr != nil {
			return nil, status.Errorf(codes.Internal, "echo request id: %v", headerErr)
		}
		return handler(callCtx, req)
	}
}

// StreamServerInterceptor is the stream counterpart of UnaryServerInterceptor.
func StreamServerInterceptor(newID func() (string, error)) grpc.StreamServerInterceptor {
	return func(srv any, stream grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		callCtx, requestID, err := ensureRequestID(stream.Context(), newID)
		if err != nil {
			return status.Errorf(codes.Internal, "assign request id: %v", err)
		}
		if headerErr := stream.SetHeader(responseHeaders(requestID)); headerErr != nil {
			return status.Errorf(codes.Internal, "echo request id: %v", headerErr)
		}
		return handler(srv, &requestIDStream{ServerStream: stream, ctx: callCtx})
	}
}

// requestIDStream overrides Context so stream handlers see the assigned
// request ID.
type requestIDStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *requestIDStream) Context() context.Context {
	return s.ctx
}

// ensureRequestID reuses the inbound request ID or generates a fresh one,
// and returns a context carrying it.
func ensureRequestID(ctx context.Context, newID func() (string, error)) (context.Context, string, error) {
	if newID == nil {
		newID = id.NewID
	}
	requestID := ""
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		requestID = HeaderValue(md, RequestIDHeader)
	}
	if requestID == "" {
		generated, err := newID()
		if err != nil {
			return nil, "", err
		}
		requestID = generated
	}
	return WithRequestID(ctx, requestID), requestID, nil
}

// responseHeaders builds response metadata headers from the request ID.
func responseHeaders(requestID string) metadata.MD {
	return metadata.Pairs(RequestIDHeader, requestID)
}
