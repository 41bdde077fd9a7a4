// Package errors defines chatguard's coded errors and their mapping onto
// gRPC statuses and localized client messages.
package errors

import "google.golang.org/grpc/codes"

// Code identifies an error class across logs, gRPC statuses, and message
// catalogs.
type Code string

const (
	// CodeUnknown tags errors that carry no more specific code.
	CodeUnknown Code = "UNKNOWN"

	// Access token errors
	CodeAccessTokenInvalid  Code = "ACCESS_TOKEN_INVALID"
	CodeAccessTokenExpired  Code = "ACCESS_TOKEN_EXPIRED"
	CodeAccessTokenMismatch Code = "ACCESS_TOKEN_MISMATCH"

	// Authorization errors
	CodeAccessDenied  Code = "ACCESS_DENIED"
	CodePolicyInvalid Code = "POLICY_INVALID"

	// Resource directory errors
	CodeResourceKindInvalid Code = "RESOURCE_KIND_INVALID"
	CodeNotFound            Code = "NOT_FOUND"
)

// GRPCCode selects the gRPC status a code surfaces as.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// Unauthenticated - the presented credential cannot be trusted
	case CodeAccessTokenInvalid,
		CodeAccessTokenExpired,
		CodeAccessTokenMismatch:
		return codes.Unauthenticated

	// PermissionDenied - the caller is known but the policy said no
	case CodeAccessDenied:
		return codes.PermissionDenied

	// InvalidArgument - the request named a policy or kind that does not exist
	case CodePolicyInvalid,
		CodeResourceKindInvalid:
		return codes.InvalidArgument

	// NotFound - the lookup found nothing to decide over
	case CodeNotFound:
		return codes.NotFound

	default:
		return codes.Internal
	}
}
