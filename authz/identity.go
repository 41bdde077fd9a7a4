package authz

// Identity captures the resolved caller for one request.
//
// The zero value represents an anonymous caller: not authenticated, no ID,
// no role. Resolution layers that cannot establish who is calling must pass
// the zero value instead of inventing placeholder identifiers.
type Identity struct {
	// ID is the stable user identifier. Empty when unresolved.
	ID string
	// Role is the caller role label. RoleUnspecified when absent.
	Role Role
	// Authenticated reports whether the caller passed authentication.
	Authenticated bool
}

// Anonymous is the identity used when no caller could be resolved.
var Anonymous = Identity{}

// Claims carries role assertions decoded from a verified access token.
//
// Claims stay separate from Identity because the two arrive on different
// paths: identity from the session layer, claims from a bearer token. Either
// may be present without the other, and evaluators treat a zero Claims as
// asserting nothing.
type Claims struct {
	// Role is the role asserted by the token. RoleUnspecified when absent.
	Role Role
}

// Resource describes the object a caller wants to act on.
type Resource struct {
	// Kind is the resource family the ID belongs to.
	Kind ResourceKind
	// ID is the resource identifier.
	ID string
	// OwnerID is the user that owns the resource. Empty when ownership is
	// unknown; ownership checks treat that as a denial.
	OwnerID string
}
