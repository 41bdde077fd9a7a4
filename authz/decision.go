package authz

// Decision reports one policy evaluation outcome.
//
// ReasonCode is a stable machine-readable explanation consumed by logs,
// telemetry, and client error details. Codes are part of the package
// contract; renaming one is a breaking change for downstream dashboards.
type Decision struct {
	Allowed    bool
	ReasonCode string
}

// Reason codes returned by evaluators.
const (
	ReasonAllowAuthenticated = "ALLOW_AUTHENTICATED"
	ReasonAllowResourceOwner = "ALLOW_RESOURCE_OWNER"
	ReasonAllowRoleMatch     = "ALLOW_ROLE_MATCH"
	ReasonAllowAdminRole     = "ALLOW_ADMIN_ROLE"
	ReasonAllowAdminClaim    = "ALLOW_ADMIN_CLAIM"

	ReasonDenyUnauthenticated  = "DENY_UNAUTHENTICATED"
	ReasonDenyMissingIdentity  = "DENY_MISSING_IDENTITY"
	ReasonDenyMissingResource  = "DENY_MISSING_RESOURCE"
	ReasonDenyNotResourceOwner = "DENY_NOT_RESOURCE_OWNER"
	ReasonDenyRoleRequired     = "DENY_ROLE_REQUIRED"
	ReasonDenyAdminRequired    = "DENY_ADMIN_REQUIRED"
	ReasonDenyUnknownPolicy    = "DENY_UNKNOWN_POLICY"
)

func allow(reasonCode string) Decision {
	return Decision{Allowed: true, ReasonCode: reasonCode}
}

func deny(reasonCode string) Decision {
	return Decision{ReasonCode: reasonCode}
}
