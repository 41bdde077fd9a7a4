package authz

import "strings"

// Policy identifies a named access policy label.
type Policy string

const (
	PolicyUnspecified Policy = ""
	// PolicyAuthenticated admits any authenticated caller.
	PolicyAuthenticated Policy = "authenticated"
	// PolicyResourceOwner admits the authenticated owner of the target resource.
	PolicyResourceOwner Policy = "resource_owner"
	// PolicyCustomer admits authenticated callers holding the customer role.
	PolicyCustomer Policy = "customer"
	// PolicyEmployee admits authenticated callers holding the employee role.
	PolicyEmployee Policy = "employee"
	// PolicyAdmin admits admins asserted by identity or by token claims.
	PolicyAdmin Policy = "admin"
)

// NormalizePolicy parses a policy label into a canonical value.
func NormalizePolicy(value string) (Policy, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return PolicyUnspecified, false
	}
	switch strings.ToUpper(trimmed) {
	case "AUTHENTICATED":
		return PolicyAuthenticated, true
	case "RESOURCE_OWNER", "OWNER":
		return PolicyResourceOwner, true
	case "CUSTOMER":
		return PolicyCustomer, true
	case "EMPLOYEE":
		return PolicyEmployee, true
	case "ADMIN":
		return PolicyAdmin, true
	default:
		return PolicyUnspecified, false
	}
}

// Input bundles the request facts a policy evaluation may consult.
// Absent facts stay zero valued; evaluators read absence as denial grounds
// rather than an error condition.
type Input struct {
	Identity Identity
	Claims   Claims
	Resource Resource
}

// Evaluate runs the named policy against the input.
func Evaluate(policy Policy, input Input) Decision {
	switch policy {
	case PolicyAuthenticated:
		return CanAuthenticated(input.Identity)
	case PolicyResourceOwner:
		return CanResourceOwner(input.Identity, input.Resource)
	case PolicyCustomer:
		return CanRole(input.Identity, RoleCustomer)
	case PolicyEmployee:
		return CanRole(input.Identity, RoleEmployee)
	case PolicyAdmin:
		return CanAdmin(input.Identity, input.Claims)
	default:
		return deny(ReasonDenyUnknownPolicy)
	}
}

// CanAuthenticated reports whether the caller passed authentication.
func CanAuthenticated(identity Identity) Decision {
	if !identity.Authenticated {
		return deny(ReasonDenyUnauthenticated)
	}
	return allow(ReasonAllowAuthenticated)
}

// CanResourceOwner reports whether the caller owns the target resource.
//
// Ownership is exact identifier equality. A missing caller ID or an unknown
// owner denies outright so empty never matches empty.
func CanResourceOwner(identity Identity, resource Resource) Decision {
	if !identity.Authenticated {
		return deny(ReasonDenyUnauthenticated)
	}
	if strings.TrimSpace(identity.ID) == "" {
		return deny(ReasonDenyMissingIdentity)
	}
	if strings.TrimSpace(resource.OwnerID) == "" {
		return deny(ReasonDenyMissingResource)
	}
	if identity.ID != resource.OwnerID {
		return deny(ReasonDenyNotResourceOwner)
	}
	return allow(ReasonAllowResourceOwner)
}

// CanRole reports whether the caller holds the required role exactly.
// Roles do not stack: an admin identity does not satisfy a customer or
// employee requirement.
func CanRole(identity Identity, required Role) Decision {
	if !identity.Authenticated {
		return deny(ReasonDenyUnauthenticated)
	}
	if required == RoleUnspecified || identity.Role != required {
		return deny(ReasonDenyRoleRequired)
	}
	return allow(ReasonAllowRoleMatch)
}

// CanAdmin reports whether the caller is an admin.
//
// Admin rights come from the resolved identity or from verified token
// claims; either source is sufficient once the caller is authenticated.
// Claims alone never admit an unauthenticated caller.
func CanAdmin(identity Identity, claims Claims) Decision {
	if !identity.Authenticated {
		return deny(ReasonDenyUnauthenticated)
	}
	if identity.Role == RoleAdmin {
		return allow(ReasonAllowAdminRole)
	}
	if claims.Role == RoleAdmin {
		return allow(ReasonAllowAdminClaim)
	}
	return deny(ReasonDenyAdminRequired)
}
