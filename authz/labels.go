package authz

import "strings"

// Role identifies the caller role label.
type Role string

const (
	RoleUnspecified Role = ""
	RoleCustomer    Role = "customer"
	RoleEmployee    Role = "employee"
	RoleAdmin       Role = "admin"
)

// ResourceKind identifies the protected resource family.
type ResourceKind string

const (
	ResourceKindUnspecified ResourceKind = ""
	ResourceKindSession     ResourceKind = "session"
	ResourceKindMessage     ResourceKind = "message"
)

// NormalizeRole parses a role label into a canonical value.
func NormalizeRole(value string) (Role, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return RoleUnspecified, false
	}
	switch strings.ToUpper(trimmed) {
	case "CUSTOMER", "ROLE_CUSTOMER":
		return RoleCustomer, true
	case "EMPLOYEE", "ROLE_EMPLOYEE":
		return RoleEmployee, true
	case "ADMIN", "ROLE_ADMIN":
		return RoleAdmin, true
	default:
		return RoleUnspecified, false
	}
}

// NormalizeResourceKind parses a resource kind label into a canonical value.
func NormalizeResourceKind(value string) (ResourceKind, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ResourceKindUnspecified, false
	}
	switch strings.ToUpper(trimmed) {
	case "SESSION", "CHAT_SESSION":
		return ResourceKindSession, true
	case "MESSAGE", "CHAT_MESSAGE":
		return ResourceKindMessage, true
	default:
		return ResourceKindUnspecified, false
	}
}
