package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeAccessTokenInvalid  = "ACCESS_TOKEN_INVALID"
	CodeAccessTokenExpired  = "ACCESS_TOKEN_EXPIRED"
	CodeAccessTokenMismatch = "ACCESS_TOKEN_MISMATCH"
	CodeAccessDenied        = "ACCESS_DENIED"
	CodePolicyInvalid       = "POLICY_INVALID"
	CodeResourceKindInvalid = "RESOURCE_KIND_INVALID"
	CodeNotFound            = "NOT_FOUND"
)

var enUSCatalog = NewCatalog("en-US", map[Code]string{
	// Access token errors
	CodeAccessTokenInvalid:  "The access token is invalid",
	CodeAccessTokenExpired:  "The access token has expired",
	CodeAccessTokenMismatch: "The access token was issued for a different {{.Field}}",

	// Authorization errors
	CodeAccessDenied:  "You do not have permission to perform this action",
	CodePolicyInvalid: "Unknown authorization policy: {{.Policy}}",

	// Resource directory errors
	CodeResourceKindInvalid: "Unknown resource kind: {{.Kind}}",
	CodeNotFound:            "The requested resource was not found",
})

func init() {
	RegisterCatalog("en-US", enUSCatalog)
}
