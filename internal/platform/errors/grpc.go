package errors

import (
	"errors"

	"github.com/louisbranch/chatguard/internal/platform/errors/i18n"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DefaultLocale is used when the caller did not negotiate a locale.
const DefaultLocale = "en-US"

// HandleError converts an error into the gRPC status returned to clients.
// Domain errors map through their code and pick up a localized message from
// the catalog; anything else collapses to Internal with a generic message so
// internals never leak across the API boundary.
func HandleError(err error, locale string) error {
	if err == nil {
		return nil
	}
	if locale == "" {
		locale = DefaultLocale
	}

	appErr, ok := asError(err)
	if !ok {
		return status.Error(codes.Internal, "an unexpected error occurred")
	}

	catalog := i18n.GetCatalog(locale)
	userMsg := catalog.Format(string(appErr.Code), appErr.Metadata)
	return appErr.ToGRPCStatus(catalog.Locale(), userMsg)
}

// GetCode returns the domain code carried by err, or CodeUnknown for plain
// errors.
func GetCode(err error) Code {
	if e, ok := asError(err); ok {
		return e.Code
	}
	return CodeUnknown
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}

// GetMetadata returns the metadata carried by err, nil for plain errors.
func GetMetadata(err error) map[string]string {
	if e, ok := asError(err); ok {
		return e.Metadata
	}
	return nil
}

// asError extracts the coded error from anywhere on err's chain.
func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
