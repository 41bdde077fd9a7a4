package errors

import (
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"
)

// Domain identifies chatguard in errdetails.ErrorInfo payloads.
const Domain = "github.com/louisbranch/chatguard"

// Error carries a machine-readable code alongside the internal message.
// The code drives the gRPC status mapping and selects the localized client
// message; metadata feeds both the message templates and the ErrorInfo
// detail.
type Error struct {
	Code     Code
	Message  string
	Metadata map[string]string
	Cause    error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors by code, so comparisons survive message changes and
// fmt.Errorf wrapping.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates an error with a code and an internal message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithMetadata creates an error whose metadata renders into the localized
// message template for its code.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata}
}

// Wrap creates an error that keeps the underlying cause on the chain.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// ToGRPCStatus converts the error to a gRPC status carrying errdetails.
// The status message stays the internal one for logs; userMessage is the
// translated text clients may display.
func (e *Error) ToGRPCStatus(locale string, userMessage string) error {
	st := status.New(e.Code.GRPCCode(), e.Message)
	detailed, err := st.WithDetails(
		&errdetails.ErrorInfo{
			Reason:   string(e.Code),
			Domain:   Domain,
			Metadata: e.Metadata,
		},
		&errdetails.LocalizedMessage{
			Locale:  locale,
			Message: userMessage,
		},
	)
	if err != nil {
		// Details that fail to marshal are dropped rather than masking
		// the status itself.
		return st.Err()
	}
	return detailed.Err()
}
