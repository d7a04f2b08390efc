package pagesift

import (
	"errors"
	"fmt"
)

// Application error codes.
// These cross package boundaries so callers can react to the kind of
// failure without inspecting message text.
const (
	EAISERVICE    = "ai_service"         // language-model service failed or answered malformed
	EHTTPSTATUS   = "http_status"        // target responded with a non-success status
	EINTERNAL     = "internal"           // unexpected internal error
	EINVALID      = "invalid"            // request failed validation
	ENORESULTS    = "no_results"         // strategy ran but found nothing
	ENOTFOUND     = "not_found"          // named resource does not exist
	EPARSE        = "parse"              // content could not be parsed
	EREDIRECTS    = "too_many_redirects" // redirect chain exceeded the hop limit
	ETIMEOUT      = "timeout"            // operation exceeded its deadline
	EUNAUTHORIZED = "unauthorized"       // upstream rejected the credential
	EUNREACHABLE  = "unreachable"        // target could not be reached at all
)

// Error represents an application error with a machine-readable code
// and a human-readable message.
type Error struct {
	// Code is one of the E* constants above.
	Code string

	// Message is safe to show to end users.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("pagesift error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode returns the code of the error, if available.
// Returns EINTERNAL for non-application errors and an empty string for nil.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the message of the error, if available.
// Returns a generic message for non-application errors and an empty
// string for nil.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "An internal error has occurred."
}

// Errorf is a helper to construct an Error with a formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
