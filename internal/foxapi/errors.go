package foxapi

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"syscall"
)

// ErrorType represents the category of a client-side failure.
// Logical failures reported inside the envelope are not an ErrorType; see ServerError.
type ErrorType int

const (
	// ErrTypeNetwork indicates a network-level error (reset, unreachable, etc.)
	ErrTypeNetwork ErrorType = iota
	// ErrTypeTimeout indicates the request did not complete within the configured timeout
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates the service refused the connection
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates a DNS resolution failure
	ErrTypeDNS
	// ErrTypeHTTP indicates a non-2xx HTTP status
	ErrTypeHTTP
	// ErrTypeParse indicates a payload the client could not decode locally
	ErrTypeParse
	// ErrTypeNotLoggedIn indicates a token-requiring call was made without a token
	ErrTypeNotLoggedIn
	// ErrTypeUnknown indicates an unknown or unexpected error
	ErrTypeUnknown
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeNotLoggedIn:
		return "Not Logged In"
	case ErrTypeUnknown:
		return "Unknown Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// ErrNotLoggedIn is matched by errors.Is for every precondition failure
// raised before a token exists.
var ErrNotLoggedIn = errors.New("not logged in: call Login first or pass a token")

// Error is a client-side failure: transport, local decode or precondition.
type Error struct {
	Type       ErrorType // Category of error
	Action     Action    // Action being performed
	Message    string    // Human-readable error message
	StatusCode int       // HTTP status code (if applicable)
	Attempts   int       // Number of attempts made before giving up
	Err        error     // Underlying error (if any)
	Retryable  bool      // Whether the error is retryable
}

// Error implements the error interface
func (e *Error) Error() string {
	prefix := e.Type.String()
	if e.Action != "" {
		prefix = fmt.Sprintf("%s [%s]", prefix, e.Action)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", prefix, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrNotLoggedIn) match precondition failures.
func (e *Error) Is(target error) bool {
	return target == ErrNotLoggedIn && e.Type == ErrTypeNotLoggedIn
}

// ClassifyNetworkError analyzes a transport error and returns a more specific error type.
// Every classified transport error is retryable: the retry policy only
// distinguishes transport failures from logical ones.
func ClassifyNetworkError(err error) *Error {
	if err == nil {
		return nil
	}

	if os.IsTimeout(err) || errors.Is(err, os.ErrDeadlineExceeded) {
		return &Error{
			Type:      ErrTypeTimeout,
			Message:   "request timed out",
			Err:       err,
			Retryable: true,
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &Error{
			Type:      ErrTypeDNS,
			Message:   fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			Err:       err,
			Retryable: true,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return &Error{
			Type:      ErrTypeConnectionRefused,
			Message:   "service refused connection",
			Err:       err,
			Retryable: true,
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		classified := ClassifyNetworkError(urlErr.Err)
		classified.Err = err
		return classified
	}

	return &Error{
		Type:      ErrTypeNetwork,
		Message:   "network error occurred",
		Err:       err,
		Retryable: true,
	}
}

// NewNetworkError creates a transport error with automatic classification
func NewNetworkError(action Action, message string, err error) *Error {
	classified := ClassifyNetworkError(err)
	if classified == nil {
		classified = &Error{Type: ErrTypeNetwork, Retryable: true}
	}
	classified.Action = action
	classified.Message = message
	return classified
}

// NewHTTPError creates an error for a non-2xx response. All of them are retried.
func NewHTTPError(action Action, statusCode int, message string) *Error {
	return &Error{
		Type:       ErrTypeHTTP,
		Action:     action,
		Message:    message,
		StatusCode: statusCode,
		Retryable:  true,
	}
}

// NewParseError creates a local decode error
func NewParseError(action Action, message string, err error) *Error {
	return &Error{
		Type:    ErrTypeParse,
		Action:  action,
		Message: message,
		Err:     err,
	}
}

// NewNotLoggedInError creates a precondition error for a missing token
func NewNotLoggedInError(action Action) *Error {
	return &Error{
		Type:    ErrTypeNotLoggedIn,
		Action:  action,
		Message: "no token available; call Login first or pass a token",
	}
}

func asError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsTransportError reports whether err is a request failure (network, timeout, DNS, HTTP status).
func IsTransportError(err error) bool {
	e, ok := asError(err)
	if !ok {
		return false
	}
	switch e.Type {
	case ErrTypeNetwork, ErrTypeTimeout, ErrTypeConnectionRefused, ErrTypeDNS, ErrTypeHTTP:
		return true
	}
	return false
}

// IsParseError checks if an error is a local parse error
func IsParseError(err error) bool {
	e, ok := asError(err)
	return ok && e.Type == ErrTypeParse
}

// IsNotLoggedIn checks if an error is a missing-token precondition error
func IsNotLoggedIn(err error) bool {
	return errors.Is(err, ErrNotLoggedIn)
}

// IsRetryable checks if an error should be retried
func IsRetryable(err error) bool {
	e, ok := asError(err)
	return ok && e.Retryable
}

// ServerError is a logical failure reported by the service in the envelope.
type ServerError struct {
	Action  Action
	Code    int
	Message string
}

func (e *ServerError) Error() string {
	if meaning, ok := LookupCode(e.Action, e.Code); ok {
		return fmt.Sprintf("%s failed: %s (code %d: %s)", e.Action, e.Message, e.Code, meaning)
	}
	return fmt.Sprintf("%s failed: %s (code %d)", e.Action, e.Message, e.Code)
}

// Describe returns the documented meaning of the code, or the raw message.
func (e *ServerError) Describe() string {
	if meaning, ok := LookupCode(e.Action, e.Code); ok {
		return meaning
	}
	return e.Message
}

// Hint returns user-facing troubleshooting advice for an error
func Hint(err error) []string {
	var srvErr *ServerError
	if errors.As(err, &srvErr) {
		return serverHint(srvErr)
	}

	e, ok := asError(err)
	if !ok {
		return []string{"An unexpected error occurred. Please try again."}
	}

	switch e.Type {
	case ErrTypeTimeout:
		return []string{
			"The service did not respond in time",
			"Try a larger --timeout",
			"Configure --retries to retry transient failures",
		}
	case ErrTypeConnectionRefused, ErrTypeNetwork:
		return []string{
			"Check your network connection",
			"Verify the base URL (default " + DefaultBaseURL + ")",
		}
	case ErrTypeDNS:
		return []string{
			"Could not resolve the service host",
			"Check your DNS settings or pass --base-url with an IP address",
		}
	case ErrTypeHTTP:
		if e.StatusCode >= 500 {
			return []string{fmt.Sprintf("The service returned HTTP %d; try again later", e.StatusCode)}
		}
		return []string{fmt.Sprintf("The service returned HTTP %d; check the base URL", e.StatusCode)}
	case ErrTypeParse:
		return []string{"The service returned a payload this client could not decode"}
	case ErrTypeNotLoggedIn:
		return []string{"Run 'foxsms login' first, or pass --token"}
	default:
		return []string{"Check the error message for details"}
	}
}

func serverHint(e *ServerError) []string {
	hint := []string{e.Describe()}
	lower := strings.ToLower(e.Describe())
	if strings.Contains(lower, "token") {
		hint = append(hint, "Run 'foxsms login' to obtain a fresh token")
	}
	if strings.Contains(lower, "balance") {
		hint = append(hint, "Top up the account balance")
	}
	return hint
}
