package foxapi

import (
	"context"
	"errors"
	"net"
	"net/url"
	"os"
	"syscall"
	"testing"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		errType ErrorType
		want    string
	}{
		{ErrTypeNetwork, "Network Error"},
		{ErrTypeTimeout, "Timeout"},
		{ErrTypeConnectionRefused, "Connection Refused"},
		{ErrTypeDNS, "DNS Error"},
		{ErrTypeHTTP, "HTTP Error"},
		{ErrTypeParse, "Parse Error"},
		{ErrTypeNotLoggedIn, "Not Logged In"},
		{ErrTypeUnknown, "Unknown Error"},
		{ErrorType(99), "ErrorType(99)"},
	}

	for _, tt := range tests {
		if got := tt.errType.String(); got != tt.want {
			t.Errorf("ErrorType(%d).String() = %q, want %q", tt.errType, got, tt.want)
		}
	}
}

func TestError_Error(t *testing.T) {
	err := &Error{Type: ErrTypeHTTP, Action: ActionGetPhone, Message: "unexpected status code: 502"}
	want := "HTTP Error [getPhone]: unexpected status code: 502"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	cause := errors.New("boom")
	err = &Error{Type: ErrTypeNetwork, Message: "request failed", Err: cause}
	want = "Network Error: request failed (caused by: boom)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, cause) {
		t.Error("Unwrap should expose the cause")
	}
}

func TestClassifyNetworkError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantType ErrorType
	}{
		{"deadline", os.ErrDeadlineExceeded, ErrTypeTimeout},
		{"context deadline", context.DeadlineExceeded, ErrTypeTimeout},
		{"dns", &net.DNSError{Name: "www.firefox.fun", Err: "no such host"}, ErrTypeDNS},
		{"refused", &net.OpError{Op: "dial", Err: &os.SyscallError{Syscall: "connect", Err: syscall.ECONNREFUSED}}, ErrTypeConnectionRefused},
		{"url wrapped dns", &url.Error{Op: "Get", URL: "http://x", Err: &net.DNSError{Name: "x", Err: "no such host"}}, ErrTypeDNS},
		{"generic", errors.New("connection reset"), ErrTypeNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyNetworkError(tt.err)
			if got.Type != tt.wantType {
				t.Errorf("Type = %v, want %v", got.Type, tt.wantType)
			}
			if !got.Retryable {
				t.Error("transport errors should be retryable")
			}
			if !errors.Is(got, tt.err) && got.Err != tt.err {
				t.Errorf("Err should preserve the original error")
			}
		})
	}

	if ClassifyNetworkError(nil) != nil {
		t.Error("ClassifyNetworkError(nil) should be nil")
	}
}

func TestErrorPredicates(t *testing.T) {
	transport := NewHTTPError(ActionLogin, 500, "server error")
	parse := NewParseError(ActionGetItem, "bad json", errors.New("eof"))
	precondition := NewNotLoggedInError(ActionGetPhone)
	wrapped := errors.Join(errors.New("context"), transport)

	if !IsTransportError(transport) || !IsTransportError(wrapped) {
		t.Error("IsTransportError should match HTTP errors, wrapped or not")
	}
	if IsTransportError(parse) || IsTransportError(precondition) {
		t.Error("IsTransportError should not match parse or precondition errors")
	}
	if !IsParseError(parse) || IsParseError(transport) {
		t.Error("IsParseError mismatch")
	}
	if !IsNotLoggedIn(precondition) || IsNotLoggedIn(parse) {
		t.Error("IsNotLoggedIn mismatch")
	}
	if !IsRetryable(transport) || IsRetryable(parse) || IsRetryable(precondition) {
		t.Error("only transport errors are retryable")
	}
	if IsTransportError(errors.New("plain")) || IsRetryable(nil) {
		t.Error("predicates should reject foreign errors")
	}
}

func TestServerError(t *testing.T) {
	err := &ServerError{Action: ActionGetMessage, Code: MessageNotYet, Message: "-3"}
	if got := err.Describe(); got != "no message yet" {
		t.Errorf("Describe() = %q", got)
	}

	undocumented := &ServerError{Action: ActionSendSms, Code: 0, Message: "daily limit reached"}
	if got := undocumented.Describe(); got != "daily limit reached" {
		t.Errorf("Describe() = %q, want raw message", got)
	}
	if got := undocumented.Error(); got != "sendSms failed: daily limit reached (code 0)" {
		t.Errorf("Error() = %q", got)
	}
}

func TestHint(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"timeout", &Error{Type: ErrTypeTimeout}},
		{"refused", &Error{Type: ErrTypeConnectionRefused}},
		{"dns", &Error{Type: ErrTypeDNS}},
		{"http 5xx", NewHTTPError(ActionLogin, 502, "bad gateway")},
		{"http 4xx", NewHTTPError(ActionLogin, 404, "not found")},
		{"parse", NewParseError(ActionGetItem, "bad", nil)},
		{"not logged in", NewNotLoggedInError(ActionMyInfo)},
		{"server", &ServerError{Action: ActionMyInfo, Code: AccountTokenExpired}},
		{"foreign", errors.New("other")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if hint := Hint(tt.err); len(hint) == 0 {
				t.Error("Hint() should return at least one line")
			}
		})
	}

	hint := Hint(&ServerError{Action: ActionMyInfo, Code: AccountTokenExpired})
	if len(hint) != 2 {
		t.Errorf("token failures should suggest logging in again, got %v", hint)
	}
}
