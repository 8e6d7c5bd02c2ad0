package logging

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRedact(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"abc", "***"},
		{"abcdef", "******"},
		{"abcdefgh", "ab****gh"},
	}
	for _, tt := range tests {
		if got := Redact(tt.in); got != tt.want {
			t.Errorf("Redact(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRedactParam(t *testing.T) {
	if got := RedactParam("PassWord", "secret-pass"); got == "secret-pass" {
		t.Errorf("password not redacted: %q", got)
	}
	if got := RedactParam("token", "tok-123456"); got == "tok-123456" {
		t.Errorf("token not redacted: %q", got)
	}
	if got := RedactParam("iid", "1001"); got != "1001" {
		t.Errorf("RedactParam(iid) = %q, want unchanged", got)
	}
}

func TestRedactLoginBody(t *testing.T) {
	if got := redactLoginBody("1|abcdefgh"); got != "1|ab****gh" {
		t.Errorf("redactLoginBody() = %q", got)
	}
	if got := redactLoginBody("0|-1"); got != "0|-1" {
		t.Errorf("failure body changed: %q", got)
	}
}

func TestInitialize_SilentByDefault(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")
	if err := Initialize(""); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if GetLogger().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("logger should be silent when no level is set")
	}
}

func TestInitialize_FromEnv(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "warn")
	if err := InitializeFromEnv(); err != nil {
		t.Fatalf("InitializeFromEnv() error = %v", err)
	}
	defer SetLogger(nil)

	core := GetLogger().Core()
	if !core.Enabled(zapcore.WarnLevel) {
		t.Error("warn should be enabled")
	}
	if core.Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
}

func TestLogAPIResponse_RedactsLoginToken(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	LogAPIResponse("req-1", "login", 200, "1|abcdefgh", 5*time.Millisecond)
	LogAPIResponse("req-2", "myInfo", 200, "1|10.5|1|0", 5*time.Millisecond)

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if body := entries[0].ContextMap()["body"]; body != "1|ab****gh" {
		t.Errorf("login body = %v, want redacted", body)
	}
	if body := entries[1].ContextMap()["body"]; body != "1|10.5|1|0" {
		t.Errorf("myInfo body = %v", body)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 3); got != "abc..." {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("abc", 3); got != "abc" {
		t.Errorf("truncate() = %q", got)
	}
}
