package version

import (
	"strings"
	"testing"
)

func TestUserAgent(t *testing.T) {
	saved := Version
	defer func() { Version = saved }()

	Version = "v1.2.3"
	if got := UserAgent(); got != "foxsms/v1.2.3" {
		t.Errorf("UserAgent() = %q, want foxsms/v1.2.3", got)
	}
}

func TestFull(t *testing.T) {
	savedVersion, savedCommit := Version, Commit
	defer func() { Version, Commit = savedVersion, savedCommit }()

	Version, Commit = "v1.0.0", "abc1234"
	if got := Full(); got != "v1.0.0 (commit: abc1234)" {
		t.Errorf("Full() = %q", got)
	}
}

func TestDefaultsPopulated(t *testing.T) {
	if Version == "" {
		t.Error("Version should never be empty after init")
	}
	if Commit == "" {
		t.Error("Commit should never be empty after init")
	}
	if !strings.HasPrefix(UserAgent(), Product+"/") {
		t.Errorf("UserAgent() = %q, want %s/ prefix", UserAgent(), Product)
	}
}
