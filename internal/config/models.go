package config

import (
	"time"

	"github.com/muurk/foxsms/internal/foxapi"
)

// CurrentVersion is the only config file version this build understands.
const CurrentVersion = 1

// Default preferences for polling a lease.
const (
	DefaultPollIntervalSeconds = 5
	DefaultWaitTimeoutSeconds  = 300
)

// Registry represents the entire user configuration file.
// It holds service connection settings, the current session and preferences.
type Registry struct {
	Version     int          `yaml:"version"`
	Service     *Service     `yaml:"service,omitempty"`
	Session     *Session     `yaml:"session,omitempty"`
	Preferences *Preferences `yaml:"preferences,omitempty"`

	// path is the file the registry was loaded from ("" means the default path)
	path string
}

// Service holds client connection settings.
type Service struct {
	BaseURL   string `yaml:"base_url,omitempty"`   // Service root, e.g. http://www.firefox.fun
	TimeoutMs int    `yaml:"timeout_ms,omitempty"` // Per-request timeout in milliseconds
	Retries   int    `yaml:"retries"`              // Retries after transport failures
}

// Session is the result of the last successful login.
// The password is NEVER stored; only the token the service issued for it.
type Session struct {
	APIName    string    `yaml:"api_name,omitempty"`
	Token      string    `yaml:"token,omitempty"`
	LoggedInAt time.Time `yaml:"logged_in_at,omitempty"`
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	PollIntervalSeconds int    `yaml:"poll_interval_seconds"`     // Delay between getMessage polls
	WaitTimeoutSeconds  int    `yaml:"wait_timeout_seconds"`      // Give up waiting for an SMS after this long
	DefaultCountry      string `yaml:"default_country,omitempty"` // Country code sent with getPhone when none is given
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: CurrentVersion,
		Service: &Service{
			BaseURL:   foxapi.DefaultBaseURL,
			TimeoutMs: int(foxapi.DefaultTimeout / time.Millisecond),
			Retries:   foxapi.DefaultRetries,
		},
		Session:     &Session{},
		Preferences: defaultPreferences(),
	}
}

func defaultPreferences() *Preferences {
	return &Preferences{
		PollIntervalSeconds: DefaultPollIntervalSeconds,
		WaitTimeoutSeconds:  DefaultWaitTimeoutSeconds,
	}
}

// Path returns the file this registry is saved to ("" for the default location).
func (r *Registry) Path() string {
	return r.path
}

// SetSession records a successful login.
func (r *Registry) SetSession(apiName, token string) {
	r.Session = &Session{
		APIName:    apiName,
		Token:      token,
		LoggedInAt: time.Now(),
	}
}

// ClearSession forgets the stored token but keeps the API name for the next login.
func (r *Registry) ClearSession() {
	if r.Session == nil {
		return
	}
	r.Session.Token = ""
	r.Session.LoggedInAt = time.Time{}
}

// Token returns the stored session token, or "".
func (r *Registry) Token() string {
	if r.Session == nil {
		return ""
	}
	return r.Session.Token
}

// PollInterval returns the configured poll interval.
func (r *Registry) PollInterval() time.Duration {
	if r.Preferences == nil || r.Preferences.PollIntervalSeconds <= 0 {
		return DefaultPollIntervalSeconds * time.Second
	}
	return time.Duration(r.Preferences.PollIntervalSeconds) * time.Second
}

// WaitTimeout returns the configured maximum wait for an SMS.
func (r *Registry) WaitTimeout() time.Duration {
	if r.Preferences == nil || r.Preferences.WaitTimeoutSeconds <= 0 {
		return DefaultWaitTimeoutSeconds * time.Second
	}
	return time.Duration(r.Preferences.WaitTimeoutSeconds) * time.Second
}

// ClientConfig converts the service settings into an API client configuration.
// Zero values are left for the client to default.
func (r *Registry) ClientConfig() foxapi.Config {
	if r.Service == nil {
		return foxapi.Config{}
	}
	return foxapi.ConfigFromMillis(r.Service.BaseURL, r.Service.TimeoutMs, r.Service.Retries)
}
