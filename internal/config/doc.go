// Package config provides user configuration management for foxsms.
//
// This package manages a YAML configuration file holding the service
// connection settings, the session token from the last login and polling
// preferences. The file follows OS-specific conventions for its location.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/foxsms/config.yaml or $HOME/.config/foxsms/config.yaml
//   - macOS: $HOME/.config/foxsms/config.yaml
//   - Windows: %LOCALAPPDATA%\foxsms\config.yaml
//
// FOXSMS_CONFIG overrides the location; the CLI's --config flag does the
// same through LoadRegistryFrom.
//
// # File Format
//
//	version: 1
//	service:
//	    base_url: http://www.firefox.fun
//	    timeout_ms: 30000
//	    retries: 0
//	session:
//	    api_name: myaccount
//	    token: 3f2a...
//	    logged_in_at: 2025-01-02T15:04:05Z
//	preferences:
//	    poll_interval_seconds: 5
//	    wait_timeout_seconds: 300
//	    default_country: ""
//
// # Security
//
// The account password is NEVER written to disk. The session token is, with
// 0600 permissions, so that later commands can run without logging in again.
//
// # Usage Example
//
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client := foxapi.NewClient(registry.ClientConfig())
//	client.SetToken(registry.Token())
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config
