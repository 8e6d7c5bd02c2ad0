// Package logging provides structured logging for foxsms.
//
// This package wraps a global zap logger with convenience functions for the
// request/response logging done by the API client and the polling done by
// the receiver.
//
// # Log Levels
//
//   - Debug: every API request and raw response envelope
//   - Info: leases, received messages, releases
//   - Warn: transport retries, failed polls, failed releases
//   - Error: failures that end a command
//
// The level comes from FOXSMS_LOG_LEVEL. When it is unset the logger is a
// no-op so the CLI's styled output is not interleaved with log lines.
//
// # Secrets
//
// Passwords and tokens never reach the log in clear text. Query parameters
// named PassWord or token are masked by RedactParam, and the token in a
// successful login response is masked by LogAPIResponse:
//
//	logging.Debug("lease acquired",
//	    zap.String("pkey", lease.Pkey),
//	    zap.String("token", logging.Redact(token)),
//	)
package logging
