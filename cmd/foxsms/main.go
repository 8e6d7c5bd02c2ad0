// Foxsms is a command-line client for the Firefox SMS verification service.
//
// It leases phone numbers, waits for verification messages, extracts the
// code and hands numbers back to the service. The session token from
// 'foxsms login' is kept in the user's config file so later commands can
// run without credentials.
//
// Usage:
//
//	foxsms [command] [flags]
//
// See 'foxsms --help' for available commands.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/muurk/foxsms/internal/logging"
	"github.com/muurk/foxsms/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logging.Sync()

	if err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "foxsms",
	Short: "Firefox SMS verification client",
	Long: `A command-line client for the Firefox SMS verification service.

Lease a phone number for a project, wait for the verification SMS, and
release or blacklist the number when you are done. Run 'foxsms login'
once; the session token is stored in the config file for later commands.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.InitializeFromEnv(); err != nil {
			return err
		}
		switch outputFormat {
		case formatText, formatJSON:
			return nil
		default:
			return fmt.Errorf("invalid --format %q (use %s or %s)", outputFormat, formatText, formatJSON)
		}
	},
}

// Global flags
var (
	configPath   string
	baseURL      string
	timeoutMs    int
	retries      int
	tokenFlag    string
	outputFormat string
	verbose      bool
)

const (
	formatText = "text"
	formatJSON = "json"
)

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Config file (default: $FOXSMS_CONFIG or the user config dir)")
	pf.StringVar(&baseURL, "base-url", "", "Service base URL (overrides config)")
	pf.IntVar(&timeoutMs, "timeout", 0, "Request timeout in milliseconds (overrides config)")
	pf.IntVar(&retries, "retries", 0, "Retries after transport failures (overrides config)")
	pf.StringVar(&tokenFlag, "token", "", "Session token (overrides the stored login)")
	pf.StringVar(&outputFormat, "format", formatText, "Output format (text, json)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Show the raw service response")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", version.Product, version.Full())
	},
}
