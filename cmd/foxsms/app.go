package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/foxsms/internal/config"
	"github.com/muurk/foxsms/internal/foxapi"
	"github.com/muurk/foxsms/internal/receiver"
	"github.com/muurk/foxsms/internal/ui"
)

// app bundles what every service command needs: the config, a client built
// from it and the global flags, and a printer for the command's output.
type app struct {
	registry *config.Registry
	client   *foxapi.Client
	printer  *ui.Printer
}

func newApp(cmd *cobra.Command) (*app, error) {
	registry, err := loadRegistry()
	if err != nil {
		return nil, err
	}

	cfg := registry.ClientConfig()
	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = baseURL
	}
	if flags.Changed("timeout") {
		if timeoutMs <= 0 {
			return nil, fmt.Errorf("--timeout must be positive, got %d", timeoutMs)
		}
		cfg.Timeout = time.Duration(timeoutMs) * time.Millisecond
	}
	if flags.Changed("retries") {
		if retries < 0 {
			return nil, fmt.Errorf("--retries must not be negative, got %d", retries)
		}
		cfg.Retries = retries
	}

	client := foxapi.NewClient(cfg)
	if tokenFlag != "" {
		client.SetToken(tokenFlag)
	} else if token := registry.Token(); token != "" {
		client.SetToken(token)
	}

	return &app{
		registry: registry,
		client:   client,
		printer:  ui.NewPrinter(cmd.OutOrStdout()),
	}, nil
}

func loadRegistry() (*config.Registry, error) {
	if configPath != "" {
		return config.LoadRegistryFrom(configPath)
	}
	return config.LoadRegistry()
}

func (a *app) jsonOutput() bool {
	return outputFormat == formatJSON
}

// reportedError is an error whose details were already printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return &reportedError{err: err}
}

// errorOutput is the JSON shape of a client-side failure.
type errorOutput struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Kind    string `json:"kind,omitempty"`
}

// show prints a decoded result. A logical failure is printed with hints and
// returned as a reported error so the exit status is non-zero.
func (a *app) show(title string, status foxapi.Status, v any, details func() []ui.Detail) error {
	if a.jsonOutput() {
		if err := a.printer.PrintJSON(v); err != nil {
			return err
		}
	} else {
		if status.Success {
			a.printer.PrintSuccess(title, details())
		} else {
			err := status.Err()
			a.printer.PrintFailure(title, err, foxapi.Hint(err))
		}
		if verbose {
			a.printer.PrintRawResponse(status.Raw)
		}
	}

	if !status.Success {
		return reported(status.Err())
	}
	return nil
}

// fail prints a transport, parse or precondition error.
func (a *app) fail(title string, err error) error {
	if a.jsonOutput() {
		out := errorOutput{Error: err.Error()}
		var fe *foxapi.Error
		if errors.As(err, &fe) {
			out.Kind = fe.Type.String()
		}
		if errors.Is(err, receiver.ErrTimeout) {
			out.Kind = "Timeout"
		}
		_ = a.printer.PrintJSON(out)
	} else {
		a.printer.PrintFailure(title, err, troubleshoot(err))
	}
	return reported(err)
}

// troubleshoot extends foxapi.Hint with the receiver's failures.
func troubleshoot(err error) []string {
	if errors.Is(err, receiver.ErrTimeout) {
		return []string{
			"No message arrived before --wait-timeout",
			"Try again with a longer --wait-timeout or another number",
		}
	}
	return foxapi.Hint(err)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
