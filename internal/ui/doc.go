// Package ui provides terminal UI components for the foxsms CLI.
//
// This package uses Bubble Tea, Bubbles and Lipgloss to render command
// output. Most components follow a "render once" pattern: they produce a
// styled string and the command prints it. The one interactive piece is the
// spinner shown while waiting for an SMS.
//
// # Components
//
//   - Header: command banner showing the operation and its parameters
//   - Progress: bar and step list for multi-step commands
//   - Result: success, warning and failure boxes with ordered details
//   - RawResponse: undecoded service response for --verbose
//   - RenderTable: bordered tables for price lists and error codes
//   - RunWithSpinner: animated wait that cancels on ctrl+c
//
// A Runner ties Header, Progress and Result together:
//
//	runner := ui.NewRunner(ui.RunnerConfig{
//	    Title:   "Receive SMS",
//	    Command: "foxsms receive --project 1001",
//	    Params:  []ui.Detail{{Key: "Project", Value: "1001"}},
//	    Steps:   []string{"Lease number", "Wait for SMS", "Release lease"},
//	})
//
//	details, err := runner.Run(func(onStep ui.StepCallback) ([]ui.Detail, error) {
//	    onStep(1, ui.StepRunning, "")
//	    // ... do work ...
//	    onStep(1, ui.StepComplete, "+8613800138000")
//	    return []ui.Detail{{Key: "Code", Value: "123456"}}, nil
//	})
//
// Failure boxes take their troubleshooting tips from foxapi.Hint.
//
// # Logging Integration
//
// Logging is controlled via the FOXSMS_LOG_LEVEL environment variable. When
// unset, zap logging is silent so the styled output is displayed cleanly.
package ui
