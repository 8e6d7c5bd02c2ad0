package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/muurk/foxsms/internal/foxapi"
)

// RunnerConfig holds configuration for a multi-step command
type RunnerConfig struct {
	Title   string   // Command title (e.g., "Receive SMS")
	Command string   // Full command (e.g., "foxsms receive --project 1001")
	Params  []Detail // Parameters to display in header
	Steps   []string // Names for each step
	Verbose bool     // Whether to show the raw service response
	Output  io.Writer

	// Troubleshoot returns tips for a failure (default: foxapi.Hint)
	Troubleshoot func(error) []string
}

// Runner orchestrates the header, step list and result box for a command.
type Runner struct {
	config    RunnerConfig
	header    *Header
	progress  *Progress
	output    io.Writer
	raw       string
	startTime time.Time
	width     int
}

// NewRunner creates a new runner for a multi-step command
func NewRunner(config RunnerConfig) *Runner {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	if config.Troubleshoot == nil {
		config.Troubleshoot = foxapi.Hint
	}
	width := GetTerminalWidth()

	var prog *Progress
	if len(config.Steps) > 0 {
		prog = NewProgress(config.Steps)
		prog.SetWidth(width)
	}

	return &Runner{
		config:   config,
		header:   NewHeader(config.Title, config.Command, config.Params).SetWidth(width),
		progress: prog,
		output:   config.Output,
		width:    width,
	}
}

// SetWidth overrides the detected terminal width
func (r *Runner) SetWidth(width int) *Runner {
	r.width = width
	r.header.SetWidth(width)
	if r.progress != nil {
		r.progress.SetWidth(width)
	}
	return r
}

// SetRawResponse stores the last service response for verbose display
func (r *Runner) SetRawResponse(raw string) {
	r.raw = raw
}

// Operation is the work a Runner drives. The returned details are shown in
// the success box.
type Operation func(onStep StepCallback) ([]Detail, error)

// Run prints the header, executes the operation and prints the result.
func (r *Runner) Run(operation Operation) ([]Detail, error) {
	r.startTime = time.Now()

	_, _ = fmt.Fprintln(r.output, r.header.Render())
	_, _ = fmt.Fprintln(r.output)

	details, err := operation(r.stepCallback())
	duration := time.Since(r.startTime).Round(time.Millisecond)

	_, _ = fmt.Fprintln(r.output)
	if err != nil {
		result := NewFailureResult(r.config.Title+" failed", err, r.config.Troubleshoot(err))
		_, _ = fmt.Fprintln(r.output, result.SetWidth(r.width).Render())
	} else {
		details = append(details, Detail{Key: "Duration", Value: duration.String()})
		result := NewSuccessResult(r.config.Title+" complete", details)
		_, _ = fmt.Fprintln(r.output, result.SetWidth(r.width).Render())
	}

	if r.config.Verbose && r.raw != "" {
		_, _ = fmt.Fprintln(r.output)
		_, _ = fmt.Fprintln(r.output, NewRawResponse(r.raw).SetWidth(r.width).Render())
	}
	return details, err
}

func (r *Runner) stepCallback() StepCallback {
	return func(stepNumber int, status StepStatus, message string) {
		if r.progress == nil {
			return
		}
		r.progress.UpdateStep(stepNumber, status, message)
		if stepNumber < 1 || stepNumber > len(r.progress.Steps) {
			return
		}
		line := r.progress.renderStepLine(r.progress.Steps[stepNumber-1])
		if status == StepRunning {
			// overwritten when the step finishes
			_, _ = fmt.Fprint(r.output, line+"\r")
			return
		}
		_, _ = fmt.Fprintln(r.output, line)
	}
}
