package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/muurk/foxsms/internal/foxapi"
	"github.com/muurk/foxsms/internal/logging"
	"github.com/muurk/foxsms/internal/receiver"
	"github.com/muurk/foxsms/internal/ui"
)

// Receive command flags
var (
	receiveCount int
	noRelease    bool
	metricsAddr  string
)

func init() {
	addLeaseFlags(receiveCmd)
	addWaitFlags(receiveCmd)
	receiveCmd.Flags().IntVarP(&receiveCount, "count", "n", 1, "Number of messages to receive (later leases reuse the first number)")
	receiveCmd.Flags().BoolVar(&noRelease, "no-release", false, "Keep the lease when waiting fails")
	receiveCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while running (e.g. :9090)")

	rootCmd.AddCommand(receiveCmd)
}

var receiveCmd = &cobra.Command{
	Use:   "receive",
	Short: "Lease a number and wait for its verification SMS",
	Long: `Lease a number, poll until its SMS arrives and print the code.

If no message arrives before --wait-timeout the lease is released so it
is not billed, unless --no-release is given. With --count greater than one
the first number is leased again for every following message.`,
	Example: `  # One code for project 1001
  foxsms receive --project 1001 --require-code

  # Three messages on the same number, metrics on :9090
  foxsms receive --project 1001 --count 3 --metrics-addr :9090`,
	RunE: runReceive,
}

// receiveOutput is the JSON shape of one receive.
type receiveOutput struct {
	Lease    *foxapi.PhoneLease `json:"lease"`
	Message  *foxapi.Message    `json:"message,omitempty"`
	Released bool               `json:"released"`
}

func runReceive(cmd *cobra.Command, args []string) error {
	if receiveCount <= 0 {
		return fmt.Errorf("--count must be positive, got %d", receiveCount)
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	if metricsAddr != "" {
		stop, err := serveMetrics(metricsAddr)
		if err != nil {
			return err
		}
		defer stop()
	}

	params := phoneParams(a)
	opts := waitOptions(a)
	opts.ReleaseOnTimeout = !noRelease

	if a.jsonOutput() {
		results, err := receiver.ReceiveMany(cmd.Context(), a.client, params, receiveCount, opts)
		out := make([]receiveOutput, 0, len(results))
		for _, r := range results {
			out = append(out, receiveOutput{Lease: r.Lease, Message: r.Message, Released: r.Released})
		}
		if err != nil {
			logging.Warn("Receive failed", zap.Error(err), zap.Int("completed", len(results)))
			_ = a.printer.PrintJSON(struct {
				errorOutput
				Results []receiveOutput `json:"results"`
			}{errorOutput{Error: err.Error()}, out})
			return reported(err)
		}
		return a.printer.PrintJSON(out)
	}

	runner := ui.NewRunner(ui.RunnerConfig{
		Title:        "Receive SMS",
		Command:      "foxsms " + strings.Join(commandLine(cmd), " "),
		Params:       receiveParams(params, opts),
		Steps:        []string{"Lease number", "Wait for SMS", "Hand back lease"},
		Output:       cmd.OutOrStdout(),
		Troubleshoot: troubleshoot,
	})

	var results []*receiver.Result
	_, err = runner.Run(func(onStep ui.StepCallback) ([]ui.Detail, error) {
		round := 0
		onStep(1, ui.StepRunning, "")
		opts.OnLease = func(lease *foxapi.PhoneLease) {
			round++
			onStep(1, ui.StepComplete, progressNote(round, lease.Mobile))
			onStep(2, ui.StepRunning, progressNote(round, "polling"))
		}
		opts.OnAttempt = func(at receiver.Attempt) {
			onStep(2, ui.StepRunning, progressNote(round, fmt.Sprintf("poll %d, %s", at.Number, at.Elapsed.Round(time.Second))))
		}

		var err error
		results, err = receiver.ReceiveMany(cmd.Context(), a.client, params, receiveCount, opts)
		if err != nil {
			if round == 0 {
				onStep(1, ui.StepFailed, "")
			} else {
				onStep(2, ui.StepFailed, progressNote(round, ""))
			}
			if n := len(results); n > 0 && results[n-1].Released {
				onStep(3, ui.StepComplete, "released")
			} else {
				onStep(3, ui.StepSkipped, "")
			}
			return nil, err
		}

		onStep(2, ui.StepComplete, strconv.Itoa(len(results))+" received")
		onStep(3, ui.StepSkipped, "lease kept for feedback")
		return receiveDetails(results), nil
	})

	if len(results) > 1 {
		a.printer.Newline()
		a.printer.PrintTable([]string{"#", "Pkey", "Mobile", "Code", "SMS"}, resultRows(results))
	}
	if err != nil {
		return reported(err)
	}
	return nil
}

// commandLine rebuilds the invocation from the flags that were set.
func commandLine(cmd *cobra.Command) []string {
	parts := []string{cmd.Name()}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		value := f.Value.String()
		if f.Name == "token" {
			value = logging.Redact(value)
		}
		parts = append(parts, "--"+f.Name+"="+value)
	})
	return parts
}

func progressNote(round int, note string) string {
	if receiveCount <= 1 {
		return note
	}
	if note == "" {
		return fmt.Sprintf("%d of %d", round, receiveCount)
	}
	return fmt.Sprintf("%d of %d: %s", round, receiveCount, note)
}

func receiveParams(params foxapi.GetPhoneParams, opts receiver.Options) []ui.Detail {
	details := []ui.Detail{{Key: "Project", Value: params.ProjectID}}
	if params.Country != "" {
		details = append(details, ui.Detail{Key: "Country", Value: params.Country})
	}
	if params.Mobile != "" {
		details = append(details, ui.Detail{Key: "Mobile", Value: params.Mobile})
	}
	details = append(details,
		ui.Detail{Key: "Messages", Value: strconv.Itoa(receiveCount)},
		ui.Detail{Key: "Poll every", Value: opts.Interval.String()},
		ui.Detail{Key: "Give up after", Value: opts.Timeout.String()},
	)
	return details
}

func receiveDetails(results []*receiver.Result) []ui.Detail {
	last := results[len(results)-1]
	details := leaseDetails(last.Lease)[:2]
	return append(details, messageDetails(last.Message)...)
}

func resultRows(results []*receiver.Result) [][]string {
	rows := make([][]string, 0, len(results))
	for i, r := range results {
		code, sms := "-", "-"
		if r.Message != nil {
			code = orDash(r.Message.Code)
			sms = r.Message.SMS
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), r.Lease.Pkey, r.Lease.Mobile, code, sms})
	}
	return rows
}
