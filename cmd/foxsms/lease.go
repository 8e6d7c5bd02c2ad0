package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/foxsms/internal/foxapi"
	"github.com/muurk/foxsms/internal/receiver"
	"github.com/muurk/foxsms/internal/ui"
)

// Lease selection flags, shared by phone and receive
var (
	projectID string
	country   string
	deviceID  string
	wantDock  bool
	maxPrice  float64
	pinMobile string
	pushURL   string
)

// Waiting flags, shared by message and receive
var (
	waitForSMS  bool
	requireCode bool
	pollEvery   time.Duration
	waitTimeout time.Duration
)

// Lease management flags
var (
	blacklistReason string
	assumeYes       bool
	feedbackRemark  string
	reuseMinutes    int
)

func addLeaseFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&projectID, "project", "p", "", "Project id (iid) to lease a number for")
	cmd.Flags().StringVar(&country, "country", "", "Country code (default: preferences.default_country)")
	cmd.Flags().StringVar(&deviceID, "device-id", "", "Developer id (did)")
	cmd.Flags().BoolVar(&wantDock, "dock", false, "Request a dock code")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "Highest unit price to accept (0 = any)")
	cmd.Flags().StringVar(&pinMobile, "mobile", "", "Number or prefix to lease")
	cmd.Flags().StringVar(&pushURL, "push-url", "", "URL the service pushes the SMS to")
	_ = cmd.MarkFlagRequired("project")
}

func addWaitFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&requireCode, "require-code", false, "Keep waiting until the SMS contains a recognisable code")
	cmd.Flags().DurationVar(&pollEvery, "interval", 0, "Delay between polls (default: preferences.poll_interval_seconds)")
	cmd.Flags().DurationVar(&waitTimeout, "wait-timeout", 0, "Give up after this long (default: preferences.wait_timeout_seconds)")
}

func init() {
	addLeaseFlags(phoneCmd)

	messageCmd.Flags().BoolVarP(&waitForSMS, "wait", "w", false, "Poll until the message arrives")
	addWaitFlags(messageCmd)

	blacklistCmd.Flags().StringVar(&blacklistReason, "reason", "", "Why the number is unusable")
	blacklistCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
	_ = blacklistCmd.MarkFlagRequired("reason")

	feedbackCmd.Flags().StringVar(&feedbackRemark, "remark", "", "ok, no-sms, bad-code, other, or free text")
	_ = feedbackCmd.MarkFlagRequired("remark")

	reuseCmd.Flags().IntVar(&reuseMinutes, "minutes", foxapi.DefaultReuseMinutes, "Minutes before the number is offered again (2-300)")

	rootCmd.AddCommand(phoneCmd)
	rootCmd.AddCommand(messageCmd)
	rootCmd.AddCommand(releaseCmd)
	rootCmd.AddCommand(blacklistCmd)
	rootCmd.AddCommand(feedbackCmd)
	rootCmd.AddCommand(reuseCmd)
}

func phoneParams(a *app) foxapi.GetPhoneParams {
	c := country
	if c == "" && a.registry.Preferences != nil {
		c = a.registry.Preferences.DefaultCountry
	}
	return foxapi.GetPhoneParams{
		ProjectID:    projectID,
		Country:      c,
		DeviceID:     deviceID,
		WantDockCode: wantDock,
		MaxPrice:     maxPrice,
		Mobile:       pinMobile,
		PushURL:      pushURL,
	}
}

func waitOptions(a *app) receiver.Options {
	opts := receiver.DefaultOptions()
	opts.Interval = a.registry.PollInterval()
	opts.Timeout = a.registry.WaitTimeout()
	if pollEvery > 0 {
		opts.Interval = pollEvery
	}
	if waitTimeout > 0 {
		opts.Timeout = waitTimeout
	}
	opts.RequireCode = requireCode
	return opts
}

func leaseDetails(lease *foxapi.PhoneLease) []ui.Detail {
	mobile := lease.Mobile
	if e164, err := lease.E164(); err == nil {
		mobile = e164
	}
	details := []ui.Detail{
		{Key: "Pkey", Value: lease.Pkey},
		{Key: "Mobile", Value: mobile},
		{Key: "Country", Value: orDash(lease.CountryCode)},
	}
	if region := lease.Region(); region != "" {
		details = append(details, ui.Detail{Key: "Region", Value: region})
	}
	details = append(details,
		ui.Detail{Key: "Location", Value: orDash(lease.Location)},
		ui.Detail{Key: "Port", Value: orDash(lease.Port)},
		ui.Detail{Key: "Fetched at", Value: orDash(lease.FetchedAt)},
	)
	if lease.DockCode != "" {
		details = append(details, ui.Detail{Key: "Dock code", Value: lease.DockCode})
	}
	return details
}

func messageDetails(msg *foxapi.Message) []ui.Detail {
	code := "(not recognised)"
	if msg.HasCode() {
		code = ui.CodeStyle.Render(msg.Code)
	}
	return []ui.Detail{
		{Key: "Code", Value: code},
		{Key: "SMS", Value: msg.SMS},
		{Key: "Received at", Value: orDash(msg.ReceivedAt)},
	}
}

var phoneCmd = &cobra.Command{
	Use:   "phone",
	Short: "Lease a phone number",
	Example: `  # Any number for project 1001
  foxsms phone --project 1001

  # A Chinese number no dearer than 1.5
  foxsms phone --project 1001 --country CHN --max-price 1.5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		lease, err := a.client.GetPhone(cmd.Context(), phoneParams(a))
		if err != nil {
			return a.fail("Lease number", err)
		}
		return a.show("Number leased", lease.Status, lease, func() []ui.Detail {
			return leaseDetails(lease)
		})
	},
}

var messageCmd = &cobra.Command{
	Use:   "message <pkey>",
	Short: "Fetch the SMS received by a leased number",
	Long: `Fetch the SMS received by a leased number.

Without --wait a single getMessage call is made; "not received yet" is
reported as a failure. With --wait the command polls until the message
arrives or --wait-timeout passes. The lease is NOT released on timeout.`,
	Example: `  foxsms message PK123
  foxsms message PK123 --wait --require-code --wait-timeout 2m`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		pkey := args[0]

		if !waitForSMS {
			msg, err := a.client.GetMessage(cmd.Context(), foxapi.GetMessageParams{Pkey: pkey})
			if err != nil {
				return a.fail("Message", err)
			}
			return a.show("Message received", msg.Status, msg, func() []ui.Detail {
				return messageDetails(msg)
			})
		}

		opts := waitOptions(a)
		var msg *foxapi.Message
		label := fmt.Sprintf("Waiting for SMS on %s", pkey)
		err = ui.RunWithSpinner(cmd.Context(), cmd.OutOrStdout(), label, func(ctx context.Context, status func(string)) error {
			opts.OnAttempt = func(at receiver.Attempt) {
				status(fmt.Sprintf("poll %d, %s elapsed", at.Number, at.Elapsed.Round(time.Second)))
			}
			var err error
			msg, err = receiver.WaitForMessage(ctx, a.client, "", pkey, opts)
			return err
		})
		if err != nil {
			return a.fail("Wait for message", err)
		}
		return a.show("Message received", msg.Status, msg, func() []ui.Detail {
			return messageDetails(msg)
		})
	},
}

var releaseCmd = &cobra.Command{
	Use:   "release <pkey>",
	Short: "Release a leased number",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		status, err := a.client.ReleasePhone(cmd.Context(), foxapi.LeaseParams{Pkey: args[0]})
		if err != nil {
			return a.fail("Release", err)
		}
		return a.show("Number released", *status, status, func() []ui.Detail {
			return []ui.Detail{{Key: "Pkey", Value: args[0]}}
		})
	},
}

var blacklistCmd = &cobra.Command{
	Use:   "blacklist <pkey>",
	Short: "Blacklist a leased number",
	Args:  cobra.ExactArgs(1),
	Example: `  foxsms blacklist PK123 --reason "number already registered"
  foxsms blacklist PK123 --reason "no signal" --yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		pkey := args[0]

		if !assumeYes {
			if a.jsonOutput() {
				return fmt.Errorf("--yes is required with --format %s", formatJSON)
			}
			if !ui.ConfirmBlacklist(cmd.InOrStdin(), cmd.OutOrStdout(), pkey) {
				return nil
			}
		}

		status, err := a.client.BlacklistPhone(cmd.Context(), foxapi.BlacklistParams{Pkey: pkey, Reason: blacklistReason})
		if err != nil {
			return a.fail("Blacklist", err)
		}
		return a.show("Number blacklisted", *status, status, func() []ui.Detail {
			return []ui.Detail{{Key: "Pkey", Value: pkey}, {Key: "Reason", Value: blacklistReason}}
		})
	},
}

// remarkAliases maps friendly names to the remarks apiReturn documents.
var remarkAliases = map[string]string{
	"ok":       foxapi.RemarkOK,
	"no-sms":   foxapi.RemarkNoSMS,
	"bad-code": foxapi.RemarkBadCode,
	"other":    foxapi.RemarkOtherErr,
}

func resolveRemark(remark string) string {
	if code, ok := remarkAliases[remark]; ok {
		return code
	}
	return remark
}

var feedbackCmd = &cobra.Command{
	Use:   "feedback <pkey>",
	Short: "Report how a lease went",
	Args:  cobra.ExactArgs(1),
	Example: `  foxsms feedback PK123 --remark ok
  foxsms feedback PK123 --remark bad-code`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		remark := resolveRemark(feedbackRemark)
		status, err := a.client.FeedbackStatus(cmd.Context(), foxapi.FeedbackParams{Pkey: args[0], Remark: remark})
		if err != nil {
			return a.fail("Feedback", err)
		}
		return a.show("Feedback sent", *status, status, func() []ui.Detail {
			return []ui.Detail{{Key: "Pkey", Value: args[0]}, {Key: "Remark", Value: remark}}
		})
	},
}

var reuseCmd = &cobra.Command{
	Use:   "reuse <pkey>",
	Short: "Ask for a number to be offered again after a delay",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		status, err := a.client.ReuseNumber(cmd.Context(), foxapi.ReuseParams{Pkey: args[0], MinutesDelay: reuseMinutes})
		if err != nil {
			return a.fail("Reuse", err)
		}
		return a.show("Reuse scheduled", *status, status, func() []ui.Detail {
			return []ui.Detail{{Key: "Pkey", Value: args[0]}, {Key: "Delay", Value: strconv.Itoa(reuseMinutes) + " min"}}
		})
	},
}
