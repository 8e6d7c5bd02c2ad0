package main

import (
	"github.com/spf13/cobra"

	"github.com/muurk/foxsms/internal/foxapi"
	"github.com/muurk/foxsms/internal/ui"
)

// Send command flags
var (
	smsText  string
	smsVoice bool
)

func init() {
	sendCmd.Flags().StringVarP(&smsText, "message", "m", "", "Text to send")
	sendCmd.Flags().BoolVar(&smsVoice, "voice", false, "Deliver as a voice call")
	_ = sendCmd.MarkFlagRequired("message")

	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(smsStatusCmd)
}

var sendCmd = &cobra.Command{
	Use:   "send <pkey>",
	Short: "Send an SMS from a leased number",
	Args:  cobra.ExactArgs(1),
	Example: `  foxsms send PK123 --message "hello"
  foxsms sms-status <send-id>`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		res, err := a.client.SendSms(cmd.Context(), foxapi.SendSmsParams{Pkey: args[0], Message: smsText, Voice: smsVoice})
		if err != nil {
			return a.fail("Send SMS", err)
		}
		return a.show("SMS queued", res.Status, res, func() []ui.Detail {
			return []ui.Detail{
				{Key: "Pkey", Value: args[0]},
				{Key: "Send id", Value: res.SendID},
			}
		})
	},
}

var smsStatusCmd = &cobra.Command{
	Use:   "sms-status <send-id>",
	Short: "Show the delivery status of a sent SMS",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		res, err := a.client.GetSmsStatus(cmd.Context(), foxapi.GetSmsStatusParams{SendID: args[0]})
		if err != nil {
			return a.fail("SMS status", err)
		}
		return a.show("SMS status", res.Status, res, func() []ui.Detail {
			return []ui.Detail{
				{Key: "Send id", Value: args[0]},
				{Key: "Status", Value: orDash(res.State)},
			}
		})
	},
}
