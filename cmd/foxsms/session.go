package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/muurk/foxsms/internal/foxapi"
	"github.com/muurk/foxsms/internal/logging"
	"github.com/muurk/foxsms/internal/ui"
)

// Login command flags
var (
	loginAPIName  string
	loginPassword string
)

func init() {
	loginCmd.Flags().StringVar(&loginAPIName, "api-name", "", "API account name (default: the last one used)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "API password (prompted when omitted)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(accountCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session token",
	Long: `Log in with your API account name and password.

The service returns a session token that is saved in the config file and
used by every later command. The password itself is never stored.`,
	Example: `  # Prompt for the password
  foxsms login --api-name myname

  # Non-interactive (password read from stdin)
  echo "$FOX_PASSWORD" | foxsms login --api-name myname`,
	RunE: runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	apiName := loginAPIName
	if apiName == "" && a.registry.Session != nil {
		apiName = a.registry.Session.APIName
	}
	if apiName == "" {
		return errors.New("--api-name is required for the first login")
	}

	password := loginPassword
	if password == "" {
		password, err = readPassword(cmd.InOrStdin(), cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
	}

	if a.jsonOutput() {
		res, err := a.client.Login(cmd.Context(), foxapi.LoginParams{APIName: apiName, Password: password})
		if err != nil {
			return a.fail("Login", err)
		}
		if res.Success {
			if err := saveSession(a, apiName, res.Token); err != nil {
				return err
			}
		}
		return a.show("Login", res.Status, res, nil)
	}

	runner := ui.NewRunner(ui.RunnerConfig{
		Title:   "Login",
		Command: "foxsms login",
		Params:  []ui.Detail{{Key: "API name", Value: apiName}, {Key: "Service", Value: a.client.BaseURL}},
		Steps:   []string{"Authenticate", "Save session"},
		Verbose: verbose,
		Output:  cmd.OutOrStdout(),
	})

	_, err = runner.Run(func(onStep ui.StepCallback) ([]ui.Detail, error) {
		onStep(1, ui.StepRunning, "")
		res, err := a.client.Login(cmd.Context(), foxapi.LoginParams{APIName: apiName, Password: password})
		if err != nil {
			onStep(1, ui.StepFailed, "")
			return nil, err
		}
		runner.SetRawResponse(res.Raw)
		if !res.Success {
			onStep(1, ui.StepFailed, res.Error)
			return nil, res.Err()
		}
		onStep(1, ui.StepComplete, "")

		onStep(2, ui.StepRunning, "")
		if err := saveSession(a, apiName, res.Token); err != nil {
			onStep(2, ui.StepFailed, "")
			return nil, err
		}
		onStep(2, ui.StepComplete, a.registry.Path())

		return []ui.Detail{
			{Key: "API name", Value: apiName},
			{Key: "Token", Value: logging.Redact(res.Token)},
		}, nil
	})
	if err != nil {
		return reported(err)
	}
	return nil
}

func saveSession(a *app, apiName, token string) error {
	a.registry.SetSession(apiName, token)
	if err := a.registry.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// readPassword prompts without echo on a terminal and reads one line otherwise.
func readPassword(in io.Reader, prompt io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Password: ")
		data, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("empty password")
	}
	return line, nil
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session token",
	Long: `Remove the session token from the config file.

The service has no logout action; the token simply stops being used. The
API name is kept so the next 'foxsms login' does not need --api-name.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := loadRegistry()
		if err != nil {
			return err
		}
		registry.ClearSession()
		if err := registry.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		printer := ui.NewPrinter(cmd.OutOrStdout())
		if outputFormat == formatJSON {
			return printer.PrintJSON(map[string]bool{"success": true})
		}
		printer.PrintSuccess("Logged out", []ui.Detail{{Key: "Config", Value: registry.Path()}})
		return nil
	},
}

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Show balance, level and points",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		info, err := a.client.GetAccountInfo(cmd.Context())
		if err != nil {
			return a.fail("Account", err)
		}
		return a.show("Account", info.Status, info, func() []ui.Detail {
			return []ui.Detail{
				{Key: "Balance", Value: strconv.FormatFloat(info.Balance, 'f', 2, 64)},
				{Key: "Level", Value: strconv.Itoa(info.Level)},
				{Key: "Points", Value: strconv.Itoa(info.Points)},
			}
		})
	},
}
