package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/muurk/foxsms/internal/foxapi"
	"github.com/muurk/foxsms/internal/ui"
)

var priceKeyword string

func init() {
	priceCmd.Flags().StringVarP(&priceKeyword, "keyword", "k", "", "Filter by project name")

	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(codesCmd)
}

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "List project prices",
	Example: `  foxsms price
  foxsms price --keyword 微信`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		list, err := a.client.GetPriceList(cmd.Context(), foxapi.PriceListParams{Keyword: priceKeyword})
		if err != nil {
			return a.fail("Price list", err)
		}
		if a.jsonOutput() || !list.Success {
			return a.show("Price list", list.Status, list, nil)
		}

		if len(list.Items) == 0 {
			a.printer.PrintWarning("No matching projects", []ui.Detail{{Key: "Keyword", Value: orDash(priceKeyword)}})
			return nil
		}
		a.printer.PrintTable([]string{"Item", "Name", "Price", "Country"}, priceRows(list.Items))
		if verbose {
			a.printer.PrintRawResponse(list.Raw)
		}
		return nil
	},
}

func priceRows(items []foxapi.PriceItem) [][]string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		country := item.CountryTitle
		if item.CountryID != "" {
			country = strings.TrimSpace(item.CountryID + " " + item.CountryTitle)
		}
		rows = append(rows, []string{
			item.ItemID,
			item.ItemName,
			strconv.FormatFloat(float64(item.UnitPrice), 'f', -1, 64),
			orDash(country),
		})
	}
	return rows
}

var codesCmd = &cobra.Command{
	Use:   "codes [action]",
	Short: "Show the documented error codes",
	Long: `Show what the service's negative error codes mean.

With no argument every documented action is listed. Actions are named by
their act value: login, myInfo, getPhone, getMessage, setRel, addBlack,
apiReturn, setAgain.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		actions := foxapi.DocumentedActions()
		if len(args) == 1 {
			action, err := findAction(args[0])
			if err != nil {
				return err
			}
			actions = []foxapi.Action{action}
		}

		printer := ui.NewPrinter(cmd.OutOrStdout())
		if outputFormat == formatJSON {
			out := make(map[foxapi.Action][]foxapi.CodeEntry, len(actions))
			for _, action := range actions {
				out[action] = foxapi.CodeTable(action)
			}
			return printer.PrintJSON(out)
		}

		for i, action := range actions {
			if i > 0 {
				printer.Newline()
			}
			printer.Println(ui.HeaderTitleStyle.Render(string(action)))
			var rows [][]string
			for _, entry := range foxapi.CodeTable(action) {
				rows = append(rows, []string{strconv.Itoa(entry.Code), entry.Meaning})
			}
			printer.PrintTable([]string{"Code", "Meaning"}, rows)
		}
		return nil
	},
}

func findAction(name string) (foxapi.Action, error) {
	for _, action := range foxapi.DocumentedActions() {
		if strings.EqualFold(string(action), name) {
			return action, nil
		}
	}
	return "", fmt.Errorf("no error codes documented for %q", name)
}
