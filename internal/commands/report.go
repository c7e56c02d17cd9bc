package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taxtracker/taxtracker/internal/form"
)

func newTotalsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "totals",
		Short: "Print total income, expenses and net income",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.loadForm()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), f.CalculateTotals().Report())
			return nil
		},
	}
}

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every loaded transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.loadForm()
			if err != nil {
				return err
			}
			for _, line := range f.Log() {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}

func newAddCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <description> <amount>",
		Short: "Check a transaction against the loaded ones and show the new totals",
		Long: "Validates a transaction the same way the form does and prints the resulting\n" +
			"log line and totals. The transactions file is not modified.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.loadForm()
			if err != nil {
				return err
			}

			rec, err := f.AddTransaction(form.Input{Description: args[0], Amount: args[1]})
			if err != nil {
				n := form.NoticeFor(err)
				return fmt.Errorf("%s: %s", n.Title, n.Body)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, form.FormatRecord(rec))
			fmt.Fprintln(out, f.CalculateTotals().Report())
			return nil
		},
	}
}
