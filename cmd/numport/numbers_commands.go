package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"numport/internal/prompt"
	"numport/internal/release"
	"numport/internal/transfer"
)

// releaseConfirmPhrase must be typed verbatim before a bulk release proceeds.
const releaseConfirmPhrase = "DELETE ALL"

func newNumbersCommand(ctx *commandContext) *cobra.Command {
	numbersCmd := &cobra.Command{
		Use:   "numbers",
		Short: "Inspect and release purchased phone numbers",
	}

	numbersCmd.AddCommand(newNumbersListCommand(ctx))
	numbersCmd.AddCommand(newNumbersReleaseCommand(ctx))

	return numbersCmd
}

func newNumbersListCommand(ctx *commandContext) *cobra.Command {
	var account string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List purchased phone numbers on one account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.clientFor(account)
			if err != nil {
				return err
			}
			numbers, err := client.PurchasedNumbers(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, numbers)
			}
			out := cmd.OutOrStdout()
			if len(numbers) == 0 {
				fmt.Fprintf(out, "No purchased numbers on the %s account\n", account)
				return nil
			}
			rows := make([][]string, 0, len(numbers))
			for _, number := range numbers {
				status := "active"
				if number.Deleted {
					status = "deleted"
				}
				rows = append(rows, []string{
					number.Number,
					dash(number.ID),
					dash(number.Name),
					dash(strings.ToUpper(number.Country)),
					dash(displayTitle.String(number.Provider)),
					dash(shortDate(number.CreatedAt)),
					status,
				})
			}
			fmt.Fprintln(out, renderTable([]string{"Number", "ID", "Name", "Country", "Provider", "Created", "Status"}, rows))
			fmt.Fprintf(out, "%d numbers on the %s account (%d active)\n",
				len(numbers), account, len(release.Active(numbers)))
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", accountSource, "Account to list (source or target)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the numbers as JSON")
	return cmd
}

func newNumbersReleaseCommand(ctx *commandContext) *cobra.Command {
	var account string
	var yes bool

	cmd := &cobra.Command{
		Use:   "release",
		Short: "Release every active phone number on one account",
		Long: `Release every active purchased phone number on the chosen account. Released
numbers go back to the platform pool and cannot be recovered, so the command
asks for two confirmations unless --yes is given. Individual failures do not
stop the rest of the pass.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			client, err := ctx.clientFor(account)
			if err != nil {
				return err
			}

			numbers, err := client.PurchasedNumbers(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			active := release.Active(numbers)
			if len(active) == 0 {
				fmt.Fprintf(out, "No active numbers to release on the %s account\n", account)
				return nil
			}

			rows := make([][]string, 0, len(active))
			for _, number := range active {
				rows = append(rows, []string{number.Number, dash(number.Name), dash(number.ID)})
			}
			fmt.Fprintln(out, renderTable([]string{"Number", "Name", "ID"}, rows))

			if !yes {
				if !prompt.InteractiveStdin() {
					return fmt.Errorf("refusing to release %d numbers without confirmation; rerun with --yes", len(active))
				}
				console := ctx.console()
				ok, err := console.Confirm(fmt.Sprintf("Release all %d active numbers from the %s account?", len(active), account))
				if err != nil {
					return err
				}
				if ok {
					ok, err = console.ConfirmExact(fmt.Sprintf("This cannot be undone. Type %q to continue: ", releaseConfirmPhrase), releaseConfirmPhrase)
					if err != nil {
						return err
					}
				}
				if !ok {
					fmt.Fprintln(out, "Release cancelled")
					return nil
				}
			}

			releaseLock, err := transfer.AcquireRunLock(cfg.LockFile())
			if err != nil {
				return err
			}
			defer func() { _ = releaseLock() }()

			summary := release.ReleaseAll(cmd.Context(), client, numbers, logger)
			fmt.Fprintf(out, "Released %d of %d active numbers (%d failed, %d already deleted)\n",
				summary.Released, summary.TotalActive, summary.Failed, summary.AlreadyDeleted)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", accountSource, "Account to release numbers from (source or target)")
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip both confirmation prompts")
	return cmd
}
