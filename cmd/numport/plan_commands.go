package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"numport/internal/callerid"
	"numport/internal/discovery"
	"numport/internal/logging"
	"numport/internal/plan"
	"numport/internal/prompt"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Build and inspect the transfer plan",
	}

	planCmd.AddCommand(newPlanNewCommand(ctx))
	planCmd.AddCommand(newPlanShowCommand(ctx))

	return planCmd
}

func newPlanNewCommand(ctx *commandContext) *cobra.Command {
	var includeAll bool

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Discover the source account and write a fresh transfer plan",
		Long: `Discover the source account's purchased numbers and dial-in configs, then
write the transfer plan and the caller ID seed file. Both accounts are
verified up front, but nothing on either account is modified.

The plan is a JSON file keyed by phone number (or SIP URI for configs with
no number). Review or hand-edit it before running 'numport transfer'.
Purchased numbers without a platform id cannot be transferred; they land in
the caller ID seed for 'numport callerids register' instead.

When run interactively the command asks which numbers to include and whether
to keep dial-in configs that match no selected number. Non-interactive runs
select every number and skip unmatched configs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			source, err := ctx.sourceClient()
			if err != nil {
				return err
			}
			target, err := ctx.targetClient()
			if err != nil {
				return err
			}

			sourceDomain, err := source.Domain(cmd.Context())
			if err != nil {
				return fmt.Errorf("source account check: %w", err)
			}
			targetDomain, err := target.Domain(cmd.Context())
			if err != nil {
				return fmt.Errorf("target account check: %w", err)
			}
			logger.Info("accounts verified",
				logging.String("source_domain", sourceDomain.DomainName),
				logging.String("target_domain", targetDomain.DomainName))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Source account: %s (%s)\n", sourceDomain.DomainName, sourceDomain.DomainID)
			fmt.Fprintf(out, "Target account: %s (%s)\n", targetDomain.DomainName, targetDomain.DomainID)

			interactive := prompt.InteractiveStdin()
			if interactive {
				ok, err := ctx.console().Confirm(fmt.Sprintf("Plan a transfer from %s to %s?",
					sourceDomain.DomainName, targetDomain.DomainName))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, "Plan cancelled")
					return nil
				}
			}

			snapshot := discovery.New(source, logger).Snapshot(cmd.Context())
			if len(snapshot.Numbers) == 0 && len(snapshot.Pinless) == 0 &&
				len(snapshot.Pin) == 0 && len(snapshot.DomainConfigs) == 0 {
				fmt.Fprintln(out, "Nothing to plan: the source account has no purchased numbers or dial-in configs")
				return nil
			}

			selected := snapshot.Numbers
			var decisions plan.Decisions
			if interactive {
				decider := &prompt.PlanDecider{Console: ctx.console()}
				if !includeAll {
					if selected, err = decider.SelectNumbers(snapshot.Numbers); err != nil {
						return err
					}
				}
				decisions = decider
			} else {
				decisions = &prompt.NonInteractiveDecisions{Logger: logger}
			}

			configs := plan.Reconcile(snapshot.Pinless, snapshot.Pin, snapshot.DomainConfigs)
			result, err := plan.Build(selected, configs, decisions, logger)
			if err != nil {
				return err
			}

			if err := plan.Save(cfg.Paths.PlanFile, result.Plan); err != nil {
				return err
			}
			if err := callerid.SaveSeed(cfg.Paths.CallerIDFile, result.Skipped); err != nil {
				return err
			}

			if result.Plan.Len() > 0 {
				fmt.Fprintln(out, renderTable(planHeaders(), planRows(result.Plan)))
			}
			fmt.Fprintf(out, "Wrote transfer plan with %d entries to %s\n", result.Plan.Len(), cfg.Paths.PlanFile)
			fmt.Fprintf(out, "Wrote caller ID seed with %d numbers to %s\n", len(result.Skipped), cfg.Paths.CallerIDFile)
			if len(result.Skipped) > 0 {
				fmt.Fprintln(out, "Numbers without a platform id cannot be transferred; register them with 'numport callerids register'")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeAll, "all", false, "Select every purchased number without prompting")
	return cmd
}

func newPlanShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var planPath string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display the saved transfer plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := ctx.planPath(planPath)
			if err != nil {
				return err
			}
			p, err := plan.Load(path)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, p)
			}
			out := cmd.OutOrStdout()
			if p.Len() == 0 {
				fmt.Fprintln(out, "Transfer plan is empty")
				return nil
			}
			fmt.Fprintln(out, renderTable(planHeaders(), planRows(p)))
			fmt.Fprintf(out, "%d entries in %s\n", p.Len(), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the plan as JSON")
	cmd.Flags().StringVar(&planPath, "plan", "", "Path to the transfer plan (default: configured plan_file)")
	return cmd
}

func planHeaders() []string {
	return []string{"Identifier", "Phone ID", "Config Source", "Config ID"}
}

func planRows(p *plan.Plan) [][]string {
	rows := make([][]string, 0, p.Len())
	for _, identifier := range p.Identifiers() {
		entry, ok := p.Get(identifier)
		if !ok {
			continue
		}
		rows = append(rows, []string{
			identifier,
			dash(entry.SourcePhoneID),
			dash(string(entry.SourceType)),
			dash(entry.ConfigID),
		})
	}
	return rows
}
