package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"numport/internal/logging"
	"numport/internal/plan"
	"numport/internal/prompt"
	"numport/internal/transfer"
)

func newTransferCommand(ctx *commandContext) *cobra.Command {
	var planPath string
	var yes bool

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Execute the transfer plan against both accounts",
		Long: `Execute the saved transfer plan entry by entry: move each phone number to
the target account, delete migrated domain dial-in configs from the source,
and recreate each config on the target. Entries run strictly in plan order
and one failed entry never stops the rest of the run.

Success and failure records are written to the configured result files after
every run, including interrupted ones. When a config fails to create on the
target, interactive runs are offered a rollback of that entry; scripted runs
leave the entry for manual repair.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			path, err := ctx.planPath(planPath)
			if err != nil {
				return err
			}
			p, err := plan.Load(path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if p.Len() == 0 {
				fmt.Fprintln(out, "Transfer plan is empty; nothing to do")
				return nil
			}

			fmt.Fprintln(out, renderTable(planHeaders(), planRows(p)))

			if !yes {
				if !prompt.InteractiveStdin() {
					return fmt.Errorf("refusing to transfer %d entries without confirmation; rerun with --yes", p.Len())
				}
				ok, err := ctx.console().Confirm(fmt.Sprintf("Transfer %d entries to the target account?", p.Len()))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, "Transfer cancelled")
					return nil
				}
			}

			sourceKey, err := cfg.RequireSourceKey()
			if err != nil {
				return err
			}
			targetKey, err := cfg.RequireTargetKey()
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

			releaseLock, err := transfer.AcquireRunLock(cfg.LockFile())
			if err != nil {
				return err
			}
			defer func() { _ = releaseLock() }()

			rollback := prompt.DeclineRollback
			if prompt.InteractiveStdin() {
				rollback = prompt.RollbackDecider(ctx.console())
			}

			executor, err := transfer.NewExecutor(transfer.Options{
				Source:         source,
				Target:         target,
				SourceKey:      sourceKey,
				TargetKey:      targetKey,
				RollbackPrompt: rollback,
				Logger:         logger,
				EntryDelay:     time.Duration(cfg.Transfer.EntryDelay) * time.Second,
			})
			if err != nil {
				return err
			}

			summary, runErr := executor.Run(cmd.Context(), p)

			// A run that aborted before recording anything keeps the
			// previous result files; once anything was recorded the files
			// are written even for a cancelled run.
			successes, failures := executor.Recorder().Counts()
			if runErr == nil || successes+failures > 0 {
				if err := executor.Recorder().Save(cfg.Paths.SuccessFile, cfg.Paths.FailureFile); err != nil {
					logger.Error("failed to write result files", logging.Error(err))
					if runErr == nil {
						runErr = err
					}
				}
				fmt.Fprintf(out, "Transfer finished: %d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
				fmt.Fprintf(out, "Results recorded in %s and %s\n", cfg.Paths.SuccessFile, cfg.Paths.FailureFile)
			}
			return runErr
		},
	}

	cmd.Flags().StringVar(&planPath, "plan", "", "Path to the transfer plan (default: configured plan_file)")
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	return cmd
}
