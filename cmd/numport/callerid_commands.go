package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"numport/internal/callerid"
	"numport/internal/config"
)

func newCallerIDCommand(ctx *commandContext) *cobra.Command {
	callerIDCmd := &cobra.Command{
		Use:   "callerids",
		Short: "Register caller IDs on the target account",
	}

	callerIDCmd.AddCommand(newCallerIDRegisterCommand(ctx))

	return callerIDCmd
}

func newCallerIDRegisterCommand(ctx *commandContext) *cobra.Command {
	var seedPath string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register the seeded numbers as unverified caller IDs",
		Long: `Register every number from the caller ID seed file on the target account.
The seed is written by 'numport plan new' for purchased numbers that have no
platform id and therefore cannot be transferred. Individual failures do not
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

			path := strings.TrimSpace(seedPath)
			if path == "" {
				path = cfg.Paths.CallerIDFile
			} else if path, err = config.ExpandPath(path); err != nil {
				return err
			}

			entries, err := callerid.LoadSeed(path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintf(out, "No caller IDs to register (seed %s is empty or missing)\n", path)
				return nil
			}

			client, err := ctx.targetClient()
			if err != nil {
				return err
			}

			summary := callerid.Register(cmd.Context(), client, entries, logger)
			fmt.Fprintf(out, "Registered %d of %d caller IDs (%d failed)\n",
				summary.Registered, len(entries), summary.Failed)
			return nil
		},
	}

	cmd.Flags().StringVar(&seedPath, "file", "", "Path to the caller ID seed (default: configured caller_id_file)")
	return cmd
}
