package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"numport/internal/logging"
	"numport/internal/services/daily"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify API access to the source and target accounts",
		Long: `Verify that both configured API keys authenticate against the platform by
fetching each account's identity. Run this before planning or transferring;
a nonzero exit means at least one account is unreachable.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			rows := make([][]string, 0, 2)
			var failed []string
			for _, role := range []string{accountSource, accountTarget} {
				domain, err := checkAccount(cmd.Context(), ctx, role)
				if err != nil {
					logger.Error("account check failed",
						logging.String(logging.FieldAccount, role),
						logging.Error(err))
					rows = append(rows, []string{displayTitle.String(role), "-", "-", "-", err.Error()})
					failed = append(failed, role)
					continue
				}
				hasDialin := len(domain.Config.PinlessDialin) > 0 || len(domain.Config.PinDialin) > 0
				logger.Info("account check passed",
					logging.String(logging.FieldAccount, role),
					logging.String("domain", domain.DomainName),
					logging.Bool("root_dialin", hasDialin))
				rows = append(rows, []string{displayTitle.String(role), domain.DomainName, domain.DomainID, yesNo(hasDialin), "ok"})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Account", "Domain", "Domain ID", "Root Dial-in", "Status"}, rows))
			if len(failed) > 0 {
				return fmt.Errorf("account check failed for %s", strings.Join(failed, ", "))
			}
			return nil
		},
	}
}

func checkAccount(ctx context.Context, cmdCtx *commandContext, role string) (*daily.Domain, error) {
	client, err := cmdCtx.clientFor(role)
	if err != nil {
		return nil, err
	}
	return client.Domain(ctx)
}
