package release

import (
	"context"
	"log/slog"
	"strings"

	"numport/internal/logging"
	"numport/internal/services/daily"
)

// Releaser is the remote surface a bulk release needs. *daily.Client
// satisfies it.
type Releaser interface {
	ReleaseNumber(ctx context.Context, phoneID string) error
}

// Summary reports one bulk release pass.
type Summary struct {
	Released       int
	Failed         int
	TotalActive    int
	AlreadyDeleted int
}

// Active filters out numbers the platform already marks deleted.
func Active(numbers []daily.PhoneNumber) []daily.PhoneNumber {
	var active []daily.PhoneNumber
	for _, number := range numbers {
		if !number.Deleted {
			active = append(active, number)
		}
	}
	return active
}

// ReleaseAll releases every listed number, continuing past individual
// failures. Numbers without a platform id cannot be released and count as
// failures.
func ReleaseAll(ctx context.Context, client Releaser, numbers []daily.PhoneNumber, logger *slog.Logger) Summary {
	if logger == nil {
		logger = logging.NewNop()
	}

	active := Active(numbers)
	summary := Summary{
		TotalActive:    len(active),
		AlreadyDeleted: len(numbers) - len(active),
	}

	for _, number := range active {
		phoneID := strings.TrimSpace(number.ID)
		if phoneID == "" {
			logger.Warn("skipping number with no platform id",
				logging.String(logging.FieldIdentifier, number.Number))
			summary.Failed++
			continue
		}
		if err := client.ReleaseNumber(ctx, phoneID); err != nil {
			logger.Error("release failed",
				logging.String(logging.FieldIdentifier, number.Number),
				logging.String(logging.FieldPhoneID, phoneID),
				logging.Error(err))
			summary.Failed++
			continue
		}
		logger.Info("number released",
			logging.String(logging.FieldIdentifier, number.Number),
			logging.String(logging.FieldPhoneID, phoneID))
		summary.Released++
	}
	return summary
}
