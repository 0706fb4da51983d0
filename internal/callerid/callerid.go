package callerid

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"strings"

	"numport/internal/fileutil"
	"numport/internal/logging"
	"numport/internal/services"
)

// Entry is one number awaiting verified caller id registration.
type Entry struct {
	Number string `json:"number"`
	Name   string `json:"name"`
}

// Creator is the remote surface Register needs. *daily.Client satisfies it.
type Creator interface {
	CreateVerifiedCallerID(ctx context.Context, number, name string) error
}

// Summary reports the outcome of a registration pass.
type Summary struct {
	Registered int
	Failed     int
}

// LoadSeed reads a seed file written by the plan builder. A missing file is
// not an error; it simply means no numbers were skipped.
func LoadSeed(path string) ([]Entry, error) {
	var entries []Entry
	if err := fileutil.ReadJSON(path, &entries); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, services.Wrap(services.ErrValidation, "callerid", "load seed", "read caller id seed file", err)
	}
	return entries, nil
}

// SaveSeed persists the skipped-number list for later registration.
func SaveSeed(path string, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	if err := fileutil.WriteJSONAtomic(path, entries); err != nil {
		return services.Wrap(services.ErrTransient, "callerid", "save seed", "write caller id seed file", err)
	}
	return nil
}

// Register creates a verified caller id for every entry on the target
// account. Failures are logged and counted but do not stop the pass.
func Register(ctx context.Context, client Creator, entries []Entry, logger *slog.Logger) Summary {
	if logger == nil {
		logger = logging.NewNop()
	}
	var summary Summary
	for _, entry := range entries {
		number := strings.TrimSpace(entry.Number)
		if number == "" {
			logger.Warn("skipping seed entry with empty number", logging.String("name", entry.Name))
			summary.Failed++
			continue
		}
		if err := client.CreateVerifiedCallerID(ctx, number, entry.Name); err != nil {
			logger.Error("verified caller id registration failed",
				logging.String(logging.FieldIdentifier, number),
				logging.Error(err))
			summary.Failed++
			continue
		}
		logger.Info("verified caller id registered",
			logging.String(logging.FieldIdentifier, number),
			logging.String("name", entry.Name))
		summary.Registered++
	}
	return summary
}
