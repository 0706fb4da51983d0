package transfer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"numport/internal/services"
)

// AcquireRunLock takes the exclusive run lock guarding account mutations.
// The returned release function must be called when the run finishes.
// A held lock means another numport run is mutating the same accounts.
func AcquireRunLock(path string) (release func() error, err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "transfer", "lock", "create lock directory", err)
	}

	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "transfer", "lock", "acquire run lock", err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrConfiguration, "transfer", "lock",
			fmt.Sprintf("another numport run holds %s", path), nil)
	}
	return lock.Unlock, nil
}
