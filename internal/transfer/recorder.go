package transfer

import (
	"fmt"

	"numport/internal/fileutil"
	"numport/internal/services"
)

// Recorder accumulates one string per discrete outcome, in chronological
// order, for post-run reporting. It is owned by the caller of Run; the
// executor only appends.
type Recorder struct {
	successes []string
	failures  []string
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Success appends a success outcome.
func (r *Recorder) Success(format string, args ...any) {
	r.successes = append(r.successes, fmt.Sprintf(format, args...))
}

// Failure appends a failure outcome.
func (r *Recorder) Failure(format string, args ...any) {
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

// Successes returns the recorded success outcomes in emission order.
func (r *Recorder) Successes() []string {
	out := make([]string, len(r.successes))
	copy(out, r.successes)
	return out
}

// Failures returns the recorded failure outcomes in emission order.
func (r *Recorder) Failures() []string {
	out := make([]string, len(r.failures))
	copy(out, r.failures)
	return out
}

// Counts returns the number of success and failure outcomes.
func (r *Recorder) Counts() (successes, failures int) {
	return len(r.successes), len(r.failures)
}

// Save writes both outcome files once, after the full plan has been
// processed. Empty runs still produce files holding empty arrays so a
// missing file always means "no run happened".
func (r *Recorder) Save(successPath, failurePath string) error {
	if err := fileutil.WriteJSONAtomic(successPath, r.Successes()); err != nil {
		return services.Wrap(services.ErrTransient, "transfer", "save results", "write success log", err)
	}
	if err := fileutil.WriteJSONAtomic(failurePath, r.Failures()); err != nil {
		return services.Wrap(services.ErrTransient, "transfer", "save results", "write failure log", err)
	}
	return nil
}
