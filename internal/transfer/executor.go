package transfer

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"numport/internal/logging"
	"numport/internal/plan"
	"numport/internal/services"
	"numport/internal/services/daily"
)

// State names how far a plan entry progressed.
type State string

const (
	StatePending        State = "pending"
	StateRejected       State = "rejected"
	StateNumberMoved    State = "number_moved"
	StateConfigCleaned  State = "config_cleaned"
	StateConfigCreated  State = "config_created"
	StateTransferFailed State = "transfer_failed"
	StateConfigFailed   State = "config_failed"
	StateRolledBack     State = "rolled_back"
)

// Account is the mutating surface of one platform account. *daily.Client
// satisfies it.
type Account interface {
	Domain(ctx context.Context) (*daily.Domain, error)
	TransferNumber(ctx context.Context, phoneID string, req daily.TransferRequest) error
	CreateDialinConfig(ctx context.Context, cfg daily.DialinConfig) error
	DeleteDialinConfig(ctx context.Context, configID string) error
}

// Options configures an executor. Source and Target are the two accounts;
// the API keys ride along because the transfer endpoint wants the
// destination key in the request body.
type Options struct {
	Source    Account
	Target    Account
	SourceKey string
	TargetKey string

	Recorder       *Recorder
	RollbackPrompt func(identifier string) bool
	Logger         *slog.Logger
	EntryDelay     time.Duration
	Sleep          daily.SleepFunc
}

// Executor walks a plan entry by entry. Use NewExecutor.
type Executor struct {
	source    Account
	target    Account
	sourceKey string
	targetKey string

	recorder   *Recorder
	rollback   func(identifier string) bool
	logger     *slog.Logger
	entryDelay time.Duration
	sleep      daily.SleepFunc

	sourceDomain string
	targetDomain string
}

// Summary counts entry outcomes for one run.
type Summary struct {
	Succeeded int
	Failed    int
}

// NewExecutor validates the options and returns a ready executor.
func NewExecutor(opts Options) (*Executor, error) {
	if opts.Source == nil || opts.Target == nil {
		return nil, services.Wrap(services.ErrConfiguration, "transfer", "new", "source and target accounts are required", nil)
	}
	if strings.TrimSpace(opts.SourceKey) == "" || strings.TrimSpace(opts.TargetKey) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "transfer", "new", "source and target API keys are required", nil)
	}

	exec := &Executor{
		source:     opts.Source,
		target:     opts.Target,
		sourceKey:  opts.SourceKey,
		targetKey:  opts.TargetKey,
		recorder:   opts.Recorder,
		rollback:   opts.RollbackPrompt,
		logger:     opts.Logger,
		entryDelay: opts.EntryDelay,
		sleep:      opts.Sleep,
	}
	if exec.recorder == nil {
		exec.recorder = NewRecorder()
	}
	if exec.logger == nil {
		exec.logger = logging.NewNop()
	}
	if exec.sleep == nil {
		exec.sleep = defaultSleep
	}
	return exec, nil
}

// Recorder returns the recorder outcomes are appended to.
func (e *Executor) Recorder() *Recorder {
	return e.recorder
}

// Run verifies both account identities, then processes every plan entry in
// order. Identity verification failing aborts before any mutation. Entry
// failures are isolated; the returned error is only non-nil when the run
// itself could not proceed or was cancelled between entries.
func (e *Executor) Run(ctx context.Context, p *plan.Plan) (Summary, error) {
	var summary Summary
	if p == nil || p.Len() == 0 {
		e.logger.Info("transfer plan is empty, nothing to do")
		return summary, nil
	}

	source, err := e.source.Domain(ctx)
	if err != nil {
		return summary, services.Wrap(services.ErrRemote, "transfer", "verify identity", "source account identity check failed", err)
	}
	target, err := e.target.Domain(ctx)
	if err != nil {
		return summary, services.Wrap(services.ErrRemote, "transfer", "verify identity", "target account identity check failed", err)
	}
	e.sourceDomain = source.DomainName
	e.targetDomain = target.DomainName

	identifiers := p.Identifiers()
	e.logger.Info("transfer run starting",
		logging.String("source_domain", e.sourceDomain),
		logging.String("target_domain", e.targetDomain),
		logging.Int("entries", len(identifiers)))

	for i, identifier := range identifiers {
		entry, ok := p.Get(identifier)
		if !ok {
			continue
		}

		entryCtx := services.WithIdentifier(ctx, identifier)
		if entry.SourcePhoneID != "" {
			entryCtx = services.WithPhoneID(entryCtx, entry.SourcePhoneID)
		}
		logger := logging.WithContext(entryCtx, e.logger)

		state, succeeded := e.transferEntry(entryCtx, logger, identifier, entry)
		if succeeded {
			summary.Succeeded++
			logger.Info("entry complete", logging.String("state", string(state)))
		} else {
			summary.Failed++
			logger.Error("entry failed", logging.String("state", string(state)))
		}

		if i < len(identifiers)-1 && e.entryDelay > 0 {
			if err := e.sleep(ctx, e.entryDelay); err != nil {
				return summary, services.Wrap(services.ErrTransient, "transfer", "pace", "run cancelled between entries", err)
			}
		}
	}

	e.logger.Info("transfer run complete",
		logging.Int("succeeded", summary.Succeeded),
		logging.Int("failed", summary.Failed))
	return summary, nil
}

// transferEntry performs the per-entry state machine. The payloads are
// derived before any mutation so a config that cannot be recreated rejects
// the entry while the number is still on the source account.
func (e *Executor) transferEntry(ctx context.Context, logger *slog.Logger, identifier string, entry *plan.Entry) (State, bool) {
	var targetPayload, restorePayload daily.DialinConfig
	if entry.HasConfig() {
		var err error
		targetPayload, err = TargetPayload(entry.ConfigData)
		if err == nil {
			restorePayload, err = RestorePayload(entry.ConfigData)
		}
		if err != nil {
			e.recorder.Failure("%s: config rejected: %v", identifier, err)
			logger.Error("config payload rejected before transfer", logging.Error(err))
			return StateRejected, false
		}
	}
	if entry.SourcePhoneID == "" && targetPayload == nil {
		logger.Warn("entry has neither a number nor config data, nothing to do")
		return StatePending, true
	}

	state := StatePending
	moved := false
	if entry.SourcePhoneID != "" {
		req := daily.TransferRequest{
			TransferDomainName: e.targetDomain,
			TransferDomainAPI:  e.targetKey,
		}
		if err := e.source.TransferNumber(ctx, entry.SourcePhoneID, req); err != nil {
			e.recorder.Failure("%s: number move failed: %v", identifier, err)
			logger.Error("number move failed", logging.Error(err))
			return StateTransferFailed, false
		}
		moved = true
		state = StateNumberMoved
		e.recorder.Success("%s: number moved to %s", identifier, e.targetDomain)
		logger.Info("number moved to target")
	}

	// Only domain-dialin-config records live as deletable resources on the
	// source; root-list configs disappear with the number itself.
	cleaned := false
	if entry.SourceType == plan.SourceDomainDialin && entry.ConfigID != "" {
		if err := e.source.DeleteDialinConfig(ctx, entry.ConfigID); err != nil {
			e.recorder.Failure("%s: source config %s delete failed: %v", identifier, entry.ConfigID, err)
			logger.Warn("source config delete failed, continuing", logging.Error(err))
		} else {
			cleaned = true
			state = StateConfigCleaned
			e.recorder.Success("%s: source config %s deleted", identifier, entry.ConfigID)
			logger.Info("source config deleted", logging.String("config_id", entry.ConfigID))
		}
	}

	if targetPayload == nil {
		return state, true
	}

	if err := e.target.CreateDialinConfig(ctx, targetPayload); err != nil {
		e.recorder.Failure("%s: config create on target failed: %v", identifier, err)
		logger.Error("config create on target failed", logging.Error(err))
		if e.rollback != nil && e.rollback(identifier) {
			e.rollbackEntry(ctx, logger, identifier, entry, moved, cleaned, restorePayload)
			return StateRolledBack, false
		}
		return StateConfigFailed, false
	}
	e.recorder.Success("%s: config created on target", identifier)
	logger.Info("config created on target")
	return StateConfigCreated, true
}

// rollbackEntry undoes what this entry already did: return the number when
// it moved, recreate the source config when it was deleted. Each step is
// recorded independently and a failed step is not retried.
func (e *Executor) rollbackEntry(ctx context.Context, logger *slog.Logger, identifier string, entry *plan.Entry, moved, cleaned bool, restore daily.DialinConfig) {
	if moved {
		req := daily.TransferRequest{
			TransferDomainName: e.sourceDomain,
			TransferDomainAPI:  e.sourceKey,
		}
		if err := e.target.TransferNumber(ctx, entry.SourcePhoneID, req); err != nil {
			e.recorder.Failure("%s: rollback number return failed: %v", identifier, err)
			logger.Error("rollback number return failed", logging.Error(err))
		} else {
			e.recorder.Success("%s: rollback returned number to %s", identifier, e.sourceDomain)
			logger.Info("rollback returned number to source")
		}
	}
	if cleaned && restore != nil {
		if err := e.source.CreateDialinConfig(ctx, restore); err != nil {
			e.recorder.Failure("%s: rollback config recreate failed: %v", identifier, err)
			logger.Error("rollback config recreate failed", logging.Error(err))
		} else {
			e.recorder.Success("%s: rollback recreated config on source", identifier)
			logger.Info("rollback recreated config on source")
		}
	}
}

func defaultSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
