package discovery

import (
	"context"
	"log/slog"

	"numport/internal/logging"
	"numport/internal/services/daily"
)

// Source is the read-only account surface discovery consumes. *daily.Client
// satisfies it.
type Source interface {
	Domain(ctx context.Context) (*daily.Domain, error)
	PurchasedNumbers(ctx context.Context) ([]daily.PhoneNumber, error)
	DialinConfigs(ctx context.Context) ([]daily.DomainDialinConfig, error)
}

// Snapshot is everything discovery found on the source account.
type Snapshot struct {
	Numbers       []daily.PhoneNumber
	Pinless       []daily.DialinConfig
	Pin           []daily.DialinConfig
	DomainConfigs []daily.DomainDialinConfig
}

// Discoverer fetches numbers and dial-in configs from one account.
type Discoverer struct {
	source Source
	logger *slog.Logger
}

// New returns a discoverer over the given account.
func New(source Source, logger *slog.Logger) *Discoverer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Discoverer{source: source, logger: logger}
}

// Numbers lists the account's purchased numbers. Failure is logged and
// reported as an empty list.
func (d *Discoverer) Numbers(ctx context.Context) []daily.PhoneNumber {
	numbers, err := d.source.PurchasedNumbers(ctx)
	if err != nil {
		d.logger.Warn("failed to fetch purchased numbers", logging.Error(err))
		return nil
	}
	d.logger.Info("purchased numbers fetched", logging.Int("count", len(numbers)))
	return numbers
}

// DialinSources fetches the three config sources. The root domain config and
// the domain-dialin-config list are independent fetches; each failure is
// logged and yields empty lists for that source only.
func (d *Discoverer) DialinSources(ctx context.Context) (pinless, pin []daily.DialinConfig, domainConfigs []daily.DomainDialinConfig) {
	root, err := d.source.Domain(ctx)
	if err != nil || root == nil {
		d.logger.Warn("failed to fetch root domain config", logging.Error(err))
	} else {
		pinless = root.Config.PinlessDialin
		pin = root.Config.PinDialin
		d.logger.Info("root domain config fetched",
			logging.Int("pinless", len(pinless)),
			logging.Int("pin", len(pin)))
	}

	domainConfigs, err = d.source.DialinConfigs(ctx)
	if err != nil {
		d.logger.Warn("failed to fetch domain dial-in configs", logging.Error(err))
		domainConfigs = nil
	} else {
		d.logger.Info("domain dial-in configs fetched", logging.Int("count", len(domainConfigs)))
	}
	return pinless, pin, domainConfigs
}

// Snapshot runs full discovery against the account.
func (d *Discoverer) Snapshot(ctx context.Context) Snapshot {
	var snap Snapshot
	snap.Numbers = d.Numbers(ctx)
	snap.Pinless, snap.Pin, snap.DomainConfigs = d.DialinSources(ctx)
	return snap
}
