package plan

import (
	"numport/internal/services/daily"
)

// MatchedConfig is one reconciled dial-in config together with where it came
// from. ConfigID is only set for domain-dialin-config entries.
type MatchedConfig struct {
	SourceType SourceType
	ConfigID   string
	Config     daily.DialinConfig
}

// ConfigMap holds reconciled configs keyed by phone number, or SIP URI when
// the config has no number. Insertion order is preserved so orphan listings
// stay stable across runs.
type ConfigMap struct {
	order   []string
	entries map[string]MatchedConfig
}

// NewConfigMap returns an empty config map.
func NewConfigMap() *ConfigMap {
	return &ConfigMap{entries: make(map[string]MatchedConfig)}
}

func (m *ConfigMap) insert(key string, match MatchedConfig) {
	if key == "" {
		return
	}
	if _, ok := m.entries[key]; !ok {
		m.order = append(m.order, key)
	}
	m.entries[key] = match
}

// Lookup returns the reconciled config for the key.
func (m *ConfigMap) Lookup(key string) (MatchedConfig, bool) {
	match, ok := m.entries[key]
	return match, ok
}

// Keys returns the reconciliation keys in insertion order.
func (m *ConfigMap) Keys() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Len returns the number of reconciled configs.
func (m *ConfigMap) Len() int {
	return len(m.order)
}

// Reconcile merges the three config sources into one map. Insertion order is
// pinless, then pin, then domain-dialin-config, each write overwriting any
// earlier entry under the same key, so the later source wins. Configs with
// neither a phone number nor a SIP URI cannot be keyed and are dropped.
func Reconcile(pinless, pin []daily.DialinConfig, domain []daily.DomainDialinConfig) *ConfigMap {
	merged := NewConfigMap()

	for _, cfg := range pinless {
		key := reconcileKey(cfg)
		if key == "" {
			continue
		}
		tagged := cfg.Clone()
		tagged["type"] = "pinless_dialin"
		merged.insert(key, MatchedConfig{SourceType: SourceRootPinless, Config: tagged})
	}

	for _, cfg := range pin {
		key := reconcileKey(cfg)
		if key == "" {
			continue
		}
		tagged := cfg.Clone()
		tagged["type"] = "pin_dialin"
		merged.insert(key, MatchedConfig{SourceType: SourceRootPin, Config: tagged})
	}

	for _, record := range domain {
		key := reconcileKey(record.Config)
		if key == "" {
			continue
		}
		tagged := record.Config.Clone()
		tagged["type"] = record.Type
		merged.insert(key, MatchedConfig{
			SourceType: SourceDomainDialin,
			ConfigID:   record.ID,
			Config:     tagged,
		})
	}

	return merged
}

func reconcileKey(cfg daily.DialinConfig) string {
	if number := cfg.PhoneNumber(); number != "" {
		return number
	}
	return cfg.SipURI()
}
