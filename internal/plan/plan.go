package plan

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"numport/internal/fileutil"
	"numport/internal/services"
	"numport/internal/services/daily"
)

// SourceType names where a reconciled config came from.
type SourceType string

const (
	SourceRootPinless  SourceType = "root-pinless"
	SourceRootPin      SourceType = "root-pin"
	SourceDomainDialin SourceType = "domain-dialin-config"
)

// FlaggedRoomAPI is the known-bad room_creation_api value the repair pass
// rewrites before execution.
const FlaggedRoomAPI = "dailybots"

// Entry describes the intended transfer for one identifier. A zero
// SourcePhoneID marks a config-only transfer with no number to move.
type Entry struct {
	SourcePhoneID string             `json:"source_phone_id"`
	SourceType    SourceType         `json:"src_type"`
	ConfigID      string             `json:"config_id"`
	ConfigData    daily.DialinConfig `json:"config_data"`
}

// HasConfig reports whether the entry carries config data to recreate on the
// target account.
func (e *Entry) HasConfig() bool {
	return e != nil && e.ConfigData != nil
}

// Plan maps identifiers to transfer entries while preserving insertion order.
// The executor walks identifiers in exactly this order, one at a time.
type Plan struct {
	order   []string
	entries map[string]*Entry
}

// NewPlan returns an empty plan.
func NewPlan() *Plan {
	return &Plan{entries: make(map[string]*Entry)}
}

// Add stores an entry under the identifier. Re-adding an existing identifier
// replaces the entry but keeps its original position.
func (p *Plan) Add(identifier string, entry *Entry) {
	if identifier == "" || entry == nil {
		return
	}
	if _, ok := p.entries[identifier]; !ok {
		p.order = append(p.order, identifier)
	}
	p.entries[identifier] = entry
}

// Get returns the entry for the identifier.
func (p *Plan) Get(identifier string) (*Entry, bool) {
	entry, ok := p.entries[identifier]
	return entry, ok
}

// Has reports whether the identifier is planned.
func (p *Plan) Has(identifier string) bool {
	_, ok := p.entries[identifier]
	return ok
}

// Identifiers returns the identifiers in plan order.
func (p *Plan) Identifiers() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Len returns the number of planned entries.
func (p *Plan) Len() int {
	return len(p.order)
}

// MarshalJSON renders the plan as a JSON object in plan order.
func (p *Plan) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, identifier := range p.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(identifier)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(p.entries[identifier])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON restores a plan, keeping the key order of the document so a
// hand-edited file executes in the order it reads.
func (p *Plan) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read plan object: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("plan must be a JSON object, found %v", tok)
	}

	p.order = nil
	p.entries = make(map[string]*Entry)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("read plan key: %w", err)
		}
		identifier, ok := tok.(string)
		if !ok {
			return fmt.Errorf("plan key must be a string, found %v", tok)
		}
		entry := &Entry{}
		if err := dec.Decode(entry); err != nil {
			return fmt.Errorf("decode plan entry %q: %w", identifier, err)
		}
		p.Add(identifier, entry)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("read plan object close: %w", err)
	}
	return nil
}

// Save writes the plan to path as pretty JSON.
func Save(path string, p *Plan) error {
	if p == nil {
		p = NewPlan()
	}
	if err := fileutil.WriteJSONAtomic(path, p); err != nil {
		return services.Wrap(services.ErrTransient, "plan", "save", "write transfer plan", err)
	}
	return nil
}

// Load reads a plan from path. Missing files surface services.ErrNotFound so
// callers can tell "no plan yet" from a corrupt one.
func Load(path string) (*Plan, error) {
	p := NewPlan()
	if err := fileutil.ReadJSON(path, p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "plan", "load", fmt.Sprintf("no transfer plan at %s", path), err)
		}
		return nil, services.Wrap(services.ErrValidation, "plan", "load", "parse transfer plan", err)
	}
	return p, nil
}
