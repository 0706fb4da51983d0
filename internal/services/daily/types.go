package daily

// Domain is the account identity payload from GET /. The root config carries
// the two account-level dial-in lists.
type Domain struct {
	DomainName string       `json:"domain_name"`
	DomainID   string       `json:"domain_id"`
	Config     DomainConfig `json:"config"`
}

// DomainConfig holds the account-level dial-in configuration lists.
type DomainConfig struct {
	PinlessDialin []DialinConfig `json:"pinless_dialin"`
	PinDialin     []DialinConfig `json:"pin_dialin"`
}

// PhoneNumber is one purchased phone number record.
type PhoneNumber struct {
	ID        string `json:"id"`
	Number    string `json:"number"`
	Name      string `json:"name"`
	Country   string `json:"country,omitempty"`
	Provider  string `json:"provider,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	Deleted   bool   `json:"deleted,omitempty"`
}

// DialinConfig is an open map. Dial-in configs carry provider fields this
// tool must round-trip untouched, so only the handful of fields the
// migration logic reads get typed accessors.
type DialinConfig map[string]any

// PhoneNumber returns the config's phone_number field when it is a string.
func (c DialinConfig) PhoneNumber() string { return c.stringField("phone_number") }

// SipURI returns the config's sip_uri field when it is a string.
func (c DialinConfig) SipURI() string { return c.stringField("sip_uri") }

// RoomCreationAPI returns the config's room_creation_api field when it is a string.
func (c DialinConfig) RoomCreationAPI() string { return c.stringField("room_creation_api") }

// Type returns the config's type field when it is a string.
func (c DialinConfig) Type() string { return c.stringField("type") }

func (c DialinConfig) stringField(key string) string {
	if value, ok := c[key].(string); ok {
		return value
	}
	return ""
}

// Clone returns an entry-owned copy. The copy is shallow: migration logic
// only ever adds, overwrites, or deletes top-level keys.
func (c DialinConfig) Clone() DialinConfig {
	if c == nil {
		return nil
	}
	clone := make(DialinConfig, len(c))
	for key, value := range c {
		clone[key] = value
	}
	return clone
}

// DomainDialinConfig is one record from the domain dial-in config list.
type DomainDialinConfig struct {
	ID     string       `json:"id"`
	Type   string       `json:"type"`
	Config DialinConfig `json:"config"`
}

// TransferRequest is the body of a phone number transfer call. The field
// names are the platform's camelCase wire names.
type TransferRequest struct {
	TransferDomainName string `json:"transferDomainName"`
	TransferDomainAPI  string `json:"transferDomainApi"`
}

type phoneNumberList struct {
	Data []PhoneNumber `json:"data"`
}

type dialinConfigList struct {
	Data []DomainDialinConfig `json:"data"`
}

type callerIDRequest struct {
	Number string `json:"number"`
	Name   string `json:"name"`
}
