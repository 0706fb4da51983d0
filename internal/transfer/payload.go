package transfer

import (
	"strings"

	"numport/internal/services"
	"numport/internal/services/daily"
)

// Bookkeeping fields the plan builder adds for its own use. They never
// travel to the platform.
const (
	fieldSipURI        = "sip_uri"
	fieldSourceRoomAPI = "source_room_creation_api"
	fieldTargetRoomAPI = "target_room_creation_api"
	fieldRoomAPI       = "room_creation_api"
	fieldTimeout       = "timeout_config"
)

// TargetPayload derives the config body to create on the target account.
// The repaired target_room_creation_api value wins over room_creation_api
// when present, and the transfer-bookkeeping fields are stripped.
func TargetPayload(cfg daily.DialinConfig) (daily.DialinConfig, error) {
	return derivePayload(cfg, fieldTargetRoomAPI)
}

// RestorePayload derives the config body that recreates the original on the
// source account after a rollback, mirroring TargetPayload but restoring
// source_room_creation_api.
func RestorePayload(cfg daily.DialinConfig) (daily.DialinConfig, error) {
	return derivePayload(cfg, fieldSourceRoomAPI)
}

func derivePayload(cfg daily.DialinConfig, preferred string) (daily.DialinConfig, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrValidation, "transfer", "derive payload", "no config data", nil)
	}

	out := cfg.Clone()
	api := out.RoomCreationAPI()
	if value, ok := out[preferred].(string); ok && value != "" {
		api = value
	}
	delete(out, fieldSipURI)
	delete(out, fieldSourceRoomAPI)
	delete(out, fieldTargetRoomAPI)

	if strings.TrimSpace(api) == "" {
		return nil, services.Wrap(services.ErrValidation, "transfer", "derive payload", "config has empty room_creation_api", nil)
	}
	out[fieldRoomAPI] = api

	// The platform rejects configs whose timeout_config is not an object.
	if raw, ok := out[fieldTimeout]; ok {
		if _, isObject := raw.(map[string]any); !isObject {
			delete(out, fieldTimeout)
		}
	}
	return out, nil
}
