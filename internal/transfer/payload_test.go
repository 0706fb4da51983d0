package transfer_test

import (
	"errors"
	"testing"

	"numport/internal/services"
	"numport/internal/services/daily"
	"numport/internal/transfer"
)

func TestTargetPayloadStripsBookkeepingAndPrefersTargetAPI(t *testing.T) {
	cfg := daily.DialinConfig{
		"phone_number":             "+15551110001",
		"sip_uri":                  "sip:old@example.com",
		"room_creation_api":        "daily-prebuilt",
		"source_room_creation_api": "dailybots",
		"target_room_creation_api": "daily-prebuilt",
		"display_name":             "Front desk",
		"max_participants":         float64(7),
	}

	payload, err := transfer.TargetPayload(cfg)
	if err != nil {
		t.Fatalf("TargetPayload failed: %v", err)
	}
	if payload.RoomCreationAPI() != "daily-prebuilt" {
		t.Fatalf("room_creation_api wrong: %v", payload)
	}
	for _, field := range []string{"sip_uri", "source_room_creation_api", "target_room_creation_api"} {
		if _, present := payload[field]; present {
			t.Fatalf("bookkeeping field %s not stripped: %v", field, payload)
		}
	}
	if payload["display_name"] != "Front desk" || payload["max_participants"] != float64(7) {
		t.Fatalf("opaque fields lost: %v", payload)
	}
	if cfg.SipURI() != "sip:old@example.com" {
		t.Fatalf("derivation mutated the plan entry: %v", cfg)
	}
}

func TestRestorePayloadRecoversOriginalRoomAPI(t *testing.T) {
	repaired := daily.DialinConfig{
		"room_creation_api":        "daily-prebuilt",
		"source_room_creation_api": "dailybots",
		"target_room_creation_api": "daily-prebuilt",
	}

	targetPayload, err := transfer.TargetPayload(repaired)
	if err != nil {
		t.Fatalf("TargetPayload failed: %v", err)
	}
	restorePayload, err := transfer.RestorePayload(repaired)
	if err != nil {
		t.Fatalf("RestorePayload failed: %v", err)
	}

	if targetPayload.RoomCreationAPI() != "daily-prebuilt" {
		t.Fatalf("target payload api wrong: %v", targetPayload)
	}
	if restorePayload.RoomCreationAPI() != "dailybots" {
		t.Fatalf("restore payload must recover the original value: %v", restorePayload)
	}
}

func TestPayloadWithoutRepairMarkersUsesRoomAPI(t *testing.T) {
	cfg := daily.DialinConfig{"room_creation_api": "default"}

	targetPayload, err := transfer.TargetPayload(cfg)
	if err != nil {
		t.Fatalf("TargetPayload failed: %v", err)
	}
	restorePayload, err := transfer.RestorePayload(cfg)
	if err != nil {
		t.Fatalf("RestorePayload failed: %v", err)
	}
	if targetPayload.RoomCreationAPI() != "default" || restorePayload.RoomCreationAPI() != "default" {
		t.Fatalf("unrepaired config should keep its api: %v / %v", targetPayload, restorePayload)
	}
}

func TestPayloadRejectsEmptyRoomAPI(t *testing.T) {
	tests := []struct {
		name string
		cfg  daily.DialinConfig
	}{
		{"missing", daily.DialinConfig{"display_name": "x"}},
		{"empty", daily.DialinConfig{"room_creation_api": ""}},
		{"blank", daily.DialinConfig{"room_creation_api": "   "}},
		{"nil config", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := transfer.TargetPayload(tt.cfg); !errors.Is(err, services.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestPayloadDropsMalformedTimeoutConfig(t *testing.T) {
	cfg := daily.DialinConfig{
		"room_creation_api": "default",
		"timeout_config":    "not-an-object",
	}
	payload, err := transfer.TargetPayload(cfg)
	if err != nil {
		t.Fatalf("TargetPayload failed: %v", err)
	}
	if _, present := payload["timeout_config"]; present {
		t.Fatalf("malformed timeout_config should be dropped: %v", payload)
	}

	cfg["timeout_config"] = map[string]any{"message": "goodbye"}
	payload, err = transfer.TargetPayload(cfg)
	if err != nil {
		t.Fatalf("TargetPayload failed: %v", err)
	}
	if _, present := payload["timeout_config"]; !present {
		t.Fatalf("object timeout_config should be kept: %v", payload)
	}
}
