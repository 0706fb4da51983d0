package plan

import (
	"log/slog"
	"strings"

	"numport/internal/callerid"
	"numport/internal/logging"
	"numport/internal/services"
	"numport/internal/services/daily"
)

// Orphan is a reconciled config that matched no selected number and carries
// no phone number of its own. Orphans only enter the plan through an
// explicit decision.
type Orphan struct {
	Key        string
	SourceType SourceType
	ConfigID   string
	Config     daily.DialinConfig
}

// Decisions supplies the two human choices plan building needs. Interactive
// runs wire a console implementation; tests and scripted runs supply fixed
// answers.
type Decisions interface {
	// IncludeOrphans returns the indexes of the orphans to add to the plan.
	// Out-of-range indexes are ignored.
	IncludeOrphans(orphans []Orphan) ([]int, error)
	// RoomAPIReplacement returns the value that replaces FlaggedRoomAPI for
	// every listed identifier.
	RoomAPIReplacement(identifiers []string) (string, error)
}

// BuildResult is the outcome of plan building. Skipped lists the selected
// numbers that had no platform resource id; they cannot be moved and feed the
// caller id seed file instead.
type BuildResult struct {
	Plan    *Plan
	Skipped []callerid.Entry
}

// Build pairs the selected numbers with their reconciled configs and applies
// the orphan and repair decisions. A number with no config still transfers,
// just with nothing to recreate on the target.
func Build(numbers []daily.PhoneNumber, configs *ConfigMap, decisions Decisions, logger *slog.Logger) (BuildResult, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	if configs == nil {
		configs = NewConfigMap()
	}

	result := BuildResult{Plan: NewPlan()}
	for _, number := range numbers {
		identifier := strings.TrimSpace(number.Number)
		if identifier == "" {
			logger.Warn("selected number record has no number string, dropping",
				logging.String("phone_id", number.ID))
			continue
		}
		if strings.TrimSpace(number.ID) == "" {
			result.Skipped = append(result.Skipped, callerid.Entry{Number: identifier, Name: number.Name})
			logger.Warn("number has no platform id, routing to caller id seed",
				logging.String(logging.FieldIdentifier, identifier))
			continue
		}

		entry := &Entry{SourcePhoneID: number.ID}
		if match, ok := configs.Lookup(identifier); ok {
			entry.SourceType = match.SourceType
			entry.ConfigID = match.ConfigID
			entry.ConfigData = match.Config
		}
		result.Plan.Add(identifier, entry)
	}

	if err := includeOrphans(result.Plan, configs, decisions); err != nil {
		return BuildResult{}, err
	}
	if err := repairRoomAPI(result.Plan, decisions, logger); err != nil {
		return BuildResult{}, err
	}

	logger.Info("transfer plan built",
		logging.Int("entries", result.Plan.Len()),
		logging.Int("skipped", len(result.Skipped)))
	return result, nil
}

func includeOrphans(p *Plan, configs *ConfigMap, decisions Decisions) error {
	var orphans []Orphan
	for _, key := range configs.Keys() {
		if p.Has(key) {
			continue
		}
		match, _ := configs.Lookup(key)
		if match.Config.PhoneNumber() != "" {
			continue
		}
		orphans = append(orphans, Orphan{
			Key:        key,
			SourceType: match.SourceType,
			ConfigID:   match.ConfigID,
			Config:     match.Config,
		})
	}
	if len(orphans) == 0 {
		return nil
	}
	if decisions == nil {
		return services.Wrap(services.ErrValidation, "plan", "orphans", "orphaned configs present but no decision source supplied", nil)
	}

	selected, err := decisions.IncludeOrphans(orphans)
	if err != nil {
		return services.Wrap(services.ErrValidation, "plan", "orphans", "orphan inclusion decision failed", err)
	}
	for _, idx := range selected {
		if idx < 0 || idx >= len(orphans) {
			continue
		}
		orphan := orphans[idx]
		cfg := orphan.Config.Clone()
		if value, ok := cfg["phone_number"]; ok && value == nil {
			delete(cfg, "phone_number")
		}
		p.Add(orphan.Key, &Entry{
			SourceType: orphan.SourceType,
			ConfigID:   orphan.ConfigID,
			ConfigData: cfg,
		})
	}
	return nil
}

func repairRoomAPI(p *Plan, decisions Decisions, logger *slog.Logger) error {
	var flagged []string
	for _, identifier := range p.Identifiers() {
		entry, _ := p.Get(identifier)
		if entry.HasConfig() && entry.ConfigData.RoomCreationAPI() == FlaggedRoomAPI {
			flagged = append(flagged, identifier)
		}
	}
	if len(flagged) == 0 {
		return nil
	}
	if decisions == nil {
		return services.Wrap(services.ErrValidation, "plan", "repair", "flagged room_creation_api present but no decision source supplied", nil)
	}

	replacement, err := decisions.RoomAPIReplacement(flagged)
	if err != nil {
		return services.Wrap(services.ErrValidation, "plan", "repair", "room_creation_api replacement decision failed", err)
	}
	for _, identifier := range flagged {
		entry, _ := p.Get(identifier)
		entry.ConfigData["source_room_creation_api"] = FlaggedRoomAPI
		entry.ConfigData["target_room_creation_api"] = replacement
		entry.ConfigData["room_creation_api"] = replacement
	}
	logger.Info("room_creation_api repaired",
		logging.Int("entries", len(flagged)),
		logging.String("replacement", replacement))
	return nil
}
