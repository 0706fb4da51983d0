package prompt

import (
	"fmt"
	"log/slog"

	"numport/internal/logging"
	"numport/internal/plan"
	"numport/internal/services"
	"numport/internal/services/daily"
)

// PlanDecider answers plan-building questions over a console. It implements
// plan.Decisions.
type PlanDecider struct {
	Console *Console
}

// SelectNumbers asks which purchased numbers to transfer, looping until the
// answer names at least one listed number.
func (d *PlanDecider) SelectNumbers(numbers []daily.PhoneNumber) ([]daily.PhoneNumber, error) {
	if len(numbers) == 0 {
		return nil, nil
	}
	for {
		all, err := d.Console.Confirm("Transfer all numbers?")
		if err != nil {
			return nil, err
		}
		if all {
			return numbers, nil
		}
		indexes, err := d.Console.SelectIndexes("Enter comma-separated list of indexes to transfer (e.g. 0,2): ")
		if err != nil {
			fmt.Fprintln(d.Console.out, "Invalid input. Please enter numeric indexes.")
			continue
		}
		var selected []daily.PhoneNumber
		for _, idx := range indexes {
			if idx >= 0 && idx < len(numbers) {
				selected = append(selected, numbers[idx])
			}
		}
		if len(selected) == 0 {
			fmt.Fprintln(d.Console.out, "No valid indexes selected. Try again.")
			continue
		}
		return selected, nil
	}
}

// IncludeOrphans lists the orphaned configs and asks which to include.
// Declining, or answering the index question with unparseable input, includes
// none.
func (d *PlanDecider) IncludeOrphans(orphans []plan.Orphan) ([]int, error) {
	fmt.Fprintln(d.Console.out, "\nFound configs with no phone_number:")
	for idx, orphan := range orphans {
		fmt.Fprintf(d.Console.out, "[%d] %s from %s\n", idx, orphan.Key, orphan.SourceType)
	}

	include, err := d.Console.Confirm("Do you want to include any of these configs in the transfer plan?")
	if err != nil {
		return nil, err
	}
	if !include {
		return nil, nil
	}

	all, err := d.Console.Confirm("Transfer all configs with no phone_number?")
	if err != nil {
		return nil, err
	}
	if all {
		indexes := make([]int, len(orphans))
		for idx := range orphans {
			indexes[idx] = idx
		}
		return indexes, nil
	}

	indexes, err := d.Console.SelectIndexes("Enter comma-separated list of indexes to transfer (e.g. 0,2): ")
	if err != nil {
		fmt.Fprintln(d.Console.out, "Invalid input. Skipping all orphaned configs.")
		return nil, nil
	}
	return indexes, nil
}

// RoomAPIReplacement lists the flagged entries and asks for a non-empty
// replacement value.
func (d *PlanDecider) RoomAPIReplacement(identifiers []string) (string, error) {
	fmt.Fprintf(d.Console.out, "\nDetected %q as room_creation_api in the following entries:\n", plan.FlaggedRoomAPI)
	for _, identifier := range identifiers {
		fmt.Fprintf(d.Console.out, " - %s\n", identifier)
	}
	for {
		value, err := d.Console.ReadLine(fmt.Sprintf("Enter replacement for %q in room_creation_api: ", plan.FlaggedRoomAPI))
		if err != nil {
			return "", err
		}
		if value != "" {
			return value, nil
		}
		fmt.Fprintln(d.Console.out, "A replacement value is required.")
	}
}

// NonInteractiveDecisions answers plan questions without a terminal: every
// number is selected, orphans are surfaced in the log but excluded, and a
// needed repair value fails the build rather than being invented.
type NonInteractiveDecisions struct {
	Logger *slog.Logger
}

func (d *NonInteractiveDecisions) logger() *slog.Logger {
	if d.Logger == nil {
		return logging.NewNop()
	}
	return d.Logger
}

// SelectNumbers selects every purchased number.
func (d *NonInteractiveDecisions) SelectNumbers(numbers []daily.PhoneNumber) ([]daily.PhoneNumber, error) {
	return numbers, nil
}

// IncludeOrphans logs each orphan and includes none.
func (d *NonInteractiveDecisions) IncludeOrphans(orphans []plan.Orphan) ([]int, error) {
	for _, orphan := range orphans {
		d.logger().Warn("orphaned config excluded from plan",
			logging.String(logging.FieldIdentifier, orphan.Key),
			logging.String("src_type", string(orphan.SourceType)))
	}
	return nil, nil
}

// RoomAPIReplacement refuses to pick a value on the human's behalf.
func (d *NonInteractiveDecisions) RoomAPIReplacement(identifiers []string) (string, error) {
	return "", services.Wrap(services.ErrValidation, "prompt", "repair",
		fmt.Sprintf("%d entries carry room_creation_api %q and need a replacement value; run interactively", len(identifiers), plan.FlaggedRoomAPI), nil)
}

// RollbackDecider returns a per-entry rollback confirmation backed by the
// console.
func RollbackDecider(console *Console) func(identifier string) bool {
	return func(identifier string) bool {
		ok, err := console.Confirm(fmt.Sprintf("Failed to create dialin config for %s. Do you want to rollback the transfer?", identifier))
		if err != nil {
			return false
		}
		return ok
	}
}

// DeclineRollback never rolls back, for scripted runs.
func DeclineRollback(string) bool { return false }
