package db

import (
	"encoding/json"
	"fmt"
)

// Snapshot migrations are pure functions over the decoded payload, applied
// in order from the stored version up to the current one. Each entry
// migrates FROM the previous version TO its own.
type snapshotMigration struct {
	version int
	name    string
	apply   func(state map[string]any) map[string]any
}

const (
	coffeeSnapshotName    = "coffees"
	coffeeSnapshotVersion = 2

	extractionSnapshotName    = "extractions"
	extractionSnapshotVersion = 1
)

var coffeeMigrations = []snapshotMigration{
	{
		version: 2,
		name:    "backfill_seller_and_archive_flags",
		apply: func(state map[string]any) map[string]any {
			coffees, _ := state["coffees"].([]any)
			for _, item := range coffees {
				coffee, ok := item.(map[string]any)
				if !ok {
					continue
				}
				if s, _ := coffee["seller"].(string); s == "" {
					coffee["seller"] = "Unknown"
				}
				if _, ok := coffee["isArchived"]; !ok {
					coffee["isArchived"] = false
				}
			}
			if _, ok := state["offsetLogs"]; !ok {
				state["offsetLogs"] = []any{}
			}
			return state
		},
	},
}

var extractionMigrations = []snapshotMigration{}

// migrateSnapshot upgrades a raw payload from its stored version to the
// current one and returns the re-encoded payload.
func migrateSnapshot(payload []byte, stored, current int, migrations []snapshotMigration) ([]byte, error) {
	if stored >= current {
		return payload, nil
	}
	state := map[string]any{}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &state); err != nil {
			return nil, fmt.Errorf("decode snapshot at version %d: %w", stored, err)
		}
	}
	for _, m := range migrations {
		if m.version <= stored {
			continue
		}
		state = m.apply(state)
	}
	out, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encode migrated snapshot: %w", err)
	}
	return out, nil
}
