package db

import (
	"encoding/json"
	"testing"
)

func TestMigrateSnapshotBackfillsCoffeeV1(t *testing.T) {
	t.Parallel()
	v1 := []byte(`{
		"coffees": [
			{"id": "c1", "name": "Yirgacheffe", "seller": "", "boughtGrams": 250},
			{"id": "c2", "name": "Kenya AA", "seller": "Roaster", "isArchived": true}
		]
	}`)

	out, err := migrateSnapshot(v1, 1, coffeeSnapshotVersion, coffeeMigrations)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	var state map[string]any
	if err := json.Unmarshal(out, &state); err != nil {
		t.Fatalf("decode migrated payload: %v", err)
	}

	coffees := state["coffees"].([]any)
	first := coffees[0].(map[string]any)
	if first["seller"] != "Unknown" {
		t.Fatalf("blank seller must backfill to Unknown, got %v", first["seller"])
	}
	if first["isArchived"] != false {
		t.Fatalf("missing isArchived must backfill to false, got %v", first["isArchived"])
	}

	second := coffees[1].(map[string]any)
	if second["seller"] != "Roaster" || second["isArchived"] != true {
		t.Fatalf("populated fields must survive migration: %v", second)
	}

	if _, ok := state["offsetLogs"]; !ok {
		t.Fatalf("offsetLogs collection must be created")
	}
}

func TestMigrateSnapshotCurrentVersionIsPassthrough(t *testing.T) {
	t.Parallel()
	payload := []byte(`{"coffees": []}`)
	out, err := migrateSnapshot(payload, coffeeSnapshotVersion, coffeeSnapshotVersion, coffeeMigrations)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if string(out) != string(payload) {
		t.Fatalf("up-to-date payload must pass through untouched, got %s", out)
	}
}

func TestMigrateSnapshotRejectsCorruptPayload(t *testing.T) {
	t.Parallel()
	if _, err := migrateSnapshot([]byte(`not json`), 1, coffeeSnapshotVersion, coffeeMigrations); err == nil {
		t.Fatalf("corrupt payload must fail migration")
	}
}
