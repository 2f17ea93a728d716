package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Mixilino/coffee-management/internal/model"
	"github.com/Mixilino/coffee-management/internal/service"
)

type coffeeSnapshot struct {
	Coffees    []model.Coffee    `json:"coffees"`
	OffsetLogs []model.OffsetLog `json:"offsetLogs"`
}

type extractionSnapshot struct {
	Extractions []model.Extraction `json:"extractions"`
}

// LoadState reads both snapshots, applies pending migrations, and returns
// the wired ledger and extraction log. A missing snapshot yields empty
// state at the current version.
func LoadState(sqldb *sql.DB) (*service.Ledger, *service.ExtractionLog, error) {
	var coffees coffeeSnapshot
	version, payload, found, err := loadSnapshot(sqldb, coffeeSnapshotName)
	if err != nil {
		return nil, nil, err
	}
	if found {
		payload, err = migrateSnapshot(payload, version, coffeeSnapshotVersion, coffeeMigrations)
		if err != nil {
			return nil, nil, fmt.Errorf("migrate coffee snapshot: %w", err)
		}
		if err := json.Unmarshal(payload, &coffees); err != nil {
			return nil, nil, fmt.Errorf("decode coffee snapshot: %w", err)
		}
	}

	var extractions extractionSnapshot
	version, payload, found, err = loadSnapshot(sqldb, extractionSnapshotName)
	if err != nil {
		return nil, nil, err
	}
	if found {
		payload, err = migrateSnapshot(payload, version, extractionSnapshotVersion, extractionMigrations)
		if err != nil {
			return nil, nil, fmt.Errorf("migrate extraction snapshot: %w", err)
		}
		if err := json.Unmarshal(payload, &extractions); err != nil {
			return nil, nil, fmt.Errorf("decode extraction snapshot: %w", err)
		}
	}

	ledger := service.NewLedger(coffees.Coffees, coffees.OffsetLogs)
	log := service.NewExtractionLog(extractions.Extractions, ledger)
	return ledger, log, nil
}

// SaveState persists the whole state as the two versioned snapshots. Called
// once per mutating command; last successfully persisted snapshot wins.
func SaveState(sqldb *sql.DB, ledger *service.Ledger, log *service.ExtractionLog) error {
	coffeePayload, err := json.Marshal(coffeeSnapshot{
		Coffees:    ledger.All(),
		OffsetLogs: ledger.OffsetLogs(),
	})
	if err != nil {
		return fmt.Errorf("encode coffee snapshot: %w", err)
	}
	if err := saveSnapshot(sqldb, coffeeSnapshotName, coffeeSnapshotVersion, coffeePayload); err != nil {
		return err
	}

	extractionPayload, err := json.Marshal(extractionSnapshot{Extractions: log.All()})
	if err != nil {
		return fmt.Errorf("encode extraction snapshot: %w", err)
	}
	return saveSnapshot(sqldb, extractionSnapshotName, extractionSnapshotVersion, extractionPayload)
}
