package coffee

import (
	"fmt"
	"strings"
	"time"

	"github.com/Mixilino/coffee-management/internal/app"
	"github.com/Mixilino/coffee-management/internal/db"
	"github.com/Mixilino/coffee-management/internal/service"
)

// withState opens the database, loads both snapshots, runs fn, and, when
// save is set, persists the whole state back. Mutating commands pass
// save=true so every user action ends with one full snapshot write.
func withState(save bool, fn func(ledger *service.Ledger, shots *service.ExtractionLog) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	ledger, shots, err := db.LoadState(sqldb)
	if err != nil {
		return err
	}
	if err := fn(ledger, shots); err != nil {
		return err
	}
	if save {
		return db.SaveState(sqldb, ledger, shots)
	}
	return nil
}

func requirePositive(name string, value float64) error {
	if value <= 0 {
		return fmt.Errorf("%s must be > 0", name)
	}
	return nil
}

func parseDateOrNow(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Now(), nil
	}
	layouts := []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"}
	for _, l := range layouts {
		if t, err := time.ParseInLocation(l, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid --date %q (expected RFC3339, YYYY-MM-DD HH:MM or YYYY-MM-DD)", value)
}

func formatGrams(v float64) string {
	return fmt.Sprintf("%.1fg", v)
}
