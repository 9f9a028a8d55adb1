package seed

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Simplici0/mako-cost/internal/model"
	"github.com/Simplici0/mako-cost/internal/scenario"
)

// BaselineName is the saved-scenario name of the unmodified baseline.
const BaselineName = "Basisszenario"

// Stats contains seed operation counters. Skipped counts entries whose name
// was already present.
type Stats struct {
	Inserts int
	Skipped int
}

// Run stores the baseline and every built-in preset as saved scenarios.
// Entries are matched by name, so repeated runs insert nothing.
func Run(db *sql.DB) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}
	now := time.Now().UTC()

	base := model.Defaults()
	if err := ensureScenario(tx, BaselineName, base, now, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	for i, p := range scenario.Presets() {
		created := now.Add(time.Duration(i+1) * time.Millisecond)
		if err := ensureScenario(tx, p.Name, scenario.Apply(base, p.Overrides), created, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureScenario(tx *sql.Tx, name string, inputs model.ParameterSet, createdAt time.Time, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM saved_scenarios WHERE name = ? LIMIT 1)`, name).Scan(&exists); err != nil {
		return fmt.Errorf("check scenario %q existence: %w", name, err)
	}
	if exists {
		stats.Skipped++
		return nil
	}

	raw, err := json.Marshal(inputs)
	if err != nil {
		return fmt.Errorf("marshal scenario %q: %w", name, err)
	}

	if _, err := tx.Exec(`
		INSERT INTO saved_scenarios (id, name, inputs_json, created_at)
		VALUES (?, ?, ?, ?)
	`, uuid.NewString(), name, string(raw), createdAt.UnixMilli()); err != nil {
		return fmt.Errorf("insert scenario %q: %w", name, err)
	}
	stats.Inserts++
	return nil
}
