package seed

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/Simplici0/mako-cost/internal/db"
	"github.com/Simplici0/mako-cost/internal/migrations"
	"github.com/Simplici0/mako-cost/internal/model"
	"github.com/Simplici0/mako-cost/internal/store"
)

func TestRunIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "seed-test.db")
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	for i := 0; i < 10; i++ {
		stats, err := Run(database)
		if err != nil {
			t.Fatalf("run seed (iteration=%d): %v", i, err)
		}
		if i == 0 {
			if stats.Inserts != 4 || stats.Skipped != 0 {
				t.Fatalf("expected 4 inserts and 0 skips in first run, got %+v", stats)
			}
			continue
		}
		if stats.Inserts != 0 || stats.Skipped != 4 {
			t.Fatalf("expected 0 inserts and 4 skips in iteration %d, got %+v", i, stats)
		}
	}

	assertCount(t, database, `SELECT COUNT(*) FROM saved_scenarios`, nil, 4)
	assertCount(t, database, `SELECT COUNT(*) FROM saved_scenarios WHERE name = ?`, BaselineName, 1)
	assertCount(t, database, `SELECT COUNT(*) FROM saved_scenarios WHERE name IN (?, ?)`, []any{"Konsolidierung", "MaKo-Pause"}, 2)
}

func TestRunStoresLoadableScenarios(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "seed-load.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	if _, err := Run(database); err != nil {
		t.Fatalf("run seed: %v", err)
	}

	saved, err := store.NewSQLite(database).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(saved) != 4 {
		t.Fatalf("expected 4 scenarios, got %d", len(saved))
	}
	if saved[0].Name != BaselineName || saved[0].Inputs != model.Defaults() {
		t.Fatalf("first scenario = %q %+v, want baseline", saved[0].Name, saved[0].Inputs)
	}
	if saved[1].Inputs.Implementations != 30 || saved[1].Inputs.Concentration != 0.8 {
		t.Fatalf("consolidation inputs = %+v", saved[1].Inputs)
	}
}

func assertCount(t *testing.T, database *sql.DB, query string, args any, expected int) {
	t.Helper()

	var count int
	var err error
	switch v := args.(type) {
	case nil:
		err = database.QueryRow(query).Scan(&count)
	case []any:
		err = database.QueryRow(query, v...).Scan(&count)
	default:
		err = database.QueryRow(query, v).Scan(&count)
	}
	if err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != expected {
		t.Fatalf("expected count %d, got %d", expected, count)
	}
}
