package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Simplici0/mako-cost/internal/db"
	"github.com/Simplici0/mako-cost/internal/migrations"
	"github.com/Simplici0/mako-cost/internal/model"
	"github.com/Simplici0/mako-cost/internal/montecarlo"
	"github.com/Simplici0/mako-cost/internal/scenario"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "store-test.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return database
}

func exerciseStore(t *testing.T, s scenario.Store) {
	t.Helper()
	ctx := context.Background()

	empty, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load empty store: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty store, got %d items", len(empty))
	}

	first := model.Defaults()
	first.Implementations = 40
	a, err := s.Save(ctx, "  Erstes Szenario ", first)
	if err != nil {
		t.Fatalf("save first: %v", err)
	}
	if a.ID == "" || a.Name != "Erstes Szenario" {
		t.Fatalf("unexpected saved record: %+v", a)
	}

	second := model.Defaults()
	second.ErrorRate = 5 // clamped on save
	b, err := s.Save(ctx, "Zweites", second)
	if err != nil {
		t.Fatalf("save second: %v", err)
	}
	if b.Inputs.ErrorRate != 0.01 {
		t.Fatalf("errorRate = %v, want clamped 0.01", b.Inputs.ErrorRate)
	}

	loaded, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 scenarios, got %d", len(loaded))
	}
	byID := map[string]scenario.Saved{}
	for _, item := range loaded {
		byID[item.ID] = item
	}
	if got := byID[a.ID]; got.Inputs != a.Inputs || got.Name != a.Name || !got.CreatedAt.Equal(a.CreatedAt) {
		t.Fatalf("loaded %+v, want %+v", got, a)
	}

	if _, err := s.Save(ctx, "   ", first); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}

	if err := s.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, a.ID); !errors.Is(err, scenario.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}

	remaining, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load after delete: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != b.ID {
		t.Fatalf("unexpected remaining scenarios: %+v", remaining)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestSQLiteStore(t *testing.T) {
	exerciseStore(t, NewSQLite(newTestDB(t)))
}

func TestSQLiteStore_LoadRepairsAndSkipsRows(t *testing.T) {
	database := newTestDB(t)
	s := NewSQLite(database)

	seedRow := func(id, name, inputs string, createdAt int64) {
		t.Helper()
		if _, err := database.Exec(`
			INSERT INTO saved_scenarios (id, name, inputs_json, created_at)
			VALUES (?, ?, ?, ?)
		`, id, name, inputs, createdAt); err != nil {
			t.Fatalf("seed row: %v", err)
		}
	}

	seedRow("b", "Teilweise", `{"implementations": 9999}`, 2)
	seedRow("a", "Kaputt", `not json`, 1)
	seedRow("c", "Leer", `{}`, 3)

	loaded, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 decodable scenarios, got %d", len(loaded))
	}
	if loaded[0].ID != "b" || loaded[1].ID != "c" {
		t.Fatalf("unexpected order: %s, %s", loaded[0].ID, loaded[1].ID)
	}
	if loaded[0].Inputs.Implementations != 150 {
		t.Fatalf("implementations = %v, want clamped 150", loaded[0].Inputs.Implementations)
	}
	if loaded[1].Inputs != model.Defaults() {
		t.Fatalf("empty inputs should load as defaults, got %+v", loaded[1].Inputs)
	}
}

func TestSimulationCache(t *testing.T) {
	ctx := context.Background()
	cache := NewSimulationCache(newTestDB(t))

	if _, ok, err := cache.Get(ctx, "token", 100); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	res := montecarlo.Simulate(model.Defaults(), 100)
	if err := cache.Put(ctx, "token", res); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := cache.Put(ctx, "token", res); err != nil {
		t.Fatalf("put again: %v", err)
	}

	got, ok, err := cache.Get(ctx, "token", 100)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got.Mean != res.Mean || got.StdDev != res.StdDev || got.Percentiles != res.Percentiles {
		t.Fatalf("cached result differs: %+v vs %+v", got.Percentiles, res.Percentiles)
	}
	if len(got.Samples) != len(res.Samples) {
		t.Fatalf("cached %d samples, want %d", len(got.Samples), len(res.Samples))
	}

	if _, ok, _ := cache.Get(ctx, "token", 200); ok {
		t.Fatalf("iteration count must be part of the key")
	}
}
