package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Simplici0/mako-cost/internal/montecarlo"
)

// SimulationCache keeps Monte Carlo results keyed by the encoded parameter
// set and iteration count. Simulations are deterministic in both, so a cached
// result is served without re-running the engine.
type SimulationCache struct {
	db *sql.DB
}

// NewSimulationCache returns a cache backed by the simulation_cache table.
func NewSimulationCache(db *sql.DB) *SimulationCache {
	return &SimulationCache{db: db}
}

// Get returns the cached result, reporting false on a miss.
func (c *SimulationCache) Get(ctx context.Context, config string, iterations int) (montecarlo.Result, bool, error) {
	var raw string
	err := c.db.QueryRowContext(ctx, `
		SELECT result_json
		FROM simulation_cache
		WHERE config = ? AND iterations = ?
	`, config, iterations).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return montecarlo.Result{}, false, nil
	}
	if err != nil {
		return montecarlo.Result{}, false, fmt.Errorf("query simulation cache: %w", err)
	}

	var res montecarlo.Result
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		return montecarlo.Result{}, false, fmt.Errorf("decode cached simulation: %w", err)
	}
	return res, true, nil
}

// Put stores res, replacing any earlier entry for the same key.
func (c *SimulationCache) Put(ctx context.Context, config string, res montecarlo.Result) error {
	raw, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode simulation result: %w", err)
	}

	if _, err := c.db.ExecContext(ctx, `
		INSERT INTO simulation_cache (config, iterations, result_json)
		VALUES (?, ?, ?)
		ON CONFLICT(config, iterations) DO UPDATE SET
			result_json = excluded.result_json,
			created_at = CURRENT_TIMESTAMP
	`, config, res.Iterations, string(raw)); err != nil {
		return fmt.Errorf("insert simulation cache: %w", err)
	}
	return nil
}
