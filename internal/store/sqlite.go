// Package store persists saved scenarios and cached simulation results.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Simplici0/mako-cost/internal/codec"
	"github.com/Simplici0/mako-cost/internal/model"
	"github.com/Simplici0/mako-cost/internal/scenario"
)

// ErrEmptyName is returned when a scenario is saved without a name.
var ErrEmptyName = errors.New("scenario name is required")

// SQLite stores saved scenarios in the saved_scenarios table.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

var _ scenario.Store = (*SQLite)(nil)

// NewSQLite returns a store backed by db. The schema must already be migrated.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db, now: time.Now}
}

// Load returns all saved scenarios, oldest first. Rows whose inputs cannot be
// decoded are skipped.
func (s *SQLite) Load(ctx context.Context) ([]scenario.Saved, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, inputs_json, created_at
		FROM saved_scenarios
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query saved scenarios: %w", err)
	}
	defer rows.Close()

	saved := make([]scenario.Saved, 0)
	for rows.Next() {
		var (
			item       scenario.Saved
			inputsJSON string
			createdMs  int64
		)
		if err := rows.Scan(&item.ID, &item.Name, &inputsJSON, &createdMs); err != nil {
			return nil, fmt.Errorf("scan saved scenario: %w", err)
		}
		inputs, ok := decodeInputs(inputsJSON)
		if !ok {
			continue
		}
		item.Inputs = inputs
		item.CreatedAt = time.UnixMilli(createdMs).UTC()
		saved = append(saved, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saved scenarios: %w", err)
	}

	return saved, nil
}

// Save stores inputs under name and returns the new record.
func (s *SQLite) Save(ctx context.Context, name string, inputs model.ParameterSet) (scenario.Saved, error) {
	item, err := newSaved(name, inputs, s.now())
	if err != nil {
		return scenario.Saved{}, err
	}

	raw, err := json.Marshal(item.Inputs)
	if err != nil {
		return scenario.Saved{}, fmt.Errorf("marshal scenario inputs: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO saved_scenarios (id, name, inputs_json, created_at)
		VALUES (?, ?, ?, ?)
	`, item.ID, item.Name, string(raw), item.CreatedAt.UnixMilli()); err != nil {
		return scenario.Saved{}, fmt.Errorf("insert saved scenario: %w", err)
	}

	return item, nil
}

// Delete removes the scenario with the given id.
func (s *SQLite) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM saved_scenarios WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete saved scenario: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete saved scenario: %w", err)
	}
	if affected == 0 {
		return scenario.ErrNotFound
	}
	return nil
}

func newSaved(name string, inputs model.ParameterSet, now time.Time) (scenario.Saved, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return scenario.Saved{}, ErrEmptyName
	}
	return scenario.Saved{
		ID:        uuid.NewString(),
		Name:      name,
		Inputs:    codec.Clamp(inputs),
		CreatedAt: now.UTC().Truncate(time.Millisecond),
	}, nil
}

// decodeInputs parses stored inputs, filling missing fields from the
// baseline and clamping them to the range table.
func decodeInputs(raw string) (model.ParameterSet, bool) {
	var partial codec.Partial
	if err := json.Unmarshal([]byte(raw), &partial); err != nil {
		return model.ParameterSet{}, false
	}
	return codec.Normalize(partial), true
}
