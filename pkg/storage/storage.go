// Package storage persists scenarios into numbered slots backed by SQLite.
// Slot 0 is reserved for the compiled-in default scenario: it always loads,
// never writes, never deletes.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tradesim/scenariobuild/internal/utils"
	"github.com/tradesim/scenariobuild/pkg/scenario"
	"github.com/tradesim/scenariobuild/pkg/validate"
)

// DefaultSlot is the read-only built-in scenario slot.
const DefaultSlot = 0

type DB struct {
	sql *sql.DB
}

func Open(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	// Ensure schema exists for convenience.
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS scenario_slots (
  slot        INTEGER PRIMARY KEY CHECK (slot > 0),
  name        TEXT NOT NULL,
  data        TEXT NOT NULL,
  created_at  DATETIME NOT NULL,
  modified_at DATETIME NOT NULL
);
	`); err != nil {
		return nil, err
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// Save validates and stores a scenario into a slot. Validation errors
// block the write and come back as a *ValidationError; warnings never
// block and are returned alongside success. The stored copy is stamped
// with modifiedAt (and createdAt when absent).
func (d *DB) Save(ctx context.Context, slot int, s *scenario.Scenario) ([]string, error) {
	if slot == DefaultSlot {
		return nil, fmt.Errorf("storage: slot 0 holds the built-in default and cannot be written")
	}
	if slot < 0 {
		return nil, fmt.Errorf("storage: invalid slot %d", slot)
	}

	res := validate.Scenario(s)
	if !res.OK() {
		return res.Warnings, &ValidationError{Errors: res.Errors}
	}

	stamped := s.Clone()
	now := time.Now().UTC().Truncate(time.Second)
	stamped.Metadata.ModifiedAt = now
	if stamped.Metadata.CreatedAt.IsZero() {
		stamped.Metadata.CreatedAt = now
	}

	raw, err := json.Marshal(stamped)
	if err != nil {
		return res.Warnings, fmt.Errorf("storage: serialize scenario: %w", err)
	}

	_, err = d.sql.ExecContext(ctx, `
INSERT INTO scenario_slots(slot, name, data, created_at, modified_at) VALUES(?,?,?,?,?)
ON CONFLICT(slot) DO UPDATE SET name=excluded.name, data=excluded.data, modified_at=excluded.modified_at`,
		slot, stamped.Metadata.Name, string(raw),
		stamped.Metadata.CreatedAt.Format(time.RFC3339),
		stamped.Metadata.ModifiedAt.Format(time.RFC3339))
	if err != nil {
		return res.Warnings, err
	}
	return res.Warnings, nil
}

// Load returns the scenario in a slot, or nil when the slot is empty. A
// corrupt stored payload is logged and treated as absent rather than
// failing the caller.
func (d *DB) Load(ctx context.Context, slot int) (*scenario.Scenario, error) {
	if slot == DefaultSlot {
		return scenario.Default(), nil
	}

	var raw string
	err := d.sql.QueryRowContext(ctx, "SELECT data FROM scenario_slots WHERE slot = ?", slot).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	s := &scenario.Scenario{}
	if err := json.Unmarshal([]byte(raw), s); err != nil {
		utils.Log.Warnf("storage: slot %d holds corrupt scenario JSON, treating as empty: %v", slot, err)
		return nil, nil
	}
	return s, nil
}

// Delete clears a slot. Deleting an already empty slot is a no-op.
func (d *DB) Delete(ctx context.Context, slot int) error {
	if slot == DefaultSlot {
		return fmt.Errorf("storage: slot 0 holds the built-in default and cannot be deleted")
	}
	_, err := d.sql.ExecContext(ctx, "DELETE FROM scenario_slots WHERE slot = ?", slot)
	return err
}

// List returns summaries for all occupied slots, the built-in default
// first.
func (d *DB) List(ctx context.Context) ([]SlotInfo, error) {
	out := []SlotInfo{{
		Slot:    DefaultSlot,
		Name:    scenario.Default().Metadata.Name,
		BuiltIn: true,
	}}

	rows, err := d.sql.QueryContext(ctx, "SELECT slot, name, created_at, modified_at FROM scenario_slots ORDER BY slot")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			info                    SlotInfo
			createdStr, modifiedStr string
		)
		if err := rows.Scan(&info.Slot, &info.Name, &createdStr, &modifiedStr); err != nil {
			return nil, err
		}
		info.CreatedAt = parseTimestamp(createdStr)
		info.ModifiedAt = parseTimestamp(modifiedStr)
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// parseTimestamp accepts both RFC3339 and SQLite CURRENT_TIMESTAMP
// formats.
func parseTimestamp(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t
	}
	return time.Time{}
}
