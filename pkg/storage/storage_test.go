package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/tradesim/scenariobuild/pkg/scenario"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "slots.sqlite"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testScenario(name string) *scenario.Scenario {
	s := scenario.Default()
	s.Metadata.Name = name
	return s
}

func TestSaveAndLoadRoundtrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	s := testScenario("Q3 Squeeze")
	s.Events = []scenario.Event{{
		ID: "e1", Name: "Strike", StartPeriod: 3, EndPeriod: 6,
		Affects: []scenario.Affect{{Target: "lme", Value: 12}},
	}}

	warnings, err := db.Save(ctx, 1, s)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	got, err := db.Load(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("saved slot must load")
	}
	if got.Metadata.Name != "Q3 Squeeze" || len(got.Events) != 1 || got.Events[0].Affects[0].Value != 12 {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
	if got.Metadata.ModifiedAt.IsZero() || got.Metadata.CreatedAt.IsZero() {
		t.Fatal("save must stamp createdAt and modifiedAt")
	}
}

func TestSaveKeepsCreatedAt(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := testScenario("Aged")
	s.Metadata.CreatedAt = created

	if _, err := db.Save(ctx, 2, s); err != nil {
		t.Fatal(err)
	}
	got, err := db.Load(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Metadata.CreatedAt.Equal(created) {
		t.Fatalf("createdAt must survive a save, got %v", got.Metadata.CreatedAt)
	}
}

func TestSaveRejectsSlotZero(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.Save(context.Background(), 0, testScenario("Nope")); err == nil {
		t.Fatal("saving into slot 0 must fail")
	}
}

func TestSaveBlockedByValidationErrors(t *testing.T) {
	db := openTestDB(t)
	s := testScenario("") // missing name is a blocking error

	_, err := db.Save(context.Background(), 1, s)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(verr.Errors) == 0 {
		t.Fatal("validation error must carry messages")
	}

	if got, _ := db.Load(context.Background(), 1); got != nil {
		t.Fatal("blocked save must not write")
	}
}

func TestSaveSucceedsWithWarnings(t *testing.T) {
	db := openTestDB(t)
	s := testScenario("Cheap Copper")
	s.Pricing.LME[0].Average = 4000 // implausible, but only advisory

	warnings, err := db.Save(context.Background(), 1, s)
	if err != nil {
		t.Fatalf("warnings must not block a save: %v", err)
	}
	if len(warnings) == 0 {
		t.Fatal("expected the range warning to be returned")
	}
}

func TestLoadSlotZeroReturnsDefault(t *testing.T) {
	db := openTestDB(t)
	got, err := db.Load(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Metadata.Name != scenario.Default().Metadata.Name {
		t.Fatalf("slot 0 must serve the built-in default, got %+v", got)
	}
}

func TestLoadEmptySlot(t *testing.T) {
	db := openTestDB(t)
	got, err := db.Load(context.Background(), 7)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatalf("empty slot must load as nil, got %+v", got)
	}
}

func TestLoadCorruptSlotTreatedAsEmpty(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.sql.ExecContext(ctx,
		"INSERT INTO scenario_slots(slot, name, data, created_at, modified_at) VALUES(3, 'broken', '{not json', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')")
	if err != nil {
		t.Fatal(err)
	}

	got, err := db.Load(ctx, 3)
	if err != nil {
		t.Fatalf("corrupt slot must not error, got %v", err)
	}
	if got != nil {
		t.Fatalf("corrupt slot must load as nil, got %+v", got)
	}
}

func TestDeleteSlot(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if _, err := db.Save(ctx, 4, testScenario("Doomed")); err != nil {
		t.Fatal(err)
	}
	if err := db.Delete(ctx, 4); err != nil {
		t.Fatal(err)
	}
	if got, _ := db.Load(ctx, 4); got != nil {
		t.Fatal("deleted slot must be empty")
	}

	// Deleting an empty slot is fine; deleting slot 0 never is.
	if err := db.Delete(ctx, 4); err != nil {
		t.Fatalf("deleting an empty slot must be a no-op, got %v", err)
	}
	if err := db.Delete(ctx, 0); err == nil {
		t.Fatal("deleting slot 0 must fail")
	}
}

func TestListIncludesBuiltInFirst(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if _, err := db.Save(ctx, 2, testScenario("Second")); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Save(ctx, 1, testScenario("First")); err != nil {
		t.Fatal(err)
	}

	slots, err := db.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}
	if slots[0].Slot != 0 || !slots[0].BuiltIn {
		t.Fatalf("slot 0 must lead the list, got %+v", slots[0])
	}
	if slots[1].Name != "First" || slots[2].Name != "Second" {
		t.Fatalf("slots must come back ordered, got %+v", slots)
	}
	if slots[1].ModifiedAt.IsZero() {
		t.Fatal("listed slots must carry timestamps")
	}
}
