package session

import (
	"testing"

	"github.com/tradesim/scenariobuild/pkg/scenario"
)

func TestCreateAssignsIDAndDefaultSpan(t *testing.T) {
	s := NewState(nil)
	ev := s.Create("Strike", nil)

	if ev.ID == "" {
		t.Fatal("created event must get an id")
	}
	if ev.StartPeriod != 1 || ev.EndPeriod != 2 {
		t.Fatalf("expected default one-month span, got %d..%d", ev.StartPeriod, ev.EndPeriod)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 event, got %d", s.Len())
	}
}

func TestCreateWithInitialEffects(t *testing.T) {
	s := NewState(nil)
	ev := s.Create("Seeded", []scenario.Affect{{Target: "lme", Value: 10}})
	if len(ev.Affects) != 1 || ev.Affects[0].Target != "lme" {
		t.Fatalf("expected seeded effect, got %v", ev.Affects)
	}
}

func TestDuplicate(t *testing.T) {
	s := NewState(nil)
	src := s.Create("Original", []scenario.Affect{{Target: "lme", Value: 10}})
	s.SetChain(src.ID, "", 0)
	s.SetSpan(src.ID, 3, 4)

	cp, ok := s.Duplicate(src.ID)
	if !ok {
		t.Fatal("duplicate of an existing event must succeed")
	}
	if cp.ID == src.ID {
		t.Fatal("duplicate must get a new id")
	}
	if cp.Name != "Original (copy)" {
		t.Fatalf("unexpected copy name %q", cp.Name)
	}
	if cp.StartPeriod != 4 || cp.EndPeriod != 5 {
		t.Fatalf("expected span nudged one period forward, got %d..%d", cp.StartPeriod, cp.EndPeriod)
	}
	if cp.ChainTo != "" {
		t.Fatal("duplicate must drop the chain link")
	}
	if len(cp.Affects) != 1 || cp.Affects[0].Value != 10 {
		t.Fatalf("duplicate must deep-copy effects, got %v", cp.Affects)
	}
}

func TestDuplicateAtTimelineEndKeepsSpan(t *testing.T) {
	s := NewState(nil)
	src := s.Create("Late", nil)
	s.SetSpan(src.ID, 11, 12)

	cp, ok := s.Duplicate(src.ID)
	if !ok {
		t.Fatal("duplicate must succeed")
	}
	if cp.StartPeriod != 11 || cp.EndPeriod != 12 {
		t.Fatalf("span at timeline end must not shift, got %d..%d", cp.StartPeriod, cp.EndPeriod)
	}
}

func TestDuplicateMissingIsNoop(t *testing.T) {
	s := NewState(nil)
	s.Create("Only", nil)

	if _, ok := s.Duplicate("nope"); ok {
		t.Fatal("duplicating a missing id must be a no-op")
	}
	if s.Len() != 1 {
		t.Fatalf("event list must be unchanged, got %d events", s.Len())
	}
}

func TestDeleteClearsChainReferences(t *testing.T) {
	s := NewState(nil)
	a := s.Create("A", nil)
	b := s.Create("B", nil)
	s.SetChain(a.ID, b.ID, 2)

	if !s.Delete(b.ID) {
		t.Fatal("delete must succeed")
	}

	got, ok := s.Get(a.ID)
	if !ok {
		t.Fatal("event A must survive")
	}
	if got.ChainTo != "" {
		t.Fatalf("chain link to deleted event must be cleared, got %q", got.ChainTo)
	}
}

func TestSetChainAdjustsTargetStart(t *testing.T) {
	s := NewState(nil)
	a := s.Create("A", nil)
	b := s.Create("B", nil)
	s.SetSpan(a.ID, 3, 4)
	s.SetSpan(b.ID, 1, 2)

	s.SetChain(a.ID, b.ID, 4)

	got, _ := s.Get(b.ID)
	if got.StartPeriod != 7 || got.EndPeriod != 8 {
		t.Fatalf("chained event must move to source.start+leadTime, got %d..%d", got.StartPeriod, got.EndPeriod)
	}
}

func TestSetSpanPropagatesThroughChain(t *testing.T) {
	s := NewState(nil)
	a := s.Create("A", nil)
	b := s.Create("B", nil)
	s.SetSpan(a.ID, 1, 2)
	s.SetChain(a.ID, b.ID, 2)

	s.SetSpan(a.ID, 5, 6)

	got, _ := s.Get(b.ID)
	if got.StartPeriod != 7 {
		t.Fatalf("chained start must follow the source, got %d", got.StartPeriod)
	}
}

func TestChainAdjustClampsToTimeline(t *testing.T) {
	s := NewState(nil)
	a := s.Create("A", nil)
	b := s.Create("B", nil)
	s.SetSpan(a.ID, 11, 12)
	s.SetChain(a.ID, b.ID, 6)

	got, _ := s.Get(b.ID)
	if got.StartPeriod != 12 || got.EndPeriod != 12 {
		t.Fatalf("chained span must clamp to the timeline, got %d..%d", got.StartPeriod, got.EndPeriod)
	}
}

func TestSetChainToMissingClearsLink(t *testing.T) {
	s := NewState(nil)
	a := s.Create("A", nil)
	s.SetChain(a.ID, "missing", 2)

	got, _ := s.Get(a.ID)
	if got.ChainTo != "" {
		t.Fatalf("chain to missing target must clear, got %q", got.ChainTo)
	}
}

func TestTrackEffectLifecycle(t *testing.T) {
	s := NewState(nil)
	ev := s.Create("News", nil)

	s.SetEffect(ev.ID, "news", "affectsPrice", true)
	s.SetEffect(ev.ID, "news", "lme", 25.0)

	got, _ := s.Get(ev.ID)
	if got.Tracks["news"].Effects["lme"] != 25.0 {
		t.Fatalf("expected effect set, got %v", got.Tracks)
	}

	s.RemoveEffect(ev.ID, "news", "lme")
	s.RemoveEffect(ev.ID, "news", "affectsPrice")

	got, _ = s.Get(ev.ID)
	if _, ok := got.Tracks["news"]; ok {
		t.Fatal("emptied track must be dropped from the event")
	}
}

func TestAffectLifecycle(t *testing.T) {
	s := NewState(nil)
	ev := s.Create("Builder", nil)

	s.SetAffect(ev.ID, "lme", 10)
	s.SetAffect(ev.ID, "lme", 15) // overwrite, not append
	s.SetAffect(ev.ID, "comex", -5)

	got, _ := s.Get(ev.ID)
	if len(got.Affects) != 2 {
		t.Fatalf("expected 2 affects, got %v", got.Affects)
	}
	if got.Affects[0].Value != 15 {
		t.Fatalf("expected overwrite to 15, got %v", got.Affects[0])
	}

	if !s.RemoveAffect(ev.ID, "lme") {
		t.Fatal("remove must succeed")
	}
	got, _ = s.Get(ev.ID)
	if len(got.Affects) != 1 || got.Affects[0].Target != "comex" {
		t.Fatalf("expected only comex left, got %v", got.Affects)
	}
}

func TestEventsReturnsIndependentCopies(t *testing.T) {
	s := NewState(nil)
	ev := s.Create("Owned", []scenario.Affect{{Target: "lme", Value: 10}})

	snapshot := s.Events()
	snapshot[0].Affects[0].Value = 999

	got, _ := s.Get(ev.ID)
	if got.Affects[0].Value != 10 {
		t.Fatal("snapshot mutation leaked into session state")
	}
}
