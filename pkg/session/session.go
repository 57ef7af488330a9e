// Package session owns the in-memory event list for one editing session.
// It replaces the old globals: the hosting application holds a State and
// passes snapshots into the pure compose/validate functions. Mutations
// never trigger recomputation themselves; callers re-invoke composition
// after editing.
package session

import (
	"github.com/google/uuid"
	"github.com/tradesim/scenariobuild/pkg/scenario"
)

// State is the single owner of a session's events. Not safe for concurrent
// use; the editor is single-threaded by design.
type State struct {
	events []scenario.Event
}

// NewState copies the given events into a fresh session.
func NewState(events []scenario.Event) *State {
	s := &State{events: make([]scenario.Event, 0, len(events))}
	for _, ev := range events {
		s.events = append(s.events, ev.Clone())
	}
	return s
}

// Events returns a deep copy of the event list in insertion order.
// Insertion order is load-bearing: it is the composition priority.
func (s *State) Events() []scenario.Event {
	out := make([]scenario.Event, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Clone())
	}
	return out
}

// Len returns the event count.
func (s *State) Len() int { return len(s.events) }

// Get returns a copy of the event with the given id.
func (s *State) Get(id string) (scenario.Event, bool) {
	if ev := s.find(id); ev != nil {
		return ev.Clone(), true
	}
	return scenario.Event{}, false
}

// Create appends a blank event with a fresh id and a default one-month
// span, optionally seeded with initial flat effects, and returns a copy.
func (s *State) Create(name string, initial []scenario.Affect) scenario.Event {
	ev := scenario.Event{
		ID:          uuid.NewString(),
		Name:        name,
		StartPeriod: 1,
		EndPeriod:   2,
	}
	if len(initial) > 0 {
		ev.Affects = append([]scenario.Affect{}, initial...)
	}
	s.events = append(s.events, ev)
	return ev.Clone()
}

// Duplicate deep-copies an event under a new id, drops its chain link, and
// nudges the span one period forward when that still fits the timeline so
// the copy does not exactly shadow the source. A missing source id is a
// no-op.
func (s *State) Duplicate(id string) (scenario.Event, bool) {
	src := s.find(id)
	if src == nil {
		return scenario.Event{}, false
	}
	cp := src.Clone()
	cp.ID = uuid.NewString()
	cp.Name = src.Name + " (copy)"
	cp.ChainTo = ""
	cp.LeadTime = 0
	if cp.EndPeriod < scenario.Periods {
		cp.StartPeriod++
		cp.EndPeriod++
	}
	s.events = append(s.events, cp)
	return cp.Clone(), true
}

// Delete removes an event and clears any chain link pointing at it, so no
// dangling references survive a delete.
func (s *State) Delete(id string) bool {
	idx := -1
	for i := range s.events {
		if s.events[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	s.events = append(s.events[:idx], s.events[idx+1:]...)
	for i := range s.events {
		if s.events[i].ChainTo == id {
			s.events[i].ChainTo = ""
			s.events[i].LeadTime = 0
		}
	}
	return true
}

// SetName renames an event. No validation happens here; validation is an
// explicit separate step.
func (s *State) SetName(id, name string) bool {
	ev := s.find(id)
	if ev == nil {
		return false
	}
	ev.Name = name
	return true
}

// SetDescription updates an event's free-text description.
func (s *State) SetDescription(id, description string) bool {
	ev := s.find(id)
	if ev == nil {
		return false
	}
	ev.Description = description
	return true
}

// SetSpan moves an event's period span and propagates the move through its
// chain link, if any.
func (s *State) SetSpan(id string, start, end int) bool {
	ev := s.find(id)
	if ev == nil {
		return false
	}
	ev.StartPeriod = start
	ev.EndPeriod = end
	s.adjustChained(ev)
	return true
}

// SetChain links an event ahead of a target by leadTime periods. The
// target's start is advisory-adjusted immediately; an unknown target id
// clears the link instead.
func (s *State) SetChain(id, targetID string, leadTime int) bool {
	ev := s.find(id)
	if ev == nil {
		return false
	}
	if targetID == "" || s.find(targetID) == nil {
		ev.ChainTo = ""
		ev.LeadTime = 0
		return true
	}
	ev.ChainTo = targetID
	ev.LeadTime = leadTime
	s.adjustChained(ev)
	return true
}

// adjustChained shifts the chained event's start to source.start+leadTime,
// clamped to the timeline, preserving the span length where it still fits.
func (s *State) adjustChained(src *scenario.Event) {
	if src.ChainTo == "" {
		return
	}
	target := s.find(src.ChainTo)
	if target == nil {
		return
	}
	length := target.EndPeriod - target.StartPeriod
	target.StartPeriod = scenario.ClampPeriod(src.StartPeriod + src.LeadTime)
	target.EndPeriod = scenario.ClampPeriod(target.StartPeriod + length)
}

// SetAffect sets (or appends) a flat-schema effect on an event.
func (s *State) SetAffect(id, targetKey string, value float64) bool {
	ev := s.find(id)
	if ev == nil {
		return false
	}
	for i := range ev.Affects {
		if ev.Affects[i].Target == targetKey {
			ev.Affects[i].Value = value
			return true
		}
	}
	ev.Affects = append(ev.Affects, scenario.Affect{Target: targetKey, Value: value})
	return true
}

// RemoveAffect drops a flat-schema effect from an event.
func (s *State) RemoveAffect(id, targetKey string) bool {
	ev := s.find(id)
	if ev == nil {
		return false
	}
	for i := range ev.Affects {
		if ev.Affects[i].Target == targetKey {
			ev.Affects = append(ev.Affects[:i], ev.Affects[i+1:]...)
			return true
		}
	}
	return false
}

// SetEffect sets one track effect field on an event, creating the track
// membership if needed.
func (s *State) SetEffect(id, track, key string, value interface{}) bool {
	ev := s.find(id)
	if ev == nil {
		return false
	}
	if ev.Tracks == nil {
		ev.Tracks = map[string]scenario.TrackEffects{}
	}
	te, ok := ev.Tracks[track]
	if !ok || te.Effects == nil {
		te = scenario.TrackEffects{Effects: map[string]interface{}{}}
	}
	te.Effects[key] = value
	ev.Tracks[track] = te
	return true
}

// RemoveEffect clears one track effect field; an emptied track is dropped
// from the event.
func (s *State) RemoveEffect(id, track, key string) bool {
	ev := s.find(id)
	if ev == nil {
		return false
	}
	te, ok := ev.Tracks[track]
	if !ok {
		return false
	}
	if _, ok := te.Effects[key]; !ok {
		return false
	}
	delete(te.Effects, key)
	if len(te.Effects) == 0 {
		delete(ev.Tracks, track)
	} else {
		ev.Tracks[track] = te
	}
	return true
}

func (s *State) find(id string) *scenario.Event {
	for i := range s.events {
		if s.events[i].ID == id {
			return &s.events[i]
		}
	}
	return nil
}
