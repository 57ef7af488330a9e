package compose

import (
	"math"
	"testing"

	"github.com/tradesim/scenariobuild/pkg/scenario"
)

// flat builds an event carrying a single flat-schema effect.
func flat(id, target string, value float64, start, end int) scenario.Event {
	return scenario.Event{
		ID:          id,
		Name:        id,
		StartPeriod: start,
		EndPeriod:   end,
		Affects:     []scenario.Affect{{Target: target, Value: value}},
	}
}

// tracked builds an event carrying one track's effect map.
func tracked(id, track string, effects map[string]interface{}, start, end int) scenario.Event {
	return scenario.Event{
		ID:          id,
		Name:        id,
		StartPeriod: start,
		EndPeriod:   end,
		Tracks:      map[string]scenario.TrackEffects{track: {Effects: effects}},
	}
}

func flatBaseline(key string, value float64) map[string][]float64 {
	series := make([]float64, scenario.Months)
	for i := range series {
		series[i] = value
	}
	return map[string][]float64{key: series}
}

func approx(t *testing.T, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("got %v, want %v", got, want)
	}
}
