// Package compose turns baseline series plus authored events into the
// "effective" series the editor charts and the game engine consumes.
package compose

import (
	"github.com/tradesim/scenariobuild/pkg/catalog"
	"github.com/tradesim/scenariobuild/pkg/scenario"
)

// Effective overlays events on the baseline series and returns the
// resulting per-line effective series. It is a pure function: baseline is
// never mutated, and the same inputs always produce the same output.
//
// Events apply in list order, each effect compounding on the
// already-modified value rather than the original baseline. That makes
// percentage composition order-dependent on purpose: the editor's event
// list order is the de facto priority, and two +10% events on the same
// month yield +21%, not +20%.
func Effective(baseline map[string][]float64, events []scenario.Event) map[string][]float64 {
	effective := make(map[string][]float64, len(baseline))
	for key, series := range baseline {
		cp := make([]float64, len(series))
		copy(cp, series)
		effective[key] = cp
	}

	for _, ev := range events {
		start, end := clampMonths(ev.StartMonth(), ev.EndMonth())
		if start > end {
			continue
		}
		for _, eff := range normalize(ev) {
			series, ok := effective[eff.target.BaselineKey()]
			if !ok {
				continue
			}
			applyRange(series, eff.target.Kind, eff.value, start, end)
		}
	}

	return effective
}

// applyRange applies one effect value over the inclusive month range.
func applyRange(series []float64, kind catalog.ValueKind, value float64, start, end int) {
	for m := start; m <= end && m < len(series); m++ {
		switch kind {
		case catalog.Percentage:
			series[m] *= 1 + value/100
		case catalog.Absolute:
			series[m] += value
		}
	}
}

// clampMonths confines a month range to the scenario horizon. Spans
// outside [0, Months-1] should not occur given the period invariant, but
// stored data is not trusted.
func clampMonths(start, end int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end > scenario.Months-1 {
		end = scenario.Months - 1
	}
	return start, end
}
