// Package validate performs structural and semantic checks on events and
// scenarios. Results are data, never panics: errors block a save, warnings
// are advisory only.
package validate

import (
	"fmt"

	"github.com/tradesim/scenariobuild/pkg/catalog"
	"github.com/tradesim/scenariobuild/pkg/scenario"
)

// Plausible bounds for monthly price averages. Values outside warn but
// never block.
const (
	priceAvgMin = 5000
	priceAvgMax = 20000
)

// Result collects validation findings. Errors block a save; warnings are
// surfaced to the admin and otherwise ignored.
type Result struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// OK reports whether the result carries no blocking errors.
func (r Result) OK() bool { return len(r.Errors) == 0 }

func (r *Result) errorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Result) merge(other Result) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Event checks a single event. The full event list is needed to verify
// chain links resolve.
func Event(ev scenario.Event, all []scenario.Event) Result {
	var res Result

	if ev.Name == "" {
		res.errorf("event %s: name is required", ev.ID)
	}
	label := ev.Name
	if label == "" {
		label = ev.ID
	}

	if ev.StartPeriod < 1 || ev.StartPeriod > scenario.Periods {
		res.errorf("event %q: startPeriod %d outside 1..%d", label, ev.StartPeriod, scenario.Periods)
	}
	if ev.EndPeriod < 1 || ev.EndPeriod > scenario.Periods {
		res.errorf("event %q: endPeriod %d outside 1..%d", label, ev.EndPeriod, scenario.Periods)
	}
	if ev.EndPeriod < ev.StartPeriod {
		res.errorf("event %q: endPeriod %d before startPeriod %d", label, ev.EndPeriod, ev.StartPeriod)
	}

	if len(ev.Affects) == 0 && len(ev.Tracks) == 0 {
		res.warnf("event %q carries no effects", label)
	}

	for _, a := range ev.Affects {
		t, ok := catalog.Lookup(a.Target)
		if !ok {
			res.warnf("event %q: unknown affect target %q will be ignored", label, a.Target)
			continue
		}
		if a.Value != 0 && !t.InRange(a.Value) {
			res.warnf("event %q: %s value %g outside plausible range [%g, %g]", label, t.Label, a.Value, t.Min, t.Max)
		}
	}

	if ev.ChainTo != "" {
		found := false
		for _, other := range all {
			if other.ID == ev.ChainTo {
				found = true
				break
			}
		}
		if !found {
			res.errorf("event %q: chain link references missing event %s", label, ev.ChainTo)
		}
	}

	return res
}

// Scenario checks a full scenario: metadata, per-month market config,
// settings, every event, and pairwise span overlaps.
func Scenario(s *scenario.Scenario) Result {
	var res Result

	if s == nil {
		res.errorf("scenario is missing")
		return res
	}
	if s.Metadata.Name == "" {
		res.errorf("metadata.name is required")
	}

	checkPricing(&res, "lme", s.Pricing.LME)
	checkPricing(&res, "comex", s.Pricing.COMEX)

	if len(s.Supply) != scenario.Months {
		res.errorf("supply config must cover %d months, has %d", scenario.Months, len(s.Supply))
	}
	for m, sup := range s.Supply {
		if sup.MinMT > sup.MaxMT {
			res.errorf("supply month %d: minMT %g exceeds maxMT %g", m+1, sup.MinMT, sup.MaxMT)
		}
		if sup.MinMT < 0 {
			res.errorf("supply month %d: negative minMT", m+1)
		}
	}

	if len(s.Demand) != scenario.Months {
		res.errorf("demand config must cover %d months, has %d", scenario.Months, len(s.Demand))
	}
	for m, dem := range s.Demand {
		if dem.TotalMT < 0 {
			res.errorf("demand month %d: negative totalMT", m+1)
		}
		if dem.Clients <= 0 {
			res.warnf("demand month %d: no clients configured", m+1)
		}
	}

	if s.Settings.StartingFunds <= 0 {
		res.errorf("settings: startingFunds must be positive")
	}
	if s.Settings.InterestRate < 0 || s.Settings.InterestRate > 100 {
		res.errorf("settings: interestRate %g outside 0..100", s.Settings.InterestRate)
	}

	for _, ev := range s.Events {
		res.merge(Event(ev, s.Events))
	}

	// Overlapping events are a valid design (compounding is intentional),
	// so intersecting spans only warn.
	for i := 0; i < len(s.Events); i++ {
		for j := i + 1; j < len(s.Events); j++ {
			if s.Events[i].Overlaps(s.Events[j]) {
				res.warnf("events %q and %q overlap (periods %d-%d and %d-%d)",
					s.Events[i].Name, s.Events[j].Name,
					s.Events[i].StartPeriod, s.Events[i].EndPeriod,
					s.Events[j].StartPeriod, s.Events[j].EndPeriod)
			}
		}
	}

	return res
}

func checkPricing(res *Result, line string, months []scenario.MonthPricing) {
	if len(months) != scenario.Months {
		res.errorf("pricing.%s must cover %d months, has %d", line, scenario.Months, len(months))
		return
	}
	for m, p := range months {
		if p.Average < priceAvgMin || p.Average > priceAvgMax {
			res.warnf("pricing.%s month %d: average %g outside plausible range [%d, %d]", line, m+1, p.Average, priceAvgMin, priceAvgMax)
		}
		if p.Volatility < 0 {
			res.errorf("pricing.%s month %d: negative volatility", line, m+1)
		}
	}
}
