// Package migrate upgrades event arrays authored under the old
// sentiment/severity schema to the current affects-based schema. The
// transform is one-directional and idempotent: events that already carry
// effects pass through untouched, so mixed-version arrays and repeated
// runs are safe.
package migrate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tradesim/scenariobuild/internal/utils"
	"github.com/tradesim/scenariobuild/pkg/scenario"
)

// Assumed baselines for converting legacy absolute dollar impacts into
// percentages. Fixed approximations, not live lookups: old scenarios were
// authored against these reference levels.
const (
	assumedLMEBaseline   = 9000
	assumedCOMEXBaseline = 10000
)

// severityPercent maps the legacy severity enum to a default percentage
// magnitude, used when a legacy event has no explicit impacts.
func severityPercent(severity string) float64 {
	switch strings.ToLower(severity) {
	case "minor":
		return 5
	case "medium":
		return 10
	case "high":
		return 15
	default:
		return 25
	}
}

// sentimentSign maps the legacy sentiment enum to a direction.
func sentimentSign(sentiment string) float64 {
	switch strings.ToLower(sentiment) {
	case "bullish":
		return 1
	case "bearish":
		return -1
	default:
		return 0
	}
}

// Events migrates a JSON event array to the current schema. Elements that
// already carry "affects" or "tracks" are decoded as-is; everything else
// is treated as a legacy event and converted.
func Events(raw []byte) ([]scenario.Event, error) {
	parsed := gjson.ParseBytes(raw)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("migrate: expected a JSON array of events")
	}

	out := []scenario.Event{}
	for i, el := range parsed.Array() {
		if el.Get("affects").Exists() || el.Get("tracks").Exists() {
			var ev scenario.Event
			if err := json.Unmarshal([]byte(el.Raw), &ev); err != nil {
				return nil, fmt.Errorf("migrate: event %d already current but undecodable: %w", i, err)
			}
			out = append(out, ev)
			continue
		}
		out = append(out, fromLegacy(el))
	}
	return out, nil
}

// fromLegacy converts one old-schema event.
func fromLegacy(el gjson.Result) scenario.Event {
	ev := scenario.Event{
		ID:          el.Get("id").String(),
		Name:        el.Get("name").String(),
		Description: el.Get("description").String(),
		StartPeriod: int(el.Get("startPeriod").Int()),
		EndPeriod:   int(el.Get("endPeriod").Int()),
		Affects:     []scenario.Affect{},
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.Name == "" {
		ev.Name = capitalize(el.Get("type").String())
	}
	if ev.StartPeriod == 0 {
		ev.StartPeriod = 1
	}
	if ev.EndPeriod == 0 {
		ev.EndPeriod = scenario.ClampPeriod(ev.StartPeriod + 1)
	}

	impacts := el.Get("impacts")
	if impacts.IsArray() && len(impacts.Array()) > 0 {
		for _, imp := range impacts.Array() {
			target := strings.ToLower(imp.Get("target").String())
			amount := imp.Get("amount").Float()
			base := float64(assumedLMEBaseline)
			if strings.Contains(target, "comex") {
				base = assumedCOMEXBaseline
			}
			ev.Affects = append(ev.Affects, scenario.Affect{
				Target: target,
				Value:  amount / base * 100,
			})
		}
		return ev
	}

	// No explicit impacts: synthesize a single default LME effect from
	// sentiment and severity. A neutral sentiment yields a zero-value
	// placeholder, which the engine skips.
	magnitude := severityPercent(el.Get("severity").String()) * sentimentSign(el.Get("sentiment").String())
	ev.Affects = append(ev.Affects, scenario.Affect{Target: "lme", Value: magnitude})

	utils.Log.Debugf("migrate: synthesized %+g%% lme effect for legacy event %q", magnitude, ev.Name)
	return ev
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
