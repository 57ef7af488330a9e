package compose

import (
	"github.com/tradesim/scenariobuild/internal/utils"
	"github.com/tradesim/scenariobuild/pkg/catalog"
	"github.com/tradesim/scenariobuild/pkg/scenario"
)

// resolved is one applicable effect after schema normalization: a catalog
// target plus the authored magnitude.
type resolved struct {
	target catalog.Target
	value  float64
}

// normalize flattens either event schema (flat affects list or per-track
// effects map) into a single ordered effect list. Unknown targets are
// skipped so one malformed effect never aborts composition; zero and
// missing values are skipped because the editor treats them as "no
// effect".
func normalize(ev scenario.Event) []resolved {
	var out []resolved

	for _, a := range ev.Affects {
		t, ok := catalog.Lookup(a.Target)
		if !ok {
			utils.Log.Debugf("compose: event %q references unknown target %q, skipping", ev.Name, a.Target)
			continue
		}
		if a.Value == 0 {
			continue
		}
		out = append(out, resolved{target: t, value: a.Value})
	}

	// Tracks apply in catalog definition order, fields in field order, so
	// composition stays deterministic regardless of map iteration.
	for _, def := range catalog.Tracks() {
		te, ok := ev.Tracks[def.Key]
		if !ok {
			continue
		}
		for _, f := range def.Fields {
			if f.Kind != catalog.FieldNumber || f.Target == "" {
				continue
			}
			if f.ShowIf != "" && !boolField(te.Effects, f.ShowIf) {
				continue
			}
			v, ok := numberField(te.Effects, f.Key)
			if !ok || v == 0 {
				continue
			}
			t, ok := catalog.Lookup(f.Target)
			if !ok {
				utils.Log.Debugf("compose: track field %s.%s references unknown target %q, skipping", def.Key, f.Key, f.Target)
				continue
			}
			out = append(out, resolved{target: t, value: v})
		}
	}

	return out
}

func numberField(effects map[string]interface{}, key string) (float64, bool) {
	raw, ok := effects[key]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func boolField(effects map[string]interface{}, key string) bool {
	v, ok := effects[key].(bool)
	return ok && v
}
