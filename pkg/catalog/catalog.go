// Package catalog holds the static registry of affect targets and event
// tracks. The registry is configuration, not runtime state: it is compiled
// into the binary from catalog.yaml and is read-only after load.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var rawCatalog []byte

// ValueKind says how an effect value is applied to a baseline series.
type ValueKind string

const (
	// Percentage effects multiply the running value by (1 + v/100).
	Percentage ValueKind = "percentage"
	// Absolute effects add v to the running value.
	Absolute ValueKind = "absolute"
)

// FieldKind is the input widget a track field maps to in the editor.
type FieldKind string

const (
	FieldNumber FieldKind = "number"
	FieldSelect FieldKind = "select"
	FieldBool   FieldKind = "bool"
	FieldText   FieldKind = "text"
)

// Target is a single steerable quantity (e.g. the LME cash price).
type Target struct {
	Key      string    `yaml:"key" json:"key"`
	Label    string    `yaml:"label" json:"label"`
	Category string    `yaml:"category" json:"category"`
	Unit     string    `yaml:"unit" json:"unit,omitempty"`
	Kind     ValueKind `yaml:"kind" json:"kind"`

	// Baseline names the baseline line this target composes onto. Several
	// targets (the futures tenors) share one line; empty means Key.
	Baseline string `yaml:"baseline" json:"baseline,omitempty"`

	// Valid value range for authored effects. Out-of-range input is
	// accepted but flagged as a warning, never rejected.
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// BaselineKey resolves the baseline line for this target.
func (t Target) BaselineKey() string {
	if t.Baseline != "" {
		return t.Baseline
	}
	return t.Key
}

// InRange reports whether v is within the target's advisory range.
func (t Target) InRange(v float64) bool {
	if t.Min == 0 && t.Max == 0 {
		return true
	}
	return v >= t.Min && v <= t.Max
}

// Field is one input within a track.
type Field struct {
	Key     string    `yaml:"key" json:"key"`
	Label   string    `yaml:"label" json:"label"`
	Kind    FieldKind `yaml:"kind" json:"kind"`
	Target  string    `yaml:"target" json:"target,omitempty"` // affect target steered by a number field
	Min     float64   `yaml:"min" json:"min,omitempty"`
	Max     float64   `yaml:"max" json:"max,omitempty"`
	Options []string  `yaml:"options" json:"options,omitempty"`

	// ShowIf names a bool field in the same track. When set, this field is
	// inert (and hidden in the editor) unless that gate field is true.
	ShowIf string `yaml:"showIf" json:"showIf,omitempty"`
}

// Track is a named group of effect fields an event can carry.
type Track struct {
	Key    string  `yaml:"key" json:"key"`
	Label  string  `yaml:"label" json:"label"`
	Fields []Field `yaml:"fields" json:"fields"`
}

// Field returns the named field definition within the track.
func (tr Track) Field(key string) (Field, bool) {
	for _, f := range tr.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Category groups targets for display and for separate baseline charts.
type Category struct {
	Key   string `yaml:"key" json:"key"`
	Label string `yaml:"label" json:"label"`
}

type registry struct {
	Categories []Category `yaml:"categories"`
	Targets    []Target   `yaml:"targets"`
	Tracks     []Track    `yaml:"tracks"`
}

var (
	reg       registry
	targetIdx map[string]Target
	trackIdx  map[string]Track
)

func init() {
	if err := yaml.Unmarshal(rawCatalog, &reg); err != nil {
		panic(fmt.Sprintf("catalog: bad embedded catalog.yaml: %v", err))
	}
	targetIdx = make(map[string]Target, len(reg.Targets))
	for _, t := range reg.Targets {
		targetIdx[t.Key] = t
	}
	trackIdx = make(map[string]Track, len(reg.Tracks))
	for _, tr := range reg.Tracks {
		trackIdx[tr.Key] = tr
	}
}

// Lookup returns the affect target for key.
func Lookup(key string) (Target, bool) {
	t, ok := targetIdx[key]
	return t, ok
}

// LookupTrack returns the track definition for key.
func LookupTrack(key string) (Track, bool) {
	tr, ok := trackIdx[key]
	return tr, ok
}

// Targets returns all targets in catalog order.
func Targets() []Target {
	out := make([]Target, len(reg.Targets))
	copy(out, reg.Targets)
	return out
}

// Tracks returns all track definitions in catalog order.
func Tracks() []Track {
	out := make([]Track, len(reg.Tracks))
	copy(out, reg.Tracks)
	return out
}

// Categories returns all target categories in catalog order.
func Categories() []Category {
	out := make([]Category, len(reg.Categories))
	copy(out, reg.Categories)
	return out
}
