package scenario

import "encoding/json"

// Affect is one entry of the flat event-builder effect schema.
type Affect struct {
	Target string  `json:"target"`
	Value  float64 `json:"value"`
}

// TrackEffects is one track's effect map in the timeline-editor schema.
// Values are numbers for effect fields, bools for gates, strings for
// select/text fields.
type TrackEffects struct {
	Effects map[string]interface{} `json:"effects"`
}

// Event is a user-authored perturbation active over a period span.
//
// Two effect encodings coexist for historical reasons: the flat Affects
// list and the per-track Tracks map. An event carries one or the other;
// the composition engine accepts both.
type Event struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// 1-based half-month periods, EndPeriod >= StartPeriod.
	StartPeriod int `json:"startPeriod"`
	EndPeriod   int `json:"endPeriod"`

	Affects []Affect                `json:"affects,omitempty"`
	Tracks  map[string]TrackEffects `json:"tracks,omitempty"`

	// ChainTo links this event to one it precedes by LeadTime periods.
	// Advisory metadata for the editor; the engine ignores it.
	ChainTo  string `json:"chainTo,omitempty"`
	LeadTime int    `json:"leadTime,omitempty"`
}

// StartMonth returns the 0-based first month the event touches.
func (e Event) StartMonth() int { return MonthIndex(e.StartPeriod) }

// EndMonth returns the 0-based last month the event touches.
func (e Event) EndMonth() int { return MonthIndex(e.EndPeriod) }

// Overlaps reports whether two events' period spans intersect.
func (e Event) Overlaps(other Event) bool {
	return !(e.EndPeriod < other.StartPeriod || other.EndPeriod < e.StartPeriod)
}

// Clone returns an independent deep copy of the event.
func (e Event) Clone() Event {
	raw, err := json.Marshal(e)
	if err != nil {
		panic("scenario: event clone marshal: " + err.Error())
	}
	var out Event
	if err := json.Unmarshal(raw, &out); err != nil {
		panic("scenario: event clone unmarshal: " + err.Error())
	}
	return out
}
