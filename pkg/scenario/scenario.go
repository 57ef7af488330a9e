// Package scenario defines the persisted data model for one playthrough
// configuration: baselines, per-month market config, authored events and
// game settings. The JSON field names are the wire format consumed by the
// game engine's loader and by previously saved slots, so they stay as-is.
package scenario

import (
	"encoding/json"
	"time"
)

const (
	// Months in the scenario horizon.
	Months = 6
	// Periods is the half-month timeline all events are expressed against:
	// odd periods are the "Early" half of a month, even the "Late" half.
	Periods = 12
)

// MonthIndex maps a 1-based period to its 0-based month: ceil(p/2)-1.
func MonthIndex(period int) int {
	return (period+1)/2 - 1
}

// ClampPeriod forces p into the valid 1..Periods range.
func ClampPeriod(p int) int {
	if p < 1 {
		return 1
	}
	if p > Periods {
		return Periods
	}
	return p
}

// Metadata describes a saved scenario slot.
type Metadata struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	ModifiedAt  time.Time `json:"modifiedAt,omitempty"`
}

// MonthPricing is the admin-configured price baseline for one month.
type MonthPricing struct {
	Average    float64 `json:"average"`
	Volatility float64 `json:"volatility,omitempty"`
}

// Pricing holds the two exchange baselines, one entry per month.
type Pricing struct {
	LME   []MonthPricing `json:"lme"`
	COMEX []MonthPricing `json:"comex"`
}

// MonthSupply is the market depth config for one month.
type MonthSupply struct {
	MinMT float64 `json:"minMT"`
	MaxMT float64 `json:"maxMT"`
}

// MonthDemand is the client demand config for one month.
type MonthDemand struct {
	Clients int     `json:"clients"`
	TotalMT float64 `json:"totalMT"`
}

// MonthShipping is the freight config for one month.
type MonthShipping struct {
	RateIndex  float64 `json:"rateIndex"`
	CIFPremium float64 `json:"cifPremium"`
}

// Settings are the game-wide knobs.
type Settings struct {
	StartingFunds float64 `json:"startingFunds"`
	InterestRate  float64 `json:"interestRate"`
}

// Scenario is the top-level persisted aggregate. It is a value type: slots
// hold independent full copies, never shared sub-objects.
type Scenario struct {
	Metadata Metadata        `json:"metadata"`
	Pricing  Pricing         `json:"pricing"`
	Supply   []MonthSupply   `json:"supply"`
	Demand   []MonthDemand   `json:"demand"`
	Shipping []MonthShipping `json:"shipping,omitempty"`
	Events   []Event         `json:"events"`
	Settings Settings        `json:"settings"`
}

// Clone returns an independent deep copy.
func (s *Scenario) Clone() *Scenario {
	raw, err := json.Marshal(s)
	if err != nil {
		// All scenario fields are plain JSON-safe values.
		panic("scenario: clone marshal: " + err.Error())
	}
	out := &Scenario{}
	if err := json.Unmarshal(raw, out); err != nil {
		panic("scenario: clone unmarshal: " + err.Error())
	}
	return out
}

// Baselines flattens the per-month config into one series per baseline
// line, keyed the way the effect catalog's targets resolve them. Supply
// depth contributes its midpoint; shipping defaults to a flat 100 index
// when the optional shipping config is absent.
func (s *Scenario) Baselines() map[string][]float64 {
	out := map[string][]float64{
		"lme":            make([]float64, Months),
		"comex":          make([]float64, Months),
		"callao_tonnage": make([]float64, Months),
		"client_demand":  make([]float64, Months),
		"shipping_rate":  make([]float64, Months),
		"cif_premium":    make([]float64, Months),
		"interest_rate":  make([]float64, Months),
	}
	for m := 0; m < Months; m++ {
		if m < len(s.Pricing.LME) {
			out["lme"][m] = s.Pricing.LME[m].Average
		}
		if m < len(s.Pricing.COMEX) {
			out["comex"][m] = s.Pricing.COMEX[m].Average
		}
		if m < len(s.Supply) {
			out["callao_tonnage"][m] = (s.Supply[m].MinMT + s.Supply[m].MaxMT) / 2
		}
		if m < len(s.Demand) {
			out["client_demand"][m] = s.Demand[m].TotalMT
		}
		if m < len(s.Shipping) {
			out["shipping_rate"][m] = s.Shipping[m].RateIndex
			out["cif_premium"][m] = s.Shipping[m].CIFPremium
		} else {
			out["shipping_rate"][m] = 100
		}
		out["interest_rate"][m] = s.Settings.InterestRate
	}
	return out
}
