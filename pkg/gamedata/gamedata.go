// Package gamedata materializes the per-month objects the game engine
// loads at runtime. It is a thin projection over the composition engine:
// the same period-to-month and percentage/absolute rules, applied once,
// then reshaped into the engine's nested schema.
package gamedata

import (
	"github.com/tradesim/scenariobuild/pkg/compose"
	"github.com/tradesim/scenariobuild/pkg/scenario"
)

// MonthPricing is the engine's view of one month's prices.
type MonthPricing struct {
	LME        float64 `json:"lme"`
	COMEX      float64 `json:"comex"`
	Volatility float64 `json:"volatility"`
}

// MarketDepth is the tradable volume band for one month.
type MarketDepth struct {
	MinMT float64 `json:"minMT"`
	MaxMT float64 `json:"maxMT"`
}

// ClientDemand is the buy-side configuration for one month.
type ClientDemand struct {
	Clients int     `json:"clients"`
	TotalMT float64 `json:"totalMT"`
}

// Logistics is the freight configuration for one month.
type Logistics struct {
	RateIndex  float64 `json:"rateIndex"`
	CIFPremium float64 `json:"cifPremium"`
}

// Month is the full game data for one simulated month, events applied.
type Month struct {
	Month     int          `json:"month"` // 1-based
	Pricing   MonthPricing `json:"pricing"`
	Depth     MarketDepth  `json:"marketDepth"`
	Demand    ClientDemand `json:"clientDemand"`
	Logistics Logistics    `json:"logistics"`
	Interest  float64      `json:"interestRate"`
}

// GameData is the payload published to the engine's loader.
type GameData struct {
	Scenario string  `json:"scenario"`
	Months   []Month `json:"months"`
}

// Materialize composes the scenario's baselines with its events and
// projects the effective series into the engine schema. Market depth
// keeps its configured band shape: the band is rescaled around the
// effective supply midpoint.
func Materialize(s *scenario.Scenario) GameData {
	baselines := s.Baselines()
	effective := compose.Effective(baselines, s.Events)

	months := make([]Month, scenario.Months)
	for m := 0; m < scenario.Months; m++ {
		gm := Month{
			Month: m + 1,
			Pricing: MonthPricing{
				LME:   effective["lme"][m],
				COMEX: effective["comex"][m],
			},
			Logistics: Logistics{
				RateIndex:  effective["shipping_rate"][m],
				CIFPremium: effective["cif_premium"][m],
			},
			Interest: effective["interest_rate"][m],
		}
		if m < len(s.Pricing.LME) {
			gm.Pricing.Volatility = s.Pricing.LME[m].Volatility
		}
		if m < len(s.Supply) {
			gm.Depth = scaleDepth(s.Supply[m], baselines["callao_tonnage"][m], effective["callao_tonnage"][m])
		}
		if m < len(s.Demand) {
			gm.Demand = ClientDemand{
				Clients: s.Demand[m].Clients,
				TotalMT: effective["client_demand"][m],
			}
		}
		months[m] = gm
	}
	return GameData{Scenario: s.Metadata.Name, Months: months}
}

// scaleDepth shifts the configured min/max band by the tonnage delta the
// events produced, keeping the band width.
func scaleDepth(cfg scenario.MonthSupply, baseMid, effMid float64) MarketDepth {
	delta := effMid - baseMid
	min := cfg.MinMT + delta
	if min < 0 {
		min = 0
	}
	max := cfg.MaxMT + delta
	if max < min {
		max = min
	}
	return MarketDepth{MinMT: min, MaxMT: max}
}
