package scenario

// Default returns the built-in scenario served from slot 0. Callers get a
// fresh copy every time; the default itself is never written back.
func Default() *Scenario {
	lme := []MonthPricing{
		{Average: 9000, Volatility: 300},
		{Average: 9100, Volatility: 300},
		{Average: 9200, Volatility: 350},
		{Average: 9150, Volatility: 350},
		{Average: 9300, Volatility: 400},
		{Average: 9400, Volatility: 400},
	}
	comex := []MonthPricing{
		{Average: 10000, Volatility: 350},
		{Average: 10100, Volatility: 350},
		{Average: 10200, Volatility: 400},
		{Average: 10150, Volatility: 400},
		{Average: 10300, Volatility: 450},
		{Average: 10400, Volatility: 450},
	}
	supply := make([]MonthSupply, Months)
	demand := make([]MonthDemand, Months)
	shipping := make([]MonthShipping, Months)
	for m := 0; m < Months; m++ {
		supply[m] = MonthSupply{MinMT: 400, MaxMT: 800}
		demand[m] = MonthDemand{Clients: 8, TotalMT: 550}
		shipping[m] = MonthShipping{RateIndex: 100, CIFPremium: 60}
	}
	return &Scenario{
		Metadata: Metadata{
			Name:        "Default Scenario",
			Description: "Built-in baseline scenario. Copy to another slot before editing.",
		},
		Pricing:  Pricing{LME: lme, COMEX: comex},
		Supply:   supply,
		Demand:   demand,
		Shipping: shipping,
		Events:   []Event{},
		Settings: Settings{StartingFunds: 1_000_000, InterestRate: 5},
	}
}
