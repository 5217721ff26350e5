package engine

import "math"

// Frequency is how often a recurring contribution lands.
type Frequency string

const (
	Weekly   Frequency = "weekly"
	BiWeekly Frequency = "biweekly"
	Monthly  Frequency = "monthly"
	Annually Frequency = "annually"
)

// periodsPerYear maps contribution frequencies onto compounding periods.
var periodsPerYear = map[Frequency]int{
	Weekly:   52,
	BiWeekly: 26,
	Monthly:  12,
	Annually: 1,
}

// PeriodsPerYear returns the compounding periods for a frequency,
// defaulting to monthly for anything unknown.
func (f Frequency) PeriodsPerYear() int {
	if n, ok := periodsPerYear[f]; ok {
		return n
	}
	return 12
}

type GrowthInput struct {
	Principal     float64   `json:"principal"`
	Contribution  float64   `json:"contribution"` // per period; 0 for lumpsum
	Frequency     Frequency `json:"frequency"`
	AnnualRatePct float64   `json:"annual_rate_pct"`
	Years         int       `json:"years"`
	StepUpPct     float64   `json:"step_up_pct"`    // contribution raise at each year boundary
	InflationPct  float64   `json:"inflation_pct"`  // for the real-value discount
}

// GrowthPoint is one simulated year's end state.
type GrowthPoint struct {
	Year     int     `json:"year"`
	Invested float64 `json:"invested"`
	Value    float64 `json:"value"`
}

type GrowthResult struct {
	FinalValue  float64       `json:"final_value"`
	Invested    float64       `json:"invested"`
	Gain        float64       `json:"gain"`
	RealValue   float64       `json:"real_value"`
	// CostOfDelay is how much smaller the nominal outcome would be had the
	// same plan started one year later (run for years−1).
	CostOfDelay float64       `json:"cost_of_delay"`
	Points      []GrowthPoint `json:"points"`
}

// ProjectGrowth simulates SIP or lumpsum investment growth with per-period
// compounding: each period the value grows by rate/periodsPerYear, then the
// contribution is added; at each year boundary the contribution is stepped
// up. The real value discounts the nominal outcome by cumulative inflation.
//
// The cost of delay is computed by an independent simulation pass over
// years−1, not by approximation.
func ProjectGrowth(in GrowthInput) GrowthResult {
	res := projectGrowth(in)
	if in.Years > 1 {
		delayed := in
		delayed.Years = in.Years - 1
		res.CostOfDelay = res.FinalValue - projectGrowth(delayed).FinalValue
		if res.CostOfDelay < 0 {
			res.CostOfDelay = 0
		}
	}
	return res
}

func projectGrowth(in GrowthInput) GrowthResult {
	if in.Principal < 0 {
		in.Principal = 0
	}
	if in.Contribution < 0 {
		in.Contribution = 0
	}
	if in.Years < 0 {
		in.Years = 0
	}

	ppy := in.Frequency.PeriodsPerYear()
	periodRate := in.AnnualRatePct / 100 / float64(ppy)

	value := in.Principal
	invested := in.Principal
	contribution := in.Contribution

	res := GrowthResult{}
	for year := 1; year <= in.Years; year++ {
		for p := 0; p < ppy; p++ {
			value *= 1 + periodRate
			if contribution > 0 {
				value += contribution
				invested += contribution
			}
		}
		if in.StepUpPct > 0 {
			contribution *= 1 + in.StepUpPct/100
		}
		res.Points = append(res.Points, GrowthPoint{Year: year, Invested: invested, Value: value})
	}

	res.FinalValue = value
	res.Invested = invested
	res.Gain = value - invested
	res.RealValue = value / math.Pow(1+in.InflationPct/100, float64(in.Years))
	return res
}

// ReturnOnInvestment is gain over invested as a percentage, guarded so a
// zero outlay reports 0 instead of dividing by zero.
func (r GrowthResult) ReturnOnInvestment() float64 {
	if r.Invested == 0 {
		return 0
	}
	return r.Gain / r.Invested * 100
}
