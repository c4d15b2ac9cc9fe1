// Package report compares the cost of the routing strategies in a
// routing.Set and renders the comparison as text or JSON.
package report

import (
	"fmt"
	"log"

	"clawcost/internal/estimator"
	"clawcost/internal/pricing"
	"clawcost/internal/routing"
	"clawcost/internal/workload"
)

// setupHours is the time it takes to move heartbeats to a cheaper model
// (five minutes), used for the ROI figure.
const setupHours = 0.083

// Inputs is everything a comparison is computed from.
type Inputs struct {
	Tasks        float64
	Cadence      estimator.Cadence
	Distribution workload.Distribution
	Costs        *pricing.CostTable
	Strategies   routing.Set

	// Normalized records that Distribution was rescaled from user input.
	Normalized bool
}

// StrategyResult is the full monthly cost of one strategy.
type StrategyResult struct {
	Strategy routing.Strategy `json:"-"`

	Name      string                   `json:"name"`
	Label     string                   `json:"label"`
	Breakdown estimator.Breakdown      `json:"breakdown"`
	Heartbeat estimator.PeriodicResult `json:"heartbeat"`
	Monthly   float64                  `json:"monthly_total"`
	Annual    float64                  `json:"annual_total"`
}

// Savings is how much a candidate strategy saves against the baseline.
// Percent is nil when the baseline costs nothing and a percentage is
// undefined.
type Savings struct {
	Strategy string   `json:"strategy"`
	Against  string   `json:"against"`
	Monthly  float64  `json:"monthly"`
	Annual   float64  `json:"annual"`
	Percent  *float64 `json:"percent"`
}

// PercentApplicable reports whether Percent is defined.
func (s Savings) PercentApplicable() bool {
	return s.Percent != nil
}

// ComputeSavings returns baselineTotal - candidateTotal as monthly and
// annual amounts, and as a percentage of baselineTotal when that is
// non-zero.
func ComputeSavings(baselineTotal, candidateTotal float64) Savings {
	monthly := baselineTotal - candidateTotal
	s := Savings{
		Monthly: monthly,
		Annual:  monthly * estimator.MonthsPerYear,
	}
	if baselineTotal != 0 {
		pct := monthly / baselineTotal * 100
		s.Percent = &pct
	}
	return s
}

// Recommendations holds the figures behind the report's advice section.
type Recommendations struct {
	HeartbeatModel          string  `json:"heartbeat_model"`
	HeartbeatMonthlySavings float64 `json:"heartbeat_monthly_savings"`
	HeartbeatAnnualSavings  float64 `json:"heartbeat_annual_savings"`
	HeartbeatROIPerHour     float64 `json:"heartbeat_roi_per_hour"`
}

// Comparison is a complete report.
type Comparison struct {
	Tasks           float64               `json:"tasks"`
	Cadence         estimator.Cadence     `json:"heartbeat"`
	Distribution    workload.Distribution `json:"distribution"`
	Normalized      bool                  `json:"normalized"`
	Results         []StrategyResult      `json:"strategies"`
	Savings         []Savings             `json:"savings"`
	Recommendations Recommendations       `json:"recommendations"`
}

// Result returns the result for the named strategy.
func (c *Comparison) Result(name string) (StrategyResult, bool) {
	for _, r := range c.Results {
		if r.Name == name {
			return r, true
		}
	}
	return StrategyResult{}, false
}

// Build prices every strategy in in.Strategies. All strategies are checked
// for routing gaps and unknown models before anything is priced, so a bad
// custom distribution fails without partial results.
func Build(in Inputs) (*Comparison, error) {
	if in.Costs == nil {
		return nil, fmt.Errorf("cost table is required")
	}
	if err := in.Cadence.Validate(); err != nil {
		return nil, err
	}

	strategies := in.Strategies.All()
	for _, s := range strategies {
		if err := s.Covers(in.Distribution); err != nil {
			return nil, err
		}
		if err := s.CheckModels(in.Costs); err != nil {
			return nil, err
		}
	}

	c := &Comparison{
		Tasks:        in.Tasks,
		Cadence:      in.Cadence,
		Distribution: in.Distribution,
		Normalized:   in.Normalized,
		Results:      make([]StrategyResult, 0, len(strategies)),
	}

	for _, s := range strategies {
		b, err := estimator.DistributionCost(in.Costs, in.Tasks, in.Distribution, s)
		if err != nil {
			return nil, fmt.Errorf("strategy %s: %w", s.Name, err)
		}
		s.HeartbeatModel, err = s.HeartbeatModelIn(in.Costs)
		if err != nil {
			return nil, fmt.Errorf("strategy %s heartbeat: %w", s.Name, err)
		}
		hb, err := estimator.HeartbeatCost(in.Costs, in.Cadence, s.HeartbeatModel)
		if err != nil {
			return nil, fmt.Errorf("strategy %s heartbeat: %w", s.Name, err)
		}
		total := b.Total + hb.MonthlyCost
		c.Results = append(c.Results, StrategyResult{
			Strategy:  s,
			Name:      s.Name,
			Label:     s.Label,
			Breakdown: b,
			Heartbeat: hb,
			Monthly:   total,
			Annual:    total * estimator.MonthsPerYear,
		})
		log.Printf("[Report] %s: tasks $%.4f + heartbeat $%.4f = $%.4f/month", s.Name, b.Total, hb.MonthlyCost, total)
	}

	baseline := c.Results[len(c.Results)-1]
	for _, r := range c.Results[:len(c.Results)-1] {
		sv := ComputeSavings(baseline.Monthly, r.Monthly)
		sv.Strategy = r.Name
		sv.Against = baseline.Name
		c.Savings = append(c.Savings, sv)
	}

	optimized := c.Results[0]
	hbSavings := baseline.Heartbeat.MonthlyCost - optimized.Heartbeat.MonthlyCost
	c.Recommendations = Recommendations{
		HeartbeatModel:          optimized.Heartbeat.Model,
		HeartbeatMonthlySavings: hbSavings,
		HeartbeatAnnualSavings:  hbSavings * estimator.MonthsPerYear,
		HeartbeatROIPerHour:     hbSavings * estimator.MonthsPerYear / setupHours,
	}

	return c, nil
}
