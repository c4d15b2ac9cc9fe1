// Package estimator turns a workload, a routing strategy and a cost table
// into monthly cost figures. Every function is pure: same inputs, same
// result, no side effects.
package estimator

import (
	"math"

	"clawcost/internal/workload"
)

// Calendar constants. These are fixed assumptions, not configuration.
const (
	MinutesPerDay = 1440
	DaysPerMonth  = 30
	MonthsPerYear = 12
)

// CostSource looks up the per-call cost of a model.
type CostSource interface {
	UnitCost(model string) (float64, error)
}

// Router picks the model that serves a task type.
type Router interface {
	ModelFor(taskType string) (string, error)
}

// Entry is the cost of one task type under one strategy.
type Entry struct {
	TaskType string  `json:"task_type"`
	Count    float64 `json:"count"`
	Model    string  `json:"model"`
	UnitCost float64 `json:"cost_per_task"`
	Cost     float64 `json:"total_cost"`
}

// Breakdown is the per-task-type cost of a distribution, in distribution
// order.
type Breakdown struct {
	Entries []Entry `json:"entries"`
	Total   float64 `json:"total_cost"`
}

// Annual returns the yearly cost.
func (b Breakdown) Annual() float64 {
	return b.Total * MonthsPerYear
}

// DistributionCost prices totalTasks split by d and routed by router.
// Fractional task counts are allowed since they stand for monthly
// averages. Routing gaps and unknown models are reported before any cost
// is computed.
func DistributionCost(costs CostSource, totalTasks float64, d workload.Distribution, router Router) (Breakdown, error) {
	if totalTasks < 0 || math.IsNaN(totalTasks) || math.IsInf(totalTasks, 0) {
		return Breakdown{}, &InvalidTaskCountError{Tasks: totalTasks}
	}

	shares := d.Shares()
	entries := make([]Entry, len(shares))
	for i, s := range shares {
		model, err := router.ModelFor(s.TaskType)
		if err != nil {
			return Breakdown{}, err
		}
		unit, err := costs.UnitCost(model)
		if err != nil {
			return Breakdown{}, err
		}
		entries[i] = Entry{TaskType: s.TaskType, Model: model, UnitCost: unit}
	}

	var total float64
	for i, s := range shares {
		entries[i].Count = totalTasks * s.Share
		entries[i].Cost = entries[i].Count * entries[i].UnitCost
		total += entries[i].Cost
	}

	return Breakdown{Entries: entries, Total: total}, nil
}

// PeriodicResult is the monthly cost of a fixed-cadence background call.
type PeriodicResult struct {
	Model         string  `json:"model"`
	CallsPerDay   float64 `json:"calls_per_day"`
	CallsPerMonth float64 `json:"calls_per_month"`
	UnitCost      float64 `json:"cost_per_call"`
	MonthlyCost   float64 `json:"monthly_cost"`
}

// Annual returns the yearly cost.
func (p PeriodicResult) Annual() float64 {
	return p.MonthlyCost * MonthsPerYear
}

// PeriodicCost prices a call made every intervalMinutes for a 30-day month.
func PeriodicCost(costs CostSource, intervalMinutes float64, model string) (PeriodicResult, error) {
	if !(intervalMinutes > 0) || math.IsInf(intervalMinutes, 0) {
		return PeriodicResult{}, &InvalidIntervalError{Minutes: intervalMinutes}
	}
	unit, err := costs.UnitCost(model)
	if err != nil {
		return PeriodicResult{}, err
	}

	callsPerDay := MinutesPerDay / intervalMinutes
	callsPerMonth := callsPerDay * DaysPerMonth
	return PeriodicResult{
		Model:         model,
		CallsPerDay:   callsPerDay,
		CallsPerMonth: callsPerMonth,
		UnitCost:      unit,
		MonthlyCost:   callsPerMonth * unit,
	}, nil
}
