package estimator

import (
	"fmt"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
)

// scheduleEpoch anchors the 30-day window that cron schedules are counted
// over, so day-of-week and day-of-month schedules price the same on every
// run.
var scheduleEpoch = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

var secondsParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ParseSchedule parses a 5-field cron expression or descriptor, falling
// back to the 6-field form with a leading seconds field.
func ParseSchedule(expr string) (cron.Schedule, error) {
	sched, err := cron.ParseStandard(expr)
	if err == nil {
		return sched, nil
	}
	sched, err6 := secondsParser.Parse(expr)
	if err6 != nil {
		return nil, &InvalidScheduleError{Schedule: expr, Err: err}
	}
	return sched, nil
}

// CountActivations returns how many times sched fires in the 30-day window
// starting at scheduleEpoch.
func CountActivations(sched cron.Schedule) int {
	end := scheduleEpoch.AddDate(0, 0, DaysPerMonth)
	count := 0
	for t := sched.Next(scheduleEpoch.Add(-time.Second)); !t.IsZero() && t.Before(end); t = sched.Next(t) {
		count++
	}
	return count
}

// ScheduledCost prices a call made on a cron schedule for a 30-day month.
func ScheduledCost(costs CostSource, schedule string, model string) (PeriodicResult, error) {
	sched, err := ParseSchedule(schedule)
	if err != nil {
		return PeriodicResult{}, err
	}
	unit, err := costs.UnitCost(model)
	if err != nil {
		return PeriodicResult{}, err
	}

	callsPerMonth := float64(CountActivations(sched))
	return PeriodicResult{
		Model:         model,
		CallsPerDay:   callsPerMonth / DaysPerMonth,
		CallsPerMonth: callsPerMonth,
		UnitCost:      unit,
		MonthlyCost:   callsPerMonth * unit,
	}, nil
}

// Cadence is how often the heartbeat fires: a fixed interval, or a cron
// schedule when Schedule is set.
type Cadence struct {
	IntervalMinutes float64 `json:"interval_minutes,omitempty"`
	Schedule        string  `json:"schedule,omitempty"`
}

// String describes the cadence for report headings.
func (c Cadence) String() string {
	if c.Schedule != "" {
		return fmt.Sprintf("schedule %q", c.Schedule)
	}
	return strconv.FormatFloat(c.IntervalMinutes, 'f', -1, 64) + "min intervals"
}

// Validate checks the cadence without pricing it.
func (c Cadence) Validate() error {
	if c.Schedule != "" {
		_, err := ParseSchedule(c.Schedule)
		return err
	}
	if !(c.IntervalMinutes > 0) {
		return &InvalidIntervalError{Minutes: c.IntervalMinutes}
	}
	return nil
}

// HeartbeatCost prices the heartbeat on model at cadence c.
func HeartbeatCost(costs CostSource, c Cadence, model string) (PeriodicResult, error) {
	if c.Schedule != "" {
		return ScheduledCost(costs, c.Schedule, model)
	}
	return PeriodicCost(costs, c.IntervalMinutes, model)
}
