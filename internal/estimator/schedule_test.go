package estimator

import (
	"errors"
	"testing"

	"clawcost/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduledCost_MatchesInterval(t *testing.T) {
	table := pricing.DefaultTable()

	byInterval, err := PeriodicCost(table, 30, "nano")
	require.NoError(t, err)

	for _, expr := range []string{"*/30 * * * *", "0 */30 * * * *", "@every 30m"} {
		t.Run(expr, func(t *testing.T) {
			bySchedule, err := ScheduledCost(table, expr, "nano")
			require.NoError(t, err)
			assert.Equal(t, byInterval.CallsPerMonth, bySchedule.CallsPerMonth)
			assert.Equal(t, byInterval.CallsPerDay, bySchedule.CallsPerDay)
			assert.InDelta(t, byInterval.MonthlyCost, bySchedule.MonthlyCost, 1e-12)
		})
	}
}

func TestScheduledCost_Counts(t *testing.T) {
	table := pricing.DefaultTable()

	tests := []struct {
		expr string
		want float64
	}{
		{"0 0 * * *", 30},
		{"@daily", 30},
		{"0 9-17 * * *", 9 * 30},
		{"0 * * * *", 24 * 30},
		// The window starts on a Wednesday: 2025-01-01 through 2025-01-30.
		{"0 12 * * 1", 4},
		{"0 0 31 2 *", 0},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := ScheduledCost(table, tt.expr, "haiku")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.CallsPerMonth)
			assert.InDelta(t, tt.want*0.0025, got.MonthlyCost, 1e-12)
		})
	}
}

func TestScheduledCost_Errors(t *testing.T) {
	table := pricing.DefaultTable()

	_, err := ScheduledCost(table, "every half hour", "nano")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSchedule))
	assert.Contains(t, err.Error(), "every half hour")

	_, err = ScheduledCost(table, "*/30 * * * *", "pico")
	require.Error(t, err)
	assert.True(t, errors.Is(err, pricing.ErrUnknownModel))
}

func TestCadence(t *testing.T) {
	table := pricing.DefaultTable()

	interval := Cadence{IntervalMinutes: 30}
	assert.Equal(t, "30min intervals", interval.String())
	assert.NoError(t, interval.Validate())

	sched := Cadence{IntervalMinutes: 30, Schedule: "0 * * * *"}
	assert.Equal(t, `schedule "0 * * * *"`, sched.String())
	assert.NoError(t, sched.Validate())

	got, err := HeartbeatCost(table, sched, "nano")
	require.NoError(t, err)
	assert.Equal(t, 720.0, got.CallsPerMonth, "schedule takes precedence over interval")

	assert.True(t, errors.Is(Cadence{}.Validate(), ErrInvalidInterval))
	assert.True(t, errors.Is(Cadence{Schedule: "bogus"}.Validate(), ErrInvalidSchedule))
}
