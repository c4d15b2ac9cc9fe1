package routing

import (
	"errors"
	"testing"

	"clawcost/internal/pricing"
	"clawcost/internal/workload"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSet_Order(t *testing.T) {
	set := DefaultSet()
	all := set.All()
	require.Len(t, all, 3)
	assert.Equal(t, NameOptimized, all[0].Name)
	assert.Equal(t, NameDowngrade, all[1].Name)
	assert.Equal(t, NameBaseline, all[2].Name)
}

func TestDefaultSet_CoversDefaultDistribution(t *testing.T) {
	d := workload.Default()
	table := pricing.DefaultTable()

	for _, s := range DefaultSet().All() {
		t.Run(s.Name, func(t *testing.T) {
			assert.NoError(t, s.Covers(d))
			assert.NoError(t, s.CheckModels(table))
		})
	}
}

func TestDefaultSet_HeartbeatModels(t *testing.T) {
	set := DefaultSet()
	assert.Empty(t, set.Optimized.HeartbeatModel, "optimized runs heartbeats on the cheapest model")
	assert.Empty(t, set.Downgrade.HeartbeatModel, "downgrade keeps the cheap heartbeat model")
	assert.Equal(t, "sonnet", set.Baseline.HeartbeatModel)

	table := pricing.DefaultTable()
	for _, s := range []Strategy{set.Optimized, set.Downgrade} {
		model, err := s.HeartbeatModelIn(table)
		require.NoError(t, err)
		assert.Equal(t, "nano", model)
	}
}

func TestHeartbeatModelIn(t *testing.T) {
	table, err := pricing.NewTable([]pricing.ModelCost{
		{Name: "nano", PerCall: 0.0001},
		{Name: "tiny", PerCall: 0.00001},
		{Name: "sonnet", PerCall: 0.015},
	})
	require.NoError(t, err)

	tests := []struct {
		name      string
		heartbeat string
		want      string
		wantErr   error
	}{
		{"unset resolves to cheapest", "", "tiny", nil},
		{"explicit model kept", "nano", "nano", nil},
		{"explicit unknown model", "pico", "", pricing.ErrUnknownModel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Strategy{Name: "custom", HeartbeatModel: tt.heartbeat}
			got, err := s.HeartbeatModelIn(table)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	empty, err := pricing.NewTable(nil)
	require.NoError(t, err)
	_, err = Strategy{Name: "custom"}.HeartbeatModelIn(empty)
	assert.Error(t, err)
}

func TestOptimizedRoutes(t *testing.T) {
	s := DefaultSet().Optimized

	want := map[string]string{
		"heartbeat":   "nano",
		"simple_data": "haiku",
		"chat":        "mistral-large",
		"community":   "sonnet",
		"editorial":   "sonnet",
		"strategic":   "opus",
	}
	for taskType, model := range want {
		got, err := s.ModelFor(taskType)
		require.NoError(t, err)
		assert.Equal(t, model, got, taskType)
	}
}

func TestUniform(t *testing.T) {
	r := Uniform([]string{"a", "b"}, "haiku")
	assert.Equal(t, Routing{"a": "haiku", "b": "haiku"}, r)
}

func TestModelFor_Gap(t *testing.T) {
	s := DefaultSet().Baseline

	_, err := s.ModelFor("research")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRoutingGap))

	var gap *RoutingGapError
	require.True(t, errors.As(err, &gap))
	assert.Equal(t, NameBaseline, gap.Strategy)
	assert.Equal(t, "research", gap.TaskType)
}

func TestCovers_ReportsFirstGapInDistributionOrder(t *testing.T) {
	d, err := workload.ParseJSON(`{"chat": 0.2, "research": 0.4, "zeta": 0.4}`)
	require.NoError(t, err)

	err = DefaultSet().Optimized.Covers(d)
	require.Error(t, err)

	var gap *RoutingGapError
	require.True(t, errors.As(err, &gap))
	assert.Equal(t, "research", gap.TaskType)
	assert.Contains(t, err.Error(), "optimized")
}

func TestCheckModels_UnknownModel(t *testing.T) {
	table := pricing.DefaultTable()

	s := Strategy{Name: "custom", Routes: Routing{"chat": "gpt-9"}, HeartbeatModel: "nano"}
	err := s.CheckModels(table)
	require.Error(t, err)
	assert.True(t, errors.Is(err, pricing.ErrUnknownModel))
	assert.Contains(t, err.Error(), "gpt-9")

	s = Strategy{Name: "custom", Routes: Routing{"chat": "haiku"}, HeartbeatModel: "pico"}
	err = s.CheckModels(table)
	require.Error(t, err)
	assert.True(t, errors.Is(err, pricing.ErrUnknownModel))
	assert.Contains(t, err.Error(), "heartbeat")
}

func TestClone_Independent(t *testing.T) {
	orig := Routing{"chat": "haiku"}
	c := orig.Clone()
	c["chat"] = "opus"
	assert.Equal(t, "haiku", orig["chat"])
}

func TestSet_Lookup(t *testing.T) {
	set := DefaultSet()

	s, ok := set.Lookup(NameDowngrade)
	require.True(t, ok)
	assert.Equal(t, "HAIKU EVERYWHERE (Blanket Downgrade)", s.Label)

	_, ok = set.Lookup("nope")
	assert.False(t, ok)
}

func TestDefaultSet_FreshCopies(t *testing.T) {
	a := DefaultSet()
	a.Optimized.Routes["chat"] = "opus"

	b := DefaultSet()
	assert.Equal(t, "mistral-large", b.Optimized.Routes["chat"])
}
