package pricing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable_UnitCosts(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		model string
		want  float64
	}{
		{"nano", 0.0001},
		{"haiku", 0.0025},
		{"mistral-large", 0.004},
		{"sonnet", 0.015},
		{"opus", 0.075},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			got, err := table.UnitCost(tt.model)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnitCost_UnknownModel(t *testing.T) {
	table := DefaultTable()

	_, err := table.UnitCost("gpt-9")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownModel))

	var unknown *UnknownModelError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "gpt-9", unknown.Model)
	assert.Contains(t, err.Error(), "gpt-9")
}

func TestDefaultTable_Order(t *testing.T) {
	models := DefaultTable().Models()
	names := make([]string, len(models))
	for i, m := range models {
		names[i] = m.Name
	}
	assert.Equal(t, []string{"nano", "haiku", "mistral-large", "sonnet", "opus"}, names)
}

func TestModels_ReturnsCopy(t *testing.T) {
	table := DefaultTable()
	models := table.Models()
	models[0].PerCall = 99

	got, err := table.UnitCost("nano")
	require.NoError(t, err)
	assert.Equal(t, 0.0001, got, "mutating the returned slice must not change the table")
}

func TestCheapest(t *testing.T) {
	m, ok := DefaultTable().Cheapest()
	require.True(t, ok)
	assert.Equal(t, "nano", m.Name)

	tie, err := NewTable([]ModelCost{{Name: "a", PerCall: 1}, {Name: "b", PerCall: 1}})
	require.NoError(t, err)
	m, ok = tie.Cheapest()
	require.True(t, ok)
	assert.Equal(t, "a", m.Name)

	empty, err := NewTable(nil)
	require.NoError(t, err)
	_, ok = empty.Cheapest()
	assert.False(t, ok)
}

func TestNewTable_Validation(t *testing.T) {
	tests := []struct {
		name   string
		models []ModelCost
		errMsg string
	}{
		{"empty name", []ModelCost{{Name: "", PerCall: 1}}, "cannot be empty"},
		{"negative cost", []ModelCost{{Name: "x", PerCall: -0.1}}, "cannot be negative"},
		{"duplicate", []ModelCost{{Name: "x", PerCall: 1}, {Name: "x", PerCall: 2}}, "more than once"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.models)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestHasAndLen(t *testing.T) {
	table := DefaultTable()
	assert.Equal(t, 5, table.Len())
	assert.True(t, table.Has("opus"))
	assert.False(t, table.Has("OPUS"))
}
