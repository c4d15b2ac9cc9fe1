package pricing

import (
	"errors"
	"fmt"
)

// ErrUnknownModel is matched by UnknownModelError.
var ErrUnknownModel = errors.New("unknown model")

// UnknownModelError reports a model name that has no entry in the cost table.
type UnknownModelError struct {
	Model string
}

func (e *UnknownModelError) Error() string {
	return fmt.Sprintf("unknown model %q: no entry in cost table", e.Model)
}

// Is lets errors.Is match ErrUnknownModel.
func (e *UnknownModelError) Is(target error) bool {
	return target == ErrUnknownModel
}

// ModelCost is the per-call cost of a single model.
type ModelCost struct {
	Name    string  `json:"name" yaml:"name"`
	PerCall float64 `json:"per_call" yaml:"per_call"` // USD per invocation
}

// CostTable is an ordered, read-only set of model costs.
type CostTable struct {
	models []ModelCost
	index  map[string]int
}

// DefaultModelCosts is the reference per-call pricing.
var DefaultModelCosts = []ModelCost{
	{Name: "nano", PerCall: 0.0001},         // groq-fast, groq-llama
	{Name: "haiku", PerCall: 0.0025},        // claude-haiku-4
	{Name: "mistral-large", PerCall: 0.004}, // mistral-large-2512
	{Name: "sonnet", PerCall: 0.015},        // claude-sonnet-4-5
	{Name: "opus", PerCall: 0.075},          // claude-opus-4-6
}

// DefaultTable returns a CostTable built from DefaultModelCosts.
func DefaultTable() *CostTable {
	t, _ := NewTable(DefaultModelCosts)
	return t
}

// NewTable builds a CostTable. Names must be unique and non-empty, costs
// non-negative. The input slice is copied.
func NewTable(models []ModelCost) (*CostTable, error) {
	t := &CostTable{
		models: make([]ModelCost, 0, len(models)),
		index:  make(map[string]int, len(models)),
	}
	for _, m := range models {
		if m.Name == "" {
			return nil, fmt.Errorf("model name cannot be empty")
		}
		if m.PerCall < 0 {
			return nil, fmt.Errorf("model %s: cost per call cannot be negative (got %g)", m.Name, m.PerCall)
		}
		if _, dup := t.index[m.Name]; dup {
			return nil, fmt.Errorf("model %s listed more than once", m.Name)
		}
		t.index[m.Name] = len(t.models)
		t.models = append(t.models, m)
	}
	return t, nil
}

// UnitCost returns the per-call cost of model.
func (t *CostTable) UnitCost(model string) (float64, error) {
	i, ok := t.index[model]
	if !ok {
		return 0, &UnknownModelError{Model: model}
	}
	return t.models[i].PerCall, nil
}

// Has reports whether model is in the table.
func (t *CostTable) Has(model string) bool {
	_, ok := t.index[model]
	return ok
}

// Models returns a copy of the table in its defined order.
func (t *CostTable) Models() []ModelCost {
	out := make([]ModelCost, len(t.models))
	copy(out, t.models)
	return out
}

// Len returns the number of models.
func (t *CostTable) Len() int {
	return len(t.models)
}

// Cheapest returns the lowest-cost model. Ties go to the model listed first.
// ok is false for an empty table.
func (t *CostTable) Cheapest() (ModelCost, bool) {
	if len(t.models) == 0 {
		return ModelCost{}, false
	}
	best := t.models[0]
	for _, m := range t.models[1:] {
		if m.PerCall < best.PerCall {
			best = m
		}
	}
	return best, true
}
