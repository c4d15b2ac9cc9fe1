// Package routing defines routing strategies: complete assignments of a
// model to every task type, plus the model that serves heartbeats.
package routing

import (
	"errors"
	"fmt"
	"sort"

	"clawcost/internal/pricing"
	"clawcost/internal/workload"
)

// Predefined strategy names.
const (
	NameOptimized = "optimized"
	NameDowngrade = "downgrade"
	NameBaseline  = "baseline"
)

// ErrRoutingGap is matched by RoutingGapError.
var ErrRoutingGap = errors.New("routing gap")

// RoutingGapError reports a task type that a strategy does not route.
type RoutingGapError struct {
	Strategy string
	TaskType string
}

func (e *RoutingGapError) Error() string {
	if e.Strategy == "" {
		return fmt.Sprintf("no model routed for task type %q", e.TaskType)
	}
	return fmt.Sprintf("strategy %s has no model routed for task type %q", e.Strategy, e.TaskType)
}

// Is lets errors.Is match ErrRoutingGap.
func (e *RoutingGapError) Is(target error) bool {
	return target == ErrRoutingGap
}

// Routing maps task type to model name.
type Routing map[string]string

// Clone returns an independent copy.
func (r Routing) Clone() Routing {
	out := make(Routing, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// TaskTypes returns the routed task types, sorted.
func (r Routing) TaskTypes() []string {
	out := make([]string, 0, len(r))
	for k := range r {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Strategy is one operating policy to compare against others.
type Strategy struct {
	// Name is the short identifier used in flags and config files.
	Name string `json:"name" yaml:"name"`

	// Label is the section heading used in reports.
	Label string `json:"label" yaml:"label"`

	// Routes assigns a model to each task type.
	Routes Routing `json:"routes" yaml:"routes"`

	// HeartbeatModel serves the periodic heartbeat overlay. It is set
	// separately from Routes: a blanket downgrade still runs heartbeats on
	// the cheap model. Empty means the cheapest model in the cost table.
	HeartbeatModel string `json:"heartbeat_model,omitempty" yaml:"heartbeat_model,omitempty"`

	// Warning is printed under the strategy's section, if set.
	Warning string `json:"warning,omitempty" yaml:"warning,omitempty"`

	// Caveat is printed under the strategy's savings line, if set.
	Caveat string `json:"caveat,omitempty" yaml:"caveat,omitempty"`
}

// ModelFor returns the model routed for taskType.
func (s Strategy) ModelFor(taskType string) (string, error) {
	model, ok := s.Routes[taskType]
	if !ok {
		return "", &RoutingGapError{Strategy: s.Name, TaskType: taskType}
	}
	return model, nil
}

// Covers checks that every task type in d has a route. The first gap in
// distribution order is reported.
func (s Strategy) Covers(d workload.Distribution) error {
	for _, taskType := range d.TaskTypes() {
		if _, ok := s.Routes[taskType]; !ok {
			return &RoutingGapError{Strategy: s.Name, TaskType: taskType}
		}
	}
	return nil
}

// CheckModels checks that every routed model and the heartbeat model exist
// in table.
func (s Strategy) CheckModels(table *pricing.CostTable) error {
	for _, taskType := range s.Routes.TaskTypes() {
		model := s.Routes[taskType]
		if !table.Has(model) {
			return fmt.Errorf("strategy %s, task type %s: %w", s.Name, taskType, &pricing.UnknownModelError{Model: model})
		}
	}
	if _, err := s.HeartbeatModelIn(table); err != nil {
		return fmt.Errorf("strategy %s, heartbeat: %w", s.Name, err)
	}
	return nil
}

// HeartbeatModelIn returns the model that serves heartbeats when priced
// against table. An unset HeartbeatModel resolves to the cheapest model.
func (s Strategy) HeartbeatModelIn(table *pricing.CostTable) (string, error) {
	if s.HeartbeatModel != "" {
		if !table.Has(s.HeartbeatModel) {
			return "", &pricing.UnknownModelError{Model: s.HeartbeatModel}
		}
		return s.HeartbeatModel, nil
	}
	cheapest, ok := table.Cheapest()
	if !ok {
		return "", errors.New("cost table is empty")
	}
	return cheapest.Name, nil
}

// Uniform routes every task type to the same model.
func Uniform(taskTypes []string, model string) Routing {
	r := make(Routing, len(taskTypes))
	for _, t := range taskTypes {
		r[t] = model
	}
	return r
}
