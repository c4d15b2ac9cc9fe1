package routing

import "clawcost/internal/workload"

// Set is the three strategies a report compares. Baseline is the reference
// the other two are measured against.
type Set struct {
	Optimized Strategy `json:"optimized" yaml:"optimized"`
	Downgrade Strategy `json:"downgrade" yaml:"downgrade"`
	Baseline  Strategy `json:"baseline" yaml:"baseline"`
}

// All returns the strategies in report order.
func (s Set) All() []Strategy {
	return []Strategy{s.Optimized, s.Downgrade, s.Baseline}
}

// Lookup returns the strategy with the given name.
func (s Set) Lookup(name string) (Strategy, bool) {
	for _, st := range s.All() {
		if st.Name == name {
			return st, true
		}
	}
	return Strategy{}, false
}

// OptimizedRoutes sends each task type to the cheapest model that holds
// quality for it.
var OptimizedRoutes = Routing{
	"heartbeat":   "nano",
	"simple_data": "haiku",
	"chat":        "mistral-large",
	"community":   "sonnet",
	"editorial":   "sonnet",
	"strategic":   "opus",
}

// DefaultSet returns the reference strategies over the default task types.
func DefaultSet() Set {
	taskTypes := workload.Default().TaskTypes()
	return Set{
		Optimized: Strategy{
			Name:   NameOptimized,
			Label:  "OPTIMIZED ROUTING (Recommended)",
			Routes: OptimizedRoutes.Clone(),
		},
		Downgrade: Strategy{
			Name:   NameDowngrade,
			Label:  "HAIKU EVERYWHERE (Blanket Downgrade)",
			Routes: Uniform(taskTypes, "haiku"),
			Warning: "WARNING: This assumes Haiku quality is acceptable for all tasks.\n" +
				"Real-world testing showed 67-75% quality degradation (see Case 5).",
			Caveat: "But with 67-75% quality loss on complex tasks",
		},
		Baseline: Strategy{
			Name:           NameBaseline,
			Label:          "SONNET EVERYWHERE (Baseline)",
			Routes:         Uniform(taskTypes, "sonnet"),
			HeartbeatModel: "sonnet",
		},
	}
}
