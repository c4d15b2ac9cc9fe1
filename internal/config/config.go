package config

import (
	"fmt"
	"log"
	"os"

	"clawcost/internal/pricing"
	"clawcost/internal/routing"
	"clawcost/internal/workload"

	"gopkg.in/yaml.v3"
)

// Config is the complete, validated input to a report run. It is built once
// at startup and treated as read-only afterwards.
type Config struct {
	Tasks        int
	Heartbeat    HeartbeatConfig
	Models       []pricing.ModelCost
	Distribution workload.Distribution
	Strategies   routing.Set
}

// Default returns the reference configuration
func Default() *Config {
	return &Config{
		Tasks:        100,
		Heartbeat:    DefaultHeartbeatConfig(),
		Models:       append([]pricing.ModelCost(nil), pricing.DefaultModelCosts...),
		Distribution: workload.Default(),
		Strategies:   routing.DefaultSet(),
	}
}

// fileConfig is the on-disk YAML layout. Every section is optional; absent
// sections keep their defaults.
type fileConfig struct {
	Tasks        *int                        `yaml:"tasks"`
	Heartbeat    *HeartbeatConfig            `yaml:"heartbeat"`
	Models       []pricing.ModelCost         `yaml:"models"`
	Distribution yaml.Node                   `yaml:"distribution"`
	Strategies   map[string]StrategyOverride `yaml:"strategies"`
}

// StrategyOverride replaces parts of a predefined strategy. Model is a
// shorthand that routes every task type in the distribution to one model;
// it is ignored when Routes is set.
type StrategyOverride struct {
	Label          string            `yaml:"label"`
	Routes         map[string]string `yaml:"routes"`
	Model          string            `yaml:"model"`
	HeartbeatModel string            `yaml:"heartbeat_model"`
	Warning        *string           `yaml:"warning"`
	Caveat         *string           `yaml:"caveat"`
}

// Load loads configuration from a YAML file on top of Default()
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	log.Printf("[Config] Loaded %d models, %d task types from %s", len(cfg.Models), cfg.Distribution.Len(), path)
	return cfg, nil
}

// Parse decodes YAML configuration on top of Default() and validates it
func Parse(data []byte) (*Config, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := Default()
	if fc.Tasks != nil {
		cfg.Tasks = *fc.Tasks
	}
	if fc.Heartbeat != nil {
		cfg.Heartbeat = *fc.Heartbeat
	}
	if len(fc.Models) > 0 {
		cfg.Models = fc.Models
	}
	if fc.Distribution.Kind != 0 {
		d, err := decodeDistribution(&fc.Distribution)
		if err != nil {
			return nil, err
		}
		cfg.Distribution = d
	}
	for name, o := range fc.Strategies {
		if err := cfg.applyOverride(name, o); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// decodeDistribution reads a YAML mapping of task type to share, keeping
// the document order.
func decodeDistribution(node *yaml.Node) (workload.Distribution, error) {
	if node.Kind != yaml.MappingNode {
		return workload.Distribution{}, fmt.Errorf("distribution must be a mapping of task type to share (line %d)", node.Line)
	}
	shares := make([]workload.Share, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		var share float64
		if err := value.Decode(&share); err != nil {
			return workload.Distribution{}, fmt.Errorf("distribution %s (line %d): %w", key.Value, value.Line, err)
		}
		shares = append(shares, workload.Share{TaskType: key.Value, Share: share})
	}
	return workload.New(shares)
}

func (c *Config) applyOverride(name string, o StrategyOverride) error {
	var s *routing.Strategy
	switch name {
	case routing.NameOptimized:
		s = &c.Strategies.Optimized
	case routing.NameDowngrade:
		s = &c.Strategies.Downgrade
	case routing.NameBaseline:
		s = &c.Strategies.Baseline
	default:
		return fmt.Errorf("unknown strategy %q (must be %s, %s or %s)", name, routing.NameOptimized, routing.NameDowngrade, routing.NameBaseline)
	}

	if o.Label != "" {
		s.Label = o.Label
	}
	switch {
	case len(o.Routes) > 0:
		s.Routes = routing.Routing(o.Routes).Clone()
	case o.Model != "":
		s.Routes = routing.Uniform(c.Distribution.TaskTypes(), o.Model)
	}
	if o.HeartbeatModel != "" {
		s.HeartbeatModel = o.HeartbeatModel
	}
	if o.Warning != nil {
		s.Warning = *o.Warning
	}
	if o.Caveat != nil {
		s.Caveat = *o.Caveat
	}
	return nil
}

// CostTable builds the model cost table
func (c *Config) CostTable() (*pricing.CostTable, error) {
	return pricing.NewTable(c.Models)
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if c.Tasks < 0 {
		return fmt.Errorf("tasks cannot be negative (got %d)", c.Tasks)
	}

	if err := c.Heartbeat.Validate(); err != nil {
		return fmt.Errorf("invalid heartbeat configuration: %w", err)
	}

	table, err := c.CostTable()
	if err != nil {
		return fmt.Errorf("invalid models: %w", err)
	}

	if c.Distribution.Len() == 0 {
		return fmt.Errorf("distribution must name at least one task type")
	}

	for _, s := range c.Strategies.All() {
		if err := s.Covers(c.Distribution); err != nil {
			return err
		}
		if err := s.CheckModels(table); err != nil {
			return err
		}
	}

	return nil
}
