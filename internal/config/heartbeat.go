package config

import (
	"clawcost/internal/estimator"
)

// HeartbeatConfig contains settings for the heartbeat overlay
type HeartbeatConfig struct {
	IntervalMinutes int    `yaml:"interval_minutes"`
	Schedule        string `yaml:"schedule,omitempty"` // cron expression; overrides IntervalMinutes when set
}

// Validate validates the heartbeat configuration
func (h HeartbeatConfig) Validate() error {
	return h.Cadence().Validate()
}

// Cadence returns the heartbeat cadence used for pricing
func (h HeartbeatConfig) Cadence() estimator.Cadence {
	return estimator.Cadence{
		IntervalMinutes: float64(h.IntervalMinutes),
		Schedule:        h.Schedule,
	}
}

// DefaultHeartbeatConfig returns default heartbeat configuration
func DefaultHeartbeatConfig() HeartbeatConfig {
	return HeartbeatConfig{
		IntervalMinutes: 30,
	}
}
