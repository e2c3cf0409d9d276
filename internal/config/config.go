// Package config loads ambient engine settings — not statechart models,
// which remain out of scope — from YAML via gopkg.in/yaml.v3, the
// teacher's own and only third-party dependency.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/comalice/statechartx/internal/core"
)

// EngineConfig carries the settings an Interpreter/Driver is constructed
// with, as an alternative to wiring core.Option values by hand in Go source.
type EngineConfig struct {
	IgnoreContract    bool   `yaml:"ignore_contract"`
	QueueCapacityHint int    `yaml:"queue_capacity_hint"`
	DefaultClock      string `yaml:"default_clock"`
}

// Default clock kinds accepted by DefaultClock.
const (
	ClockSystem = "system"
	ClockSynced = "synced"
)

// DefaultEngineConfig returns the configuration NewInterpreter uses when no
// EngineConfig is loaded: contracts enforced, no queue capacity hint, a wall
// clock.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{DefaultClock: ClockSystem}
}

// Load reads and validates an EngineConfig from the YAML file at path.
func Load(path string) (EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return EngineConfig{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := DefaultEngineConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return EngineConfig{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return EngineConfig{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Options translates cfg into core.Option values for core.NewInterpreter.
// DefaultClock "synced" is not wired here — a SyncedClock only makes sense
// slaved to a host via Interpreter.BindProperty, which already sets one up
// automatically; "synced" in a standalone EngineConfig is accepted by
// Validate (property-monitor configs may share the same file shape) but has
// no standalone core.Option equivalent.
func (c EngineConfig) Options() []core.Option {
	var opts []core.Option
	if c.IgnoreContract {
		opts = append(opts, core.WithIgnoreContract())
	}
	if c.QueueCapacityHint > 0 {
		opts = append(opts, core.WithQueueCapacityHint(c.QueueCapacityHint))
	}
	if c.DefaultClock == ClockSystem || c.DefaultClock == "" {
		opts = append(opts, core.WithClock(core.SystemClock{}))
	}
	return opts
}

// Validate reports whether cfg's fields hold legal values.
func (c EngineConfig) Validate() error {
	switch c.DefaultClock {
	case "", ClockSystem, ClockSynced:
	default:
		return fmt.Errorf("default_clock: unknown kind %q (want %q or %q)", c.DefaultClock, ClockSystem, ClockSynced)
	}
	if c.QueueCapacityHint < 0 {
		return fmt.Errorf("queue_capacity_hint: must be >= 0, got %d", c.QueueCapacityHint)
	}
	return nil
}
