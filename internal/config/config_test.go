package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	writeFile(t, path, "ignore_contract: true\nqueue_capacity_hint: 64\ndefault_clock: synced\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.IgnoreContract || cfg.QueueCapacityHint != 64 || cfg.DefaultClock != ClockSynced {
		t.Errorf("Load() = %+v, unexpected fields", cfg)
	}
}

func TestLoadDefaultsWhenFieldsOmitted(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	writeFile(t, path, "queue_capacity_hint: 10\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultClock != ClockSystem {
		t.Errorf("DefaultClock = %q, want system default", cfg.DefaultClock)
	}
	if cfg.IgnoreContract {
		t.Error("IgnoreContract should default to false")
	}
}

func TestLoadRejectsUnknownClockKind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	writeFile(t, path, "default_clock: quantum\n")

	if _, err := Load(path); err == nil {
		t.Error("expected an error for an unknown default_clock kind")
	}
}

func TestLoadRejectsNegativeQueueHint(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	writeFile(t, path, "queue_capacity_hint: -1\n")

	if _, err := Load(path); err == nil {
		t.Error("expected an error for a negative queue_capacity_hint")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/engine.yaml"); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestOptionsWiresIgnoreContractAndQueueHint(t *testing.T) {
	cfg := EngineConfig{IgnoreContract: true, QueueCapacityHint: 32, DefaultClock: ClockSystem}
	opts := cfg.Options()
	if len(opts) != 3 {
		t.Fatalf("Options() = %d opts, want 3 (ignore contract + queue hint + system clock)", len(opts))
	}
}

func TestOptionsOmitsQueueHintWhenZero(t *testing.T) {
	cfg := DefaultEngineConfig()
	opts := cfg.Options()
	if len(opts) != 1 {
		t.Fatalf("Options() = %d opts, want 1 (system clock only)", len(opts))
	}
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writeFile: %v", err)
	}
}
