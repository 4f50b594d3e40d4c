package config

import "testing"

func TestValidateTieredZeroFrameSlotCountIsFatal(t *testing.T) {
	cfg := Default()
	cfg.FrameSlotCount = 0
	result := cfg.ValidateTiered()
	if !result.HasFatals() {
		t.Fatal("expected fatal error for zero frame_slot_count")
	}
}

func TestValidateTieredConflictingShmFlagsIsFatal(t *testing.T) {
	cfg := Default()
	cfg.DisableSHM = true
	cfg.ForceSHM = true
	result := cfg.ValidateTiered()
	if !result.HasFatals() {
		t.Fatal("expected fatal error for disable_shm+force_shm")
	}
}

func TestValidateTieredBadPortIsFatal(t *testing.T) {
	cfg := Default()
	cfg.RemoteDebuggingPort = 70000
	result := cfg.ValidateTiered()
	if !result.HasFatals() {
		t.Fatal("expected fatal error for out-of-range port")
	}
}

func TestValidateTieredInitialScaleClampingIsWarning(t *testing.T) {
	cfg := Default()
	cfg.InitialScale = -1
	result := cfg.ValidateTiered()
	if result.HasFatals() {
		t.Fatalf("expected only a warning, got fatals: %v", result.Fatals)
	}
	if len(result.Warnings) == 0 {
		t.Fatal("expected a warning")
	}
	if cfg.InitialScale != 1.0 {
		t.Fatalf("expected clamp to 1.0, got %f", cfg.InitialScale)
	}
}

func TestValidateTieredEventBusHzClamping(t *testing.T) {
	cfg := Default()
	cfg.EventBusHz = 10000
	result := cfg.ValidateTiered()
	if result.HasFatals() {
		t.Fatalf("expected only a warning, got fatals: %v", result.Fatals)
	}
	if cfg.EventBusHz != 240 {
		t.Fatalf("expected clamp to 240, got %d", cfg.EventBusHz)
	}
}

func TestValidateTieredBadNaturalScrollResetsToAuto(t *testing.T) {
	cfg := Default()
	cfg.NaturalScroll = 5
	cfg.ValidateTiered()
	if cfg.NaturalScroll != -1 {
		t.Fatalf("expected reset to -1 (auto), got %d", cfg.NaturalScroll)
	}
}

func TestValidateTieredUnknownLogLevelIsWarning(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "verbose"
	result := cfg.ValidateTiered()
	if result.HasFatals() {
		t.Fatal("unknown log level should not be fatal")
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected reset to info, got %q", cfg.LogLevel)
	}
}

func TestHasFatals(t *testing.T) {
	var r Result
	if r.HasFatals() {
		t.Fatal("HasFatals() on empty result should be false")
	}
	r.Fatals = append(r.Fatals, fatalTestError{})
	if !r.HasFatals() {
		t.Fatal("HasFatals() should be true with a fatal error")
	}
}

type fatalTestError struct{}

func (fatalTestError) Error() string { return "fatal" }

func TestShmMode(t *testing.T) {
	cfg := Default()
	if cfg.ShmMode() != ShmAuto {
		t.Fatal("expected auto mode by default")
	}
	cfg.DisableSHM = true
	if cfg.ShmMode() != ShmDisabled {
		t.Fatal("expected disabled mode")
	}
	cfg.DisableSHM = false
	cfg.ForceSHM = true
	if cfg.ShmMode() != ShmForced {
		t.Fatal("expected forced mode")
	}
}
