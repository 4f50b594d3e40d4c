package config

import "fmt"

// Result separates fatal misconfiguration (which aborts startup) from
// warnings (which are logged and clamped to a safe value), matching
// the tiered validation split used throughout the donor agent.
type Result struct {
	Fatals   []error
	Warnings []error
}

// HasFatals reports whether any fatal errors were recorded.
func (r Result) HasFatals() bool {
	return len(r.Fatals) > 0
}

// ValidateTiered checks the config and clamps recoverable values in
// place. Only internally inconsistent or startup-blocking values (a
// zero-or-negative frame slot budget, an invalid shared-memory mode
// combination) are fatal; everything else is a clamped warning.
func (c *Config) ValidateTiered() Result {
	var r Result

	if c.FrameSlotCount <= 0 {
		r.Fatals = append(r.Fatals, fmt.Errorf("frame_slot_count must be positive, got %d", c.FrameSlotCount))
	}
	if c.FrameSlotSize <= 0 {
		r.Fatals = append(r.Fatals, fmt.Errorf("frame_slot_size must be positive, got %d", c.FrameSlotSize))
	}
	if c.DisableSHM && c.ForceSHM {
		r.Fatals = append(r.Fatals, fmt.Errorf("disable_shm and force_shm are mutually exclusive"))
	}
	if c.RemoteDebuggingPort <= 0 || c.RemoteDebuggingPort > 65535 {
		r.Fatals = append(r.Fatals, fmt.Errorf("remote_debugging_port %d is out of range", c.RemoteDebuggingPort))
	}

	if c.InitialScale <= 0 {
		r.Warnings = append(r.Warnings, fmt.Errorf("initial_scale %f is non-positive, clamping to 1.0", c.InitialScale))
		c.InitialScale = 1.0
	} else if c.InitialScale > 4.0 {
		r.Warnings = append(r.Warnings, fmt.Errorf("initial_scale %f exceeds maximum 4.0, clamping", c.InitialScale))
		c.InitialScale = 4.0
	}

	if c.EventBusHz <= 0 {
		r.Warnings = append(r.Warnings, fmt.Errorf("event_bus_hz %d is non-positive, clamping to 30", c.EventBusHz))
		c.EventBusHz = 30
	} else if c.EventBusHz > 240 {
		r.Warnings = append(r.Warnings, fmt.Errorf("event_bus_hz %d exceeds maximum 240, clamping", c.EventBusHz))
		c.EventBusHz = 240
	}

	if c.NaturalScroll != -1 && c.NaturalScroll != 0 && c.NaturalScroll != 1 {
		r.Warnings = append(r.Warnings, fmt.Errorf("natural_scroll %d is invalid, resetting to auto", c.NaturalScroll))
		c.NaturalScroll = -1
	}

	if c.LogLevel != "" && !validLogLevels[c.LogLevel] {
		r.Warnings = append(r.Warnings, fmt.Errorf("log_level %q is not valid (use debug, info, warn, error)", c.LogLevel))
		c.LogLevel = "info"
	}

	if c.LogFormat != "" && c.LogFormat != "text" && c.LogFormat != "json" {
		r.Warnings = append(r.Warnings, fmt.Errorf("log_format %q is not valid (use text or json)", c.LogFormat))
		c.LogFormat = "text"
	}

	return r
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}
