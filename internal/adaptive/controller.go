// Package adaptive implements §4.5: the four-tier, EMA-and-hysteresis
// screencast quality controller. Structured like the donor's
// AdaptiveBitrate (internal/remote/desktop/adaptive.go) — mutex-guarded
// state, slog on every adjustment, a callback invoked outside the lock
// — but replaces its RTT/packet-loss AIMD bitrate math with the spec's
// fixed tier table driven by screencast frame latency.
package adaptive

import (
	"sync"

	"github.com/termweb/termweb/internal/logging"
)

var log = logging.L("adaptive")

// Tier is one row of the table in §4.5.
type Tier struct {
	Quality       int
	EveryNthFrame int
	Role          string
}

// Tiers is the illustrative table from §4.5, lowest to highest quality.
var Tiers = [...]Tier{
	{Quality: 25, EveryNthFrame: 3, Role: "fallback"},
	{Quality: 35, EveryNthFrame: 2, Role: "normal"},
	{Quality: 50, EveryNthFrame: 2, Role: "good"},
	{Quality: 70, EveryNthFrame: 1, Role: "excellent"},
}

const (
	alpha               = 0.2
	latencyClampMaxMs   = 2000.0
	rawLatencyClampMs   = 5000.0
	upgradeThreshold    = 50.0
	downgradeThreshold  = 150.0
	hysteresisFrames    = 10
)

// Controller maintains AdaptiveState per §3: current tier, EMA latency,
// and frames-at-tier.
type Controller struct {
	mu sync.Mutex

	tier         int
	emaMs        float64
	framesAtTier int

	onTierChange func(Tier)
}

// New constructs a Controller starting at tier 1 ("normal"), matching
// the donor's practice of not starting at the floor tier.
func New(onTierChange func(Tier)) *Controller {
	return &Controller{tier: 1, onTierChange: onTierChange}
}

// Tier returns the current tier index and its table row.
func (c *Controller) Tier() (int, Tier) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tier, Tiers[c.tier]
}

// EMAMs returns the current smoothed latency.
func (c *Controller) EMAMs() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.emaMs
}

// Update feeds one frame's latency sample (browser timestamp to now,
// plus local write latency) through the EMA/hysteresis state machine
// per §4.5's per-frame update algorithm.
func (c *Controller) Update(browserTimestampToNowMs, writeLatencyMs float64) {
	latency := clamp(browserTimestampToNowMs, 0, rawLatencyClampMs) + writeLatencyMs

	c.mu.Lock()

	c.emaMs = (1-alpha)*c.emaMs + alpha*clamp(latency, 0, latencyClampMaxMs)
	c.framesAtTier++

	var newTier int
	changed := false
	switch {
	case c.tier < len(Tiers)-1 && c.emaMs < upgradeThreshold && c.framesAtTier >= hysteresisFrames:
		newTier = c.tier + 1
		changed = true
	case c.tier > 0 && c.emaMs > downgradeThreshold && c.framesAtTier >= hysteresisFrames:
		newTier = c.tier - 1
		changed = true
	}

	if !changed {
		c.mu.Unlock()
		return
	}

	prevTier := c.tier
	c.tier = newTier
	c.framesAtTier = 0
	emaMs := c.emaMs
	cb := c.onTierChange
	c.mu.Unlock()

	log.Info("adaptive tier change", "from", prevTier, "to", newTier, "emaMs", emaMs)

	if cb != nil {
		cb(Tiers[newTier])
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
