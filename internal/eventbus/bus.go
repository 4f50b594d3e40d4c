// Package eventbus implements §4.9's mouse-event coalescing: move and
// drag positions collapse to their latest value, wheel deltas
// accumulate, and a 30 Hz tick flushes both as at most one dispatch
// call each, while press/release bypass coalescing entirely. Tick-loop
// shape grounded on
// internal/remote/desktop/ws_stream.go's ticker-driven captureLoop;
// the non-blocking, drop-rather-than-block subscriber discipline is
// grounded on
// other_examples/800cca53_nugget-thane-ai-agent__internal-events-bus.go.go's
// Bus, adapted here from pub/sub fanout to a single coalescing
// dispatch sink since the viewer has exactly one browser session to
// forward mouse state to.
package eventbus

import (
	"log/slog"
	"sync"
	"time"

	"github.com/termweb/termweb/internal/inputnorm"
)

var log = slog.Default().With("component", "eventbus")

const tickInterval = time.Second / 30

// Dispatch sends one mouse event to the browser session. Implementations
// are expected to be non-blocking relative to the RPC reader task.
type Dispatch func(inputnorm.MouseEvent) error

// Saturated reports whether the outbound RPC queue is under
// back-pressure; when true, the tick skips coalesced (move/drag/wheel)
// deliveries for that cycle.
type Saturated func() bool

// Bus coalesces mouse move/drag/wheel events at 30 Hz while passing
// press/release through immediately and in order.
type Bus struct {
	dispatch  Dispatch
	saturated Saturated

	mu        sync.Mutex
	hasMove   bool
	move      inputnorm.MouseEvent
	hasWheel  bool
	wheel     inputnorm.MouseEvent

	stop chan struct{}
	wg   sync.WaitGroup
}

// New constructs a Bus. saturated may be nil, meaning back-pressure is
// never signaled.
func New(dispatch Dispatch, saturated Saturated) *Bus {
	if saturated == nil {
		saturated = func() bool { return false }
	}
	return &Bus{dispatch: dispatch, saturated: saturated, stop: make(chan struct{})}
}

// Start launches the 30 Hz tick goroutine.
func (b *Bus) Start() {
	b.wg.Add(1)
	go b.run()
}

// Stop halts the tick goroutine and waits for it to exit. Any state
// buffered at the moment of Stop is discarded, matching shutdown
// draining the rest of the viewer's in-flight state.
func (b *Bus) Stop() {
	close(b.stop)
	b.wg.Wait()
}

// Record ingests one mouse event. Press and release are dispatched
// synchronously, in arrival order, and are never coalesced. Move, drag,
// and wheel events are buffered for the next tick.
func (b *Bus) Record(ev inputnorm.MouseEvent) {
	switch ev.Kind {
	case inputnorm.MousePress, inputnorm.MouseRelease:
		if err := b.dispatch(ev); err != nil {
			log.Warn("immediate mouse dispatch failed", "kind", ev.Kind, "error", err)
		}

	case inputnorm.MouseMove, inputnorm.MouseDrag:
		b.mu.Lock()
		b.move = ev
		b.hasMove = true
		b.mu.Unlock()

	case inputnorm.MouseWheel:
		b.mu.Lock()
		if !b.hasWheel {
			b.wheel = ev
			b.hasWheel = true
		} else {
			b.wheel.DeltaX += ev.DeltaX
			b.wheel.DeltaY += ev.DeltaY
			b.wheel.X = ev.X
			b.wheel.Y = ev.Y
			b.wheel.Mods = ev.Mods
		}
		b.mu.Unlock()
	}
}

func (b *Bus) run() {
	defer b.wg.Done()
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-b.stop:
			return
		case <-ticker.C:
			b.tick()
		}
	}
}

func (b *Bus) tick() {
	b.mu.Lock()
	move, hasMove := b.move, b.hasMove
	wheel, hasWheel := b.wheel, b.hasWheel
	b.hasMove = false
	b.hasWheel = false
	b.mu.Unlock()

	if b.saturated() {
		// Press/release already went out synchronously in Record; only
		// the coalesced deliveries are skipped under back-pressure.
		return
	}

	if hasMove {
		if err := b.dispatch(move); err != nil {
			log.Warn("coalesced move dispatch failed", "error", err)
		}
	}
	if hasWheel {
		if err := b.dispatch(wheel); err != nil {
			log.Warn("coalesced wheel dispatch failed", "error", err)
		}
	}
}
