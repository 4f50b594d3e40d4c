// Package framepool implements §4.4: a single-producer/multi-consumer
// ring of fixed-size slots with an atomic refcount per slot and a
// strictly monotonic generation counter, optionally backed by shared
// memory for cross-process zero-copy consumption. Grounded in idiom on
// the donor's internal/remote/desktop/pool.go sync.Pool buffer pooling
// and stream_metrics.go counter shape; the ring+refcount+generation
// shape itself is new, as §4.4 names it precisely and no donor file
// has this exact structure.
package framepool

import (
	"sync/atomic"
	"time"

	"github.com/termweb/termweb/internal/logging"
)

var log = logging.L("framepool")

// DefaultSlotCount and DefaultSlotSize match §4.4's "typical N=8, slot
// size 2 MiB".
const (
	DefaultSlotCount = 8
	DefaultSlotSize  = 2 * 1024 * 1024
)

// slot is one fixed-size ring entry. All fields that are visible to a
// concurrent consumer are atomics; data is mutated only by the single
// producer and only while the slot's refcount is zero, so the producer
// does not need to synchronize the copy itself, only the metadata that
// announces it (generation, published last, per the Go memory model's
// sequential consistency among atomic operations).
type slot struct {
	data []byte

	length      atomic.Int32
	sessionID   atomic.Int64
	deviceW     atomic.Int32
	deviceH     atomic.Int32
	generation  atomic.Uint64
	browserTsMs atomic.Int64
	recvTsMs    atomic.Int64
	refcount    atomic.Int32
}

// Pool is the in-process ring described by §4.4.
type Pool struct {
	slots []*slot
	n     uint64

	writeIdx   atomic.Uint64
	genCounter atomic.Uint64
	dropped    atomic.Uint64
}

// New allocates a pool of slotCount slots of slotSize bytes each.
func New(slotCount, slotSize int) *Pool {
	if slotCount <= 0 {
		slotCount = DefaultSlotCount
	}
	if slotSize <= 0 {
		slotSize = DefaultSlotSize
	}
	p := &Pool{
		slots: make([]*slot, slotCount),
		n:     uint64(slotCount),
	}
	for i := range p.slots {
		p.slots[i] = &slot{data: make([]byte, slotSize)}
	}
	return p
}

// Dropped returns the number of frames dropped because no slot freed
// up within the retry budget.
func (p *Pool) Dropped() uint64 { return p.dropped.Load() }

// Produce implements §4.4's producer contract. It is the only producer
// (the RPC reader on screencast events) and is not safe to call
// concurrently from more than one goroutine.
func (p *Pool) Produce(data []byte, sessionID int, deviceW, deviceH int, browserTsMs int64) (generation uint64, ok bool) {
	for attempt := uint64(0); attempt < p.n; attempt++ {
		idx := p.writeIdx.Load() % p.n
		s := p.slots[idx]
		if s.refcount.Load() != 0 {
			p.writeIdx.Add(1)
			continue
		}

		payload := data
		if len(payload) > len(s.data) {
			payload = payload[:len(s.data)]
		}
		copy(s.data, payload)

		s.length.Store(int32(len(payload)))
		s.sessionID.Store(int64(sessionID))
		s.deviceW.Store(int32(deviceW))
		s.deviceH.Store(int32(deviceH))
		s.browserTsMs.Store(browserTsMs)
		s.recvTsMs.Store(time.Now().UnixMilli())

		gen := p.genCounter.Add(1)
		s.generation.Store(gen) // publish last

		p.writeIdx.Add(1)
		return gen, true
	}

	p.dropped.Add(1)
	log.Warn("frame pool full, dropping frame", "slots", p.n)
	return 0, false
}

// Handle is a live view into a FrameSlot; dropping it (calling Release)
// returns the slot's refcount and makes it eligible for reuse.
type Handle struct {
	s *slot
}

// Data returns the slot's payload bytes, valid until Release is called.
func (h *Handle) Data() []byte { return h.s.data[:h.s.length.Load()] }

func (h *Handle) SessionID() int            { return int(h.s.sessionID.Load()) }
func (h *Handle) DeviceWidth() int          { return int(h.s.deviceW.Load()) }
func (h *Handle) DeviceHeight() int         { return int(h.s.deviceH.Load()) }
func (h *Handle) Generation() uint64        { return h.s.generation.Load() }
func (h *Handle) BrowserTimestampMs() int64 { return h.s.browserTsMs.Load() }
func (h *Handle) ReceiveTimestampMs() int64 { return h.s.recvTsMs.Load() }

// Release drops the refcount, returning the slot to the pool once it
// reaches zero.
func (h *Handle) Release() {
	h.s.refcount.Add(-1)
}

// AcquireLatest implements §4.4's consumer contract: a non-blocking
// poll of the most recently published slot.
func (p *Pool) AcquireLatest() (*Handle, bool) {
	idx := (p.writeIdx.Load() + p.n - 1) % p.n
	s := p.slots[idx]
	if s.length.Load() == 0 || s.generation.Load() == 0 {
		return nil, false
	}
	s.refcount.Add(1)
	return &Handle{s: s}, true
}

// GenerationTracker records a consumer's last_rendered_generation and
// counts how many frames were skipped between renders, per §4.4 and
// the frame-skip testable property of §8.
type GenerationTracker struct {
	last    uint64
	skipped uint64
}

// Observe reports whether gen is newer than the last observed
// generation, and accumulates the skipped-frame count for any gap.
func (t *GenerationTracker) Observe(gen uint64) (isNew bool, skippedThisStep uint64) {
	if gen <= t.last {
		return false, 0
	}
	if t.last != 0 {
		skippedThisStep = gen - t.last - 1
	}
	t.skipped += skippedThisStep
	t.last = gen
	return true, skippedThisStep
}

// FramesSkipped returns the cumulative frames-skipped diagnostic.
func (t *GenerationTracker) FramesSkipped() uint64 { return t.skipped }

// LastRenderedGeneration returns the most recent generation observed.
func (t *GenerationTracker) LastRenderedGeneration() uint64 { return t.last }
