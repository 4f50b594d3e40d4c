package framepool

import "testing"

func TestProduceAcquireLatestRoundTrip(t *testing.T) {
	p := New(4, 64)

	gen, ok := p.Produce([]byte("frame-1"), 1, 800, 600, 1000)
	if !ok {
		t.Fatal("expected produce to succeed")
	}
	if gen != 1 {
		t.Fatalf("expected generation 1, got %d", gen)
	}

	h, ok := p.AcquireLatest()
	if !ok {
		t.Fatal("expected a latest frame")
	}
	defer h.Release()

	if string(h.Data()) != "frame-1" {
		t.Fatalf("unexpected data: %s", h.Data())
	}
	if h.Generation() != 1 {
		t.Fatalf("expected generation 1, got %d", h.Generation())
	}
	if h.DeviceWidth() != 800 || h.DeviceHeight() != 600 {
		t.Fatalf("unexpected device dims: %dx%d", h.DeviceWidth(), h.DeviceHeight())
	}
}

func TestAcquireLatestBeforeAnyProduceReturnsFalse(t *testing.T) {
	p := New(4, 64)
	if _, ok := p.AcquireLatest(); ok {
		t.Fatal("expected no frame before any produce")
	}
}

func TestGenerationStrictlyMonotonic(t *testing.T) {
	p := New(2, 64)
	var last uint64
	for i := 0; i < 10; i++ {
		gen, ok := p.Produce([]byte("x"), 1, 1, 1, 0)
		if !ok {
			t.Fatalf("produce %d failed", i)
		}
		if gen <= last {
			t.Fatalf("generation not strictly increasing: %d after %d", gen, last)
		}
		last = gen
	}
}

func TestProduceDropsWhenAllSlotsHeld(t *testing.T) {
	p := New(2, 64)

	var handles []*Handle
	for i := 0; i < 2; i++ {
		if _, ok := p.Produce([]byte("x"), 1, 1, 1, 0); !ok {
			t.Fatalf("produce %d should have succeeded", i)
		}
		h, ok := p.AcquireLatest()
		if !ok {
			t.Fatalf("acquire %d should have succeeded", i)
		}
		handles = append(handles, h)
	}

	if _, ok := p.Produce([]byte("x"), 1, 1, 1, 0); ok {
		t.Fatal("expected produce to fail when all slots held")
	}
	if p.Dropped() != 1 {
		t.Fatalf("expected dropped counter 1, got %d", p.Dropped())
	}

	for _, h := range handles {
		h.Release()
	}
	if _, ok := p.Produce([]byte("x"), 1, 1, 1, 0); !ok {
		t.Fatal("expected produce to succeed once a slot is released")
	}
}

func TestGenerationTrackerCountsSkippedFrames(t *testing.T) {
	var tr GenerationTracker

	isNew, skipped := tr.Observe(3)
	if !isNew || skipped != 0 {
		t.Fatalf("first observation: isNew=%v skipped=%d", isNew, skipped)
	}

	isNew, skipped = tr.Observe(7)
	if !isNew || skipped != 3 {
		t.Fatalf("expected 3 skipped frames between gen 3 and 7, got %d (isNew=%v)", skipped, isNew)
	}
	if tr.FramesSkipped() != 3 {
		t.Fatalf("expected cumulative 3 skipped, got %d", tr.FramesSkipped())
	}

	isNew, _ = tr.Observe(5)
	if isNew {
		t.Fatal("stale generation should not be reported as new")
	}
}
