package viewer

import (
	"testing"

	"github.com/termweb/termweb/internal/wire"
)

func TestTabListUpsertCreatesNewTab(t *testing.T) {
	l := NewTabList(false)
	l.UpsertFromTarget(wire.TargetInfo{TargetID: "t1", Type: "page", URL: "https://a.example"})
	if len(l.Tabs()) != 1 {
		t.Fatalf("expected 1 tab, got %d", len(l.Tabs()))
	}
	if l.ActiveIndex() != 0 {
		t.Fatalf("expected first tab to become active, got %d", l.ActiveIndex())
	}
}

func TestTabListUpsertIgnoresNonPageTargets(t *testing.T) {
	l := NewTabList(false)
	l.UpsertFromTarget(wire.TargetInfo{TargetID: "sw1", Type: "service_worker", URL: "x"})
	if len(l.Tabs()) != 0 {
		t.Fatalf("expected non-page target ignored, got %d tabs", len(l.Tabs()))
	}
}

func TestTabListUpsertUpdatesExistingTab(t *testing.T) {
	l := NewTabList(false)
	l.UpsertFromTarget(wire.TargetInfo{TargetID: "t1", Type: "page", URL: "https://a.example", Title: "A"})
	l.UpsertFromTarget(wire.TargetInfo{TargetID: "t1", Type: "page", URL: "https://a.example/2", Title: "A2"})
	tabs := l.Tabs()
	if len(tabs) != 1 {
		t.Fatalf("expected update in place, got %d tabs", len(tabs))
	}
	if tabs[0].URL != "https://a.example/2" || tabs[0].Title != "A2" {
		t.Fatalf("expected tab fields updated, got %+v", tabs[0])
	}
}

func TestTabListSingleTabModeNavigatesInPlace(t *testing.T) {
	l := NewTabList(true)
	l.UpsertFromTarget(wire.TargetInfo{TargetID: "t1", Type: "page", URL: "https://a.example"})
	l.UpsertFromTarget(wire.TargetInfo{TargetID: "t2", Type: "page", URL: "https://b.example"})
	tabs := l.Tabs()
	if len(tabs) != 1 {
		t.Fatalf("expected single tab mode to collapse to 1 tab, got %d", len(tabs))
	}
	if tabs[0].TargetID != "t2" || tabs[0].URL != "https://b.example" {
		t.Fatalf("expected in-place navigation to the new target, got %+v", tabs[0])
	}
}

func TestTabListRemoveTargetAdjustsActiveIndex(t *testing.T) {
	l := NewTabList(false)
	l.UpsertFromTarget(wire.TargetInfo{TargetID: "t0", Type: "page", URL: "a"})
	l.UpsertFromTarget(wire.TargetInfo{TargetID: "t1", Type: "page", URL: "b"})
	l.SwitchTo(1)
	l.RemoveTarget("t1")
	if l.ActiveIndex() != 0 {
		t.Fatalf("expected active index to fall back to 0, got %d", l.ActiveIndex())
	}
	if len(l.Tabs()) != 1 {
		t.Fatalf("expected 1 remaining tab, got %d", len(l.Tabs()))
	}
}

func TestTabListRemoveAllTabsLeavesNoActiveIndex(t *testing.T) {
	l := NewTabList(false)
	l.UpsertFromTarget(wire.TargetInfo{TargetID: "t0", Type: "page", URL: "a"})
	l.RemoveTarget("t0")
	if l.ActiveIndex() != -1 {
		t.Fatalf("expected no active tab, got %d", l.ActiveIndex())
	}
	if _, ok := l.ActiveTab(); ok {
		t.Fatalf("expected ActiveTab to report false")
	}
}

func TestTabListSwitchToRejectsOutOfRange(t *testing.T) {
	l := NewTabList(false)
	l.UpsertFromTarget(wire.TargetInfo{TargetID: "t0", Type: "page", URL: "a"})
	if l.SwitchTo(5) {
		t.Fatalf("expected out-of-range switch to fail")
	}
	if l.ActiveIndex() != 0 {
		t.Fatalf("expected active index unchanged, got %d", l.ActiveIndex())
	}
}

func TestTabIsBlank(t *testing.T) {
	cases := []struct {
		url  string
		want bool
	}{
		{"", true},
		{"about:blank", true},
		{"https://example.com", false},
	}
	for _, c := range cases {
		if got := (Tab{URL: c.url}).IsBlank(); got != c.want {
			t.Fatalf("IsBlank(%q) = %v, want %v", c.url, got, c.want)
		}
	}
}
