package viewer

import "github.com/termweb/termweb/internal/wire"

// Tab is the §3 Tab entity: a CDP target id paired with the title/URL
// the toolbar shows for it.
type Tab struct {
	TargetID string
	URL      string
	Title    string
}

// IsBlank reports whether this tab shows the blank-page placeholder
// rather than screencast content, per §4.7's tab-switch example.
func (t Tab) IsBlank() bool {
	return t.URL == "" || t.URL == "about:blank" || t.URL == "about:newtab"
}

// TabStore is the narrow capability interface a handler needs to read
// and mutate the tab list, per §9's guidance against a god-object
// viewer parameter: a handler that only needs tab bookkeeping never
// sees navigation or render methods.
type TabStore interface {
	Tabs() []Tab
	ActiveIndex() int
	ActiveTab() (Tab, bool)
	SwitchTo(index int) bool
}

// TabList owns the ordered tab set and active index. Mutation methods
// are driven by Target.targetCreated / targetInfoChanged /
// targetDestroyed events (UpsertFromTarget / RemoveTarget) and by user
// tab-switch actions (SwitchTo).
type TabList struct {
	tabs        []Tab
	activeIndex int
	singleTab   bool
}

// NewTabList starts empty. singleTab mirrors the config flag: when on,
// new top-level targets navigate the active tab in place instead of
// appending a new one.
func NewTabList(singleTab bool) *TabList {
	return &TabList{activeIndex: -1, singleTab: singleTab}
}

func (l *TabList) Tabs() []Tab { return append([]Tab(nil), l.tabs...) }

func (l *TabList) ActiveIndex() int { return l.activeIndex }

func (l *TabList) ActiveTab() (Tab, bool) {
	if l.activeIndex < 0 || l.activeIndex >= len(l.tabs) {
		return Tab{}, false
	}
	return l.tabs[l.activeIndex], true
}

// SwitchTo activates the tab at index, reporting whether it existed.
// Render-side effects of a switch are left to callers (Viewer.SwitchTo
// marks the toolbar dirty); TabList only tracks which index is active.
func (l *TabList) SwitchTo(index int) bool {
	if index < 0 || index >= len(l.tabs) {
		return false
	}
	l.activeIndex = index
	return true
}

func (l *TabList) indexOf(targetID string) int {
	for i, t := range l.tabs {
		if t.TargetID == targetID {
			return i
		}
	}
	return -1
}

// UpsertFromTarget folds a Target.targetCreated or targetInfoChanged
// event into the tab list. Non-page target types (service workers,
// iframes reported as separate targets, etc.) are ignored. In
// single-tab mode a second top-level target navigates the existing tab
// in place rather than creating a new one, per §4.7.
func (l *TabList) UpsertFromTarget(info wire.TargetInfo) {
	if info.Type != "" && info.Type != "page" {
		return
	}
	if i := l.indexOf(info.TargetID); i >= 0 {
		l.tabs[i].URL = info.URL
		l.tabs[i].Title = info.Title
		return
	}
	if l.singleTab && len(l.tabs) > 0 {
		l.tabs[0].TargetID = info.TargetID
		l.tabs[0].URL = info.URL
		l.tabs[0].Title = info.Title
		l.activeIndex = 0
		return
	}
	l.tabs = append(l.tabs, Tab{TargetID: info.TargetID, URL: info.URL, Title: info.Title})
	if l.activeIndex < 0 {
		l.activeIndex = 0
	}
}

// RemoveTarget folds a Target.targetDestroyed event into the tab list,
// adjusting the active index so it still points at a live tab when the
// removed tab was active: the tab that moves into its position, or the
// new last tab if the removed tab was last.
func (l *TabList) RemoveTarget(targetID string) {
	i := l.indexOf(targetID)
	if i < 0 {
		return
	}
	l.tabs = append(l.tabs[:i], l.tabs[i+1:]...)
	switch {
	case len(l.tabs) == 0:
		l.activeIndex = -1
	case l.activeIndex > i:
		l.activeIndex--
	case l.activeIndex == i:
		if l.activeIndex >= len(l.tabs) {
			l.activeIndex = len(l.tabs) - 1
		}
	}
}
