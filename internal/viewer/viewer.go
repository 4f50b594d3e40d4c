// Package viewer implements §4.7: the mode state machine, tab list,
// navigation state, and the narrow per-handler capability interfaces
// (NavigationSink, RenderSink, TabStore) that replace the donor
// source's duck-typed "viewer: anytype" parameter per §9. Viewer is
// the concrete implementor passed to handlers through whichever one or
// two of those interfaces they actually need.
package viewer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/termweb/termweb/internal/browser"
	"github.com/termweb/termweb/internal/coordmap"
	"github.com/termweb/termweb/internal/inputnorm"
	"github.com/termweb/termweb/internal/logging"
	"github.com/termweb/termweb/internal/renderer"
	"github.com/termweb/termweb/internal/wire"
)

var log = logging.L("viewer")

// loadTimeout is the defensive upper bound on is_loading when
// Page.loadEventFired never arrives, per the resolved Open Question in
// DESIGN.md (the event is authoritative; this only guards against it
// never showing up).
const loadTimeout = 3 * time.Second

// Viewer ties together one browser session's mode state, tab list,
// navigation state, renderer, and download inset state. It implements
// NavigationSink, RenderSink, and TabStore so handlers can depend on
// the narrow interface they need instead of *Viewer directly.
type Viewer struct {
	session  *browser.Session
	renderer *renderer.Renderer
	tabs     *TabList
	mode     *ModeState

	nav      wire.NavState
	download wire.DownloadState

	loadTimer *time.Timer
}

// New constructs a Viewer over an already-attached browser session and
// renderer. singleTab mirrors the SingleTabMode config flag.
func New(session *browser.Session, r *renderer.Renderer, singleTab bool) *Viewer {
	return &Viewer{
		session:  session,
		renderer: r,
		tabs:     NewTabList(singleTab),
		mode:     NewModeState(),
	}
}

// Mode exposes the mode state machine to callers outside this package
// (the input-dispatch loop needs it to route keystrokes).
func (v *Viewer) Mode() *ModeState { return v.mode }

// NavState returns the current navigation state snapshot.
func (v *Viewer) NavState() wire.NavState { return v.nav }

// DownloadState returns the current download inset state.
func (v *Viewer) DownloadState() wire.DownloadState { return v.download }

// --- NavigationSink ---

func (v *Viewer) Navigate(ctx context.Context, url string) error {
	if err := v.session.Navigate(ctx, url); err != nil {
		return err
	}
	v.beginLoading()
	return nil
}

func (v *Viewer) Reload(ctx context.Context) error {
	if err := v.session.Reload(ctx, false); err != nil {
		return err
	}
	v.beginLoading()
	return nil
}

func (v *Viewer) Stop(ctx context.Context) error {
	v.finishLoading()
	return v.session.Stop(ctx)
}

func (v *Viewer) Back(ctx context.Context) error {
	if err := v.session.Back(ctx); err != nil {
		return err
	}
	v.beginLoading()
	return nil
}

func (v *Viewer) Forward(ctx context.Context) error {
	if err := v.session.Forward(ctx); err != nil {
		return err
	}
	v.beginLoading()
	return nil
}

func (v *Viewer) beginLoading() {
	v.nav.IsLoading = true
	v.nav.LoadingStartedAtMs = time.Now().UnixMilli()
	if v.loadTimer != nil {
		v.loadTimer.Stop()
	}
	v.loadTimer = time.AfterFunc(loadTimeout, func() {
		log.Warn("page load timed out waiting for Page.loadEventFired")
		v.finishLoading()
	})
}

// OnLoadEventFired folds Page.loadEventFired into navigation state; the
// event is authoritative over the defensive timer.
func (v *Viewer) OnLoadEventFired() { v.finishLoading() }

// SetHistoryState records whether back/forward navigation is currently
// possible, as last observed via Page.getNavigationHistory. CDP has no
// dedicated event for this, so the caller re-queries it around
// navigation completion.
func (v *Viewer) SetHistoryState(canGoBack, canGoForward bool) {
	v.nav.CanGoBack = canGoBack
	v.nav.CanGoForward = canGoForward
}

func (v *Viewer) finishLoading() {
	v.nav.IsLoading = false
	if v.loadTimer != nil {
		v.loadTimer.Stop()
		v.loadTimer = nil
	}
	v.renderer.MarkUIDirty()
}

// --- RenderSink ---

func (v *Viewer) RenderFrame(m coordmap.Mapper, frame renderer.FrameInput, cursor renderer.CursorInput, toolbar renderer.ToolbarState) error {
	return v.renderer.RenderFrame(m, frame, cursor, toolbar)
}

func (v *Viewer) MarkUIDirty()        { v.renderer.MarkUIDirty() }
func (v *Viewer) SetHintMode(on bool) { v.renderer.SetHintMode(on) }

// --- TabStore ---

func (v *Viewer) Tabs() []Tab            { return v.tabs.Tabs() }
func (v *Viewer) ActiveIndex() int       { return v.tabs.ActiveIndex() }
func (v *Viewer) ActiveTab() (Tab, bool) { return v.tabs.ActiveTab() }

// SwitchTo activates a different tab and marks the toolbar dirty so
// the new tab's URL shows. It does not clear the content image, arm
// the blank placeholder, reattach the CDP session, re-set the
// viewport, or restart the screencast.
func (v *Viewer) SwitchTo(index int) bool {
	if !v.tabs.SwitchTo(index) {
		return false
	}
	v.renderer.MarkUIDirty()
	return true
}

// --- Target event handling (Target.targetCreated / targetInfoChanged / targetDestroyed) ---

// HandleTargetEvent folds a raw CDP Target domain event into the tab
// list by method name.
func (v *Viewer) HandleTargetEvent(ev wire.Event) {
	switch ev.Method {
	case "Target.targetCreated":
		var p wire.TargetCreatedParams
		if err := json.Unmarshal(ev.Params, &p); err != nil {
			log.Warn("decode targetCreated", "err", err)
			return
		}
		v.tabs.UpsertFromTarget(p.TargetInfo)
		v.renderer.MarkUIDirty()
	case "Target.targetInfoChanged":
		var p wire.TargetInfoChangedParams
		if err := json.Unmarshal(ev.Params, &p); err != nil {
			log.Warn("decode targetInfoChanged", "err", err)
			return
		}
		v.tabs.UpsertFromTarget(p.TargetInfo)
		if t, ok := v.tabs.ActiveTab(); ok && t.TargetID == p.TargetInfo.TargetID {
			v.renderer.MarkUIDirty()
		}
	case "Target.targetDestroyed":
		var p wire.TargetDestroyedParams
		if err := json.Unmarshal(ev.Params, &p); err != nil {
			log.Warn("decode targetDestroyed", "err", err)
			return
		}
		v.tabs.RemoveTarget(p.TargetID)
		v.renderer.MarkUIDirty()
	}
}

// --- Downloads ---

// HandleDownloadEvent folds Browser.downloadWillBegin/downloadProgress
// into the small inset-bar state SPEC_FULL's supplemented feature
// calls for.
func (v *Viewer) HandleDownloadEvent(ev wire.Event) {
	switch ev.Method {
	case "Browser.downloadWillBegin":
		var p wire.DownloadWillBeginParams
		if err := json.Unmarshal(ev.Params, &p); err != nil {
			return
		}
		v.download = wire.DownloadState{Active: true, Filename: p.SuggestedFile}
	case "Browser.downloadProgress":
		var p wire.DownloadProgressParams
		if err := json.Unmarshal(ev.Params, &p); err != nil {
			return
		}
		v.download.TotalBytes = p.TotalBytes
		v.download.ReceivedBytes = p.ReceivedBytes
		v.download.Done = p.State != "inProgress"
		if v.download.Done {
			v.download.Active = false
		}
	}
}
