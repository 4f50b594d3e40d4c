package main

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/termweb/termweb/internal/adaptive"
	"github.com/termweb/termweb/internal/browser"
	"github.com/termweb/termweb/internal/config"
	"github.com/termweb/termweb/internal/coordmap"
	"github.com/termweb/termweb/internal/eventbus"
	"github.com/termweb/termweb/internal/framepool"
	"github.com/termweb/termweb/internal/inputnorm"
	"github.com/termweb/termweb/internal/renderer"
	"github.com/termweb/termweb/internal/rpc"
	"github.com/termweb/termweb/internal/termio"
	"github.com/termweb/termweb/internal/viewer"
	"github.com/termweb/termweb/internal/wire"
)

// dispatchTimeout bounds RPC calls made from event/input callbacks
// that don't have a caller-supplied context.
const dispatchTimeout = 2 * time.Second

// engine wires every domain package into the render/input loop §5
// describes. It is the terminal-client analogue of the donor's
// agentComponents: one struct owning everything runOpen starts, so
// shutdown has a single place to tear down from.
type engine struct {
	cfg *config.Config

	sess *browser.Session
	v    *viewer.Viewer

	term    *termio.Terminal
	decoder *inputnorm.Decoder
	bus     *eventbus.Bus

	pool     *framepool.Pool
	gen      framepool.GenerationTracker
	adaptive *adaptive.Controller

	mu        sync.Mutex
	mapper    coordmap.Mapper
	termSize  termio.Size
	lastFrame renderer.FrameInput
	lastMouse inputnorm.MouseEvent
	haveMouse bool
	tier      adaptive.Tier

	quit     chan struct{}
	quitOnce sync.Once

	shortcuts viewer.ShortcutContext
}

func newEngine(cfg *config.Config, sess *browser.Session, v *viewer.Viewer) *engine {
	e := &engine{
		cfg:  cfg,
		sess: sess,
		v:    v,
		pool: framepool.New(cfg.FrameSlotCount, cfg.FrameSlotSize),
		quit: make(chan struct{}),
		tier: adaptive.Tiers[1],
	}
	e.adaptive = adaptive.New(e.onTierChange)
	e.shortcuts = viewer.ShortcutContext{
		Nav:         v,
		Render:      v,
		Tabs:        v,
		Mode:        v.Mode(),
		Forward:     e.forwardChord,
		CurrentURL:  e.firstCurrentURL,
		HintTargets: e.queryHintTargets,
		Quit:        e.requestQuit,
	}
	return e
}

// firstCurrentURL is CurrentURL for the §4.7 address-bar focus
// shortcut; it reuses the same active-tab lookup renderNow uses.
func (e *engine) firstCurrentURL() string {
	url, _ := e.currentURL()
	return url
}

// forwardChord sends a modifier chord to the browser as a synthetic
// keydown/char/keyup sequence, for the shortcuts that forward straight
// through to the page's own clipboard handling.
func (e *engine) forwardChord(ctx context.Context, base rune, mods inputnorm.Modifiers) error {
	return e.sess.DispatchNormalizedKey(ctx, inputnorm.KeyEvent{Char: base, Mods: mods})
}

// queryHintTargets asks the browser for the current interactive
// elements and translates them into the viewer's HintTarget type.
func (e *engine) queryHintTargets() []viewer.HintTarget {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()
	positions, err := e.sess.QueryHintTargets(ctx)
	if err != nil {
		log.Warn("query hint targets", "error", err)
		return nil
	}
	targets := make([]viewer.HintTarget, len(positions))
	for i, p := range positions {
		targets[i] = viewer.HintTarget{X: p.X, Y: p.Y}
	}
	return targets
}

// start finishes wiring the already-open terminal (set on e.term by
// the caller, which must open it before constructing the renderer
// that draws to it) and starts the mouse-coalescing bus. Must be
// called before run.
func (e *engine) start() error {
	term := e.term
	size, err := term.Size()
	if err != nil {
		size = termio.Size{Cols: 80, Rows: 24, WidthPx: 800, HeightPx: 600}
	}
	e.handleResize(size)

	e.decoder = inputnorm.NewDecoder(false, e.cellToPixel)
	e.bus = eventbus.New(e.dispatchMouse, nil)
	e.bus.Start()

	enableTerminalModes(term)
	return nil
}

// stop performs §7's orderly shutdown: it stops the mouse bus, deletes
// every image placement termweb drew, turns the mouse and paste modes
// back off, and restores the terminal's original mode.
func (e *engine) stop() {
	if e.bus != nil {
		e.bus.Stop()
	}
	if e.term != nil {
		// Kitty delete of all visible placements, freeing their data.
		e.term.Out().Write([]byte("\x1b_Ga=d,d=A,q=2\x1b\\"))
		disableTerminalModes(e.term)
		e.term.Close()
	}
}

func (e *engine) requestQuit() {
	e.quitOnce.Do(func() { close(e.quit) })
}

// run processes RPC events until ctx is cancelled or quit is
// requested by a shortcut.
func (e *engine) run(ctx context.Context, sub *rpc.Subscription) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-e.quit:
			return
		case ev, ok := <-sub.Events():
			if !ok {
				return
			}
			e.handleEvent(ctx, ev)
		}
	}
}

func (e *engine) handleEvent(ctx context.Context, ev wire.Event) {
	switch {
	case ev.Method == "Page.screencastFrame":
		e.handleScreencastFrame(ctx, ev)
	case ev.Method == "Page.loadEventFired":
		e.v.OnLoadEventFired()
		e.refreshHistoryState(ctx)
		e.renderNow()
	case strings.HasPrefix(ev.Method, "Target."):
		e.v.HandleTargetEvent(ev)
		e.renderNow()
	case strings.HasPrefix(ev.Method, "Browser.download"):
		e.v.HandleDownloadEvent(ev)
		e.renderNow()
	}
}

// refreshHistoryState re-queries Page.getNavigationHistory since CDP
// has no push event for back/forward availability changing.
func (e *engine) refreshHistoryState(ctx context.Context) {
	histCtx, cancel := context.WithTimeout(ctx, dispatchTimeout)
	defer cancel()
	canBack, canForward, err := e.sess.HistoryState(histCtx)
	if err != nil {
		log.Warn("query navigation history", "error", err)
		return
	}
	e.v.SetHistoryState(canBack, canForward)
}

func (e *engine) handleScreencastFrame(ctx context.Context, ev wire.Event) {
	var p wire.ScreencastFrameParams
	if err := json.Unmarshal(ev.Params, &p); err != nil {
		log.Warn("decode screencastFrame", "error", err)
		return
	}
	defer func() {
		ackCtx, cancel := context.WithTimeout(ctx, dispatchTimeout)
		defer cancel()
		if err := e.sess.AckScreencastFrame(ackCtx, p.SessionID); err != nil {
			log.Warn("ack screencast frame", "error", err)
		}
	}()

	data, err := browser.DecodeScreencastFrame(p)
	if err != nil {
		log.Warn("decode screencast payload", "error", err)
		return
	}
	browserTsMs := int64(p.Metadata.Timestamp * 1000)
	latencyMs := float64(time.Now().UnixMilli() - browserTsMs)

	gen, ok := e.pool.Produce(data, p.SessionID, p.Metadata.DeviceWidth, p.Metadata.DeviceHeight, browserTsMs)
	if !ok {
		return
	}
	if isNew, _ := e.gen.Observe(gen); !isNew {
		return
	}

	png, format, err := renderer.TranscodeJPEGToPNG(data)
	if err != nil {
		log.Warn("transcode screencast frame", "error", err)
		return
	}

	e.mu.Lock()
	e.lastFrame = renderer.FrameInput{
		Data:         png,
		Format:       format,
		DeviceWidth:  p.Metadata.DeviceWidth,
		DeviceHeight: p.Metadata.DeviceHeight,
	}
	e.recomputeMapperLocked()
	e.mu.Unlock()

	start := time.Now()
	e.renderNow()
	writeLatencyMs := time.Since(start).Milliseconds()

	e.adaptive.Update(latencyMs, float64(writeLatencyMs))
}

func (e *engine) onTierChange(t adaptive.Tier) {
	e.mu.Lock()
	e.tier = t
	e.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()
	if err := e.sess.StopScreencast(ctx); err != nil {
		log.Warn("stop screencast for tier change", "tier", t.Role, "error", err)
	}
	if _, err := e.sess.StartScreencast(ctx, browser.ScreencastParams{
		Format:        "jpeg",
		Quality:       t.Quality,
		MaxWidth:      e.viewportWidth(),
		MaxHeight:     e.viewportHeight(),
		EveryNthFrame: t.EveryNthFrame,
	}); err != nil {
		log.Warn("restart screencast at new tier", "tier", t.Role, "error", err)
	}
}

func (e *engine) viewportWidth() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.termSize.WidthPx
}

func (e *engine) viewportHeight() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.termSize.HeightPx
}

func (e *engine) handleResize(sz termio.Size) {
	e.mu.Lock()
	e.termSize = sz
	e.recomputeMapperLocked()
	e.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()
	if err := e.sess.SetViewport(ctx, wire.Viewport{
		Width:             sz.WidthPx,
		Height:            sz.HeightPx,
		DeviceScaleFactor: e.cfg.InitialScale,
		Mobile:            e.cfg.Mobile,
	}); err != nil {
		log.Warn("set viewport on resize", "error", err)
	}
	e.renderNow()
}

// recomputeMapperLocked rebuilds the coordinate mapper from the
// latest terminal size and frame extent. Caller holds e.mu.
func (e *engine) recomputeMapperLocked() {
	toolbarPx := 0
	if e.cfg.ToolbarEnabled && e.termSize.Rows > 0 {
		toolbarPx = e.termSize.HeightPx / e.termSize.Rows
	}
	e.mapper = coordmap.New(
		e.termSize.Cols, e.termSize.Rows,
		e.termSize.WidthPx, e.termSize.HeightPx,
		false,
		e.lastFrame.DeviceWidth, e.lastFrame.DeviceHeight,
		e.termSize.WidthPx, e.termSize.HeightPx,
		toolbarPx,
	)
}

func (e *engine) currentMapper() coordmap.Mapper {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mapper
}

func (e *engine) cellToPixel(col, row int) (float64, float64) {
	m := e.currentMapper()
	return m.CellToPixel(col, row)
}

// renderNow draws the latest known frame (or the blank placeholder if
// none has arrived yet) plus the current toolbar and cursor overlay.
// Called after every event that can change what's on screen, not just
// on new screencast frames, so mode/nav/tab changes show immediately.
func (e *engine) renderNow() {
	e.mu.Lock()
	m := e.mapper
	frame := e.lastFrame
	mouse, haveMouse := e.lastMouse, e.haveMouse
	e.mu.Unlock()

	if frame.DeviceWidth == 0 && frame.DeviceHeight == 0 {
		frame.Blank = true
	} else if url, ok := e.currentURL(); ok && (url == "" || url == "about:blank" || url == "about:newtab") {
		frame.Blank = true
	}

	cursor := renderer.CursorInput{}
	if haveMouse && e.v.Mode().Mode() == viewer.Normal {
		col, row := m.PixelToCell(mouse.X, mouse.Y)
		cellX, cellY := m.CellToPixel(col, row)
		cursor = renderer.CursorInput{
			Visible: true,
			Col:     col + 1,
			Row:     row + 2, // +1 for 1-based cells, +1 for the toolbar row
			SubXPx:  int(mouse.X - cellX),
			SubYPx:  int(mouse.Y - cellY),
		}
	}

	if err := e.v.RenderFrame(m, frame, cursor, e.buildToolbar()); err != nil {
		log.Warn("render frame", "error", err)
	}
}

func (e *engine) currentURL() (string, bool) {
	t, ok := e.v.ActiveTab()
	if !ok {
		return "", false
	}
	return t.URL, true
}

func (e *engine) buildToolbar() renderer.ToolbarState {
	nav := e.v.NavState()
	tabs := e.v.Tabs()

	url := ""
	if t, ok := e.v.ActiveTab(); ok {
		url = t.URL
	}
	cursorRune := len([]rune(url))
	mode := e.v.Mode().Mode()
	editing := mode == viewer.UrlPrompt
	if editing {
		if p := e.v.Mode().Prompt(); p != nil {
			url = p.String()
			cursorRune = p.Cursor()
		}
	}

	return renderer.ToolbarState{
		URL:          url,
		EditingURL:   editing,
		CursorRune:   cursorRune,
		CanGoBack:    nav.CanGoBack,
		CanGoForward: nav.CanGoForward,
		IsLoading:    nav.IsLoading,
		InHintMode:   mode == viewer.HintMode,
		ActiveTabIdx: e.v.ActiveIndex(),
		TabCount:     len(tabs),
	}
}

// dispatchMouse is the eventbus.Dispatch sink: it maps a terminal
// pixel coordinate to the browser's logical viewport and forwards the
// mouse event, dropping events outside the displayed content
// rectangle per §4.6.
func (e *engine) dispatchMouse(ev inputnorm.MouseEvent) error {
	e.mu.Lock()
	e.lastMouse = ev
	e.haveMouse = true
	e.mu.Unlock()

	m := e.currentMapper()
	bx, by, ok := m.TerminalToBrowser(ev.X, ev.Y)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	mods := ev.Mods.WireMask()
	switch ev.Kind {
	case inputnorm.MousePress:
		return e.sess.DispatchMousePress(ctx, bx, by, mouseButton(ev.Button), 1, mods)
	case inputnorm.MouseRelease:
		return e.sess.DispatchMouseRelease(ctx, bx, by, mouseButton(ev.Button), 1, mods)
	case inputnorm.MouseMove, inputnorm.MouseDrag:
		return e.sess.DispatchMouseMove(ctx, bx, by, mods)
	case inputnorm.MouseWheel:
		dx, dy := ev.DeltaX*inputnorm.ScrollStepPx, ev.DeltaY*inputnorm.ScrollStepPx
		if e.cfg.NaturalScroll == 1 {
			dx, dy = -dx, -dy
		}
		return e.sess.DispatchMouseWheel(ctx, bx, by, dx, dy, mods)
	}
	return nil
}

// handleInput is termio's onInput callback: it feeds raw terminal
// bytes to the decoder and routes the resulting events by the
// viewer's current mode, per §4.7/§4.8.
func (e *engine) handleInput(data []byte) {
	evs := e.decoder.Feed(data)

	for _, key := range evs.Keys {
		e.handleKey(key)
	}
	for _, m := range evs.Mice {
		e.bus.Record(m)
	}
	for _, p := range evs.Pastes {
		e.handlePaste(p)
	}

	e.renderNow()
}

func (e *engine) handleKey(ev inputnorm.KeyEvent) {
	switch e.v.Mode().Mode() {
	case viewer.UrlPrompt:
		e.handleUrlPromptKey(ev)
	case viewer.HintMode:
		e.handleHintKey(ev)
	default:
		e.handleNormalKey(ev)
	}
}

func (e *engine) handleNormalKey(ev inputnorm.KeyEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	if sc, ok := inputnorm.MatchShortcut(ev); ok {
		claimed, err := e.shortcuts.Dispatch(ctx, sc, ev)
		if err != nil {
			log.Warn("shortcut dispatch failed", "shortcut", sc, "error", err)
		}
		if claimed {
			if sc == inputnorm.ShortcutScrollUp || sc == inputnorm.ShortcutScrollDown {
				e.scrollAtMouse(ctx, sc)
			}
			return
		}
	}

	fwd := inputnorm.TranslateCtrlShiftP(ev)
	if err := e.sess.DispatchNormalizedKey(ctx, fwd); err != nil {
		log.Warn("forward key to browser", "error", err)
	}
}

// scrollAtMouse dispatches a synthetic wheel event at the last known
// mouse position for the mod+j/mod+k scroll shortcuts, which carry no
// coordinate of their own.
func (e *engine) scrollAtMouse(ctx context.Context, sc inputnorm.Shortcut) {
	e.mu.Lock()
	mouse, have := e.lastMouse, e.haveMouse
	e.mu.Unlock()
	if !have {
		return
	}
	m := e.currentMapper()
	bx, by, ok := m.TerminalToBrowser(mouse.X, mouse.Y)
	if !ok {
		return
	}
	dy := inputnorm.ScrollStepPx
	if sc == inputnorm.ShortcutScrollUp {
		dy = -dy
	}
	if err := e.sess.DispatchMouseWheel(ctx, bx, by, 0, dy, 0); err != nil {
		log.Warn("scroll shortcut dispatch", "error", err)
	}
}

func (e *engine) handleUrlPromptKey(ev inputnorm.KeyEvent) {
	p := e.v.Mode().Prompt()
	if p == nil {
		return
	}

	if !ev.IsNamed() {
		p.Insert(string(ev.Char))
		e.v.MarkUIDirty()
		return
	}

	switch ev.Named {
	case inputnorm.KeyEnter:
		url := e.v.Mode().ExitUrlPrompt()
		e.v.MarkUIDirty()
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		if err := e.v.Navigate(ctx, url); err != nil {
			log.Warn("navigate from address bar", "error", err)
		}
	case inputnorm.KeyEscape:
		e.v.Mode().ExitUrlPrompt()
		e.v.MarkUIDirty()
	case inputnorm.KeyBackspace:
		p.Backspace()
	case inputnorm.KeyDelete:
		p.Delete()
	case inputnorm.KeyLeft:
		p.MoveLeft(ev.Mods.Shift)
	case inputnorm.KeyRight:
		p.MoveRight(ev.Mods.Shift)
	case inputnorm.KeyHome:
		p.Home(ev.Mods.Shift)
	case inputnorm.KeyEnd:
		p.End(ev.Mods.Shift)
	default:
		return
	}
	e.v.MarkUIDirty()
}

func (e *engine) handleHintKey(ev inputnorm.KeyEvent) {
	if ev.IsNamed() && ev.Named == inputnorm.KeyEscape {
		e.v.Mode().ExitHintMode()
		e.v.SetHintMode(false)
		return
	}
	if ev.IsNamed() {
		return
	}
	hints := e.v.Mode().Hints()
	if hints == nil {
		return
	}
	target := hints.Type(ev.Char)
	if target == nil {
		return
	}
	e.selectHintTarget(*target)
}

// selectHintTarget clicks the hint's element and leaves hint mode,
// matching §4.7's "selecting a hint clicks the target" behavior.
func (e *engine) selectHintTarget(target viewer.HintTarget) {
	e.v.Mode().ExitHintMode()
	e.v.SetHintMode(false)

	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()
	if err := e.sess.DispatchMousePress(ctx, target.X, target.Y, browser.ButtonLeft, 1, 0); err != nil {
		log.Warn("hint click press", "error", err)
		return
	}
	if err := e.sess.DispatchMouseRelease(ctx, target.X, target.Y, browser.ButtonLeft, 1, 0); err != nil {
		log.Warn("hint click release", "error", err)
	}
}

func (e *engine) handlePaste(p inputnorm.PasteEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	switch e.v.Mode().Mode() {
	case viewer.UrlPrompt:
		if buf := e.v.Mode().Prompt(); buf != nil {
			printable := strings.Map(func(r rune) rune {
				if unicode.IsPrint(r) {
					return r
				}
				return -1
			}, p.Text)
			buf.Insert(printable)
			e.v.MarkUIDirty()
		}
	case viewer.HintMode:
		// Paste has no meaning while picking a hint; ignored.
	default:
		if err := e.sess.InsertText(ctx, p.Text); err != nil {
			log.Warn("paste into page", "error", err)
		}
	}
}

func mouseButton(b inputnorm.MouseButton) browser.MouseButton {
	switch b {
	case inputnorm.ButtonLeft:
		return browser.ButtonLeft
	case inputnorm.ButtonMiddle:
		return browser.ButtonMiddle
	case inputnorm.ButtonRight:
		return browser.ButtonRight
	default:
		return browser.ButtonNone
	}
}
