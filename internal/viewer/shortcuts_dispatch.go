package viewer

import (
	"context"
	"fmt"

	"github.com/termweb/termweb/internal/inputnorm"
)

// ForwardChord sends a modifier chord straight to the browser using
// its own clipboard handling, for the shortcuts (copy/cut/paste/
// select-all) that §4.8 says are "intercepted" only in the sense that
// termweb supplies the platform-correct modifier rather than treating
// them as viewer-local actions.
type ForwardChord func(ctx context.Context, base rune, mods inputnorm.Modifiers) error

// ShortcutContext bundles the narrow capabilities a shortcut handler
// needs, per §9's guidance: a handler sees only what it uses, never a
// god-object viewer.
type ShortcutContext struct {
	Nav     NavigationSink
	Render  RenderSink
	Tabs    TabStore
	Mode    *ModeState
	Forward ForwardChord

	// CurrentURL supplies the URL used to seed the prompt buffer when
	// entering UrlPrompt mode.
	CurrentURL func() string
	// HintTargets supplies the current interactive-element positions
	// when entering HintMode.
	HintTargets func() []HintTarget
	// Quit is invoked for the quit shortcut, which is always enabled
	// regardless of configuration (§6).
	Quit func()
	// Disabled reports whether a shortcut has been turned off by
	// configuration, in which case it falls through to the browser as
	// a regular keystroke instead of being claimed.
	Disabled func(inputnorm.Shortcut) bool
}

// chordBase maps each forwarding shortcut (copy/cut/paste/select-all)
// to the conventional base key sent with the platform modifier.
var chordBase = map[inputnorm.Shortcut]rune{
	inputnorm.ShortcutCopy:      'c',
	inputnorm.ShortcutCut:       'x',
	inputnorm.ShortcutPaste:     'v',
	inputnorm.ShortcutSelectAll: 'a',
}

// Dispatch runs the action bound to a matched shortcut. It returns
// (claimed=false, nil) when the shortcut is disabled by configuration,
// signaling the caller to forward the original keystroke to the
// browser unclaimed instead.
func (c ShortcutContext) Dispatch(ctx context.Context, sc inputnorm.Shortcut, ev inputnorm.KeyEvent) (claimed bool, err error) {
	if c.Quit != nil && sc == inputnorm.ShortcutQuit {
		c.Quit()
		return true, nil
	}
	if c.Disabled != nil && c.Disabled(sc) {
		return false, nil
	}

	switch sc {
	case inputnorm.ShortcutFocusAddress:
		if c.Mode.Mode() == Normal {
			url := ""
			if c.CurrentURL != nil {
				url = c.CurrentURL()
			}
			c.Mode.EnterUrlPrompt(url)
			c.Render.MarkUIDirty()
		}
		return true, nil

	case inputnorm.ShortcutReload:
		return true, c.Nav.Reload(ctx)
	case inputnorm.ShortcutBack:
		return true, c.Nav.Back(ctx)
	case inputnorm.ShortcutForward:
		return true, c.Nav.Forward(ctx)
	case inputnorm.ShortcutStop:
		return true, c.Nav.Stop(ctx)

	case inputnorm.ShortcutTabPicker:
		tabs := c.Tabs.Tabs()
		if len(tabs) == 0 {
			return true, nil
		}
		next := (c.Tabs.ActiveIndex() + 1) % len(tabs)
		c.Tabs.SwitchTo(next)
		c.Render.MarkUIDirty()
		return true, nil

	case inputnorm.ShortcutHintMode:
		if c.Mode.Mode() != Normal {
			return true, nil
		}
		var targets []HintTarget
		if c.HintTargets != nil {
			targets = c.HintTargets()
		}
		c.Mode.EnterHintMode(targets)
		c.Render.SetHintMode(true)
		return true, nil

	case inputnorm.ShortcutScrollUp, inputnorm.ShortcutScrollDown:
		// Scroll nudge is dispatched as a synthetic wheel event by the
		// caller (it needs the current mouse position, which this
		// narrow context does not carry); signal claimed only.
		return true, nil

	case inputnorm.ShortcutCopy, inputnorm.ShortcutCut, inputnorm.ShortcutPaste, inputnorm.ShortcutSelectAll:
		base, ok := chordBase[sc]
		if !ok || c.Forward == nil {
			return true, nil
		}
		return true, c.Forward(ctx, base, ev.Mods)

	case inputnorm.ShortcutDevConsole:
		// No CDP-exposed equivalent to the browser's own devtools
		// toggle from within the inspected page; claimed as a no-op
		// rather than leaking the chord to the page.
		return true, nil

	default:
		return false, fmt.Errorf("unhandled shortcut %q", sc)
	}
}
