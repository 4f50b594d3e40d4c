package browser

import "context"

// Wire modifier bits per §4.8.
const (
	ModAlt   = 1
	ModCtrl  = 2
	ModMeta  = 4
	ModShift = 8
)

// DispatchKeyDown issues Input.dispatchKeyEvent type "keyDown".
func (s *Session) DispatchKeyDown(ctx context.Context, key, code string, windowsVirtualKeyCode int, modifiers int) error {
	return s.dispatchKey(ctx, "keyDown", key, code, windowsVirtualKeyCode, modifiers, "")
}

// DispatchKeyUp issues Input.dispatchKeyEvent type "keyUp".
func (s *Session) DispatchKeyUp(ctx context.Context, key, code string, windowsVirtualKeyCode int, modifiers int) error {
	return s.dispatchKey(ctx, "keyUp", key, code, windowsVirtualKeyCode, modifiers, "")
}

// DispatchChar issues Input.dispatchKeyEvent type "char" carrying the
// printable text, completing the keyDown+char+keyUp sequence §4.3
// requires for character keys.
func (s *Session) DispatchChar(ctx context.Context, text string, modifiers int) error {
	return s.dispatchKey(ctx, "char", "", "", 0, modifiers, text)
}

func (s *Session) dispatchKey(ctx context.Context, typ, key, code string, vkCode, modifiers int, text string) error {
	params := map[string]any{
		"type":                  typ,
		"modifiers":             modifiers,
		"key":                   key,
		"code":                  code,
		"windowsVirtualKeyCode": vkCode,
	}
	if text != "" {
		params["text"] = text
	}
	_, err := s.call(ctx, "Input.dispatchKeyEvent", params)
	return err
}

// InsertText issues Input.insertText for pure text insertion (paste,
// IME commit) rather than a synthetic keyDown/char/keyUp sequence.
func (s *Session) InsertText(ctx context.Context, text string) error {
	_, err := s.call(ctx, "Input.insertText", map[string]string{"text": text})
	return err
}

// MouseButton names the CDP button identifiers.
type MouseButton string

const (
	ButtonNone   MouseButton = "none"
	ButtonLeft   MouseButton = "left"
	ButtonMiddle MouseButton = "middle"
	ButtonRight  MouseButton = "right"
)

// DispatchMousePress/DispatchMouseRelease/DispatchMouseMove issue
// Input.dispatchMouseEvent with the corresponding type. Press and
// release are always dispatched individually, never coalesced, per
// §4.9.
func (s *Session) DispatchMousePress(ctx context.Context, x, y float64, button MouseButton, clickCount, modifiers int) error {
	return s.dispatchMouse(ctx, "mousePressed", x, y, button, clickCount, modifiers, 0, 0)
}

func (s *Session) DispatchMouseRelease(ctx context.Context, x, y float64, button MouseButton, clickCount, modifiers int) error {
	return s.dispatchMouse(ctx, "mouseReleased", x, y, button, clickCount, modifiers, 0, 0)
}

func (s *Session) DispatchMouseMove(ctx context.Context, x, y float64, modifiers int) error {
	return s.dispatchMouse(ctx, "mouseMoved", x, y, ButtonNone, 0, modifiers, 0, 0)
}

// DispatchMouseWheel issues a wheel event with pixel deltas at the
// given coordinates, per §4.3's "wheel dispatched at current mouse
// coordinates" rule for non-positional scroll.
func (s *Session) DispatchMouseWheel(ctx context.Context, x, y, deltaX, deltaY float64, modifiers int) error {
	return s.dispatchMouse(ctx, "mouseWheel", x, y, ButtonNone, 0, modifiers, deltaX, deltaY)
}

func (s *Session) dispatchMouse(ctx context.Context, typ string, x, y float64, button MouseButton, clickCount, modifiers int, deltaX, deltaY float64) error {
	params := map[string]any{
		"type":       typ,
		"x":          x,
		"y":          y,
		"button":     string(button),
		"clickCount": clickCount,
		"modifiers":  modifiers,
	}
	if typ == "mouseWheel" {
		params["deltaX"] = deltaX
		params["deltaY"] = deltaY
	}
	_, err := s.call(ctx, "Input.dispatchMouseEvent", params)
	return err
}
