package inputnorm

// CellConverter converts a cell-space coordinate pair to pixel space,
// supplied by the coordinate mapper so the decoder can satisfy the
// "coordinates normalized to pixels post-decode" invariant regardless
// of whether the terminal is reporting SGR-1006 (cell) or SGR-1016
// (pixel) mouse coordinates.
type CellConverter func(col, row int) (px, py float64)

const (
	sgrButtonMask = 0x03
	sgrWheelBit   = 0x40
	sgrMotionBit  = 0x20
	sgrModShift   = 0x04
	sgrModMeta    = 0x08
	sgrModCtrl    = 0x10
)

// decodeMouseSGR decodes an "ESC [ < Cb ; Cx ; Cy M|m" report. Modes
// 1006 and 1016 share this wire format; 1016 reports pixel coordinates
// directly, so pixelMode short-circuits the cell-to-pixel conversion.
func decodeMouseSGR(buf []byte, pixelMode bool, toPixel CellConverter) decoded {
	if len(buf) < 4 || buf[0] != 0x1b || buf[1] != '[' || buf[2] != '<' {
		return decoded{}
	}
	i := 3
	for i < len(buf) && buf[i] != 'M' && buf[i] != 'm' {
		i++
	}
	if i >= len(buf) {
		return decoded{NeedsMore: true}
	}
	pressed := buf[i] == 'M'
	params := parseParams(buf[3:i])
	consumed := i + 1
	if len(params) < 3 {
		return decoded{Consumed: consumed}
	}

	cb, cx, cy := params[0], params[1], params[2]
	mods := Modifiers{
		Shift: cb&sgrModShift != 0,
		Meta:  cb&sgrModMeta != 0,
		Ctrl:  cb&sgrModCtrl != 0,
	}

	x, y := float64(cx), float64(cy)
	if !pixelMode && toPixel != nil {
		x, y = toPixel(cx, cy)
	}

	ev := MouseEvent{X: x, Y: y, Mods: mods}

	switch {
	case cb&sgrWheelBit != 0:
		ev.Kind = MouseWheel
		if cb&sgrButtonMask == 1 {
			ev.DeltaY = 1
		} else {
			ev.DeltaY = -1
		}

	case cb&sgrMotionBit != 0:
		ev.Button = sgrButton(cb)
		if ev.Button == ButtonNone {
			ev.Kind = MouseMove
		} else {
			ev.Kind = MouseDrag
		}

	default:
		ev.Button = sgrButton(cb)
		if pressed {
			ev.Kind = MousePress
		} else {
			ev.Kind = MouseRelease
		}
	}

	return decoded{Mouse: &ev, Consumed: consumed}
}

func sgrButton(cb int) MouseButton {
	switch cb & sgrButtonMask {
	case 0:
		return ButtonLeft
	case 1:
		return ButtonMiddle
	case 2:
		return ButtonRight
	default:
		return ButtonNone
	}
}
