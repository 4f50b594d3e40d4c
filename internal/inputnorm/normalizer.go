package inputnorm

// Decoder turns a raw terminal input byte stream into normalized
// KeyEvent/MouseEvent/PasteEvent values. It is stateful across Feed
// calls so that sequences split across reads (a CSI sequence cut in
// half by a syscall read boundary, or a bracketed-paste block spanning
// many reads) decode correctly. Event-flow shape grounded on
// other_examples/87831b06_badu-term__mouse-dispatcher.go.go's
// dispatcher, adapted from a goroutine/channel fanout to a synchronous
// Feed/Flush API since termio's readLoop already owns the goroutine.
type Decoder struct {
	buf       []byte
	inPaste   bool
	pasteBuf  []byte
	pixelMode bool
	toPixel   CellConverter
}

// NewDecoder constructs a Decoder. toPixel converts SGR-1006 cell
// coordinates to pixels; it is unused when pixelMode is true (the
// terminal is assumed to report SGR-1016 pixel coordinates directly).
func NewDecoder(pixelMode bool, toPixel CellConverter) *Decoder {
	return &Decoder{pixelMode: pixelMode, toPixel: toPixel}
}

// Events is the batch of normalized events produced by one Feed call.
type Events struct {
	Keys   []KeyEvent
	Mice   []MouseEvent
	Pastes []PasteEvent
}

// Feed decodes as many complete events as possible out of data plus
// any bytes buffered from a previous call, and returns them.
func (d *Decoder) Feed(data []byte) Events {
	d.buf = append(d.buf, data...)

	var out Events
	for {
		if d.inPaste {
			if idx := findPasteEnd(d.buf); idx >= 0 {
				d.pasteBuf = append(d.pasteBuf, d.buf[:idx]...)
				out.Pastes = append(out.Pastes, PasteEvent{Text: string(d.pasteBuf)})
				d.pasteBuf = nil
				d.buf = d.buf[idx+len(pasteEnd):]
				d.inPaste = false
				continue
			}
			// Keep only a tail long enough to still match a split end
			// marker; move the rest into the accumulated paste text.
			keep := len(pasteEnd) - 1
			if len(d.buf) <= keep {
				break
			}
			d.pasteBuf = append(d.pasteBuf, d.buf[:len(d.buf)-keep]...)
			d.buf = d.buf[len(d.buf)-keep:]
			break
		}

		if len(d.buf) == 0 {
			break
		}

		if matchPasteStart(d.buf) {
			d.buf = d.buf[len(pasteStart):]
			d.inPaste = true
			continue
		}
		if isPasteStartPrefix(d.buf) {
			break
		}

		if len(d.buf) >= 3 && d.buf[0] == 0x1b && d.buf[1] == '[' && d.buf[2] == '<' {
			r := decodeMouseSGR(d.buf, d.pixelMode, d.toPixel)
			if r.NeedsMore {
				break
			}
			d.buf = d.buf[r.Consumed:]
			if r.Mouse != nil {
				out.Mice = append(out.Mice, *r.Mouse)
			}
			continue
		}

		r := decodeKey(d.buf)
		if r.NeedsMore {
			break
		}
		if r.Consumed == 0 {
			// Defensive: never spin without making progress.
			d.buf = d.buf[1:]
			continue
		}
		d.buf = d.buf[r.Consumed:]
		if r.Key != nil {
			ev := ResolveShortcutMod(*r.Key)
			out.Keys = append(out.Keys, ev)
		}
	}

	return out
}

// Flush interprets a pending lone ESC byte as the Escape key. Call
// this after an input idle timeout (the terminal will not send a bare
// ESC followed, a tick later, by '[' unless the user actually typed
// ESC then '['; a short timeout, e.g. 25ms, safely disambiguates).
func (d *Decoder) Flush() (KeyEvent, bool) {
	if d.inPaste || len(d.buf) != 1 || d.buf[0] != 0x1b {
		return KeyEvent{}, false
	}
	d.buf = nil
	return decodeBareEscape(), true
}

// Pending reports whether the decoder is holding buffered bytes that
// have not yet produced an event (mid-sequence or mid-paste).
func (d *Decoder) Pending() bool {
	return len(d.buf) > 0 || d.inPaste
}
