package inputnorm

import "unicode/utf8"

// legacyFinal maps the final byte of a legacy "ESC [ <final>" sequence
// (no tilde, no parameters) to a named key.
var legacyFinal = map[byte]NamedKey{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
}

// ssoFinal maps the final byte of an "ESC O <final>" SS3 sequence
// (xterm's application-keypad encoding for F1-F4 and arrows).
var ssoFinal = map[byte]NamedKey{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
	'P': KeyF1,
	'Q': KeyF2,
	'R': KeyF3,
	'S': KeyF4,
}

// tildeCode maps the numeric parameter of an "ESC [ <n> ~" sequence to
// a named key.
var tildeCode = map[int]NamedKey{
	1:  KeyHome,
	2:  KeyInsert,
	3:  KeyDelete,
	4:  KeyEnd,
	5:  KeyPageUp,
	6:  KeyPageDown,
	11: KeyF1,
	12: KeyF2,
	13: KeyF3,
	14: KeyF4,
	15: KeyF5,
	17: KeyF6,
	18: KeyF7,
	19: KeyF8,
	20: KeyF9,
	21: KeyF10,
	23: KeyF11,
	24: KeyF12,
}

// csiUNamed maps CSI-u codepoints that represent non-character keys.
var csiUNamed = map[int]NamedKey{
	13:  KeyEnter,
	9:   KeyTab,
	27:  KeyEscape,
	127: KeyBackspace,
}

// modsFromParam decodes xterm's "1 + bitmask" modifier parameter
// convention shared by legacy CSI sequences and CSI-u.
func modsFromParam(p int) Modifiers {
	if p <= 1 {
		return Modifiers{}
	}
	b := p - 1
	return Modifiers{
		Shift: b&1 != 0,
		Alt:   b&2 != 0,
		Ctrl:  b&4 != 0,
		Meta:  b&8 != 0,
	}
}

func keyResult(ev KeyEvent, consumed int) decoded {
	return decoded{Key: &ev, Consumed: consumed}
}

// decodeKey attempts to decode a single key event from the head of buf.
// It returns NeedsMore=true when buf looks like the prefix of a longer
// escape sequence and the caller should wait for more bytes (or, after
// an idle timeout, call decodeBareEscape).
func decodeKey(buf []byte) decoded {
	if len(buf) == 0 {
		return decoded{}
	}

	switch buf[0] {
	case 0x1b:
		return decodeEscape(buf)
	case '\r', '\n':
		return keyResult(KeyEvent{Named: KeyEnter}, 1)
	case '\t':
		return keyResult(KeyEvent{Named: KeyTab}, 1)
	case 0x7f, 0x08:
		return keyResult(KeyEvent{Named: KeyBackspace}, 1)
	}

	// C0 control characters (Ctrl+letter): 0x01-0x1a map to Ctrl+a..Ctrl+z.
	if buf[0] >= 0x01 && buf[0] <= 0x1a {
		return keyResult(KeyEvent{Char: rune('a' + buf[0] - 1), Mods: Modifiers{Ctrl: true}}, 1)
	}

	if buf[0] < 0x80 {
		return keyResult(KeyEvent{Char: rune(buf[0])}, 1)
	}

	r, size := utf8.DecodeRune(buf)
	if r == utf8.RuneError && size <= 1 {
		if len(buf) < utf8.UTFMax {
			return decoded{NeedsMore: true}
		}
		return decoded{Consumed: 1} // undecodable byte, drop it
	}
	return keyResult(KeyEvent{Char: r}, size)
}

// decodeEscape decodes sequences starting with ESC (0x1b).
func decodeEscape(buf []byte) decoded {
	if len(buf) == 1 {
		return decoded{NeedsMore: true}
	}

	switch buf[1] {
	case '[':
		if len(buf) >= 3 && buf[2] == '<' {
			return decoded{} // mouse report, handled by the caller's mouse path
		}
		return decodeCSI(buf)
	case 'O':
		return decodeSS3(buf)
	default:
		inner := decodeKey(buf[1:])
		if inner.NeedsMore {
			return decoded{NeedsMore: true}
		}
		if inner.Key == nil {
			return decoded{Consumed: 1}
		}
		ev := *inner.Key
		ev.Mods.Alt = true
		return keyResult(ev, 1+inner.Consumed)
	}
}

func decodeSS3(buf []byte) decoded {
	if len(buf) < 3 {
		return decoded{NeedsMore: true}
	}
	if key, ok := ssoFinal[buf[2]]; ok {
		return keyResult(KeyEvent{Named: key}, 3)
	}
	return decoded{Consumed: 3}
}

// decodeCSI decodes "ESC [ ..." other than SGR mouse reports: legacy
// arrow/home/end sequences, tilde-terminated function keys, and CSI-u
// key sequences.
func decodeCSI(buf []byte) decoded {
	if len(buf) < 3 {
		return decoded{NeedsMore: true}
	}

	i := 2
	for i < len(buf) {
		c := buf[i]
		if c == '~' || c == 'u' || (c >= 'A' && c <= 'Z') {
			break
		}
		if !(c == ';' || (c >= '0' && c <= '9')) {
			return decoded{Consumed: 2}
		}
		i++
	}
	if i >= len(buf) {
		return decoded{NeedsMore: true}
	}

	final := buf[i]
	params := parseParams(buf[2:i])
	consumed := i + 1

	switch {
	case final == '~':
		code := 0
		if len(params) > 0 {
			code = params[0]
		}
		mods := Modifiers{}
		if len(params) > 1 {
			mods = modsFromParam(params[1])
		}
		if key, ok := tildeCode[code]; ok {
			return keyResult(KeyEvent{Named: key, Mods: mods}, consumed)
		}
		return decoded{Consumed: consumed}

	case final == 'u':
		if len(params) == 0 {
			return decoded{Consumed: consumed}
		}
		mods := Modifiers{}
		if len(params) > 1 {
			mods = modsFromParam(params[1])
		}
		if named, ok := csiUNamed[params[0]]; ok {
			return keyResult(KeyEvent{Named: named, Mods: mods}, consumed)
		}
		return keyResult(KeyEvent{Char: rune(params[0]), Mods: mods}, consumed)

	case final >= 'A' && final <= 'Z':
		mods := Modifiers{}
		if len(params) > 1 {
			mods = modsFromParam(params[1])
		}
		if key, ok := legacyFinal[final]; ok {
			return keyResult(KeyEvent{Named: key, Mods: mods}, consumed)
		}
		return decoded{Consumed: consumed}
	}

	return decoded{Consumed: consumed}
}

// parseParams splits a ';'-delimited CSI parameter string into ints,
// defaulting empty fields to 0.
func parseParams(b []byte) []int {
	if len(b) == 0 {
		return nil
	}
	var out []int
	start := 0
	for i := 0; i <= len(b); i++ {
		if i == len(b) || b[i] == ';' {
			if i == start {
				out = append(out, 0)
			} else {
				out = append(out, atoiBytes(b[start:i]))
			}
			start = i + 1
		}
	}
	return out
}

func atoiBytes(b []byte) int {
	n := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return n
		}
		n = n*10 + int(c-'0')
	}
	return n
}

// decodeBareEscape interprets a lone, unterminated ESC byte as the
// Escape key. The caller invokes this after an input idle timeout so
// the start of a real CSI sequence is never misread mid-stream.
func decodeBareEscape() KeyEvent {
	return KeyEvent{Named: KeyEscape}
}
