package viewer

import "unicode"

// PromptBuffer is the §3 PromptBuffer entity: it exists only while the
// viewer is in UrlPrompt mode. Cursor and selection are rune indices,
// not byte offsets, so editing never splits a UTF-8 sequence; the
// selection range is inclusive-exclusive like a Go slice. Grounded on
// the stdlib `unicode`/rune-slice idiom (justified in DESIGN.md: no
// pack library does prompt-buffer editing, and this is exactly the
// kind of bounded text-buffer arithmetic the standard library already
// covers cleanly).
type PromptBuffer struct {
	runes     []rune
	cursor    int
	selAnchor int
	hasSel    bool
}

// NewPromptBuffer seeds the buffer with initial text, cursor at the end.
func NewPromptBuffer(initial string) *PromptBuffer {
	r := []rune(initial)
	return &PromptBuffer{runes: r, cursor: len(r)}
}

func (p *PromptBuffer) String() string { return string(p.runes) }

// Cursor returns the current cursor rune index.
func (p *PromptBuffer) Cursor() int { return p.cursor }

// Selection returns the normalized [start, end) selection range and
// whether a selection is active.
func (p *PromptBuffer) Selection() (start, end int, ok bool) {
	if !p.hasSel || p.selAnchor == p.cursor {
		return 0, 0, false
	}
	if p.selAnchor < p.cursor {
		return p.selAnchor, p.cursor, true
	}
	return p.cursor, p.selAnchor, true
}

// Selected returns the currently selected text, or "" if none.
func (p *PromptBuffer) Selected() string {
	start, end, ok := p.Selection()
	if !ok {
		return ""
	}
	return string(p.runes[start:end])
}

func (p *PromptBuffer) clearSelection() { p.hasSel = false }

func (p *PromptBuffer) startOrExtendSelection(extend bool) {
	if extend && !p.hasSel {
		p.selAnchor = p.cursor
		p.hasSel = true
	} else if !extend {
		p.hasSel = false
	}
}

// deleteSelectionIfAny removes the selected run, if any, and reports
// whether it did so.
func (p *PromptBuffer) deleteSelectionIfAny() bool {
	start, end, ok := p.Selection()
	if !ok {
		return false
	}
	p.runes = append(p.runes[:start], p.runes[end:]...)
	p.cursor = start
	p.clearSelection()
	return true
}

// Insert inserts text at the cursor, replacing any selection. It does
// not filter the text; the engine strips non-printable runes from
// paste payloads before calling it.
func (p *PromptBuffer) Insert(text string) {
	p.deleteSelectionIfAny()
	ins := []rune(text)
	if len(ins) == 0 {
		return
	}
	tail := append([]rune{}, p.runes[p.cursor:]...)
	p.runes = append(p.runes[:p.cursor], append(ins, tail...)...)
	p.cursor += len(ins)
}

// Backspace deletes the rune before the cursor, or the selection if
// one is active.
func (p *PromptBuffer) Backspace() {
	if p.deleteSelectionIfAny() {
		return
	}
	if p.cursor == 0 {
		return
	}
	p.runes = append(p.runes[:p.cursor-1], p.runes[p.cursor:]...)
	p.cursor--
}

// Delete deletes the rune at the cursor (forward delete), or the
// selection if one is active.
func (p *PromptBuffer) Delete() {
	if p.deleteSelectionIfAny() {
		return
	}
	if p.cursor >= len(p.runes) {
		return
	}
	p.runes = append(p.runes[:p.cursor], p.runes[p.cursor+1:]...)
}

// MoveLeft/MoveRight move the cursor by one rune; extend controls
// whether a selection grows (shift held) or collapses.
func (p *PromptBuffer) MoveLeft(extend bool) {
	p.startOrExtendSelection(extend)
	if p.cursor > 0 {
		p.cursor--
	}
}

func (p *PromptBuffer) MoveRight(extend bool) {
	p.startOrExtendSelection(extend)
	if p.cursor < len(p.runes) {
		p.cursor++
	}
}

func (p *PromptBuffer) Home(extend bool) {
	p.startOrExtendSelection(extend)
	p.cursor = 0
}

func (p *PromptBuffer) End(extend bool) {
	p.startOrExtendSelection(extend)
	p.cursor = len(p.runes)
}

// WordLeft/WordRight move by a word boundary, skipping leading
// whitespace in the direction of travel first.
func (p *PromptBuffer) WordLeft(extend bool) {
	p.startOrExtendSelection(extend)
	i := p.cursor
	for i > 0 && unicode.IsSpace(p.runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(p.runes[i-1]) {
		i--
	}
	p.cursor = i
}

func (p *PromptBuffer) WordRight(extend bool) {
	p.startOrExtendSelection(extend)
	i := p.cursor
	n := len(p.runes)
	for i < n && unicode.IsSpace(p.runes[i]) {
		i++
	}
	for i < n && !unicode.IsSpace(p.runes[i]) {
		i++
	}
	p.cursor = i
}

// SelectAll selects the entire buffer.
func (p *PromptBuffer) SelectAll() {
	p.selAnchor = 0
	p.cursor = len(p.runes)
	p.hasSel = len(p.runes) > 0
}
