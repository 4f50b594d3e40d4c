package viewer

import "time"

// hintAlphabet generates short, typeable labels, longer labels only
// once the single-character space is exhausted (Vimium-style).
const hintAlphabet = "asdfghjklqwertyuiopzxcvbnm"

// HintTarget is one clickable element surfaced by the browser for hint
// mode, at its browser-viewport coordinates.
type HintTarget struct {
	X, Y float64
}

// Hint pairs a typed label with the target it selects.
type Hint struct {
	Label  string
	Target HintTarget
}

// HintTimeout is the per-keystroke auto-select window named by §4.7:
// the caller should reset a timer to this duration on entering hint
// mode and on every accepted keystroke, firing HintState.Timeout on
// expiry.
const HintTimeout = 1200 * time.Millisecond

// HintState tracks an in-progress hint-mode selection: the full label
// set, what has been typed so far, and the set still matching that
// prefix.
type HintState struct {
	all   []Hint
	typed string
}

// NewHintState assigns labels to targets and starts hint mode.
func NewHintState(targets []HintTarget) *HintState {
	labels := generateLabels(len(targets))
	hints := make([]Hint, len(targets))
	for i, t := range targets {
		hints[i] = Hint{Label: labels[i], Target: t}
	}
	return &HintState{all: hints}
}

// generateLabels produces n unique labels, preferring 1-character
// labels and falling back to 2-character combinations once the
// alphabet is exhausted.
func generateLabels(n int) []string {
	out := make([]string, 0, n)
	for _, c := range hintAlphabet {
		if len(out) >= n {
			return out
		}
		out = append(out, string(c))
	}
	for _, c1 := range hintAlphabet {
		for _, c2 := range hintAlphabet {
			if len(out) >= n {
				return out
			}
			out = append(out, string(c1)+string(c2))
		}
	}
	return out
}

// Active returns the hints still matching the typed prefix, in label
// order.
func (h *HintState) Active() []Hint {
	if h.typed == "" {
		return h.all
	}
	var out []Hint
	for _, hint := range h.all {
		if len(hint.Label) >= len(h.typed) && hint.Label[:len(h.typed)] == h.typed {
			out = append(out, hint)
		}
	}
	return out
}

// Type narrows the active set by one character. It returns the unique
// matching target if exactly one hint now matches, or nil to continue
// narrowing. A character that matches nothing is ignored (no state
// change) rather than treated as an error.
func (h *HintState) Type(c rune) *HintTarget {
	candidate := h.typed + string(c)
	var matched []Hint
	for _, hint := range h.all {
		if len(hint.Label) >= len(candidate) && hint.Label[:len(candidate)] == candidate {
			matched = append(matched, hint)
		}
	}
	if len(matched) == 0 {
		return nil
	}
	h.typed = candidate
	if len(matched) == 1 && matched[0].Label == candidate {
		return &matched[0].Target
	}
	return nil
}

// Timeout returns the lowest-ordered remaining hint's target, per
// §4.7's per-input timeout auto-select, or nil if no hints remain.
func (h *HintState) Timeout() *HintTarget {
	active := h.Active()
	if len(active) == 0 {
		return nil
	}
	return &active[0].Target
}
