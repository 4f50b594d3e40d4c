package viewer

// Mode is the §3 ViewerMode entity: exactly one is active at a time.
type Mode int

const (
	Normal Mode = iota
	UrlPrompt
	HintMode
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case UrlPrompt:
		return "url_prompt"
	case HintMode:
		return "hint_mode"
	default:
		return "unknown"
	}
}

// ModeState holds the current mode plus the state each non-Normal mode
// needs while active, per the §4.7 diagram:
//
//	Normal ────focus-address───▶ UrlPrompt
//	  │ ◀───────Enter/Esc──────────┘
//	  └────enter-hint-mode───▶ HintMode
//	         ◀──Esc / unique match──┘
type ModeState struct {
	mode   Mode
	prompt *PromptBuffer
	hints  *HintState
}

// NewModeState starts in Normal mode.
func NewModeState() *ModeState {
	return &ModeState{mode: Normal}
}

func (m *ModeState) Mode() Mode { return m.mode }

// EnterUrlPrompt transitions Normal -> UrlPrompt, seeding the prompt
// buffer with the current URL (cursor at the end) per §4.7.
func (m *ModeState) EnterUrlPrompt(currentURL string) {
	if m.mode != Normal {
		return
	}
	m.mode = UrlPrompt
	m.prompt = NewPromptBuffer(currentURL)
}

// ExitUrlPrompt transitions UrlPrompt -> Normal, returning the final
// buffer contents (valid whether leaving via Enter or Esc; the caller
// decides whether to navigate).
func (m *ModeState) ExitUrlPrompt() string {
	if m.mode != UrlPrompt || m.prompt == nil {
		return ""
	}
	text := m.prompt.String()
	m.mode = Normal
	m.prompt = nil
	return text
}

// Prompt returns the active prompt buffer, or nil outside UrlPrompt
// mode.
func (m *ModeState) Prompt() *PromptBuffer {
	if m.mode != UrlPrompt {
		return nil
	}
	return m.prompt
}

// EnterHintMode transitions Normal -> HintMode over the given
// interactive-element targets.
func (m *ModeState) EnterHintMode(targets []HintTarget) {
	if m.mode != Normal {
		return
	}
	m.mode = HintMode
	m.hints = NewHintState(targets)
}

// ExitHintMode transitions HintMode -> Normal.
func (m *ModeState) ExitHintMode() {
	if m.mode != HintMode {
		return
	}
	m.mode = Normal
	m.hints = nil
}

// Hints returns the active hint state, or nil outside HintMode.
func (m *ModeState) Hints() *HintState {
	if m.mode != HintMode {
		return nil
	}
	return m.hints
}
