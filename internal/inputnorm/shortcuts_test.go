package inputnorm

import "testing"

func TestMatchShortcutRequiresShortcutMod(t *testing.T) {
	ev := KeyEvent{Char: 'q'}
	if _, ok := MatchShortcut(ev); ok {
		t.Fatalf("expected no match without shortcut mod")
	}
}

func TestMatchShortcutQuit(t *testing.T) {
	ev := KeyEvent{Char: 'q', ShortcutMod: true}
	act, ok := MatchShortcut(ev)
	if !ok || act != ShortcutQuit {
		t.Fatalf("got %v %v", act, ok)
	}
}

func TestMatchShortcutBackForward(t *testing.T) {
	back, ok := MatchShortcut(KeyEvent{Char: '[', ShortcutMod: true})
	if !ok || back != ShortcutBack {
		t.Fatalf("got %v %v", back, ok)
	}
	fwd, ok := MatchShortcut(KeyEvent{Char: ']', ShortcutMod: true})
	if !ok || fwd != ShortcutForward {
		t.Fatalf("got %v %v", fwd, ok)
	}
}

func TestMatchShortcutDevConsoleF12(t *testing.T) {
	act, ok := MatchShortcut(KeyEvent{Named: KeyF12, ShortcutMod: true})
	if !ok || act != ShortcutDevConsole {
		t.Fatalf("got %v %v", act, ok)
	}
}

func TestResolveShortcutModNonApple(t *testing.T) {
	if IsAppleShortcutMod() {
		t.Skip("platform-dependent: running on darwin")
	}
	ev := ResolveShortcutMod(KeyEvent{Char: 'q', Mods: Modifiers{Ctrl: true}})
	if !ev.ShortcutMod {
		t.Fatalf("expected ctrl to resolve to shortcut mod on non-apple platform")
	}
}

func TestTranslateCtrlShiftPRewritesToMeta(t *testing.T) {
	ev := TranslateCtrlShiftP(KeyEvent{Char: 'P', Mods: Modifiers{Ctrl: true, Shift: true}})
	if ev.Mods.Ctrl || !ev.Mods.Meta || !ev.Mods.Shift {
		t.Fatalf("got %+v", ev.Mods)
	}
}

func TestTranslateCtrlShiftPLeavesOtherChordsAlone(t *testing.T) {
	ev := TranslateCtrlShiftP(KeyEvent{Char: 'P', Mods: Modifiers{Ctrl: true}})
	if !ev.Mods.Ctrl || ev.Mods.Meta {
		t.Fatalf("expected unchanged chord, got %+v", ev.Mods)
	}
}
