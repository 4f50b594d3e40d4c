package viewer

import "testing"

func TestPromptBufferInsertAtCursor(t *testing.T) {
	p := NewPromptBuffer("helloworld")
	p.cursor = 5
	p.Insert(" ")
	if p.String() != "hello world" {
		t.Fatalf("got %q", p.String())
	}
	if p.Cursor() != 6 {
		t.Fatalf("expected cursor to advance past inserted text, got %d", p.Cursor())
	}
}

func TestPromptBufferBackspaceAndDelete(t *testing.T) {
	p := NewPromptBuffer("abc")
	p.Backspace()
	if p.String() != "ab" {
		t.Fatalf("got %q", p.String())
	}
	p.cursor = 0
	p.Delete()
	if p.String() != "b" {
		t.Fatalf("got %q", p.String())
	}
}

func TestPromptBufferBackspaceAtStartIsNoop(t *testing.T) {
	p := NewPromptBuffer("abc")
	p.cursor = 0
	p.Backspace()
	if p.String() != "abc" {
		t.Fatalf("expected no change, got %q", p.String())
	}
}

func TestPromptBufferMoveLeftRightClampsAtBounds(t *testing.T) {
	p := NewPromptBuffer("ab")
	p.cursor = 0
	p.MoveLeft(false)
	if p.Cursor() != 0 {
		t.Fatalf("expected cursor clamped at 0, got %d", p.Cursor())
	}
	p.cursor = 2
	p.MoveRight(false)
	if p.Cursor() != 2 {
		t.Fatalf("expected cursor clamped at end, got %d", p.Cursor())
	}
}

func TestPromptBufferHomeEnd(t *testing.T) {
	p := NewPromptBuffer("hello")
	p.cursor = 2
	p.Home(false)
	if p.Cursor() != 0 {
		t.Fatalf("expected cursor at 0, got %d", p.Cursor())
	}
	p.End(false)
	if p.Cursor() != 5 {
		t.Fatalf("expected cursor at end, got %d", p.Cursor())
	}
}

func TestPromptBufferWordLeftRight(t *testing.T) {
	p := NewPromptBuffer("foo bar baz")
	p.cursor = len(p.runes)
	p.WordLeft(false)
	if p.Cursor() != 8 {
		t.Fatalf("expected cursor at start of 'baz' (8), got %d", p.Cursor())
	}
	p.WordLeft(false)
	if p.Cursor() != 4 {
		t.Fatalf("expected cursor at start of 'bar' (4), got %d", p.Cursor())
	}
	p.WordRight(false)
	if p.Cursor() != 7 {
		t.Fatalf("expected cursor after 'bar' (7), got %d", p.Cursor())
	}
}

func TestPromptBufferSelectionExtendAndReplace(t *testing.T) {
	p := NewPromptBuffer("hello")
	p.cursor = 0
	p.MoveRight(true)
	p.MoveRight(true)
	start, end, ok := p.Selection()
	if !ok || start != 0 || end != 2 {
		t.Fatalf("expected selection [0,2), got [%d,%d) ok=%v", start, end, ok)
	}
	if p.Selected() != "he" {
		t.Fatalf("expected selected text 'he', got %q", p.Selected())
	}
	p.Insert("X")
	if p.String() != "Xllo" {
		t.Fatalf("expected selection replaced by insert, got %q", p.String())
	}
}

func TestPromptBufferSelectAll(t *testing.T) {
	p := NewPromptBuffer("hello")
	p.SelectAll()
	if p.Selected() != "hello" {
		t.Fatalf("expected full selection, got %q", p.Selected())
	}
	if p.Cursor() != 5 {
		t.Fatalf("expected cursor at end after select-all, got %d", p.Cursor())
	}
}

func TestPromptBufferSelectAllEmptyHasNoSelection(t *testing.T) {
	p := NewPromptBuffer("")
	p.SelectAll()
	if _, _, ok := p.Selection(); ok {
		t.Fatalf("expected no selection on empty buffer")
	}
}

func TestPromptBufferMoveCollapsesSelection(t *testing.T) {
	p := NewPromptBuffer("hello")
	p.cursor = 0
	p.MoveRight(true)
	p.MoveRight(true)
	p.MoveRight(false)
	if _, _, ok := p.Selection(); ok {
		t.Fatalf("expected selection cleared after non-extending move")
	}
}

func TestPromptBufferUnicodeSafety(t *testing.T) {
	p := NewPromptBuffer("héllo")
	p.cursor = 2
	p.Backspace()
	if p.String() != "hllo" {
		t.Fatalf("expected rune-safe backspace removing 'é', got %q", p.String())
	}
}
