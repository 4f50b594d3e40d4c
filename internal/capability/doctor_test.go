package capability

import (
	"strings"
	"testing"
)

func TestReportAnyFailedTrueWhenAProbeFails(t *testing.T) {
	r := Report{Probes: []Probe{{Name: "a", OK: true}, {Name: "b", OK: false}}}
	if !r.AnyFailed() {
		t.Fatalf("expected AnyFailed true")
	}
}

func TestReportAnyFailedFalseWhenAllOK(t *testing.T) {
	r := Report{Probes: []Probe{{Name: "a", OK: true}, {Name: "b", OK: true}}}
	if r.AnyFailed() {
		t.Fatalf("expected AnyFailed false")
	}
}

func TestProbeTerminalImageProtocolHonorsTermProgram(t *testing.T) {
	t.Setenv("TERM_PROGRAM", "WezTerm")
	t.Setenv("TERM", "xterm-256color")
	p := probeTerminalImageProtocol()
	if !p.OK {
		t.Fatalf("expected WezTerm to pass the image protocol probe")
	}
}

func TestProbeTerminalImageProtocolFailsOnPlainXterm(t *testing.T) {
	t.Setenv("TERM_PROGRAM", "")
	t.Setenv("TERM", "xterm")
	p := probeTerminalImageProtocol()
	if p.OK {
		t.Fatalf("expected plain xterm to fail the image protocol probe")
	}
	if p.Hint == "" {
		t.Fatalf("expected a remediation hint on failure")
	}
}

func TestProbeTruecolorHonorsColortermEnv(t *testing.T) {
	t.Setenv("COLORTERM", "truecolor")
	if p := probeTruecolor(); !p.OK {
		t.Fatalf("expected truecolor probe to pass")
	}
	t.Setenv("COLORTERM", "")
	if p := probeTruecolor(); p.OK {
		t.Fatalf("expected truecolor probe to fail without COLORTERM")
	}
}

func TestProbeBrowserBinaryFailsWhenOverrideMissing(t *testing.T) {
	p := probeBrowserBinary("/nonexistent/path/to/chrome")
	if p.OK {
		t.Fatalf("expected nonexistent override path to fail")
	}
	if !strings.Contains(p.Hint, "does not exist") {
		t.Fatalf("expected hint to mention the missing override, got %q", p.Hint)
	}
}

func TestFormatTableAlignsAndMarksFailures(t *testing.T) {
	r := Report{Probes: []Probe{
		{Name: "truecolor support", OK: true},
		{Name: "x", OK: false, Hint: "do something"},
	}}
	out := FormatTable(r)
	if !strings.Contains(out, "✓") || !strings.Contains(out, "✗") {
		t.Fatalf("expected both check and cross marks, got %q", out)
	}
	if !strings.Contains(out, "do something") {
		t.Fatalf("expected hint text in output, got %q", out)
	}
}
