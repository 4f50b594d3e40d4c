// Package capability implements the §6/§7 `doctor` diagnostics: a
// small set of startup probes (terminal image protocol, truecolor,
// browser binary) each reporting ✓/✗ plus a remediation hint, grounded
// on the donor's internal/discovery platform-dispatch style (a
// runtime.GOOS switch choosing per-OS search paths/commands) applied
// here to local capability checks instead of network host discovery.
package capability

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/termweb/termweb/internal/logging"
)

var log = logging.L("capability")

// Probe is one row of the doctor report.
type Probe struct {
	Name string
	OK   bool
	Hint string // remediation, empty when OK
}

// Report is the full set of probes run by RunAll.
type Report struct {
	Probes []Probe
}

// AnyFailed reports whether any probe failed, the doctor subcommand's
// exit-1 condition per §7.
func (r Report) AnyFailed() bool {
	for _, p := range r.Probes {
		if !p.OK {
			return true
		}
	}
	return false
}

// RunAll runs every doctor probe. chromeBinaryOverride is the
// --chrome-bin flag or config value, empty to use discovery only.
func RunAll(chromeBinaryOverride string) Report {
	return Report{Probes: []Probe{
		probeTerminalImageProtocol(),
		probeTruecolor(),
		probeBrowserBinary(chromeBinaryOverride),
	}}
}

// probeTerminalImageProtocol checks for a terminal known to implement
// the Kitty graphics protocol via TERM_PROGRAM/TERM, since a live
// APC query-response round trip requires raw mode and isn't safe to
// run from a non-interactive doctor invocation.
func probeTerminalImageProtocol() Probe {
	term := os.Getenv("TERM")
	termProgram := strings.ToLower(os.Getenv("TERM_PROGRAM"))
	kittyCapable := map[string]bool{
		"kitty":        true,
		"wezterm":      true,
		"ghostty":      true,
		"konsole":      true,
		"warpterminal": true,
	}
	if strings.Contains(strings.ToLower(term), "kitty") || kittyCapable[termProgram] {
		return Probe{Name: "terminal image protocol", OK: true}
	}
	return Probe{
		Name: "terminal image protocol",
		OK:   false,
		Hint: "run inside a terminal that implements the Kitty graphics protocol (kitty, WezTerm, Ghostty, Konsole)",
	}
}

// probeTruecolor checks for 24-bit color support, needed for accurate
// toolbar/placeholder rendering.
func probeTruecolor() Probe {
	colorterm := strings.ToLower(os.Getenv("COLORTERM"))
	if colorterm == "truecolor" || colorterm == "24bit" {
		return Probe{Name: "truecolor support", OK: true}
	}
	return Probe{
		Name: "truecolor support",
		OK:   false,
		Hint: `set COLORTERM=truecolor (most modern terminals support this; check your terminal's documentation)`,
	}
}

// probeBrowserBinary mirrors the donor's ReadARPCache-style
// runtime.GOOS dispatch: a per-platform list of likely install
// locations, falling back to PATH lookup.
func probeBrowserBinary(override string) Probe {
	if override != "" {
		if _, err := os.Stat(override); err == nil {
			return Probe{Name: "browser binary", OK: true}
		}
		return Probe{
			Name: "browser binary",
			OK:   false,
			Hint: fmt.Sprintf("configured chrome_binary %q does not exist", override),
		}
	}
	if v := os.Getenv("CHROME_BIN"); v != "" {
		if _, err := os.Stat(v); err == nil {
			return Probe{Name: "browser binary", OK: true}
		}
	}
	if path, ok := DiscoverBrowserBinary(); ok {
		log.Debug("discovered browser binary", "path", path)
		return Probe{Name: "browser binary", OK: true}
	}
	return Probe{
		Name: "browser binary",
		Hint: "install Chrome/Chromium or set CHROME_BIN to its path",
	}
}

// DiscoverBrowserBinary searches common per-OS install locations, then
// falls back to a PATH lookup of common binary names.
func DiscoverBrowserBinary() (string, bool) {
	for _, candidate := range platformCandidates() {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser", "chrome"} {
		if path, err := exec.LookPath(name); err == nil {
			return path, true
		}
	}
	return "", false
}

func platformCandidates() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
			"/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge",
		}
	case "windows":
		return []string{
			`C:\Program Files\Google\Chrome\Application\chrome.exe`,
			`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
			`C:\Program Files\Microsoft\Edge\Application\msedge.exe`,
		}
	default: // linux and other unix-likes
		return []string{
			"/usr/bin/google-chrome",
			"/usr/bin/google-chrome-stable",
			"/usr/bin/chromium",
			"/usr/bin/chromium-browser",
			"/snap/bin/chromium",
		}
	}
}

// FormatTable renders the report as the aligned ✓/✗ table §7's wording
// requires ("enumerates each probed capability with ✓/✗ and a
// remediation hint").
func FormatTable(r Report) string {
	width := 0
	for _, p := range r.Probes {
		if len(p.Name) > width {
			width = len(p.Name)
		}
	}
	var b strings.Builder
	for _, p := range r.Probes {
		mark := "\u2713"
		if !p.OK {
			mark = "\u2717"
		}
		fmt.Fprintf(&b, "%s  %-*s", mark, width, p.Name)
		if p.Hint != "" {
			fmt.Fprintf(&b, "  %s", p.Hint)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
