package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/termweb/termweb/internal/capability"
	"github.com/termweb/termweb/internal/transport"
)

// launchedBrowser is the headless browser child process termweb
// started, so the caller can terminate it on shutdown. Process
// launch itself is deliberately thin glue, not a core engine
// component (process launch/binary discovery are named as
// out-of-scope "secondary utilities"); it exists only so `open` has
// something to connect to.
type launchedBrowser struct {
	cmd *exec.Cmd
}

func (b *launchedBrowser) stop() {
	if b == nil || b.cmd == nil || b.cmd.Process == nil {
		return
	}
	_ = b.cmd.Process.Kill()
	_ = b.cmd.Wait()
}

// resolveChromeBinary applies the override flag, then CHROME_BIN via
// config, then per-OS discovery, matching doctor's own probe order.
func resolveChromeBinary(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if v := os.Getenv("CHROME_BIN"); v != "" {
		return v, nil
	}
	if path, ok := capability.DiscoverBrowserBinary(); ok {
		return path, nil
	}
	return "", fmt.Errorf("no browser binary found; set --chrome-bin or CHROME_BIN")
}

// launchBrowser starts binary headless with remote debugging on port
// and polls /json/version until it answers or ctx expires.
func launchBrowser(ctx context.Context, binary string, port int) (*launchedBrowser, string, error) {
	userDataDir, err := os.MkdirTemp("", "termweb-chrome-*")
	if err != nil {
		return nil, "", fmt.Errorf("create chrome user data dir: %w", err)
	}

	cmd := exec.Command(binary,
		"--headless=new",
		fmt.Sprintf("--remote-debugging-port=%d", port),
		"--remote-allow-origins=*",
		"--user-data-dir="+userDataDir,
		"--no-first-run",
		"--no-default-browser-check",
		"about:blank",
	)
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return nil, "", fmt.Errorf("start browser: %w", err)
	}
	b := &launchedBrowser{cmd: cmd}

	endpoint, err := waitForEndpoint(ctx, port)
	if err != nil {
		b.stop()
		return nil, "", err
	}
	return b, endpoint, nil
}

func waitForEndpoint(ctx context.Context, port int) (string, error) {
	deadline := time.Now().Add(10 * time.Second)
	var lastErr error
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}
		endpoint, err := transport.DiscoverEndpoint(ctx, port)
		if err == nil {
			return endpoint, nil
		}
		lastErr = err
		time.Sleep(150 * time.Millisecond)
	}
	return "", fmt.Errorf("browser did not expose a devtools endpoint in time: %w", lastErr)
}
