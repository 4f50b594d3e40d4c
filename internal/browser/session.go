// Package browser implements §4.3: domain-specific wrappers over the
// RPC client for navigation, input dispatch, viewport, screencast, and
// target management. Grounded on the donor's
// internal/remote/desktop/session.go lifecycle shape (Once-guarded
// stop, atomic interaction flags) repurposed from WebRTC desktop
// capture to CDP domain calls.
package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/termweb/termweb/internal/logging"
	"github.com/termweb/termweb/internal/rpc"
	"github.com/termweb/termweb/internal/wire"
)

var log = logging.L("browser")

// Session wraps an rpc.Client with the browser-domain operations the
// viewer drives. One Session per top-level tab attachment; the active
// target's sessionId is swapped in on tab switch.
type Session struct {
	client *rpc.Client

	mu        sync.RWMutex
	sessionID string

	screencastGen atomic.Uint64

	stopOnce sync.Once
}

// NewSession wraps an already-connected rpc.Client.
func NewSession(client *rpc.Client) *Session {
	return &Session{client: client}
}

// SetSessionID scopes subsequent calls to an attached target's CDP
// session id, set after AttachToTarget / CreateTarget.
func (s *Session) SetSessionID(id string) {
	s.mu.Lock()
	s.sessionID = id
	s.mu.Unlock()
}

func (s *Session) currentSessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

func (s *Session) call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	sid := s.currentSessionID()
	if sid == "" {
		return s.client.Call(ctx, method, params)
	}
	return s.client.CallSession(ctx, sid, method, params)
}

// Navigate issues Page.navigate.
func (s *Session) Navigate(ctx context.Context, url string) error {
	_, err := s.call(ctx, "Page.navigate", map[string]string{"url": url})
	return err
}

// Reload issues Page.reload with an optional ignoreCache flag.
func (s *Session) Reload(ctx context.Context, ignoreCache bool) error {
	_, err := s.call(ctx, "Page.reload", map[string]bool{"ignoreCache": ignoreCache})
	return err
}

// Stop issues Page.stopLoading.
func (s *Session) Stop(ctx context.Context) error {
	_, err := s.call(ctx, "Page.stopLoading", nil)
	return err
}

// Back navigates to the previous history entry via Page.getNavigationHistory
// plus Page.navigateToHistoryEntry, matching the only way CDP exposes
// back/forward.
func (s *Session) Back(ctx context.Context) error    { return s.navigateHistory(ctx, -1) }
func (s *Session) Forward(ctx context.Context) error { return s.navigateHistory(ctx, 1) }

func (s *Session) navigateHistory(ctx context.Context, direction int) error {
	raw, err := s.call(ctx, "Page.getNavigationHistory", nil)
	if err != nil {
		return err
	}
	var hist struct {
		CurrentIndex int `json:"currentIndex"`
		Entries      []struct {
			ID int `json:"id"`
		} `json:"entries"`
	}
	if err := json.Unmarshal(raw, &hist); err != nil {
		return fmt.Errorf("decode navigation history: %w", err)
	}
	target := hist.CurrentIndex + direction
	if target < 0 || target >= len(hist.Entries) {
		return fmt.Errorf("no history entry in direction %d", direction)
	}
	_, err = s.call(ctx, "Page.navigateToHistoryEntry", map[string]int{"entryId": hist.Entries[target].ID})
	return err
}

// HistoryState reports whether Back/Forward currently have an entry to
// move to, for the toolbar's button-enabled state.
func (s *Session) HistoryState(ctx context.Context) (canGoBack, canGoForward bool, err error) {
	raw, err := s.call(ctx, "Page.getNavigationHistory", nil)
	if err != nil {
		return false, false, err
	}
	var hist struct {
		CurrentIndex int `json:"currentIndex"`
		Entries      []struct {
			ID int `json:"id"`
		} `json:"entries"`
	}
	if err := json.Unmarshal(raw, &hist); err != nil {
		return false, false, fmt.Errorf("decode navigation history: %w", err)
	}
	return hist.CurrentIndex > 0, hist.CurrentIndex < len(hist.Entries)-1, nil
}

// SetViewport issues Emulation.setDeviceMetricsOverride.
func (s *Session) SetViewport(ctx context.Context, v wire.Viewport) error {
	_, err := s.call(ctx, "Emulation.setDeviceMetricsOverride", v)
	return err
}
