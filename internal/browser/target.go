package browser

import (
	"context"
	"encoding/json"

	"github.com/termweb/termweb/internal/wire"
)

// CreateTarget opens a new top-level target and attaches to it,
// returning the CDP target and session ids.
func (s *Session) CreateTarget(ctx context.Context, url string) (targetID, sessionID string, err error) {
	raw, err := s.client.Call(ctx, "Target.createTarget", map[string]string{"url": url})
	if err != nil {
		return "", "", err
	}
	var created struct {
		TargetID string `json:"targetId"`
	}
	if err := json.Unmarshal(raw, &created); err != nil {
		return "", "", err
	}
	sessionID, err = s.AttachToTarget(ctx, created.TargetID)
	if err != nil {
		return created.TargetID, "", err
	}
	return created.TargetID, sessionID, nil
}

// AttachToTarget issues Target.attachToTarget and returns the new CDP
// session id that scopes subsequent calls to that target.
func (s *Session) AttachToTarget(ctx context.Context, targetID string) (string, error) {
	raw, err := s.client.Call(ctx, "Target.attachToTarget", map[string]any{
		"targetId": targetID,
		"flatten":  true,
	})
	if err != nil {
		return "", err
	}
	var result wire.AttachToTargetResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", err
	}
	return result.SessionID, nil
}

// CloseTarget issues Target.closeTarget.
func (s *Session) CloseTarget(ctx context.Context, targetID string) error {
	_, err := s.client.Call(ctx, "Target.closeTarget", map[string]string{"targetId": targetID})
	return err
}

// FocusTarget issues Target.activateTarget.
func (s *Session) FocusTarget(ctx context.Context, targetID string) error {
	_, err := s.client.Call(ctx, "Target.activateTarget", map[string]string{"targetId": targetID})
	return err
}

// SetDiscoverTargets enables Target.targetCreated/targetInfoChanged/
// targetDestroyed events, which the viewer's tab list subscribes to.
func (s *Session) SetDiscoverTargets(ctx context.Context, discover bool) error {
	_, err := s.client.Call(ctx, "Target.setDiscoverTargets", map[string]bool{"discover": discover})
	return err
}
