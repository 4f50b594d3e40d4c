package browser

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/termweb/termweb/internal/wire"
)

// ScreencastParams mirrors Page.startScreencast's arguments.
type ScreencastParams struct {
	Format        string // "jpeg" | "png"
	Quality       int
	MaxWidth      int
	MaxHeight     int
	EveryNthFrame int
}

// StartScreencast is idempotent per §4.3: a new start implicitly
// supersedes any in-flight one. Each call atomically increments the
// screencast generation and returns the new value, so frames from a
// superseded stream can be told apart (see CurrentScreencastGeneration).
func (s *Session) StartScreencast(ctx context.Context, p ScreencastParams) (generation uint64, err error) {
	gen := s.screencastGen.Add(1)
	_, err = s.call(ctx, "Page.startScreencast", map[string]any{
		"format":        p.Format,
		"quality":       p.Quality,
		"maxWidth":      p.MaxWidth,
		"maxHeight":     p.MaxHeight,
		"everyNthFrame": p.EveryNthFrame,
	})
	if err != nil {
		return 0, err
	}
	return gen, nil
}

// StopScreencast issues Page.stopScreencast and bumps the generation so
// any in-flight frame events from the stopped stream can be recognized
// as stale by comparing against CurrentScreencastGeneration.
func (s *Session) StopScreencast(ctx context.Context) error {
	s.screencastGen.Add(1)
	_, err := s.call(ctx, "Page.stopScreencast", nil)
	return err
}

// CurrentScreencastGeneration returns the generation last assigned by
// StartScreencast or StopScreencast, so the frame pool producer can
// discard frames belonging to a superseded stream.
func (s *Session) CurrentScreencastGeneration() uint64 {
	return s.screencastGen.Load()
}

// AckScreencastFrame issues Page.screencastFrameAck. The browser stalls
// production until every inbound frame is acked, per §4.3.
func (s *Session) AckScreencastFrame(ctx context.Context, screencastSessionID int) error {
	_, err := s.call(ctx, "Page.screencastFrameAck", map[string]int{"sessionId": screencastSessionID})
	return err
}

// DecodeScreencastFrame base64-decodes a ScreencastFrameParams payload.
func DecodeScreencastFrame(p wire.ScreencastFrameParams) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(p.Data)
	if err != nil {
		return nil, fmt.Errorf("decode screencast frame: %w", err)
	}
	return data, nil
}
