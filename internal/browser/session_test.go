package browser

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/termweb/termweb/internal/rpc"
	"github.com/termweb/termweb/internal/transport"
)

// fakeTransport mirrors rpc's test double; kept package-local since
// transport.Transport has no exported in-memory implementation.
type fakeTransport struct {
	sent   chan []byte
	toRecv chan transport.Frame
	closed chan struct{}
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		sent:   make(chan []byte, 16),
		toRecv: make(chan transport.Frame, 16),
		closed: make(chan struct{}),
	}
}

func (f *fakeTransport) SendText(data []byte) error {
	select {
	case f.sent <- data:
		return nil
	case <-f.closed:
		return transport.ErrClosed
	}
}
func (f *fakeTransport) SendBinary(data []byte) error { return f.SendText(data) }
func (f *fakeTransport) Recv() (transport.Frame, error) {
	select {
	case fr := <-f.toRecv:
		return fr, nil
	case <-f.closed:
		return transport.Frame{Kind: transport.Close}, transport.ErrClosed
	}
}
func (f *fakeTransport) Close() error {
	select {
	case <-f.closed:
	default:
		close(f.closed)
	}
	return nil
}

func respondOK(t *testing.T, ft *fakeTransport, result any) {
	t.Helper()
	var req struct {
		ID uint64 `json:"id"`
	}
	sent := <-ft.sent
	if err := json.Unmarshal(sent, &req); err != nil {
		t.Fatalf("unmarshal request: %v", err)
	}
	resp := map[string]any{"id": req.ID, "result": result}
	data, _ := json.Marshal(resp)
	ft.toRecv <- transport.Frame{Kind: transport.Text, Data: data}
}

func TestNavigateSendsPageNavigate(t *testing.T) {
	ft := newFakeTransport()
	client := rpc.NewClient(ft)
	defer client.Close()
	sess := NewSession(client)

	done := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		done <- sess.Navigate(ctx, "https://example.com")
	}()

	respondOK(t, ft, map[string]string{})
	if err := <-done; err != nil {
		t.Fatalf("navigate: %v", err)
	}
}

func TestStartScreencastIsIdempotentAcrossCallsWithIncreasingGeneration(t *testing.T) {
	ft := newFakeTransport()
	client := rpc.NewClient(ft)
	defer client.Close()
	sess := NewSession(client)

	call := func() uint64 {
		done := make(chan uint64, 1)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			gen, err := sess.StartScreencast(ctx, ScreencastParams{Format: "jpeg", Quality: 50})
			if err != nil {
				t.Errorf("start screencast: %v", err)
			}
			done <- gen
		}()
		respondOK(t, ft, map[string]string{})
		return <-done
	}

	g1 := call()
	g2 := call()
	if g2 <= g1 {
		t.Fatalf("expected strictly increasing generation, got %d then %d", g1, g2)
	}
	if sess.CurrentScreencastGeneration() != g2 {
		t.Fatalf("expected current generation %d, got %d", g2, sess.CurrentScreencastGeneration())
	}
}

func TestAttachToTargetReturnsSessionID(t *testing.T) {
	ft := newFakeTransport()
	client := rpc.NewClient(ft)
	defer client.Close()
	sess := NewSession(client)

	done := make(chan string, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		sid, err := sess.AttachToTarget(ctx, "target-1")
		if err != nil {
			t.Errorf("attach: %v", err)
		}
		done <- sid
	}()
	respondOK(t, ft, map[string]string{"sessionId": "session-xyz"})

	sid := <-done
	if sid != "session-xyz" {
		t.Fatalf("unexpected session id: %s", sid)
	}
}
