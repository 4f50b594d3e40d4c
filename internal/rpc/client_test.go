package rpc

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/termweb/termweb/internal/transport"
)

// fakeTransport is an in-memory transport.Transport for exercising the
// rpc.Client without a real WebSocket.
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

func (f *fakeTransport) pushText(data []byte) {
	f.toRecv <- transport.Frame{Kind: transport.Text, Data: data}
}

func TestCallCorrelatesResponse(t *testing.T) {
	ft := newFakeTransport()
	c := NewClient(ft)
	defer c.Close()

	go func() {
		var req struct {
			ID     uint64 `json:"id"`
			Method string `json:"method"`
		}
		sent := <-ft.sent
		if err := json.Unmarshal(sent, &req); err != nil {
			t.Errorf("unmarshal request: %v", err)
			return
		}
		resp := map[string]any{"id": req.ID, "result": map[string]string{"ok": "yes"}}
		data, _ := json.Marshal(resp)
		ft.pushText(data)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	result, err := c.Call(ctx, "Page.navigate", map[string]string{"url": "https://example.com"})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	var decoded struct {
		Ok string `json:"ok"`
	}
	if err := json.Unmarshal(result, &decoded); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if decoded.Ok != "yes" {
		t.Fatalf("unexpected result: %+v", decoded)
	}
}

func TestCallReturnsRpcError(t *testing.T) {
	ft := newFakeTransport()
	c := NewClient(ft)
	defer c.Close()

	go func() {
		var req struct {
			ID uint64 `json:"id"`
		}
		sent := <-ft.sent
		json.Unmarshal(sent, &req)
		resp := map[string]any{"id": req.ID, "error": map[string]any{"code": -32000, "message": "target not found"}}
		data, _ := json.Marshal(resp)
		ft.pushText(data)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := c.Call(ctx, "Target.closeTarget", nil)
	if err == nil {
		t.Fatal("expected an RpcError")
	}
	if err.Error() != "target not found" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCallTimesOutWithoutCancellingRemote(t *testing.T) {
	ft := newFakeTransport()
	c := NewClient(ft)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := c.Call(ctx, "Page.navigate", nil) // never responded to; deadline fires
	if err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestSubscribeEventsFiltersByPrefix(t *testing.T) {
	ft := newFakeTransport()
	c := NewClient(ft)
	defer c.Close()

	sub := c.SubscribeEvents("Target.")

	ft.pushText([]byte(`{"method":"Page.loadEventFired","params":{}}`))
	ft.pushText([]byte(`{"method":"Target.targetCreated","params":{"targetInfo":{"targetId":"abc"}}}`))

	select {
	case ev := <-sub.Events():
		if ev.Method != "Target.targetCreated" {
			t.Fatalf("expected filtered event, got %s", ev.Method)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestCloseFailsOutstandingWaiters(t *testing.T) {
	ft := newFakeTransport()
	c := NewClient(ft)

	resultCh := make(chan error, 1)
	go func() {
		_, err := c.Call(context.Background(), "Page.navigate", nil)
		resultCh <- err
	}()

	<-ft.sent // wait until the call has registered its waiter and sent
	c.Close()

	select {
	case err := <-resultCh:
		if err == nil {
			t.Fatal("expected an error after close")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for call to fail")
	}
}
