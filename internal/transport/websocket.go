package transport

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	handshakeTimeout = 10 * time.Second
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMessageSize   = 32 * 1024 * 1024 // screencast frames can be large
	sendBuffer       = 256
)

// WebsocketDialer dials a browser DevTools WebSocket endpoint.
type WebsocketDialer struct{}

func (WebsocketDialer) Dial(ctx context.Context, endpoint string) (Transport, error) {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", endpoint, err)
	}
	conn.SetReadLimit(maxMessageSize)

	w := &Websocket{
		conn:   conn,
		sendCh: make(chan outFrame, sendBuffer),
		recvCh: make(chan Frame, sendBuffer),
		done:   make(chan struct{}),
	}
	go w.writePump()
	go w.readPump()
	log.Info("transport connected", "endpoint", endpoint)
	return w, nil
}

type outFrame struct {
	binary bool
	data   []byte
}

// Websocket is the gorilla/websocket-backed Transport, serializing all
// writes through a single writer goroutine, matching the donor's
// sendChan/writePump split.
type Websocket struct {
	conn   *websocket.Conn
	sendCh chan outFrame
	recvCh chan Frame

	closeOnce sync.Once
	done      chan struct{}
	closeErr  error
	mu        sync.Mutex
}

func (w *Websocket) SendText(data []byte) error   { return w.send(outFrame{binary: false, data: data}) }
func (w *Websocket) SendBinary(data []byte) error { return w.send(outFrame{binary: true, data: data}) }

func (w *Websocket) send(f outFrame) error {
	select {
	case <-w.done:
		return ErrClosed
	default:
	}
	select {
	case w.sendCh <- f:
		return nil
	case <-w.done:
		return ErrClosed
	}
}

// Recv blocks until one frame is available.
func (w *Websocket) Recv() (Frame, error) {
	fr, ok := <-w.recvCh
	if !ok {
		w.mu.Lock()
		err := w.closeErr
		w.mu.Unlock()
		if err == nil {
			err = ErrClosed
		}
		return Frame{Kind: Close}, err
	}
	return fr, nil
}

// Close tears down the connection. Idempotent.
func (w *Websocket) Close() error {
	w.closeOnce.Do(func() {
		close(w.done)
		w.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
		w.conn.Close()
	})
	return nil
}

func (w *Websocket) readPump() {
	defer close(w.recvCh)
	for {
		msgType, data, err := w.conn.ReadMessage()
		if err != nil {
			w.mu.Lock()
			w.closeErr = fmt.Errorf("%w: %v", ErrClosed, err)
			w.mu.Unlock()
			return
		}
		var kind FrameKind
		switch msgType {
		case websocket.TextMessage:
			kind = Text
		case websocket.BinaryMessage:
			kind = Binary
		case websocket.CloseMessage:
			w.recvCh <- Frame{Kind: Close}
			return
		default:
			continue
		}
		select {
		case w.recvCh <- Frame{Kind: kind, Data: data}:
		case <-w.done:
			return
		}
	}
}

func (w *Websocket) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case f := <-w.sendCh:
			w.conn.SetWriteDeadline(time.Now().Add(writeWait))
			msgType := websocket.TextMessage
			if f.binary {
				msgType = websocket.BinaryMessage
			}
			if err := w.conn.WriteMessage(msgType, f.data); err != nil {
				log.Warn("write error", "error", err)
				return
			}
		case <-ticker.C:
			w.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := w.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
