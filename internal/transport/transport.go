// Package transport implements the duplex frame channel of §4.1: a
// thin abstraction over the browser's remote-debugging WebSocket that
// the rpc package layers request/response correlation onto.
package transport

import (
	"context"

	"github.com/termweb/termweb/internal/logging"
)

var log = logging.L("transport")

// FrameKind distinguishes the three observable events recv() can
// produce.
type FrameKind int

const (
	Text FrameKind = iota
	Binary
	Close
)

// Frame is one message handed back by Recv. Fragmented messages are
// reassembled by the implementation before Recv returns.
type Frame struct {
	Kind FrameKind
	Data []byte
}

// Transport is the duplex byte channel contract of §4.1. Writers from
// distinct goroutines must be serialized externally, or by using an
// implementation (like Websocket) that already serializes internally.
type Transport interface {
	// SendText writes one text frame atomically.
	SendText(data []byte) error
	// SendBinary writes one binary frame atomically.
	SendBinary(data []byte) error
	// Recv blocks until one frame is available. After a Close frame is
	// returned, all subsequent calls return ErrClosed.
	Recv() (Frame, error)
	// Close tears down the channel. Idempotent.
	Close() error
}

// Dialer abstracts connection establishment so rpc/browser code can be
// tested against a fake transport.
type Dialer interface {
	Dial(ctx context.Context, endpoint string) (Transport, error)
}
