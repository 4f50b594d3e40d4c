// Package rpc implements §4.2: a Transport-backed JSON-RPC client with
// request/response correlation and bounded-queue event fanout, grounded
// on the donor's internal/ipc/protocol.go id/sequence bookkeeping style
// (minus HMAC signing, since the browser channel is a locally spawned
// trusted process) and the nugget-thane-ai-agent events.Bus drop-oldest
// fanout pattern.
package rpc

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/termweb/termweb/internal/logging"
	"github.com/termweb/termweb/internal/transport"
	"github.com/termweb/termweb/internal/wire"
)

var log = logging.L("rpc")

const eventQueueSize = 256

type pending struct {
	ch chan wire.Response
}

// Subscription is a bounded, drop-oldest queue of events whose method
// matches one of the subscriber's prefixes.
type Subscription struct {
	ch       chan wire.Event
	prefixes []string
	dropped  atomic.Uint64
}

// Events returns the channel events are delivered on.
func (s *Subscription) Events() <-chan wire.Event { return s.ch }

// Dropped returns how many events were discarded because the
// subscriber's queue was full.
func (s *Subscription) Dropped() uint64 { return s.dropped.Load() }

func (s *Subscription) matches(method string) bool {
	if len(s.prefixes) == 0 {
		return true
	}
	for _, p := range s.prefixes {
		if len(method) >= len(p) && method[:len(p)] == p {
			return true
		}
	}
	return false
}

// Client wraps a Transport with request/response correlation and event
// fanout, per §4.2.
type Client struct {
	tr transport.Transport

	nextID atomic.Uint64

	mu      sync.Mutex
	waiters map[uint64]pending
	subs    []*Subscription
	closed  bool

	wg sync.WaitGroup
}

// NewClient starts the reader goroutine described in §4.2/§5. The
// caller owns tr's lifetime via Close.
func NewClient(tr transport.Transport) *Client {
	c := &Client{
		tr:      tr,
		waiters: make(map[uint64]pending),
	}
	c.wg.Add(1)
	go c.readLoop()
	return c
}

// Call assigns the next id, sends method/params, and blocks until the
// correlated response arrives or ctx is done. A cancelled context only
// abandons the local wait; the remote call is not cancelled.
func (c *Client) Call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	return c.call(ctx, method, params, "")
}

// CallSession is Call scoped to an attached target's session id.
func (c *Client) CallSession(ctx context.Context, sessionID, method string, params any) (json.RawMessage, error) {
	return c.call(ctx, method, params, sessionID)
}

func (c *Client) call(ctx context.Context, method string, params any, sessionID string) (json.RawMessage, error) {
	id := c.nextID.Add(1)
	req := wire.Request{ID: id, Method: method, Params: params, SessionID: sessionID}

	ch := make(chan wire.Response, 1)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, wire.ErrTransportClosed
	}
	c.waiters[id] = pending{ch: ch}
	c.mu.Unlock()

	data, err := json.Marshal(req)
	if err != nil {
		c.removeWaiter(id)
		return nil, err
	}
	if err := c.tr.SendText(data); err != nil {
		c.removeWaiter(id)
		return nil, err
	}

	select {
	case resp := <-ch:
		if resp.Error != nil {
			if resp.ID == 0 {
				// Close and failAllWaiters send an id-less response.
				return nil, wire.ErrTransportClosed
			}
			return nil, resp.Error
		}
		return resp.Result, nil
	case <-ctx.Done():
		// Local wait abandoned; id stays registered so a late response
		// can still be retired cleanly instead of logged as orphaned.
		return nil, wire.ErrTimeout
	}
}

func (c *Client) removeWaiter(id uint64) {
	c.mu.Lock()
	delete(c.waiters, id)
	c.mu.Unlock()
}

// SubscribeEvents returns a bounded queue receiving events whose method
// matches any of the given prefixes (all events if prefixes is empty).
func (c *Client) SubscribeEvents(prefixes ...string) *Subscription {
	sub := &Subscription{
		ch:       make(chan wire.Event, eventQueueSize),
		prefixes: prefixes,
	}
	c.mu.Lock()
	c.subs = append(c.subs, sub)
	c.mu.Unlock()
	return sub
}

// Close signals shutdown, fails all outstanding waiters with
// ErrTransportClosed, and closes the underlying transport.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	waiters := c.waiters
	c.waiters = nil
	c.mu.Unlock()

	for _, w := range waiters {
		w.ch <- wire.Response{Error: &wire.RpcError{Message: wire.ErrTransportClosed.Error()}}
	}

	err := c.tr.Close()
	c.wg.Wait()
	return err
}

func (c *Client) readLoop() {
	defer c.wg.Done()
	for {
		frame, err := c.tr.Recv()
		if err != nil {
			c.failAllWaiters()
			return
		}
		if frame.Kind == transport.Close {
			c.failAllWaiters()
			return
		}
		if frame.Kind != transport.Text {
			continue
		}

		resp, event, err := wire.Classify(frame.Data)
		if err != nil {
			log.Warn("dropping unparseable frame", "error", err)
			continue
		}

		if resp != nil {
			c.resolve(*resp)
			continue
		}
		c.fanout(*event)
	}
}

func (c *Client) resolve(resp wire.Response) {
	c.mu.Lock()
	w, ok := c.waiters[resp.ID]
	if ok {
		delete(c.waiters, resp.ID)
	}
	c.mu.Unlock()
	if !ok {
		// Late response for an id whose local wait already timed out.
		return
	}
	w.ch <- resp
}

func (c *Client) fanout(event wire.Event) {
	c.mu.Lock()
	subs := c.subs
	c.mu.Unlock()

	for _, s := range subs {
		if !s.matches(event.Method) {
			continue
		}
		select {
		case s.ch <- event:
		default:
			// Drop oldest to make room rather than block the reader.
			select {
			case <-s.ch:
				s.dropped.Add(1)
			default:
			}
			select {
			case s.ch <- event:
			default:
				s.dropped.Add(1)
			}
		}
	}
}

func (c *Client) failAllWaiters() {
	c.mu.Lock()
	waiters := c.waiters
	c.waiters = nil
	closed := c.closed
	c.closed = true
	c.mu.Unlock()

	if closed {
		return
	}
	for _, w := range waiters {
		w.ch <- wire.Response{Error: &wire.RpcError{Message: wire.ErrTransportClosed.Error()}}
	}
}
