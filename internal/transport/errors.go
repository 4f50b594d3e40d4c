package transport

import "github.com/termweb/termweb/internal/wire"

// ErrClosed is returned by Recv/Send once the transport has observed a
// close frame or an unrecoverable read/write error. It is an alias of
// wire.ErrTransportClosed so callers up the stack can test against one
// sentinel regardless of which layer surfaced it.
var ErrClosed = wire.ErrTransportClosed
