package wire

import "errors"

// ErrTransportClosed is returned by any pending or future call once the
// underlying transport has observed a close frame or a read error.
var ErrTransportClosed = errors.New("transport closed")

// ErrTimeout is returned when a Call's deadline elapses before a
// correlated Response arrives. The remote operation is not cancelled.
var ErrTimeout = errors.New("rpc call timed out")

// ErrPoolFull is a diagnostic-only condition: the frame pool producer
// could not find a free slot within its retry budget and dropped a
// frame.
var ErrPoolFull = errors.New("frame pool full, frame dropped")

// ErrCapabilityMissing indicates the terminal or browser lacks a
// capability required at startup.
var ErrCapabilityMissing = errors.New("required capability missing")

// ErrParse indicates a protocol frame could not be decoded. Callers log
// and drop; it is never fatal on its own.
var ErrParse = errors.New("protocol frame parse error")
