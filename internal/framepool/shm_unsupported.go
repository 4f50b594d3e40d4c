//go:build !linux

package framepool

import "errors"

// ErrSHMUnsupported is returned on platforms without a shared-memory
// fast path implementation (everything but Linux, per §4.4/§9: the
// fast path is POSIX-only and this program has no Windows service
// story needing it).
var ErrSHMUnsupported = errors.New("shared-memory frame pool not supported on this platform")

// ProbeSHM always fails outside Linux.
func ProbeSHM() bool { return false }

// SharedRegion is a stub satisfying callers that only check for a
// non-nil error from NewSharedRegion.
type SharedRegion struct{}

func NewSharedRegion(slotCount, slotSize int) (*SharedRegion, error) {
	return nil, ErrSHMUnsupported
}

func (r *SharedRegion) FD() int        { return -1 }
func (r *SharedRegion) Header() Header { return Header{} }
func (r *SharedRegion) Close() error   { return nil }
