//go:build linux

package framepool

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// ProbeSHM reports whether memfd_create succeeds on this host, as a
// check that the shared-memory fast path is usable. It does not mmap
// the probe descriptor.
func ProbeSHM() bool {
	fd, err := unix.MemfdCreate("termweb-probe", 0)
	if err != nil {
		return false
	}
	defer unix.Close(fd)
	return true
}

// SharedRegion is a memfd-backed shared-memory frame region a second
// process can map by file descriptor, per §6/§9.
type SharedRegion struct {
	fd     int
	data   []byte
	header Header
}

// NewSharedRegion creates and maps a shared-memory region sized for
// slotCount slots of slotSize bytes, writing the versioned header.
func NewSharedRegion(slotCount, slotSize int) (*SharedRegion, error) {
	size := regionSize(slotCount, slotSize)

	fd, err := unix.MemfdCreate("termweb-framepool", 0)
	if err != nil {
		return nil, fmt.Errorf("memfd_create: %w", err)
	}
	if err := unix.Ftruncate(fd, size); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("ftruncate: %w", err)
	}

	data, err := unix.Mmap(fd, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("mmap: %w", err)
	}

	hdr := newHeader(slotCount, slotSize)
	copy(data[:HeaderSize], hdr.Encode())

	return &SharedRegion{fd: fd, data: data, header: hdr}, nil
}

// FD returns the memfd file descriptor for out-of-band passing to a
// consumer process, per §9's design note.
func (r *SharedRegion) FD() int { return r.fd }

// Header returns the region's parsed header.
func (r *SharedRegion) Header() Header { return r.header }

// MetadataSlice returns the raw metadata-array bytes for slot i.
func (r *SharedRegion) MetadataSlice(i int) []byte {
	off := r.header.MetadataOffset + uint64(i)*metadataEntrySize
	return r.data[off : off+metadataEntrySize]
}

// DataSlice returns the raw data-area bytes for slot i.
func (r *SharedRegion) DataSlice(i int) []byte {
	off := r.header.DataOffset + uint64(i)*uint64(r.header.SlotSize)
	return r.data[off : off+uint64(r.header.SlotSize)]
}

// Close unmaps the region and closes the memfd.
func (r *SharedRegion) Close() error {
	if err := unix.Munmap(r.data); err != nil {
		return err
	}
	return unix.Close(r.fd)
}
