package framepool

import "encoding/binary"

// HeaderMagic identifies a termweb shared-memory frame region, per §6's
// persisted-state layout and §9's "explicit version/magic" guidance.
const HeaderMagic uint32 = 0x5346504C

// HeaderVersion is bumped whenever the binary layout changes.
const HeaderVersion uint32 = 1

// HeaderSize is the fixed, cache-line-aligned size of the header in
// bytes: magic(4) + version(4) + slotCount(4) + slotSize(4) +
// metadataOffset(8) + dataOffset(8), padded to 64 bytes.
const HeaderSize = 64

// Header is the versioned region header a second process reads to
// reconstruct slot pointers without any prior knowledge beyond the
// region's file descriptor and size.
type Header struct {
	Magic          uint32
	Version        uint32
	SlotCount      uint32
	SlotSize       uint32
	MetadataOffset uint64
	DataOffset     uint64
}

// Encode serializes h into a HeaderSize-byte little-endian buffer.
func (h Header) Encode() []byte {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], h.Magic)
	binary.LittleEndian.PutUint32(buf[4:8], h.Version)
	binary.LittleEndian.PutUint32(buf[8:12], h.SlotCount)
	binary.LittleEndian.PutUint32(buf[12:16], h.SlotSize)
	binary.LittleEndian.PutUint64(buf[16:24], h.MetadataOffset)
	binary.LittleEndian.PutUint64(buf[24:32], h.DataOffset)
	return buf
}

// DecodeHeader parses a HeaderSize-byte buffer produced by Encode.
func DecodeHeader(buf []byte) (Header, bool) {
	if len(buf) < HeaderSize {
		return Header{}, false
	}
	h := Header{
		Magic:          binary.LittleEndian.Uint32(buf[0:4]),
		Version:        binary.LittleEndian.Uint32(buf[4:8]),
		SlotCount:      binary.LittleEndian.Uint32(buf[8:12]),
		SlotSize:       binary.LittleEndian.Uint32(buf[12:16]),
		MetadataOffset: binary.LittleEndian.Uint64(buf[16:24]),
		DataOffset:     binary.LittleEndian.Uint64(buf[24:32]),
	}
	if h.Magic != HeaderMagic {
		return Header{}, false
	}
	return h, true
}

// metadataEntrySize is the fixed per-slot metadata record size in the
// shared-memory metadata array: length(4) + sessionId(8) + deviceW(4) +
// deviceH(4) + generation(8) + browserTsMs(8) + recvTsMs(8) +
// refcount(4), padded to 64 bytes (cache-line aligned per §9).
const metadataEntrySize = 64

// regionSize computes the total byte size of a shared-memory region
// hosting slotCount slots of slotSize bytes.
func regionSize(slotCount, slotSize int) int64 {
	metaBytes := int64(slotCount) * metadataEntrySize
	dataBytes := int64(slotCount) * int64(slotSize)
	return HeaderSize + metaBytes + dataBytes
}

func newHeader(slotCount, slotSize int) Header {
	return Header{
		Magic:          HeaderMagic,
		Version:        HeaderVersion,
		SlotCount:      uint32(slotCount),
		SlotSize:       uint32(slotSize),
		MetadataOffset: HeaderSize,
		DataOffset:     HeaderSize + uint64(slotCount)*metadataEntrySize,
	}
}
