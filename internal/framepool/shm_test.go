package framepool

import "testing"

func TestHeaderEncodeDecodeRoundTrip(t *testing.T) {
	h := newHeader(8, 2*1024*1024)

	decoded, ok := DecodeHeader(h.Encode())
	if !ok {
		t.Fatal("expected decode to succeed")
	}
	if decoded != h {
		t.Fatalf("round-trip mismatch: %+v != %+v", decoded, h)
	}
	if decoded.Magic != HeaderMagic {
		t.Fatalf("unexpected magic: %x", decoded.Magic)
	}
}

func TestDecodeHeaderRejectsBadMagic(t *testing.T) {
	buf := make([]byte, HeaderSize)
	if _, ok := DecodeHeader(buf); ok {
		t.Fatal("expected decode to reject zeroed buffer")
	}
}

func TestDecodeHeaderRejectsShortBuffer(t *testing.T) {
	if _, ok := DecodeHeader([]byte{1, 2, 3}); ok {
		t.Fatal("expected decode to reject short buffer")
	}
}
