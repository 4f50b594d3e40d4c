package renderer

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"image/png"

	"github.com/termweb/termweb/internal/termimg"
)

// TranscodeJPEGToPNG decodes a JPEG screencast frame and re-encodes it
// as PNG, the only compressed format the Kitty graphics protocol
// understands (f=100); the engine requests jpeg screencast frames so
// that the tier's quality setting applies, so each frame needs this
// hop before it can be drawn. Raster decode/encode is exactly what the
// standard image/jpeg and image/png packages are for; no pack library
// does this better (see DESIGN.md).
func TranscodeJPEGToPNG(data []byte) ([]byte, termimg.Format, error) {
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, fmt.Errorf("decode screencast jpeg: %w", err)
	}
	var out bytes.Buffer
	if err := png.Encode(&out, img); err != nil {
		return nil, 0, fmt.Errorf("encode screencast png: %w", err)
	}
	return out.Bytes(), termimg.FormatPNG, nil
}
