// Package termimg implements the terminal image protocol sink named
// by §4.10 and §6: drawing and replacing images in place via the
// Kitty graphics protocol, using fixed image/placement ids so repeated
// draws never accumulate. Command vocabulary (actions, transmission
// medium, pixel formats, delete modes) grounded on
// danielgatis-go-headless-term/kitty.go's KittyCommand parser, used
// here in reverse: termweb is an emitter, not a parser, of this
// protocol, so the constants are reused but the direction of travel
// is inverted and there is no decode side.
package termimg

import (
	"encoding/base64"
	"fmt"
	"strings"
)

type action byte

const (
	actionTransmitDisplay action = 'T'
	actionDisplay         action = 'p'
	actionDelete          action = 'd'
)

type transmission byte

const (
	transmitDirect    transmission = 'd'
	transmitSharedMem transmission = 's'
)

// Format is the Kitty graphics pixel format.
type Format uint32

const (
	FormatRGB  Format = 24
	FormatRGBA Format = 32
	FormatPNG  Format = 100
)

// DeleteMode selects what a delete command targets, mirroring the
// donor's KittyDelete vocabulary.
type DeleteMode byte

const (
	DeleteByIDWithData DeleteMode = 'I'
	DeleteByID         DeleteMode = 'i'
)

// Fixed image ids per §4.10: content and cursor never accumulate
// placements because every draw reuses the same id.
const (
	ContentImageID uint32 = 100
	CursorImageID  uint32 = 101

	ContentPlacementID uint32 = 1
	CursorPlacementID  uint32 = 1
)

// DrawParams describes one draw/update command.
type DrawParams struct {
	ImageID     uint32
	PlacementID uint32
	Format      Format

	Rows, Cols        uint32
	WidthPx, HeightPx uint32
	XOffsetPx         uint32
	YOffsetPx         uint32
	ZIndex            int32

	// Exactly one of Data or SHMName is set. Data is transmitted
	// inline as base64; SHMName references a POSIX shared-memory
	// segment the terminal is expected to have access to (Kitty's
	// t=s transmission medium).
	Data    []byte
	SHMName string
}

// EncodeDraw renders a transmit-and-display (or SHM-referencing
// display) command for p. The same ImageID/PlacementID pair updates an
// existing placement in place rather than creating a new one.
func EncodeDraw(p DrawParams) []byte {
	var kv []string
	kv = append(kv, fmt.Sprintf("i=%d", p.ImageID))
	kv = append(kv, fmt.Sprintf("p=%d", p.PlacementID))

	var payload string
	if p.SHMName != "" {
		kv = append(kv, fmt.Sprintf("a=%c", actionDisplay))
		kv = append(kv, fmt.Sprintf("t=%c", transmitSharedMem))
		payload = base64.StdEncoding.EncodeToString([]byte(p.SHMName))
	} else {
		kv = append(kv, fmt.Sprintf("a=%c", actionTransmitDisplay))
		kv = append(kv, fmt.Sprintf("t=%c", transmitDirect))
		kv = append(kv, fmt.Sprintf("f=%d", p.Format))
		payload = base64.StdEncoding.EncodeToString(p.Data)
	}

	if p.Cols > 0 {
		kv = append(kv, fmt.Sprintf("c=%d", p.Cols))
	}
	if p.Rows > 0 {
		kv = append(kv, fmt.Sprintf("r=%d", p.Rows))
	}
	if p.WidthPx > 0 {
		kv = append(kv, fmt.Sprintf("w=%d", p.WidthPx))
	}
	if p.HeightPx > 0 {
		kv = append(kv, fmt.Sprintf("h=%d", p.HeightPx))
	}
	if p.XOffsetPx > 0 {
		kv = append(kv, fmt.Sprintf("X=%d", p.XOffsetPx))
	}
	if p.YOffsetPx > 0 {
		kv = append(kv, fmt.Sprintf("Y=%d", p.YOffsetPx))
	}
	if p.ZIndex != 0 {
		kv = append(kv, fmt.Sprintf("z=%d", p.ZIndex))
	}
	kv = append(kv, "q=2") // suppress terminal OK/error responses

	return apc(strings.Join(kv, ",") + ";" + payload)
}

// EncodeDelete renders a delete command for the given image id.
func EncodeDelete(mode DeleteMode, imageID uint32) []byte {
	control := fmt.Sprintf("a=%c,d=%c,i=%d,q=2", actionDelete, mode, imageID)
	return apc(control)
}

func apc(body string) []byte {
	return []byte("\x1b_G" + body + "\x1b\\")
}
