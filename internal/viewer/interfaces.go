package viewer

import (
	"context"

	"github.com/termweb/termweb/internal/coordmap"
	"github.com/termweb/termweb/internal/renderer"
)

// NavigationSink and RenderSink are the narrow per-handler capability
// interfaces called for by §9's note against a god-object viewer
// parameter: a handler that only navigates never sees render or tab
// methods, and vice versa. TabStore (tabs.go) is the third leg.
//
// Viewer implements all three; shortcut and mode handlers take
// whichever subset they need as parameters instead of the concrete
// *Viewer type.
type NavigationSink interface {
	Navigate(ctx context.Context, url string) error
	Reload(ctx context.Context) error
	Stop(ctx context.Context) error
	Back(ctx context.Context) error
	Forward(ctx context.Context) error
}

type RenderSink interface {
	RenderFrame(m coordmap.Mapper, frame renderer.FrameInput, cursor renderer.CursorInput, toolbar renderer.ToolbarState) error
	MarkUIDirty()
	SetHintMode(on bool)
}
