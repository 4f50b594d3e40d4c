package browser

import (
	"context"

	"github.com/termweb/termweb/internal/rpc"
)

// SubscribeDownloads returns the raw event subscription for
// Browser.downloadWillBegin / Browser.downloadProgress; callers decode
// params into wire.DownloadWillBeginParams / DownloadProgressParams and
// fold them into a wire.DownloadState for the renderer's inset bar
// (SPEC_FULL's supplemented feature).
func (s *Session) SubscribeDownloads() *rpc.Subscription {
	return s.client.SubscribeEvents("Browser.download")
}

// SetDownloadBehavior issues Browser.setDownloadBehavior so downloads
// are reported via events rather than a native save dialog.
func (s *Session) SetDownloadBehavior(ctx context.Context, behavior, downloadPath string) error {
	_, err := s.client.Call(ctx, "Browser.setDownloadBehavior", map[string]string{
		"behavior":     behavior,
		"downloadPath": downloadPath,
	})
	return err
}
