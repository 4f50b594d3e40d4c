package wire

// ScreencastFrameParams is the payload of Page.screencastFrame events.
// Data is base64-encoded image bytes per the CDP wire format; decoding
// happens in internal/browser before the bytes reach the frame pool.
type ScreencastFrameParams struct {
	Data      string              `json:"data"`
	Metadata  ScreencastFrameMeta `json:"metadata"`
	SessionID int                 `json:"sessionId"`
}

// ScreencastFrameMeta carries the device dimensions and browser-side
// timestamp needed by the adaptive controller and frame pool.
type ScreencastFrameMeta struct {
	DeviceWidth  int     `json:"deviceWidth"`
	DeviceHeight int     `json:"deviceHeight"`
	Timestamp    float64 `json:"timestamp"` // seconds since epoch, CDP convention
}

// Viewport is the Page.setDeviceMetricsOverride / Emulation payload for
// SetViewport.
type Viewport struct {
	Width             int     `json:"width"`
	Height            int     `json:"height"`
	DeviceScaleFactor float64 `json:"deviceScaleFactor"`
	Mobile            bool    `json:"mobile"`
}

// TargetInfo mirrors Target.TargetInfo, the shape carried by
// Target.targetCreated / targetInfoChanged events.
type TargetInfo struct {
	TargetID string `json:"targetId"`
	Type     string `json:"type"`
	URL      string `json:"url"`
	Title    string `json:"title"`
	Attached bool   `json:"attached"`
}

// TargetCreatedParams / TargetInfoChangedParams wrap TargetInfo the way
// the CDP Target domain emits it.
type TargetCreatedParams struct {
	TargetInfo TargetInfo `json:"targetInfo"`
}

type TargetInfoChangedParams struct {
	TargetInfo TargetInfo `json:"targetInfo"`
}

type TargetDestroyedParams struct {
	TargetID string `json:"targetId"`
}

// AttachToTargetResult is the result shape of Target.attachToTarget.
type AttachToTargetResult struct {
	SessionID string `json:"sessionId"`
}

// DownloadWillBeginParams / DownloadProgressParams mirror
// Browser.downloadWillBegin / Browser.downloadProgress.
type DownloadWillBeginParams struct {
	GUID          string `json:"guid"`
	URL           string `json:"url"`
	SuggestedFile string `json:"suggestedFilename"`
}

type DownloadProgressParams struct {
	GUID          string  `json:"guid"`
	TotalBytes    float64 `json:"totalBytes"`
	ReceivedBytes float64 `json:"receivedBytes"`
	State         string  `json:"state"` // "inProgress" | "completed" | "canceled"
}

// DownloadState is SPEC_FULL's supplemented small state the renderer
// uses to draw a download inset bar. It is not itself a CDP type.
type DownloadState struct {
	Active        bool
	Filename      string
	TotalBytes    float64
	ReceivedBytes float64
	Done          bool
}

// Fraction returns the download's completion ratio in [0, 1], or 0 if
// the total size is unknown.
func (d DownloadState) Fraction() float64 {
	if d.TotalBytes <= 0 {
		return 0
	}
	f := d.ReceivedBytes / d.TotalBytes
	if f > 1 {
		f = 1
	}
	return f
}

// NavState mirrors spec §3's NavState entity.
type NavState struct {
	CanGoBack          bool
	CanGoForward       bool
	IsLoading          bool
	LoadingStartedAtMs int64
}
