package dbus

import "github.com/jmylchreest/glimt/internal/model"

// DoneReason explains why an annotation session ended, carried by the
// AnnotationDone signal.
type DoneReason uint32

const (
	// DoneCompleted means the fade sequence ran to its end.
	DoneCompleted DoneReason = 1
	// DoneCancelled means the session was stopped early, e.g. daemon shutdown.
	DoneCancelled DoneReason = 2
	// DoneFailed means the session aborted on a render or surface error.
	DoneFailed DoneReason = 3
)

// String returns a human-readable reason.
func (r DoneReason) String() string {
	switch r {
	case DoneCompleted:
		return "completed"
	case DoneCancelled:
		return "cancelled"
	case DoneFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ScreenInfo is the wire form of one screen: (id x y width height primary).
type ScreenInfo struct {
	ID      string
	X       int32
	Y       int32
	Width   int32
	Height  int32
	Primary bool
}

// FromScreens converts model screens to their wire form.
func FromScreens(screens []model.Screen) []ScreenInfo {
	out := make([]ScreenInfo, 0, len(screens))
	for _, s := range screens {
		out = append(out, ScreenInfo{
			ID:      s.ID,
			X:       int32(s.Bounds.X),
			Y:       int32(s.Bounds.Y),
			Width:   int32(s.Bounds.Width),
			Height:  int32(s.Bounds.Height),
			Primary: s.Primary,
		})
	}
	return out
}

// ToScreens converts wire screens back to model screens.
func ToScreens(infos []ScreenInfo) []model.Screen {
	out := make([]model.Screen, 0, len(infos))
	for _, si := range infos {
		out = append(out, model.Screen{
			ID: si.ID,
			Bounds: model.Rect{
				X:      int(si.X),
				Y:      int(si.Y),
				Width:  int(si.Width),
				Height: int(si.Height),
			},
			Primary: si.Primary,
		})
	}
	return out
}

// StatusInfo is the daemon state snapshot behind the Status method.
type StatusInfo struct {
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
	Active  uint32 `json:"active"`
	Served  uint64 `json:"served"`
}
