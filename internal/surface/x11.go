package surface

import (
	"fmt"
	"image"

	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xgraphics"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/jmylchreest/glimt/internal/model"
	"github.com/jmylchreest/glimt/internal/render"
)

// windowName labels the overlay window for tools like xwininfo.
const windowName = "glimt"

// X11Window presents frames on a borderless, always-on-top, click-through
// window. Per-pixel transparency without a compositor is faked: the desktop
// under the window is captured before mapping and every frame is blended
// over that snapshot.
type X11Window struct {
	xu     *xgbutil.XUtil
	win    *xwindow.Window
	canvas *xgraphics.Image
	// backdrop holds the desktop pixels the window covers, as opaque RGB.
	backdrop *image.NRGBA
	bounds   model.Rect
	closed   bool
}

// NewX11Window opens an overlay window covering bounds (global desktop
// coordinates). The window is mapped immediately, showing the captured
// backdrop, so callers should present a frame promptly.
func NewX11Window(bounds model.Rect) (*X11Window, error) {
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return nil, fmt.Errorf("%w: window size %dx%d", model.ErrInvalidArguments, bounds.Width, bounds.Height)
	}

	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to display: %w", err)
	}

	// Snapshot the desktop before the window exists so the overlay never
	// captures itself.
	backdrop := captureRoot(xu, bounds)

	win, err := xwindow.Generate(xu)
	if err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("allocate window id: %w", err)
	}
	// Value order follows the mask bits: back pixel, then override redirect.
	err = win.CreateChecked(xu.RootWin(), bounds.X, bounds.Y, bounds.Width, bounds.Height,
		xproto.CwBackPixel|xproto.CwOverrideRedirect, 0, 1)
	if err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("create window: %w", err)
	}

	// An empty input region lets every click fall through to whatever is
	// underneath the annotation. Click-through is required, so a display
	// without the shape extension is an error.
	if err := shape.Init(xu.Conn()); err != nil {
		win.Destroy()
		xu.Conn().Close()
		return nil, fmt.Errorf("shape extension: %w", err)
	}
	if err := shape.RectanglesChecked(xu.Conn(), shape.SoSet, shape.SkInput, 0,
		win.Id, 0, 0, nil).Check(); err != nil {
		win.Destroy()
		xu.Conn().Close()
		return nil, fmt.Errorf("set input shape: %w", err)
	}

	// Hints are advisory for override-redirect windows but keep compositors
	// and taskbars treating the overlay as a transient notification.
	ewmh.WmWindowTypeSet(xu, win.Id, []string{"_NET_WM_WINDOW_TYPE_NOTIFICATION"})
	ewmh.WmStateSet(xu, win.Id, []string{"_NET_WM_STATE_ABOVE", "_NET_WM_STATE_SKIP_TASKBAR"})
	ewmh.WmNameSet(xu, win.Id, windowName)

	canvas := xgraphics.New(xu, image.Rect(0, 0, bounds.Width, bounds.Height))
	if err := canvas.XSurfaceSet(win.Id); err != nil {
		canvas.Destroy()
		win.Destroy()
		xu.Conn().Close()
		return nil, fmt.Errorf("attach surface: %w", err)
	}

	win.Map()
	win.Stack(xproto.StackModeAbove)

	return &X11Window{
		xu:       xu,
		win:      win,
		canvas:   canvas,
		backdrop: backdrop,
		bounds:   bounds,
	}, nil
}

// Present implements overlay.Presenter. The frame is alpha-blended over the
// desktop backdrop and pushed to the window in one draw.
func (w *X11Window) Present(frame *render.Frame) error {
	if w.closed {
		return fmt.Errorf("%w: window closed", model.ErrRenderFailure)
	}
	fb := frame.Image.Bounds()
	if fb.Dx() != w.bounds.Width || fb.Dy() != w.bounds.Height {
		return fmt.Errorf("%w: frame size %dx%d does not match window %dx%d",
			model.ErrInvalidArguments, fb.Dx(), fb.Dy(), w.bounds.Width, w.bounds.Height)
	}

	for y := 0; y < w.bounds.Height; y++ {
		so := frame.Image.PixOffset(0, y)
		bo := w.backdrop.PixOffset(0, y)
		do := y * w.canvas.Stride
		for x := 0; x < w.bounds.Width; x++ {
			r, g, b := blendOver(
				frame.Image.Pix[so], frame.Image.Pix[so+1], frame.Image.Pix[so+2], frame.Image.Pix[so+3],
				w.backdrop.Pix[bo], w.backdrop.Pix[bo+1], w.backdrop.Pix[bo+2],
			)
			// xgraphics stores BGRA.
			w.canvas.Pix[do] = b
			w.canvas.Pix[do+1] = g
			w.canvas.Pix[do+2] = r
			w.canvas.Pix[do+3] = 0xff
			so += 4
			bo += 4
			do += 4
		}
	}

	w.canvas.XDraw()
	w.canvas.XPaint(w.win.Id)
	return nil
}

// Close implements overlay.Presenter. Closing twice is a no-op.
func (w *X11Window) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.canvas.Destroy()
	w.win.Destroy()
	// Round-trip before dropping the connection so the destroy is flushed.
	w.xu.Sync()
	w.xu.Conn().Close()
	return nil
}

// blendOver composes one straight-alpha source pixel over an opaque
// background pixel.
func blendOver(sr, sg, sb, sa, br, bg, bb uint8) (uint8, uint8, uint8) {
	switch sa {
	case 0:
		return br, bg, bb
	case 255:
		return sr, sg, sb
	}
	a := uint32(sa)
	ia := 255 - a
	r := (uint32(sr)*a + uint32(br)*ia + 127) / 255
	g := (uint32(sg)*a + uint32(bg)*ia + 127) / 255
	b := (uint32(sb)*a + uint32(bb)*ia + 127) / 255
	return uint8(r), uint8(g), uint8(b)
}

// captureRoot grabs the desktop pixels under bounds. Regions outside the
// root geometry stay black, as does everything when the grab fails; the
// overlay then blends over black instead of erroring out.
func captureRoot(xu *xgbutil.XUtil, bounds model.Rect) *image.NRGBA {
	backdrop := image.NewNRGBA(image.Rect(0, 0, bounds.Width, bounds.Height))
	for i := 3; i < len(backdrop.Pix); i += 4 {
		backdrop.Pix[i] = 0xff
	}

	scr := xu.Screen()
	rootRect := model.Rect{Width: int(scr.WidthInPixels), Height: int(scr.HeightInPixels)}
	grab, ok := clipRect(bounds, rootRect)
	if !ok {
		return backdrop
	}

	reply, err := xproto.GetImage(xu.Conn(), xproto.ImageFormatZPixmap,
		xproto.Drawable(xu.RootWin()),
		int16(grab.X), int16(grab.Y), uint16(grab.Width), uint16(grab.Height),
		0xffffffff).Reply()
	if err != nil || (reply.Depth != 24 && reply.Depth != 32) {
		return backdrop
	}

	// ZPixmap rows at depth 24/32 are 4 bytes per pixel, BGRX.
	data := reply.Data
	for y := 0; y < grab.Height; y++ {
		dst := backdrop.PixOffset(grab.X-bounds.X, grab.Y-bounds.Y+y)
		src := y * grab.Width * 4
		if src+grab.Width*4 > len(data) {
			break
		}
		for x := 0; x < grab.Width; x++ {
			backdrop.Pix[dst] = data[src+2]
			backdrop.Pix[dst+1] = data[src+1]
			backdrop.Pix[dst+2] = data[src]
			backdrop.Pix[dst+3] = 0xff
			dst += 4
			src += 4
		}
	}
	return backdrop
}

// clipRect intersects r with clip, reporting false when they do not overlap.
func clipRect(r, clip model.Rect) (model.Rect, bool) {
	x1, y1 := r.X, r.Y
	x2, y2 := r.X+r.Width, r.Y+r.Height
	if x1 < clip.X {
		x1 = clip.X
	}
	if y1 < clip.Y {
		y1 = clip.Y
	}
	if x2 > clip.X+clip.Width {
		x2 = clip.X + clip.Width
	}
	if y2 > clip.Y+clip.Height {
		y2 = clip.Y + clip.Height
	}
	if x1 >= x2 || y1 >= y2 {
		return model.Rect{}, false
	}
	return model.Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}, true
}
