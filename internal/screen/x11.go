package screen

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xinerama"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/jmylchreest/glimt/internal/model"
)

// X11 queries the display server for the monitor layout. Each call opens a
// short-lived connection so the provider survives display restarts.
type X11 struct{}

// NewX11 returns an X11 backed provider using the DISPLAY environment.
func NewX11() *X11 {
	return &X11{}
}

// Screens implements Provider. Monitors come from the Xinerama extension;
// without it the root window geometry is reported as a single primary screen.
func (p *X11) Screens() ([]model.Screen, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to display: %w", err)
	}
	defer conn.Close()

	if err := xinerama.Init(conn); err == nil {
		reply, err := xinerama.QueryScreens(conn).Reply()
		if err == nil && len(reply.ScreenInfo) > 0 {
			screens := make([]model.Screen, 0, len(reply.ScreenInfo))
			for i, info := range reply.ScreenInfo {
				screens = append(screens, model.Screen{
					ID: fmt.Sprintf("xinerama-%d", i),
					Bounds: model.Rect{
						X:      int(info.XOrg),
						Y:      int(info.YOrg),
						Width:  int(info.Width),
						Height: int(info.Height),
					},
					// Xinerama lists the primary output first.
					Primary: i == 0,
				})
			}
			return screens, nil
		}
	}

	root := xproto.Setup(conn).DefaultScreen(conn)
	return []model.Screen{{
		ID: "root",
		Bounds: model.Rect{
			Width:  int(root.WidthInPixels),
			Height: int(root.HeightInPixels),
		},
		Primary: true,
	}}, nil
}
