package screen

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/jmylchreest/glimt/internal/model"
)

// EnvScreens overrides screen discovery with a fixed layout, e.g.
// "1920x1080+0+0,1280x1024+1920+0". The first geometry is the primary.
const EnvScreens = "GLIMT_SCREENS"

// geometryPattern matches one X style geometry: WxH+X+Y with signed offsets.
var geometryPattern = regexp.MustCompile(`^(\d+)x(\d+)([+-]\d+)([+-]\d+)$`)

// Static serves a fixed screen list.
type Static struct {
	screens []model.Screen
}

// NewStatic returns a provider that always reports the given screens.
func NewStatic(screens []model.Screen) *Static {
	return &Static{screens: screens}
}

// Screens implements Provider.
func (s *Static) Screens() ([]model.Screen, error) {
	out := make([]model.Screen, len(s.screens))
	copy(out, s.screens)
	return out, nil
}

// FromEnv builds a static provider from the GLIMT_SCREENS variable. It
// returns nil when the variable is unset or blank.
func FromEnv() (*Static, error) {
	raw := strings.TrimSpace(os.Getenv(EnvScreens))
	if raw == "" {
		return nil, nil
	}
	screens, err := ParseGeometries(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvScreens, err)
	}
	return NewStatic(screens), nil
}

// ParseGeometries parses a comma separated list of WxH+X+Y geometries into
// screens. The first entry becomes the primary.
func ParseGeometries(s string) ([]model.Screen, error) {
	parts := strings.Split(s, ",")
	screens := make([]model.Screen, 0, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		m := geometryPattern.FindStringSubmatch(part)
		if m == nil {
			return nil, fmt.Errorf("invalid screen geometry %q (want WxH+X+Y)", part)
		}
		w, _ := strconv.Atoi(m[1])
		h, _ := strconv.Atoi(m[2])
		x, _ := strconv.Atoi(m[3])
		y, _ := strconv.Atoi(m[4])
		if w == 0 || h == 0 {
			return nil, fmt.Errorf("invalid screen geometry %q: zero size", part)
		}
		screens = append(screens, model.Screen{
			ID:      fmt.Sprintf("screen-%d", i),
			Bounds:  model.Rect{X: x, Y: y, Width: w, Height: h},
			Primary: i == 0,
		})
	}
	return screens, nil
}
