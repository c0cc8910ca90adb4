package dbus

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/glimt/internal/model"
)

func TestDoneReasonString(t *testing.T) {
	assert.Equal(t, "completed", DoneCompleted.String())
	assert.Equal(t, "cancelled", DoneCancelled.String())
	assert.Equal(t, "failed", DoneFailed.String())
	assert.Equal(t, "unknown", DoneReason(99).String())
}

func TestScreenConversionRoundTrip(t *testing.T) {
	screens := []model.Screen{
		{ID: "xinerama-0", Bounds: model.Rect{Width: 1920, Height: 1080}, Primary: true},
		{ID: "xinerama-1", Bounds: model.Rect{X: 1920, Y: -120, Width: 1280, Height: 1024}},
	}

	infos := FromScreens(screens)
	assert.Len(t, infos, 2)
	assert.Equal(t, int32(-120), infos[1].Y)
	assert.True(t, infos[0].Primary)

	back := ToScreens(infos)
	assert.Equal(t, screens, back)
}

func TestServerHandlersUnset(t *testing.T) {
	s := NewServer(nil)

	_, derr := s.Highlight(0, 0, 10, 10)
	assert.NotNil(t, derr)

	_, derr = s.Popup("hi", 0, 0, 10, 10)
	assert.NotNil(t, derr)

	_, derr = s.ListScreens()
	assert.NotNil(t, derr)

	_, _, _, _, derr = s.Status()
	assert.NotNil(t, derr)
}

func TestServerMethodsDispatch(t *testing.T) {
	s := NewServer(nil)

	var got model.Annotation
	s.SetAnnotateHandler(func(a model.Annotation) (string, error) {
		got = a
		return "01ARZ3NDEKTSV4RRFFQ69G5FAV", nil
	})
	s.SetScreensHandler(func() ([]model.Screen, error) {
		return []model.Screen{{ID: "root", Bounds: model.Rect{Width: 800, Height: 600}, Primary: true}}, nil
	})
	s.SetStatusHandler(func() StatusInfo {
		return StatusInfo{Version: "1.2.3", Uptime: "5 minutes", Active: 2, Served: 17}
	})

	id, derr := s.Highlight(100, 200, 50, 50)
	assert.Nil(t, derr)
	assert.Equal(t, "01ARZ3NDEKTSV4RRFFQ69G5FAV", id)
	assert.Equal(t, model.Highlight{Rect: model.Rect{X: 100, Y: 200, Width: 50, Height: 50}}, got)

	_, derr = s.Popup("deploy done", 10, 20, 30, 40)
	assert.Nil(t, derr)
	popup, ok := got.(model.Popup)
	assert.True(t, ok)
	assert.Equal(t, "deploy done", popup.Text)
	assert.Equal(t, model.Rect{X: 10, Y: 20, Width: 30, Height: 40}, popup.Anchor)

	screens, derr := s.ListScreens()
	assert.Nil(t, derr)
	assert.Len(t, screens, 1)
	assert.Equal(t, "root", screens[0].ID)

	version, uptime, active, served, derr := s.Status()
	assert.Nil(t, derr)
	assert.Equal(t, "1.2.3", version)
	assert.Equal(t, "5 minutes", uptime)
	assert.Equal(t, uint32(2), active)
	assert.Equal(t, uint64(17), served)
}
