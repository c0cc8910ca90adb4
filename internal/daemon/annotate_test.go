package daemon

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/glimt/internal/config"
	"github.com/jmylchreest/glimt/internal/geometry"
	"github.com/jmylchreest/glimt/internal/model"
	"github.com/jmylchreest/glimt/internal/screen"
	"github.com/jmylchreest/glimt/internal/typeface"
)

func testScreens() []model.Screen {
	return []model.Screen{
		{ID: "screen-0", Bounds: model.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}, Primary: true},
	}
}

// quickConfig returns defaults with animation timings short enough for tests
// and frames written to a temp directory instead of a real window.
func quickConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Highlight.FadeIn = config.Duration(15 * time.Millisecond)
	cfg.Highlight.Hold = config.Duration(15 * time.Millisecond)
	cfg.Popup.FadeIn = config.Duration(15 * time.Millisecond)
	cfg.Popup.Hold = config.Duration(15 * time.Millisecond)
	cfg.Popup.StartupDelay = config.Duration(5 * time.Millisecond)
	cfg.Animation.FadeOut = config.Duration(15 * time.Millisecond)
	cfg.Animation.Tick = config.Duration(5 * time.Millisecond)
	cfg.Output.Backend = "png"
	cfg.Output.FrameDir = t.TempDir()
	return cfg
}

func TestBuildPlanHighlight(t *testing.T) {
	cfg := config.DefaultConfig()
	h := model.Highlight{Rect: model.Rect{X: 100, Y: 200, Width: 50, Height: 50}}

	plan, err := buildPlan(cfg, h, testScreens(), nil)
	require.NoError(t, err)

	assert.Equal(t, h.Rect, plan.bounds, "highlights draw exactly at their rect")
	assert.Equal(t, cfg.HighlightFade(), plan.fade)
	assert.Zero(t, plan.delay)
}

func TestBuildPlanHighlightNoScreens(t *testing.T) {
	cfg := config.DefaultConfig()
	h := model.Highlight{Rect: model.Rect{X: 100, Y: 200, Width: 50, Height: 50}}

	_, err := buildPlan(cfg, h, nil, nil)
	assert.ErrorIs(t, err, model.ErrNoScreenFound)
}

func TestBuildPlanPopup(t *testing.T) {
	cfg := config.DefaultConfig()
	face, err := typeface.New(cfg.Popup.FontSize)
	require.NoError(t, err)

	anchor := model.Rect{X: 900, Y: 500, Width: 50, Height: 50}
	plan, err := buildPlan(cfg, model.Popup{Text: "over here", Anchor: anchor}, testScreens(), face)
	require.NoError(t, err)

	assert.Equal(t, geometry.PopupHeight, plan.bounds.Height)
	assert.GreaterOrEqual(t, plan.bounds.Width, geometry.MinPopupWidth)
	assert.Equal(t, cfg.PopupFade(), plan.fade)
	assert.Equal(t, cfg.Popup.StartupDelay.Duration(), plan.delay)

	scr := testScreens()[0].Bounds
	assert.True(t, scr.Contains(model.Point{X: plan.bounds.X, Y: plan.bounds.Y}),
		"popup %s should sit on the screen", plan.bounds)
	assert.True(t, scr.Contains(model.Point{
		X: plan.bounds.X + plan.bounds.Width - 1,
		Y: plan.bounds.Y + plan.bounds.Height - 1,
	}), "popup %s should sit on the screen", plan.bounds)
}

func TestBuildPlanPopupNoScreens(t *testing.T) {
	cfg := config.DefaultConfig()
	face, err := typeface.New(cfg.Popup.FontSize)
	require.NoError(t, err)

	_, err = buildPlan(cfg, model.Popup{Text: "hi", Anchor: model.Rect{X: 0, Y: 0, Width: 10, Height: 10}}, nil, face)
	assert.ErrorIs(t, err, model.ErrNoScreenFound)
}

func TestRunOnceHighlight(t *testing.T) {
	cfg := quickConfig(t)
	provider := screen.NewStatic(testScreens())
	h := model.Highlight{Rect: model.Rect{X: 10, Y: 10, Width: 40, Height: 20}}

	err := RunOnce(context.Background(), cfg, provider, h, nil, slog.Default())
	require.NoError(t, err)

	frames, err := filepath.Glob(filepath.Join(cfg.Output.FrameDir, "frame-*.png"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(frames), 3, "a full fade cycle should write several frames")
}

func TestRunOncePopup(t *testing.T) {
	cfg := quickConfig(t)
	provider := screen.NewStatic(testScreens())
	p := model.Popup{Text: "saved", Anchor: model.Rect{X: 800, Y: 400, Width: 30, Height: 30}}

	chimed := 0
	err := RunOnce(context.Background(), cfg, provider, p, func() { chimed++ }, slog.Default())
	require.NoError(t, err)

	assert.Equal(t, 1, chimed, "the chime plays once when the popup reaches full opacity")

	frames, err := filepath.Glob(filepath.Join(cfg.Output.FrameDir, "frame-*.png"))
	require.NoError(t, err)
	assert.NotEmpty(t, frames)
}

func TestRunOnceRejectsInvalidAnnotation(t *testing.T) {
	cfg := quickConfig(t)
	provider := screen.NewStatic(testScreens())

	err := RunOnce(context.Background(), cfg, provider, model.Highlight{}, nil, slog.Default())
	assert.ErrorIs(t, err, model.ErrInvalidArguments)
}

func TestRunOncePopupWithoutScreens(t *testing.T) {
	cfg := quickConfig(t)
	provider := screen.NewStatic(nil)

	err := RunOnce(context.Background(), cfg, provider,
		model.Popup{Text: "hi", Anchor: model.Rect{X: 0, Y: 0, Width: 10, Height: 10}}, nil, slog.Default())
	assert.ErrorIs(t, err, model.ErrNoScreenFound)
}

func TestRunOnceCancelled(t *testing.T) {
	cfg := quickConfig(t)
	cfg.Highlight.Hold = config.Duration(time.Minute)
	provider := screen.NewStatic(testScreens())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	err := RunOnce(ctx, cfg, provider,
		model.Highlight{Rect: model.Rect{X: 0, Y: 0, Width: 10, Height: 10}}, nil, slog.Default())
	assert.ErrorIs(t, err, context.Canceled)
}
