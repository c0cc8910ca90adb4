package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmylchreest/glimt/internal/config"
	"github.com/jmylchreest/glimt/internal/fade"
	"github.com/jmylchreest/glimt/internal/geometry"
	"github.com/jmylchreest/glimt/internal/model"
	"github.com/jmylchreest/glimt/internal/overlay"
	"github.com/jmylchreest/glimt/internal/render"
	"github.com/jmylchreest/glimt/internal/screen"
	"github.com/jmylchreest/glimt/internal/surface"
	"github.com/jmylchreest/glimt/internal/typeface"
)

// sessionPlan is the resolved geometry and timing for one annotation.
type sessionPlan struct {
	bounds model.Rect
	fade   fade.Config
	delay  time.Duration
}

// buildPlan computes where and how an annotation is displayed. Highlights
// are drawn exactly at their rect; popups are placed relative to their
// anchor on the resolved screen. face is only consulted for popups.
func buildPlan(cfg *config.Config, a model.Annotation, screens []model.Screen, face *typeface.Face) (sessionPlan, error) {
	switch v := a.(type) {
	case model.Highlight:
		// Highlights keep their absolute coordinates; resolution only
		// confirms a display exists for the rect.
		if _, err := geometry.ResolveScreen(v.Rect, screens); err != nil {
			return sessionPlan{}, err
		}
		return sessionPlan{
			bounds: v.Rect,
			fade:   cfg.HighlightFade(),
		}, nil

	case model.Popup:
		scr, err := geometry.ResolveScreen(v.Anchor, screens)
		if err != nil {
			return sessionPlan{}, err
		}
		width, height := geometry.PopupSize(v.Text, face)
		return sessionPlan{
			bounds: geometry.PlacePopup(v.Anchor, scr, width, height),
			fade:   cfg.PopupFade(),
			delay:  cfg.Popup.StartupDelay.Duration(),
		}, nil

	default:
		return sessionPlan{}, fmt.Errorf("%w: unknown annotation kind %q", model.ErrInvalidArguments, a.Kind())
	}
}

// assemble validates the annotation, resolves its plan and opens its
// surface. The returned session is ready to Run; the caller owns launching
// it. chime may be nil.
func assemble(cfg *config.Config, provider screen.Provider, a model.Annotation, chime func(), logger *slog.Logger) (*overlay.Session, error) {
	if err := model.Validate(a); err != nil {
		return nil, err
	}

	var face *typeface.Face
	if _, ok := a.(model.Popup); ok {
		var err error
		face, err = typeface.New(cfg.Popup.FontSize)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrRenderFailure, err)
		}
	}

	screens, err := provider.Screens()
	if err != nil {
		return nil, fmt.Errorf("discover screens: %w", err)
	}

	plan, err := buildPlan(cfg, a, screens, face)
	if err != nil {
		return nil, err
	}

	backend, err := surface.ParseBackend(cfg.Output.Backend)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidArguments, err)
	}
	presenter, err := surface.New(backend, plan.bounds, cfg.Output.FrameDir)
	if err != nil {
		return nil, fmt.Errorf("%w: open surface: %v", model.ErrRenderFailure, err)
	}

	session, err := overlay.NewSession(overlay.Options{
		Annotation:   a,
		Bounds:       plan.bounds,
		Fade:         plan.fade,
		Tick:         cfg.Animation.Tick.Duration(),
		StartupDelay: plan.delay,
		Renderer:     render.NewRenderer(cfg.Style(), face),
		Presenter:    presenter,
		Logger:       logger,
		Chime:        chime,
	})
	if err != nil {
		presenter.Close()
		return nil, err
	}
	return session, nil
}

// RunOnce displays a single annotation synchronously. It is the path behind
// the one-shot CLI: no daemon, no bus, one session from fade-in to clear.
func RunOnce(ctx context.Context, cfg *config.Config, provider screen.Provider, a model.Annotation, chime func(), logger *slog.Logger) error {
	session, err := assemble(cfg, provider, a, chime, logger)
	if err != nil {
		return err
	}
	return session.Run(ctx)
}
