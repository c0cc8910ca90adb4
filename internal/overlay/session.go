package overlay

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmylchreest/glimt/internal/fade"
	"github.com/jmylchreest/glimt/internal/model"
	"github.com/jmylchreest/glimt/internal/render"
)

// DefaultTick is the frame interval used when Options.Tick is unset.
const DefaultTick = 10 * time.Millisecond

// Options configures a single annotation session.
type Options struct {
	// Annotation is the payload to display.
	Annotation model.Annotation

	// Bounds is the frame region in global desktop coordinates, already
	// resolved by the caller (the highlight rect or the placed popup).
	Bounds model.Rect

	// Fade fixes the opacity envelope.
	Fade fade.Config

	// Tick is the frame interval. Zero selects DefaultTick.
	Tick time.Duration

	// StartupDelay pauses the session before the first frame so a popup can
	// let the triggering interaction settle. Zero starts immediately.
	StartupDelay time.Duration

	// Renderer rasterizes frames, Presenter puts them on screen.
	Renderer  *render.Renderer
	Presenter Presenter

	// Clock defaults to SystemClock, Logger to slog.Default().
	Clock  Clock
	Logger *slog.Logger

	// Chime, when set, runs once as the hold phase begins.
	Chime func()
}

// Session drives one annotation through fade-in, hold and fade-out. It is
// single use: create it, call Run once, discard it.
type Session struct {
	annotation   model.Annotation
	bounds       model.Rect
	fadeCfg      fade.Config
	tick         time.Duration
	startupDelay time.Duration
	renderer     *render.Renderer
	presenter    Presenter
	clock        Clock
	logger       *slog.Logger
	chime        func()

	seq       *fade.Sequencer
	lastPhase fade.Phase
	chimed    bool
	// presentFailed marks a failed Present so the next tick becomes the one
	// retry before the session gives up.
	presentFailed bool
}

// NewSession validates the options and prepares a session. The presenter is
// not touched until Run.
func NewSession(opts Options) (*Session, error) {
	if opts.Annotation == nil {
		return nil, fmt.Errorf("%w: no annotation", model.ErrInvalidArguments)
	}
	if err := model.Validate(opts.Annotation); err != nil {
		return nil, err
	}
	if opts.Renderer == nil {
		return nil, fmt.Errorf("%w: no renderer", model.ErrInvalidArguments)
	}
	if opts.Presenter == nil {
		return nil, fmt.Errorf("%w: no presenter", model.ErrInvalidArguments)
	}
	if err := opts.Fade.Validate(); err != nil {
		return nil, err
	}
	if opts.Tick < 0 || opts.StartupDelay < 0 {
		return nil, fmt.Errorf("%w: negative timing", model.ErrInvalidArguments)
	}
	if opts.Tick == 0 {
		opts.Tick = DefaultTick
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Session{
		annotation:   opts.Annotation,
		bounds:       opts.Bounds,
		fadeCfg:      opts.Fade,
		tick:         opts.Tick,
		startupDelay: opts.StartupDelay,
		renderer:     opts.Renderer,
		presenter:    opts.Presenter,
		clock:        opts.Clock,
		logger:       opts.Logger.With("kind", opts.Annotation.Kind()),
		chime:        opts.Chime,
	}, nil
}

// Run displays the annotation until the fade sequence completes or ctx is
// cancelled. Either way the surface is cleared and the presenter closed
// before Run returns.
func (s *Session) Run(ctx context.Context) error {
	defer func() {
		if err := s.presenter.Close(); err != nil {
			s.logger.Warn("presenter close failed", "error", err)
		}
	}()

	if s.startupDelay > 0 {
		delay := time.NewTimer(s.startupDelay)
		defer delay.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-delay.C:
		}
	}

	seq, err := fade.NewSequencer(s.fadeCfg, s.clock.Now())
	if err != nil {
		return err
	}
	s.seq = seq
	s.lastPhase = fade.FadingIn
	s.logger.Debug("session started",
		"bounds", s.bounds.String(),
		"peak", s.fadeCfg.Peak)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.clear()
			return ctx.Err()
		case <-ticker.C:
			done, err := s.step(s.clock.Now())
			if err != nil {
				s.clear()
				return err
			}
			if done {
				return nil
			}
		}
	}
}

// step advances the session by one tick. It reports done when the fade
// sequence has finished and the surface was cleared.
func (s *Session) step(now time.Time) (bool, error) {
	phase, opacity := s.seq.Tick(now)
	if phase != s.lastPhase {
		s.logger.Debug("phase changed", "phase", phase.String(), "opacity", opacity)
		s.lastPhase = phase
	}

	if phase == fade.Holding && !s.chimed {
		s.chimed = true
		if s.chime != nil {
			s.chime()
		}
	}

	if phase == fade.Done {
		s.clear()
		return true, nil
	}

	frame, err := s.renderer.Render(s.annotation, opacity, s.bounds)
	if err != nil {
		return false, err
	}
	if err := s.presenter.Present(frame); err != nil {
		if s.presentFailed {
			return false, fmt.Errorf("%w: present: %v", model.ErrRenderFailure, err)
		}
		s.presentFailed = true
		s.logger.Warn("present failed, retrying next tick", "error", err)
		return false, nil
	}
	s.presentFailed = false
	return false, nil
}

// clear presents one fully transparent frame so nothing of the annotation
// survives the session.
func (s *Session) clear() {
	frame, err := s.renderer.Render(s.annotation, 0, s.bounds)
	if err != nil {
		return
	}
	if err := s.presenter.Present(frame); err != nil {
		s.logger.Debug("final clear failed", "error", err)
	}
}
