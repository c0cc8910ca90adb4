// Package fade implements the time-driven opacity state machine that takes
// an annotation through fade-in, hold, and fade-out.
package fade

import (
	"errors"
	"fmt"
	"time"
)

// Phase is one step of the fade lifecycle. Phases only move forward and are
// never revisited.
type Phase int

const (
	// FadingIn ramps opacity linearly from 0 to the peak.
	FadingIn Phase = iota

	// Holding keeps opacity constant at the peak.
	Holding

	// FadingOut ramps opacity linearly from the peak back to 0.
	FadingOut

	// Done is terminal: opacity is 0 and the session should end.
	Done
)

// String returns the phase name used in logs.
func (p Phase) String() string {
	switch p {
	case FadingIn:
		return "fading-in"
	case Holding:
		return "holding"
	case FadingOut:
		return "fading-out"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// ErrInvalidConfig is returned when a sequencer is constructed with
// non-positive durations or a peak outside (0, 1].
var ErrInvalidConfig = errors.New("invalid fade config")

// Config fixes a sequencer's timing and peak opacity at construction.
type Config struct {
	// FadeIn, Hold, and FadeOut are the three phase durations.
	FadeIn  time.Duration
	Hold    time.Duration
	FadeOut time.Duration

	// Peak is the opacity reached at the end of fade-in, in (0, 1].
	Peak float64
}

// Validate checks the configuration a sequencer would be built from.
func (c Config) Validate() error {
	if c.FadeIn <= 0 || c.Hold <= 0 || c.FadeOut <= 0 {
		return fmt.Errorf("%w: durations must be positive (fade-in %v, hold %v, fade-out %v)",
			ErrInvalidConfig, c.FadeIn, c.Hold, c.FadeOut)
	}
	if c.Peak <= 0 || c.Peak > 1 {
		return fmt.Errorf("%w: peak %v outside (0, 1]", ErrInvalidConfig, c.Peak)
	}
	return nil
}

// Sequencer produces the opacity for each tick of an annotation's lifetime.
// It is purely a function of the timestamps passed to Tick, holds no
// rendering state, and is not safe for concurrent use. One sequencer serves
// exactly one annotation.
type Sequencer struct {
	cfg        Config
	phase      Phase
	phaseStart time.Time
}

// NewSequencer returns a sequencer that enters FadingIn at start.
func NewSequencer(cfg Config, start time.Time) (*Sequencer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Sequencer{cfg: cfg, phase: FadingIn, phaseStart: start}, nil
}

// Phase returns the current phase without advancing the sequencer.
func (s *Sequencer) Phase() Phase { return s.phase }

// Tick advances the sequencer to now and returns the phase and the opacity
// to render. At most one transition happens per call; on transition the
// phase clock restarts at now. Repeated calls at the same instant return the
// same result, and for increasing now the opacity never decreases during
// FadingIn nor increases during FadingOut.
func (s *Sequencer) Tick(now time.Time) (Phase, float64) {
	elapsed := now.Sub(s.phaseStart)
	if elapsed < 0 {
		elapsed = 0
	}

	switch s.phase {
	case FadingIn:
		if elapsed >= s.cfg.FadeIn {
			s.advance(Holding, now)
			return s.phase, s.cfg.Peak
		}
		return s.phase, s.cfg.Peak * float64(elapsed) / float64(s.cfg.FadeIn)

	case Holding:
		if elapsed >= s.cfg.Hold {
			s.advance(FadingOut, now)
		}
		return s.phase, s.cfg.Peak

	case FadingOut:
		if elapsed >= s.cfg.FadeOut {
			s.advance(Done, now)
			return s.phase, 0
		}
		opacity := s.cfg.Peak * (1 - float64(elapsed)/float64(s.cfg.FadeOut))
		if opacity < 0 {
			opacity = 0
		}
		return s.phase, opacity

	default:
		return Done, 0
	}
}

func (s *Sequencer) advance(next Phase, now time.Time) {
	s.phase = next
	s.phaseStart = now
}
