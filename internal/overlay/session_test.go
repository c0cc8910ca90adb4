package overlay

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/glimt/internal/fade"
	"github.com/jmylchreest/glimt/internal/model"
	"github.com/jmylchreest/glimt/internal/render"
)

type fakePresenter struct {
	mu     sync.Mutex
	frames []*render.Frame
	closed int
	// failNext fails that many Present calls before succeeding again; -1
	// fails forever.
	failNext int
}

func (p *fakePresenter) Present(f *render.Frame) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failNext != 0 {
		if p.failNext > 0 {
			p.failNext--
		}
		return errors.New("surface gone")
	}
	p.frames = append(p.frames, f)
	return nil
}

func (p *fakePresenter) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed++
	return nil
}

func (p *fakePresenter) snapshot() ([]*render.Frame, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*render.Frame(nil), p.frames...), p.closed
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func quickFade() fade.Config {
	return fade.Config{
		FadeIn:  30 * time.Millisecond,
		Hold:    30 * time.Millisecond,
		FadeOut: 30 * time.Millisecond,
		Peak:    0.5,
	}
}

func testOptions(p Presenter) Options {
	return Options{
		Annotation: model.Highlight{Rect: model.Rect{Width: 20, Height: 10}},
		Bounds:     model.Rect{Width: 20, Height: 10},
		Fade:       quickFade(),
		Tick:       3 * time.Millisecond,
		Renderer:   render.NewRenderer(render.DefaultStyle(), nil),
		Presenter:  p,
	}
}

func maxAlpha(frames []*render.Frame) uint8 {
	var max uint8
	for _, f := range frames {
		for i := 3; i < len(f.Image.Pix); i += 4 {
			if f.Image.Pix[i] > max {
				max = f.Image.Pix[i]
			}
		}
	}
	return max
}

func isTransparent(f *render.Frame) bool {
	for i := 3; i < len(f.Image.Pix); i += 4 {
		if f.Image.Pix[i] != 0 {
			return false
		}
	}
	return true
}

func TestNewSessionValidation(t *testing.T) {
	valid := testOptions(&fakePresenter{})

	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"nil annotation", func(o *Options) { o.Annotation = nil }},
		{"invalid annotation", func(o *Options) {
			o.Annotation = model.Highlight{Rect: model.Rect{Width: -1}}
		}},
		{"nil renderer", func(o *Options) { o.Renderer = nil }},
		{"nil presenter", func(o *Options) { o.Presenter = nil }},
		{"bad fade config", func(o *Options) { o.Fade.Peak = 0 }},
		{"negative tick", func(o *Options) { o.Tick = -time.Millisecond }},
		{"negative startup delay", func(o *Options) { o.StartupDelay = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := valid
			tt.mutate(&opts)
			_, err := NewSession(opts)
			assert.Error(t, err)
		})
	}
}

func TestNewSessionDefaults(t *testing.T) {
	opts := testOptions(&fakePresenter{})
	opts.Tick = 0
	opts.Clock = nil
	opts.Logger = nil

	s, err := NewSession(opts)
	require.NoError(t, err)
	assert.Equal(t, DefaultTick, s.tick)
	assert.NotNil(t, s.clock)
	assert.NotNil(t, s.logger)
}

func TestSessionRunFullCycle(t *testing.T) {
	p := &fakePresenter{}
	s, err := NewSession(testOptions(p))
	require.NoError(t, err)

	require.NoError(t, s.Run(context.Background()))

	frames, closed := p.snapshot()
	assert.Equal(t, 1, closed, "presenter closed exactly once")
	require.NotEmpty(t, frames)
	assert.Greater(t, maxAlpha(frames), uint8(0), "annotation became visible")
	assert.True(t, isTransparent(frames[len(frames)-1]), "last frame clears the surface")
}

func TestSessionRunCancelled(t *testing.T) {
	p := &fakePresenter{}
	opts := testOptions(p)
	opts.Fade.Hold = time.Minute

	s, err := NewSession(opts)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Run(ctx) }()

	time.Sleep(40 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("session did not stop after cancel")
	}

	frames, closed := p.snapshot()
	assert.Equal(t, 1, closed)
	require.NotEmpty(t, frames)
	assert.True(t, isTransparent(frames[len(frames)-1]), "cancel clears the surface")
}

func TestSessionStartupDelayCancelled(t *testing.T) {
	p := &fakePresenter{}
	opts := testOptions(p)
	opts.StartupDelay = time.Minute

	s, err := NewSession(opts)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Run(ctx), context.Canceled)

	frames, closed := p.snapshot()
	assert.Empty(t, frames, "no frame before the startup delay elapses")
	assert.Equal(t, 1, closed)
}

func TestSessionChimeFiresOnceAtHold(t *testing.T) {
	p := &fakePresenter{}
	clk := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	opts := testOptions(p)
	opts.Clock = clk
	chimes := 0
	opts.Chime = func() { chimes++ }

	s, err := NewSession(opts)
	require.NoError(t, err)
	s.seq, err = fade.NewSequencer(s.fadeCfg, clk.Now())
	require.NoError(t, err)

	clk.advance(10 * time.Millisecond) // still fading in
	_, err = s.step(clk.Now())
	require.NoError(t, err)
	assert.Zero(t, chimes)

	clk.advance(30 * time.Millisecond) // past fade-in, hold begins
	_, err = s.step(clk.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, chimes)

	clk.advance(5 * time.Millisecond) // still holding
	_, err = s.step(clk.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, chimes, "chime fires only once")
}

func TestSessionStepCompletes(t *testing.T) {
	p := &fakePresenter{}
	clk := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	opts := testOptions(p)
	opts.Clock = clk

	s, err := NewSession(opts)
	require.NoError(t, err)
	s.seq, err = fade.NewSequencer(s.fadeCfg, clk.Now())
	require.NoError(t, err)

	// One transition per step: fading-in, holding, fading-out, done.
	var done bool
	for i := 0; i < 10 && !done; i++ {
		clk.advance(40 * time.Millisecond)
		done, err = s.step(clk.Now())
		require.NoError(t, err)
	}
	require.True(t, done, "session must finish")

	frames, _ := p.snapshot()
	require.NotEmpty(t, frames)
	assert.True(t, isTransparent(frames[len(frames)-1]))
}

func TestSessionPresentRetry(t *testing.T) {
	clk := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	t.Run("single failure recovers", func(t *testing.T) {
		p := &fakePresenter{failNext: 1}
		opts := testOptions(p)
		opts.Clock = clk

		s, err := NewSession(opts)
		require.NoError(t, err)
		s.seq, err = fade.NewSequencer(s.fadeCfg, clk.Now())
		require.NoError(t, err)

		_, err = s.step(clk.Now().Add(time.Millisecond))
		assert.NoError(t, err, "first failure only arms the retry")
		_, err = s.step(clk.Now().Add(2 * time.Millisecond))
		assert.NoError(t, err, "retry succeeded")
		assert.False(t, s.presentFailed)
	})

	t.Run("two consecutive failures abort", func(t *testing.T) {
		p := &fakePresenter{failNext: -1}
		opts := testOptions(p)
		opts.Clock = clk

		s, err := NewSession(opts)
		require.NoError(t, err)
		s.seq, err = fade.NewSequencer(s.fadeCfg, clk.Now())
		require.NoError(t, err)

		_, err = s.step(clk.Now().Add(time.Millisecond))
		require.NoError(t, err)
		_, err = s.step(clk.Now().Add(2 * time.Millisecond))
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrRenderFailure)
	})
}

func TestSessionRenderErrorIsFatal(t *testing.T) {
	p := &fakePresenter{}
	opts := testOptions(p)
	// A popup without a typeface cannot render.
	opts.Annotation = model.Popup{Text: "hi", Anchor: model.Rect{Width: 10, Height: 10}}
	opts.Renderer = render.NewRenderer(render.DefaultStyle(), nil)

	s, err := NewSession(opts)
	require.NoError(t, err)

	err = s.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrRenderFailure)

	_, closed := p.snapshot()
	assert.Equal(t, 1, closed, "presenter still closed on failure")
}
