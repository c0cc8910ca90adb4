package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/glimt/internal/audio"
	"github.com/jmylchreest/glimt/internal/config"
	"github.com/jmylchreest/glimt/internal/dbus"
	"github.com/jmylchreest/glimt/internal/model"
	"github.com/jmylchreest/glimt/internal/screen"
)

// Daemon owns the D-Bus server and runs one overlay session per accepted
// annotation request. Sessions run concurrently, each on its own goroutine
// with its own surface.
type Daemon struct {
	logger  *slog.Logger
	version string

	mu       sync.RWMutex
	cfg      *config.Config
	provider screen.Provider
	running  bool

	server   *dbus.Server
	player   *audio.Player
	registry *SessionRegistry

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started time.Time
}

// New creates a daemon from the given configuration. The config must already
// be validated.
func New(cfg *config.Config, version string, logger *slog.Logger) *Daemon {
	if logger == nil {
		logger = slog.Default()
	}

	d := &Daemon{
		logger:   logger,
		version:  version,
		cfg:      cfg,
		provider: NewProvider(cfg, logger),
		server:   dbus.NewServer(logger),
		player:   audio.NewPlayer(),
		registry: NewSessionRegistry(),
	}
	configurePlayer(d.player, cfg, logger)

	d.server.SetAnnotateHandler(d.Annotate)
	d.server.SetScreensHandler(d.Screens)
	d.server.SetStatusHandler(d.Status)
	return d
}

// Start claims the bus name and begins accepting annotation requests.
func (d *Daemon) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return fmt.Errorf("daemon already running")
	}

	d.ctx, d.cancel = context.WithCancel(context.Background())
	d.started = time.Now()

	if err := d.server.Start(); err != nil {
		d.cancel()
		return err
	}

	d.running = true
	d.logger.Info("daemon started", "version", d.version)
	return nil
}

// Stop cancels all active sessions, waits for them to clear their surfaces,
// and releases the bus name.
func (d *Daemon) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	d.mu.Unlock()

	d.cancel()
	d.registry.CancelAll()
	d.wg.Wait()

	if err := d.server.Stop(); err != nil {
		d.logger.Warn("error stopping D-Bus server", "error", err)
	}
	d.player.Close()

	d.logger.Info("daemon stopped", "served", d.registry.Served())
}

// Annotate validates the request, launches its overlay session and returns
// the request ID without waiting for the session to finish. AnnotationDone
// is emitted when the session ends.
func (d *Daemon) Annotate(a model.Annotation) (string, error) {
	d.mu.RLock()
	cfg := d.cfg
	provider := d.provider
	running := d.running
	d.mu.RUnlock()

	if !running {
		return "", fmt.Errorf("daemon is not running")
	}
	if err := model.Validate(a); err != nil {
		return "", err
	}

	id, err := d.registry.NewID(a.Kind())
	if err != nil {
		return "", fmt.Errorf("generate request id: %w", err)
	}

	ctx, cancel := context.WithCancel(d.ctx)
	if !d.registry.Register(id, a.Kind(), cancel, cfg.Daemon.MaxActive) {
		cancel()
		return "", fmt.Errorf("too many active annotations (max %d)", cfg.Daemon.MaxActive)
	}

	logger := d.logger.With("id", id)
	var chime func()
	if cfg.Sound.Enabled {
		chime = func() { _ = d.player.Play() }
	}

	// Resolve geometry and open the surface before returning so argument
	// and environment errors reach the caller instead of a signal.
	session, err := assemble(cfg, provider, a, chime, logger)
	if err != nil {
		cancel()
		d.registry.Remove(id)
		return "", err
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer cancel()

		err := session.Run(ctx)
		reason := dbus.DoneCompleted
		switch {
		case err == nil:
		case errors.Is(err, context.Canceled):
			reason = dbus.DoneCancelled
		default:
			reason = dbus.DoneFailed
			logger.Error("annotation failed", "error", err)
		}

		d.registry.Finish(id)
		if err := d.server.EmitAnnotationDone(id, reason); err != nil {
			logger.Warn("failed to emit done signal", "error", err)
		}
	}()

	logger.Info("annotation started", "kind", a.Kind())
	return id, nil
}

// Screens reports the current screen layout.
func (d *Daemon) Screens() ([]model.Screen, error) {
	d.mu.RLock()
	provider := d.provider
	d.mu.RUnlock()
	return provider.Screens()
}

// Status reports daemon health for the status CLI command.
func (d *Daemon) Status() dbus.StatusInfo {
	d.mu.RLock()
	started := d.started
	d.mu.RUnlock()

	return dbus.StatusInfo{
		Version: d.version,
		Uptime:  strings.TrimSpace(humanize.RelTime(started, time.Now(), "", "")),
		Active:  uint32(d.registry.ActiveCount()),
		Served:  d.registry.Served(),
	}
}

// ApplyConfig swaps in a new configuration. Active sessions keep the
// timings they started with; new requests pick up the new values.
func (d *Daemon) ApplyConfig(cfg *config.Config) {
	d.mu.Lock()
	d.cfg = cfg
	d.provider = NewProvider(cfg, d.logger)
	d.mu.Unlock()

	configurePlayer(d.player, cfg, d.logger)
	d.logger.Info("configuration applied")
}

// NewChime builds an audio player holding the chime described by cfg.
// The caller owns Close.
func NewChime(cfg *config.Config, logger *slog.Logger) *audio.Player {
	p := audio.NewPlayer()
	configurePlayer(p, cfg, logger)
	return p
}

// configurePlayer loads the configured chime into the player. A sound file
// that fails to load falls back to the built-in tone.
func configurePlayer(p *audio.Player, cfg *config.Config, logger *slog.Logger) {
	p.SetVolume(cfg.Sound.Volume)
	if !cfg.Sound.Enabled {
		return
	}

	if cfg.Sound.File != "" {
		err := p.LoadFile(cfg.Sound.File)
		if err == nil {
			return
		}
		logger.Warn("failed to load chime file, using built-in tone", "file", cfg.Sound.File, "error", err)
	}
	if err := p.LoadTone(); err != nil {
		logger.Warn("failed to prepare chime tone", "error", err)
	}
}

// NewProvider picks the screen source: the GLIMT_SCREENS environment
// variable wins, then configured geometries, then live X11 discovery.
func NewProvider(cfg *config.Config, logger *slog.Logger) screen.Provider {
	if p, err := screen.FromEnv(); err != nil {
		logger.Warn("ignoring invalid GLIMT_SCREENS", "error", err)
	} else if p != nil {
		return p
	}

	if len(cfg.Output.Screens) > 0 {
		screens, err := screen.ParseGeometries(strings.Join(cfg.Output.Screens, ","))
		if err != nil {
			logger.Warn("ignoring invalid configured screens", "error", err)
		} else {
			return screen.NewStatic(screens)
		}
	}

	return screen.NewX11()
}
