// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/glimt/internal/fade"
	"github.com/jmylchreest/glimt/internal/render"
)

// Default configuration values.
const (
	DefaultHighlightPeak = 0.2
	DefaultPopupPeak     = 0.98
	DefaultFontSize      = 14.0
	DefaultSoundVolume   = 0.8
	DefaultMaxActive     = 8
	DefaultBackend       = "x11"
)

// Config represents the glimt configuration, shared by the one-shot CLI and
// the daemon.
type Config struct {
	Highlight HighlightConfig `toml:"highlight"`
	Popup     PopupConfig     `toml:"popup"`
	Animation AnimationConfig `toml:"animation"`
	Sound     SoundConfig     `toml:"sound"`
	Output    OutputConfig    `toml:"output"`
	Daemon    DaemonConfig    `toml:"daemon"`
}

// HighlightConfig shapes highlight annotations.
type HighlightConfig struct {
	PeakOpacity float64  `toml:"peak_opacity"` // 0.0-1.0, fill opacity at full fade-in
	FadeIn      Duration `toml:"fade_in"`
	Hold        Duration `toml:"hold"`
	Color       Color    `toml:"color"` // fill and border color
}

// PopupConfig shapes popup annotations.
type PopupConfig struct {
	PeakOpacity   float64  `toml:"peak_opacity"` // 0.0-1.0, bubble opacity at full fade-in
	FadeIn        Duration `toml:"fade_in"`
	Hold          Duration `toml:"hold"`
	StartupDelay  Duration `toml:"startup_delay"` // pause before the first frame
	FontSize      float64  `toml:"font_size"`     // point size of popup text
	GradientStart Color    `toml:"gradient_start"`
	GradientEnd   Color    `toml:"gradient_end"`
	TextColor     Color    `toml:"text_color"`
	ShadowColor   Color    `toml:"shadow_color"`
}

// AnimationConfig contains timing shared by both annotation kinds.
type AnimationConfig struct {
	FadeOut Duration `toml:"fade_out"`
	Tick    Duration `toml:"tick"` // frame interval
}

// SoundConfig contains the optional chime played when an annotation becomes
// fully visible.
type SoundConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"` // 0.0-1.0
	File    string  `toml:"file"`   // wav/ogg/mp3; empty plays a built-in tone
}

// OutputConfig selects where frames go.
type OutputConfig struct {
	Backend  string   `toml:"backend"`   // "x11" or "png"
	FrameDir string   `toml:"frame_dir"` // png backend output directory
	Screens  []string `toml:"screens"`   // fixed layout, "WxH+X+Y" entries; empty = autodetect
}

// DaemonConfig contains glimtd settings.
type DaemonConfig struct {
	MaxActive int `toml:"max_active"` // concurrent annotation cap
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Highlight: HighlightConfig{
			PeakOpacity: DefaultHighlightPeak,
			FadeIn:      Duration(300 * time.Millisecond),
			Hold:        Duration(2800 * time.Millisecond),
			Color:       MustParseColor("#f6d32d"),
		},
		Popup: PopupConfig{
			PeakOpacity:   DefaultPopupPeak,
			FadeIn:        Duration(250 * time.Millisecond),
			Hold:          Duration(3100 * time.Millisecond),
			StartupDelay:  Duration(50 * time.Millisecond),
			FontSize:      DefaultFontSize,
			GradientStart: MustParseColor("#3584e4"),
			GradientEnd:   MustParseColor("#9141ac"),
			TextColor:     MustParseColor("#ffffff"),
			ShadowColor:   MustParseColor("#000000"),
		},
		Animation: AnimationConfig{
			FadeOut: Duration(300 * time.Millisecond),
			Tick:    Duration(10 * time.Millisecond),
		},
		Sound: SoundConfig{
			Enabled: false,
			Volume:  DefaultSoundVolume,
			File:    "",
		},
		Output: OutputConfig{
			Backend:  DefaultBackend,
			FrameDir: "",
			Screens:  nil,
		},
		Daemon: DaemonConfig{
			MaxActive: DefaultMaxActive,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "glimt", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if the file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	// Start with defaults, then overlay with file contents.
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed and writes atomically.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid. Screen geometry strings and
// the output backend are validated where they are turned into providers.
func (c *Config) Validate() error {
	if c.Highlight.PeakOpacity <= 0 || c.Highlight.PeakOpacity > 1 {
		return fmt.Errorf("highlight peak_opacity must be in (0, 1], got %v", c.Highlight.PeakOpacity)
	}
	if c.Popup.PeakOpacity <= 0 || c.Popup.PeakOpacity > 1 {
		return fmt.Errorf("popup peak_opacity must be in (0, 1], got %v", c.Popup.PeakOpacity)
	}

	durations := []struct {
		name string
		d    Duration
	}{
		{"highlight fade_in", c.Highlight.FadeIn},
		{"highlight hold", c.Highlight.Hold},
		{"popup fade_in", c.Popup.FadeIn},
		{"popup hold", c.Popup.Hold},
		{"animation fade_out", c.Animation.FadeOut},
		{"animation tick", c.Animation.Tick},
	}
	for _, ent := range durations {
		if ent.d.Duration() <= 0 {
			return fmt.Errorf("%s must be positive, got %v", ent.name, ent.d.Duration())
		}
	}
	if c.Popup.StartupDelay.Duration() < 0 {
		return fmt.Errorf("popup startup_delay must not be negative, got %v", c.Popup.StartupDelay.Duration())
	}

	if c.Popup.FontSize <= 0 {
		return fmt.Errorf("popup font_size must be positive, got %v", c.Popup.FontSize)
	}

	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		return fmt.Errorf("sound volume must be between 0.0 and 1.0, got %v", c.Sound.Volume)
	}

	if c.Daemon.MaxActive < 1 || c.Daemon.MaxActive > 64 {
		return fmt.Errorf("daemon max_active must be between 1 and 64, got %d", c.Daemon.MaxActive)
	}

	return nil
}

// HighlightFade returns the opacity envelope for highlight sessions.
func (c *Config) HighlightFade() fade.Config {
	return fade.Config{
		FadeIn:  c.Highlight.FadeIn.Duration(),
		Hold:    c.Highlight.Hold.Duration(),
		FadeOut: c.Animation.FadeOut.Duration(),
		Peak:    c.Highlight.PeakOpacity,
	}
}

// PopupFade returns the opacity envelope for popup sessions.
func (c *Config) PopupFade() fade.Config {
	return fade.Config{
		FadeIn:  c.Popup.FadeIn.Duration(),
		Hold:    c.Popup.Hold.Duration(),
		FadeOut: c.Animation.FadeOut.Duration(),
		Peak:    c.Popup.PeakOpacity,
	}
}

// Style returns the render palette built from the configured colors.
func (c *Config) Style() render.Style {
	return render.Style{
		Accent:        c.Highlight.Color.NRGBA(),
		GradientStart: c.Popup.GradientStart.NRGBA(),
		GradientEnd:   c.Popup.GradientEnd.NRGBA(),
		Text:          c.Popup.TextColor.NRGBA(),
		Shadow:        c.Popup.ShadowColor.NRGBA(),
	}
}
