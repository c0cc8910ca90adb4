package audio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// Built-in tone parameters, used when no chime file is configured.
const (
	toneFrequency = 880
	toneDuration  = 120 * time.Millisecond
)

// Player holds one decoded chime and plays it on demand. Loading only
// decodes; the audio device is opened lazily on the first Play so headless
// processes never touch it.
type Player struct {
	mu          sync.Mutex
	volume      float64
	initialized bool
	sampleRate  beep.SampleRate
	buffer      *beep.Buffer
}

// NewPlayer creates a player with no chime loaded and full volume.
func NewPlayer() *Player {
	return &Player{
		volume:     1.0,
		sampleRate: beep.SampleRate(44100),
	}
}

// SetVolume sets the playback volume, clamped to 0.0-1.0.
func (p *Player) SetVolume(volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	p.volume = volume
}

// Volume returns the current volume.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// Loaded reports whether a chime is ready to play.
func (p *Player) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.buffer != nil
}

// LoadFile decodes a WAV, OGG or MP3 chime from disk. A leading ~ expands to
// the home directory.
func (p *Player) LoadFile(path string) error {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[1:])
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open chime: %w", err)
	}
	defer func() { _ = f.Close() }()

	var streamer beep.StreamSeekCloser
	var format beep.Format

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		return fmt.Errorf("unsupported audio format: %s", ext)
	}
	if err != nil {
		return fmt.Errorf("decode chime: %w", err)
	}
	defer func() { _ = streamer.Close() }()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)

	p.mu.Lock()
	p.buffer = buffer
	p.mu.Unlock()
	return nil
}

// LoadTone synthesizes the built-in sine chime.
func (p *Player) LoadTone() error {
	p.mu.Lock()
	sampleRate := p.sampleRate
	p.mu.Unlock()

	tone, err := generators.SineTone(sampleRate, toneFrequency)
	if err != nil {
		return fmt.Errorf("generate tone: %w", err)
	}

	format := beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}
	buffer := beep.NewBuffer(format)
	buffer.Append(beep.Take(sampleRate.N(toneDuration), tone))

	p.mu.Lock()
	p.buffer = buffer
	p.mu.Unlock()
	return nil
}

// Play starts the loaded chime without waiting for it to finish. With no
// chime loaded or volume zero it does nothing.
func (p *Player) Play() error {
	p.mu.Lock()
	buffer := p.buffer
	volume := p.volume
	p.mu.Unlock()

	if buffer == nil || volume == 0 {
		return nil
	}

	if err := p.ensureInitialized(buffer.Format().SampleRate); err != nil {
		return err
	}

	p.mu.Lock()
	sampleRate := p.sampleRate
	p.mu.Unlock()

	var streamer beep.Streamer = buffer.Streamer(0, buffer.Len())
	if buffer.Format().SampleRate != sampleRate {
		streamer = beep.Resample(4, buffer.Format().SampleRate, sampleRate, streamer)
	}
	if volume < 1.0 {
		// Base 2 with a log2 volume makes the gain exactly the linear volume.
		streamer = &effects.Volume{
			Streamer: streamer,
			Base:     2,
			Volume:   math.Log2(volume),
			Silent:   volume == 0,
		}
	}

	speaker.Play(streamer)
	return nil
}

// ensureInitialized opens the audio device once.
func (p *Player) ensureInitialized(sampleRate beep.SampleRate) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	bufferSize := sampleRate.N(100 * time.Millisecond)
	if err := speaker.Init(sampleRate, bufferSize); err != nil {
		return fmt.Errorf("initialize speaker: %w", err)
	}

	p.sampleRate = sampleRate
	p.initialized = true
	return nil
}

// Close stops playback and releases the audio device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		speaker.Close()
		p.initialized = false
	}
	p.buffer = nil
}
