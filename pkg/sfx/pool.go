// ABOUTME: Bounded channel pool
// ABOUTME: Allocates, reuses and stops playback channels up to a fixed capacity
package sfx

import (
	"fmt"
	"sync"

	"github.com/Resonate-Protocol/sfxpool/pkg/audio"
	"github.com/Resonate-Protocol/sfxpool/pkg/audio/output"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const (
	// DefaultMaxAudioSources is the channel ceiling used when none is configured
	DefaultMaxAudioSources = 10
	// DefaultVolume is the volume Play uses unless configured otherwise
	DefaultVolume = 1.0
)

// Config holds pool configuration
type Config struct {
	// MaxAudioSources caps the number of channels (default: 10)
	MaxAudioSources int

	// DefaultVolume is the volume used by Play, clamped to [0, 1]
	DefaultVolume float64

	// Logger receives warnings for failed plays (default: log.Default())
	Logger *log.Logger
}

// DefaultConfig returns the stock configuration
func DefaultConfig() Config {
	return Config{
		MaxAudioSources: DefaultMaxAudioSources,
		DefaultVolume:   DefaultVolume,
	}
}

// Backend allocates output voices for new channels
type Backend interface {
	NewVoice() (output.Voice, error)
}

// Playback describes a successful Play
type Playback struct {
	ID      uuid.UUID
	Channel int // index in creation order
	Clip    string
	Volume  float64
	Pitch   float64
}

// ChannelStatus is a read-only view of one channel
type ChannelStatus struct {
	Index   int
	Clip    string // empty if never used
	Volume  float64
	Pitch   float64
	Playing bool
}

// Pool plays clips on a bounded set of channels. All methods are safe to call
// from multiple goroutines and return without waiting for audio.
type Pool struct {
	mu       sync.Mutex
	registry *Registry
	backend  Backend
	config   Config
	logger   *log.Logger
	channels []*channel
	closed   bool
}

// NewPool creates an empty pool. No channels exist until the first Play.
func NewPool(registry *Registry, backend Backend, config Config) *Pool {
	logger := config.Logger
	if logger == nil {
		logger = log.Default()
	}

	if config.MaxAudioSources <= 0 {
		logger.Warn("Invalid max audio sources, using default",
			"max_audio_sources", config.MaxAudioSources, "default", DefaultMaxAudioSources)
		config.MaxAudioSources = DefaultMaxAudioSources
	}
	config.DefaultVolume = audio.ClampVolume(config.DefaultVolume)
	config.Logger = logger

	if registry == nil {
		registry = NewRegistry()
	}

	return &Pool{
		registry: registry,
		backend:  backend,
		config:   config,
		logger:   logger,
	}
}

// Play plays the named clip at the default volume and normal pitch
func (p *Pool) Play(name string) (Playback, error) {
	return p.PlayWith(name, p.config.DefaultVolume, 1.0)
}

// PlayWith plays the named clip. Volume is clamped to [0, 1]; pitch is handed
// to the voice as given. On error no channel is created or changed.
func (p *Pool) PlayWith(name string, volume, pitch float64) (Playback, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return Playback{}, ErrPoolClosed
	}

	clip, ok := p.registry.Lookup(name)
	if !ok {
		p.logger.Warn("Audio clip not found", "clip", name)
		return Playback{}, fmt.Errorf("%w: %q", ErrClipNotFound, name)
	}

	volume = audio.ClampVolume(volume)

	idx := p.freeChannel()
	if idx < 0 {
		if len(p.channels) >= p.config.MaxAudioSources {
			p.logger.Warn("Audio source capacity exceeded",
				"clip", name, "max_audio_sources", p.config.MaxAudioSources)
			return Playback{}, fmt.Errorf("%w: %d channels busy", ErrCapacityExceeded, len(p.channels))
		}

		voice, err := p.backend.NewVoice()
		if err != nil {
			return Playback{}, fmt.Errorf("failed to allocate voice: %w", err)
		}
		ch := newChannel(voice)
		if err := ch.start(clip, volume, pitch); err != nil {
			_ = voice.Close()
			p.logger.Warn("Voice failed to start", "clip", name, "error", err)
			return Playback{}, fmt.Errorf("failed to start voice: %w", err)
		}
		p.channels = append(p.channels, ch)
		idx = len(p.channels) - 1
		p.logger.Debug("Channel created", "channel", idx, "channels", len(p.channels))
	} else if err := p.channels[idx].start(clip, volume, pitch); err != nil {
		p.logger.Warn("Voice failed to start", "clip", name, "channel", idx, "error", err)
		return Playback{}, fmt.Errorf("failed to start voice: %w", err)
	}

	pb := Playback{
		ID:      uuid.New(),
		Channel: idx,
		Clip:    name,
		Volume:  volume,
		Pitch:   pitch,
	}
	p.logger.Debug("Playing clip", "clip", name, "channel", idx,
		"volume", volume, "pitch", pitch, "id", pb.ID)

	return pb, nil
}

// freeChannel returns the index of the first idle channel, or -1
func (p *Pool) freeChannel() int {
	for i, ch := range p.channels {
		if ch.free() {
			return i
		}
	}
	return -1
}

// StopImmediately stops every channel
func (p *Pool) StopImmediately() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, ch := range p.channels {
		ch.stop()
	}
}

// StopImmediatelyByName stops every channel whose bound clip is name,
// including idle channels that last played it
func (p *Pool) StopImmediatelyByName(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, ch := range p.channels {
		if ch.clip != nil && ch.clip.Name == name {
			ch.stop()
		}
	}
}

// Close stops and releases every channel. The backend is left open.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	var firstErr error
	for _, ch := range p.channels {
		ch.stop()
		if err := ch.voice.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	p.channels = nil

	return firstErr
}

// ClipNames returns the registered clip names in sorted order
func (p *Pool) ClipNames() []string {
	return p.registry.Names()
}

// Snapshot returns the state of every channel in creation order
func (p *Pool) Snapshot() []ChannelStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	statuses := make([]ChannelStatus, len(p.channels))
	for i, ch := range p.channels {
		statuses[i] = ChannelStatus{
			Index:   i,
			Clip:    ch.clipName(),
			Volume:  ch.volume,
			Pitch:   ch.pitch,
			Playing: !ch.free(),
		}
	}
	return statuses
}

// PlayingCount returns how many channels are currently playing
func (p *Pool) PlayingCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, ch := range p.channels {
		if !ch.free() {
			n++
		}
	}
	return n
}

// Len returns the number of channels created so far
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.channels)
}

// Config returns the effective configuration
func (p *Pool) Config() Config {
	return p.config
}
