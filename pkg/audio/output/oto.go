// ABOUTME: Oto-based audio output implementation
// ABOUTME: One oto player per voice over a seekable clip stream; oto does the mixing
package output

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Resonate-Protocol/sfxpool/pkg/audio"
	"github.com/charmbracelet/log"
	"github.com/ebitengine/oto/v3"
)

// oto allows a single context per process
var (
	otoOnce    sync.Once
	otoContext *oto.Context
	otoFormat  audio.Format
	otoErr     error
)

// Oto output implementation using oto library
type Oto struct {
	mu     sync.Mutex
	ctx    *oto.Context
	format audio.Format
	voices []*otoVoice
	closed bool
}

// NewOto creates the oto backend, waiting for the device to become ready
func NewOto(format audio.Format, bufferSize time.Duration) (*Oto, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   format.SampleRate,
			ChannelCount: format.Channels,
			Format:       oto.FormatFloat32LE,
			BufferSize:   bufferSize,
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			otoErr = fmt.Errorf("failed to create oto context: %w", err)
			return
		}

		select {
		case <-readyChan:
		case <-time.After(5 * time.Second):
			otoErr = fmt.Errorf("audio context initialization timeout")
			return
		}

		otoContext = ctx
		otoFormat = format
		log.Debug("Audio output initialized", "backend", BackendOto,
			"sample_rate", format.SampleRate, "channels", format.Channels, "buffer", bufferSize)
	})

	if otoErr != nil {
		return nil, otoErr
	}

	// If format changed, we can't reinitialize oto; keep the existing context
	if otoFormat != format {
		log.Warn("oto doesn't support reinitialization, continuing with existing context",
			"requested", format, "active", otoFormat)
	}

	if err := otoContext.Err(); err != nil {
		return nil, fmt.Errorf("oto context error: %w", err)
	}

	return &Oto{ctx: otoContext, format: otoFormat}, nil
}

// Format returns the device output format
func (o *Oto) Format() audio.Format {
	return o.format
}

// NewVoice creates a paused oto player bound to an empty stream
func (o *Oto) NewVoice() (Voice, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return nil, ErrBackendClosed
	}

	stream := NewStream(o.format)
	v := &otoVoice{
		stream: stream,
		player: o.ctx.NewPlayer(stream),
	}
	o.voices = append(o.voices, v)
	return v, nil
}

// Close releases every player. The oto context itself lives for the process.
func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	var firstErr error
	for _, v := range o.voices {
		if err := v.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	o.voices = nil
	o.closed = true
	return firstErr
}

type otoVoice struct {
	stream *Stream
	player *oto.Player
}

func (v *otoVoice) Load(buf *audio.Buffer) {
	v.player.Pause()
	v.stream.Load(buf)
}

func (v *otoVoice) SetVolume(volume float64) {
	v.player.SetVolume(volume)
}

func (v *otoVoice) SetPitch(pitch float64) {
	v.stream.SetPitch(pitch)
}

func (v *otoVoice) Play() error {
	v.player.Pause()
	// Seek drops oto's buffered audio and rewinds the stream
	if _, err := v.player.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind voice: %w", err)
	}
	v.player.Play()
	return nil
}

func (v *otoVoice) Stop() {
	v.player.Pause()
}

func (v *otoVoice) IsPlaying() bool {
	return v.player.IsPlaying()
}

func (v *otoVoice) Close() error {
	return v.player.Close()
}
