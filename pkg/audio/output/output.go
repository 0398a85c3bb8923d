// ABOUTME: Audio output interface definitions
// ABOUTME: Common Voice and Backend contracts and backend selection by name
package output

import (
	"errors"
	"fmt"
	"time"

	"github.com/Resonate-Protocol/sfxpool/pkg/audio"
)

var (
	// ErrBackendClosed is returned when creating voices on a closed backend
	ErrBackendClosed = errors.New("audio backend closed")
	// ErrUnknownBackend is returned by Open for an unrecognised backend name
	ErrUnknownBackend = errors.New("unknown audio backend")
)

// Backend names accepted by Open
const (
	BackendOto       = "oto"
	BackendMalgo     = "malgo"
	BackendPortAudio = "portaudio"
	BackendNull      = "null"
)

// Voice is one playback primitive
type Voice interface {
	// Load binds a clip, replacing whatever was bound before
	Load(buf *audio.Buffer)

	// SetVolume sets the linear gain (callers pass values in [0, 1])
	SetVolume(volume float64)

	// SetPitch sets the playback-rate multiplier; negative plays backwards
	SetPitch(pitch float64)

	// Play starts the bound clip from the beginning. On error the voice
	// stays idle.
	Play() error

	// Stop halts playback immediately; stopping an idle voice is a no-op
	Stop()

	// IsPlaying reports whether the voice is still producing the clip
	IsPlaying() bool

	// Close releases voice resources
	Close() error
}

// Backend creates voices on an output device
type Backend interface {
	// NewVoice allocates a new idle voice
	NewVoice() (Voice, error)

	// Format returns the device output format
	Format() audio.Format

	// Close stops the device and releases all voices
	Close() error
}

// Open creates the named backend. It is the explicit startup check that an
// audio output is available.
func Open(name string, format audio.Format, bufferSize time.Duration) (Backend, error) {
	if err := format.Validate(); err != nil {
		return nil, fmt.Errorf("invalid output format: %w", err)
	}

	switch name {
	case BackendOto, "":
		return NewOto(format, bufferSize)
	case BackendMalgo:
		return NewMalgo(format, bufferSize)
	case BackendPortAudio:
		return NewPortAudio(format, bufferSize)
	case BackendNull:
		return NewMixer(format), nil
	default:
		return nil, fmt.Errorf("%w: %q (supported: %s, %s, %s, %s)", ErrUnknownBackend, name,
			BackendOto, BackendMalgo, BackendPortAudio, BackendNull)
	}
}

// framesFor returns how many frames cover d at the given rate
func framesFor(d time.Duration, sampleRate int) int {
	return int(d * time.Duration(sampleRate) / time.Second)
}
