// ABOUTME: Tests for backend selection
// ABOUTME: Only the null backend is opened; device backends need hardware
package output

import (
	"errors"
	"testing"
	"time"

	"github.com/Resonate-Protocol/sfxpool/pkg/audio"
)

func TestOpenNull(t *testing.T) {
	b, err := Open(BackendNull, monoFormat(48000), 50*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer b.Close()

	if _, ok := b.(*Mixer); !ok {
		t.Errorf("expected *Mixer, got %T", b)
	}
	if b.Format().SampleRate != 48000 {
		t.Errorf("expected sample rate 48000, got %d", b.Format().SampleRate)
	}
}

func TestOpenErrors(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		format  audio.Format
		unknown bool
	}{
		{"unknown backend", "jack", monoFormat(48000), true},
		{"zero sample rate", BackendNull, audio.Format{Channels: 2}, false},
		{"zero channels", BackendNull, audio.Format{SampleRate: 48000}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(tt.backend, tt.format, 0)
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.Is(err, ErrUnknownBackend) != tt.unknown {
				t.Errorf("expected ErrUnknownBackend match %v, got %v", tt.unknown, err)
			}
		})
	}
}

func TestFramesFor(t *testing.T) {
	if got := framesFor(100*time.Millisecond, 48000); got != 4800 {
		t.Errorf("expected 4800, got %d", got)
	}
}
