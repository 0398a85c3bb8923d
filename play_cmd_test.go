package main

import (
	"io"
	"math"
	"testing"
	"time"

	"github.com/Resonate-Protocol/sfxpool/pkg/audio"
	"github.com/Resonate-Protocol/sfxpool/pkg/audio/output"
	"github.com/Resonate-Protocol/sfxpool/pkg/sfx"
	"github.com/charmbracelet/log"
)

// nullPool returns a pool on a 1kHz null mixer holding one 100ms clip
func nullPool(t *testing.T) (*sfx.Pool, *output.Mixer) {
	t.Helper()

	format := audio.Format{Codec: "pcm", SampleRate: 1000, Channels: 1, BitDepth: 32}
	clip := sfx.NewClip("beep", &audio.Buffer{Format: format, Samples: make([]float32, 100)})
	mixer := output.NewMixer(format)
	pool := sfx.NewPool(sfx.NewRegistry(clip), mixer, sfx.Config{
		MaxAudioSources: 2,
		DefaultVolume:   1,
		Logger:          log.New(io.Discard),
	})
	t.Cleanup(func() {
		_ = pool.Close()
		_ = mixer.Close()
	})
	return pool, mixer
}

func TestIdleLimit(t *testing.T) {
	tests := []struct {
		name  string
		wait  time.Duration
		pitch float64
		want  time.Duration
	}{
		{"unity", 0, 1, 110 * time.Millisecond},
		{"half speed", 0, 0.5, 210 * time.Millisecond},
		{"reverse", 0, -2, 60 * time.Millisecond},
		{"stalled", 0, 0, 100 * time.Millisecond},
		{"nan", 0, math.NaN(), 100 * time.Millisecond},
		{"wait flag", 3 * time.Second, 0.5, 3 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			waitFor = tt.wait
			defer func() { waitFor = 0 }()

			if got := idleLimit(100*time.Millisecond, tt.pitch); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestAdvanceIdleSlowPitch(t *testing.T) {
	pool, mixer := nullPool(t)

	if _, err := pool.PlayWith("beep", 1, 0.5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// the clip length alone is not enough at half speed
	mixer.Advance(100 * time.Millisecond)
	if pool.PlayingCount() != 1 {
		t.Fatalf("expected clip to still be playing, got %d playing", pool.PlayingCount())
	}

	advanceIdle(pool, mixer, idleLimit(100*time.Millisecond, 0.5))
	if pool.PlayingCount() != 0 {
		t.Errorf("expected pool to be idle, got %d playing", pool.PlayingCount())
	}
}

func TestAdvanceIdleStopsAtLimit(t *testing.T) {
	pool, mixer := nullPool(t)

	if _, err := pool.PlayWith("beep", 1, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	advanceIdle(pool, mixer, 50*time.Millisecond)
	if pool.PlayingCount() != 0 {
		t.Errorf("expected stalled clip to be stopped, got %d playing", pool.PlayingCount())
	}
}

func TestPauseAdvancesNullBackend(t *testing.T) {
	pool, mixer := nullPool(t)

	if _, err := pool.Play("beep"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	start := time.Now()
	pause(mixer, 200*time.Millisecond)
	if time.Since(start) >= 200*time.Millisecond {
		t.Error("expected pause not to sleep on the null backend")
	}
	if pool.PlayingCount() != 0 {
		t.Errorf("expected clip to finish during the pause, got %d playing", pool.PlayingCount())
	}
}
