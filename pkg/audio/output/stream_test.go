// ABOUTME: Tests for the clip stream
// ABOUTME: Covers pitch stepping, reverse playback, channel mapping and the io.ReadSeeker surface
package output

import (
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/Resonate-Protocol/sfxpool/pkg/audio"
)

func monoFormat(rate int) audio.Format {
	return audio.Format{Codec: "pcm", SampleRate: rate, Channels: 1, BitDepth: 32}
}

func monoClip(rate int, samples ...float32) *audio.Buffer {
	return &audio.Buffer{Format: monoFormat(rate), Samples: samples}
}

func approxEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-6
}

func TestStreamPitch(t *testing.T) {
	tests := []struct {
		name     string
		clipRate int
		pitch    float64
		expected []float32
	}{
		{"unity", 48000, 1, []float32{0, 0.25, 0.5, 0.75}},
		{"double", 48000, 2, []float32{0, 0.5}},
		{"half", 48000, 0.5, []float32{0, 0.125, 0.25, 0.375, 0.5, 0.625, 0.75, 0.75}},
		{"reverse", 48000, -1, []float32{0.75, 0.5, 0.25, 0}},
		{"clip rate below output", 24000, 1, []float32{0, 0.125, 0.25, 0.375, 0.5, 0.625, 0.75, 0.75}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStream(monoFormat(48000))
			s.SetPitch(tt.pitch)
			s.Load(monoClip(tt.clipRate, 0, 0.25, 0.5, 0.75))

			dst := make([]float32, 16)
			n := s.ReadFrames(dst)
			if n != len(tt.expected) {
				t.Fatalf("expected %d frames, got %d", len(tt.expected), n)
			}
			for i, want := range tt.expected {
				if !approxEqual(dst[i], want) {
					t.Errorf("frame %d: expected %v, got %v", i, want, dst[i])
				}
			}
			if !s.Done() {
				t.Error("expected stream to be done")
			}
		})
	}
}

func TestStreamStalledPitch(t *testing.T) {
	for _, pitch := range []float64{0, math.NaN(), math.Inf(1)} {
		s := NewStream(monoFormat(48000))
		s.SetPitch(pitch)
		s.Load(monoClip(48000, 0.5, 0.25))

		dst := make([]float32, 8)
		if n := s.ReadFrames(dst); n != 8 {
			t.Errorf("pitch %v: expected 8 frames, got %d", pitch, n)
		}
		if s.Done() {
			t.Errorf("pitch %v: expected stalled stream to keep running", pitch)
		}
		if dst[7] != 0.5 {
			t.Errorf("pitch %v: expected held sample 0.5, got %v", pitch, dst[7])
		}
	}
}

func TestStreamChannelMapping(t *testing.T) {
	stereo := audio.Format{Codec: "pcm", SampleRate: 48000, Channels: 2, BitDepth: 32}

	t.Run("mono to stereo", func(t *testing.T) {
		s := NewStream(stereo)
		s.Load(monoClip(48000, 0.5, -0.5))

		dst := make([]float32, 4)
		if n := s.ReadFrames(dst); n != 2 {
			t.Fatalf("expected 2 frames, got %d", n)
		}
		expected := []float32{0.5, 0.5, -0.5, -0.5}
		for i := range expected {
			if dst[i] != expected[i] {
				t.Errorf("sample %d: expected %v, got %v", i, expected[i], dst[i])
			}
		}
	})

	t.Run("stereo to mono", func(t *testing.T) {
		s := NewStream(monoFormat(48000))
		s.Load(&audio.Buffer{Format: stereo, Samples: []float32{1, 0, 0.5, -0.5}})

		dst := make([]float32, 2)
		if n := s.ReadFrames(dst); n != 2 {
			t.Fatalf("expected 2 frames, got %d", n)
		}
		if dst[0] != 0.5 || dst[1] != 0 {
			t.Errorf("expected [0.5 0], got %v", dst)
		}
	})
}

func TestStreamReadSeek(t *testing.T) {
	s := NewStream(monoFormat(48000))
	s.Load(monoClip(48000, 0.5, -0.25))

	p := make([]byte, 16)
	n, err := s.Read(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 8 {
		t.Fatalf("expected 8 bytes, got %d", n)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(p[4:])); got != -0.25 {
		t.Errorf("expected second sample -0.25, got %v", got)
	}

	if _, err := s.Read(p); err != io.EOF {
		t.Errorf("expected io.EOF after the clip, got %v", err)
	}

	if _, err := s.Seek(0, io.SeekStart); err != nil {
		t.Fatalf("unexpected seek error: %v", err)
	}
	if s.Done() {
		t.Error("expected stream to be rewound")
	}

	if _, err := s.Seek(4, io.SeekStart); err == nil {
		t.Error("expected error seeking past the start")
	}
}

func TestStreamEmpty(t *testing.T) {
	s := NewStream(monoFormat(48000))
	if !s.Done() {
		t.Error("expected stream without clip to be done")
	}
	if _, err := s.Read(make([]byte, 8)); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}
