// ABOUTME: Tests for audio resampler
// ABOUTME: Tests linear interpolation resampling between sample rates
package resample

import (
	"math"
	"testing"

	"github.com/Resonate-Protocol/sfxpool/pkg/audio"
)

func TestNew(t *testing.T) {
	r := New(44100, 48000, 2)

	if r == nil {
		t.Fatal("expected resampler to be created")
	}

	if r.inputRate != 44100 {
		t.Errorf("expected inputRate 44100, got %d", r.inputRate)
	}

	if r.outputRate != 48000 {
		t.Errorf("expected outputRate 48000, got %d", r.outputRate)
	}

	if r.channels != 2 {
		t.Errorf("expected channels 2, got %d", r.channels)
	}
}

func TestResampleUpsampling(t *testing.T) {
	r := New(24000, 48000, 1)

	input := []float32{0, 0.5, 1}
	output := make([]float32, 6)

	n := r.Resample(input, output)
	if n != 6 {
		t.Fatalf("expected 6 samples, got %d", n)
	}

	expected := []float32{0, 0.25, 0.5, 0.75, 1, 1}
	for i, want := range expected {
		if math.Abs(float64(output[i]-want)) > 1e-6 {
			t.Errorf("sample %d: expected %v, got %v", i, want, output[i])
		}
	}
}

func TestResampleDownsampling(t *testing.T) {
	r := New(48000, 24000, 2)

	// Stereo ramp: left rises, right falls
	input := make([]float32, 16)
	for i := 0; i < 8; i++ {
		input[i*2] = float32(i) / 8
		input[i*2+1] = -float32(i) / 8
	}
	output := make([]float32, 8)

	n := r.Resample(input, output)
	if n != 8 {
		t.Fatalf("expected 8 samples, got %d", n)
	}

	for frame := 0; frame < 4; frame++ {
		want := float32(frame*2) / 8
		if output[frame*2] != want {
			t.Errorf("frame %d left: expected %v, got %v", frame, want, output[frame*2])
		}
		if output[frame*2+1] != -want {
			t.Errorf("frame %d right: expected %v, got %v", frame, -want, output[frame*2+1])
		}
	}
}

func TestResampleEmptyInput(t *testing.T) {
	r := New(44100, 48000, 2)
	if n := r.Resample(nil, make([]float32, 10)); n != 0 {
		t.Errorf("expected 0 samples for empty input, got %d", n)
	}
}

func TestOutputSamplesNeeded(t *testing.T) {
	r := New(24000, 48000, 2)

	if got := r.OutputSamplesNeeded(200); got != 400 {
		t.Errorf("expected 400 output samples, got %d", got)
	}
}

func TestBuffer(t *testing.T) {
	clip := &audio.Buffer{
		Format:  audio.Format{Codec: "pcm", SampleRate: 22050, Channels: 1, BitDepth: 16},
		Samples: make([]float32, 22050),
	}

	out := Buffer(clip, 44100)
	if out.Format.SampleRate != 44100 {
		t.Errorf("expected sample rate 44100, got %d", out.Format.SampleRate)
	}
	if out.Frames() != 44100 {
		t.Errorf("expected 44100 frames, got %d", out.Frames())
	}
	if out.Format.Codec != "pcm" || out.Format.Channels != 1 {
		t.Errorf("expected codec and channels preserved, got %s", out.Format)
	}
}

func TestBufferSameRate(t *testing.T) {
	clip := &audio.Buffer{
		Format:  audio.Format{SampleRate: 48000, Channels: 2},
		Samples: make([]float32, 4),
	}

	if out := Buffer(clip, 48000); out != clip {
		t.Error("expected the same buffer back when rates match")
	}
}
