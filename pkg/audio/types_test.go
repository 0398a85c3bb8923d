// ABOUTME: Tests for audio types
// ABOUTME: Tests sample conversion, clamping and buffer helpers
package audio

import (
	"math"
	"testing"
	"time"
)

func TestSampleFromInt16(t *testing.T) {
	tests := []struct {
		name     string
		input    int16
		expected float32
	}{
		{"zero", 0, 0},
		{"half", 16384, 0.5},
		{"negative half", -16384, -0.5},
		{"min", -32768, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SampleFromInt16(tt.input)
			if result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestSampleToInt16(t *testing.T) {
	tests := []struct {
		name     string
		input    float32
		expected int16
	}{
		{"zero", 0, 0},
		{"full positive", 1, 32767},
		{"full negative", -1, -32768},
		{"clipped positive", 2.5, 32767},
		{"clipped negative", -3, -32768},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SampleToInt16(tt.input)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestSampleFrom24Bit(t *testing.T) {
	tests := []struct {
		name     string
		input    [3]byte
		expected float32
	}{
		{"zero", [3]byte{0, 0, 0}, 0},
		{"max negative", [3]byte{0x00, 0x00, 0x80}, -1},
		{"half positive", [3]byte{0x00, 0x00, 0x40}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SampleFrom24Bit(tt.input)
			if result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestSampleTo24Bit(t *testing.T) {
	tests := []struct {
		name     string
		input    float32
		expected [3]byte
	}{
		{"zero", 0, [3]byte{0, 0, 0}},
		{"full scale positive", 1, [3]byte{0xFF, 0xFF, 0x7F}},
		{"full scale negative", -1, [3]byte{0x00, 0x00, 0x80}},
		{"clipped", 2, [3]byte{0xFF, 0xFF, 0x7F}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SampleTo24Bit(tt.input)
			if result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
			if back := SampleFrom24Bit(result); math.Abs(float64(back-ClampSample(tt.input))) > 1e-6 {
				t.Errorf("expected round trip to %v, got %v", ClampSample(tt.input), back)
			}
		})
	}
}

func TestSampleFromInt(t *testing.T) {
	tests := []struct {
		name     string
		sample   int
		bitDepth int
		expected float32
	}{
		{"8-bit", 64, 8, 0.5},
		{"16-bit", -16384, 16, -0.5},
		{"24-bit", 4194304, 24, 0.5},
		{"32-bit", 1073741824, 32, 0.5},
		{"unknown depth falls back to 16-bit", 16384, 12, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SampleFromInt(tt.sample, tt.bitDepth)
			if result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestClampVolume(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{-1, 0},
		{0, 0},
		{0.25, 0.25},
		{1, 1},
		{5, 1},
		{math.Inf(1), 1},
		{math.Inf(-1), 0},
		{math.NaN(), 0},
	}

	for _, tt := range tests {
		if got := ClampVolume(tt.input); got != tt.expected {
			t.Errorf("ClampVolume(%v): expected %v, got %v", tt.input, tt.expected, got)
		}
	}
}

func TestBufferHelpers(t *testing.T) {
	buf := &Buffer{
		Format:  Format{Codec: "pcm", SampleRate: 1000, Channels: 2, BitDepth: 16},
		Samples: make([]float32, 1000),
	}

	if buf.Frames() != 500 {
		t.Errorf("expected 500 frames, got %d", buf.Frames())
	}
	if buf.Duration() != 500*time.Millisecond {
		t.Errorf("expected 500ms, got %v", buf.Duration())
	}
	if buf.Size() != 4000 {
		t.Errorf("expected 4000 bytes, got %d", buf.Size())
	}

	var nilBuf *Buffer
	if nilBuf.Frames() != 0 || nilBuf.Duration() != 0 || nilBuf.Size() != 0 {
		t.Error("expected zero values for nil buffer")
	}
}

func TestFormatValidate(t *testing.T) {
	if err := (Format{SampleRate: 48000, Channels: 2}).Validate(); err != nil {
		t.Errorf("expected valid format, got %v", err)
	}
	if err := (Format{SampleRate: 0, Channels: 2}).Validate(); err == nil {
		t.Error("expected error for zero sample rate")
	}
	if err := (Format{SampleRate: 48000}).Validate(); err == nil {
		t.Error("expected error for zero channels")
	}
}
