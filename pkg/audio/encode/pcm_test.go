// ABOUTME: Unit tests for PCM encoder
// ABOUTME: Tests 16-bit and 24-bit PCM encoding
package encode

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/Resonate-Protocol/sfxpool/pkg/audio"
)

func TestNewPCM(t *testing.T) {
	tests := []struct {
		name        string
		format      audio.Format
		wantErr     bool
		errContains string
	}{
		{
			name:    "valid 16-bit PCM",
			format:  audio.Format{Codec: "pcm", SampleRate: 48000, Channels: 2, BitDepth: 16},
			wantErr: false,
		},
		{
			name:    "valid 24-bit PCM",
			format:  audio.Format{Codec: "pcm", SampleRate: 48000, Channels: 2, BitDepth: 24},
			wantErr: false,
		},
		{
			name:        "invalid codec",
			format:      audio.Format{Codec: "opus", SampleRate: 48000, Channels: 2, BitDepth: 16},
			wantErr:     true,
			errContains: "invalid codec",
		},
		{
			name:        "unsupported bit depth",
			format:      audio.Format{Codec: "pcm", SampleRate: 48000, Channels: 2, BitDepth: 32},
			wantErr:     true,
			errContains: "unsupported bit depth",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoder, err := NewPCM(tt.format)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NewPCM() expected error, got nil")
				} else if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("NewPCM() error = %v, want error containing %v", err, tt.errContains)
				}
				return
			}
			if err != nil {
				t.Errorf("NewPCM() unexpected error = %v", err)
			}
			if encoder == nil {
				t.Errorf("NewPCM() returned nil encoder")
			}
		})
	}
}

func TestPCMEncoder_Encode16Bit(t *testing.T) {
	encoder, err := NewPCM(audio.Format{Codec: "pcm", SampleRate: 48000, Channels: 2, BitDepth: 16})
	if err != nil {
		t.Fatalf("NewPCM() failed: %v", err)
	}

	samples := []float32{0, 1, -1, 0.5, -0.5, 1.5}
	expected := []int16{0, 32767, -32768, 16383, -16384, 32767}

	output, err := encoder.Encode(samples)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	if len(output) != len(samples)*2 {
		t.Fatalf("expected %d bytes, got %d", len(samples)*2, len(output))
	}

	for i, want := range expected {
		actual := int16(binary.LittleEndian.Uint16(output[i*2:]))
		if actual != want {
			t.Errorf("sample %d: expected %d, got %d", i, want, actual)
		}
	}
}

func TestPCMEncoder_Encode24Bit(t *testing.T) {
	encoder, err := NewPCM(audio.Format{Codec: "pcm", SampleRate: 48000, Channels: 2, BitDepth: 24})
	if err != nil {
		t.Fatalf("NewPCM() failed: %v", err)
	}

	samples := []float32{0, 1, -1, 0.25}

	output, err := encoder.Encode(samples)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	if len(output) != len(samples)*3 {
		t.Fatalf("expected %d bytes, got %d", len(samples)*3, len(output))
	}

	for i, sample := range samples {
		expected := audio.SampleTo24Bit(sample)
		actual := [3]byte{output[i*3], output[i*3+1], output[i*3+2]}
		if actual != expected {
			t.Errorf("sample %d: expected %v, got %v", i, expected, actual)
		}
	}

	if got := [3]byte{output[3], output[4], output[5]}; got != [3]byte{0xFF, 0xFF, 0x7F} {
		t.Errorf("expected full scale to encode as ff ff 7f, got %x", got)
	}
}

func TestPCMEncoder_EncodeEmpty(t *testing.T) {
	encoder, err := NewPCM(audio.Format{Codec: "pcm", SampleRate: 48000, Channels: 1, BitDepth: 16})
	if err != nil {
		t.Fatalf("NewPCM() failed: %v", err)
	}

	output, err := encoder.Encode(nil)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	if len(output) != 0 {
		t.Errorf("expected empty output, got %d bytes", len(output))
	}
}
