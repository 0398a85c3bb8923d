// ABOUTME: Audio type definitions
// ABOUTME: Defines audio formats, decoded clip buffers and sample conversions
package audio

import (
	"fmt"
	"math"
	"time"
)

const (
	// 24-bit audio range constants
	Max24Bit = 8388607  // 2^23 - 1
	Min24Bit = -8388608 // -2^23
)

// Format describes a PCM layout
type Format struct {
	Codec      string
	SampleRate int
	Channels   int
	BitDepth   int
}

// String renders the format as "codec 48000Hz 2ch 16-bit"
func (f Format) String() string {
	return fmt.Sprintf("%s %dHz %dch %d-bit", f.Codec, f.SampleRate, f.Channels, f.BitDepth)
}

// Validate reports whether the format can describe playable PCM
func (f Format) Validate() error {
	if f.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", f.SampleRate)
	}
	if f.Channels <= 0 {
		return fmt.Errorf("invalid channel count: %d", f.Channels)
	}
	return nil
}

// Buffer represents a fully decoded clip
type Buffer struct {
	Format  Format
	Samples []float32 // Interleaved, in [-1, 1]
}

// Frames returns the number of sample frames (one sample per channel)
func (b *Buffer) Frames() int {
	if b == nil || b.Format.Channels <= 0 {
		return 0
	}
	return len(b.Samples) / b.Format.Channels
}

// Duration returns the playback length at the native sample rate
func (b *Buffer) Duration() time.Duration {
	if b == nil || b.Format.SampleRate <= 0 {
		return 0
	}
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.Format.SampleRate)
}

// Size returns the in-memory size of the samples in bytes
func (b *Buffer) Size() uint64 {
	if b == nil {
		return 0
	}
	return uint64(len(b.Samples)) * 4
}

// SampleFromInt16 converts a 16-bit sample to float32 in [-1, 1)
func SampleFromInt16(sample int16) float32 {
	return float32(sample) / 32768.0
}

// SampleToInt16 converts a float32 sample to 16-bit, clipping out-of-range input
func SampleToInt16(sample float32) int16 {
	sample = ClampSample(sample)
	if sample >= 0 {
		return int16(sample * 32767.0)
	}
	return int16(sample * 32768.0)
}

// SampleToInt24 converts a float32 sample to the 24-bit range, clipping
// out-of-range input
func SampleToInt24(sample float32) int32 {
	sample = ClampSample(sample)
	if sample >= 0 {
		return int32(float64(sample) * Max24Bit)
	}
	return int32(float64(sample) * -Min24Bit)
}

// SampleTo24Bit converts a float32 sample to 24-bit packed bytes (little-endian)
func SampleTo24Bit(sample float32) [3]byte {
	v := SampleToInt24(sample)
	return [3]byte{byte(v), byte(v >> 8), byte(v >> 16)}
}

// SampleFrom24Bit converts 24-bit packed bytes (little-endian) to float32
func SampleFrom24Bit(b [3]byte) float32 {
	// Reconstruct 24-bit value and sign-extend to 32-bit
	val := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
	if val&0x800000 != 0 {
		val |= ^0xFFFFFF
	}
	return float32(val) / 8388608.0
}

// SampleFromInt converts an integer sample of the given bit depth to float32.
// Unknown bit depths are treated as 16-bit.
func SampleFromInt(sample int, bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return float32(sample) / 128.0
	case 24:
		return float32(sample) / 8388608.0
	case 32:
		return float32(float64(sample) / 2147483648.0)
	default:
		return float32(sample) / 32768.0
	}
}

// ClampSample limits a sample to [-1, 1]
func ClampSample(sample float32) float32 {
	if sample > 1 {
		return 1
	}
	if sample < -1 {
		return -1
	}
	return sample
}

// ClampVolume limits a volume to [0, 1]. NaN is treated as silence.
func ClampVolume(volume float64) float64 {
	if math.IsNaN(volume) || volume < 0 {
		return 0
	}
	if volume > 1 {
		return 1
	}
	return volume
}
