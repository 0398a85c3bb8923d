// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format, Buffer types and sample conversion functions
// Package audio provides fundamental audio types and utilities for sound-effect playback.
//
// This package defines core types used throughout the sfxpool library:
//   - Format: Describes a PCM layout (codec, sample rate, channels, bit depth)
//   - Buffer: A fully decoded clip held in memory as interleaved float32 samples
//
// It also provides utilities for converting integer PCM into the float range [-1, 1]
// and back:
//   - 8/16/24/32-bit → float32 conversions
//   - float32 → 16-bit and 24-bit conversions with clipping
//
// Example:
//
//	buf := &audio.Buffer{
//	    Format:  audio.Format{Codec: "pcm", SampleRate: 48000, Channels: 2, BitDepth: 16},
//	    Samples: samples,
//	}
//	fmt.Println(buf.Duration())
package audio
