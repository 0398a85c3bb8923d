// ABOUTME: Audio encoder package for writing rendered sound
// ABOUTME: Provides Encoder interface and implementations for raw PCM and WAV files
// Package encode provides audio encoders for exporting mixed sound effects.
//
// Supports: raw PCM (16-bit and 24-bit little-endian), WAV files
//
// Encoders accept interleaved float32 samples in [-1, 1]; out-of-range
// samples are clipped.
//
// Example:
//
//	encoder, err := encode.NewPCM(format)
//	data, err := encoder.Encode(samples)
//
//	f, err := os.Create("mix.wav")
//	err = encode.WriteWAV(f, buf, 16)
package encode
