// ABOUTME: Audio decoder package for multiple file format support
// ABOUTME: Provides Decoder interface and implementations for WAV, MP3, FLAC, Ogg Vorbis, AIFF, PCM
// Package decode provides audio file decoders for sound-effect clips.
//
// Supports: WAV, AIFF, MP3, FLAC, Ogg Vorbis and raw PCM (16-bit and 24-bit)
//
// All decoders implement the Decoder interface and decode the whole input into
// an audio.Buffer of interleaved float32 samples in [-1, 1]. Sound effects are
// short, so clips are held fully in memory rather than streamed.
//
// Example:
//
//	dec, err := decode.ForExtension(".wav")
//	buf, err := dec.Decode(f)
package decode
