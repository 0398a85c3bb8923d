// ABOUTME: Audio resampling package using linear interpolation
// ABOUTME: Converts audio between different sample rates
// Package resample provides audio sample rate conversion.
//
// Uses linear interpolation for converting between sample rates.
// Handles both upsampling and downsampling. Clips are converted once,
// at load time, to the output device rate.
//
// Example:
//
//	r := resample.New(44100, 48000, 2)
//	n := r.Resample(inputSamples, outputSamples)
//
//	// or convert a whole clip
//	converted := resample.Buffer(clip, 48000)
package resample
