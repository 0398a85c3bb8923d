// ABOUTME: Sound-effect pool package
// ABOUTME: Clip registry and bounded channel pool for overlapping short sounds
// Package sfx plays named sound effects through a bounded pool of reusable
// playback channels.
//
// The package provides:
//   - Registry: an immutable name → Clip mapping built once at startup
//   - Pool: up to MaxAudioSources channels, each wrapping one output voice
//
// Play scans the channels in creation order and reuses the first one that is
// no longer playing. When every channel is busy the pool grows by one channel
// until MaxAudioSources is reached; after that Play fails with
// ErrCapacityExceeded. Channels are reclaimed lazily: a channel is free again
// as soon as its voice reports it has stopped, either at the end of the clip or
// after StopImmediately.
//
// Example:
//
//	backend, err := output.Open(output.BackendOto, format, 50*time.Millisecond)
//	pool := sfx.NewPool(registry, backend, sfx.DefaultConfig())
//	defer pool.Close()
//
//	if _, err := pool.Play("explosion"); errors.Is(err, sfx.ErrCapacityExceeded) {
//	    // too many sounds at once; drop this one
//	}
//	pool.StopImmediatelyByName("explosion")
package sfx
