// ABOUTME: Error values reported by the sound-effect pool
// ABOUTME: Misuse is reported through these, never by panicking
package sfx

import "errors"

var (
	// ErrClipNotFound is returned when a clip name is not in the registry
	ErrClipNotFound = errors.New("audio clip not found")
	// ErrCapacityExceeded is returned when every channel is busy and the pool is at MaxAudioSources
	ErrCapacityExceeded = errors.New("audio source capacity exceeded")
	// ErrPoolClosed is returned by Play after Close
	ErrPoolClosed = errors.New("pool closed")
)
