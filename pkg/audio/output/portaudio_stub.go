//go:build !portaudio

// ABOUTME: PortAudio stub when library not available
// ABOUTME: Provides compile-time placeholder when PortAudio not installed
package output

import (
	"fmt"
	"time"

	"github.com/Resonate-Protocol/sfxpool/pkg/audio"
)

// PortAudio output implementation (stub)
type PortAudio struct {
	*Mixer
}

// NewPortAudio reports that PortAudio support was not compiled in
func NewPortAudio(format audio.Format, bufferSize time.Duration) (*PortAudio, error) {
	return nil, fmt.Errorf("PortAudio support not enabled (build with -tags portaudio)")
}
