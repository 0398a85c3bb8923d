// ABOUTME: Clip type
// ABOUTME: A named, immutable, fully decoded sound effect
package sfx

import (
	"time"

	"github.com/Resonate-Protocol/sfxpool/pkg/audio"
)

// Clip is a named sound effect. Clips are never modified after registration.
type Clip struct {
	Name   string
	Buffer *audio.Buffer
}

// NewClip creates a clip
func NewClip(name string, buf *audio.Buffer) *Clip {
	return &Clip{Name: name, Buffer: buf}
}

// Duration returns the clip length at normal pitch
func (c *Clip) Duration() time.Duration {
	return c.Buffer.Duration()
}
