// ABOUTME: Ogg Vorbis audio decoder
// ABOUTME: Decodes Ogg Vorbis to float32 samples using jfreymuth/oggvorbis
package decode

import (
	"fmt"
	"io"

	"github.com/Resonate-Protocol/sfxpool/pkg/audio"
	"github.com/jfreymuth/oggvorbis"
)

// VorbisDecoder decodes Ogg Vorbis audio
type VorbisDecoder struct{}

// NewVorbis creates a new Ogg Vorbis decoder
func NewVorbis() *VorbisDecoder {
	return &VorbisDecoder{}
}

// Decode converts an Ogg Vorbis stream to float32 samples
func (VorbisDecoder) Decode(r io.Reader) (*audio.Buffer, error) {
	samples, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode Ogg Vorbis: %w", err)
	}

	// Vorbis decodes to float already; report 32-bit float depth
	return &audio.Buffer{
		Format: audio.Format{
			Codec:      "vorbis",
			SampleRate: format.SampleRate,
			Channels:   format.Channels,
			BitDepth:   32,
		},
		Samples: samples,
	}, nil
}
