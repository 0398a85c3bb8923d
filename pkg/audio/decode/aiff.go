// ABOUTME: AIFF audio decoder
// ABOUTME: Decodes AIFF files to float32 samples using go-audio/aiff
package decode

import (
	"bytes"
	"fmt"
	"io"

	"github.com/Resonate-Protocol/sfxpool/pkg/audio"
	"github.com/go-audio/aiff"
)

// AIFFDecoder decodes AIFF files
type AIFFDecoder struct{}

// NewAIFF creates a new AIFF decoder
func NewAIFF() *AIFFDecoder {
	return &AIFFDecoder{}
}

// Decode converts an AIFF file to float32 samples
func (AIFFDecoder) Decode(r io.Reader) (*audio.Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read AIFF data: %w", err)
	}

	dec := aiff.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not an AIFF file", ErrInvalidFile)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode AIFF: %w", err)
	}

	bitDepth := int(dec.BitDepth)
	return &audio.Buffer{
		Format: audio.Format{
			Codec:      "aiff",
			SampleRate: buf.Format.SampleRate,
			Channels:   buf.Format.NumChannels,
			BitDepth:   bitDepth,
		},
		Samples: toFloat32(buf.Data, bitDepth),
	}, nil
}
