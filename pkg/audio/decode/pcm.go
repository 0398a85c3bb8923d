// ABOUTME: Raw PCM audio decoder
// ABOUTME: Decodes headerless 16-bit and 24-bit little-endian PCM to float32 samples
package decode

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Resonate-Protocol/sfxpool/pkg/audio"
)

// PCMDecoder decodes raw PCM with a format known in advance
type PCMDecoder struct {
	format audio.Format
}

// NewPCM creates a new PCM decoder
func NewPCM(format audio.Format) (*PCMDecoder, error) {
	if format.Codec != "pcm" {
		return nil, fmt.Errorf("invalid codec for PCM decoder: %s", format.Codec)
	}
	if format.BitDepth != 16 && format.BitDepth != 24 {
		return nil, fmt.Errorf("unsupported PCM bit depth: %d (supported: 16, 24)", format.BitDepth)
	}
	if err := format.Validate(); err != nil {
		return nil, err
	}

	return &PCMDecoder{format: format}, nil
}

// Decode converts raw PCM bytes to float32 samples. Trailing bytes that do
// not form a whole frame are dropped.
func (d *PCMDecoder) Decode(r io.Reader) (*audio.Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read PCM data: %w", err)
	}

	bytesPerSample := d.format.BitDepth / 8
	frameSize := bytesPerSample * d.format.Channels
	numSamples := (len(data) / frameSize) * d.format.Channels

	samples := make([]float32, numSamples)
	for i := 0; i < numSamples; i++ {
		if d.format.BitDepth == 24 {
			b := [3]byte{data[i*3], data[i*3+1], data[i*3+2]}
			samples[i] = audio.SampleFrom24Bit(b)
		} else {
			sample16 := int16(binary.LittleEndian.Uint16(data[i*2:]))
			samples[i] = audio.SampleFromInt16(sample16)
		}
	}

	return &audio.Buffer{Format: d.format, Samples: samples}, nil
}
