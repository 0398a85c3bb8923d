// ABOUTME: WAV audio decoder
// ABOUTME: Decodes RIFF/WAVE integer PCM to float32 samples using go-audio/wav
package decode

import (
	"bytes"
	"fmt"
	"io"

	"github.com/Resonate-Protocol/sfxpool/pkg/audio"
	"github.com/go-audio/wav"
)

const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
)

// WAVDecoder decodes WAV files
type WAVDecoder struct{}

// NewWAV creates a new WAV decoder
func NewWAV() *WAVDecoder {
	return &WAVDecoder{}
}

// Decode converts a WAV file to float32 samples
func (WAVDecoder) Decode(r io.Reader) (*audio.Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read WAV data: %w", err)
	}

	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a WAV file", ErrInvalidFile)
	}
	if dec.WavAudioFormat != wavFormatPCM && dec.WavAudioFormat != wavFormatExtensible {
		return nil, fmt.Errorf("%w: WAV encoding %d (only integer PCM)", ErrUnsupportedFormat, dec.WavAudioFormat)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode WAV: %w", err)
	}

	bitDepth := int(dec.BitDepth)
	if bitDepth == 8 {
		// 8-bit WAV is unsigned, centred on 128
		for i := range buf.Data {
			buf.Data[i] -= 128
		}
	}
	return &audio.Buffer{
		Format: audio.Format{
			Codec:      "wav",
			SampleRate: buf.Format.SampleRate,
			Channels:   buf.Format.NumChannels,
			BitDepth:   bitDepth,
		},
		Samples: toFloat32(buf.Data, bitDepth),
	}, nil
}
