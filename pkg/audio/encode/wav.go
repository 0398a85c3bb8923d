// ABOUTME: WAV file writer
// ABOUTME: Writes a decoded or rendered buffer as an integer PCM WAV file
package encode

import (
	"errors"
	"fmt"
	"io"

	"github.com/Resonate-Protocol/sfxpool/pkg/audio"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// wavPCMFormat is the WAVE_FORMAT_PCM format tag
const wavPCMFormat = 1

// WriteWAV writes buf to w as a WAV file with the given bit depth (16 or 24).
// The header is patched on completion, so w must be seekable.
func WriteWAV(w io.WriteSeeker, buf *audio.Buffer, bitDepth int) error {
	if buf == nil {
		return errors.New("no audio to write")
	}
	if err := buf.Format.Validate(); err != nil {
		return err
	}
	if bitDepth != 16 && bitDepth != 24 {
		return fmt.Errorf("unsupported bit depth: %d (supported: 16, 24)", bitDepth)
	}

	data := make([]int, len(buf.Samples))
	for i, s := range buf.Samples {
		if bitDepth == 24 {
			data[i] = int(audio.SampleToInt24(s))
		} else {
			data[i] = int(audio.SampleToInt16(s))
		}
	}

	enc := wav.NewEncoder(w, buf.Format.SampleRate, bitDepth, buf.Format.Channels, wavPCMFormat)
	ib := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: buf.Format.Channels, SampleRate: buf.Format.SampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(ib); err != nil {
		return fmt.Errorf("failed to write samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finish wav file: %w", err)
	}
	return nil
}
