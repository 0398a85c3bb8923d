// ABOUTME: Decoder interface definition
// ABOUTME: Common interface for all audio decoders and extension lookup
package decode

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Resonate-Protocol/sfxpool/pkg/audio"
)

var (
	// ErrUnsupportedFormat is returned for file extensions or encodings no decoder handles
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	// ErrInvalidFile is returned when the input does not look like the expected container
	ErrInvalidFile = errors.New("invalid audio file")
)

// Decoder decodes a complete audio file into PCM float32 samples
type Decoder interface {
	// Decode reads all of r and returns the decoded clip
	Decode(r io.Reader) (*audio.Buffer, error)
}

// DecoderFunc adapts a function to the Decoder interface
type DecoderFunc func(r io.Reader) (*audio.Buffer, error)

// Decode calls f(r)
func (f DecoderFunc) Decode(r io.Reader) (*audio.Buffer, error) {
	return f(r)
}

var byExtension = map[string]Decoder{
	".wav":  NewWAV(),
	".wave": NewWAV(),
	".aif":  NewAIFF(),
	".aiff": NewAIFF(),
	".mp3":  NewMP3(),
	".flac": NewFLAC(),
	".ogg":  NewVorbis(),
	".oga":  NewVorbis(),
}

// ForExtension returns the decoder for a file extension (with or without the
// leading dot, case-insensitive)
func ForExtension(ext string) (Decoder, error) {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if d, ok := byExtension[ext]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedFormat, ext, strings.Join(Extensions(), ", "))
}

// Extensions lists the file extensions ForExtension understands
func Extensions() []string {
	exts := make([]string, 0, len(byExtension))
	for ext := range byExtension {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// toFloat32 converts interleaved integer samples to float32
func toFloat32(data []int, bitDepth int) []float32 {
	samples := make([]float32, len(data))
	for i, v := range data {
		samples[i] = audio.SampleFromInt(v, bitDepth)
	}
	return samples
}
