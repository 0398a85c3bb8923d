//go:build portaudio

// ABOUTME: PortAudio output implementation
// ABOUTME: Cross-platform audio output pulling from the software mixer
package output

import (
	"fmt"
	"time"

	"github.com/Resonate-Protocol/sfxpool/pkg/audio"
	"github.com/charmbracelet/log"
	"github.com/gordonklaus/portaudio"
)

// PortAudio output implementation
type PortAudio struct {
	*Mixer
	stream *portaudio.Stream
}

// NewPortAudio opens the default PortAudio output stream
func NewPortAudio(format audio.Format, bufferSize time.Duration) (*PortAudio, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	p := &PortAudio{Mixer: NewMixer(format)}

	framesPerBuffer := framesFor(bufferSize, format.SampleRate)
	stream, err := portaudio.OpenDefaultStream(0, format.Channels, float64(format.SampleRate), framesPerBuffer, func(out []float32) {
		p.Render(out)
	})
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("failed to open stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("failed to start stream: %w", err)
	}
	p.stream = stream

	log.Debug("Audio output initialized", "backend", BackendPortAudio,
		"sample_rate", format.SampleRate, "channels", format.Channels, "frames_per_buffer", framesPerBuffer)

	return p, nil
}

// Close releases resources
func (p *PortAudio) Close() error {
	if p.stream != nil {
		if err := p.stream.Stop(); err != nil {
			return err
		}
		if err := p.stream.Close(); err != nil {
			return err
		}
		p.stream = nil
	}
	if err := p.Mixer.Close(); err != nil {
		return err
	}
	return portaudio.Terminate()
}
