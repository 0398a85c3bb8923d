// ABOUTME: Malgo-based audio output implementation
// ABOUTME: Uses miniaudio via malgo, pulling float32 frames from the software mixer
package output

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/Resonate-Protocol/sfxpool/pkg/audio"
	"github.com/charmbracelet/log"
	"github.com/gen2brain/malgo"
)

// Malgo output implementation using malgo/miniaudio library
type Malgo struct {
	*Mixer

	mu       sync.Mutex
	malgoCtx *malgo.AllocatedContext
	device   *malgo.Device
	samples  []float32
}

// NewMalgo opens the default playback device and starts pulling from a mixer
func NewMalgo(format audio.Format, bufferSize time.Duration) (*Malgo, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize malgo context: %w", err)
	}

	m := &Malgo{
		Mixer:    NewMixer(format),
		malgoCtx: ctx,
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatF32
	deviceConfig.Playback.Channels = uint32(format.Channels)
	deviceConfig.SampleRate = uint32(format.SampleRate)
	deviceConfig.PeriodSizeInMilliseconds = uint32(bufferSize / time.Millisecond)
	deviceConfig.Alsa.NoMMap = 1

	callbacks := malgo.DeviceCallbacks{
		Data: func(pOutput, _ []byte, frameCount uint32) {
			m.dataCallback(pOutput, frameCount)
		},
	}

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, callbacks)
	if err != nil {
		m.freeContext()
		return nil, fmt.Errorf("failed to initialize playback device: %w", err)
	}

	if err := device.Start(); err != nil {
		device.Uninit()
		m.freeContext()
		return nil, fmt.Errorf("failed to start device: %w", err)
	}
	m.device = device

	log.Debug("Audio output initialized", "backend", BackendMalgo,
		"sample_rate", format.SampleRate, "channels", format.Channels, "buffer", bufferSize)

	return m, nil
}

// dataCallback is called by malgo to fill the audio output buffer
func (m *Malgo) dataCallback(pOutput []byte, frameCount uint32) {
	total := int(frameCount) * m.format.Channels
	if cap(m.samples) < total {
		m.samples = make([]float32, total)
	}
	samples := m.samples[:total]

	m.Render(samples)

	for i, s := range samples {
		binary.LittleEndian.PutUint32(pOutput[i*4:], math.Float32bits(s))
	}
}

// Close stops the device, then the mixer
func (m *Malgo) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.device != nil {
		if err := m.device.Stop(); err != nil {
			log.Warn("Device stop error", "error", err)
		}
		m.device.Uninit()
		m.device = nil
	}
	m.freeContext()

	return m.Mixer.Close()
}

func (m *Malgo) freeContext() {
	if m.malgoCtx == nil {
		return
	}
	if err := m.malgoCtx.Uninit(); err != nil {
		log.Warn("malgo context uninit error", "error", err)
	}
	m.malgoCtx.Free()
	m.malgoCtx = nil
}
