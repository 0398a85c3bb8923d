// ABOUTME: Software mixer and null backend
// ABOUTME: Sums playing voices into one interleaved float32 buffer for callback-driven devices
package output

import (
	"sync"
	"time"

	"github.com/Resonate-Protocol/sfxpool/pkg/audio"
)

// Mixer mixes its voices in software. With no device attached it is the null
// backend: nothing is heard, and time only passes through Render or Advance.
type Mixer struct {
	mu      sync.Mutex
	format  audio.Format
	voices  []*mixerVoice
	scratch []float32
	closed  bool
}

// NewMixer creates a mixer for the given output format
func NewMixer(format audio.Format) *Mixer {
	return &Mixer{format: format}
}

// Format returns the mixer output format
func (m *Mixer) Format() audio.Format {
	return m.format
}

// NewVoice allocates an idle voice mixed by m
func (m *Mixer) NewVoice() (Voice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrBackendClosed
	}

	v := &mixerVoice{
		mixer:  m,
		stream: NewStream(m.format),
		volume: 1,
	}
	m.voices = append(m.voices, v)
	return v, nil
}

// Render fills dst (interleaved, output channel count) with the sum of all
// playing voices, clipped to [-1, 1]. Voices whose clip ends are marked idle.
func (m *Mixer) Render(dst []float32) {
	for i := range dst {
		dst[i] = 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}

	if cap(m.scratch) < len(dst) {
		m.scratch = make([]float32, len(dst))
	}
	scratch := m.scratch[:len(dst)]

	for _, v := range m.voices {
		if !v.playing {
			continue
		}
		n := v.stream.ReadFrames(scratch)
		gain := float32(v.volume)
		for i := 0; i < n*m.format.Channels; i++ {
			dst[i] += scratch[i] * gain
		}
		if v.stream.Done() {
			v.playing = false
		}
	}

	for i := range dst {
		dst[i] = audio.ClampSample(dst[i])
	}
}

// Advance renders and discards d worth of audio
func (m *Mixer) Advance(d time.Duration) {
	frames := framesFor(d, m.format.SampleRate)
	if frames <= 0 {
		return
	}
	m.Render(make([]float32, frames*m.format.Channels))
}

// Close stops every voice; later NewVoice calls fail
func (m *Mixer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, v := range m.voices {
		v.playing = false
	}
	m.voices = nil
	m.closed = true
	return nil
}

// mixerVoice state is guarded by the owning mixer's mutex
type mixerVoice struct {
	mixer   *Mixer
	stream  *Stream
	volume  float64
	playing bool
}

func (v *mixerVoice) Load(buf *audio.Buffer) {
	v.mixer.mu.Lock()
	defer v.mixer.mu.Unlock()
	v.stream.Load(buf)
}

func (v *mixerVoice) SetVolume(volume float64) {
	v.mixer.mu.Lock()
	defer v.mixer.mu.Unlock()
	v.volume = volume
}

func (v *mixerVoice) SetPitch(pitch float64) {
	v.mixer.mu.Lock()
	defer v.mixer.mu.Unlock()
	v.stream.SetPitch(pitch)
}

func (v *mixerVoice) Play() error {
	v.mixer.mu.Lock()
	defer v.mixer.mu.Unlock()

	if v.mixer.closed {
		return ErrBackendClosed
	}
	v.stream.Rewind()
	v.playing = !v.stream.Done()
	return nil
}

func (v *mixerVoice) Stop() {
	v.mixer.mu.Lock()
	defer v.mixer.mu.Unlock()
	v.playing = false
}

func (v *mixerVoice) IsPlaying() bool {
	v.mixer.mu.Lock()
	defer v.mixer.mu.Unlock()
	return v.playing
}

func (v *mixerVoice) Close() error {
	v.mixer.mu.Lock()
	defer v.mixer.mu.Unlock()

	v.playing = false
	for i, other := range v.mixer.voices {
		if other == v {
			v.mixer.voices = append(v.mixer.voices[:i], v.mixer.voices[i+1:]...)
			break
		}
	}
	return nil
}
