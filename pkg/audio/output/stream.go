// ABOUTME: Clip stream that renders a decoded clip at a pitch ratio
// ABOUTME: Linear interpolation, channel mapping and float32LE io.ReadSeeker for oto
package output

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"sync"

	"github.com/Resonate-Protocol/sfxpool/pkg/audio"
)

// Stream renders a clip to the output layout at a pitch ratio
type Stream struct {
	mu       sync.Mutex
	clip     *audio.Buffer
	channels int // output channels
	rate     int // output sample rate
	pitch    float64
	step     float64 // clip frames advanced per output frame
	pos      float64
	done     bool
	frame    []float32
	scratch  []float32
}

// NewStream creates an empty stream for the given output format
func NewStream(format audio.Format) *Stream {
	return &Stream{
		channels: format.Channels,
		rate:     format.SampleRate,
		pitch:    1,
		step:     1,
		done:     true,
		frame:    make([]float32, format.Channels),
	}
}

// Load binds a clip and rewinds
func (s *Stream) Load(buf *audio.Buffer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clip = buf
	s.updateStep()
	s.rewind()
}

// SetPitch changes the playback rate multiplier. NaN stalls the stream.
func (s *Stream) SetPitch(pitch float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pitch = pitch
	s.updateStep()
}

// Rewind moves to the start of the clip (the end when playing backwards)
func (s *Stream) Rewind() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rewind()
}

// Done reports whether the clip has been fully rendered
func (s *Stream) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

func (s *Stream) updateStep() {
	pitch := s.pitch
	if math.IsNaN(pitch) || math.IsInf(pitch, 0) {
		pitch = 0
	}
	s.step = pitch
	if s.clip != nil && s.rate > 0 && s.clip.Format.SampleRate > 0 {
		s.step = pitch * float64(s.clip.Format.SampleRate) / float64(s.rate)
	}
}

func (s *Stream) rewind() {
	frames := s.clip.Frames()
	s.done = frames == 0
	if s.step < 0 {
		s.pos = float64(frames - 1)
	} else {
		s.pos = 0
	}
}

// ReadFrames renders up to len(dst)/channels frames into dst and returns the
// number of frames written. It returns 0 once the clip is done.
func (s *Stream) ReadFrames(dst []float32) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done || s.channels <= 0 {
		return 0
	}

	frames := s.clip.Frames()
	want := len(dst) / s.channels
	n := 0
	for n < want {
		if s.pos < 0 || s.pos >= float64(frames) {
			s.done = true
			break
		}
		s.sampleAt(s.pos, frames)
		copy(dst[n*s.channels:], s.frame)
		n++
		s.pos += s.step
	}
	if s.pos < 0 || s.pos >= float64(frames) {
		s.done = true
	}
	return n
}

// sampleAt interpolates the clip frame at pos into s.frame, mapped to the
// output channel layout
func (s *Stream) sampleAt(pos float64, frames int) {
	clipCh := s.clip.Format.Channels
	idx := int(pos)
	next := idx + 1
	if next >= frames {
		next = idx
	}
	frac := float32(pos - float64(idx))

	mix := func(ch int) float32 {
		a := s.clip.Samples[idx*clipCh+ch]
		b := s.clip.Samples[next*clipCh+ch]
		return a*(1-frac) + b*frac
	}

	switch {
	case clipCh == s.channels:
		for ch := 0; ch < s.channels; ch++ {
			s.frame[ch] = mix(ch)
		}
	case s.channels == 1:
		var sum float32
		for ch := 0; ch < clipCh; ch++ {
			sum += mix(ch)
		}
		s.frame[0] = sum / float32(clipCh)
	default:
		for ch := 0; ch < s.channels; ch++ {
			src := ch
			if src >= clipCh {
				src = clipCh - 1
			}
			s.frame[ch] = mix(src)
		}
	}
}

// Read implements io.Reader over float32 little-endian interleaved samples
func (s *Stream) Read(p []byte) (int, error) {
	frameBytes := 4 * s.channels
	frames := len(p) / frameBytes
	if frames == 0 {
		if s.Done() {
			return 0, io.EOF
		}
		return 0, nil
	}

	if cap(s.scratch) < frames*s.channels {
		s.scratch = make([]float32, frames*s.channels)
	}
	buf := s.scratch[:frames*s.channels]

	n := s.ReadFrames(buf)
	if n == 0 {
		return 0, io.EOF
	}
	for i, v := range buf[:n*s.channels] {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(v))
	}
	return n * frameBytes, nil
}

// Seek supports rewinding to the start only; oto calls it on reset
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	if offset != 0 || whence != io.SeekStart {
		return 0, errors.New("stream: only rewinding to the start is supported")
	}
	s.Rewind()
	return 0, nil
}
