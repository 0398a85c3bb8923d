// ABOUTME: Test doubles for the pool
// ABOUTME: In-memory voices whose playing state tests control directly
package sfx

import (
	"errors"
	"io"

	"github.com/Resonate-Protocol/sfxpool/pkg/audio"
	"github.com/Resonate-Protocol/sfxpool/pkg/audio/output"
	"github.com/charmbracelet/log"
)

type fakeVoice struct {
	buf     *audio.Buffer
	volume  float64
	pitch   float64
	playing bool
	plays   int
	stops   int
	closed  bool
	playErr error
}

func (v *fakeVoice) Load(buf *audio.Buffer) { v.buf = buf }
func (v *fakeVoice) SetVolume(volume float64) { v.volume = volume }
func (v *fakeVoice) SetPitch(pitch float64) { v.pitch = pitch }
func (v *fakeVoice) Play() error {
	if v.playErr != nil {
		return v.playErr
	}
	v.plays++
	v.playing = true
	return nil
}
func (v *fakeVoice) Stop() { v.stops++; v.playing = false }
func (v *fakeVoice) IsPlaying() bool { return v.playing }
func (v *fakeVoice) Close() error { v.closed = true; return nil }

// finish simulates the clip reaching its end
func (v *fakeVoice) finish() { v.playing = false }

type fakeBackend struct {
	voices  []*fakeVoice
	err     error
	playErr error // given to every new voice
}

func (b *fakeBackend) NewVoice() (output.Voice, error) {
	if b.err != nil {
		return nil, b.err
	}
	v := &fakeVoice{playErr: b.playErr}
	b.voices = append(b.voices, v)
	return v, nil
}

var errNoDevice = errors.New("no device")

func testClip(name string) *Clip {
	return NewClip(name, &audio.Buffer{
		Format:  audio.Format{Codec: "pcm", SampleRate: 1000, Channels: 1, BitDepth: 16},
		Samples: make([]float32, 100),
	})
}

func testRegistry(names ...string) *Registry {
	clips := make([]*Clip, len(names))
	for i, name := range names {
		clips[i] = testClip(name)
	}
	return NewRegistry(clips...)
}

func testConfig(capacity int) Config {
	cfg := DefaultConfig()
	cfg.MaxAudioSources = capacity
	cfg.Logger = log.New(io.Discard)
	return cfg
}
