// ABOUTME: Pool channel
// ABOUTME: Wraps one output voice together with the clip last bound to it
package sfx

import "github.com/Resonate-Protocol/sfxpool/pkg/audio/output"

type channel struct {
	voice  output.Voice
	clip   *Clip // nil until first use
	volume float64
	pitch  float64
}

func newChannel(voice output.Voice) *channel {
	return &channel{voice: voice, pitch: 1}
}

// free reports whether the channel can take a new clip, regardless of what it
// played before
func (c *channel) free() bool {
	return !c.voice.IsPlaying()
}

// start overwrites whatever the channel held and plays clip from the
// beginning. If the voice fails to start the channel keeps its old binding.
func (c *channel) start(clip *Clip, volume, pitch float64) error {
	c.voice.Load(clip.Buffer)
	c.voice.SetVolume(volume)
	c.voice.SetPitch(pitch)
	if err := c.voice.Play(); err != nil {
		return err
	}

	c.clip = clip
	c.volume = volume
	c.pitch = pitch
	return nil
}

func (c *channel) stop() {
	c.voice.Stop()
}

func (c *channel) clipName() string {
	if c.clip == nil {
		return ""
	}
	return c.clip.Name
}
