// ABOUTME: Audio output package for sound-effect voices
// ABOUTME: Provides Voice and Backend interfaces plus oto, malgo, PortAudio and null backends
// Package output provides playback voices for short clips.
//
// A Backend hands out Voices. Each Voice plays one clip at a time with its own
// volume and pitch, and reports when it has finished. The oto backend gives
// every voice its own oto player and lets oto mix them. The malgo and
// PortAudio backends pull from a software Mixer. The null backend is a Mixer
// with no device behind it, advanced by hand.
//
// Example:
//
//	backend, err := output.Open("oto", audio.Format{SampleRate: 48000, Channels: 2}, 50*time.Millisecond)
//	voice, err := backend.NewVoice()
//	voice.Load(clip)
//	voice.SetVolume(0.8)
//	err = voice.Play()
package output
