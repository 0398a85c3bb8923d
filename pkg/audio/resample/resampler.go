// ABOUTME: Simple linear resampler for converting audio sample rates
// ABOUTME: Used to convert decoded clips to the output device rate
package resample

import "github.com/Resonate-Protocol/sfxpool/pkg/audio"

// Resampler performs linear interpolation to convert between sample rates
type Resampler struct {
	inputRate  int
	outputRate int
	channels   int
	ratio      float64
	position   float64
}

// New creates a new resampler
func New(inputRate, outputRate, channels int) *Resampler {
	return &Resampler{
		inputRate:  inputRate,
		outputRate: outputRate,
		channels:   channels,
		ratio:      float64(inputRate) / float64(outputRate),
	}
}

// Resample converts input samples to output sample rate using linear interpolation.
// input and output are interleaved. The final input frame is held rather than
// interpolated past, so a whole clip converts without losing its tail.
// Returns the number of output samples written.
func (r *Resampler) Resample(input []float32, output []float32) int {
	if len(input) == 0 || r.channels <= 0 {
		return 0
	}

	inputFrames := len(input) / r.channels
	outputFrames := len(output) / r.channels

	outIdx := 0
	for outIdx < outputFrames {
		inputIdx := int(r.position)
		if inputIdx >= inputFrames {
			break
		}

		frac := float32(r.position - float64(inputIdx))
		next := inputIdx + 1
		if next >= inputFrames {
			next = inputIdx
		}

		for ch := 0; ch < r.channels; ch++ {
			s1 := input[inputIdx*r.channels+ch]
			s2 := input[next*r.channels+ch]
			output[outIdx*r.channels+ch] = s1*(1-frac) + s2*frac
		}

		outIdx++
		r.position += r.ratio
	}

	// Keep the fractional part for the next chunk
	r.position -= float64(int(r.position))

	return outIdx * r.channels
}

// Reset resets the resampler state
func (r *Resampler) Reset() {
	r.position = 0
}

// OutputSamplesNeeded calculates how many output samples will be produced from input samples
func (r *Resampler) OutputSamplesNeeded(inputSamples int) int {
	inputFrames := inputSamples / r.channels
	outputFrames := int(float64(inputFrames) / r.ratio)
	return outputFrames * r.channels
}

// Buffer converts a whole clip to the target rate. The input is returned
// unchanged when it is already at that rate.
func Buffer(buf *audio.Buffer, targetRate int) *audio.Buffer {
	if buf == nil || targetRate <= 0 || buf.Format.SampleRate == targetRate || buf.Format.SampleRate <= 0 {
		return buf
	}

	r := New(buf.Format.SampleRate, targetRate, buf.Format.Channels)
	out := make([]float32, r.OutputSamplesNeeded(len(buf.Samples)))
	n := r.Resample(buf.Samples, out)

	format := buf.Format
	format.SampleRate = targetRate
	return &audio.Buffer{
		Format:  format,
		Samples: out[:n],
	}
}
