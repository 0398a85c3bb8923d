package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Resonate-Protocol/sfxpool/pkg/audio"
	"github.com/Resonate-Protocol/sfxpool/pkg/audio/encode"
	"github.com/Resonate-Protocol/sfxpool/pkg/audio/output"
	"github.com/Resonate-Protocol/sfxpool/pkg/sfx"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// renderChunk is how much audio is mixed per step
const renderChunk = 10 * time.Millisecond

var (
	renderOutput   string
	renderBitDepth int
	renderPitch    float64
	renderStagger  time.Duration
	renderMax      time.Duration

	renderCmd = &cobra.Command{
		Use:   "render NAME...",
		Short: "Mix clips through the pool into a WAV or raw PCM file",
		Long: "\nPlay the named clips through a pool on an offline mixer and write the\n" +
			"result instead of sending it to a device. Files ending in .wav get a WAV\n" +
			"header; anything else is written as raw little-endian PCM.",
		Example: "sfxpool render explosion laser -o mix.wav\nsfxpool render coin coin coin --stagger 80ms -o coins.pcm --bit-depth 24",
		Args:    cobra.MinimumNArgs(1),
		RunE:    runRender,
	}
)

func runRender(cmd *cobra.Command, args []string) error {
	if renderBitDepth != 16 && renderBitDepth != 24 {
		return fmt.Errorf("unsupported bit depth: %d (supported: 16, 24)", renderBitDepth)
	}
	if renderMax <= 0 && (renderPitch == 0 || math.IsNaN(renderPitch) || math.IsInf(renderPitch, 0)) {
		return errors.New("a stalled pitch never finishes; set --max-length")
	}

	reg, _, err := loadClips(cmd.Context())
	if err != nil {
		return err
	}

	format := cfg.Format()
	mixer := output.NewMixer(format)
	defer mixer.Close()

	pool := sfx.NewPool(reg, mixer, cfg.Pool(log.Default()))
	defer pool.Close()

	var (
		samples []float32
		missing []string
	)
	chunk := make([]float32, framesPerChunk(format)*format.Channels)
	renderFor := func(d time.Duration) {
		for elapsed := time.Duration(0); elapsed < d; elapsed += renderChunk {
			mixer.Render(chunk)
			samples = append(samples, chunk...)
		}
	}

	for i, name := range args {
		if i > 0 && renderStagger > 0 {
			renderFor(renderStagger)
		}

		_, err := pool.PlayWith(name, cfg.Volume, renderPitch)
		switch {
		case errors.Is(err, sfx.ErrClipNotFound):
			missing = append(missing, name)
		case errors.Is(err, sfx.ErrCapacityExceeded):
			log.Warn("Clip dropped", "clip", name)
		case err != nil:
			return err
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %v", sfx.ErrClipNotFound, missing)
	}

	for pool.PlayingCount() > 0 {
		if renderMax > 0 && bufferDuration(format, len(samples)) >= renderMax {
			log.Warn("Render cut off", "max", renderMax, "playing", pool.PlayingCount())
			pool.StopImmediately()
			break
		}
		renderFor(renderChunk)
	}

	buf := &audio.Buffer{Format: format, Samples: samples}
	if err := writeRender(renderOutput, buf, renderBitDepth); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s, %s\n", renderOutput,
		buf.Duration().Round(time.Millisecond), humanize.Bytes(uint64(len(samples)*renderBitDepth/8)))
	return nil
}

// writeRender writes buf as WAV or raw PCM depending on the file extension
func writeRender(path string, buf *audio.Buffer, bitDepth int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create %s: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".wav") {
		if err := encode.WriteWAV(f, buf, bitDepth); err != nil {
			return err
		}
		return f.Close()
	}

	format := buf.Format
	format.BitDepth = bitDepth
	var enc encode.Encoder
	enc, err = encode.NewPCM(format)
	if err != nil {
		return err
	}
	data, err := enc.Encode(buf.Samples)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("unable to write %s: %w", path, err)
	}
	return f.Close()
}

func framesPerChunk(format audio.Format) int {
	n := int(int64(format.SampleRate) * int64(renderChunk) / int64(time.Second))
	if n < 1 {
		n = 1
	}
	return n
}

func bufferDuration(format audio.Format, samples int) time.Duration {
	frames := samples / format.Channels
	return time.Duration(frames) * time.Second / time.Duration(format.SampleRate)
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "mix.wav", "file to write (.wav for WAV, anything else for raw PCM)")
	renderCmd.Flags().IntVar(&renderBitDepth, "bit-depth", 16, "output bit depth (16 or 24)")
	renderCmd.Flags().Float64VarP(&renderPitch, "pitch", "p", 1.0, "playback rate multiplier")
	renderCmd.Flags().DurationVar(&renderStagger, "stagger", 0, "rendered time between starting consecutive clips")
	renderCmd.Flags().DurationVar(&renderMax, "max-length", time.Minute, "cut the render off after this long (0 for no limit)")
}
