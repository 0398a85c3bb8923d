package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Resonate-Protocol/sfxpool/pkg/audio/output"
	"github.com/Resonate-Protocol/sfxpool/pkg/sfx"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	pitch    float64
	waitFor  time.Duration
	interval time.Duration

	playCmd = &cobra.Command{
		Use:   "play NAME...",
		Short: "Play one or more clips and wait for them to finish",
		Long: "\nPlay the named clips at the same time, then wait until the pool is idle.\n" +
			"Clips over capacity are dropped with a warning; unknown clips are an error.",
		Example: "sfxpool play explosion\nsfxpool play beep beep beep --pitch 1.5\nsfxpool play alarm --wait 2s",
		Args:    cobra.MinimumNArgs(1),
		RunE:    runPlay,
	}
)

func runPlay(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg, _, err := loadClips(ctx)
	if err != nil {
		return err
	}

	pool, backend, err := openPool(reg)
	if err != nil {
		return err
	}
	defer closePool(pool, backend)

	var (
		missing []string
		longest time.Duration
	)
	for i, name := range args {
		if interval > 0 && i > 0 {
			pause(backend, interval)
		}

		pb, err := pool.PlayWith(name, cfg.Volume, pitch)
		switch {
		case errors.Is(err, sfx.ErrClipNotFound):
			missing = append(missing, name)
			continue
		case errors.Is(err, sfx.ErrCapacityExceeded):
			continue
		case err != nil:
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: channel %d (volume %.2f, pitch %.2f)\n",
			pb.Clip, pb.Channel, pb.Volume, pb.Pitch)

		clip, _ := reg.Lookup(name)
		if d := clip.Duration(); d > longest {
			longest = d
		}
	}

	waitIdle(ctx, pool, backend, longest)

	if len(missing) > 0 {
		return fmt.Errorf("%w: %v", sfx.ErrClipNotFound, missing)
	}
	return nil
}

// pause lets d pass between clips. The null backend has no clock, so it is
// advanced instead of sleeping.
func pause(backend output.Backend, d time.Duration) {
	if mixer, ok := backend.(*output.Mixer); ok {
		mixer.Advance(d)
		return
	}
	time.Sleep(d)
}

// waitIdle blocks until nothing plays, --wait elapses or ctx is done. The
// null backend is advanced step by step until idle instead.
func waitIdle(ctx context.Context, pool *sfx.Pool, backend output.Backend, longest time.Duration) {
	if mixer, ok := backend.(*output.Mixer); ok {
		advanceIdle(pool, mixer, idleLimit(longest, pitch))
		return
	}

	var deadline <-chan time.Time
	if waitFor > 0 {
		deadline = time.After(waitFor)
	}

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			pool.StopImmediately()
			return
		case <-deadline:
			pool.StopImmediately()
			return
		case <-ticker.C:
			if waitFor == 0 && pool.PlayingCount() == 0 {
				return
			}
		}
	}
}

// advanceIdle advances mixer until the pool is idle or limit has passed, then
// stops whatever is left
func advanceIdle(pool *sfx.Pool, mixer *output.Mixer, limit time.Duration) {
	const step = 10 * time.Millisecond

	var elapsed time.Duration
	for pool.PlayingCount() > 0 && elapsed < limit {
		mixer.Advance(step)
		elapsed += step
	}
	if n := pool.PlayingCount(); n > 0 {
		log.Debug("Null backend limit reached", "limit", limit, "playing", n)
		pool.StopImmediately()
	}
	log.Debug("Null backend advanced", "duration", elapsed)
}

// idleLimit is how long the null backend may run: --wait if set, otherwise
// the longest clip stretched by the pitch. A stalled pitch never ends, so it
// gets the clip length.
func idleLimit(longest time.Duration, pitch float64) time.Duration {
	if waitFor > 0 {
		return waitFor
	}
	rate := math.Abs(pitch)
	if rate == 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return longest
	}
	return time.Duration(float64(longest)/rate) + 10*time.Millisecond
}

func init() {
	playCmd.Flags().Float64VarP(&pitch, "pitch", "p", 1.0, "playback rate multiplier (negative plays backwards)")
	playCmd.Flags().DurationVarP(&waitFor, "wait", "w", 0, "stop everything after this long instead of waiting for the clips to end")
	playCmd.Flags().DurationVar(&interval, "interval", 0, "delay between starting consecutive clips")
}
