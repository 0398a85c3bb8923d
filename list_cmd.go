package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the clips found under the assets directory",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		reg, stats, err := loadClips(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if reg.Len() == 0 {
			fmt.Fprintln(out, "Audio clips not found.")
			return nil
		}

		t := table.New().
			Border(lipgloss.HiddenBorder()).
			Headers("CLIP", "DURATION", "FORMAT", "SIZE")
		for _, name := range reg.Names() {
			clip, _ := reg.Lookup(name)
			t.Row(
				name,
				clip.Duration().Round(time.Millisecond).String(),
				fmt.Sprintf("%dHz %dch", clip.Buffer.Format.SampleRate, clip.Buffer.Format.Channels),
				humanize.Bytes(clip.Buffer.Size()),
			)
		}
		fmt.Fprintln(out, t)

		fmt.Fprintf(out, "%d clips, %s in memory", stats.Clips, humanize.Bytes(stats.Bytes))
		if stats.Skipped > 0 {
			fmt.Fprintf(out, ", %d files skipped", stats.Skipped)
		}
		if stats.Duplicates > 0 {
			fmt.Fprintf(out, ", %d duplicate names", stats.Duplicates)
		}
		fmt.Fprintln(out)
		return nil
	},
}
