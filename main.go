// ABOUTME: Entry point for the sfxpool sound-effect player
// ABOUTME: Loads clips, opens the audio output and runs the SE manager panel
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Resonate-Protocol/sfxpool/internal/assets"
	"github.com/Resonate-Protocol/sfxpool/internal/config"
	"github.com/Resonate-Protocol/sfxpool/internal/ui"
	"github.com/Resonate-Protocol/sfxpool/internal/version"
	"github.com/Resonate-Protocol/sfxpool/pkg/audio/output"
	"github.com/Resonate-Protocol/sfxpool/pkg/sfx"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var (
	configFile string
	cfg        config.Config

	rootCmd = &cobra.Command{
		Use:   "sfxpool",
		Short: "Play sound effects through a bounded pool of audio channels",
		Long: "\nsfxpool loads every sound effect under the assets directory and opens the\n" +
			"SE manager panel for playing and stopping them by hand. Without a terminal\n" +
			"it prints the clip names instead.",
		SilenceUsage:      true,
		Args:              cobra.NoArgs,
		PersistentPreRunE: loadConfig,
		RunE:              execute,
	}
)

// loadConfig layers .env, environment, config file and flags into cfg
func loadConfig(*cobra.Command, []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	used, err := config.Setup(viper.GetViper(), configFile)
	if err != nil {
		return err
	}

	cfg, err = config.Decode(viper.GetViper())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}
	log.Debug("Configuration loaded", "file", used, "assets", cfg.Assets,
		"backend", cfg.Backend, "max_audio_sources", cfg.MaxAudioSources, "volume", cfg.Volume)

	return nil
}

// loadClips builds the registry from the assets directory
func loadClips(ctx context.Context) (*sfx.Registry, assets.Stats, error) {
	raw, err := cfg.Raw()
	if err != nil {
		return nil, assets.Stats{}, err
	}

	l := &assets.Loader{
		FS:     os.DirFS(cfg.Assets),
		Root:   ".",
		Target: cfg.Format(),
		Raw:    raw,
		Logger: log.Default(),
	}

	reg, stats, err := l.Load(ctx)
	if err != nil {
		return nil, stats, fmt.Errorf("unable to load assets from %s: %w", cfg.Assets, err)
	}

	log.Info("Clips loaded", "clips", stats.Clips, "skipped", stats.Skipped,
		"memory", humanize.Bytes(stats.Bytes))
	return reg, stats, nil
}

// openPool opens the configured backend and creates a pool on it. The caller
// closes both, pool first.
func openPool(reg *sfx.Registry) (*sfx.Pool, output.Backend, error) {
	backend, err := output.Open(cfg.Backend, cfg.Format(), cfg.Buffer)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to open audio output: %w", err)
	}

	pool := sfx.NewPool(reg, backend, cfg.Pool(log.Default()))
	return pool, backend, nil
}

func closePool(pool *sfx.Pool, backend output.Backend) {
	if err := pool.Close(); err != nil {
		log.Warn("Error closing pool", "error", err)
	}
	if err := backend.Close(); err != nil {
		log.Warn("Error closing audio output", "error", err)
	}
}

func execute(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg, _, err := loadClips(ctx)
	if err != nil {
		return err
	}

	// No terminal to draw the panel on: just list what would be playable
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		for _, name := range reg.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	}

	pool, backend, err := openPool(reg)
	if err != nil {
		return err
	}
	defer closePool(pool, backend)

	// The panel owns the terminal from here on
	logToFileOnly()

	if err := ui.Run(pool, tea.WithContext(ctx)); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("unable to run tui program: %w", err)
	}
	return nil
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("%s {{.Version}} (%s)\n", version.Product, version.Manufacturer))

	d := config.Defaults()
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default searched in the user config dir)")
	flags.StringP("assets", "a", d.Assets, "directory holding the sound-effect files")
	flags.IntP("max-audio-sources", "n", d.MaxAudioSources, "maximum number of sounds playing at once")
	flags.Float64P("volume", "v", d.Volume, "default volume (0.0 to 1.0)")
	flags.StringP("backend", "b", d.Backend, "audio output: oto, malgo, portaudio or null")
	flags.Int("sample-rate", d.SampleRate, "output sample rate")
	flags.Int("channels", d.Channels, "output channel count")
	flags.Duration("buffer", d.Buffer, "audio device buffer")
	flags.String("raw-format", d.RawFormat, "layout of headerless .pcm/.raw files, e.g. s16le:44100:1")
	flags.Bool("debug", d.Debug, "enable debug logging")

	// Config bindings
	_ = viper.BindPFlag("assets", flags.Lookup("assets"))
	_ = viper.BindPFlag("max_audio_sources", flags.Lookup("max-audio-sources"))
	_ = viper.BindPFlag("volume", flags.Lookup("volume"))
	_ = viper.BindPFlag("backend", flags.Lookup("backend"))
	_ = viper.BindPFlag("sample_rate", flags.Lookup("sample-rate"))
	_ = viper.BindPFlag("channels", flags.Lookup("channels"))
	_ = viper.BindPFlag("buffer", flags.Lookup("buffer"))
	_ = viper.BindPFlag("raw_format", flags.Lookup("raw-format"))
	_ = viper.BindPFlag("debug", flags.Lookup("debug"))

	rootCmd.AddCommand(playCmd, renderCmd, listCmd, configCmd, manCmd)
}

// logToFileOnly stops mirroring logs to stderr
func logToFileOnly() {
	if logFile != nil {
		log.SetOutput(logFile)
	} else {
		log.SetOutput(io.Discard)
	}
}
