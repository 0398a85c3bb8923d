// ABOUTME: Application configuration
// ABOUTME: Defaults and environment via struct tags, validation and conversion to component configs
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Resonate-Protocol/sfxpool/pkg/audio"
	"github.com/Resonate-Protocol/sfxpool/pkg/audio/output"
	"github.com/Resonate-Protocol/sfxpool/pkg/sfx"
	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/mitchellh/go-homedir"
)

// EnvPrefix prefixes every environment variable, e.g. SFXPOOL_VOLUME
const EnvPrefix = "SFXPOOL_"

// Config holds the settings shared by the CLI and the example host
type Config struct {
	// Assets is the directory holding the sound-effect files
	Assets string `env:"ASSETS" envDefault:"./Audio/SE" mapstructure:"assets"`

	// MaxAudioSources caps concurrently playing channels
	MaxAudioSources int `env:"MAX_AUDIO_SOURCES" envDefault:"10" mapstructure:"max_audio_sources"`

	// Volume is the default playback volume in [0, 1]
	Volume float64 `env:"VOLUME" envDefault:"1.0" mapstructure:"volume"`

	// Backend selects the audio output: oto, malgo, portaudio or null
	Backend string `env:"BACKEND" envDefault:"oto" mapstructure:"backend"`

	// SampleRate is the output rate; clips are resampled to it at load
	SampleRate int `env:"SAMPLE_RATE" envDefault:"48000" mapstructure:"sample_rate"`

	// Channels is the output channel count
	Channels int `env:"CHANNELS" envDefault:"2" mapstructure:"channels"`

	// Buffer is the device buffer length
	Buffer time.Duration `env:"BUFFER" envDefault:"50ms" mapstructure:"buffer"`

	// RawFormat describes headerless .pcm/.raw files as ENCODING:RATE:CHANNELS,
	// e.g. "s16le:44100:1". Empty skips those files.
	RawFormat string `env:"RAW_FORMAT" envDefault:"" mapstructure:"raw_format"`

	// Debug enables debug logging
	Debug bool `env:"DEBUG" envDefault:"false" mapstructure:"debug"`
}

// Defaults returns the built-in configuration, ignoring the environment
func Defaults() Config {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{
		Prefix:      EnvPrefix,
		Environment: map[string]string{},
	})
	if err != nil {
		// envDefault tags are constants; this only fails if they are malformed
		panic(fmt.Sprintf("invalid config defaults: %v", err))
	}
	return cfg
}

// FromEnv reads the configuration from SFXPOOL_* variables on top of the
// defaults. A nil environment means the process environment.
func FromEnv(environment map[string]string) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{
		Prefix:      EnvPrefix,
		Environment: environment,
	})
	if err != nil {
		return Config{}, fmt.Errorf("error parsing environment: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise fail deep inside the
// audio stack, expands ~ in Assets and clamps Volume
func (c *Config) Validate() error {
	switch c.Backend {
	case output.BackendOto, output.BackendMalgo, output.BackendPortAudio, output.BackendNull:
	default:
		return fmt.Errorf("%w: %q", output.ErrUnknownBackend, c.Backend)
	}

	if c.SampleRate < 8000 || c.SampleRate > 192000 {
		return fmt.Errorf("sample rate must be between 8000 and 192000, got %d", c.SampleRate)
	}
	if c.Channels < 1 || c.Channels > 8 {
		return fmt.Errorf("channels must be between 1 and 8, got %d", c.Channels)
	}
	if c.Buffer <= 0 {
		return fmt.Errorf("buffer must be positive, got %s", c.Buffer)
	}
	if c.Assets == "" {
		return errors.New("assets directory not set")
	}
	if _, err := c.Raw(); err != nil {
		return err
	}

	assets, err := homedir.Expand(c.Assets)
	if err != nil {
		return fmt.Errorf("unable to expand assets path: %w", err)
	}
	c.Assets = assets
	c.Volume = audio.ClampVolume(c.Volume)

	return nil
}

// Format returns the output device format
func (c Config) Format() audio.Format {
	return audio.Format{
		Codec:      "pcm",
		SampleRate: c.SampleRate,
		Channels:   c.Channels,
		BitDepth:   32,
	}
}

// Raw parses RawFormat. It returns nil when RawFormat is empty.
func (c Config) Raw() (*audio.Format, error) {
	if c.RawFormat == "" {
		return nil, nil
	}

	parts := strings.Split(c.RawFormat, ":")
	if len(parts) != 3 {
		return nil, fmt.Errorf("raw format must be ENCODING:RATE:CHANNELS, got %q", c.RawFormat)
	}

	var bitDepth int
	switch strings.ToLower(parts[0]) {
	case "s16le":
		bitDepth = 16
	case "s24le":
		bitDepth = 24
	default:
		return nil, fmt.Errorf("unsupported raw encoding %q (supported: s16le, s24le)", parts[0])
	}

	rate, err := strconv.Atoi(parts[1])
	if err != nil || rate <= 0 {
		return nil, fmt.Errorf("invalid raw sample rate %q", parts[1])
	}
	channels, err := strconv.Atoi(parts[2])
	if err != nil || channels <= 0 {
		return nil, fmt.Errorf("invalid raw channel count %q", parts[2])
	}

	return &audio.Format{
		Codec:      "pcm",
		SampleRate: rate,
		Channels:   channels,
		BitDepth:   bitDepth,
	}, nil
}

// Pool returns the pool configuration
func (c Config) Pool(logger *log.Logger) sfx.Config {
	return sfx.Config{
		MaxAudioSources: c.MaxAudioSources,
		DefaultVolume:   c.Volume,
		Logger:          logger,
	}
}
