// ABOUTME: Configuration file handling
// ABOUTME: Locates, reads and creates the YAML config file through viper
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/viper"
)

// Name is used for the config file name and the user config directory
const Name = "sfxpool"

// DefaultFile is the config file written by EnsureFile
const DefaultFile = `# directory holding the sound-effect files
assets: "./Audio/SE"
# maximum number of sounds playing at once
max_audio_sources: 10
# default volume (0.0 to 1.0)
volume: 1.0
# audio output: oto, malgo, portaudio or null
backend: "oto"
# output format; clips are resampled at load
sample_rate: 48000
channels: 2
# device buffer
buffer: "50ms"
# headerless .pcm/.raw files as ENCODING:RATE:CHANNELS, e.g. "s16le:44100:1"
raw_format: ""
# debug logging
debug: false
`

// SearchDirs returns the directories searched for sfxpool.yml, most specific
// first
func SearchDirs() ([]string, error) {
	scope := gap.NewScope(gap.User, Name)
	dirs, err := scope.ConfigDirs()
	if err != nil {
		return nil, fmt.Errorf("could not find configuration directory: %w", err)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, Name)}, dirs...)
	}
	if c := os.Getenv("SFXPOOL_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	return dirs, nil
}

// LoadDotEnv loads variables from a .env file in the working directory, if
// there is one. Variables already set are not overridden.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("unable to load .env: %w", err)
	}
	return nil
}

// Setup registers defaults and environment binding on v and reads the config
// file: file if given, else the first sfxpool.yml in SearchDirs. It returns
// the path of the file used, or "" when none exists yet.
func Setup(v *viper.Viper, file string) (string, error) {
	d := Defaults()
	v.SetDefault("assets", d.Assets)
	v.SetDefault("max_audio_sources", d.MaxAudioSources)
	v.SetDefault("volume", d.Volume)
	v.SetDefault("backend", d.Backend)
	v.SetDefault("sample_rate", d.SampleRate)
	v.SetDefault("channels", d.Channels)
	v.SetDefault("buffer", d.Buffer)
	v.SetDefault("raw_format", d.RawFormat)
	v.SetDefault("debug", d.Debug)

	v.SetEnvPrefix(Name)
	v.AutomaticEnv()

	if file != "" {
		if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		v.SetConfigFile(file)
	} else {
		dirs, err := SearchDirs()
		if err != nil {
			return "", err
		}
		for _, dir := range dirs {
			v.AddConfigPath(dir)
		}
		v.SetConfigName(Name)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return "", fmt.Errorf("could not parse configuration file: %w", err)
		}
		return "", nil
	}

	log.Debug("Using configuration file", "path", v.ConfigFileUsed())
	return v.ConfigFileUsed(), nil
}

// Decode reads the effective configuration out of v
func Decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error parsing config: %w", err)
	}
	return cfg, nil
}

// EnsureFile writes DefaultFile to file unless it already exists
func EnsureFile(file string) error {
	if ext := path.Ext(file); ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("'%s' is not a supported configuration type: use '%s' or '%s'", ext, ".yaml", ".yml")
	}

	if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(file), 0o700); err != nil {
			return fmt.Errorf("unable create directory: %w", err)
		}

		f, err := os.Create(file)
		if err != nil {
			return fmt.Errorf("unable to create config file: %w", err)
		}
		defer func() { _ = f.Close() }()

		if _, err := f.WriteString(DefaultFile); err != nil {
			return fmt.Errorf("unable to write config file: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("unable to stat config file: %w", err)
	}
	return nil
}
