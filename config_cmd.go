package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Resonate-Protocol/sfxpool/internal/config"
	"github.com/charmbracelet/x/editor"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Edit the sfxpool config file",
	Long:    "\nEdit the sfxpool config file. We'll use EDITOR to determine which editor to use. If the config file doesn't exist, it will be created.",
	Example: "sfxpool config\nsfxpool config --config path/to/config.yml",
	Args:    cobra.NoArgs,
	// A broken config file must not stop us from opening it
	PersistentPreRunE: func(*cobra.Command, []string) error {
		_, _ = config.Setup(viper.GetViper(), configFile)
		return nil
	},
	RunE: func(*cobra.Command, []string) error {
		file, err := configPath()
		if err != nil {
			return err
		}
		if err := config.EnsureFile(file); err != nil {
			return err
		}

		c, err := editor.Cmd("sfxpool", file)
		if err != nil {
			return fmt.Errorf("unable to set config file: %w", err)
		}
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("unable to run command: %w", err)
		}

		fmt.Println("Wrote config file to:", file)
		return nil
	},
}

// configPath returns --config, the file viper found, or the default location
func configPath() (string, error) {
	if configFile != "" {
		return configFile, nil
	}
	if used := viper.ConfigFileUsed(); used != "" {
		return used, nil
	}

	dirs, err := config.SearchDirs()
	if err != nil {
		return "", err
	}
	return filepath.Join(dirs[0], config.Name+".yml"), nil
}
