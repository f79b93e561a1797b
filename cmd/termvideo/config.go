package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// cliConfig holds playback defaults that flags override.
type cliConfig struct {
	Loop  bool    `mapstructure:"loop"`
	Scale float64 `mapstructure:"scale"`
	Fit   bool    `mapstructure:"fit"`
	FPS   float64 `mapstructure:"fps"`
}

// loadConfig reads $HOME/.config/termvideo/config.yml plus TERMVIDEO_*
// environment variables. A missing config file is not an error.
func loadConfig() (cliConfig, error) {
	var cfg cliConfig

	v := viper.New()
	v.SetEnvPrefix("TERMVIDEO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("loop", false)
	v.SetDefault("scale", 1.0)
	v.SetDefault("fit", false)
	v.SetDefault("fps", 30.0)

	if home, err := os.UserHomeDir(); err == nil {
		v.SetConfigFile(filepath.Join(home, ".config", "termvideo", "config.yml"))
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return cfg, err
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}
