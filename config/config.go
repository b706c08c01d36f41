package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/they4kman/swept/game"
)

// Config holds all configuration for the application
type Config struct {
	Game GameConfig `mapstructure:"game" yaml:"game"`
	Play PlayConfig `mapstructure:"play" yaml:"play"`
	Log  LogConfig  `mapstructure:"log" yaml:"log"`
}

// GameConfig holds board settings
type GameConfig struct {
	Width       int   `mapstructure:"width" yaml:"width"`
	Height      int   `mapstructure:"height" yaml:"height"`
	MineDensity int   `mapstructure:"mine_density" yaml:"mine_density"`
	Seed        int64 `mapstructure:"seed" yaml:"seed"`
}

// PlayConfig holds settings for the computer player
type PlayConfig struct {
	Director         string        `mapstructure:"director" yaml:"director"`
	Autoplay         bool          `mapstructure:"autoplay" yaml:"autoplay"`
	AutoplayInterval time.Duration `mapstructure:"autoplay_interval" yaml:"autoplay_interval"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	// Log file path; empty discards logs, the terminal belongs to the game
	File string `mapstructure:"file" yaml:"file"`
}

const (
	DirectorConstraint = "constraint"
	DirectorRandom     = "random"
)

var Directors = []string{DirectorConstraint, DirectorRandom}

// flagKeys maps command-line flag names onto config keys
var flagKeys = map[string]string{
	"width":             "game.width",
	"height":            "game.height",
	"density":           "game.mine_density",
	"seed":              "game.seed",
	"director":          "play.director",
	"autoplay":          "play.autoplay",
	"autoplay-interval": "play.autoplay_interval",
	"log-level":         "log.level",
	"log-file":          "log.file",
}

func setViperDefaults(v *viper.Viper) {
	v.SetDefault("game.width", game.DefaultWidth)
	v.SetDefault("game.height", game.DefaultHeight)
	v.SetDefault("game.mine_density", game.DefaultMineDensity)
	v.SetDefault("game.seed", 0)

	v.SetDefault("play.director", DirectorConstraint)
	v.SetDefault("play.autoplay", false)
	v.SetDefault("play.autoplay_interval", 500*time.Millisecond)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "swept.log")
}

// Load reads configuration from, in increasing priority: defaults, the config
// file, SWEPT_* environment variables, and any flags that were set.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("swept")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "swept"))
		}
	}

	v.SetEnvPrefix("SWEPT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("unable to bind flag %s: %w", name, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// GameConfig converts the board settings for the engine
func (cfg *Config) GameConfig() game.GameConfig {
	return game.GameConfig{
		Width:       cfg.Game.Width,
		Height:      cfg.Game.Height,
		MineDensity: cfg.Game.MineDensity,
		Seed:        cfg.Game.Seed,
	}
}

func Validate(cfg *Config) error {
	if err := cfg.GameConfig().Validate(); err != nil {
		return err
	}

	isKnownDirector := false
	for _, name := range Directors {
		if cfg.Play.Director == name {
			isKnownDirector = true
		}
	}
	if !isKnownDirector {
		return fmt.Errorf("play.director must be one of %s, got %q", strings.Join(Directors, ", "), cfg.Play.Director)
	}

	if cfg.Play.AutoplayInterval <= 0 {
		return fmt.Errorf("play.autoplay_interval must be positive")
	}

	return nil
}

// MarshalYAML writes the autoplay interval as a duration string, the way it
// is read back
func (play PlayConfig) MarshalYAML() (interface{}, error) {
	return struct {
		Director         string `yaml:"director"`
		Autoplay         bool   `yaml:"autoplay"`
		AutoplayInterval string `yaml:"autoplay_interval"`
	}{
		Director:         play.Director,
		Autoplay:         play.Autoplay,
		AutoplayInterval: play.AutoplayInterval.String(),
	}, nil
}
