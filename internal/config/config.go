package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. TANGO_TIMING_STEP_INTERVAL=400ms.
const EnvPrefix = "TANGO"

// Config holds all configuration for the application
type Config struct {
	Timing TimingConfig `mapstructure:"timing"`
	Game   GameConfig   `mapstructure:"game"`
	Audio  AudioConfig  `mapstructure:"audio"`
	Log    LogConfig    `mapstructure:"log"`
}

// TimingConfig holds the pacing of a round
type TimingConfig struct {
	StepInterval   time.Duration `mapstructure:"step_interval"`
	FlashDuration  time.Duration `mapstructure:"flash_duration"`
	SettleDelay    time.Duration `mapstructure:"settle_delay"`
	NextRoundDelay time.Duration `mapstructure:"next_round_delay"`
}

// GameConfig holds game settings
type GameConfig struct {
	Seed  int64  `mapstructure:"seed"`
	Title string `mapstructure:"title"`
}

// AudioConfig holds cue and ambient track settings
type AudioConfig struct {
	Enabled       bool    `mapstructure:"enabled"`
	AmbientVolume float64 `mapstructure:"ambient_volume"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

func setViperDefaults(v *viper.Viper) {
	v.SetDefault("timing.step_interval", 600*time.Millisecond)
	v.SetDefault("timing.flash_duration", 500*time.Millisecond)
	v.SetDefault("timing.settle_delay", time.Second)
	v.SetDefault("timing.next_round_delay", time.Second)

	v.SetDefault("game.seed", 0)
	v.SetDefault("game.title", "Color Tango")

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.ambient_volume", 0.015)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(os.TempDir(), "color-tango.log"))
}

// Loader reads configuration and can watch the file it came from.
type Loader struct {
	v    *viper.Viper
	used string
}

// Load reads defaults, then the config file, then TANGO_* environment
// variables. An empty path searches ./config.yaml, ./config/ and the user
// config dir; a missing file is not an error.
func Load(configPath string) (*Config, *Loader, error) {
	v := viper.New()
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "color-tango"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	l := &Loader{v: v}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
		case configPath != "" && errors.Is(err, os.ErrNotExist):
		default:
			return nil, nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		l.used = v.ConfigFileUsed()
	}

	cfg, err := l.decode()
	if err != nil {
		return nil, nil, err
	}
	return cfg, l, nil
}

func (l *Loader) decode() (*Config, error) {
	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// FileUsed returns the config file that was read, or "" if none was.
func (l *Loader) FileUsed() string {
	return l.used
}

// Watch calls onChange with the re-read configuration every time the config
// file changes, and onError when the new contents do not validate. It does
// nothing when no file was read. Callbacks run on the watcher goroutine.
func (l *Loader) Watch(onChange func(*Config), onError func(error)) {
	if l.FileUsed() == "" {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := l.decode()
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		onChange(cfg)
	})
	l.v.WatchConfig()
}

// Validate checks the configuration for values the game cannot run with
func Validate(cfg *Config) error {
	durations := map[string]time.Duration{
		"timing.step_interval":    cfg.Timing.StepInterval,
		"timing.flash_duration":   cfg.Timing.FlashDuration,
		"timing.settle_delay":     cfg.Timing.SettleDelay,
		"timing.next_round_delay": cfg.Timing.NextRoundDelay,
	}
	for key, d := range durations {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %v", key, d)
		}
	}

	if cfg.Timing.FlashDuration >= cfg.Timing.StepInterval {
		return fmt.Errorf("timing.flash_duration (%v) must be shorter than timing.step_interval (%v)",
			cfg.Timing.FlashDuration, cfg.Timing.StepInterval)
	}

	if cfg.Audio.AmbientVolume < 0 || cfg.Audio.AmbientVolume > 1 {
		return fmt.Errorf("audio.ambient_volume must be between 0 and 1, got %v", cfg.Audio.AmbientVolume)
	}

	if strings.TrimSpace(cfg.Game.Title) == "" {
		return fmt.Errorf("game.title must not be empty")
	}

	return nil
}
