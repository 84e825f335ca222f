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
)

// ErrInvalid is wrapped by every error Validate returns
var ErrInvalid = errors.New("invalid configuration")

// Config holds application configuration
type Config struct {
	// File, m3u8 playlist or directory to play
	InputPath string

	// Seconds to wait between tracks
	Pause float64

	// Seconds to wait before the first track
	Delay float64

	// Stereo pan bias, negative is left and positive is right
	StereoPan float64

	// Range selector "skip:take", applied to directory inputs only
	TrackSelect string

	// SoX executable used for preprocessing
	SoxPath string

	// Run every track through SoX before playback
	Preprocess bool

	// Parent directory of the preprocessing cache
	// Default: <tmp>/playseq
	CacheDir string

	// Leave the preprocessing cache on disk after the run
	KeepCache bool

	// Output device index, -1 prompts
	Device int

	LogLevel string
	LogFile  string
}

// flagKeys maps config keys to the command-line flags that override them
var flagKeys = map[string]string{
	"input_path":   "input-path",
	"pause":        "pause",
	"delay":        "delay",
	"stereo_pan":   "stereo-pan",
	"track_select": "track-select",
	"sox_path":     "sox-path",
	"preprocess":   "preprocess",
	"cache_dir":    "cache-dir",
	"keep_cache":   "keep-cache",
	"device":       "device",
	"log_level":    "log-level",
	"log_file":     "log-file",
}

// Load reads configuration with precedence flag > environment > file >
// default. configFile overrides the default location; a missing default
// file is not an error. flags may be nil.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(getConfigDir())
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("PLAYSEQ")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		InputPath:   v.GetString("input_path"),
		Pause:       v.GetFloat64("pause"),
		Delay:       v.GetFloat64("delay"),
		StereoPan:   v.GetFloat64("stereo_pan"),
		TrackSelect: v.GetString("track_select"),
		SoxPath:     v.GetString("sox_path"),
		Preprocess:  v.GetBool("preprocess"),
		CacheDir:    v.GetString("cache_dir"),
		KeepCache:   v.GetBool("keep_cache"),
		Device:      v.GetInt("device"),
		LogLevel:    v.GetString("log_level"),
		LogFile:     v.GetString("log_file"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("pause", 0.0)
	v.SetDefault("delay", 0.0)
	v.SetDefault("stereo_pan", 0.0)
	v.SetDefault("track_select", "")
	v.SetDefault("sox_path", "sox")
	v.SetDefault("preprocess", false)
	v.SetDefault("cache_dir", filepath.Join(os.TempDir(), "playseq"))
	v.SetDefault("keep_cache", false)
	v.SetDefault("device", -1)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
}

// bindFlags binds every known flag present in flags
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for key, name := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("%w: input path is required", ErrInvalid)
	}
	if c.Pause < 0 {
		return fmt.Errorf("%w: pause must not be negative, got %v", ErrInvalid, c.Pause)
	}
	if c.Delay < 0 {
		return fmt.Errorf("%w: delay must not be negative, got %v", ErrInvalid, c.Delay)
	}
	if c.StereoPan < -1 || c.StereoPan > 1 {
		return fmt.Errorf("%w: stereo pan must be between -1 and 1, got %v", ErrInvalid, c.StereoPan)
	}
	if c.Device < -1 {
		return fmt.Errorf("%w: device index must be -1 or greater, got %d", ErrInvalid, c.Device)
	}
	return nil
}

// PauseDuration returns Pause as a time.Duration
func (c *Config) PauseDuration() time.Duration {
	return seconds(c.Pause)
}

// DelayDuration returns Delay as a time.Duration
func (c *Config) DelayDuration() time.Duration {
	return seconds(c.Delay)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// getConfigDir returns the configuration directory path
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, ".config", "playseq")
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}
