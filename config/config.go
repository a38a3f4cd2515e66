// Package config loads runtime settings from defaults, an optional
// config file, and DRIVELAPSE_* environment variables, in increasing
// order of precedence. Every tunable is validated at this boundary so
// the pipeline never sees an out-of-range value.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"drivelapse/frame"
	"drivelapse/route"
)

// Config carries every tunable of a run.
type Config struct {
	IntervalDistance float64 `mapstructure:"interval_distance"`
	Smoothness       int     `mapstructure:"smoothness"`
	HeadingPolicy    string  `mapstructure:"heading_policy"`
	EasedResampling  bool    `mapstructure:"eased_resampling"`
	SkipSmoothing    bool    `mapstructure:"skip_smoothing"`

	FrameRate         int     `mapstructure:"frame_rate"`
	Interpolation     int     `mapstructure:"interpolation"`
	CrossfadeStrength float64 `mapstructure:"crossfade_strength"`
	CrossfadeMode     string  `mapstructure:"crossfade_mode"`
	MotionBlur        bool    `mapstructure:"motion_blur"`

	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
	FOV    int `mapstructure:"fov"`
	Pitch  int `mapstructure:"pitch"`

	APIKey   string        `mapstructure:"api_key"`
	CacheDir string        `mapstructure:"cache_dir"`
	Workers  int           `mapstructure:"workers"`
	Throttle time.Duration `mapstructure:"throttle"`

	LogLevel string `mapstructure:"log_level"`
}

// Load builds the configuration. path may be empty; when set it must
// name a readable config file.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("interval_distance", 10.0)
	v.SetDefault("smoothness", 3)
	v.SetDefault("heading_policy", string(route.HeadingMomentum))
	v.SetDefault("eased_resampling", false)
	v.SetDefault("skip_smoothing", false)
	v.SetDefault("frame_rate", 10)
	v.SetDefault("interpolation", 1)
	v.SetDefault("crossfade_strength", 0.0)
	v.SetDefault("crossfade_mode", string(frame.CrossfadeScreen))
	v.SetDefault("motion_blur", false)
	v.SetDefault("width", 640)
	v.SetDefault("height", 400)
	v.SetDefault("fov", 90)
	v.SetDefault("pitch", 0)
	v.SetDefault("api_key", "")
	v.SetDefault("cache_dir", "")
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("throttle", time.Duration(0))
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("DRIVELAPSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every out-of-range value at once.
func (c Config) Validate() error {
	var errs []error

	if c.IntervalDistance <= 0 {
		errs = append(errs, fmt.Errorf("interval_distance must be positive, got %g", c.IntervalDistance))
	}
	if c.Smoothness < 1 {
		errs = append(errs, fmt.Errorf("smoothness must be at least 1, got %d", c.Smoothness))
	}
	if !route.HeadingPolicy(c.HeadingPolicy).Valid() {
		errs = append(errs, fmt.Errorf("heading_policy must be %q or %q, got %q",
			route.HeadingLocal, route.HeadingMomentum, c.HeadingPolicy))
	}
	if c.FrameRate < 1 {
		errs = append(errs, fmt.Errorf("frame_rate must be at least 1, got %d", c.FrameRate))
	}
	if c.Interpolation < 1 {
		errs = append(errs, fmt.Errorf("interpolation must be at least 1, got %d", c.Interpolation))
	}
	if c.CrossfadeStrength < 0 || c.CrossfadeStrength > 1 {
		errs = append(errs, fmt.Errorf("crossfade_strength must be within [0,1], got %g", c.CrossfadeStrength))
	}
	if !frame.CrossfadeMode(c.CrossfadeMode).Valid() {
		errs = append(errs, fmt.Errorf("crossfade_mode must be %q or %q, got %q",
			frame.CrossfadeScreen, frame.CrossfadeAlpha, c.CrossfadeMode))
	}
	if c.Width < 1 || c.Height < 1 {
		errs = append(errs, fmt.Errorf("image dimensions must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.FOV < 10 || c.FOV > 120 {
		errs = append(errs, fmt.Errorf("fov must be within [10,120], got %d", c.FOV))
	}
	if c.Pitch < -90 || c.Pitch > 90 {
		errs = append(errs, fmt.Errorf("pitch must be within [-90,90], got %d", c.Pitch))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if c.Throttle < 0 {
		errs = append(errs, fmt.Errorf("throttle must not be negative, got %s", c.Throttle))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level must be debug, info, warn, or error, got %q", c.LogLevel))
	}

	return errors.Join(errs...)
}
