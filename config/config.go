// Package config provides configuration loading and access for the sky.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all sky configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Sun       SunConfig       `yaml:"sun"`
	Sky       SkyConfig       `yaml:"sky"`
	Clouds    CloudsConfig    `yaml:"clouds"`
	Moon      MoonConfig      `yaml:"moon"`
	Stars     StarsConfig     `yaml:"stars"`
	Speedup   SpeedupConfig   `yaml:"speedup"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Log       LogConfig       `yaml:"log"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings. The sky is always square.
type ScreenConfig struct {
	Size      int `yaml:"size"`
	TargetFPS int `yaml:"target_fps"`
	CellSize  int `yaml:"cell_size"` // Pixels per cloud grid cell
}

// SunConfig holds the sun trajectory parameters.
type SunConfig struct {
	Radius     int     `yaml:"radius"`
	AuraSize   int     `yaml:"aura_size"`
	StartYFrac float64 `yaml:"start_y_frac"` // Start height as a fraction of screen size
	PivotXFrac float64 `yaml:"pivot_x_frac"` // Pivot x as a fraction of screen size (pivot y is 0)
	CycleSpeed float64 `yaml:"cycle_speed"`  // Degrees per frame
}

// SkyConfig holds the day/night gradient stops.
type SkyConfig struct {
	Day    [3]uint8 `yaml:"day"`
	Sunset [3]uint8 `yaml:"sunset"`
	Night  [3]uint8 `yaml:"night"`
	Steps  int      `yaml:"steps"` // Quantized gradient positions
}

// CloudsConfig holds cloud density field parameters.
type CloudsConfig struct {
	Seed         int64   `yaml:"seed"`
	Octaves      int     `yaml:"octaves"`
	WindSpeed    float64 `yaml:"wind_speed"`
	TimeScale    float64 `yaml:"time_scale"`    // Noise time units per frame
	SpatialScale float64 `yaml:"spatial_scale"` // Grid index divisor
	XOffset      float64 `yaml:"x_offset"`
	YOffset      float64 `yaml:"y_offset"`
	NoiseGain    float64 `yaml:"noise_gain"`    // Scales each simplex octave sample
	Cutoff       float64 `yaml:"cutoff"`        // Raw magnitudes below this collapse to 0
	Scaling      float64 `yaml:"scaling"`       // Upper bound of the remap domain
	MaxCoverage  float64 `yaml:"max_coverage"`  // Covered density mapped to MaxDarken
	MaxDarken    float64 `yaml:"max_darken"`
}

// MoonConfig holds moon texture parameters.
type MoonConfig struct {
	Seed        int64   `yaml:"seed"`
	Persistence float64 `yaml:"persistence"`
	XFrac       float64 `yaml:"x_frac"` // Center x as a fraction of screen size
	YFrac       float64 `yaml:"y_frac"` // Center y as a fraction of the sun start height
	SampleScale float64 `yaml:"sample_scale"`
	Strength    float64 `yaml:"strength"`
	Cutoff      float64 `yaml:"cutoff"`
	MaxAlpha    float64 `yaml:"max_alpha"`
}

// StarsConfig holds star field parameters.
type StarsConfig struct {
	Count       int     `yaml:"count"`
	Seed        int64   `yaml:"seed"` // 0 = time-based
	Radius      float64 `yaml:"radius"`
	AuraSize    int     `yaml:"aura_size"`
	SettingFade float64 `yaml:"setting_fade"` // Setting amount above which stars fade in
}

// SpeedupConfig holds the fast-forward multiplier.
type SpeedupConfig struct {
	Factor float64 `yaml:"factor"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	WindowFrames int `yaml:"window_frames"`
	PerfWindow   int `yaml:"perf_window"`
}

// LogConfig holds log level and file rotation settings.
type LogConfig struct {
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	SizeF         float64 // Screen.Size as float64
	GridSize      int     // Screen.Size / Screen.CellSize
	SunStartX     float64
	SunStartY     float64
	PivotX        float64
	PivotY        float64
	MoonX         float64
	MoonY         float64
	MoonRadius    int    // Sun.Radius/2 + Sun.Radius/5
	SpeedupFrames uint64 // Speedup.Factor truncated, applied to the sun frame count
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate checks the invariants the simulation relies on for its whole lifetime.
func (c *Config) Validate() error {
	var errs []error
	if c.Screen.Size <= 0 {
		errs = append(errs, errors.New("screen.size must be positive"))
	}
	if c.Screen.CellSize <= 0 {
		errs = append(errs, errors.New("screen.cell_size must be positive"))
	} else if c.Screen.Size%c.Screen.CellSize != 0 {
		errs = append(errs, fmt.Errorf("screen.size %d is not a multiple of cell_size %d", c.Screen.Size, c.Screen.CellSize))
	}
	if c.Sun.Radius <= 0 {
		errs = append(errs, errors.New("sun.radius must be positive"))
	}
	if c.Sun.CycleSpeed <= 0 || c.Sun.CycleSpeed > 360 {
		errs = append(errs, fmt.Errorf("sun.cycle_speed %v out of (0, 360]", c.Sun.CycleSpeed))
	}
	if c.Sky.Steps < 2 {
		errs = append(errs, errors.New("sky.steps must be at least 2"))
	}
	if c.Clouds.Octaves <= 0 {
		errs = append(errs, errors.New("clouds.octaves must be positive"))
	}
	if c.Clouds.SpatialScale == 0 {
		errs = append(errs, errors.New("clouds.spatial_scale must be non-zero"))
	}
	if c.Clouds.NoiseGain <= 0 {
		errs = append(errs, fmt.Errorf("clouds.noise_gain %v must be positive", c.Clouds.NoiseGain))
	}
	if c.Clouds.Scaling <= c.Clouds.Cutoff {
		errs = append(errs, fmt.Errorf("clouds.scaling %v must exceed cutoff %v", c.Clouds.Scaling, c.Clouds.Cutoff))
	}
	if c.Clouds.MaxCoverage <= 0 {
		errs = append(errs, errors.New("clouds.max_coverage must be positive"))
	}
	if c.Moon.Cutoff >= 1 {
		errs = append(errs, fmt.Errorf("moon.cutoff %v must be below 1", c.Moon.Cutoff))
	}
	if c.Stars.Count <= 0 {
		errs = append(errs, errors.New("stars.count must be positive"))
	}
	if c.Speedup.Factor < 1 {
		errs = append(errs, fmt.Errorf("speedup.factor %v must be at least 1", c.Speedup.Factor))
	}
	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	size := float64(c.Screen.Size)
	c.Derived.SizeF = size
	c.Derived.GridSize = c.Screen.Size / c.Screen.CellSize

	c.Derived.SunStartX = size / 2
	c.Derived.SunStartY = size * c.Sun.StartYFrac
	c.Derived.PivotX = size * c.Sun.PivotXFrac
	c.Derived.PivotY = 0

	c.Derived.MoonX = size * c.Moon.XFrac
	c.Derived.MoonY = c.Derived.SunStartY * c.Moon.YFrac
	c.Derived.MoonRadius = c.Sun.Radius/2 + c.Sun.Radius/5

	c.Derived.SpeedupFrames = uint64(c.Speedup.Factor)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
