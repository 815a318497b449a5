// Package config handles camsynth configuration loading and management.
package config

// Config holds all settings for the motion synthesis pipeline.
type Config struct {
	Environment EnvironmentConfig `yaml:"environment"`
	Constraints ConstraintsConfig `yaml:"constraints"`
	Path        PathConfig        `yaml:"path"`
	Batch       BatchConfig       `yaml:"batch"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// EnvironmentConfig sizes the playable camera volume.
type EnvironmentConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Depth  float64 `yaml:"depth"`
}

// ConstraintsConfig scales camera limits from object height.
type ConstraintsConfig struct {
	MinHeightFactor   float64 `yaml:"min_height_factor"`
	MaxHeightFactor   float64 `yaml:"max_height_factor"`
	MinDistanceFactor float64 `yaml:"min_distance_factor"`
	MaxDistanceFactor float64 `yaml:"max_distance_factor"`

	// Used when the object is flat (height ~ 0)
	FallbackMinHeight   float64 `yaml:"fallback_min_height"`
	FallbackMaxHeight   float64 `yaml:"fallback_max_height"`
	FallbackMinDistance float64 `yaml:"fallback_min_distance"`
	FallbackMaxDistance float64 `yaml:"fallback_max_distance"`

	// Zero disables the check
	MaxSpeed          float64 `yaml:"max_speed"`
	MaxAngleChangeDeg float64 `yaml:"max_angle_change_deg"`
}

// PathConfig holds path processor tunables.
type PathConfig struct {
	SampleRate         float64 `yaml:"sample_rate"`
	MinSamples         int     `yaml:"min_samples"`
	MaxSamples         int     `yaml:"max_samples"`
	Epsilon            float64 `yaml:"epsilon"`
	CornerAngleDeg     float64 `yaml:"corner_angle_deg"`
	ReversalMarginDeg  float64 `yaml:"reversal_margin_deg"`
	BlendFraction      float64 `yaml:"blend_fraction"`
	MinBlendOffset     float64 `yaml:"min_blend_offset"`
	MaxBlendFactor     float64 `yaml:"max_blend_factor"`
	ArcLengthDivisions int     `yaml:"arc_length_divisions"`
}

// BatchConfig controls parallel request processing.
type BatchConfig struct {
	Workers int `yaml:"workers"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Environment: EnvironmentConfig{
			Width:  20,
			Height: 10,
			Depth:  20,
		},
		Constraints: ConstraintsConfig{
			MinHeightFactor:     0.5,
			MaxHeightFactor:     3,
			MinDistanceFactor:   0.8,
			MaxDistanceFactor:   5,
			FallbackMinHeight:   0.5,
			FallbackMaxHeight:   10,
			FallbackMinDistance: 1,
			FallbackMaxDistance: 20,
		},
		Path: PathConfig{
			SampleRate:         60,
			MinSamples:         2,
			MaxSamples:         1 << 21,
			Epsilon:            1e-6,
			CornerAngleDeg:     30,
			ReversalMarginDeg:  6,
			BlendFraction:      0.3,
			MinBlendOffset:     0.01,
			MaxBlendFactor:     0.45,
			ArcLengthDivisions: 200,
		},
		Batch: BatchConfig{
			Workers: 4,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
