package constraints

// EnvironmentSize is the width (X), height (Y) and depth (Z) of the
// playable volume.
type EnvironmentSize struct {
	Width  float64
	Height float64
	Depth  float64
}

// Config holds the solver's static configuration.
type Config struct {
	Environment EnvironmentSize

	MinHeightFactor   float64
	MaxHeightFactor   float64
	MinDistanceFactor float64
	MaxDistanceFactor float64

	// Fallback range used when object height is ~0.
	FallbackMinHeight   float64
	FallbackMaxHeight   float64
	FallbackMinDistance float64
	FallbackMaxDistance float64

	// FlatEpsilon is the height below which an object counts as flat.
	FlatEpsilon float64

	MaxSpeed       float64
	MaxAngleChange float64 // radians
}

// DefaultConfig returns the standard scaling factors.
func DefaultConfig() Config {
	return Config{
		Environment:         EnvironmentSize{Width: 20, Height: 10, Depth: 20},
		MinHeightFactor:     0.5,
		MaxHeightFactor:     3,
		MinDistanceFactor:   0.8,
		MaxDistanceFactor:   5,
		FallbackMinHeight:   0.5,
		FallbackMaxHeight:   10,
		FallbackMinDistance: 1,
		FallbackMaxDistance: 20,
		FlatEpsilon:         1e-6,
	}
}
