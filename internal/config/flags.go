package config

import "flag"

// Flags are the command-line overrides for a Config.
type Flags struct {
	Config     string
	Debug      bool
	SampleRate float64
	Workers    int
}

// Register binds the flags to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.Float64Var(&f.SampleRate, "sample-rate", 0, "Path samples per second")
	fs.IntVar(&f.Workers, "workers", 0, "Parallel workers for batch processing")
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.SampleRate > 0 {
		cfg.Path.SampleRate = f.SampleRate
	}
	if f.Workers > 0 {
		cfg.Batch.Workers = f.Workers
	}
}
