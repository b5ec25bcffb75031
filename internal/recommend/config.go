package recommend

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a recommender setting is not positive
var ErrInvalidConfig = errors.New("invalid recommender config")

// Config tunes the recommender
type Config struct {
	WindowSize           int
	SeedCount            int
	TopN                 int
	DurationThreshold    int
	BPMThreshold         int
	MaxCandidatesPerSeed int
}

// DefaultConfig returns the stock settings
func DefaultConfig() Config {
	return Config{
		WindowSize:           50,
		SeedCount:            5,
		TopN:                 10,
		DurationThreshold:    120,
		BPMThreshold:         10,
		MaxCandidatesPerSeed: 200,
	}
}

// Validate checks that every setting is positive
func (c Config) Validate() error {
	checks := []struct {
		name  string
		value int
	}{
		{"window_size", c.WindowSize},
		{"seed_count", c.SeedCount},
		{"top_n", c.TopN},
		{"duration_threshold", c.DurationThreshold},
		{"bpm_threshold", c.BPMThreshold},
		{"max_candidates_per_seed", c.MaxCandidatesPerSeed},
	}
	for _, chk := range checks {
		if chk.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, chk.name, chk.value)
		}
	}
	return nil
}
