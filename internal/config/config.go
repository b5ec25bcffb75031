package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/1mb-dev/playwise/internal/lookup"
	"github.com/1mb-dev/playwise/internal/recommend"
)

// Config holds engine configuration
type Config struct {
	Playlist  PlaylistConfig  `yaml:"playlist"`
	History   HistoryConfig   `yaml:"history"`
	Recommend RecommendConfig `yaml:"recommend"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Log       LogConfig       `yaml:"log"`
}

// PlaylistConfig holds playlist admission and undo settings
type PlaylistConfig struct {
	DedupePolicy    string `yaml:"dedupe_policy" validate:"oneof=first latest"`
	Dedupe          *bool  `yaml:"dedupe" validate:"required"`
	UndoHistory     int    `yaml:"undo_history" validate:"min=1,max=10000"`
	ShuffleAttempts int    `yaml:"shuffle_attempts" validate:"min=1,max=1000000"`
}

// HistoryConfig holds skip tracking settings
type HistoryConfig struct {
	SkippedCapacity int `yaml:"skipped_capacity" validate:"min=1,max=10000"`
}

// RecommendConfig holds recommender tuning
type RecommendConfig struct {
	WindowSize           int `yaml:"window_size" validate:"min=1"`
	SeedCount            int `yaml:"seed_count" validate:"min=1"`
	TopN                 int `yaml:"top_n" validate:"min=1"`
	DurationThreshold    int `yaml:"duration_threshold" validate:"min=1"`
	BPMThreshold         int `yaml:"bpm_threshold" validate:"min=1"`
	MaxCandidatesPerSeed int `yaml:"max_candidates_per_seed" validate:"min=1"`
}

// CatalogConfig holds the metadata catalog location.
// An empty path runs without a catalog.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=trace debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json console"`
}

// defaults returns a Config with sensible defaults
func defaults() *Config {
	dedupe := true
	rec := recommend.DefaultConfig()
	return &Config{
		Playlist: PlaylistConfig{
			DedupePolicy:    string(lookup.KeepFirst),
			Dedupe:          &dedupe,
			UndoHistory:     50,
			ShuffleAttempts: 1000,
		},
		History: HistoryConfig{
			SkippedCapacity: 10,
		},
		Recommend: RecommendConfig{
			WindowSize:           rec.WindowSize,
			SeedCount:            rec.SeedCount,
			TopN:                 rec.TopN,
			DurationThreshold:    rec.DurationThreshold,
			BPMThreshold:         rec.BPMThreshold,
			MaxCandidatesPerSeed: rec.MaxCandidatesPerSeed,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads configuration from YAML files and environment variables.
// Files are loaded in order; later files override earlier ones.
// Environment variables override file values.
func Load(paths ...string) (*Config, error) {
	cfg := defaults()

	// Load each config file in order
	for _, path := range paths {
		if err := loadFile(cfg, path); err != nil {
			// Skip missing files silently (playwise.local.yaml may not exist)
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Validate
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// loadFile reads a YAML file and merges into cfg
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// Parse YAML into a temporary struct, then merge non-zero values
	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}

	mergeConfig(cfg, &fileCfg)
	return nil
}

// mergeConfig copies non-zero values from src to dst
func mergeConfig(dst, src *Config) {
	// Playlist
	if src.Playlist.DedupePolicy != "" {
		dst.Playlist.DedupePolicy = src.Playlist.DedupePolicy
	}
	if src.Playlist.Dedupe != nil {
		v := *src.Playlist.Dedupe
		dst.Playlist.Dedupe = &v
	}
	if src.Playlist.UndoHistory != 0 {
		dst.Playlist.UndoHistory = src.Playlist.UndoHistory
	}
	if src.Playlist.ShuffleAttempts != 0 {
		dst.Playlist.ShuffleAttempts = src.Playlist.ShuffleAttempts
	}

	// History
	if src.History.SkippedCapacity != 0 {
		dst.History.SkippedCapacity = src.History.SkippedCapacity
	}

	// Recommend
	r, s := &dst.Recommend, src.Recommend
	for _, f := range []struct {
		dst *int
		src int
	}{
		{&r.WindowSize, s.WindowSize},
		{&r.SeedCount, s.SeedCount},
		{&r.TopN, s.TopN},
		{&r.DurationThreshold, s.DurationThreshold},
		{&r.BPMThreshold, s.BPMThreshold},
		{&r.MaxCandidatesPerSeed, s.MaxCandidatesPerSeed},
	} {
		if f.src != 0 {
			*f.dst = f.src
		}
	}

	// Catalog
	if src.Catalog.Path != "" {
		dst.Catalog.Path = src.Catalog.Path
	}

	// Log
	if src.Log.Level != "" {
		dst.Log.Level = src.Log.Level
	}
	if src.Log.Format != "" {
		dst.Log.Format = src.Log.Format
	}
}

// applyEnvOverrides applies environment variable overrides
func applyEnvOverrides(cfg *Config) {
	// Playlist
	if v := os.Getenv("PLAYWISE_DEDUPE_POLICY"); v != "" {
		cfg.Playlist.DedupePolicy = v
	}
	if v := os.Getenv("PLAYWISE_UNDO_HISTORY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Playlist.UndoHistory = n
		}
	}

	// Catalog
	if v := os.Getenv("PLAYWISE_CATALOG_PATH"); v != "" {
		cfg.Catalog.Path = v
	}

	// Log
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

var structValidator = validator.New()

// validate checks required fields and value constraints
func validate(cfg *Config) error {
	var verrs validator.ValidationErrors
	if err := structValidator.Struct(cfg); err != nil {
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%s failed %q (got %v)", fe.Namespace(), fe.ActualTag(), fe.Value())
		}
		return err
	}

	if _, err := lookup.ParsePolicy(cfg.Playlist.DedupePolicy); err != nil {
		return fmt.Errorf("playlist.dedupe_policy: %w", err)
	}
	if err := cfg.RecommenderConfig().Validate(); err != nil {
		return err
	}

	return nil
}

// DedupePolicy returns the parsed duplicate policy
func (c *Config) DedupePolicy() lookup.Policy {
	p, _ := lookup.ParsePolicy(c.Playlist.DedupePolicy)
	return p
}

// DedupeEnabled reports whether duplicate detection is on
func (c *Config) DedupeEnabled() bool {
	return c.Playlist.Dedupe == nil || *c.Playlist.Dedupe
}

// RecommenderConfig converts the recommend section
func (c *Config) RecommenderConfig() recommend.Config {
	return recommend.Config{
		WindowSize:           c.Recommend.WindowSize,
		SeedCount:            c.Recommend.SeedCount,
		TopN:                 c.Recommend.TopN,
		DurationThreshold:    c.Recommend.DurationThreshold,
		BPMThreshold:         c.Recommend.BPMThreshold,
		MaxCandidatesPerSeed: c.Recommend.MaxCandidatesPerSeed,
	}
}
