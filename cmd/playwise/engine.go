package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/1mb-dev/playwise/internal/catalog"
	"github.com/1mb-dev/playwise/internal/config"
	"github.com/1mb-dev/playwise/internal/explorer"
	"github.com/1mb-dev/playwise/internal/logging"
	"github.com/1mb-dev/playwise/internal/metrics"
	"github.com/1mb-dev/playwise/internal/playback"
	"github.com/1mb-dev/playwise/internal/playlist"
)

// engine is a fully wired session over the configured catalog
type engine struct {
	cfg     *config.Config
	log     zerolog.Logger
	metrics *metrics.Metrics
	tracks  []*catalog.Track
	byID    map[string]*catalog.Track
	index   *explorer.Explorer
	ctl     *playback.Controller
}

func (g *globalFlags) open() (*engine, error) {
	cfg, err := config.Load(g.configPaths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if g.catalogPath != "" {
		cfg.Catalog.Path = g.catalogPath
	}
	if g.sampleOnly {
		cfg.Catalog.Path = ""
	}

	if err := logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: os.Stderr}); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	log := logging.Component("cli")

	tracks, err := loadTracks(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}

	index := explorer.New()
	ctl, err := playback.New(
		playback.WithPlaylistOptions(playlistOptions(cfg)...),
		playback.WithSkippedCapacity(cfg.History.SkippedCapacity),
		playback.WithRecommendations(index, cfg.RecommenderConfig()),
		playback.WithLogger(logging.Component("playback")),
		playback.WithMetrics(metrics.Get()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	n := catalog.Seed(tracks, index, ctl.Recommender())
	byID := make(map[string]*catalog.Track, len(tracks))
	for _, t := range tracks {
		byID[t.ID] = t
		s, err := t.Song()
		if err != nil {
			log.Warn().Err(err).Str("id", t.ID).Msg("skipping catalog track")
			continue
		}
		ctl.Registry().Put(s)
	}
	log.Debug().Int("tracks", n).Str("catalog", cfg.Catalog.Path).Str("session", ctl.Session()).Msg("engine ready")

	return &engine{
		cfg:     cfg,
		log:     log,
		metrics: metrics.Get(),
		tracks:  tracks,
		byID:    byID,
		index:   index,
		ctl:     ctl,
	}, nil
}

// close logs the session counters
func (e *engine) close() {
	ev := e.log.Debug()
	for k, v := range e.metrics.Snapshot() {
		ev = ev.Interface(k, v)
	}
	ev.Msg("session metrics")
}

func playlistOptions(cfg *config.Config) []playlist.Option {
	opts := []playlist.Option{
		playlist.WithUndoCapacity(cfg.Playlist.UndoHistory),
		playlist.WithShuffler(playlist.NewShuffler(cfg.Playlist.ShuffleAttempts, nil)),
	}
	if cfg.DedupeEnabled() {
		opts = append(opts, playlist.WithDedupePolicy(cfg.DedupePolicy()))
	} else {
		opts = append(opts, playlist.WithoutDedupe())
	}
	return opts
}

// loadTracks reads the catalog, or returns the built-in sample when no
// catalog is configured
func loadTracks(path string) ([]*catalog.Track, error) {
	if path == "" {
		return sampleTracks(), nil
	}

	repo, err := catalog.NewRepository(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer func() { _ = repo.Close() }()

	tracks, err := repo.All()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return tracks, nil
}

// track returns the catalog track for id
func (e *engine) track(id string) (*catalog.Track, error) {
	t, ok := e.byID[id]
	if !ok {
		return nil, fmt.Errorf("unknown song id %q", id)
	}
	return t, nil
}

// queue offers a catalog track to the session playlist
func (e *engine) queue(t *catalog.Track) (playlist.AddResult, error) {
	s, err := t.Song()
	if err != nil {
		return playlist.AddResult{}, err
	}
	return e.ctl.Playlist().AddSong(e.ctl.Registry().Put(s)), nil
}

// play plays a catalog track immediately
func (e *engine) play(t *catalog.Track) error {
	_, err := e.ctl.Play(t.Title, t.Artist, t.DurationSeconds, songOptions(t)...)
	return err
}

func sampleTracks() []*catalog.Track {
	return []*catalog.Track{
		{ID: "s01", Title: "Creep", Artist: "Radiohead", Genre: "Rock", Subgenre: "Alternative", Mood: "Melancholic", DurationSeconds: 238, BPM: 92},
		{ID: "s02", Title: "Fix You", Artist: "Coldplay", Genre: "Rock", Subgenre: "Alternative", Mood: "Melancholic", DurationSeconds: 295, BPM: 138},
		{ID: "s03", Title: "Street Spirit", Artist: "Radiohead", Genre: "Rock", Subgenre: "Alternative", Mood: "Melancholic", DurationSeconds: 252, BPM: 90},
		{ID: "s04", Title: "The Scientist", Artist: "Coldplay", Genre: "Rock", Subgenre: "Alternative", Mood: "Melancholic", DurationSeconds: 309, BPM: 146},
		{ID: "s05", Title: "Bohemian Rhapsody", Artist: "Queen", Genre: "Rock", Subgenre: "Classic", Mood: "Epic", DurationSeconds: 354, BPM: 72},
		{ID: "s06", Title: "Don't Stop Me Now", Artist: "Queen", Genre: "Rock", Subgenre: "Classic", Mood: "Energetic", DurationSeconds: 209, BPM: 156},
		{ID: "s07", Title: "So What", Artist: "Miles Davis", Genre: "Jazz", Subgenre: "Modal", Mood: "Chill", DurationSeconds: 562, BPM: 136},
		{ID: "s08", Title: "Blue in Green", Artist: "Bill Evans", Genre: "Jazz", Subgenre: "Modal", Mood: "Chill", DurationSeconds: 337, BPM: 60},
		{ID: "s09", Title: "Take Five", Artist: "Dave Brubeck", Genre: "Jazz", Subgenre: "Cool", Mood: "Chill", DurationSeconds: 324, BPM: 172},
		{ID: "s10", Title: "Snowman", Artist: "WYS", Genre: "Lofi", Subgenre: "Chillhop", Mood: "Calm", DurationSeconds: 151, BPM: 80},
		{ID: "s11", Title: "Affection", Artist: "Jinsang", Genre: "Lofi", Subgenre: "Chillhop", Mood: "Calm", DurationSeconds: 144, BPM: 84},
		{ID: "s12", Title: "An Ending", Artist: "Brian Eno", Genre: "Ambient", Mood: "Calm", DurationSeconds: 266},
	}
}
