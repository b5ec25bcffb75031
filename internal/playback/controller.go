// Package playback ties the playlist, history, skip tracking, favorites
// and recommendations into one listening session.
package playback

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/1mb-dev/playwise/internal/favorites"
	"github.com/1mb-dev/playwise/internal/history"
	"github.com/1mb-dev/playwise/internal/metrics"
	"github.com/1mb-dev/playwise/internal/playlist"
	"github.com/1mb-dev/playwise/internal/recommend"
	"github.com/1mb-dev/playwise/internal/song"
)

// Controller is a single-user listening session
type Controller struct {
	session   string
	playlist  *playlist.Playlist
	history   *history.PlaybackHistory
	skipped   *history.SkippedTracker
	favorites *favorites.Queue
	registry  *song.Registry
	recs      *recommend.Recommender

	autoReplayed bool
	now          func() time.Time
	logger       zerolog.Logger
	metrics      *metrics.Metrics
}

type options struct {
	playlistOpts    []playlist.Option
	skippedCapacity int
	registry        *song.Registry
	index           recommend.Index
	recConfig       recommend.Config
	now             func() time.Time
	logger          zerolog.Logger
	metrics         *metrics.Metrics
}

// Option configures a Controller
type Option func(*options)

// WithPlaylistOptions passes options to the session playlist
func WithPlaylistOptions(opts ...playlist.Option) Option {
	return func(o *options) { o.playlistOpts = append(o.playlistOpts, opts...) }
}

// WithSkippedCapacity bounds the recently skipped tracker
func WithSkippedCapacity(n int) Option {
	return func(o *options) { o.skippedCapacity = n }
}

// WithRegistry shares a song registry with other components
func WithRegistry(r *song.Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithRecommendations enables recommendations over index
func WithRecommendations(index recommend.Index, cfg recommend.Config) Option {
	return func(o *options) {
		o.index = index
		o.recConfig = cfg
	}
}

// WithClock sets the time source for recorded plays
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithLogger sets the session logger
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics sets the counters shared by every session component
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// New creates a session with an empty playlist
func New(opts ...Option) (*Controller, error) {
	o := options{
		skippedCapacity: history.DefaultSkippedCapacity,
		now:             time.Now,
		logger:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.metrics == nil {
		o.metrics = metrics.New()
	}
	if o.registry == nil {
		o.registry = song.NewRegistry()
	}

	session := uuid.NewString()
	logger := o.logger.With().Str("session", session).Logger()

	plOpts := append([]playlist.Option{
		playlist.WithLogger(logger),
		playlist.WithMetrics(o.metrics),
	}, o.playlistOpts...)
	pl, err := playlist.New(plOpts...)
	if err != nil {
		return nil, fmt.Errorf("playlist: %w", err)
	}

	skipped, err := history.NewSkippedTracker(o.skippedCapacity)
	if err != nil {
		return nil, fmt.Errorf("skipped tracker: %w", err)
	}

	c := &Controller{
		session:   session,
		playlist:  pl,
		history:   history.NewPlaybackHistory(),
		skipped:   skipped,
		favorites: favorites.New(),
		registry:  o.registry,
		now:       o.now,
		logger:    logger,
		metrics:   o.metrics,
	}

	if o.index != nil {
		recs, err := recommend.New(o.index, skipped, pl, o.recConfig,
			recommend.WithLogger(logger),
			recommend.WithMetrics(o.metrics),
		)
		if err != nil {
			return nil, fmt.Errorf("recommender: %w", err)
		}
		c.recs = recs
	}
	return c, nil
}

// Session returns the session id
func (c *Controller) Session() string {
	return c.session
}

// Play plays a song right away. The song is resolved through the
// registry, offered to the playlist (rejections are ignored) and
// recorded as listened.
func (c *Controller) Play(title, artist string, duration int, opts ...song.Option) (*song.Song, error) {
	s, err := song.New(title, artist, duration, opts...)
	if err != nil {
		return nil, err
	}
	s = c.registry.Put(s)

	if res := c.playlist.AddSong(s); !res.OK() {
		c.logger.Debug().Str("title", s.Title).Str("status", string(res.Status)).Msg("played song not queued")
	}
	c.listen(s)
	return s, nil
}

// PlayNext plays the first queued song. Unless force is set, recently
// skipped songs are stepped over and stay queued. It returns nil when
// nothing is eligible. Draining the playlist triggers auto-replay once.
func (c *Controller) PlayNext(force bool) *song.Song {
	if c.playlist.IsEmpty() {
		return nil
	}
	s := c.playlist.PopFirstMatch(func(s *song.Song) bool {
		return force || s.ID == "" || !c.skipped.IsRecentlySkipped(s.ID)
	})
	if s == nil {
		return nil
	}

	c.listen(s)
	if c.playlist.IsEmpty() {
		c.autoReplay()
	}
	return s
}

// listen records one full play of s everywhere that tracks plays
func (c *Controller) listen(s *song.Song) {
	s.IncrementPlayCount()
	c.history.Record(s)
	c.metrics.RecordPlay()
	if s.ID == "" {
		return
	}

	c.favorites.RecordListen(s.ID, s.Duration)
	if c.recs != nil {
		var meta *recommend.Metadata
		if _, known := c.recs.Metadata(s.ID); !known && s.Genre != "" {
			meta = &recommend.Metadata{Genre: s.Genre, Artist: s.Artist, Duration: s.Duration}
		}
		c.recs.RecordPlay(s.ID, c.now(), s.Duration, meta)
	}
}

// Skip marks id as recently skipped
func (c *Controller) Skip(id string) {
	c.skipped.Skip(id)
	c.metrics.RecordSkip()
}

// AddFavorite marks a song as favorite
func (c *Controller) AddFavorite(id, title, artist string) {
	c.favorites.Add(id, title, artist)
}

// RemoveFavorite unmarks a favorite
func (c *Controller) RemoveFavorite(id string) {
	c.favorites.Remove(id)
}

// TopFavorites returns up to n favorites by listen time
func (c *Controller) TopFavorites(n int) []favorites.Summary {
	return c.favorites.TopN(n)
}

// UndoLastPlay returns the most recently played song to the playlist
func (c *Controller) UndoLastPlay() bool {
	return c.history.UndoLastPlay(c.playlist)
}

// Recommend returns suggestions based on recent plays, falling back to
// the popularity ranking when nothing similar is found. It returns nil
// when recommendations are not enabled.
func (c *Controller) Recommend(opts ...recommend.RecommendOption) []recommend.Recommendation {
	if c.recs == nil {
		return nil
	}
	if recs := c.recs.Recommend(opts...); len(recs) > 0 {
		return recs
	}
	return c.recs.PopularSongs()
}

// Current returns the most recently played song, or nil before any play
func (c *Controller) Current() *song.Song {
	return c.history.Peek()
}

// Preview loads the queued songs into a MiniPlayer buffering window songs.
// The playlist itself is not consumed.
func (c *Controller) Preview(window int) (*MiniPlayer, error) {
	mp, err := NewMiniPlayer(window)
	if err != nil {
		return nil, err
	}
	mp.Preload(c.playlist.Songs())
	return mp, nil
}

// PlaylistSongs returns the queued songs in order
func (c *Controller) PlaylistSongs() []*song.Song {
	return c.playlist.Songs()
}

// Playlist returns the session playlist
func (c *Controller) Playlist() *playlist.Playlist {
	return c.playlist
}

// History returns the playback history
func (c *Controller) History() *history.PlaybackHistory {
	return c.history
}

// Skipped returns the recently skipped tracker
func (c *Controller) Skipped() *history.SkippedTracker {
	return c.skipped
}

// Recommender returns the recommender, or nil when not enabled
func (c *Controller) Recommender() *recommend.Recommender {
	return c.recs
}

// Registry returns the song registry
func (c *Controller) Registry() *song.Registry {
	return c.registry
}
