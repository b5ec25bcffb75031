// Package recommend suggests unplayed songs similar to what was played
// recently, falling back to a listen-time ranking.
package recommend

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/1mb-dev/playwise/internal/explorer"
	"github.com/1mb-dev/playwise/internal/metrics"
	"github.com/1mb-dev/playwise/internal/song"
)

// Index finds songs by category
type Index interface {
	Search(explorer.Criteria) []string
}

// SkipChecker reports recently skipped songs
type SkipChecker interface {
	IsRecentlySkipped(id string) bool
}

// PlaylistSource exposes the songs queued for playback
type PlaylistSource interface {
	Songs() []*song.Song
}

// Recommendation is a ranked suggestion
type Recommendation struct {
	ID     string  `json:"id"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// Play is one entry of the recent-play window
type Play struct {
	ID       string    `json:"id"`
	PlayedAt time.Time `json:"played_at"`
}

// Recommender ranks candidates from a bounded window of recent plays
type Recommender struct {
	index  Index
	skips  SkipChecker
	active PlaylistSource
	cfg    Config

	window   []Play
	played   map[string]struct{}
	listen   map[string]int
	metadata map[string]*Metadata

	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// Option configures a Recommender
type Option func(*Recommender)

// WithLogger sets the logger for recommendation events
func WithLogger(l zerolog.Logger) Option {
	return func(r *Recommender) { r.logger = l }
}

// WithMetrics sets the counters updated by Recommend
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Recommender) { r.metrics = m }
}

// New creates a recommender. skips and active may be nil.
func New(index Index, skips SkipChecker, active PlaylistSource, cfg Config, opts ...Option) (*Recommender, error) {
	if index == nil {
		return nil, fmt.Errorf("%w: index is required", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Recommender{
		index:    index,
		skips:    skips,
		active:   active,
		cfg:      cfg,
		window:   make([]Play, 0, cfg.WindowSize),
		played:   make(map[string]struct{}),
		listen:   make(map[string]int),
		metadata: make(map[string]*Metadata),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.metrics == nil {
		r.metrics = metrics.New()
	}
	return r, nil
}

// RecordPlay appends a play to the window, marks id as played, adds
// duration to its listen total and stores meta when given.
func (r *Recommender) RecordPlay(id string, playedAt time.Time, duration int, meta *Metadata) {
	if len(r.window) == r.cfg.WindowSize {
		r.window = append(r.window[:0], r.window[1:]...)
	}
	r.window = append(r.window, Play{ID: id, PlayedAt: playedAt})
	r.played[id] = struct{}{}
	r.listen[id] += duration
	if meta != nil {
		m := *meta
		r.metadata[id] = &m
	}
}

// SetMetadata registers metadata for a song that may never have played
func (r *Recommender) SetMetadata(id string, meta Metadata) {
	r.metadata[id] = &meta
}

// Metadata returns what is known about id
func (r *Recommender) Metadata(id string) (Metadata, bool) {
	m, ok := r.metadata[id]
	if !ok {
		return Metadata{}, false
	}
	return *m, true
}

// Window returns recent plays, oldest first
func (r *Recommender) Window() []Play {
	return slices.Clone(r.window)
}

// Played reports whether id was ever played
func (r *Recommender) Played(id string) bool {
	_, ok := r.played[id]
	return ok
}

// TotalListen returns the accumulated listen seconds for id
func (r *Recommender) TotalListen(id string) int {
	return r.listen[id]
}

type recommendOptions struct {
	seedCount     int
	topN          int
	includeActive bool
}

// RecommendOption adjusts a single Recommend call
type RecommendOption func(*recommendOptions)

// WithSeedCount overrides how many recent distinct plays seed the search
func WithSeedCount(n int) RecommendOption {
	return func(o *recommendOptions) {
		if n > 0 {
			o.seedCount = n
		}
	}
}

// WithTopN overrides how many recommendations are returned
func WithTopN(n int) RecommendOption {
	return func(o *recommendOptions) {
		if n > 0 {
			o.topN = n
		}
	}
}

// IncludeActivePlaylist keeps candidates that are already queued
func IncludeActivePlaylist() RecommendOption {
	return func(o *recommendOptions) { o.includeActive = true }
}

// seeds returns up to n distinct ids, newest first
func (r *Recommender) seeds(n int) []string {
	out := make([]string, 0, n)
	seen := make(map[string]struct{}, n)
	for i := len(r.window) - 1; i >= 0 && len(out) < n; i-- {
		id := r.window[i].ID
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// candidates returns ids sharing the seed's categories, capped per seed
func (r *Recommender) candidates(seedID string) []string {
	meta, ok := r.metadata[seedID]
	if !ok || strings.TrimSpace(meta.Genre) == "" {
		return nil
	}
	crit := explorer.Criteria{Genre: meta.Genre}
	if meta.Subgenre != "" {
		crit.Subgenre = meta.Subgenre
		crit.Mood = meta.Mood
	}

	ids := lo.Without(r.index.Search(crit), seedID)
	slices.Sort(ids)
	if len(ids) > r.cfg.MaxCandidatesPerSeed {
		ids = ids[:r.cfg.MaxCandidatesPerSeed]
	}
	return ids
}

func (r *Recommender) skipped(id string) bool {
	return r.skips != nil && r.skips.IsRecentlySkipped(id)
}

func (r *Recommender) activeIDs() map[string]struct{} {
	set := make(map[string]struct{})
	if r.active == nil {
		return set
	}
	for _, s := range r.active.Songs() {
		if s.ID != "" {
			set[s.ID] = struct{}{}
		}
	}
	return set
}

// Recommend ranks unplayed songs similar to the most recent distinct
// plays. Songs played at any time, recently skipped songs and, unless
// IncludeActivePlaylist is given, queued songs are never suggested.
func (r *Recommender) Recommend(opts ...RecommendOption) []Recommendation {
	start := time.Now()
	o := recommendOptions{seedCount: r.cfg.SeedCount, topN: r.cfg.TopN}
	for _, opt := range opts {
		opt(&o)
	}

	seeds := r.seeds(o.seedCount)
	if len(seeds) == 0 {
		r.metrics.RecordRecommend(0, time.Since(start))
		return nil
	}

	var active map[string]struct{}
	if !o.includeActive {
		active = r.activeIDs()
	}

	scores := make(map[string]float64)
	reasons := make(map[string][]string)
	for _, seedID := range seeds {
		for _, id := range r.candidates(seedID) {
			if _, ok := r.played[id]; ok {
				continue
			}
			if r.skipped(id) {
				continue
			}
			if _, ok := active[id]; ok {
				continue
			}
			score, reason := r.similarity(r.metadata[seedID], r.metadata[id])
			if score <= 0 {
				continue
			}
			scores[id] += score
			reasons[id] = append(reasons[id], reason)
		}
	}

	out := make([]Recommendation, 0, len(scores))
	for id, score := range scores {
		out = append(out, Recommendation{
			ID:     id,
			Score:  round2(score),
			Reason: strings.Join(lo.Uniq(reasons[id]), "; "),
		})
	}
	rank(out)
	if len(out) > o.topN {
		out = out[:o.topN]
	}

	r.metrics.RecordRecommend(len(out), time.Since(start))
	r.logger.Debug().Int("seeds", len(seeds)).Int("candidates", len(scores)).Int("returned", len(out)).Msg("recommendations")
	return out
}

type popularOptions struct {
	topN           int
	includeRecent  bool
	includeSkipped bool
}

// PopularOption adjusts a single PopularSongs call
type PopularOption func(*popularOptions)

// WithPopularTopN overrides how many songs PopularSongs returns
func WithPopularTopN(n int) PopularOption {
	return func(o *popularOptions) {
		if n > 0 {
			o.topN = n
		}
	}
}

// IncludeRecent keeps songs that have already been played
func IncludeRecent() PopularOption {
	return func(o *popularOptions) { o.includeRecent = true }
}

// IncludeSkipped keeps recently skipped songs
func IncludeSkipped() PopularOption {
	return func(o *popularOptions) { o.includeSkipped = true }
}

// PopularSongs ranks every known song by accumulated listen time.
// A song is known once it has been played or given metadata.
func (r *Recommender) PopularSongs(opts ...PopularOption) []Recommendation {
	o := popularOptions{topN: r.cfg.TopN}
	for _, opt := range opts {
		opt(&o)
	}

	known := lo.Union(lo.Keys(r.listen), lo.Keys(r.metadata))
	out := make([]Recommendation, 0, len(known))
	for _, id := range known {
		if _, ok := r.played[id]; ok && !o.includeRecent {
			continue
		}
		if !o.includeSkipped && r.skipped(id) {
			continue
		}
		total := r.listen[id]
		out = append(out, Recommendation{
			ID:     id,
			Score:  float64(total),
			Reason: fmt.Sprintf("popular song (total listen time: %ds)", total),
		})
	}
	rank(out)
	if len(out) > o.topN {
		out = out[:o.topN]
	}
	return out
}

// rank sorts by score descending, then id ascending
func rank(recs []Recommendation) {
	slices.SortFunc(recs, func(a, b Recommendation) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
