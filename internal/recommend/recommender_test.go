package recommend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/1mb-dev/playwise/internal/explorer"
	"github.com/1mb-dev/playwise/internal/metrics"
	"github.com/1mb-dev/playwise/internal/song"
)

type MockSkips struct {
	mock.Mock
}

func (m *MockSkips) IsRecentlySkipped(id string) bool {
	return m.Called(id).Bool(0)
}

type MockPlaylist struct {
	mock.Mock
}

func (m *MockPlaylist) Songs() []*song.Song {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]*song.Song)
}

var (
	melancholic = Metadata{Genre: "Rock", Subgenre: "Alternative", Mood: "Melancholic", Duration: 240, BPM: 120}
	slower      = Metadata{Genre: "Rock", Subgenre: "Alternative", Mood: "Melancholic", Duration: 200, BPM: 100}
	bare        = Metadata{Genre: "Rock", Subgenre: "Alternative", Mood: "Melancholic"}
	bebop       = Metadata{Genre: "Jazz", Subgenre: "Bebop", Mood: "Chill", Duration: 300, BPM: 180}
)

type fixture struct {
	rec     *Recommender
	index   *explorer.Explorer
	skips   *MockSkips
	active  *MockPlaylist
	metrics *metrics.Metrics
}

func file(e *explorer.Explorer, id string, m Metadata) {
	e.Add(id, explorer.Classification{Genre: m.Genre, Subgenre: m.Subgenre, Mood: m.Mood, Artist: m.Artist})
}

// newFixture indexes s1, s2, c1, c2, j1 and plays s1 then s2
func newFixture(t *testing.T, cfg Config) *fixture {
	t.Helper()
	f := &fixture{
		index:   explorer.New(),
		skips:   new(MockSkips),
		active:  new(MockPlaylist),
		metrics: metrics.New(),
	}
	catalog := map[string]Metadata{
		"s1": melancholic,
		"s2": slower,
		"c1": melancholic,
		"c2": bare,
		"j1": bebop,
	}
	for id, m := range catalog {
		file(f.index, id, m)
	}

	rec, err := New(f.index, f.skips, f.active, cfg, WithMetrics(f.metrics))
	require.NoError(t, err)
	f.rec = rec

	rec.SetMetadata("c1", melancholic)
	rec.SetMetadata("c2", bare)
	rec.SetMetadata("j1", bebop)
	now := time.Now()
	rec.RecordPlay("s1", now, 240, &melancholic)
	rec.RecordPlay("s2", now.Add(time.Minute), 200, &slower)
	return f
}

func (f *fixture) noSkips() {
	f.skips.On("IsRecentlySkipped", mock.Anything).Return(false)
}

func (f *fixture) emptyPlaylist() {
	f.active.On("Songs").Return([]*song.Song{})
}

func recIDs(recs []Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}

func TestNewValidatesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SeedCount = 0
	_, err := New(explorer.New(), nil, nil, cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New(nil, nil, nil, DefaultConfig())
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New(explorer.New(), nil, nil, DefaultConfig())
	assert.NoError(t, err)
}

func TestRecommendWithoutPlays(t *testing.T) {
	rec, err := New(explorer.New(), nil, nil, DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, rec.Recommend())
}

func TestRecommendScoresAndAggregates(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	f.noSkips()
	f.emptyPlaylist()

	recs := f.rec.Recommend()
	require.Len(t, recs, 2)

	assert.Equal(t, "c1", recs[0].ID)
	assert.InDelta(t, 6.03, recs[0].Score, 1e-9)
	assert.Equal(t,
		"same genre, same subgenre, same mood, similar duration (±40s); "+
			"same genre, same subgenre, same mood, similar duration (±0s), similar BPM (±0)",
		recs[0].Reason)

	assert.Equal(t, "c2", recs[1].ID)
	assert.InDelta(t, 4.8, recs[1].Score, 1e-9)
	assert.Equal(t, "same genre, same subgenre, same mood", recs[1].Reason, "reasons are deduplicated")

	assert.NotContains(t, recIDs(recs), "j1", "other genres are never candidates")
	f.active.AssertExpectations(t)
}

func TestSimilarityRockMelancholic(t *testing.T) {
	rec, err := New(explorer.New(), nil, nil, DefaultConfig())
	require.NoError(t, err)

	seed := Metadata{Genre: "Rock", Mood: "Melancholic", Duration: 240}
	candidate := Metadata{Genre: "rock", Mood: "melancholic", Duration: 250}
	score, reason := rec.similarity(&seed, &candidate)
	assert.GreaterOrEqual(t, score, 1.6)
	assert.Contains(t, reason, "same genre")
	assert.Contains(t, reason, "same mood")
	assert.Contains(t, reason, "similar duration (±10s)")

	score, reason = rec.similarity(&seed, nil)
	assert.Zero(t, score)
	assert.Equal(t, "missing metadata", reason)

	far := Metadata{Genre: "Pop", Duration: 1000}
	score, reason = rec.similarity(&seed, &far)
	assert.Zero(t, score)
	assert.Equal(t, "minimal similarity", reason)
}

func TestProximity(t *testing.T) {
	tests := []struct {
		name      string
		a, b      int
		threshold int
		want      float64
		ok        bool
	}{
		{"equal", 100, 100, 10, 1, true},
		{"half", 100, 105, 10, 0.5, true},
		{"at threshold", 100, 110, 10, 0, true},
		{"beyond", 100, 111, 10, 0, false},
		{"unknown", 0, 100, 10, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, ok := proximity(tt.a, tt.b, tt.threshold)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestRecommendNeverReturnsPlayedSongs(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	f.noSkips()
	f.emptyPlaylist()

	f.rec.RecordPlay("c1", time.Now(), 240, nil)
	recs := f.rec.Recommend()
	assert.NotContains(t, recIDs(recs), "c1")
	for _, r := range recs {
		assert.False(t, f.rec.Played(r.ID))
	}
}

func TestRecommendFiltersSkippedAndActive(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	f.skips.On("IsRecentlySkipped", "c1").Return(true)
	f.skips.On("IsRecentlySkipped", mock.Anything).Return(false)

	queued, err := song.New("Queued", "Band", 200, song.WithID("c2"))
	require.NoError(t, err)
	f.active.On("Songs").Return([]*song.Song{queued})

	assert.Empty(t, f.rec.Recommend())

	recs := f.rec.Recommend(IncludeActivePlaylist())
	assert.Equal(t, []string{"c2"}, recIDs(recs))
}

func TestCandidatesWithoutMetadataAreDropped(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	f.noSkips()
	f.emptyPlaylist()
	file(f.index, "ghost", melancholic)

	assert.NotContains(t, recIDs(f.rec.Recommend()), "ghost")
}

func TestRecommendTopNAndTies(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	f.noSkips()
	f.emptyPlaylist()
	for _, id := range []string{"c4", "c3"} {
		file(f.index, id, bare)
		f.rec.SetMetadata(id, bare)
	}

	recs := f.rec.Recommend(WithTopN(3))
	assert.Equal(t, []string{"c1", "c2", "c3"}, recIDs(recs), "equal scores rank by id")
}

func TestSeedsAreDistinctNewestFirst(t *testing.T) {
	rec, err := New(explorer.New(), nil, nil, DefaultConfig())
	require.NoError(t, err)
	now := time.Now()
	for _, id := range []string{"a", "b", "a", "c", "c"} {
		rec.RecordPlay(id, now, 10, nil)
	}

	assert.Equal(t, []string{"c", "a", "b"}, rec.seeds(5))
	assert.Equal(t, []string{"c", "a"}, rec.seeds(2))
}

func TestWindowEvictsOldest(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WindowSize = 2
	rec, err := New(explorer.New(), nil, nil, cfg)
	require.NoError(t, err)

	now := time.Now()
	rec.RecordPlay("a", now, 100, nil)
	rec.RecordPlay("b", now, 50, nil)
	rec.RecordPlay("a", now, 20, &bebop)

	window := rec.Window()
	require.Len(t, window, 2)
	assert.Equal(t, "b", window[0].ID)
	assert.Equal(t, "a", window[1].ID)
	assert.True(t, rec.Played("a"))
	assert.Equal(t, 120, rec.TotalListen("a"))

	meta, ok := rec.Metadata("a")
	require.True(t, ok)
	assert.Equal(t, "Jazz", meta.Genre)
}

func TestCandidatesCappedPerSeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxCandidatesPerSeed = 1
	f := newFixture(t, cfg)
	f.noSkips()
	f.emptyPlaylist()

	// Sorted candidates are c1, c2, s1 for seed s2 and c1, c2, s2 for s1.
	assert.Equal(t, []string{"c1"}, recIDs(f.rec.Recommend()))
}

func TestRecommendRecordsMetrics(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	f.noSkips()
	f.emptyPlaylist()

	f.rec.Recommend()
	snap := f.metrics.Snapshot()
	assert.Equal(t, uint64(1), snap["recommend_calls"])
	assert.Equal(t, uint64(2), snap["recommended_total"])
}

func TestPopularSongs(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	f.skips.On("IsRecentlySkipped", "c2").Return(true)
	f.skips.On("IsRecentlySkipped", mock.Anything).Return(false)

	// Played songs are excluded by default, leaving unplayed catalog songs.
	assert.Equal(t, []string{"c1", "j1"}, recIDs(f.rec.PopularSongs()))

	recs := f.rec.PopularSongs(IncludeRecent(), WithPopularTopN(2))
	require.Len(t, recs, 2)
	assert.Equal(t, "s1", recs[0].ID)
	assert.Equal(t, 240.0, recs[0].Score)
	assert.Equal(t, "popular song (total listen time: 240s)", recs[0].Reason)
	assert.Equal(t, "s2", recs[1].ID)

	all := f.rec.PopularSongs(IncludeRecent(), IncludeSkipped())
	assert.Equal(t, []string{"s1", "s2", "c1", "c2", "j1"}, recIDs(all))
}
