package catalog

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/1mb-dev/playwise/internal/explorer"
	"github.com/1mb-dev/playwise/internal/recommend"
	"github.com/1mb-dev/playwise/internal/testutil"
)

func openTestDB(t *testing.T, seedSQL string) *Repository {
	t.Helper()

	tmpDB := t.TempDir() + "/catalog.db"
	db, err := sql.Open("sqlite", tmpDB)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	_, err = db.Exec(testutil.SchemaDDL + seedSQL)
	if err != nil {
		t.Fatalf("failed to setup test db: %v", err)
	}
	_ = db.Close()

	repo, err := NewRepository(tmpDB)
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}

	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	return openTestDB(t, testutil.SampleTracks)
}

func TestAll(t *testing.T) {
	repo := setupTestRepo(t)

	tracks, err := repo.All()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Pending track excluded
	if len(tracks) != 5 {
		t.Fatalf("got %d tracks, want 5", len(tracks))
	}
	if tracks[0].ID != "r1" || tracks[0].Title != "Creep" {
		t.Errorf("first track = %+v, want r1 Creep", tracks[0])
	}
	if tracks[0].BPM != 92 || tracks[0].DurationSeconds != 238 {
		t.Errorf("numeric fields = %d bpm, %ds", tracks[0].BPM, tracks[0].DurationSeconds)
	}
	if tracks[2].BPM != 0 {
		t.Errorf("NULL bpm should read as 0, got %d", tracks[2].BPM)
	}
}

func TestDerivedIDs(t *testing.T) {
	repo := setupTestRepo(t)

	tracks, err := repo.All()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	blue := tracks[4]
	want := DeriveID("Blue in Green", "Bill Evans")
	if blue.ID != want {
		t.Errorf("id = %q, want derived %q", blue.ID, want)
	}
	if blue.Subgenre != "" || blue.Mood != "" {
		t.Errorf("NULL columns should read as empty, got %q %q", blue.Subgenre, blue.Mood)
	}

	// Stable across reads and spelling variants
	if DeriveID("  blue IN green", "BILL   evans") != want {
		t.Error("derived id should follow the normalized key")
	}
	if DeriveID("Other", "Bill Evans") == want {
		t.Error("different songs must not share an id")
	}
}

func TestByGenre(t *testing.T) {
	repo := setupTestRepo(t)

	tests := []struct {
		name      string
		genre     string
		wantCount int
	}{
		{"rock approved only", "Rock", 3},
		{"case insensitive", "JAZZ", 2},
		{"unknown genre returns empty", "polka", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracks, err := repo.ByGenre(tt.genre)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(tracks) != tt.wantCount {
				t.Errorf("got %d tracks, want %d", len(tracks), tt.wantCount)
			}
		})
	}
}

func TestGenreStats(t *testing.T) {
	repo := setupTestRepo(t)

	stats, err := repo.GenreStats()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// jazz and Jazz fold together; pending rock excluded
	if len(stats) != 2 {
		t.Fatalf("got %d genres, want 2", len(stats))
	}
	if stats[0].Genre != "jazz" || stats[0].TrackCount != 2 || stats[0].TotalSeconds != 899 {
		t.Errorf("jazz stats = %+v", stats[0])
	}
	if stats[1].Genre != "rock" || stats[1].TrackCount != 3 || stats[1].TotalSeconds != 887 {
		t.Errorf("rock stats = %+v", stats[1])
	}
}

func TestPing(t *testing.T) {
	repo := setupTestRepo(t)

	err := repo.Ping()
	if err != nil {
		t.Errorf("Ping should succeed on valid repo: %v", err)
	}
}

func TestNewRepository_BadPath(t *testing.T) {
	_, err := NewRepository(t.TempDir() + "/missing/dir/catalog.db")
	if err == nil {
		t.Error("expected error for unreachable database path")
	}
}

func TestSeed(t *testing.T) {
	repo := setupTestRepo(t)
	tracks, err := repo.All()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	index := explorer.New()
	rec, err := recommend.New(index, nil, nil, recommend.DefaultConfig())
	if err != nil {
		t.Fatalf("failed to create recommender: %v", err)
	}

	if n := Seed(tracks, index, rec); n != 5 {
		t.Errorf("seeded %d tracks, want 5", n)
	}

	got := index.Search(explorer.Criteria{Genre: "rock", Subgenre: "alternative"})
	if len(got) != 2 || got[0] != "r1" || got[1] != "r2" {
		t.Errorf("alternative rock = %v, want [r1 r2]", got)
	}
	if len(index.Search(explorer.Criteria{Genre: "Jazz"})) != 2 {
		t.Error("both jazz tracks should be indexed")
	}

	meta, ok := rec.Metadata("j1")
	if !ok {
		t.Fatal("metadata for j1 should be set")
	}
	if meta.BPM != 136 || meta.Mood != "Chill" {
		t.Errorf("j1 metadata = %+v", meta)
	}

	if Seed(tracks, nil, nil) != 5 {
		t.Error("nil targets should be tolerated")
	}
}

func TestTrackSong(t *testing.T) {
	tr := &Track{ID: "x", Title: "T", Artist: "A", Genre: "jazz", DurationSeconds: 90}
	s, err := tr.Song()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ID != "x" || s.Genre != "jazz" || s.Duration != 90 || s.PlayCount != 0 {
		t.Errorf("song = %+v", s)
	}
}
