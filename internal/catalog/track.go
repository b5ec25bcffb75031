package catalog

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/1mb-dev/playwise/internal/explorer"
	"github.com/1mb-dev/playwise/internal/lookup"
	"github.com/1mb-dev/playwise/internal/recommend"
	"github.com/1mb-dev/playwise/internal/song"
)

// Track is a catalog entry
type Track struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Artist          string `json:"artist"`
	Genre           string `json:"genre"`
	Subgenre        string `json:"subgenre,omitempty"`
	Mood            string `json:"mood,omitempty"`
	DurationSeconds int    `json:"duration_seconds"`
	BPM             int    `json:"bpm,omitempty"`
}

// Status constants
const (
	StatusApproved = "approved"
)

// idSpace namespaces ids derived for rows without a song id
var idSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/1mb-dev/playwise/catalog"))

// DeriveID returns a stable id for a title and artist. Spelling variants
// that normalize to the same key share an id.
func DeriveID(title, artist string) string {
	return uuid.NewSHA1(idSpace, []byte(lookup.Key(title, artist))).String()
}

// scanTrack is a helper for scanning track rows
type scanTrack struct {
	SongID          sql.NullString
	Title           string
	Artist          string
	Genre           string
	Subgenre        sql.NullString
	Mood            sql.NullString
	DurationSeconds int
	BPM             sql.NullInt64
}

func (s *scanTrack) toTrack() *Track {
	t := &Track{
		ID:              s.SongID.String,
		Title:           s.Title,
		Artist:          s.Artist,
		Genre:           s.Genre,
		Subgenre:        s.Subgenre.String,
		Mood:            s.Mood.String,
		DurationSeconds: s.DurationSeconds,
	}
	if !s.SongID.Valid || s.SongID.String == "" {
		t.ID = DeriveID(s.Title, s.Artist)
	}
	if s.BPM.Valid {
		t.BPM = int(s.BPM.Int64)
	}
	return t
}

// Song creates an engine song for the track
func (t *Track) Song() (*song.Song, error) {
	return song.New(t.Title, t.Artist, t.DurationSeconds, song.WithID(t.ID), song.WithGenre(t.Genre))
}

// Classification places the track in the explorer tree
func (t *Track) Classification() explorer.Classification {
	return explorer.Classification{
		Genre:    t.Genre,
		Subgenre: t.Subgenre,
		Mood:     t.Mood,
		Artist:   t.Artist,
	}
}

// Metadata describes the track for similarity scoring
func (t *Track) Metadata() recommend.Metadata {
	return recommend.Metadata{
		Genre:    t.Genre,
		Subgenre: t.Subgenre,
		Mood:     t.Mood,
		Artist:   t.Artist,
		Duration: t.DurationSeconds,
		BPM:      t.BPM,
	}
}
