// Package catalog reads song metadata from a SQLite catalog.
// The engine never writes to it.
package catalog

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Repository reads tracks from the catalog database
type Repository struct {
	db *sql.DB
}

// NewRepository opens the catalog at dbPath
func NewRepository(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// WAL mode allows reads while a catalog tool writes
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}
	// Wait up to 5s for a lock instead of failing immediately
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	return &Repository{db: db}, nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}

// Ping checks database connectivity
func (r *Repository) Ping() error {
	return r.db.Ping()
}

const trackColumns = `song_id, title, artist, genre, subgenre, mood, duration_seconds, bpm`

// scanTrackRow scans a row into a scanTrack struct
func scanTrackRow(row interface{ Scan(...any) error }) (*scanTrack, error) {
	var st scanTrack
	err := row.Scan(
		&st.SongID,
		&st.Title,
		&st.Artist,
		&st.Genre,
		&st.Subgenre,
		&st.Mood,
		&st.DurationSeconds,
		&st.BPM,
	)
	return &st, err
}

func (r *Repository) queryTracks(where string, args ...any) ([]*Track, error) {
	query := fmt.Sprintf(`SELECT %s FROM tracks %s ORDER BY id`, trackColumns, where)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tracks []*Track
	for rows.Next() {
		st, err := scanTrackRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan track: %w", err)
		}
		tracks = append(tracks, st.toTrack())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating tracks: %w", err)
	}

	return tracks, nil
}

// All returns every approved track in catalog order
func (r *Repository) All() ([]*Track, error) {
	return r.queryTracks("WHERE status = ?", StatusApproved)
}

// ByGenre returns approved tracks of a genre, matched case-insensitively
func (r *Repository) ByGenre(genre string) ([]*Track, error) {
	return r.queryTracks("WHERE status = ? AND lower(trim(genre)) = lower(trim(?))", StatusApproved, genre)
}

// GenreStats holds aggregated stats for a genre
type GenreStats struct {
	Genre        string `json:"genre"`
	TrackCount   int    `json:"track_count"`
	TotalSeconds int    `json:"total_seconds"`
}

// GenreStats returns track count and total duration per genre
func (r *Repository) GenreStats() ([]GenreStats, error) {
	query := `
		SELECT lower(trim(genre)) AS g, COUNT(*) AS track_count, COALESCE(SUM(duration_seconds), 0) AS total_seconds
		FROM tracks
		WHERE status = ?
		GROUP BY g
		ORDER BY g
	`

	rows, err := r.db.Query(query, StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to query genre stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var stats []GenreStats
	for rows.Next() {
		var s GenreStats
		if err := rows.Scan(&s.Genre, &s.TrackCount, &s.TotalSeconds); err != nil {
			return nil, fmt.Errorf("failed to scan genre stats: %w", err)
		}
		stats = append(stats, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating genre stats: %w", err)
	}

	return stats, nil
}
