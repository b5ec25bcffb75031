// Package testutil provides shared test helpers for database setup.
package testutil

// SchemaDDL is the catalog schema the importer reads.
// Used by test helpers across packages to avoid DDL duplication.
const SchemaDDL = `
	CREATE TABLE tracks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		song_id TEXT UNIQUE,
		title TEXT NOT NULL,
		artist TEXT NOT NULL,
		genre TEXT NOT NULL,
		subgenre TEXT,
		mood TEXT,
		duration_seconds INTEGER NOT NULL DEFAULT 0,
		bpm INTEGER,
		status TEXT NOT NULL DEFAULT 'approved',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

// SampleTracks seeds a small catalog covering two genres, a pending
// row and a row without a song id.
const SampleTracks = `
	INSERT INTO tracks (song_id, title, artist, genre, subgenre, mood, duration_seconds, bpm, status) VALUES
		('r1', 'Creep', 'Radiohead', 'Rock', 'Alternative', 'Melancholic', 238, 92, 'approved'),
		('r2', 'Fix You', 'Coldplay', 'Rock', 'Alternative', 'Melancholic', 295, 138, 'approved'),
		('r3', 'Bohemian Rhapsody', 'Queen', 'Rock', 'Classic', 'Epic', 354, NULL, 'approved'),
		('j1', 'So What', 'Miles Davis', 'Jazz', 'Modal', 'Chill', 562, 136, 'approved'),
		(NULL, 'Blue in Green', 'Bill Evans', 'jazz', NULL, NULL, 337, NULL, 'approved'),
		('p1', 'Draft', 'Nobody', 'Rock', NULL, NULL, 100, NULL, 'pending');
`
