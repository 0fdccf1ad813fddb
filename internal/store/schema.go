package store

// Migrations run in order; PRAGMA user_version tracks how many have been
// applied. Never edit an existing entry, only append.
var Migrations = []string{
	// == 1: tracks and lyrics ==
	`
CREATE TABLE tracks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	spotify_id TEXT NOT NULL,
	title TEXT NOT NULL,
	artists TEXT NOT NULL,
	spotify_metadata TEXT NOT NULL
);

CREATE TABLE lyrics (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	track_id INTEGER REFERENCES tracks(id),
	genius_url TEXT NOT NULL,
	lyrics TEXT NOT NULL
);

CREATE UNIQUE INDEX idx_tracks_spotify_id ON tracks(spotify_id);
`,
	// == 2: lyrics are 1:1 with tracks ==
	`
CREATE UNIQUE INDEX idx_lyrics_track_id ON lyrics(track_id);
`,
	// == 3: full-text shadow index, kept in lockstep by triggers ==
	// lyrics_idx is an external-content FTS5 table over lyrics.lyrics. The
	// triggers are the only writers to it, and they fire inside whatever
	// transaction touches the lyrics table, so the index can never diverge
	// from the rows it mirrors.
	`
CREATE VIRTUAL TABLE lyrics_idx USING fts5(lyrics, content='lyrics', content_rowid='id');

CREATE TRIGGER idxtrig_lyrics_insert AFTER INSERT ON lyrics BEGIN
	INSERT INTO lyrics_idx(rowid, lyrics) VALUES (new.id, new.lyrics);
END;
CREATE TRIGGER idxtrig_lyrics_delete AFTER DELETE ON lyrics BEGIN
	INSERT INTO lyrics_idx(lyrics_idx, rowid, lyrics) VALUES ('delete', old.id, old.lyrics);
END;
CREATE TRIGGER idxtrig_lyrics_update AFTER UPDATE ON lyrics BEGIN
	INSERT INTO lyrics_idx(lyrics_idx, rowid, lyrics) VALUES ('delete', old.id, old.lyrics);
	INSERT INTO lyrics_idx(rowid, lyrics) VALUES (new.id, new.lyrics);
END;
`,
	// == 4: pipeline run summaries ==
	`
CREATE TABLE runs (
	id TEXT PRIMARY KEY,
	started_at DATETIME NOT NULL,
	finished_at DATETIME,
	processed INTEGER NOT NULL DEFAULT 0,
	recorded INTEGER NOT NULL DEFAULT 0,
	skipped INTEGER NOT NULL DEFAULT 0
);
`,
}
