package tagging

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"lyricspider/internal/logger"
	"lyricspider/internal/store"
)

var supportedExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
}

// ExportLibrary walks a music directory and embeds stored lyrics into every
// file whose tags match a lyricked catalog track. Files without a match or
// with unreadable tags are skipped, not fatal. Returns (tagged, skipped).
func ExportLibrary(db *store.DB, dir string, log *logger.Logger) (int, int, error) {
	log = log.WithComponent("export")

	var tagged, skipped int
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk %s: %w", path, err)
		}
		if entry.IsDir() || !supportedExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		tags, err := ReadTags(path)
		if err != nil {
			log.Warn("unreadable tags", "path", path, "error", err)
			skipped++
			return nil
		}
		if tags.Title == "" || tags.Artist == "" {
			log.Debug("file missing title or artist tag", "path", path)
			skipped++
			return nil
		}

		record, err := db.FindLyricsForTitleArtist(tags.Title, tags.Artist)
		if err != nil {
			return err
		}
		if record == nil {
			log.Debug("no stored lyrics", "path", path, "title", tags.Title)
			skipped++
			return nil
		}

		if err := WriteLyrics(path, record.Lyrics); err != nil {
			log.Warn("failed to write lyrics", "path", path, "error", err)
			skipped++
			return nil
		}

		log.Info("embedded lyrics", "path", path, "title", tags.Title)
		tagged++
		return nil
	})
	if err != nil {
		return tagged, skipped, err
	}

	return tagged, skipped, nil
}
