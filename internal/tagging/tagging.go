// Package tagging writes acquired lyrics into local audio files: USLT
// frames for MP3, Vorbis comments for FLAC.
package tagging

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/go-flac/flacvorbis"
	flac "github.com/go-flac/go-flac"
)

// FileTags is the minimal tag set needed to match a file against the catalog.
type FileTags struct {
	Title  string
	Artist string
}

// ReadTags extracts title and artist from a supported audio file.
func ReadTags(path string) (FileTags, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return readMP3Tags(path)
	case ".flac":
		return readFLACTags(path)
	default:
		return FileTags{}, fmt.Errorf("unsupported file format: %s", filepath.Ext(path))
	}
}

// WriteLyrics embeds lyric text into a supported audio file.
func WriteLyrics(path, lyrics string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return writeMP3Lyrics(path, lyrics)
	case ".flac":
		return writeFLACLyrics(path, lyrics)
	default:
		return fmt.Errorf("unsupported file format: %s", filepath.Ext(path))
	}
}

func readMP3Tags(path string) (FileTags, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return FileTags{}, fmt.Errorf("failed to open mp3 file: %w", err)
	}
	defer tag.Close() //nolint:errcheck // read-only open

	return FileTags{Title: tag.Title(), Artist: tag.Artist()}, nil
}

func writeMP3Lyrics(path, lyrics string) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("failed to open mp3 file: %w", err)
	}
	defer tag.Close() //nolint:errcheck // deferred cleanup

	tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
		Encoding:          id3v2.EncodingUTF8,
		Language:          "eng",
		ContentDescriptor: "",
		Lyrics:            lyrics,
	})

	if err := tag.Save(); err != nil {
		return fmt.Errorf("failed to save mp3 file: %w", err)
	}
	return nil
}

func readFLACTags(path string) (FileTags, error) {
	file, err := flac.ParseFile(path)
	if err != nil {
		return FileTags{}, fmt.Errorf("failed to parse flac file: %w", err)
	}

	comment, _, err := findVorbisComment(file)
	if err != nil {
		return FileTags{}, err
	}
	if comment == nil {
		return FileTags{}, nil
	}

	var tags FileTags
	if titles, err := comment.Get(flacvorbis.FIELD_TITLE); err == nil && len(titles) > 0 {
		tags.Title = titles[0]
	}
	if artists, err := comment.Get(flacvorbis.FIELD_ARTIST); err == nil && len(artists) > 0 {
		tags.Artist = artists[0]
	}
	return tags, nil
}

func writeFLACLyrics(path, lyrics string) error {
	file, err := flac.ParseFile(path)
	if err != nil {
		return fmt.Errorf("failed to parse flac file: %w", err)
	}

	comment, index, err := findVorbisComment(file)
	if err != nil {
		return err
	}
	if comment == nil {
		comment = flacvorbis.New()
	}

	if err := comment.Add("LYRICS", lyrics); err != nil {
		return fmt.Errorf("failed to add lyrics comment: %w", err)
	}

	block := comment.Marshal()
	if index >= 0 {
		file.Meta[index] = &block
	} else {
		file.Meta = append(file.Meta, &block)
	}

	if err := file.Save(path); err != nil {
		return fmt.Errorf("failed to save flac file: %w", err)
	}
	return nil
}

// findVorbisComment locates the Vorbis comment block, returning (nil, -1)
// when the file has none.
func findVorbisComment(file *flac.File) (*flacvorbis.MetaDataBlockVorbisComment, int, error) {
	for i, meta := range file.Meta {
		if meta.Type == flac.VorbisComment {
			comment, err := flacvorbis.ParseFromMetaDataBlock(*meta)
			if err != nil {
				return nil, -1, fmt.Errorf("failed to parse vorbis comment: %w", err)
			}
			return comment, i, nil
		}
	}
	return nil, -1, nil
}
