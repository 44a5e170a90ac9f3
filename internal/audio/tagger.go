package audio

import (
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2"

	"github.com/khdl/khinsider-dl/internal/model"
)

// Tagger writes ID3 tags to downloaded MP3 files.
//
// khinsider track pages carry no per-track metadata beyond the
// filename, so the tags come from the album: title, year, and
// publisher. Non-MP3 files (FLAC rips) are left untouched.
//
// Example:
//
//	tagger := audio.NewTagger()
//	if err := tagger.Tag(path, track); err != nil {
//	    log.Warnw("tagging failed", "path", path, "err", err)
//	}
type Tagger struct{}

// NewTagger creates a Tagger.
func NewTagger() *Tagger {
	return &Tagger{}
}

// Tag writes album metadata into the MP3 file at path. Files without
// an .mp3 extension are skipped without error.
func (t *Tagger) Tag(path string, track *model.Track) error {
	if !strings.EqualFold(filepath.Ext(path), ".mp3") {
		return nil
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer tag.Close()

	base := filepath.Base(path)
	tag.SetTitle(strings.TrimSuffix(base, filepath.Ext(base)))
	tag.SetAlbum(track.Album.Title)

	if track.Album.Year != "" {
		tag.AddTextFrame("TYER", id3v2.EncodingUTF8, track.Album.Year)
	}
	if track.Album.Publisher != nil {
		tag.AddTextFrame("TPUB", id3v2.EncodingUTF8, track.Album.Publisher.Name)
	}

	return tag.Save()
}
