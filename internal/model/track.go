package model

import (
	"github.com/khdl/khinsider-dl/internal/khinsider"
)

// Track is a fully resolved track page.
type Track struct {
	// Album is the owning album, shared between sibling tracks.
	Album *Album

	// Ref is the page identity the track was resolved from.
	Ref khinsider.TrackRef

	// AudioURL is where the audio file itself lives.
	AudioURL string

	// Filename is Ref.TrackName decoded into a human name.
	Filename string

	// ByteSize is 0 until the audio file has been downloaded.
	ByteSize int64
}

func (t *Track) String() string {
	return t.Album.Slug + " - " + t.Filename
}
