package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/khdl/khinsider-dl/internal/khinsider"
	"github.com/khdl/khinsider-dl/internal/model"
)

func TestPlaylist(t *testing.T) {
	album := &model.Album{
		Title: "Test Album",
		Slug:  "test-album",
		TrackRefs: []khinsider.TrackRef{
			{AlbumSlug: "test-album", TrackName: "01.%2520Opening.mp3"},
			{AlbumSlug: "test-album", TrackName: "02.%2520Ending.mp3"},
		},
	}

	got := Playlist(album)
	want := "#EXTM3U\n01. Opening.mp3\n02. Ending.mp3\n"
	assert.Equal(t, want, got)
}

func TestPlaylist_SanitizedNames(t *testing.T) {
	album := &model.Album{
		Title: "Test Album",
		Slug:  "test-album",
		TrackRefs: []khinsider.TrackRef{
			{AlbumSlug: "test-album", TrackName: "01.%2520Song%253A%2520Part%25201.mp3"},
		},
	}

	// Entries must name the file as the download path writes it, not
	// the raw decoded name.
	got := Playlist(album)
	assert.Equal(t, "#EXTM3U\n01. Song_ Part 1.mp3\n", got)
}

func TestPlaylist_EmptyAlbum(t *testing.T) {
	album := &model.Album{Title: "Empty", Slug: "empty"}
	assert.Equal(t, "#EXTM3U\n", Playlist(album))
}
