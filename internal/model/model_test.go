package model

import (
	"testing"

	"github.com/khdl/khinsider-dl/internal/khinsider"
)

func TestAlbum_TrackCount(t *testing.T) {
	album := &Album{
		Title: "Test Album",
		Slug:  "test-album",
		TrackRefs: []khinsider.TrackRef{
			{AlbumSlug: "test-album", TrackName: "01.mp3"},
			{AlbumSlug: "test-album", TrackName: "02.mp3"},
		},
	}

	if got := album.TrackCount(); got != 2 {
		t.Errorf("TrackCount() = %d, want 2", got)
	}
}

func TestAlbum_URL(t *testing.T) {
	album := &Album{Slug: "chrono-trigger"}
	want := "https://downloads.khinsider.com/game-soundtracks/album/chrono-trigger"
	if got := album.URL(); got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
}

func TestAlbumSummary_Ref(t *testing.T) {
	s := AlbumSummary{Title: "Chrono Trigger", Slug: "chrono-trigger"}
	if got := s.Ref(); got != (khinsider.AlbumRef{Slug: "chrono-trigger"}) {
		t.Errorf("Ref() = %#v", got)
	}
}

func TestTrack_String(t *testing.T) {
	track := &Track{
		Album:    &Album{Slug: "chrono-trigger"},
		Filename: "01. Memories of Green.mp3",
	}
	want := "chrono-trigger - 01. Memories of Green.mp3"
	if got := track.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
