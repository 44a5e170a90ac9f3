package parse

import (
	"errors"
	"testing"

	"github.com/khdl/khinsider-dl/internal/khinsider"
)

const albumHTML = `<html><body>
<div class="albumImage"><a href="https://vgmsite.com/soundtracks/test-album/cover.jpg"><img src="thumb.jpg"></a></div>
<h2>Test Album Original Soundtrack</h2>
<p align="left">
	Album type: <b><a href="/game-soundtracks/browse/soundtracks">Soundtrack</a></b><br>
	Year: <b>1995</b><br>
	Published by: <b><a href="https://downloads.khinsider.com/game-soundtracks/publisher/test-pub">Test Pub</a></b><br>
</p>
<table id="songlist">
<tr><th>&nbsp;</th><th>Song Name</th></tr>
<tr>
	<td class="playlistDownloadSong"><a href="/game-soundtracks/album/test-album/01.%2520Opening.mp3">01. Opening</a></td>
	<td><a href="/game-soundtracks/album/test-album/01.%2520Opening.mp3">1:32</a></td>
</tr>
<tr>
	<td class="playlistDownloadSong"><a href="/game-soundtracks/album/test-album/02.%2520Ending.mp3">02. Ending</a></td>
	<td><a href="/game-soundtracks/album/test-album/02.%2520Ending.mp3">3:07</a></td>
</tr>
</table>
</body></html>`

func TestAlbum(t *testing.T) {
	page, err := Album(albumHTML)
	if err != nil {
		t.Fatalf("Album: %v", err)
	}

	if page.Title != "Test Album Original Soundtrack" {
		t.Errorf("Title = %q", page.Title)
	}
	if page.Year != "1995" {
		t.Errorf("Year = %q, want 1995", page.Year)
	}
	if page.Type != "Soundtrack" {
		t.Errorf("Type = %q, want Soundtrack", page.Type)
	}

	if len(page.ArtURLs) != 1 || page.ArtURLs[0] != "https://vgmsite.com/soundtracks/test-album/cover.jpg" {
		t.Errorf("ArtURLs = %v", page.ArtURLs)
	}

	if page.Publisher == nil {
		t.Fatal("Publisher = nil")
	}
	if page.Publisher.Name != "Test Pub" || page.Publisher.Slug != "test-pub" {
		t.Errorf("Publisher = %+v", page.Publisher)
	}

	want := []khinsider.TrackRef{
		{AlbumSlug: "test-album", TrackName: "01.%2520Opening.mp3"},
		{AlbumSlug: "test-album", TrackName: "02.%2520Ending.mp3"},
	}
	if len(page.TrackRefs) != len(want) {
		t.Fatalf("got %d track refs, want %d", len(page.TrackRefs), len(want))
	}
	for i, ref := range want {
		if page.TrackRefs[i] != ref {
			t.Errorf("TrackRefs[%d] = %#v, want %#v", i, page.TrackRefs[i], ref)
		}
	}
}

func TestAlbum_MissingTitle(t *testing.T) {
	_, err := Album(`<html><body><p>No heading here</p></body></html>`)
	if !errors.Is(err, khinsider.ErrParse) {
		t.Errorf("error = %v, want ErrParse", err)
	}
}

func TestAlbum_ToleratesMissingOptionalFields(t *testing.T) {
	page, err := Album(`<html><body><h2>Bare Album</h2></body></html>`)
	if err != nil {
		t.Fatalf("Album: %v", err)
	}
	if page.Year != "" || page.Type != "" || page.Publisher != nil {
		t.Errorf("optional fields should be zero: %+v", page)
	}
	if len(page.ArtURLs) != 0 || len(page.TrackRefs) != 0 {
		t.Errorf("slices should be empty: %+v", page)
	}
}

func TestTrack(t *testing.T) {
	html := `<html><body><audio id="audio" controls src="https://vgmsite.com/soundtracks/test-album/01.mp3"></audio></body></html>`

	audioURL, err := Track(html)
	if err != nil {
		t.Fatalf("Track: %v", err)
	}
	if audioURL != "https://vgmsite.com/soundtracks/test-album/01.mp3" {
		t.Errorf("audioURL = %q", audioURL)
	}
}

func TestTrack_MissingAudio(t *testing.T) {
	_, err := Track(`<html><body><h2>No player</h2></body></html>`)
	if !errors.Is(err, khinsider.ErrParse) {
		t.Errorf("error = %v, want ErrParse", err)
	}
}

func TestSearch(t *testing.T) {
	html := `<html><body>
<table class="albumList">
<tr><th>&nbsp;</th><th>Album Name</th><th>Platform</th><th>Type</th><th>Year</th></tr>
<tr>
	<td><img src="thumb.jpg"></td>
	<td><a href="/game-soundtracks/album/test-album">Test Album</a></td>
	<td>SNES</td>
	<td>Soundtrack</td>
	<td>1995</td>
</tr>
<tr>
	<td><img src="thumb2.jpg"></td>
	<td><a href="/game-soundtracks/album/other-album">Other Album</a></td>
	<td>PSX</td>
	<td>Gamerip</td>
	<td>1998</td>
</tr>
</table>
</body></html>`

	results := Search(html)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	first := results[0]
	if first.Title != "Test Album" || first.Slug != "test-album" || first.Type != "Soundtrack" || first.Year != "1995" {
		t.Errorf("results[0] = %+v", first)
	}
	if results[1].Slug != "other-album" {
		t.Errorf("results[1] = %+v", results[1])
	}
}

func TestSearch_NoResults(t *testing.T) {
	if got := Search(`<html><body>No matches found</body></html>`); len(got) != 0 {
		t.Errorf("Search = %v, want empty", got)
	}
}
