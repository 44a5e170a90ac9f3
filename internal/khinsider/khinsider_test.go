package khinsider

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantRef   Ref
		wantErr   bool
	}{
		{
			name:    "album url",
			url:     "https://downloads.khinsider.com/game-soundtracks/album/chrono-trigger",
			wantRef: AlbumRef{Slug: "chrono-trigger"},
		},
		{
			name:    "album url with trailing slash",
			url:     "https://downloads.khinsider.com/game-soundtracks/album/chrono-trigger/",
			wantRef: AlbumRef{Slug: "chrono-trigger"},
		},
		{
			name: "track url",
			url:  "https://downloads.khinsider.com/game-soundtracks/album/chrono-trigger/01.%2520Memories%2520of%2520Green.mp3",
			wantRef: TrackRef{
				AlbumSlug: "chrono-trigger",
				TrackName: "01.%2520Memories%2520of%2520Green.mp3",
			},
		},
		{
			name:    "slug with dots",
			url:     "https://downloads.khinsider.com/game-soundtracks/album/f.e.a.r-ost",
			wantRef: AlbumRef{Slug: "f.e.a.r-ost"},
		},
		{
			name:    "missing slug",
			url:     "https://downloads.khinsider.com/game-soundtracks/album/",
			wantErr: true,
		},
		{
			name:    "wrong host",
			url:     "https://example.com/game-soundtracks/album/chrono-trigger",
			wantErr: true,
		},
		{
			name:    "wrong path",
			url:     "https://downloads.khinsider.com/search?search=chrono",
			wantErr: true,
		},
		{
			name:    "empty string",
			url:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := Classify(tt.url)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", ref)
				}
				if !errors.Is(err, ErrInvalidURL) {
					t.Errorf("error = %v, want ErrInvalidURL", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ref != tt.wantRef {
				t.Errorf("ref = %#v, want %#v", ref, tt.wantRef)
			}
		})
	}
}

func TestClassify_RoundTrip(t *testing.T) {
	urls := []string{
		"https://downloads.khinsider.com/game-soundtracks/album/chrono-trigger",
		"https://downloads.khinsider.com/game-soundtracks/album/chrono-trigger/01.%2520Intro.mp3",
		"https://downloads.khinsider.com/game-soundtracks/album/some.album-2",
	}

	for _, u := range urls {
		ref, err := Classify(u)
		if err != nil {
			t.Fatalf("Classify(%q): %v", u, err)
		}

		again, err := Classify(ref.URL())
		if err != nil {
			t.Fatalf("Classify(%q) round-trip: %v", ref.URL(), err)
		}
		if again != ref {
			t.Errorf("round-trip ref = %#v, want %#v", again, ref)
		}
	}
}

func TestClassifyAll(t *testing.T) {
	refs, err := ClassifyAll([]string{
		"https://downloads.khinsider.com/game-soundtracks/album/a",
		"https://downloads.khinsider.com/game-soundtracks/album/a/01.mp3",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("got %d refs, want 2", len(refs))
	}

	if _, err := ClassifyAll([]string{
		"https://downloads.khinsider.com/game-soundtracks/album/a",
		"not-a-url",
	}); !errors.Is(err, ErrInvalidURL) {
		t.Errorf("error = %v, want ErrInvalidURL", err)
	}
}

func TestDecodeTrackName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"01.%2520Memories%2520of%2520Green.mp3", "01. Memories of Green.mp3"},
		{"Track%2520One.mp3", "Track One.mp3"},
		// Single-encoded names survive the second pass unchanged.
		{"Track%20One.mp3", "Track One.mp3"},
		{"plain.mp3", "plain.mp3"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := DecodeTrackName(tt.input); got != tt.want {
				t.Errorf("DecodeTrackName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestQueryBuilder(t *testing.T) {
	got := NewQueryBuilder().Search("chrono trigger").Year("1995").Type(TypeSoundtrack).Build()
	want := "search=chrono+trigger&album_year=1995&album_type=1"
	if got != want {
		t.Errorf("Build() = %q, want %q", got, want)
	}

	url := NewQueryBuilder().Search("mario").URL()
	wantURL := "https://downloads.khinsider.com/search?search=mario&album_year=&album_type=0"
	if url != wantURL {
		t.Errorf("URL() = %q, want %q", url, wantURL)
	}
}

func TestParseAlbumType(t *testing.T) {
	if got, err := ParseAlbumType("gamerip"); err != nil || got != TypeGamerip {
		t.Errorf("ParseAlbumType(gamerip) = %v, %v", got, err)
	}
	if got, err := ParseAlbumType(""); err != nil || got != TypeAny {
		t.Errorf("ParseAlbumType(\"\") = %v, %v", got, err)
	}
	if _, err := ParseAlbumType("bogus"); err == nil {
		t.Error("expected error for unknown type")
	}
}
