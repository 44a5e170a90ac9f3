package model

import (
	"fmt"

	"github.com/khdl/khinsider-dl/internal/khinsider"
)

// Publisher is the label an album was published by.
type Publisher struct {
	Name string
	Slug string
}

func (p Publisher) String() string {
	return fmt.Sprintf("publisher %q", p.Name)
}

// Album is a fully resolved album page. Immutable after resolution;
// tracks of the same album share one *Album.
type Album struct {
	Title string
	Slug  string

	// Year and Type are empty when the page omits them.
	Year string
	Type string

	// ArtURLs lists album art images in page order.
	ArtURLs []string

	// Publisher is nil when the page names no publisher.
	Publisher *Publisher

	// TrackRefs lists the album's tracks in page order.
	TrackRefs []khinsider.TrackRef
}

// TrackCount is derived from TrackRefs, never stored separately.
func (a *Album) TrackCount() int {
	return len(a.TrackRefs)
}

// URL returns the album's page URL.
func (a *Album) URL() string {
	return khinsider.AlbumRef{Slug: a.Slug}.URL()
}

func (a *Album) String() string {
	return fmt.Sprintf("%s (%d tracks)", a.Title, a.TrackCount())
}

// AlbumSummary is one row of a search result page.
type AlbumSummary struct {
	Title string
	Slug  string
	Type  string
	Year  string
}

// Ref re-derives the album reference the summary points at.
func (s AlbumSummary) Ref() khinsider.AlbumRef {
	return khinsider.AlbumRef{Slug: s.Slug}
}
