package khinsider

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
)

const (
	// BaseURL is the scheme and host every object URL starts with.
	BaseURL = "https://downloads.khinsider.com"

	// AlbumBaseURL is the common prefix of album and track pages.
	AlbumBaseURL = BaseURL + "/game-soundtracks/album"

	// PublisherBaseURL is the common prefix of publisher listing pages.
	PublisherBaseURL = BaseURL + "/game-soundtracks/publisher"
)

var (
	// ErrInvalidURL reports an input that does not match the expected
	// album/track URL shape. Never retried.
	ErrInvalidURL = errors.New("invalid khinsider url")

	// ErrNotFound reports a confirmed-absent remote object, as opposed
	// to a transient network failure. Never retried.
	ErrNotFound = errors.New("object does not exist")

	// ErrParse reports fetched content missing a required field.
	// Retrying will not fix unexpected markup, so never retried.
	ErrParse = errors.New("page is missing required data")
)

// urlRegex accepts album and track page URLs. The track segment keeps
// its percent-encoding here; decoding is DecodeTrackName's job.
var urlRegex = regexp.MustCompile(
	`^https://downloads\.khinsider\.com/game-soundtracks/album/([\w.-]+)/?([\w%.\-()\[\]',!&+]+)?$`,
)

// Ref identifies an album or a track before any network fetch.
type Ref interface {
	// Key is the reference's natural identity, used as its cache key.
	Key() string

	// URL reconstructs the page URL the reference was classified from.
	URL() string
}

// AlbumRef identifies an album by its URL slug.
type AlbumRef struct {
	Slug string
}

func (r AlbumRef) Key() string { return r.Slug }

func (r AlbumRef) URL() string { return AlbumBaseURL + "/" + r.Slug }

func (r AlbumRef) String() string { return "album " + r.Slug }

// TrackRef identifies a track within an album. TrackName is the raw,
// possibly double percent-encoded filename segment from the page URL.
type TrackRef struct {
	AlbumSlug string
	TrackName string
}

func (r TrackRef) Key() string { return r.AlbumSlug + "/" + r.TrackName }

func (r TrackRef) URL() string { return AlbumBaseURL + "/" + r.AlbumSlug + "/" + r.TrackName }

func (r TrackRef) String() string { return r.AlbumSlug + " - " + DecodeTrackName(r.TrackName) }

// AlbumRef returns the reference of the album this track belongs to.
func (r TrackRef) AlbumRef() AlbumRef { return AlbumRef{Slug: r.AlbumSlug} }

// Classify parses a raw URL into an AlbumRef or a TrackRef. A URL with a
// track path segment classifies as a track, one without as an album;
// anything else fails with ErrInvalidURL.
func Classify(rawURL string) (Ref, error) {
	m := urlRegex.FindStringSubmatch(rawURL)
	if m == nil || m[1] == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	if m[2] == "" {
		return AlbumRef{Slug: m[1]}, nil
	}
	return TrackRef{AlbumSlug: m[1], TrackName: m[2]}, nil
}

// ClassifyAll classifies every URL in order, failing on the first
// invalid one.
func ClassifyAll(rawURLs []string) ([]Ref, error) {
	refs := make([]Ref, 0, len(rawURLs))
	for _, raw := range rawURLs {
		ref, err := Classify(raw)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// DecodeTrackName turns a track URL segment into its human filename.
// Page hrefs are percent-encoded twice, so exactly two unescape passes.
// A segment that stops unescaping cleanly is returned as decoded so far.
func DecodeTrackName(name string) string {
	decoded := name
	for i := 0; i < 2; i++ {
		next, err := url.PathUnescape(decoded)
		if err != nil {
			return decoded
		}
		decoded = next
	}
	return decoded
}
