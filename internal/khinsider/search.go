package khinsider

import (
	"fmt"
	"net/url"
	"strings"
)

// AlbumType filters search results by album category. Values mirror the
// numeric codes the site's search form submits.
type AlbumType int

const (
	// TypeAny disables type filtering. Some queries return truncated
	// results without a type filter; use a concrete type in that case.
	TypeAny AlbumType = iota
	TypeSoundtrack
	TypeGamerip
	TypeSingle
	TypeRemix
	TypeArrangement
	TypeCompilation
	TypeInspiredBy
)

// ParseAlbumType maps a human name ("soundtrack", "gamerip", ...) to an
// AlbumType. The empty string means no filtering.
func ParseAlbumType(s string) (AlbumType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return TypeAny, nil
	case "soundtrack":
		return TypeSoundtrack, nil
	case "gamerip":
		return TypeGamerip, nil
	case "single":
		return TypeSingle, nil
	case "remix":
		return TypeRemix, nil
	case "arrangement":
		return TypeArrangement, nil
	case "compilation":
		return TypeCompilation, nil
	case "inspired-by", "inspired":
		return TypeInspiredBy, nil
	default:
		return TypeAny, fmt.Errorf("unknown album type %q", s)
	}
}

// QueryBuilder assembles the query string for the site's /search page.
// Zero value is usable; methods return the receiver for chaining.
type QueryBuilder struct {
	search    string
	year      string
	albumType AlbumType
}

func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{}
}

// Search sets the free-text query. Reserved characters are escaped and
// words joined with '+', matching what the site's own form submits.
func (b *QueryBuilder) Search(query string) *QueryBuilder {
	words := strings.Fields(query)
	for i, w := range words {
		words[i] = url.QueryEscape(w)
	}
	b.search = strings.Join(words, "+")
	return b
}

// Year restricts results to albums released in the given year.
func (b *QueryBuilder) Year(year string) *QueryBuilder {
	b.year = year
	return b
}

// Type restricts results to one album category.
func (b *QueryBuilder) Type(t AlbumType) *QueryBuilder {
	b.albumType = t
	return b
}

// Build renders the query string without the leading '?'.
func (b *QueryBuilder) Build() string {
	return fmt.Sprintf("search=%s&album_year=%s&album_type=%d", b.search, b.year, b.albumType)
}

// URL renders the full search page URL.
func (b *QueryBuilder) URL() string {
	return BaseURL + "/search?" + b.Build()
}
