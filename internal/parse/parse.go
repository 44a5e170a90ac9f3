package parse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/khdl/khinsider-dl/internal/khinsider"
	"github.com/khdl/khinsider-dl/internal/model"
)

var (
	// yearRegex runs over the raw HTML; the year sits in text khinsider
	// renders outside any addressable element.
	yearRegex = regexp.MustCompile(`Year: <b[^>]*>(\d{4})</b>`)

	publisherRegex = regexp.MustCompile(`Published by:.*?<a href="[^"]*/([^/"]+)">([^<]+)</a>`)
)

// AlbumPage holds the fields extracted from an album page. The slug is
// not on the page itself; the resolver knows it from the reference.
type AlbumPage struct {
	Title     string
	Year      string
	Type      string
	ArtURLs   []string
	Publisher *model.Publisher
	TrackRefs []khinsider.TrackRef
}

// Album parses an album page. A missing title fails with
// khinsider.ErrParse; every other field degrades to its zero value.
func Album(html string) (*AlbumPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", khinsider.ErrParse, err)
	}

	title := strings.TrimSpace(doc.Find("h2").First().Text())
	if title == "" {
		return nil, fmt.Errorf("%w: album title", khinsider.ErrParse)
	}

	page := &AlbumPage{
		Title:     title,
		Type:      strings.TrimSpace(doc.Find(`p[align="left"] b a`).First().Text()),
		Publisher: publisher(html),
	}

	if m := yearRegex.FindStringSubmatch(html); m != nil {
		page.Year = m[1]
	}

	doc.Find(".albumImage a").Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok {
			page.ArtURLs = append(page.ArtURLs, href)
		}
	})

	// One anchor per songlist row; header rows carry no td link.
	doc.Find("#songlist tr").Each(func(_ int, row *goquery.Selection) {
		href, ok := row.Find("td a").First().Attr("href")
		if !ok {
			return
		}
		ref, err := khinsider.Classify(khinsider.BaseURL + href)
		if err != nil {
			return
		}
		if tr, ok := ref.(khinsider.TrackRef); ok {
			page.TrackRefs = append(page.TrackRefs, tr)
		}
	})

	return page, nil
}

// Track parses a track page and returns the audio file URL.
func Track(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("%w: %v", khinsider.ErrParse, err)
	}

	src, ok := doc.Find("audio").First().Attr("src")
	if !ok || src == "" {
		return "", fmt.Errorf("%w: track audio source", khinsider.ErrParse)
	}
	return src, nil
}

// Search parses a search result page into album summaries. Rows that do
// not look like album results are skipped; an unrecognized page yields
// an empty slice.
func Search(html string) []model.AlbumSummary {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var results []model.AlbumSummary
	doc.Find("table.albumList tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return // header row
		}
		cols := row.Find("td")
		if cols.Length() < 5 {
			return
		}

		anchor := cols.Eq(1).Find("a").First()
		href, ok := anchor.Attr("href")
		if !ok {
			return
		}
		ref, err := khinsider.Classify(khinsider.BaseURL + href)
		if err != nil {
			return
		}
		albumRef, ok := ref.(khinsider.AlbumRef)
		if !ok {
			return
		}

		results = append(results, model.AlbumSummary{
			Title: strings.TrimSpace(anchor.Text()),
			Slug:  albumRef.Slug,
			Type:  strings.TrimSpace(cols.Eq(3).Text()),
			Year:  strings.TrimSpace(cols.Eq(4).Text()),
		})
	})
	return results
}

func publisher(html string) *model.Publisher {
	m := publisherRegex.FindStringSubmatch(html)
	if m == nil {
		return nil
	}
	return &model.Publisher{Name: m[2], Slug: m[1]}
}
