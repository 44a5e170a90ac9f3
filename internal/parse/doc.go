// Package parse extracts structured fields from khinsider HTML pages.
//
// The package handles three page kinds:
//
//  1. Album pages: title, year, type, album art, publisher, track refs
//  2. Track pages: the audio file URL
//  3. Search result pages: album summaries
//
// # Album Page Parsing
//
//	page, err := parse.Album(htmlContent)
//	if err != nil {
//	    // khinsider.ErrParse: the title is missing
//	}
//	fmt.Printf("%s (%d tracks)\n", page.Title, len(page.TrackRefs))
//
// A missing title is fatal; year, type, art and publisher degrade to
// their zero values when absent.
//
// # Track Page Parsing
//
//	audioURL, err := parse.Track(htmlContent)
//
// The audio URL is required; its absence is khinsider.ErrParse.
package parse
