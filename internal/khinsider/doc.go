// Package khinsider defines the site model for downloads.khinsider.com:
// URL classification into album and track references, track filename
// decoding, the search query builder, and the error taxonomy shared by
// the fetch/parse/resolve layers.
//
// # References
//
// A reference is a lightweight identifier extracted from a page URL,
// prior to any network fetch:
//
//	ref, err := khinsider.Classify("https://downloads.khinsider.com/game-soundtracks/album/chrono-trigger")
//	switch r := ref.(type) {
//	case khinsider.AlbumRef:
//	    fmt.Println(r.Slug)
//	case khinsider.TrackRef:
//	    fmt.Println(r.AlbumSlug, r.TrackName)
//	}
//
// The presence of a track path segment is the sole discriminator between
// album and track URLs. Track name segments keep their percent-encoding;
// DecodeTrackName produces the human filename.
//
// # Search
//
// QueryBuilder assembles the query string for the site's /search page:
//
//	url := khinsider.NewQueryBuilder().Search("chrono trigger").Type(khinsider.TypeSoundtrack).URL()
package khinsider
