// Package model defines the resolved entities of the downloader.
//
// # Album
//
// Album is a fully resolved album page: metadata plus the references of
// every track on it. Albums are created once per distinct slug by the
// resolver and are immutable afterwards:
//
//	album, err := res.ResolveAlbum(ctx, khinsider.AlbumRef{Slug: "chrono-trigger"})
//	fmt.Println(album.Title, album.TrackCount())
//
// # Track
//
// Track is a fully resolved track page: the audio file URL, the decoded
// human filename, and a shared pointer to the owning Album:
//
//	track, err := res.ResolveTrack(ctx, ref)
//	fmt.Println(track.Filename, track.AudioURL)
//
// # AlbumSummary
//
// AlbumSummary is the short album form found in search result rows,
// holding just enough to display and to re-derive an AlbumRef.
package model
