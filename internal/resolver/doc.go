// Package resolver turns references into fully populated domain
// objects, fetching and parsing the pages behind them.
//
// Results are memoized in the expiring object cache, and concurrent
// requests for the same reference are collapsed into a single fetch,
// so an album shared by many queued tracks is resolved once.
//
//	res := resolver.New(client, cache.Shared(), logger)
//	album, err := res.ResolveAlbum(ctx, khinsider.AlbumRef{Slug: "mother-3"})
//
// Only successful resolutions are cached; a failed fetch is retried on
// the next request for the same reference.
package resolver
