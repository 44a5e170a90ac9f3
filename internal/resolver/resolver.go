package resolver

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/khdl/khinsider-dl/internal/cache"
	"github.com/khdl/khinsider-dl/internal/khinsider"
	"github.com/khdl/khinsider-dl/internal/model"
	"github.com/khdl/khinsider-dl/internal/parse"
)

// PageFetcher retrieves HTML pages. Satisfied by *fetch.Client.
type PageFetcher interface {
	FetchPage(ctx context.Context, pageURL string) (string, error)
}

// Resolver resolves album and track references and runs searches,
// memoizing successful results.
type Resolver struct {
	fetcher PageFetcher
	cache   *cache.Cache
	log     *zap.SugaredLogger
	group   singleflight.Group
}

// New creates a Resolver backed by the given fetcher and cache.
// A nil logger disables logging.
func New(fetcher PageFetcher, c *cache.Cache, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		fetcher: fetcher,
		cache:   c,
		log:     logger.Sugar(),
	}
}

// ResolveAlbum fetches and parses the album page behind ref. Sibling
// requests for the same album share one fetch, and a resolved album is
// served from the cache until it expires.
func (r *Resolver) ResolveAlbum(ctx context.Context, ref khinsider.AlbumRef) (*model.Album, error) {
	key := "album/" + ref.Key()
	v, err, _ := r.group.Do(key, func() (any, error) {
		if hit, ok := r.cache.Get(cache.Hash(key)); ok {
			r.log.Debugw("cache hit", "key", key)
			return hit, nil
		}

		html, err := r.fetcher.FetchPage(ctx, ref.URL())
		if err != nil {
			return nil, err
		}
		page, err := parse.Album(html)
		if err != nil {
			return nil, err
		}

		album := &model.Album{
			Title:     page.Title,
			Slug:      ref.Slug,
			Year:      page.Year,
			Type:      page.Type,
			ArtURLs:   page.ArtURLs,
			Publisher: page.Publisher,
			TrackRefs: page.TrackRefs,
		}
		r.cache.Put(key, album)
		r.log.Debugw("resolved album", "slug", ref.Slug, "tracks", album.TrackCount())
		return album, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.Album), nil
}

// ResolveTrack resolves ref into a downloadable track. The owning album
// is resolved first so every sibling track shares one *model.Album.
func (r *Resolver) ResolveTrack(ctx context.Context, ref khinsider.TrackRef) (*model.Track, error) {
	album, err := r.ResolveAlbum(ctx, ref.AlbumRef())
	if err != nil {
		return nil, err
	}

	audioURL, err := r.resolveAudioURL(ctx, ref)
	if err != nil {
		return nil, err
	}

	return &model.Track{
		Album:    album,
		Ref:      ref,
		AudioURL: audioURL,
		Filename: khinsider.DecodeTrackName(ref.TrackName),
	}, nil
}

// resolveAudioURL memoizes only the audio location. Tracks themselves
// are rebuilt per call since ByteSize is filled in after download.
func (r *Resolver) resolveAudioURL(ctx context.Context, ref khinsider.TrackRef) (string, error) {
	key := "track/" + ref.Key()
	v, err, _ := r.group.Do(key, func() (any, error) {
		if hit, ok := r.cache.Get(cache.Hash(key)); ok {
			r.log.Debugw("cache hit", "key", key)
			return hit, nil
		}

		html, err := r.fetcher.FetchPage(ctx, ref.URL())
		if err != nil {
			return nil, err
		}
		audioURL, err := parse.Track(html)
		if err != nil {
			return nil, err
		}

		r.cache.Put(key, audioURL)
		return audioURL, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// PublisherAlbums lists every album released under the given publisher
// slug. Publisher pages serve the same result table as /search, so the
// rows come back as AlbumSummary values in page order.
func (r *Resolver) PublisherAlbums(ctx context.Context, slug string) ([]model.AlbumSummary, error) {
	key := "publisher/" + slug
	v, err, _ := r.group.Do(key, func() (any, error) {
		if hit, ok := r.cache.Get(cache.Hash(key)); ok {
			r.log.Debugw("cache hit", "key", key)
			return hit, nil
		}

		html, err := r.fetcher.FetchPage(ctx, khinsider.PublisherBaseURL+"/"+slug)
		if err != nil {
			return nil, err
		}
		results := parse.Search(html)

		r.cache.Put(key, results)
		r.log.Debugw("publisher resolved", "slug", slug, "albums", len(results))
		return results, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.AlbumSummary), nil
}

// Search runs an album search and returns its result rows in page
// order. An empty result list is a valid, cacheable answer.
func (r *Resolver) Search(ctx context.Context, query *khinsider.QueryBuilder) ([]model.AlbumSummary, error) {
	key := "search/" + query.Build()
	v, err, _ := r.group.Do(key, func() (any, error) {
		if hit, ok := r.cache.Get(cache.Hash(key)); ok {
			r.log.Debugw("cache hit", "key", key)
			return hit, nil
		}

		html, err := r.fetcher.FetchPage(ctx, query.URL())
		if err != nil {
			return nil, err
		}
		results := parse.Search(html)

		r.cache.Put(key, results)
		r.log.Debugw("search resolved", "query", query.Build(), "results", len(results))
		return results, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.AlbumSummary), nil
}
