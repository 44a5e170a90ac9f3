package download

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/khdl/khinsider-dl/internal/audio"
	"github.com/khdl/khinsider-dl/internal/ioutils"
	"github.com/khdl/khinsider-dl/internal/khinsider"
	"github.com/khdl/khinsider-dl/internal/model"
)

const defaultConcurrency = 6

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a download progress update. Bytes is
// non-zero only for events that completed a file transfer.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
	Bytes   int64
}

// Downloader fetches a file into memory. Satisfied by *fetch.Client.
type Downloader interface {
	Download(ctx context.Context, fileURL string) ([]byte, error)
}

// Resolver resolves references into domain objects. Satisfied by
// *resolver.Resolver.
type Resolver interface {
	ResolveAlbum(ctx context.Context, ref khinsider.AlbumRef) (*model.Album, error)
	ResolveTrack(ctx context.Context, ref khinsider.TrackRef) (*model.Track, error)
}

// Outcome is the result of one download task. A track task records its
// final path and size on success, or the failure in Err. An album whose
// expansion failed records a single Outcome carrying its AlbumRef.
type Outcome struct {
	Ref   khinsider.Ref
	Path  string
	Bytes int64
	Err   error
}

// Engine coordinates album expansion and track downloads over a
// bounded worker pool. One failed task never aborts its siblings.
type Engine struct {
	resolver Resolver
	client   Downloader
	tagger   *audio.Tagger
	playlist bool
	root     string
	limit    int64

	onProgress func(ProgressEvent)
	log        *zap.SugaredLogger

	receivedBytes int64
	totalTasks    int32
	doneTasks     int32
}

// Options configures an Engine. Zero values fall back to defaults.
type Options struct {
	// Root is the directory album folders are created under.
	Root string

	// Concurrency bounds simultaneously running tasks, expansions and
	// downloads combined.
	Concurrency int

	// Tagger, when non-nil, stamps ID3 tags onto downloaded MP3s.
	Tagger *audio.Tagger

	// WritePlaylists writes an M3U playlist per expanded album.
	WritePlaylists bool

	// OnProgress receives progress events. May be called from multiple
	// goroutines. Nil disables event delivery.
	OnProgress func(ProgressEvent)

	// Logger for structured logging; nil disables it.
	Logger *zap.Logger
}

// NewEngine creates an Engine over the given resolver and downloader.
func NewEngine(resolver Resolver, client Downloader, opts Options) *Engine {
	if opts.Root == "" {
		opts.Root = "downloads"
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Engine{
		resolver:   resolver,
		client:     client,
		tagger:     opts.Tagger,
		playlist:   opts.WritePlaylists,
		root:       opts.Root,
		limit:      int64(opts.Concurrency),
		onProgress: opts.OnProgress,
		log:        opts.Logger.Sugar(),
	}
}

// DownloadURLs classifies rawURLs and downloads them. Any
// unclassifiable URL fails the whole call before a single task is
// scheduled.
func (e *Engine) DownloadURLs(ctx context.Context, rawURLs []string) ([]Outcome, error) {
	refs, err := khinsider.ClassifyAll(rawURLs)
	if err != nil {
		return nil, err
	}
	return e.DownloadMany(ctx, refs), nil
}

// DownloadMany downloads every reference. Albums are expanded into
// their tracks as soon as their page resolves, and expansion shares the
// worker pool with track downloads. Outcomes arrive in completion
// order, one per track plus one per album that failed to expand.
func (e *Engine) DownloadMany(ctx context.Context, refs []khinsider.Ref) []Outcome {
	atomic.StoreInt64(&e.receivedBytes, 0)
	atomic.StoreInt32(&e.totalTasks, 0)
	atomic.StoreInt32(&e.doneTasks, 0)

	var (
		mu       sync.Mutex
		outcomes []Outcome
	)
	record := func(o Outcome) {
		mu.Lock()
		outcomes = append(outcomes, o)
		mu.Unlock()
	}

	// The group is an unbounded join barrier; the semaphore bounds
	// in-flight work. Expansion tasks spawn into the same group, so a
	// group limit would let blocked expansions starve the pool.
	g := new(errgroup.Group)
	sem := semaphore.NewWeighted(e.limit)

	for _, ref := range refs {
		switch r := ref.(type) {
		case khinsider.TrackRef:
			atomic.AddInt32(&e.totalTasks, 1)
			e.goTrack(ctx, g, sem, r, record)
		case khinsider.AlbumRef:
			g.Go(func() error {
				e.expandAlbum(ctx, g, sem, r, record)
				return nil
			})
		default:
			record(Outcome{Ref: ref, Err: fmt.Errorf("%w: unsupported reference %v", khinsider.ErrInvalidURL, ref)})
		}
	}

	g.Wait()
	return outcomes
}

// Progress returns the byte and task counters of the current run.
func (e *Engine) Progress() (receivedBytes int64, doneTasks, totalTasks int32) {
	return atomic.LoadInt64(&e.receivedBytes),
		atomic.LoadInt32(&e.doneTasks),
		atomic.LoadInt32(&e.totalTasks)
}

// expandAlbum resolves an album and enqueues one task per track. A
// failed expansion is recorded as a single album-level outcome.
func (e *Engine) expandAlbum(ctx context.Context, g *errgroup.Group, sem *semaphore.Weighted, ref khinsider.AlbumRef, record func(Outcome)) {
	if err := sem.Acquire(ctx, 1); err != nil {
		record(Outcome{Ref: ref, Err: err})
		return
	}
	e.progress(ProgressEvent{Message: fmt.Sprintf("Resolving album: %s", ref.Slug), Level: LevelVerbose})
	album, err := e.resolver.ResolveAlbum(ctx, ref)
	sem.Release(1)
	if err != nil {
		e.progress(ProgressEvent{Message: fmt.Sprintf("Error resolving album %s: %v", ref.Slug, err), Level: LevelError})
		e.log.Errorw("album expansion failed", "slug", ref.Slug, "err", err)
		record(Outcome{Ref: ref, Err: err})
		return
	}

	e.progress(ProgressEvent{Message: fmt.Sprintf("Found album: %s", album), Level: LevelInfo})
	atomic.AddInt32(&e.totalTasks, int32(album.TrackCount()))

	for _, tr := range album.TrackRefs {
		e.goTrack(ctx, g, sem, tr, record)
	}

	if e.playlist {
		if err := e.writePlaylist(album); err != nil {
			e.progress(ProgressEvent{Message: fmt.Sprintf("Error writing playlist for %s: %v", album.Title, err), Level: LevelWarning})
			e.log.Warnw("playlist write failed", "slug", album.Slug, "err", err)
		}
	}
}

func (e *Engine) goTrack(ctx context.Context, g *errgroup.Group, sem *semaphore.Weighted, ref khinsider.TrackRef, record func(Outcome)) {
	g.Go(func() error {
		o := e.downloadTrack(ctx, sem, ref)
		record(o)
		atomic.AddInt32(&e.doneTasks, 1)
		return nil
	})
}

// downloadTrack runs one track task end to end: resolve, transfer,
// write, tag. Every failure is isolated into the returned Outcome.
func (e *Engine) downloadTrack(ctx context.Context, sem *semaphore.Weighted, ref khinsider.TrackRef) Outcome {
	if err := sem.Acquire(ctx, 1); err != nil {
		return Outcome{Ref: ref, Err: err}
	}
	defer sem.Release(1)

	track, err := e.resolver.ResolveTrack(ctx, ref)
	if err != nil {
		e.progress(ProgressEvent{Message: fmt.Sprintf("Error resolving %s: %v", ref, err), Level: LevelError})
		e.log.Errorw("track resolution failed", "ref", ref.Key(), "err", err)
		return Outcome{Ref: ref, Err: err}
	}

	e.progress(ProgressEvent{Message: fmt.Sprintf("Downloading: %s", track.Filename), Level: LevelVerbose})
	data, err := e.client.Download(ctx, track.AudioURL)
	if err != nil {
		e.progress(ProgressEvent{Message: fmt.Sprintf("Error downloading %s: %v", track.Filename, err), Level: LevelError})
		e.log.Errorw("track download failed", "ref", ref.Key(), "url", track.AudioURL, "err", err)
		return Outcome{Ref: ref, Err: err}
	}

	dir := filepath.Join(e.root, track.Album.Slug)
	if err := ioutils.EnsureDir(dir); err != nil {
		return Outcome{Ref: ref, Err: err}
	}
	name := ioutils.SanitizeFileName(track.Filename)
	if err := ioutils.WriteFileAtomic(dir, name, data); err != nil {
		return Outcome{Ref: ref, Err: err}
	}
	path := filepath.Join(dir, name)

	track.ByteSize = int64(len(data))
	atomic.AddInt64(&e.receivedBytes, track.ByteSize)

	if e.tagger != nil {
		// Tagging failure leaves a perfectly good audio file behind,
		// so it downgrades to a warning.
		if err := e.tagger.Tag(path, track); err != nil {
			e.progress(ProgressEvent{Message: fmt.Sprintf("Error tagging %s: %v", name, err), Level: LevelWarning})
			e.log.Warnw("tagging failed", "path", path, "err", err)
		}
	}

	e.progress(ProgressEvent{
		Message: fmt.Sprintf("Downloaded: %s", name),
		Level:   LevelSuccess,
		Bytes:   track.ByteSize,
	})
	return Outcome{Ref: ref, Path: path, Bytes: track.ByteSize}
}

func (e *Engine) writePlaylist(album *model.Album) error {
	dir := filepath.Join(e.root, album.Slug)
	if err := ioutils.EnsureDir(dir); err != nil {
		return err
	}
	return ioutils.WriteFileAtomic(dir, audio.PlaylistName, []byte(audio.Playlist(album)))
}

func (e *Engine) progress(event ProgressEvent) {
	if e.onProgress != nil {
		e.onProgress(event)
	}
}
