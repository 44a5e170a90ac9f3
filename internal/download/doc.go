// Package download provides the download orchestration logic for
// fetching albums and tracks from khinsider.
//
// # Engine
//
// The Engine drives the whole pipeline:
//
//  1. Classify input URLs into album and track references
//  2. Expand albums into their track lists
//  3. Resolve and download every track over a bounded worker pool
//  4. Tag MP3 files with ID3 metadata (optional)
//  5. Write an M3U playlist per album (optional)
//
// # Basic Usage
//
//	eng := download.NewEngine(res, client, download.Options{
//	    Root:        "downloads",
//	    Concurrency: 6,
//	    OnProgress: func(event download.ProgressEvent) {
//	        fmt.Println(event.Message)
//	    },
//	})
//
//	outcomes, err := eng.DownloadURLs(ctx, urls)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(download.Summarize(outcomes))
//
// # Failure Isolation
//
// Each track task succeeds or fails on its own; a failed track fills
// Outcome.Err and never cancels its siblings. An album whose page
// cannot be resolved yields one album-level Outcome instead of track
// outcomes.
//
// # Progress Tracking
//
// Progress is reported two ways: a callback receiving ProgressEvent
// values, and the Progress method returning atomic byte/task counters,
// suited to polling from a UI.
package download
