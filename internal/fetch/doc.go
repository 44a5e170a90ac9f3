// Package fetch is the single place outbound HTTP requests happen.
//
// Every request runs under one bounded retry policy: transient
// network-layer failures (timeouts, resets, 5xx) are retried up to the
// attempt ceiling with backoff, while definitive outcomes (a 404, the
// site's "missing object" page, any 4xx) fail immediately. After the
// ceiling the last transient error is surfaced unchanged.
//
// # Basic Usage
//
//	client := fetch.NewClient(logger)
//
//	// Fetch an HTML page; a missing object reports khinsider.ErrNotFound.
//	html, err := client.FetchPage(ctx, pageURL)
//
//	// Download an audio file into memory.
//	data, err := client.Download(ctx, audioURL)
//
// Every failure, transient or terminal, is logged with the operation
// name and target URL so it can be diagnosed without re-running.
package fetch
