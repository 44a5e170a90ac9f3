// Package cache provides an in-memory expiring key→value store with a
// background eviction sweep.
//
// # Basic Usage
//
//	c := cache.New(48*time.Hour, 6*time.Hour, logger)
//	c.StartSweeper()
//	defer c.StopSweeper()
//
//	handle := c.Put("album/chrono-trigger", album)
//	if v, ok := c.Get(handle); ok {
//	    album := v.(*model.Album)
//	}
//
// # Expiry Semantics
//
// Eviction is exclusively the sweeper's job: reads never filter on age,
// so a read between an entry's expiry and the next sweep tick may still
// return the stale value. Callers accept that staleness window.
//
// # Shared Instance
//
// Shared returns one process-wide cache so that a single sweeper serves
// all callers. The type itself stays independently constructible, which
// is what tests should use.
package cache
