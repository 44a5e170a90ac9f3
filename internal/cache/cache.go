package cache

import (
	"crypto/md5"
	"encoding/hex"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultLifespan is how long entries stay eligible for reads.
	DefaultLifespan = 48 * time.Hour

	// DefaultSweepInterval is how often the sweeper scans the table.
	DefaultSweepInterval = 6 * time.Hour
)

type entry struct {
	value      any
	insertedAt time.Time
}

// Cache is an expiring key→value table safe for concurrent use. Values
// are stored under a content hash of the caller's key string; the hash
// is the handle subsequent reads use.
type Cache struct {
	mu    sync.Mutex
	table map[string]entry

	lifespan time.Duration
	interval time.Duration
	log      *zap.SugaredLogger

	sweepMu sync.Mutex
	stop    chan struct{}
	done    chan struct{}
}

// New creates a cache. Non-positive durations fall back to the package
// defaults; a nil logger disables sweep logging.
func New(lifespan, interval time.Duration, logger *zap.Logger) *Cache {
	if lifespan <= 0 {
		lifespan = DefaultLifespan
	}
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		table:    make(map[string]entry),
		lifespan: lifespan,
		interval: interval,
		log:      logger.Sugar(),
	}
}

// Hash returns the handle a key is stored under. MD5 is used purely for
// stable deduplication, not as a security property.
func Hash(key string) string {
	sum := md5.Sum([]byte(key))
	return hex.EncodeToString(sum[:])
}

// Put stores value under the key's handle and returns the handle.
// Storing again under the same key replaces the entry and resets its age.
func (c *Cache) Put(key string, value any) string {
	handle := Hash(key)
	c.mu.Lock()
	c.table[handle] = entry{value: value, insertedAt: time.Now()}
	c.mu.Unlock()
	return handle
}

// Get returns the value stored under handle. Age is not checked here;
// eviction belongs to the sweeper alone.
func (c *Cache) Get(handle string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.table[handle]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.table)
}

// StartSweeper launches the background eviction goroutine. Calling it
// on a cache whose sweeper is already running is a no-op, so a cache
// instance never has two sweepers competing over its table.
func (c *Cache) StartSweeper() {
	c.sweepMu.Lock()
	defer c.sweepMu.Unlock()
	if c.stop != nil {
		return
	}
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	go c.run(c.stop, c.done)
}

// StopSweeper cancels the pending tick and waits for the sweep goroutine
// to exit. Idempotent, and safe when the sweeper never started.
func (c *Cache) StopSweeper() {
	c.sweepMu.Lock()
	defer c.sweepMu.Unlock()
	if c.stop == nil {
		return
	}
	close(c.stop)
	<-c.done
	c.stop, c.done = nil, nil
}

func (c *Cache) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.sweepSafely()
		}
	}
}

// sweepSafely keeps a failed sweep from killing the process; the next
// tick still happens.
func (c *Cache) sweepSafely() {
	defer func() {
		if r := recover(); r != nil {
			c.log.Errorw("cache sweep failed", "panic", r)
		}
	}()
	if evicted := c.sweep(); evicted > 0 {
		c.log.Debugw("cache sweep", "evicted", evicted, "remaining", c.Len())
	}
}

// sweep removes every entry older than the lifespan and reports how many
// it evicted.
func (c *Cache) sweep() int {
	cutoff := time.Now().Add(-c.lifespan)
	c.mu.Lock()
	defer c.mu.Unlock()
	evicted := 0
	for handle, e := range c.table {
		if e.insertedAt.Before(cutoff) {
			delete(c.table, handle)
			evicted++
		}
	}
	return evicted
}

var (
	sharedOnce sync.Once
	shared     *Cache
)

// Shared returns the process-wide cache, created on first use with the
// package defaults. Callers own starting and stopping its sweeper.
func Shared() *Cache {
	sharedOnce.Do(func() {
		shared = New(DefaultLifespan, DefaultSweepInterval, nil)
	})
	return shared
}
