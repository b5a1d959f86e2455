package listview

import (
	"context"
	"sync"
	"time"

	"github.com/Tesseract-Nexus/admin-bff/internal/pkg/logger"
)

// DefaultDebounce is the window within which successive filter changes
// collapse into a single fetch.
const DefaultDebounce = 300 * time.Millisecond

// FetchFunc loads the full (server-filtered) result set for a filter state.
type FetchFunc[T any] func(ctx context.Context, f Filters) ([]T, error)

// Controller owns the list state of one screen: filter values, the fetched
// set, pagination, and the last fetch error. Filter changes are debounced;
// every issued fetch carries a monotonically increasing sequence number and
// responses that are no longer the latest are discarded, so a slow in-flight
// fetch can never overwrite newer results.
//
// All methods are safe for concurrent use.
type Controller[T any] struct {
	mu       sync.Mutex
	filters  Filters
	items    []T
	fetchErr string
	page     int
	perPage  int

	seq      uint64 // latest issued fetch
	applied  uint64 // fetch whose result is currently displayed
	debounce time.Duration
	timer    *time.Timer

	ctx   context.Context
	fetch FetchFunc[T]
	acc   Accessor[T]

	// refreshed is signalled after each fetch settles; tests wait on it.
	refreshed chan struct{}
}

// NewController creates a controller. ctx bounds all background fetches
// (typically the server's lifetime context).
func NewController[T any](ctx context.Context, fetch FetchFunc[T], acc Accessor[T], perPage int) *Controller[T] {
	if perPage <= 0 {
		perPage = 25
	}
	return &Controller[T]{
		filters:   NewFilters(),
		items:     []T{},
		page:      1,
		perPage:   perPage,
		debounce:  DefaultDebounce,
		ctx:       ctx,
		fetch:     fetch,
		acc:       acc,
		refreshed: make(chan struct{}, 1),
	}
}

// SetDebounce overrides the debounce window. Zero disables debouncing
// (every change fetches immediately); tests use short windows.
func (c *Controller[T]) SetDebounce(d time.Duration) {
	c.mu.Lock()
	c.debounce = d
	c.mu.Unlock()
}

// SetFilter updates one categorical filter, resets the page to 1, and
// schedules a debounced refresh.
func (c *Controller[T]) SetFilter(name, value string) {
	c.mu.Lock()
	c.filters = c.filters.WithField(name, value)
	c.page = 1
	c.scheduleLocked()
	c.mu.Unlock()
}

// SetSearch updates the search text, resets the page to 1, and schedules a
// debounced refresh.
func (c *Controller[T]) SetSearch(text string) {
	c.mu.Lock()
	c.filters = c.filters.WithSearch(text)
	c.page = 1
	c.scheduleLocked()
	c.mu.Unlock()
}

// SetFilters replaces the whole filter state (deep-link restore on mount).
func (c *Controller[T]) SetFilters(f Filters) {
	c.mu.Lock()
	c.filters = f.clone()
	c.page = 1
	c.scheduleLocked()
	c.mu.Unlock()
}

// SetPage moves to the given page of the current set. No refetch: pagination
// is client-side over the already-fetched list.
func (c *Controller[T]) SetPage(page int) {
	c.mu.Lock()
	_, c.page, _ = Page(c.visibleLocked(), page, c.perPage)
	c.mu.Unlock()
}

// Refresh fetches immediately, bypassing the debounce (initial mount,
// explicit retry). It still participates in sequence ordering.
func (c *Controller[T]) Refresh() {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.issueLocked()
	c.mu.Unlock()
}

// RefreshSoon schedules a debounced refresh without touching filter or page
// state. Bursts collapse into a single fetch, so it is safe to call on every
// mutation or cache read that wants eventual revalidation.
func (c *Controller[T]) RefreshSoon() {
	c.mu.Lock()
	c.scheduleLocked()
	c.mu.Unlock()
}

// Reload replaces the whole filter state and fetches immediately. The page
// resets to 1 like any filter change.
func (c *Controller[T]) Reload(f Filters) {
	c.mu.Lock()
	c.filters = f.clone()
	c.page = 1
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.issueLocked()
	c.mu.Unlock()
}

// Loaded reports whether at least one fetch result has been applied.
func (c *Controller[T]) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applied > 0
}

// Items returns a copy of the full fetched set, before filtering.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// scheduleLocked arms the debounce timer; an already-armed timer is reset so
// only the last change within the window issues a fetch. The timer is
// cancelled, never an in-flight request; stale responses are handled by
// sequence comparison instead.
func (c *Controller[T]) scheduleLocked() {
	if c.debounce <= 0 {
		c.issueLocked()
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		c.mu.Lock()
		c.timer = nil
		c.issueLocked()
		c.mu.Unlock()
	})
}

func (c *Controller[T]) issueLocked() {
	c.seq++
	seq := c.seq
	filters := c.filters.clone()

	go func() {
		items, err := c.fetch(c.ctx, filters)
		c.apply(seq, items, err)
	}()
}

// apply installs a fetch result unless a newer fetch has been issued since.
func (c *Controller[T]) apply(seq uint64, items []T, err error) {
	c.mu.Lock()
	defer func() {
		c.mu.Unlock()
		select {
		case c.refreshed <- struct{}{}:
		default:
		}
	}()

	if seq != c.seq {
		logger.Debug("discarding stale list response", "seq", seq, "latest", c.seq)
		return
	}
	c.applied = seq

	if err != nil {
		// Failure clears the list but keeps the filter state so the user
		// can retry without re-entering filters.
		c.fetchErr = err.Error()
		c.items = []T{}
		return
	}
	c.fetchErr = ""
	if items == nil {
		items = []T{}
	}
	c.items = items
}

// Snapshot is the state a caller renders: one page of the filtered set plus
// paging metadata and the last fetch error ("" when healthy).
type Snapshot[T any] struct {
	Items      []T
	Page       int
	TotalPages int
	TotalItems int
	Filters    Filters
	Err        string
}

// Snapshot returns the current visible state.
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	visible := c.visibleLocked()
	pageItems, page, totalPages := Page(visible, c.page, c.perPage)
	return Snapshot[T]{
		Items:      pageItems,
		Page:       page,
		TotalPages: totalPages,
		TotalItems: len(visible),
		Filters:    c.filters.clone(),
		Err:        c.fetchErr,
	}
}

// Patch rewrites matching fetched items in place (optimistic update after a
// mutation). It does not refetch.
func (c *Controller[T]) Patch(match func(T) bool, update func(T) T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, item := range c.items {
		if match(item) {
			c.items[i] = update(item)
		}
	}
}

// WaitRefresh blocks until a fetch settles or the timeout elapses. Intended
// for tests and for handlers that need the post-mutation state.
func (c *Controller[T]) WaitRefresh(timeout time.Duration) bool {
	select {
	case <-c.refreshed:
		return true
	case <-time.After(timeout):
		return false
	}
}

func (c *Controller[T]) visibleLocked() []T {
	return Apply(c.items, c.filters, c.acc)
}
