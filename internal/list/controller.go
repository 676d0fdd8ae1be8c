// Package list implements the paginated search controller behind every
// CRM list screen and picker modal.
//
// A Controller owns one search state (page, page size, query, search
// type) and one fetch pipeline. Fetches run asynchronously; when
// several overlap, only the most recently issued one may publish its
// result. A failed fetch publishes an empty page and records the error
// instead of propagating it, so a flaky upstream degrades a screen to
// an empty table rather than an error page.
package list

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rithysak/backoffice/internal/domain"
)

const defaultPageSize = 10

// Fetcher loads one page of rows for a request.
type Fetcher[T any] func(ctx context.Context, req domain.PageRequest) (domain.Page[T], error)

// Config holds configuration for a list controller.
type Config[T any] struct {
	Fetch      Fetcher[T]
	Logger     *slog.Logger
	PageSize   int
	SearchType string

	// Debounce delays the fetch after a search-term change so fast
	// typing issues one request, not one per keystroke. Zero fetches
	// immediately.
	Debounce time.Duration

	// OnUpdate, when set, runs after each published result while the
	// controller lock is held.
	OnUpdate func()
}

// Controller drives one paginated, searchable list.
type Controller[T any] struct {
	fetch    Fetcher[T]
	logger   *slog.Logger
	debounce time.Duration
	onUpdate func()

	mu   sync.Mutex
	cond *sync.Cond

	state   domain.SearchState
	rows    []T
	total   int
	loading bool
	lastErr error

	// seq identifies the in-flight fetch. A completing fetch whose
	// sequence no longer matches has been superseded and must not
	// publish.
	seq    uint64
	cancel context.CancelFunc
	timer  *time.Timer
}

// New creates a controller. No fetch is issued until Refresh, SetPage
// or SetSearch is called.
func New[T any](cfg Config[T]) *Controller[T] {
	if cfg.PageSize < 1 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	c := &Controller[T]{
		fetch:    cfg.Fetch,
		logger:   cfg.Logger,
		debounce: cfg.Debounce,
		onUpdate: cfg.OnUpdate,
		state: domain.SearchState{
			CurrentPage: 1,
			PageSize:    cfg.PageSize,
			SearchType:  cfg.SearchType,
		},
		rows: []T{},
	}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// =============================================================================
// Mutations
// =============================================================================

// SetPage moves to page n and fetches it. Page numbers below 1 are
// ignored.
func (c *Controller[T]) SetPage(ctx context.Context, n int) {
	if n < 1 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.CurrentPage = n
	c.startFetch(ctx)
}

// SetSearch replaces the search term, returns to page 1 and schedules a
// fetch after the debounce interval. A newer call supersedes a pending
// one. The page reset happens even when the term is unchanged.
func (c *Controller[T]) SetSearch(ctx context.Context, query string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.SearchQuery = query
	c.state.CurrentPage = 1

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.debounce <= 0 {
		c.startFetch(ctx)
		return
	}

	var t *time.Timer
	t = time.AfterFunc(c.debounce, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.timer != t {
			return
		}
		c.timer = nil
		c.startFetch(ctx)
	})
	c.timer = t
}

// Restore sets query and page together without issuing a fetch, for
// rebuilding controller state from a URL. Call Refresh afterwards.
func (c *Controller[T]) Restore(query string, page int) {
	if page < 1 {
		page = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SearchQuery = query
	c.state.CurrentPage = page
}

// SetSearchType replaces the backend search field without fetching.
func (c *Controller[T]) SetSearchType(searchType string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SearchType = searchType
}

// Refresh re-fetches the current page immediately.
func (c *Controller[T]) Refresh(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startFetch(ctx)
}

// Close cancels any in-flight fetch and pending debounce.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.seq++
	c.loading = false
	c.cond.Broadcast()
}

// startFetch launches the fetch goroutine for the current state.
// Callers must hold c.mu.
func (c *Controller[T]) startFetch(ctx context.Context) {
	if c.cancel != nil {
		c.cancel()
	}
	c.seq++
	seq := c.seq

	fctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.loading = true
	req := c.state.Request()

	go func() {
		defer cancel()
		page, err := c.fetch(fctx, req)

		c.mu.Lock()
		defer c.mu.Unlock()
		if seq != c.seq {
			// Superseded by a newer fetch; drop the result.
			return
		}

		c.loading = false
		c.cancel = nil
		if err != nil {
			c.logger.Error("list fetch failed",
				"page", req.PageNumber,
				"query", req.Query,
				"error", err,
			)
			c.rows = []T{}
			c.total = 0
			c.lastErr = err
		} else {
			c.rows = page.Rows
			c.total = page.Total
			c.lastErr = nil
		}
		if c.onUpdate != nil {
			c.onUpdate()
		}
		c.cond.Broadcast()
	}()
}

// =============================================================================
// Snapshots
// =============================================================================

// Wait blocks until no fetch is in flight or pending. It is the bridge
// between the asynchronous fetch pipeline and the synchronous
// render-a-full-page request handlers.
func (c *Controller[T]) Wait() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.loading || c.timer != nil {
		c.cond.Wait()
	}
}

// Rows returns the most recently published page of rows.
func (c *Controller[T]) Rows() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rows
}

// Total returns the backend's total row count across all pages.
func (c *Controller[T]) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Loading reports whether a fetch is in flight or pending.
func (c *Controller[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading || c.timer != nil
}

// Debounce returns the configured debounce interval.
func (c *Controller[T]) Debounce() time.Duration {
	return c.debounce
}

// Err returns the error recorded by the last fetch, nil after a
// successful one.
func (c *Controller[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// State returns a copy of the current search state.
func (c *Controller[T]) State() domain.SearchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Pagination derives display pagination from the current state and
// total.
func (c *Controller[T]) Pagination() domain.Pagination {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.NewPagination(c.state, c.total)
}
