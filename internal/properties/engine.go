package properties

import (
	"context"
	"sync"
	"time"

	"github.com/FarhanAlam-Official/GharSaathi/pkg/logger"
)

// keywordDebounce is how long keyword input must be idle before a search runs.
const keywordDebounce = 500 * time.Millisecond

// searcher is the slice of Service the engine depends on.
type searcher interface {
	List(ctx context.Context, page, size int, sortBy, sortDirection string) (ListResult, error)
	Search(ctx context.Context, c SearchCriteria) (ListResult, error)
}

// Engine drives the browse view: it holds the active filter state, debounces
// keyword input, dispatches searches and delivers pages to the result sink.
// Responses arriving out of order are discarded so the view never shows a
// page belonging to superseded criteria.
type Engine struct {
	svc      searcher
	onResult func(ListResult)
	onError  func(error)

	// fired after a page change so the view can scroll back to the top
	onPageChange func()

	debounce time.Duration

	mu       sync.Mutex
	criteria SearchCriteria
	page     int
	timer    *time.Timer
	seq      uint64
}

type EngineOption func(*Engine)

// WithDebounce overrides the keyword debounce interval; mainly for tests.
func WithDebounce(d time.Duration) EngineOption {
	return func(e *Engine) { e.debounce = d }
}

// WithPageChangeHook registers the callback fired after a page navigation.
func WithPageChangeHook(f func()) EngineOption {
	return func(e *Engine) { e.onPageChange = f }
}

func NewEngine(svc searcher, onResult func(ListResult), onError func(error), opts ...EngineOption) *Engine {
	e := &Engine{
		svc:      svc,
		onResult: onResult,
		onError:  onError,
		debounce: keywordDebounce,
		criteria: SearchCriteria{Size: DefaultPageSize},
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Criteria returns a snapshot of the active filters.
func (e *Engine) Criteria() SearchCriteria {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.criteria
}

// SetKeyword updates the keyword filter. The search is debounced: it fires
// only after the configured idle interval, and a newer keystroke re-arms the
// timer. Every filter change resets pagination to the first page.
func (e *Engine) SetKeyword(ctx context.Context, kw string) {
	e.mu.Lock()
	e.criteria.Keyword = kw
	e.page = 0
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(e.debounce, func() {
		e.dispatch(ctx)
	})
	e.mu.Unlock()
}

// SetCity updates the city filter and searches immediately.
func (e *Engine) SetCity(ctx context.Context, city string) {
	e.update(ctx, func(c *SearchCriteria) { c.City = city })
}

// SetPropertyType updates the type filter and searches immediately.
func (e *Engine) SetPropertyType(ctx context.Context, t PropertyType) {
	e.update(ctx, func(c *SearchCriteria) { c.PropertyType = t })
}

// SetBedrooms sets the minimum bedroom count; nil clears the filter.
func (e *Engine) SetBedrooms(ctx context.Context, n *int) {
	e.update(ctx, func(c *SearchCriteria) { c.Bedrooms = n })
}

// SetPriceRange sets the price bounds; nil clears either side.
func (e *Engine) SetPriceRange(ctx context.Context, min, max *float64) {
	e.update(ctx, func(c *SearchCriteria) {
		c.MinPrice = min
		c.MaxPrice = max
	})
}

// SetAmenities replaces the required amenity set and searches immediately.
func (e *Engine) SetAmenities(ctx context.Context, amenities []string) {
	e.update(ctx, func(c *SearchCriteria) { c.Amenities = amenities })
}

// ClearFilters drops every filter and reloads the unfiltered first page.
func (e *Engine) ClearFilters(ctx context.Context) {
	e.mu.Lock()
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.criteria = SearchCriteria{Size: e.criteria.Size}
	e.page = 0
	e.mu.Unlock()
	e.dispatch(ctx)
}

// update applies a non-keyword filter mutation and dispatches without delay.
// Any pending keyword timer keeps running; its search will pick up the new
// criteria when it fires.
func (e *Engine) update(ctx context.Context, mutate func(*SearchCriteria)) {
	e.mu.Lock()
	mutate(&e.criteria)
	e.page = 0
	e.mu.Unlock()
	e.dispatch(ctx)
}

// LoadPage navigates to a zero-indexed page of the current result set. Page
// navigation always reloads through the plain listing path, even while
// filters are active, and fires the page-change hook on success so the view
// scrolls back to the top.
func (e *Engine) LoadPage(ctx context.Context, page int) {
	if page < 0 {
		page = 0
	}
	e.mu.Lock()
	e.page = page
	e.mu.Unlock()
	e.run(ctx, true, true)
}

// Refresh re-runs the current criteria, e.g. after returning to the view.
func (e *Engine) Refresh(ctx context.Context) {
	e.dispatch(ctx)
}

// dispatch runs one load for the current criteria, choosing the search or
// listing path by whether any filter is active.
func (e *Engine) dispatch(ctx context.Context) {
	e.run(ctx, false, false)
}

// run executes one load. Each run gets a monotonic sequence number; a
// response is delivered only when it belongs to the most recent run, so slow
// responses never clobber fresh ones.
func (e *Engine) run(ctx context.Context, listOnly, pageChanged bool) {
	e.mu.Lock()
	e.seq++
	seq := e.seq
	c := e.criteria
	c.Page = e.page
	e.mu.Unlock()

	var (
		res ListResult
		err error
	)
	if !listOnly && c.HasFilters() {
		res, err = e.svc.Search(ctx, c)
	} else {
		res, err = e.svc.List(ctx, c.Page, c.Size, c.SortBy, c.SortDirection)
	}

	e.mu.Lock()
	stale := seq != e.seq
	e.mu.Unlock()
	if stale {
		logger.Debugf("properties: dropping stale search response")
		return
	}

	if err != nil {
		if e.onError != nil {
			e.onError(err)
		}
		return
	}
	if e.onResult != nil {
		e.onResult(res)
	}
	if pageChanged && e.onPageChange != nil {
		e.onPageChange()
	}
}

// Close stops any pending debounce timer.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}
