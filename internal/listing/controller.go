package listing

import (
	"errors"
	"maps"
	"slices"
	"strings"
	"sync"
)

var (
	// ErrUnknownSortKey is returned for a sort key the table does not declare.
	ErrUnknownSortKey = errors.New("unknown sort key")
	// ErrUnknownDimension is returned for a filter the table does not declare.
	ErrUnknownDimension = errors.New("unknown filter")
	// ErrUnknownBucket is returned for a filter value the dimension cannot match.
	ErrUnknownBucket = errors.New("unknown filter value")
	// ErrInvalidPageSize is returned for a page size outside PageSizeOptions.
	ErrInvalidPageSize = errors.New("invalid page size")
)

// Config describes one table to the engine.
type Config[T any] struct {
	Name        string
	ID          func(T) string
	Search      func(T) string
	Dimensions  map[string]Dimension[T]
	SortKeys    map[string]Comparator[T]
	DefaultSort Sort
	PageSize    int
}

// ValidateSort checks that s names a declared key (or none).
func (c Config[T]) ValidateSort(s Sort) error {
	if s.Key == "" {
		return nil
	}
	if _, ok := c.SortKeys[s.Key]; !ok {
		return ErrUnknownSortKey
	}
	return nil
}

// ValidateFilter checks a dimension/value pair.
func (c Config[T]) ValidateFilter(name, value string) error {
	dim, ok := c.Dimensions[name]
	if !ok {
		return ErrUnknownDimension
	}
	if !dim.Accepts(value) {
		return ErrUnknownBucket
	}
	return nil
}

// Params are the controls of one view.
type Params struct {
	Query    string            `json:"query"`
	Filters  map[string]string `json:"filters"`
	Sort     Sort              `json:"sort"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// View is the read-only projection handed to the presentation layer.
type View[T any] struct {
	Items      []T    `json:"items"`
	Window     Window `json:"window"`
	TotalItems int    `json:"total_items"`
	Params     Params `json:"params"`
}

// Apply filters then sorts, returning every matching record. The source slice
// is never modified.
func Apply[T any](items []T, cfg Config[T], p Params) []T {
	out := Filter(items, cfg, p.Query, p.Filters)
	if p.Sort.Key != "" {
		if c, ok := cfg.SortKeys[p.Sort.Key]; ok {
			dir := p.Sort.Direction
			if dir == "" {
				dir = Asc
			}
			SortItems(out, c, dir)
		}
	}
	return out
}

// Compute runs filter -> sort -> paginate and returns the page to render.
// Nothing is cached between calls.
func Compute[T any](items []T, cfg Config[T], p Params) View[T] {
	if p.PageSize <= 0 {
		p.PageSize = cfg.pageSize()
	}
	matched := Apply(items, cfg, p)
	w := Paginate(len(matched), p.PageSize, p.Page)
	p.Page = w.CurrentPage
	page := make([]T, w.EndIndex-w.StartIndex)
	copy(page, matched[w.StartIndex:w.EndIndex])
	return View[T]{Items: page, Window: w, TotalItems: w.TotalItems, Params: p}
}

func (c Config[T]) pageSize() int {
	if c.PageSize > 0 {
		return c.PageSize
	}
	return DefaultPageSize
}

// Source supplies the current snapshot of a collection.
type Source[T any] interface {
	Snapshot() []T
}

// Controller holds the control state of one table view and recomputes the
// page from the source on every read.
type Controller[T any] struct {
	mu    sync.Mutex
	cfg   Config[T]
	src   Source[T]
	state Params
}

// NewController starts at page 1 with the table's default sort.
func NewController[T any](cfg Config[T], src Source[T]) *Controller[T] {
	return &Controller[T]{
		cfg: cfg,
		src: src,
		state: Params{
			Filters:  map[string]string{},
			Sort:     cfg.DefaultSort,
			Page:     1,
			PageSize: cfg.pageSize(),
		},
	}
}

// State returns a copy of the current controls.
func (c *Controller[T]) State() Params {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// SetQuery changes the search text and returns to page 1.
func (c *Controller[T]) SetQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Query = query
	c.state.Page = 1
}

// SetFilter changes one dimension and returns to page 1.
func (c *Controller[T]) SetFilter(name, value string) error {
	value = strings.TrimSpace(value)
	if err := c.cfg.ValidateFilter(name, value); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if value == "" || value == All {
		delete(c.state.Filters, name)
	} else {
		c.state.Filters[name] = value
	}
	c.state.Page = 1
	return nil
}

// SetPageSize changes the page size and returns to page 1.
func (c *Controller[T]) SetPageSize(size int) error {
	if !ValidPageSize(size) {
		return ErrInvalidPageSize
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.PageSize = size
	c.state.Page = 1
	return nil
}

// ToggleSort applies a header click on key.
func (c *Controller[T]) ToggleSort(key string) error {
	if err := c.cfg.ValidateSort(Sort{Key: key}); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Sort = c.state.Sort.Toggle(key)
	return nil
}

// GoToPage moves to page, clamped to the available range.
func (c *Controller[T]) GoToPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Page = page
	c.state.Page = c.windowLocked().CurrentPage
}

// Next moves forward one page; a no-op on the last page.
func (c *Controller[T]) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()
	w := c.windowLocked()
	c.state.Page = w.CurrentPage
	if w.HasNext {
		c.state.Page++
	}
}

// Prev moves back one page; a no-op on the first page.
func (c *Controller[T]) Prev() {
	c.mu.Lock()
	defer c.mu.Unlock()
	w := c.windowLocked()
	c.state.Page = w.CurrentPage
	if w.HasPrev {
		c.state.Page--
	}
}

// First moves to page 1.
func (c *Controller[T]) First() {
	c.ResetPage()
}

// Last moves to the final page.
func (c *Controller[T]) Last() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Page = c.windowLocked().TotalPages
}

// ResetPage returns to page 1.
func (c *Controller[T]) ResetPage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Page = 1
}

// View recomputes the page from the current snapshot and remembers the
// clamped page number.
func (c *Controller[T]) View() View[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	view := Compute(c.src.Snapshot(), c.cfg, c.stateLocked())
	c.state.Page = view.Window.CurrentPage
	return view
}

func (c *Controller[T]) windowLocked() Window {
	matched := Filter(c.src.Snapshot(), c.cfg, c.state.Query, c.state.Filters)
	return Paginate(len(matched), c.state.PageSize, c.state.Page)
}

func (c *Controller[T]) stateLocked() Params {
	p := c.state
	p.Filters = maps.Clone(c.state.Filters)
	return p
}

// ValidPageSize reports whether size is one of PageSizeOptions.
func ValidPageSize(size int) bool {
	return slices.Contains(PageSizeOptions, size)
}
