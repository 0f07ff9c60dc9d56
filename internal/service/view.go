package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/noah-isme/enrollplus-admin/internal/dto"
	"github.com/noah-isme/enrollplus-admin/internal/listing"
)

// ViewResult is one rendered page of a session view.
type ViewResult struct {
	Table  string         `json:"table"`
	Items  interface{}    `json:"items"`
	Window listing.Window `json:"window"`
	Params listing.Params `json:"params"`
}

// controls is the type-independent surface of listing.Controller.
type controls interface {
	SetQuery(query string)
	SetFilter(name, value string) error
	SetPageSize(size int) error
	ToggleSort(key string) error
	GoToPage(page int)
	Next()
	Prev()
	First()
	Last()
	ResetPage()
	State() listing.Params
}

// TableView is a stateful controller for one table inside one session.
type TableView struct {
	table    string
	controls controls
	check    func(req dto.ViewEventRequest) error
	render   func() ViewResult
}

// ViewFactory creates per-session table views.
type ViewFactory interface {
	Table() string
	NewView() *TableView
}

func newTableView[T any](t *table[T], src listing.Source[T], project func([]T) interface{}) *TableView {
	ctrl := listing.NewController(t.cfg, src)
	return &TableView{
		table:    t.name,
		controls: ctrl,
		check: func(req dto.ViewEventRequest) error {
			return checkViewEvent(t.cfg, req)
		},
		render: func() ViewResult {
			view := ctrl.View()
			t.metrics.ObserveListView(t.name, view.TotalItems)
			return ViewResult{Table: t.name, Items: project(view.Items), Window: view.Window, Params: view.Params}
		},
	}
}

// Render recomputes the current page.
func (v *TableView) Render() ViewResult {
	return v.render()
}

// Reset returns to page 1.
func (v *TableView) Reset() {
	v.controls.ResetPage()
}

// Apply runs control events in order: search, filters, page size, sort,
// then navigation. The view is left untouched when any event is invalid.
func (v *TableView) Apply(req dto.ViewEventRequest) error {
	if err := v.check(req); err != nil {
		return v.controlError(err)
	}
	if req.Search != nil {
		v.controls.SetQuery(*req.Search)
	}
	for name, value := range req.Filters {
		if err := v.controls.SetFilter(name, value); err != nil {
			return v.controlError(&controlErr{field: name, value: value, err: err})
		}
	}
	if req.PageSize != nil {
		if err := v.controls.SetPageSize(*req.PageSize); err != nil {
			return v.controlError(&controlErr{field: "pageSize", err: err})
		}
	}
	if req.SortBy != "" {
		if err := v.controls.ToggleSort(req.SortBy); err != nil {
			return v.controlError(&controlErr{field: "sortBy", value: req.SortBy, err: err})
		}
	}
	if req.Page != nil {
		v.controls.GoToPage(*req.Page)
	}
	switch req.Action {
	case "next":
		v.controls.Next()
	case "prev":
		v.controls.Prev()
	case "first":
		v.controls.First()
	case "last":
		v.controls.Last()
	case "reset":
		v.controls.ResetPage()
	}
	return nil
}

type controlErr struct {
	field string
	value string
	err   error
}

func (e *controlErr) Error() string { return e.field + ": " + e.err.Error() }

func (e *controlErr) Unwrap() error { return e.err }

// checkViewEvent validates every control of req against cfg without applying any.
func checkViewEvent[T any](cfg listing.Config[T], req dto.ViewEventRequest) error {
	for name, value := range req.Filters {
		if err := cfg.ValidateFilter(name, strings.TrimSpace(value)); err != nil {
			return &controlErr{field: name, value: value, err: err}
		}
	}
	if req.PageSize != nil && !listing.ValidPageSize(*req.PageSize) {
		return &controlErr{field: "pageSize", err: listing.ErrInvalidPageSize}
	}
	if req.SortBy != "" {
		if err := cfg.ValidateSort(listing.Sort{Key: req.SortBy}); err != nil {
			return &controlErr{field: "sortBy", value: req.SortBy, err: err}
		}
	}
	return nil
}

func (v *TableView) controlError(err error) error {
	var ce *controlErr
	if !errors.As(err, &ce) {
		return err
	}
	switch {
	case errors.Is(ce.err, listing.ErrUnknownDimension):
		return fieldError(ce.field, "is not a filter of "+v.table)
	case errors.Is(ce.err, listing.ErrInvalidPageSize):
		return fieldError(ce.field, fmt.Sprintf("must be one of %v", listing.PageSizeOptions))
	case errors.Is(ce.err, listing.ErrUnknownSortKey):
		return fieldError(ce.field, fmt.Sprintf("%q is not sortable", ce.value))
	}
	return fieldError(ce.field, fmt.Sprintf("%q is not a valid value", ce.value))
}
