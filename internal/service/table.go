package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/enrollplus-admin/internal/listing"
	"github.com/noah-isme/enrollplus-admin/internal/models"
	"github.com/noah-isme/enrollplus-admin/pkg/clock"
	appErrors "github.com/noah-isme/enrollplus-admin/pkg/errors"
	"github.com/noah-isme/enrollplus-admin/pkg/export"
)

// Table names shared by the services, handlers and session views.
const (
	TableUsers        = "users"
	TableCourses      = "courses"
	TableProducts     = "products"
	TableTransactions = "transactions"
)

// Tables lists every table in navigation order.
var Tables = []string{TableUsers, TableCourses, TableProducts, TableTransactions}

type confirmationRequester interface {
	Request(ctx context.Context, kind models.ConfirmationKind, table, recordID, summary string) (*models.Confirmation, error)
}

// ViewResetter returns a session's view of a table to its first page.
type ViewResetter interface {
	ResetView(sessionID, table string)
}

type tableDeps struct {
	clock         clock.Clock
	metrics       *MetricsService
	submitDelay   time.Duration
	confirmations confirmationRequester
	views         ViewResetter
}

// TableOption configures a table service.
type TableOption func(*tableDeps)

// WithClock overrides the time source.
func WithClock(c clock.Clock) TableOption {
	return func(d *tableDeps) {
		if c != nil {
			d.clock = c
		}
	}
}

// WithMetrics records list and mutation metrics.
func WithMetrics(m *MetricsService) TableOption {
	return func(d *tableDeps) {
		d.metrics = m
	}
}

// WithSubmitDelay sets the pause before an add is committed.
func WithSubmitDelay(delay time.Duration) TableOption {
	return func(d *tableDeps) {
		if delay >= 0 {
			d.submitDelay = delay
		}
	}
}

// WithConfirmations routes destructive actions through the confirmation workflow.
func WithConfirmations(c confirmationRequester) TableOption {
	return func(d *tableDeps) {
		d.confirmations = c
	}
}

// WithViewResetter resets the caller's view after an add.
func WithViewResetter(v ViewResetter) TableOption {
	return func(d *tableDeps) {
		d.views = v
	}
}

// table is the state every table service shares: the owned store, the list
// configuration and the add submission guard.
type table[T any] struct {
	name      string
	store     *listing.Store[T]
	cfg       listing.Config[T]
	validator *validator.Validate
	logger    *zap.Logger
	tableDeps
	inFlight atomic.Bool
}

func newTable[T any](name string, store *listing.Store[T], cfg listing.Config[T], validate *validator.Validate, logger *zap.Logger, opts []TableOption) *table[T] {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &table[T]{
		name:      name,
		store:     store,
		cfg:       cfg,
		validator: validate,
		logger:    logger.With(zap.String("table", name)),
		tableDeps: tableDeps{clock: clock.Real(), submitDelay: 500 * time.Millisecond},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&t.tableDeps)
		}
	}
	return t
}

// Snapshot implements listing.Source.
func (t *table[T]) Snapshot() []T {
	return t.store.Snapshot()
}

// Config returns the list configuration.
func (t *table[T]) Config() listing.Config[T] {
	return t.cfg
}

// Table returns the table name.
func (t *table[T]) Table() string {
	return t.name
}

func (t *table[T]) validate(req interface{}) error {
	if err := t.validator.Struct(req); err != nil {
		return validationError(err)
	}
	return nil
}

// checkParams rejects sort keys and filters the table does not declare.
func (t *table[T]) checkParams(p listing.Params) error {
	if err := t.cfg.ValidateSort(p.Sort); err != nil {
		return fieldError("sort_by", fmt.Sprintf("%q is not sortable", p.Sort.Key))
	}
	for name, value := range p.Filters {
		switch err := t.cfg.ValidateFilter(name, value); {
		case errors.Is(err, listing.ErrUnknownDimension):
			return fieldError(name, "is not a filter of "+t.name)
		case err != nil:
			return fieldError(name, fmt.Sprintf("%q is not a valid value", value))
		}
	}
	return nil
}

// list recomputes one page from the current snapshot.
func (t *table[T]) list(items []T, p listing.Params) (listing.View[T], error) {
	if err := t.checkParams(p); err != nil {
		return listing.View[T]{}, err
	}
	view := listing.Compute(items, t.cfg, p)
	t.metrics.ObserveListView(t.name, view.TotalItems)
	return view, nil
}

// matching returns every filtered and sorted record across all pages.
func (t *table[T]) matching(items []T, p listing.Params) ([]T, error) {
	if err := t.checkParams(p); err != nil {
		return nil, err
	}
	return listing.Apply(items, t.cfg, p), nil
}

func (t *table[T]) get(id string) (T, error) {
	item, ok := t.store.Get(id)
	if !ok {
		var zero T
		return zero, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("%s record %q not found", t.name, id))
	}
	return item, nil
}

// submit waits out the submit delay and then commits. Only one submission per
// table may be in flight.
func (t *table[T]) submit(ctx context.Context, sessionID string, commit func() (T, error)) (T, error) {
	var zero T
	if !t.inFlight.CompareAndSwap(false, true) {
		t.metrics.RecordMutation(t.name, "add", OutcomeConflict)
		return zero, appErrors.ErrInFlight
	}
	defer t.inFlight.Store(false)

	if t.submitDelay > 0 {
		timer := time.NewTimer(t.submitDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			t.metrics.RecordMutation(t.name, "add", OutcomeError)
			return zero, appErrors.Wrap(ctx.Err(), appErrors.ErrCancelled.Code, appErrors.ErrCancelled.Status, appErrors.ErrCancelled.Message)
		case <-timer.C:
		}
	}

	item, err := commit()
	if err != nil {
		t.metrics.RecordMutation(t.name, "add", OutcomeError)
		return zero, t.storeError("add", err)
	}
	t.metrics.RecordMutation(t.name, "add", OutcomeSuccess)
	if t.views != nil && sessionID != "" {
		t.views.ResetView(sessionID, t.name)
	}
	return item, nil
}

// replace swaps a record through the store, mapping store failures.
// errUnchanged is returned by a replace callback that leaves the record as is.
var errUnchanged = errors.New("record unchanged")

func (t *table[T]) replace(kind, id string, fn func(current T) (T, error)) (T, error) {
	unchanged := false
	item, err := t.store.Replace(id, func(current T) (T, error) {
		next, err := fn(current)
		if errors.Is(err, errUnchanged) {
			unchanged = true
			return current, nil
		}
		return next, err
	})
	if err != nil {
		t.metrics.RecordMutation(t.name, kind, OutcomeError)
		return item, t.storeError(kind, err)
	}
	if unchanged {
		t.metrics.RecordMutation(t.name, kind, OutcomeNoop)
		return item, nil
	}
	t.metrics.RecordMutation(t.name, kind, OutcomeSuccess)
	return item, nil
}

// remove deletes a record. A missing record is reported as not found because
// another confirmation may have removed it first.
func (t *table[T]) remove(id string) error {
	if !t.store.Has(id) {
		t.metrics.RecordMutation(t.name, "delete", OutcomeNoop)
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("%s record %q not found", t.name, id))
	}
	if _, err := t.store.Remove(id); err != nil {
		t.metrics.RecordMutation(t.name, "delete", OutcomeError)
		return t.storeError("delete", err)
	}
	t.metrics.RecordMutation(t.name, "delete", OutcomeSuccess)
	t.logger.Info("record deleted", zap.String("id", id))
	return nil
}

// requestDelete opens a confirmation for deleting id.
func (t *table[T]) requestDelete(ctx context.Context, kind models.ConfirmationKind, id, summary string) (*models.Confirmation, error) {
	if _, err := t.get(id); err != nil {
		return nil, err
	}
	if t.confirmations == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "confirmation workflow not configured")
	}
	t.metrics.RecordMutation(t.name, "delete", OutcomePending)
	return t.confirmations.Request(ctx, kind, t.name, id, summary)
}

// storeError maps store failures. Invariant violations are programmer errors
// and fail loudly in development.
func (t *table[T]) storeError(op string, err error) error {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if listing.IsInvariant(err) {
		t.logger.DPanic("store invariant violated", zap.String("op", op), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInvariant.Code, appErrors.ErrInvariant.Status, err.Error())
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to "+op+" "+t.name)
}

// nextID derives a record id from the clock in milliseconds, bumping until it
// is unused.
func (t *table[T]) nextID(prefix string) string {
	millis := t.clock.Now().UnixMilli()
	for {
		id := fmt.Sprintf("%s%d", prefix, millis)
		if !t.store.Has(id) {
			return id
		}
		millis++
	}
}

func (t *table[T]) dataset(title string, columns []export.Column, items []T, row func(T) []string) export.Dataset {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, row(item))
	}
	return export.Dataset{Title: title, Columns: columns, Rows: rows}
}
