package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/enrollplus-admin/internal/listing"
	"github.com/noah-isme/enrollplus-admin/internal/models"
	"github.com/noah-isme/enrollplus-admin/pkg/clock"
	"github.com/noah-isme/enrollplus-admin/pkg/export"
	"github.com/noah-isme/enrollplus-admin/pkg/format"
)

// TransactionConfig describes the transactions table. The range buckets are
// relative to the clock.
func TransactionConfig(c clock.Clock) listing.Config[models.Transaction] {
	within := func(window time.Duration) func(models.Transaction) bool {
		return func(t models.Transaction) bool {
			now := c.Now()
			return !t.Date.After(now) && !t.Date.Before(now.Add(-window))
		}
	}
	const day = 24 * time.Hour
	return listing.Config[models.Transaction]{
		Name: TableTransactions,
		ID:   func(t models.Transaction) string { return t.ID },
		Search: func(t models.Transaction) string {
			return listing.SearchText(t.StudentName, t.StudentID, t.Reference, t.CourseCode)
		},
		Dimensions: map[string]listing.Dimension[models.Transaction]{
			"type":   {Value: func(t models.Transaction) string { return string(t.Type) }},
			"status": {Value: func(t models.Transaction) string { return string(t.Status) }},
			"range": {
				Buckets: map[string]func(models.Transaction) bool{
					"today": func(t models.Transaction) bool {
						y1, m1, d1 := c.Now().Date()
						y2, m2, d2 := t.Date.In(c.Now().Location()).Date()
						return y1 == y2 && m1 == m2 && d1 == d2
					},
					"week":    within(7 * day),
					"month":   within(30 * day),
					"quarter": within(90 * day),
				},
			},
		},
		SortKeys: map[string]listing.Comparator[models.Transaction]{
			"date":        listing.ByTime(func(t models.Transaction) time.Time { return t.Date }),
			"amount":      listing.ByNumber(func(t models.Transaction) float64 { return t.Amount }),
			"studentName": listing.ByString(func(t models.Transaction) string { return t.StudentName }),
			"status":      listing.ByString(func(t models.Transaction) string { return string(t.Status) }),
			"type":        listing.ByString(func(t models.Transaction) string { return string(t.Type) }),
		},
		PageSize: listing.DefaultPageSize,
	}
}

// TransactionService serves the read-only transaction log.
type TransactionService struct {
	*table[models.Transaction]
}

// NewTransactionService builds the transactions table from seed records.
func NewTransactionService(seed []models.Transaction, logger *zap.Logger, opts ...TableOption) (*TransactionService, error) {
	deps := tableDeps{clock: clock.Real()}
	for _, opt := range opts {
		if opt != nil {
			opt(&deps)
		}
	}
	cfg := TransactionConfig(deps.clock)
	store, err := listing.NewStore(cfg.ID, seed)
	if err != nil {
		return nil, err
	}
	return &TransactionService{table: newTable(TableTransactions, store, cfg, nil, logger, opts)}, nil
}

// List returns one page of transactions.
func (s *TransactionService) List(ctx context.Context, params listing.Params) (listing.View[models.Transaction], error) {
	return s.list(s.Snapshot(), params)
}

// Get returns a transaction by id.
func (s *TransactionService) Get(ctx context.Context, id string) (*models.Transaction, error) {
	txn, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// Totals summarises every transaction matching params across all pages.
func (s *TransactionService) Totals(ctx context.Context, params listing.Params) (models.TransactionTotals, error) {
	items, err := s.matching(s.Snapshot(), params)
	if err != nil {
		return models.TransactionTotals{}, err
	}
	return SummarizeTransactions(items), nil
}

// SummarizeTransactions counts transactions, completed payments, their total
// amount and pending items.
func SummarizeTransactions(items []models.Transaction) models.TransactionTotals {
	totals := models.TransactionTotals{TotalTransactions: len(items)}
	for _, t := range items {
		if t.IsCompletedPayment() {
			totals.TotalPayments++
			totals.TotalAmount += t.Amount
		}
		if t.Status == models.TransactionPending {
			totals.PendingCount++
		}
	}
	return totals
}

// Dataset renders every matching transaction for export.
func (s *TransactionService) Dataset(ctx context.Context, params listing.Params) (export.Dataset, error) {
	items, err := s.matching(s.Snapshot(), params)
	if err != nil {
		return export.Dataset{}, err
	}
	columns := []export.Column{
		{Key: "reference", Label: "Reference"},
		{Key: "date", Label: "Date"},
		{Key: "studentName", Label: "Student"},
		{Key: "studentId", Label: "Student ID"},
		{Key: "courseCode", Label: "Course"},
		{Key: "type", Label: "Type"},
		{Key: "status", Label: "Status"},
		{Key: "amount", Label: "Amount"},
	}
	return s.dataset("Transactions", columns, items, func(t models.Transaction) []string {
		return []string{
			t.Reference,
			format.Date(t.Date),
			t.StudentName,
			t.StudentID,
			t.CourseCode,
			string(t.Type),
			string(t.Status),
			format.Currency(t.Amount),
		}
	}), nil
}

// NewView builds a per-session view of the transactions table.
func (s *TransactionService) NewView() *TableView {
	return newTableView(s.table, s.table, func(items []models.Transaction) interface{} { return items })
}
