package service

import (
	"context"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/enrollplus-admin/internal/dto"
	"github.com/noah-isme/enrollplus-admin/internal/models"
	"github.com/noah-isme/enrollplus-admin/pkg/clock"
	"github.com/noah-isme/enrollplus-admin/pkg/format"
)

const topProductsLimit = 5

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	ActiveSemester string
}

// DashboardService composes the overview page from the table snapshots.
type DashboardService struct {
	users        interface{ Snapshot() []models.User }
	courses      interface{ Snapshot() []models.Course }
	products     interface{ Snapshot() []models.Product }
	transactions interface{ Snapshot() []models.Transaction }
	clock        clock.Clock
	logger       *zap.Logger
	cfg          DashboardServiceConfig
}

// NewDashboardService constructs the dashboard service.
func NewDashboardService(
	users interface{ Snapshot() []models.User },
	courses interface{ Snapshot() []models.Course },
	products interface{ Snapshot() []models.Product },
	transactions interface{ Snapshot() []models.Transaction },
	cfg DashboardServiceConfig,
	c clock.Clock,
	logger *zap.Logger,
) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if c == nil {
		c = clock.Real()
	}
	return &DashboardService{
		users:        users,
		courses:      courses,
		products:     products,
		transactions: transactions,
		clock:        c,
		logger:       logger,
		cfg:          cfg,
	}
}

// Overview builds the stat cards and distributions.
func (s *DashboardService) Overview(ctx context.Context) (*dto.DashboardResponse, error) {
	now := s.clock.Now()
	users := s.users.Snapshot()
	courses := s.courses.Snapshot()
	products := s.products.Snapshot()
	txns := s.transactions.Snapshot()

	totals := SummarizeTransactions(txns)
	open := 0
	for _, course := range courses {
		if course.Enrollment(now.Year()) == models.EnrollmentOpen {
			open++
		}
	}

	resp := &dto.DashboardResponse{
		Stats: dto.StatCards{
			Users:           len(users),
			Courses:         len(courses),
			OpenEnrollments: open,
			ActiveSemester:  s.cfg.ActiveSemester,
			Income:          totals.TotalAmount,
		},
		Transactions:      totals,
		CourseCategories:  distribution(courses, models.CourseCategories, func(c models.Course) string { return c.Category }),
		ProductCategories: distribution(products, models.ProductCategories, func(p models.Product) string { return p.Category }),
		UserStatuses: distribution(users, statusLabels(), func(u models.User) string {
			return string(u.Status)
		}),
		EnrollmentStates: distribution(courses, []string{
			string(models.EnrollmentOpen),
			string(models.EnrollmentClosed),
			string(models.EnrollmentExpired),
		}, func(c models.Course) string { return string(c.Enrollment(now.Year())) }),
		TopProducts:     topProducts(products, topProductsLimit),
		FormattedIncome: format.Currency(totals.TotalAmount),
		GeneratedAt:     now.UTC().Format(time.RFC3339),
	}
	s.logger.Debug("dashboard composed", zap.Int("users", len(users)), zap.Int("courses", len(courses)))
	return resp, nil
}

// distribution counts records per label. Known labels come first in the given
// order, followed by any others alphabetically.
func distribution[T any](items []T, known []string, label func(T) string) []dto.DistributionBin {
	counts := make(map[string]int, len(known))
	for _, item := range items {
		counts[label(item)]++
	}
	bins := make([]dto.DistributionBin, 0, len(counts))
	for _, name := range known {
		bins = append(bins, dto.DistributionBin{Label: name, Count: counts[name]})
		delete(counts, name)
	}
	extra := make([]string, 0, len(counts))
	for name := range counts {
		extra = append(extra, name)
	}
	slices.Sort(extra)
	for _, name := range extra {
		bins = append(bins, dto.DistributionBin{Label: name, Count: counts[name]})
	}
	return bins
}

func statusLabels() []string {
	labels := make([]string, len(models.UserStatuses))
	for i, status := range models.UserStatuses {
		labels[i] = string(status)
	}
	return labels
}

func topProducts(products []models.Product, limit int) []dto.ProductPerformance {
	ranked := make([]dto.ProductPerformance, 0, len(products))
	for _, p := range products {
		revenue := p.Price * float64(p.Sales)
		ranked = append(ranked, dto.ProductPerformance{
			ID:        p.ID,
			Name:      p.Name,
			Sales:     p.Sales,
			Revenue:   revenue,
			Formatted: format.CurrencyWhole(revenue),
		})
	}
	slices.SortStableFunc(ranked, func(a, b dto.ProductPerformance) int {
		switch {
		case a.Revenue > b.Revenue:
			return -1
		case a.Revenue < b.Revenue:
			return 1
		default:
			return strings.Compare(a.ID, b.ID)
		}
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
