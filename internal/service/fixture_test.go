package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/enrollplus-admin/internal/models"
	"github.com/noah-isme/enrollplus-admin/internal/seed"
	"github.com/noah-isme/enrollplus-admin/pkg/clock"
)

type fixture struct {
	clock         *clock.Fake
	metrics       *MetricsService
	confirmations *ConfirmationService
	sessions      *SessionService
	users         *UserService
	courses       *CourseService
	products      *ProductService
	transactions  *TransactionService
}

func fixtureNow() time.Time {
	return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, seed.Courses(), 0)
}

func newFixtureWith(t *testing.T, courses []models.Course, delay time.Duration) *fixture {
	t.Helper()
	f := &fixture{clock: clock.NewFake(fixtureNow()), metrics: NewMetricsService()}
	logger := zap.NewNop()
	validate := NewValidator()

	f.confirmations = NewConfirmationService(validate, logger,
		WithConfirmationClock(f.clock),
		WithConfirmationMetrics(f.metrics),
		WithConfirmationTTL(5*time.Minute))
	f.sessions = NewSessionService(validate, logger,
		WithSessionClock(f.clock),
		WithSessionMetrics(f.metrics),
		WithSignOutConfirmation(f.confirmations),
		WithDefaultProfile(seed.Profile()))

	opts := []TableOption{
		WithClock(f.clock),
		WithMetrics(f.metrics),
		WithSubmitDelay(delay),
		WithConfirmations(f.confirmations),
		WithViewResetter(f.sessions),
	}
	var err error
	f.users, err = NewUserService(seed.Users(f.clock.Now()), validate, logger, opts...)
	require.NoError(t, err)
	f.courses, err = NewCourseService(courses, validate, logger, opts...)
	require.NoError(t, err)
	f.products, err = NewProductService(seed.Products(), validate, logger, opts...)
	require.NoError(t, err)
	f.transactions, err = NewTransactionService(seed.Transactions(), logger, opts...)
	require.NoError(t, err)

	f.confirmations.Register(f.users.Committers())
	f.confirmations.Register(f.courses.Committers())
	f.confirmations.Register(f.products.Committers())
	f.confirmations.Register(f.sessions.Committers())
	f.sessions.RegisterTables(f.users, f.courses, f.products, f.transactions)
	return f
}
