// Package app assembles the admin panel services from configuration and seed
// data. The API server and the terminal client share it.
package app

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/enrollplus-admin/internal/seed"
	"github.com/noah-isme/enrollplus-admin/internal/service"
	"github.com/noah-isme/enrollplus-admin/pkg/clock"
	"github.com/noah-isme/enrollplus-admin/pkg/config"
)

// App holds every service of one running admin panel.
type App struct {
	Config        *config.Config
	Clock         clock.Clock
	Logger        *zap.Logger
	Validator     *validator.Validate
	Metrics       *service.MetricsService
	Confirmations *service.ConfirmationService
	Sessions      *service.SessionService
	Users         *service.UserService
	Courses       *service.CourseService
	Products      *service.ProductService
	Transactions  *service.TransactionService
	Dashboard     *service.DashboardService
	Exports       *service.ExportService
}

// Option adjusts how the App is assembled.
type Option func(*options)

type options struct {
	clock clock.Clock
}

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// New builds the services and seeds every table.
func New(cfg *config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	o := options{clock: clock.Real()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &App{
		Config:    cfg,
		Clock:     o.clock,
		Logger:    logger,
		Validator: service.NewValidator(),
	}
	if cfg.Metrics.Enabled {
		a.Metrics = service.NewMetricsService()
	}

	a.Confirmations = service.NewConfirmationService(a.Validator, logger.Named("confirmations"),
		service.WithConfirmationClock(o.clock),
		service.WithConfirmationTTL(cfg.Confirmations.TTL),
		service.WithConfirmationMetrics(a.Metrics))

	a.Sessions = service.NewSessionService(a.Validator, logger.Named("sessions"),
		service.WithSessionClock(o.clock),
		service.WithSessionMetrics(a.Metrics),
		service.WithSignOutConfirmation(a.Confirmations),
		service.WithDefaultProfile(seed.Profile()))

	tableOpts := []service.TableOption{
		service.WithClock(o.clock),
		service.WithMetrics(a.Metrics),
		service.WithSubmitDelay(cfg.Mutations.SubmitDelay),
		service.WithViewResetter(a.Sessions),
		service.WithConfirmations(a.Confirmations),
	}

	var err error
	if a.Users, err = service.NewUserService(seed.Users(o.clock.Now()), a.Validator, logger.Named("users"), tableOpts...); err != nil {
		return nil, err
	}
	if a.Courses, err = service.NewCourseService(seed.Courses(), a.Validator, logger.Named("courses"), tableOpts...); err != nil {
		return nil, err
	}
	if a.Products, err = service.NewProductService(seed.Products(), a.Validator, logger.Named("products"), tableOpts...); err != nil {
		return nil, err
	}
	if a.Transactions, err = service.NewTransactionService(seed.Transactions(), logger.Named("transactions"), tableOpts...); err != nil {
		return nil, err
	}

	a.Confirmations.Register(a.Users.Committers())
	a.Confirmations.Register(a.Courses.Committers())
	a.Confirmations.Register(a.Products.Committers())
	a.Confirmations.Register(a.Sessions.Committers())
	a.Sessions.RegisterTables(a.Users, a.Courses, a.Products, a.Transactions)

	a.Dashboard = service.NewDashboardService(a.Users, a.Courses, a.Products, a.Transactions,
		service.DashboardServiceConfig{ActiveSemester: cfg.Dashboard.ActiveSemester},
		o.clock, logger.Named("dashboard"))
	a.Exports = service.NewExportService(
		[]service.DatasetProvider{a.Users, a.Courses, a.Products, a.Transactions},
		service.ExportConfig{Enabled: cfg.Exports.Enabled},
		o.clock, logger.Named("exports"))

	logger.Info("admin panel assembled",
		zap.Int("users", len(a.Users.Snapshot())),
		zap.Int("courses", len(a.Courses.Snapshot())),
		zap.Int("products", len(a.Products.Snapshot())),
		zap.Int("transactions", len(a.Transactions.Snapshot())),
		zap.Duration("submit_delay", cfg.Mutations.SubmitDelay),
		zap.Duration("confirmation_ttl", cfg.Confirmations.TTL))
	return a, nil
}
