package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/enrollplus-admin/internal/dto"
	"github.com/noah-isme/enrollplus-admin/internal/models"
	"github.com/noah-isme/enrollplus-admin/pkg/clock"
	appErrors "github.com/noah-isme/enrollplus-admin/pkg/errors"
)

// Committer performs the action behind a confirmed request.
type Committer interface {
	Commit(ctx context.Context, confirmation *models.Confirmation) error
}

// CommitterFunc allows using plain functions.
type CommitterFunc func(ctx context.Context, confirmation *models.Confirmation) error

// Commit implements Committer.
func (f CommitterFunc) Commit(ctx context.Context, confirmation *models.Confirmation) error {
	return f(ctx, confirmation)
}

// ConfirmationService runs the two-phase protocol for destructive actions:
// a request opens a PENDING confirmation, and a decision either commits it
// through the registered committer or aborts it without side effects.
type ConfirmationService struct {
	mu         sync.Mutex
	items      map[string]*models.Confirmation
	order      []string
	committers map[models.ConfirmationKind]Committer
	ttl        time.Duration
	clock      clock.Clock
	validator  *validator.Validate
	logger     *zap.Logger
	metrics    *MetricsService
}

// ConfirmationServiceOption configures the service.
type ConfirmationServiceOption func(*ConfirmationService)

// WithCommitters registers committers keyed by kind.
func WithCommitters(committers map[models.ConfirmationKind]Committer) ConfirmationServiceOption {
	return func(s *ConfirmationService) {
		for k, v := range committers {
			s.committers[k] = v
		}
	}
}

// WithConfirmationTTL sets how long a confirmation stays pending.
func WithConfirmationTTL(ttl time.Duration) ConfirmationServiceOption {
	return func(s *ConfirmationService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithConfirmationClock overrides the time source.
func WithConfirmationClock(c clock.Clock) ConfirmationServiceOption {
	return func(s *ConfirmationService) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithConfirmationMetrics records resolution outcomes.
func WithConfirmationMetrics(m *MetricsService) ConfirmationServiceOption {
	return func(s *ConfirmationService) {
		s.metrics = m
	}
}

// NewConfirmationService constructs the service with defaults.
func NewConfirmationService(validate *validator.Validate, logger *zap.Logger, opts ...ConfirmationServiceOption) *ConfirmationService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &ConfirmationService{
		items:      make(map[string]*models.Confirmation),
		committers: make(map[models.ConfirmationKind]Committer),
		ttl:        5 * time.Minute,
		clock:      clock.Real(),
		validator:  validate,
		logger:     logger,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// Register adds committers after construction. Table services and the
// session manager depend on this service, so their committers arrive late.
func (s *ConfirmationService) Register(committers map[models.ConfirmationKind]Committer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range committers {
		s.committers[k] = v
	}
}

// Request opens a pending confirmation.
func (s *ConfirmationService) Request(ctx context.Context, kind models.ConfirmationKind, table, recordID, summary string) (*models.Confirmation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.committers[kind]; !ok {
		return nil, appErrors.Clone(appErrors.ErrInternal, fmt.Sprintf("no committer registered for %s", kind))
	}
	now := s.clock.Now()
	confirmation := &models.Confirmation{
		ID:        uuid.NewString(),
		Kind:      kind,
		Table:     table,
		RecordID:  recordID,
		Summary:   summary,
		Status:    models.ConfirmationPending,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	s.items[confirmation.ID] = confirmation
	s.order = append(s.order, confirmation.ID)
	s.logger.Info("confirmation requested",
		zap.String("id", confirmation.ID),
		zap.String("kind", string(kind)),
		zap.String("record_id", recordID))
	copy := *confirmation
	return &copy, nil
}

// Get returns a confirmation, aborting it first if it has expired.
func (s *ConfirmationService) Get(ctx context.Context, id string) (*models.Confirmation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	confirmation, ok := s.items[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "confirmation not found")
	}
	s.expireLocked(confirmation)
	copy := *confirmation
	return &copy, nil
}

// List returns confirmations in request order, optionally filtered by status.
func (s *ConfirmationService) List(ctx context.Context, status models.ConfirmationStatus) []models.Confirmation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Confirmation, 0, len(s.order))
	for _, id := range s.order {
		confirmation := s.items[id]
		s.expireLocked(confirmation)
		if status != "" && confirmation.Status != status {
			continue
		}
		out = append(out, *confirmation)
	}
	return out
}

// Resolve applies a decision. Confirm runs the committer and marks the request
// COMMITTED; cancel marks it ABORTED with no side effects. A committer failure
// aborts the request and returns the failure.
func (s *ConfirmationService) Resolve(ctx context.Context, id string, req dto.ResolveConfirmationRequest) (*models.Confirmation, error) {
	req.Decision = models.ConfirmationDecision(strings.ToLower(strings.TrimSpace(string(req.Decision))))
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	confirmation, ok := s.items[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "confirmation not found")
	}
	s.expireLocked(confirmation)
	if confirmation.Status != models.ConfirmationPending {
		return nil, appErrors.Clone(appErrors.ErrNotPending, fmt.Sprintf("confirmation already %s", strings.ToLower(string(confirmation.Status))))
	}

	if req.Decision == models.DecisionCancel {
		s.finishLocked(confirmation, models.ConfirmationAborted, req.Note)
		copy := *confirmation
		return &copy, nil
	}

	committer := s.committers[confirmation.Kind]
	if err := committer.Commit(ctx, confirmation); err != nil {
		s.finishLocked(confirmation, models.ConfirmationAborted, err.Error())
		s.logger.Warn("confirmation commit failed",
			zap.String("id", confirmation.ID),
			zap.String("kind", string(confirmation.Kind)),
			zap.Error(err))
		return nil, err
	}
	s.finishLocked(confirmation, models.ConfirmationCommitted, req.Note)
	copy := *confirmation
	return &copy, nil
}

// Pending reports how many confirmations still await a decision.
func (s *ConfirmationService) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, confirmation := range s.items {
		s.expireLocked(confirmation)
		if confirmation.Status == models.ConfirmationPending {
			count++
		}
	}
	return count
}

// Kinds returns the registered kinds in sorted order.
func (s *ConfirmationService) Kinds() []models.ConfirmationKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	kinds := make([]models.ConfirmationKind, 0, len(s.committers))
	for k := range s.committers {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// expireLocked aborts a pending confirmation whose dialog has timed out.
func (s *ConfirmationService) expireLocked(confirmation *models.Confirmation) {
	if confirmation.Status != models.ConfirmationPending {
		return
	}
	if s.clock.Now().Before(confirmation.ExpiresAt) {
		return
	}
	s.finishLocked(confirmation, models.ConfirmationAborted, "expired")
}

func (s *ConfirmationService) finishLocked(confirmation *models.Confirmation, status models.ConfirmationStatus, note string) {
	now := s.clock.Now()
	confirmation.Status = status
	confirmation.ResolvedAt = &now
	confirmation.Note = strings.TrimSpace(note)
	s.metrics.RecordConfirmation(confirmation.Kind, status)
	s.logger.Info("confirmation resolved",
		zap.String("id", confirmation.ID),
		zap.String("kind", string(confirmation.Kind)),
		zap.String("status", string(status)))
}
