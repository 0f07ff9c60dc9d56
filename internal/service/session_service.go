package service

import (
	"context"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/enrollplus-admin/internal/dto"
	"github.com/noah-isme/enrollplus-admin/internal/models"
	"github.com/noah-isme/enrollplus-admin/pkg/clock"
	appErrors "github.com/noah-isme/enrollplus-admin/pkg/errors"
)

type sessionState struct {
	session models.Session
	views   map[string]*TableView
}

// SessionService owns the signed-in profile and the per-table view state of
// each admin panel session. Teardown discards both.
type SessionService struct {
	mu        sync.Mutex
	sessions  map[string]*sessionState
	factories map[string]ViewFactory
	fallback  models.AdminProfile
	clock     clock.Clock
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	confirm   confirmationRequester
}

// SessionServiceOption configures the service.
type SessionServiceOption func(*SessionService)

// WithSessionClock overrides the time source.
func WithSessionClock(c clock.Clock) SessionServiceOption {
	return func(s *SessionService) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithSessionMetrics tracks the active session gauge.
func WithSessionMetrics(m *MetricsService) SessionServiceOption {
	return func(s *SessionService) {
		s.metrics = m
	}
}

// WithSignOutConfirmation gates sign-out behind a confirmation.
func WithSignOutConfirmation(c confirmationRequester) SessionServiceOption {
	return func(s *SessionService) {
		s.confirm = c
	}
}

// WithDefaultProfile sets the profile used when Init receives none.
func WithDefaultProfile(profile models.AdminProfile) SessionServiceOption {
	return func(s *SessionService) {
		s.fallback = profile
	}
}

// NewSessionService constructs the session manager. Tables are attached with
// RegisterTables once their services exist.
func NewSessionService(validate *validator.Validate, logger *zap.Logger, opts ...SessionServiceOption) *SessionService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &SessionService{
		sessions:  make(map[string]*sessionState),
		factories: make(map[string]ViewFactory),
		fallback:  models.AdminProfile{Name: "Admin", Role: "Administrator"},
		clock:     clock.Real(),
		validator: validate,
		logger:    logger,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// RegisterTables makes the tables available to sessions created afterwards.
func (s *SessionService) RegisterTables(factories ...ViewFactory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range factories {
		if f != nil {
			s.factories[f.Table()] = f
		}
	}
}

// Init creates a session with a fresh view of every table.
func (s *SessionService) Init(ctx context.Context, req dto.CreateSessionRequest) (*models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	profile := s.fallback
	if name := strings.TrimSpace(req.Name); name != "" {
		profile.Name = name
	}
	if email := strings.TrimSpace(req.Email); email != "" {
		profile.Email = email
	}
	if role := strings.TrimSpace(req.Role); role != "" {
		profile.Role = role
	}

	state := &sessionState{
		session: models.Session{ID: uuid.NewString(), Profile: profile, CreatedAt: s.clock.Now()},
		views:   make(map[string]*TableView),
	}

	s.mu.Lock()
	for name, factory := range s.factories {
		state.views[name] = factory.NewView()
	}
	s.sessions[state.session.ID] = state
	active := len(s.sessions)
	s.mu.Unlock()

	s.metrics.SetActiveSessions(active)
	s.logger.Info("session initialised", zap.String("session_id", state.session.ID))
	session := state.session
	return &session, nil
}

// Get returns the session profile.
func (s *SessionService) Get(ctx context.Context, id string) (*models.Session, error) {
	state, err := s.state(id)
	if err != nil {
		return nil, err
	}
	session := state.session
	return &session, nil
}

// Teardown signs the session out, discarding its profile and view state.
func (s *SessionService) Teardown(ctx context.Context, id string) error {
	s.mu.Lock()
	if _, ok := s.sessions[id]; !ok {
		s.mu.Unlock()
		return appErrors.Clone(appErrors.ErrNotFound, "session not found")
	}
	delete(s.sessions, id)
	active := len(s.sessions)
	s.mu.Unlock()

	s.metrics.SetActiveSessions(active)
	s.logger.Info("session torn down", zap.String("session_id", id))
	return nil
}

// RequestSignOut opens a sign-out confirmation. Without a confirmation
// workflow the session is torn down immediately and nil is returned.
func (s *SessionService) RequestSignOut(ctx context.Context, id string) (*models.Confirmation, error) {
	state, err := s.state(id)
	if err != nil {
		return nil, err
	}
	if s.confirm == nil {
		return nil, s.Teardown(ctx, id)
	}
	return s.confirm.Request(ctx, models.ConfirmSignOut, "sessions", id, "Sign out "+state.session.Profile.Name+"?")
}

// Committers returns the sign-out committer.
func (s *SessionService) Committers() map[models.ConfirmationKind]Committer {
	return map[models.ConfirmationKind]Committer{
		models.ConfirmSignOut: CommitterFunc(func(ctx context.Context, c *models.Confirmation) error {
			return s.Teardown(ctx, c.RecordID)
		}),
	}
}

// View renders the session's current page of a table.
func (s *SessionService) View(ctx context.Context, id, table string) (*ViewResult, error) {
	view, err := s.view(id, table)
	if err != nil {
		return nil, err
	}
	result := view.Render()
	return &result, nil
}

// ApplyView applies control events and renders the resulting page.
func (s *SessionService) ApplyView(ctx context.Context, id, table string, req dto.ViewEventRequest) (*ViewResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	view, err := s.view(id, table)
	if err != nil {
		return nil, err
	}
	if err := view.Apply(req); err != nil {
		return nil, err
	}
	result := view.Render()
	return &result, nil
}

// ResetView implements ViewResetter. Unknown sessions and tables are ignored.
func (s *SessionService) ResetView(sessionID, table string) {
	view, err := s.view(sessionID, table)
	if err != nil {
		return
	}
	view.Reset()
}

// Active reports the number of live sessions.
func (s *SessionService) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionService) state(id string) (*sessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.sessions[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
	}
	return state, nil
}

func (s *SessionService) view(id, table string) (*TableView, error) {
	state, err := s.state(id)
	if err != nil {
		return nil, err
	}
	view, ok := state.views[table]
	if !ok {
		return nil, appErrors.ErrUnknownTable
	}
	return view, nil
}
