package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/enrollplus-admin/internal/dto"
	"github.com/noah-isme/enrollplus-admin/internal/listing"
	"github.com/noah-isme/enrollplus-admin/internal/models"
	"github.com/noah-isme/enrollplus-admin/pkg/export"
	"github.com/noah-isme/enrollplus-admin/pkg/format"
)

// UserConfig describes the users table.
func UserConfig() listing.Config[models.User] {
	return listing.Config[models.User]{
		Name: TableUsers,
		ID:   func(u models.User) string { return u.ID },
		Search: func(u models.User) string {
			return listing.SearchText(u.Name, u.Email, string(u.Role), u.ID)
		},
		Dimensions: map[string]listing.Dimension[models.User]{
			"role":   {Value: func(u models.User) string { return string(u.Role) }},
			"status": {Value: func(u models.User) string { return string(u.Status) }},
		},
		SortKeys: map[string]listing.Comparator[models.User]{
			"name":      listing.ByString(func(u models.User) string { return u.Name }),
			"email":     listing.ByString(func(u models.User) string { return u.Email }),
			"role":      listing.ByString(func(u models.User) string { return string(u.Role) }),
			"status":    listing.ByString(func(u models.User) string { return string(u.Status) }),
			"createdAt": listing.ByTime(func(u models.User) time.Time { return u.CreatedAt }),
		},
		DefaultSort: listing.Sort{Key: "name", Direction: listing.Asc},
		PageSize:    listing.DefaultPageSize,
	}
}

// UserService manages the users table.
type UserService struct {
	*table[models.User]
}

// NewUserService builds the users table from seed records.
func NewUserService(seed []models.User, validate *validator.Validate, logger *zap.Logger, opts ...TableOption) (*UserService, error) {
	cfg := UserConfig()
	store, err := listing.NewStore(cfg.ID, seed)
	if err != nil {
		return nil, err
	}
	return &UserService{table: newTable(TableUsers, store, cfg, validate, logger, opts)}, nil
}

// List returns one page of users.
func (s *UserService) List(ctx context.Context, params listing.Params) (listing.View[models.User], error) {
	return s.list(s.Snapshot(), params)
}

// Get returns a user by id.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Add validates and appends a new user after the submit delay.
func (s *UserService) Add(ctx context.Context, sessionID string, req dto.CreateUserRequest) (*models.User, error) {
	if err := s.validate(req); err != nil {
		s.metrics.RecordMutation(s.name, "add", OutcomeInvalid)
		return nil, err
	}
	status := models.UserStatusActive
	if req.Status != "" {
		status = models.UserStatus(strings.ToLower(req.Status))
	}
	user, err := s.submit(ctx, sessionID, func() (models.User, error) {
		user := models.User{
			ID:        s.nextID("USR-"),
			Name:      strings.TrimSpace(req.Name),
			Email:     strings.ToLower(strings.TrimSpace(req.Email)),
			Role:      models.UserRole(strings.ToLower(req.Role)),
			Status:    status,
			CreatedAt: s.clock.Now(),
			Avatar:    req.Avatar,
		}
		return user, s.store.Add(user)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("user added", zap.String("id", user.ID))
	return &user, nil
}

// Update changes selected fields of a user.
func (s *UserService) Update(ctx context.Context, id string, req dto.UpdateUserRequest) (*models.User, error) {
	if _, err := s.get(id); err != nil {
		return nil, err
	}
	if err := s.validate(req); err != nil {
		s.metrics.RecordMutation(s.name, "update", OutcomeInvalid)
		return nil, err
	}
	user, err := s.replace("update", id, func(current models.User) (models.User, error) {
		if req.Name != nil {
			current.Name = strings.TrimSpace(*req.Name)
		}
		if req.Email != nil {
			current.Email = strings.ToLower(strings.TrimSpace(*req.Email))
		}
		if req.Role != nil {
			current.Role = models.UserRole(strings.ToLower(*req.Role))
		}
		if req.Status != nil {
			current.Status = models.UserStatus(strings.ToLower(*req.Status))
		}
		if req.Avatar != nil {
			current.Avatar = *req.Avatar
		}
		return current, nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ToggleStatus flips active to inactive and anything else to active.
func (s *UserService) ToggleStatus(ctx context.Context, id string) (*models.User, error) {
	if _, err := s.get(id); err != nil {
		return nil, err
	}
	user, err := s.replace("toggle", id, func(current models.User) (models.User, error) {
		current.Status = current.Status.Toggled()
		return current, nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("user status toggled", zap.String("id", id), zap.String("status", string(user.Status)))
	return &user, nil
}

// RequestDelete opens a confirmation for removing a user.
func (s *UserService) RequestDelete(ctx context.Context, id string) (*models.Confirmation, error) {
	user, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return s.requestDelete(ctx, models.ConfirmDeleteUser, id, "Delete user "+user.Name+"?")
}

// Committers returns the confirmation handlers owned by the users table.
func (s *UserService) Committers() map[models.ConfirmationKind]Committer {
	return map[models.ConfirmationKind]Committer{
		models.ConfirmDeleteUser: CommitterFunc(func(ctx context.Context, c *models.Confirmation) error {
			return s.remove(c.RecordID)
		}),
	}
}

// Dataset renders every matching user for export.
func (s *UserService) Dataset(ctx context.Context, params listing.Params) (export.Dataset, error) {
	items, err := s.matching(s.Snapshot(), params)
	if err != nil {
		return export.Dataset{}, err
	}
	columns := []export.Column{
		{Key: "id", Label: "ID"},
		{Key: "name", Label: "Name"},
		{Key: "email", Label: "Email"},
		{Key: "role", Label: "Role"},
		{Key: "status", Label: "Status"},
		{Key: "createdAt", Label: "Created"},
	}
	return s.dataset("Users", columns, items, func(u models.User) []string {
		return []string{u.ID, u.Name, u.Email, string(u.Role), string(u.Status), format.ShortDate(u.CreatedAt)}
	}), nil
}

// NewView builds a per-session view of the users table.
func (s *UserService) NewView() *TableView {
	return newTableView(s.table, s.table, func(items []models.User) interface{} { return items })
}
