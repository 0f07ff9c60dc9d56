package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/enrollplus-admin/internal/dto"
	"github.com/noah-isme/enrollplus-admin/internal/listing"
	"github.com/noah-isme/enrollplus-admin/internal/models"
	"github.com/noah-isme/enrollplus-admin/pkg/clock"
	"github.com/noah-isme/enrollplus-admin/pkg/export"
	"github.com/noah-isme/enrollplus-admin/pkg/format"
)

// ErrReopenEnrollment is raised by the course store when a replacement would
// reopen a closed course.
var ErrReopenEnrollment = errors.New("enrollment cannot be reopened")

// CourseConfig describes the courses table. Enrollment buckets are derived
// against the clock's current year.
func CourseConfig(c clock.Clock) listing.Config[models.Course] {
	state := func(course models.Course) models.EnrollmentState {
		return course.Enrollment(c.Now().Year())
	}
	bucket := func(want models.EnrollmentState) func(models.Course) bool {
		return func(course models.Course) bool { return state(course) == want }
	}
	return listing.Config[models.Course]{
		Name: TableCourses,
		ID:   func(course models.Course) string { return course.ID },
		Search: func(course models.Course) string {
			return listing.SearchText(course.CourseCode, course.CourseName, course.Category)
		},
		Dimensions: map[string]listing.Dimension[models.Course]{
			"filter": {
				Buckets: map[string]func(models.Course) bool{
					string(models.EnrollmentOpen):    bucket(models.EnrollmentOpen),
					string(models.EnrollmentClosed):  bucket(models.EnrollmentClosed),
					string(models.EnrollmentExpired): bucket(models.EnrollmentExpired),
				},
				Value: func(course models.Course) string { return course.Category },
			},
		},
		SortKeys: map[string]listing.Comparator[models.Course]{
			"courseCode": listing.ByString(func(course models.Course) string { return course.CourseCode }),
			"schoolYear": listing.ByString(func(course models.Course) string { return course.SchoolYear }),
			"enrollment": listing.ByRank(func(course models.Course) int { return state(course).Rank() }),
			"price":      listing.ByNumber(func(course models.Course) float64 { return course.Price }),
			"createdAt":  listing.ByTime(func(course models.Course) time.Time { return course.CreatedAt }),
		},
		PageSize: listing.DefaultPageSize,
	}
}

// oneWayClose rejects any replacement that turns enrollment back on.
func oneWayClose(old, next models.Course) error {
	if !old.IsEnrollmentOpen && next.IsEnrollmentOpen {
		return ErrReopenEnrollment
	}
	return nil
}

// CourseService manages course offerings. Enrollment only ever closes.
type CourseService struct {
	*table[models.Course]
}

// NewCourseService builds the courses table and force-closes offerings whose
// school year has already started in a past year.
func NewCourseService(seed []models.Course, validate *validator.Validate, logger *zap.Logger, opts ...TableOption) (*CourseService, error) {
	deps := tableDeps{clock: clock.Real()}
	for _, opt := range opts {
		if opt != nil {
			opt(&deps)
		}
	}
	cfg := CourseConfig(deps.clock)
	store, err := listing.NewStore(cfg.ID, seed, listing.WithGuard(oneWayClose))
	if err != nil {
		return nil, err
	}
	svc := &CourseService{table: newTable(TableCourses, store, cfg, validate, logger, opts)}
	svc.sweep()
	return svc, nil
}

// Snapshot implements listing.Source after closing newly expired offerings.
func (s *CourseService) Snapshot() []models.Course {
	s.sweep()
	return s.store.Snapshot()
}

// sweep force-closes open courses that have expired.
func (s *CourseService) sweep() {
	year := s.clock.Now().Year()
	for _, course := range s.store.Snapshot() {
		if !course.IsEnrollmentOpen || !course.IsExpired(year) {
			continue
		}
		if _, err := s.closeNow(course.ID, "expire"); err != nil {
			s.logger.Warn("failed to close expired course", zap.String("id", course.ID), zap.Error(err))
			continue
		}
		s.logger.Info("enrollment closed for expired school year",
			zap.String("id", course.ID),
			zap.String("school_year", course.SchoolYear))
	}
}

func (s *CourseService) closeNow(id, kind string) (models.Course, error) {
	now := s.clock.Now()
	return s.replace(kind, id, func(current models.Course) (models.Course, error) {
		if !current.IsEnrollmentOpen {
			return current, errUnchanged
		}
		current.IsEnrollmentOpen = false
		current.UpdatedAt = now
		return current, nil
	})
}

// Annotate attaches the derived enrollment state to each course.
func (s *CourseService) Annotate(courses []models.Course) []models.CourseView {
	year := s.clock.Now().Year()
	out := make([]models.CourseView, len(courses))
	for i, course := range courses {
		out[i] = models.CourseView{Course: course, Enrollment: course.Enrollment(year)}
	}
	return out
}

// List returns one page of courses.
func (s *CourseService) List(ctx context.Context, params listing.Params) (listing.View[models.Course], error) {
	return s.list(s.Snapshot(), params)
}

// Get returns a course by id.
func (s *CourseService) Get(ctx context.Context, id string) (*models.CourseView, error) {
	s.sweep()
	course, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return &s.Annotate([]models.Course{course})[0], nil
}

// Add validates and appends a new offering. It opens for enrollment unless its
// school year has already passed, in which case it is closed immediately.
func (s *CourseService) Add(ctx context.Context, sessionID string, req dto.CreateCourseRequest) (*models.CourseView, error) {
	if err := s.validate(req); err != nil {
		s.metrics.RecordMutation(s.name, "add", OutcomeInvalid)
		return nil, err
	}
	s.sweep()
	status := models.CourseStatusActive
	if req.Status != "" {
		status = models.CourseStatus(req.Status)
	}
	course, err := s.submit(ctx, sessionID, func() (models.Course, error) {
		now := s.clock.Now()
		course := models.Course{
			ID:               s.nextID("OFFER-"),
			CourseCode:       strings.TrimSpace(req.CourseCode),
			CourseName:       strings.TrimSpace(req.CourseName),
			Category:         req.Category,
			SchoolYear:       req.SchoolYear,
			Semester:         req.Semester,
			Status:           status,
			IsEnrollmentOpen: true,
			Price:            req.Price,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if course.IsExpired(now.Year()) {
			course.IsEnrollmentOpen = false
		}
		return course, s.store.Add(course)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("course added", zap.String("id", course.ID), zap.Bool("enrollment_open", course.IsEnrollmentOpen))
	return &s.Annotate([]models.Course{course})[0], nil
}

// RequestClose closes enrollment for a course. Closed courses are left
// unchanged, expired courses close immediately, and open courses require
// confirmation.
func (s *CourseService) RequestClose(ctx context.Context, id string) (*dto.CloseCourseResponse, error) {
	s.sweep()
	course, err := s.get(id)
	if err != nil {
		return nil, err
	}
	switch course.Enrollment(s.clock.Now().Year()) {
	case models.EnrollmentClosed:
		s.metrics.RecordMutation(s.name, "close", OutcomeNoop)
		view := s.Annotate([]models.Course{course})[0]
		return &dto.CloseCourseResponse{Outcome: dto.CloseUnchanged, Course: &view}, nil
	case models.EnrollmentExpired:
		closed, err := s.closeNow(id, "close")
		if err != nil {
			return nil, err
		}
		view := s.Annotate([]models.Course{closed})[0]
		return &dto.CloseCourseResponse{Outcome: dto.CloseClosed, Course: &view}, nil
	}
	if s.confirmations == nil {
		closed, err := s.closeNow(id, "close")
		if err != nil {
			return nil, err
		}
		view := s.Annotate([]models.Course{closed})[0]
		return &dto.CloseCourseResponse{Outcome: dto.CloseClosed, Course: &view}, nil
	}
	confirmation, err := s.confirmations.Request(ctx, models.ConfirmCloseEnrollment, s.name, id,
		"Close enrollment for "+course.CourseCode+"? This cannot be undone.")
	if err != nil {
		return nil, err
	}
	s.metrics.RecordMutation(s.name, "close", OutcomePending)
	return &dto.CloseCourseResponse{Outcome: dto.ClosePending, Confirmation: confirmation}, nil
}

// RequestDelete opens a confirmation for removing a course.
func (s *CourseService) RequestDelete(ctx context.Context, id string) (*models.Confirmation, error) {
	s.sweep()
	course, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return s.requestDelete(ctx, models.ConfirmDeleteCourse, id, "Delete course "+course.CourseCode+"?")
}

// Committers returns the confirmation handlers owned by the courses table.
func (s *CourseService) Committers() map[models.ConfirmationKind]Committer {
	return map[models.ConfirmationKind]Committer{
		models.ConfirmDeleteCourse: CommitterFunc(func(ctx context.Context, c *models.Confirmation) error {
			return s.remove(c.RecordID)
		}),
		models.ConfirmCloseEnrollment: CommitterFunc(func(ctx context.Context, c *models.Confirmation) error {
			s.sweep()
			if _, err := s.get(c.RecordID); err != nil {
				return err
			}
			_, err := s.closeNow(c.RecordID, "close")
			return err
		}),
	}
}

// Dataset renders every matching course for export.
func (s *CourseService) Dataset(ctx context.Context, params listing.Params) (export.Dataset, error) {
	items, err := s.matching(s.Snapshot(), params)
	if err != nil {
		return export.Dataset{}, err
	}
	year := s.clock.Now().Year()
	columns := []export.Column{
		{Key: "courseCode", Label: "Code"},
		{Key: "courseName", Label: "Course"},
		{Key: "category", Label: "Category"},
		{Key: "schoolYear", Label: "School Year"},
		{Key: "semester", Label: "Semester"},
		{Key: "enrollment", Label: "Enrollment"},
		{Key: "price", Label: "Price"},
		{Key: "updatedAt", Label: "Updated"},
	}
	return s.dataset("Courses", columns, items, func(c models.Course) []string {
		return []string{
			c.CourseCode,
			c.CourseName,
			c.Category,
			c.SchoolYear,
			c.Semester,
			string(c.Enrollment(year)),
			format.Currency(c.Price),
			format.Date(c.UpdatedAt),
		}
	}), nil
}

// NewView builds a per-session view of the courses table.
func (s *CourseService) NewView() *TableView {
	return newTableView(s.table, s, func(items []models.Course) interface{} { return s.Annotate(items) })
}
