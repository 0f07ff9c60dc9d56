package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/enrollplus-admin/internal/dto"
	"github.com/noah-isme/enrollplus-admin/internal/listing"
	"github.com/noah-isme/enrollplus-admin/internal/models"
	"github.com/noah-isme/enrollplus-admin/internal/seed"
	"github.com/noah-isme/enrollplus-admin/pkg/clock"
	appErrors "github.com/noah-isme/enrollplus-admin/pkg/errors"
)

func course(id, code, schoolYear string, open bool) models.Course {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return models.Course{
		ID:               id,
		CourseCode:       code,
		CourseName:       code + " Program",
		Category:         models.CategoryBachelor,
		SchoolYear:       schoolYear,
		Semester:         "1st",
		Status:           models.CourseStatusActive,
		IsEnrollmentOpen: open,
		CreatedAt:        created,
		UpdatedAt:        created,
	}
}

func validCourseRequest(schoolYear string) dto.CreateCourseRequest {
	return dto.CreateCourseRequest{
		CourseCode: "BSA",
		CourseName: "Bachelor of Science in Accountancy",
		Category:   models.CategoryBachelor,
		SchoolYear: schoolYear,
		Semester:   "1st",
		Price:      21000,
	}
}

func TestCourseServiceForceClosesExpiredOnInit(t *testing.T) {
	f := newFixtureWith(t, []models.Course{
		course("C-1", "OLD", "2024-2025", true),
		course("C-2", "NEW", "2026-2027", true),
	}, 0)

	old, ok := f.courses.store.Get("C-1")
	require.True(t, ok)
	assert.False(t, old.IsEnrollmentOpen)
	assert.Equal(t, f.clock.Now(), old.UpdatedAt)

	current, _ := f.courses.store.Get("C-2")
	assert.True(t, current.IsEnrollmentOpen)
}

func TestCourseServiceSweepsWhenYearRollsOver(t *testing.T) {
	f := newFixtureWith(t, []models.Course{course("C-1", "BSCS", "2026-2027", true)}, 0)
	f.clock.Set(time.Date(2027, 1, 2, 0, 0, 0, 0, time.UTC))

	got, err := f.courses.Get(context.Background(), "C-1")
	require.NoError(t, err)
	assert.False(t, got.IsEnrollmentOpen)
	assert.Equal(t, models.EnrollmentExpired, got.Enrollment)
}

func TestCourseServiceAddExpiredSchoolYearIsClosed(t *testing.T) {
	f := newFixture(t)
	got, err := f.courses.Add(context.Background(), "", validCourseRequest("2020-2021"))
	require.NoError(t, err)
	assert.False(t, got.IsEnrollmentOpen)
	assert.Equal(t, models.EnrollmentExpired, got.Enrollment)

	fresh, err := f.courses.Add(context.Background(), "", validCourseRequest("2026-2027"))
	require.NoError(t, err)
	assert.True(t, fresh.IsEnrollmentOpen)
	assert.Equal(t, models.EnrollmentOpen, fresh.Enrollment)
	assert.Equal(t, models.CourseStatusActive, fresh.Status)
}

func TestCourseServiceAddValidation(t *testing.T) {
	f := newFixture(t)
	req := validCourseRequest("2026-2028")
	req.Price = -5
	_, err := f.courses.Add(context.Background(), "", req)
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Details, "schoolYear")
	assert.Contains(t, appErr.Details, "price")
}

func TestCourseServiceAddRejectsBlankIdentity(t *testing.T) {
	f := newFixture(t)
	before := f.courses.store.Len()
	req := validCourseRequest("2026-2027")
	req.CourseCode = "   "
	req.CourseName = "\t"
	_, err := f.courses.Add(context.Background(), "", req)
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, "is required", appErr.Details["courseCode"])
	assert.Equal(t, "is required", appErr.Details["courseName"])
	assert.Equal(t, before, f.courses.store.Len())
}

func TestCourseServiceCloseOpenRequiresConfirmation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.courses.RequestClose(ctx, "OFFER-001")
	require.NoError(t, err)
	require.Equal(t, dto.ClosePending, resp.Outcome)
	require.NotNil(t, resp.Confirmation)
	assert.Equal(t, models.ConfirmCloseEnrollment, resp.Confirmation.Kind)

	still, _ := f.courses.store.Get("OFFER-001")
	assert.True(t, still.IsEnrollmentOpen)

	f.clock.Advance(time.Minute)
	_, err = f.confirmations.Resolve(ctx, resp.Confirmation.ID, dto.ResolveConfirmationRequest{Decision: models.DecisionConfirm})
	require.NoError(t, err)

	closed, _ := f.courses.store.Get("OFFER-001")
	assert.False(t, closed.IsEnrollmentOpen)
	assert.Equal(t, f.clock.Now(), closed.UpdatedAt)
}

func TestCourseServiceCloseIsOneWay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		resp, err := f.courses.RequestClose(ctx, "OFFER-002")
		require.NoError(t, err)
		assert.Equal(t, dto.CloseUnchanged, resp.Outcome)
		assert.False(t, resp.Course.IsEnrollmentOpen)
	}

	resp, err := f.courses.RequestClose(ctx, "OFFER-003")
	require.NoError(t, err)
	_, err = f.confirmations.Resolve(ctx, resp.Confirmation.ID, dto.ResolveConfirmationRequest{Decision: models.DecisionConfirm})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		resp, err := f.courses.RequestClose(ctx, "OFFER-003")
		require.NoError(t, err)
		assert.Equal(t, dto.CloseUnchanged, resp.Outcome)
		assert.False(t, resp.Course.IsEnrollmentOpen)
	}
}

func TestCourseServiceCloseCommitRechecksState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.courses.RequestClose(ctx, "OFFER-001")
	require.NoError(t, err)
	second, err := f.courses.RequestClose(ctx, "OFFER-001")
	require.NoError(t, err)

	_, err = f.confirmations.Resolve(ctx, first.Confirmation.ID, dto.ResolveConfirmationRequest{Decision: models.DecisionConfirm})
	require.NoError(t, err)
	closedAt, _ := f.courses.store.Get("OFFER-001")

	f.clock.Advance(time.Minute)
	resolved, err := f.confirmations.Resolve(ctx, second.Confirmation.ID, dto.ResolveConfirmationRequest{Decision: models.DecisionConfirm})
	require.NoError(t, err)
	assert.Equal(t, models.ConfirmationCommitted, resolved.Status)

	again, _ := f.courses.store.Get("OFFER-001")
	assert.False(t, again.IsEnrollmentOpen)
	assert.Equal(t, closedAt.UpdatedAt, again.UpdatedAt, "closing a closed course changes nothing")
}

func TestCourseServiceCloseExpiredIsCountedAsNoop(t *testing.T) {
	f := newFixtureWith(t, []models.Course{course("C-1", "OLD", "2024-2025", true)}, 0)
	closes := func(outcome string) float64 {
		return testutil.ToFloat64(f.metrics.mutations.WithLabelValues(TableCourses, "close", outcome))
	}
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.mutations.WithLabelValues(TableCourses, "expire", OutcomeSuccess)))

	got, err := f.courses.RequestClose(context.Background(), "C-1")
	require.NoError(t, err)
	assert.Equal(t, dto.CloseClosed, got.Outcome)
	assert.Equal(t, models.EnrollmentExpired, got.Course.Enrollment)
	assert.Equal(t, 1.0, closes(OutcomeNoop))
	assert.Zero(t, closes(OutcomeSuccess))
}

func TestCourseStoreRejectsReopen(t *testing.T) {
	f := newFixture(t)
	_, err := f.courses.replace("reopen", "OFFER-002", func(current models.Course) (models.Course, error) {
		current.IsEnrollmentOpen = true
		return current, nil
	})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvariant.Code, appErr.Code)
	assert.ErrorIs(t, err, ErrReopenEnrollment)

	got, _ := f.courses.store.Get("OFFER-002")
	assert.False(t, got.IsEnrollmentOpen)
}

func TestCourseStoreReopenPanicsInDevelopment(t *testing.T) {
	logger, err := zap.NewDevelopment()
	require.NoError(t, err)
	svc, err := NewCourseService(seed.Courses(), nil, logger, WithClock(clock.NewFake(fixtureNow())))
	require.NoError(t, err)

	assert.Panics(t, func() {
		_, _ = svc.replace("reopen", "OFFER-002", func(current models.Course) (models.Course, error) {
			current.IsEnrollmentOpen = true
			return current, nil
		})
	})
}

func TestCourseServiceFilterBucketsAreExclusive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	total := 0
	for _, bucket := range []string{"open", "closed", "expired"} {
		view, err := f.courses.List(ctx, listing.Params{Filters: map[string]string{"filter": bucket}, Page: 1, PageSize: 50})
		require.NoError(t, err)
		total += view.TotalItems
		for _, c := range f.courses.Annotate(view.Items) {
			assert.Equal(t, models.EnrollmentState(bucket), c.Enrollment)
		}
	}
	assert.Equal(t, f.courses.store.Len(), total)
}

func TestCourseServiceSearchIsCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	view, err := f.courses.List(context.Background(), listing.Params{Query: "STEM strand", Page: 1})
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "STEM", view.Items[0].CourseCode)
}

func TestCourseServiceSortByEnrollmentRank(t *testing.T) {
	f := newFixture(t)
	view, err := f.courses.List(context.Background(), listing.Params{
		Sort:     listing.Sort{Key: "enrollment", Direction: listing.Desc},
		Page:     1,
		PageSize: 50,
	})
	require.NoError(t, err)
	annotated := f.courses.Annotate(view.Items)
	for i := 0; i+1 < len(annotated); i++ {
		assert.GreaterOrEqual(t, annotated[i].Enrollment.Rank(), annotated[i+1].Enrollment.Rank())
	}
	assert.Equal(t, models.EnrollmentOpen, annotated[0].Enrollment)
}

func TestCourseServiceDeleteLastItemReclampsSessionView(t *testing.T) {
	courses := make([]models.Course, 0, 21)
	for i := 1; i <= 21; i++ {
		courses = append(courses, course(
			"C-"+string(rune('A'+i-1)),
			"CODE"+string(rune('A'+i-1)),
			"2026-2027",
			true,
		))
	}
	f := newFixtureWith(t, courses, 0)
	ctx := context.Background()

	session, err := f.sessions.Init(ctx, dto.CreateSessionRequest{})
	require.NoError(t, err)
	last := 999
	result, err := f.sessions.ApplyView(ctx, session.ID, TableCourses, dto.ViewEventRequest{Page: &last})
	require.NoError(t, err)
	require.Equal(t, 3, result.Window.CurrentPage)

	confirmation, err := f.courses.RequestDelete(ctx, "C-U")
	require.NoError(t, err)
	_, err = f.confirmations.Resolve(ctx, confirmation.ID, dto.ResolveConfirmationRequest{Decision: models.DecisionConfirm})
	require.NoError(t, err)

	result, err = f.sessions.View(ctx, session.ID, TableCourses)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Window.CurrentPage)
	assert.Equal(t, 2, result.Window.TotalPages)
}
