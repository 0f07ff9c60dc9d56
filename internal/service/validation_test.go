package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/enrollplus-admin/internal/dto"
	appErrors "github.com/noah-isme/enrollplus-admin/pkg/errors"
)

func TestValidSchoolYear(t *testing.T) {
	assert.True(t, ValidSchoolYear("2026-2027"))
	assert.False(t, ValidSchoolYear("2026-2028"))
	assert.False(t, ValidSchoolYear("2026/2027"))
	assert.False(t, ValidSchoolYear("26-27"))
	assert.False(t, ValidSchoolYear("abcd-abce"))
}

func TestValidationErrorCarriesFieldDetails(t *testing.T) {
	v := NewValidator()
	err := v.Struct(dto.CreateCourseRequest{
		CourseCode: "",
		CourseName: "Bachelor of Arts",
		Category:   "Kindergarten",
		SchoolYear: "2026",
		Semester:   "3rd",
		Price:      -1,
	})
	require.Error(t, err)

	appErr := appErrors.FromError(validationError(err))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, "is required", appErr.Details["courseCode"])
	assert.Contains(t, appErr.Details, "category")
	assert.Contains(t, appErr.Details, "schoolYear")
	assert.Contains(t, appErr.Details, "semester")
	assert.Equal(t, "must be 0 or more", appErr.Details["price"])
	assert.NotContains(t, appErr.Details, "courseName")
}

func TestRoleRuleIsCaseInsensitive(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Struct(dto.CreateUserRequest{Name: "Ana", Email: "ana@example.com", Role: "Manager"}))
	assert.Error(t, v.Struct(dto.CreateUserRequest{Name: "Ana", Email: "ana@example.com", Role: "owner"}))
}
