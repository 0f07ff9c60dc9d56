package service

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/noah-isme/enrollplus-admin/internal/models"
	appErrors "github.com/noah-isme/enrollplus-admin/pkg/errors"
)

// NewValidator returns a validator with the admin panel's custom rules.
func NewValidator() *validator.Validate {
	v := validator.New()
	registerRules(v)
	return v
}

func registerRules(v *validator.Validate) {
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("school_year", func(fl validator.FieldLevel) bool {
		return ValidSchoolYear(fl.Field().String())
	})
	_ = v.RegisterValidation("semester", func(fl validator.FieldLevel) bool {
		return slices.Contains(models.Semesters, fl.Field().String())
	})
	_ = v.RegisterValidation("course_category", func(fl validator.FieldLevel) bool {
		return slices.Contains(models.CourseCategories, fl.Field().String())
	})
	_ = v.RegisterValidation("course_status", func(fl validator.FieldLevel) bool {
		switch models.CourseStatus(fl.Field().String()) {
		case models.CourseStatusActive, models.CourseStatusInactive, models.CourseStatusPending, models.CourseStatusArchived:
			return true
		}
		return false
	})
	_ = v.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		return slices.Contains(models.UserRoles, models.UserRole(strings.ToLower(fl.Field().String())))
	})
	_ = v.RegisterValidation("user_status", func(fl validator.FieldLevel) bool {
		return slices.Contains(models.UserStatuses, models.UserStatus(strings.ToLower(fl.Field().String())))
	})
}

// ValidSchoolYear accepts "YYYY-YYYY" where the second year follows the first.
func ValidSchoolYear(value string) bool {
	if len(value) != 9 || value[4] != '-' {
		return false
	}
	start, ok := models.StartYear(value)
	if !ok {
		return false
	}
	end, ok := models.StartYear(value[5:])
	return ok && end == start+1
}

// validationError converts validator output into a VALIDATION_ERROR with one
// message per field.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	details := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = fieldMessage(fe)
	}
	return appErrors.WithDetails(appErrors.Clone(appErrors.ErrValidation, "invalid payload"), details)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "gte":
		return fmt.Sprintf("must be %s or more", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return "must be one of: " + fe.Param()
	case "school_year":
		return "must look like 2026-2027"
	case "semester":
		return "must be one of: " + strings.Join(models.Semesters, ", ")
	case "course_category":
		return "must be a known course category"
	case "course_status":
		return "must be active, inactive, pending or archived"
	case "user_role":
		return "must be admin, manager, staff or customer"
	case "user_status":
		return "must be active, inactive or suspended"
	default:
		return "is invalid"
	}
}

// fieldError builds a VALIDATION_ERROR for a single field.
func fieldError(field, message string) error {
	return appErrors.WithDetails(appErrors.Clone(appErrors.ErrValidation, "invalid "+field), map[string]string{field: message})
}
