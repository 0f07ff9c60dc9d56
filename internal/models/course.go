package models

import (
	"strconv"
	"time"
)

// Course categories offered by the school.
const (
	CategorySeniorHigh  = "Senior High"
	CategoryDiploma     = "Diploma and Certificate"
	CategoryBachelor    = "Bachelor Degree"
	CategoryMaster      = "Master Degree"
	CategoryDoctorate   = "Doctorate"
	CategoryCertificate = "Certificate Program"
)

// CourseCategories lists every category in display order.
var CourseCategories = []string{
	CategorySeniorHigh,
	CategoryDiploma,
	CategoryBachelor,
	CategoryMaster,
	CategoryDoctorate,
	CategoryCertificate,
}

// Semesters lists the accepted semester labels.
var Semesters = []string{"1st", "2nd", "Summer", "Special"}

// CourseStatus is the administrative state of an offering.
type CourseStatus string

const (
	CourseStatusActive   CourseStatus = "active"
	CourseStatusInactive CourseStatus = "inactive"
	CourseStatusPending  CourseStatus = "pending"
	CourseStatusArchived CourseStatus = "archived"
)

// EnrollmentState is derived from a course and the current year. The three
// states are mutually exclusive.
type EnrollmentState string

const (
	EnrollmentOpen    EnrollmentState = "open"
	EnrollmentClosed  EnrollmentState = "closed"
	EnrollmentExpired EnrollmentState = "expired"
)

// Rank orders enrollment states for sorting: expired, closed, open.
func (s EnrollmentState) Rank() int {
	switch s {
	case EnrollmentOpen:
		return 2
	case EnrollmentClosed:
		return 1
	default:
		return 0
	}
}

// Course is a course offering for one school year and semester.
type Course struct {
	ID               string       `json:"id"`
	CourseCode       string       `json:"courseCode"`
	CourseName       string       `json:"courseName"`
	Category         string       `json:"category"`
	SchoolYear       string       `json:"schoolYear"`
	Semester         string       `json:"semester"`
	Status           CourseStatus `json:"status"`
	IsEnrollmentOpen bool         `json:"isEnrollmentOpen"`
	Price            float64      `json:"price"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

// StartYear parses the first year of a "YYYY-YYYY" school year.
func StartYear(schoolYear string) (int, bool) {
	if len(schoolYear) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(schoolYear[:4])
	if err != nil {
		return 0, false
	}
	return year, true
}

// IsExpired reports whether the school year started before currentYear.
func (c Course) IsExpired(currentYear int) bool {
	start, ok := StartYear(c.SchoolYear)
	return ok && currentYear > start
}

// Enrollment derives the enrollment state for currentYear.
func (c Course) Enrollment(currentYear int) EnrollmentState {
	switch {
	case c.IsExpired(currentYear):
		return EnrollmentExpired
	case c.IsEnrollmentOpen:
		return EnrollmentOpen
	default:
		return EnrollmentClosed
	}
}

// CourseView is a course annotated with its derived enrollment state.
type CourseView struct {
	Course
	Enrollment EnrollmentState `json:"enrollment"`
}
