package dto

// CreateCourseRequest is the add-course form. New offerings always open for
// enrollment unless their school year has already passed.
type CreateCourseRequest struct {
	CourseCode string  `json:"courseCode" validate:"required,notblank,max=32"`
	CourseName string  `json:"courseName" validate:"required,notblank,max=200"`
	Category   string  `json:"category" validate:"required,course_category"`
	SchoolYear string  `json:"schoolYear" validate:"required,school_year"`
	Semester   string  `json:"semester" validate:"required,semester"`
	Status     string  `json:"status" validate:"omitempty,course_status"`
	Price      float64 `json:"price" validate:"gte=0"`
}
