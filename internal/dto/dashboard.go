package dto

import "github.com/noah-isme/enrollplus-admin/internal/models"

// DashboardResponse is the overview page payload.
type DashboardResponse struct {
	Stats             StatCards                `json:"stats"`
	Transactions      models.TransactionTotals `json:"transactions"`
	CourseCategories  []DistributionBin        `json:"courseCategories"`
	ProductCategories []DistributionBin        `json:"productCategories"`
	UserStatuses      []DistributionBin        `json:"userStatuses"`
	EnrollmentStates  []DistributionBin        `json:"enrollmentStates"`
	TopProducts       []ProductPerformance     `json:"topProducts"`
	FormattedIncome   string                   `json:"formattedIncome"`
	GeneratedAt       string                   `json:"generatedAt"`
}

// StatCards are the four headline numbers.
type StatCards struct {
	Users           int     `json:"users"`
	Courses         int     `json:"courses"`
	OpenEnrollments int     `json:"openEnrollments"`
	ActiveSemester  string  `json:"activeSemester"`
	Income          float64 `json:"income"`
}

// DistributionBin counts records sharing a label.
type DistributionBin struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ProductPerformance ranks products by revenue.
type ProductPerformance struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Sales     int     `json:"sales"`
	Revenue   float64 `json:"revenue"`
	Formatted string  `json:"formatted"`
}
