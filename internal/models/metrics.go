package models

import "time"

// SystemMetrics is a lightweight JSON view of the Prometheus collectors.
type SystemMetrics struct {
	RequestsTotal            uint64    `json:"requestsTotal"`
	AverageRequestDurationMs float64   `json:"averageRequestDurationMs"`
	ListViewsTotal           uint64    `json:"listViewsTotal"`
	MutationsTotal           uint64    `json:"mutationsTotal"`
	ConfirmationsResolved    uint64    `json:"confirmationsResolved"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generatedAt"`
}
