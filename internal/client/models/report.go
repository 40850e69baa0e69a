package models

import "time"

// ReportStatus is the triage state of an infrastructure-issue report.
type ReportStatus string

const (
	StatusPending    ReportStatus = "pending"
	StatusInProgress ReportStatus = "in_progress"
	StatusResolved   ReportStatus = "resolved"
	StatusRejected   ReportStatus = "rejected"
)

// ValidReportStatus reports whether s is one of the statuses the backend
// accepts on a transition.
func ValidReportStatus(s ReportStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// Location is a map-selected point attached to a report.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Report is a citizen-submitted infrastructure issue.
type Report struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Status      ReportStatus `json:"status"`
	Location    Location     `json:"location"`
	PhotoURLs   []string     `json:"photoUrls"`
	Points      int          `json:"points"`
	CreatedBy   string       `json:"createdBy"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// NewReport is the submission payload for a report.
type NewReport struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	PhotoURLs   []string `json:"photoUrls,omitempty"`
}

// ReportFilter narrows dashboard listings. Zero values mean "any".
type ReportFilter struct {
	Status   ReportStatus
	Category string
}

// Stats is the aggregate the admin dashboard charts are drawn from.
type Stats struct {
	Total      int            `json:"total"`
	ByStatus   map[string]int `json:"byStatus"`
	ByCategory map[string]int `json:"byCategory"`
}
