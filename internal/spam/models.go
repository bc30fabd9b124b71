package spam

import "time"

// Report is one stored spam report, as supplied by the report source.
type Report struct {
	ID          string
	PhoneNumber string
	ReporterID  string
	Description string
	CreatedAt   time.Time
}

// Filter narrows an aggregation request. All fields are optional; EndDate is
// inclusive of the whole calendar day.
type Filter struct {
	PhoneNumber string
	StartDate   *time.Time
	EndDate     *time.Time
	MinReports  *int
}

// Aggregate is the computed view for one phone number. Derived fresh per
// query and never cached across requests.
type Aggregate struct {
	PhoneNumber       string    `json:"phone_number"`
	SpamCount         int       `json:"spam_count"`
	UniqueReporters   int       `json:"unique_reporters"`
	ReportedByUsers   []string  `json:"reported_by_users"`
	LatestReportDate  time.Time `json:"latest_report_date"`
	LatestDescription string    `json:"latest_description"`
}
