package report

import (
	"time"

	id "truedial/pkg/domain"
)

// Report is one spam accusation against a phone number. A reporter may flag
// a given number at most once; repeat submissions conflict.
type Report struct {
	ID          id.ReportID
	PhoneNumber string
	ReporterID  id.UserID
	Description string
	CreatedAt   time.Time
}
