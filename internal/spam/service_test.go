package spam

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"truedial/internal/phone"
	dErrors "truedial/pkg/domain-errors"
)

// fakeSource filters in memory the way the store-level query would.
type fakeSource struct {
	reports []Report
	calls   int
}

func (f *fakeSource) ListReports(_ context.Context, phoneNumber string, start, end *time.Time) ([]Report, error) {
	f.calls++
	var out []Report
	for _, r := range f.reports {
		if phoneNumber != "" && r.PhoneNumber != phoneNumber {
			continue
		}
		if start != nil && r.CreatedAt.Before(*start) {
			continue
		}
		if end != nil && r.CreatedAt.After(*end) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type AggregatorSuite struct {
	suite.Suite
	source *fakeSource
	svc    *Service
}

func TestAggregatorSuite(t *testing.T) {
	suite.Run(t, new(AggregatorSuite))
}

func (s *AggregatorSuite) SetupTest() {
	day := func(d int) time.Time {
		return time.Date(2026, time.August, d, 12, 0, 0, 0, time.UTC)
	}
	s.source = &fakeSource{reports: []Report{
		{ID: "r1", PhoneNumber: "+911111111111", ReporterID: "u-a", Description: "robocall", CreatedAt: day(1)},
		{ID: "r2", PhoneNumber: "+911111111111", ReporterID: "u-b", Description: "scam callback", CreatedAt: day(3)},
		{ID: "r3", PhoneNumber: "+911111111111", ReporterID: "u-a", Description: "again", CreatedAt: day(2)},
		{ID: "r4", PhoneNumber: "+912222222222", ReporterID: "u-c", Description: "lottery fraud", CreatedAt: day(4)},
	}}

	var err error
	s.svc, err = New(s.source, phone.NewNormalizer("IN"))
	s.Require().NoError(err)
}

func (s *AggregatorSuite) TestGroupsAndOrders() {
	got, err := s.svc.Aggregate(context.Background(), Filter{})
	s.Require().NoError(err)
	s.Require().Len(got, 2)

	first := got[0]
	s.Equal("+911111111111", first.PhoneNumber)
	s.Equal(3, first.SpamCount)
	s.Equal(2, first.UniqueReporters)
	s.ElementsMatch([]string{"u-a", "u-b"}, first.ReportedByUsers)
	s.Equal("scam callback", first.LatestDescription)
	s.Equal(time.Date(2026, time.August, 3, 12, 0, 0, 0, time.UTC), first.LatestReportDate)

	s.Equal("+912222222222", got[1].PhoneNumber)
	s.Equal(1, got[1].SpamCount)
}

func (s *AggregatorSuite) TestMinReportsFilter() {
	min := 2
	got, err := s.svc.Aggregate(context.Background(), Filter{MinReports: &min})
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("+911111111111", got[0].PhoneNumber)
	s.Equal(3, got[0].SpamCount)
}

func (s *AggregatorSuite) TestPhoneFilterNormalizes() {
	// Raw national-format input must match canonically stored reports.
	got, err := s.svc.Aggregate(context.Background(), Filter{PhoneNumber: "22222 22222"})
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("+912222222222", got[0].PhoneNumber)
}

func (s *AggregatorSuite) TestEndDateCoversWholeDay() {
	start := time.Date(2026, time.August, 4, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.August, 4, 0, 0, 0, 0, time.UTC)
	got, err := s.svc.Aggregate(context.Background(), Filter{StartDate: &start, EndDate: &end})
	s.Require().NoError(err)
	// r4 was created at noon on the end date; the inclusive window keeps it.
	s.Require().Len(got, 1)
	s.Equal("+912222222222", got[0].PhoneNumber)
}

func (s *AggregatorSuite) TestValidationFailsBeforeRetrieval() {
	s.Run("reversed date range", func() {
		calls := s.source.calls
		start := time.Date(2026, time.August, 5, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 0, -2)
		_, err := s.svc.Aggregate(context.Background(), Filter{StartDate: &start, EndDate: &end})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidDateRange))
		s.Equal(calls, s.source.calls)
	})

	s.Run("unparseable phone filter", func() {
		calls := s.source.calls
		_, err := s.svc.Aggregate(context.Background(), Filter{PhoneNumber: "spam"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidFilter))
		s.Equal(calls, s.source.calls)
	})

	s.Run("negative min_reports", func() {
		calls := s.source.calls
		min := -1
		_, err := s.svc.Aggregate(context.Background(), Filter{MinReports: &min})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidCount))
		s.Equal(calls, s.source.calls)
	})
}

func (s *AggregatorSuite) TestStableTieBreak() {
	day := time.Date(2026, time.August, 10, 9, 0, 0, 0, time.UTC)
	s.source.reports = []Report{
		{ID: "a", PhoneNumber: "+913333333333", ReporterID: "u-1", CreatedAt: day},
		{ID: "b", PhoneNumber: "+914444444444", ReporterID: "u-2", CreatedAt: day},
	}
	got, err := s.svc.Aggregate(context.Background(), Filter{})
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	// Equal counts keep first-seen order.
	s.Equal("+913333333333", got[0].PhoneNumber)
	s.Equal("+914444444444", got[1].PhoneNumber)
}
