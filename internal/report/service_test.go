package report

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"truedial/internal/phone"
	id "truedial/pkg/domain"
	dErrors "truedial/pkg/domain-errors"
)

type recorded struct {
	reporterID  id.UserID
	phoneNumber string
}

type fakeRecorder struct {
	calls []recorded
}

func (f *fakeRecorder) RecordSpamReport(_ context.Context, reporterID id.UserID, phoneNumber string) error {
	f.calls = append(f.calls, recorded{reporterID, phoneNumber})
	return nil
}

type ReportServiceSuite struct {
	suite.Suite
	store    *InMemoryStore
	recorder *fakeRecorder
	svc      *Service
	reporter id.UserID
}

func TestReportServiceSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceSuite))
}

func (s *ReportServiceSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.recorder = &fakeRecorder{}
	s.reporter = id.NewUserID()

	var err error
	s.svc, err = New(s.store, phone.NewNormalizer("IN"),
		WithInteractionRecorder(s.recorder))
	s.Require().NoError(err)
}

func (s *ReportServiceSuite) TestCreate() {
	ctx := context.Background()

	s.Run("normalizes and records interaction", func() {
		r, err := s.svc.Create(ctx, CreateRequest{
			ReporterID:  s.reporter,
			PhoneNumber: "98765 43210",
			Description: "robocall",
		})
		s.Require().NoError(err)
		s.Equal("+919876543210", r.PhoneNumber)
		s.Require().Len(s.recorder.calls, 1)
		s.Equal("+919876543210", s.recorder.calls[0].phoneNumber)
	})

	s.Run("second report of same number conflicts", func() {
		_, err := s.svc.Create(ctx, CreateRequest{
			ReporterID:  s.reporter,
			PhoneNumber: "+919876543210",
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Len(s.recorder.calls, 1)
	})

	s.Run("another reporter may flag the same number", func() {
		_, err := s.svc.Create(ctx, CreateRequest{
			ReporterID:  id.NewUserID(),
			PhoneNumber: "9876543210",
		})
		s.NoError(err)
	})

	s.Run("unparseable number rejected", func() {
		_, err := s.svc.Create(ctx, CreateRequest{
			ReporterID:  s.reporter,
			PhoneNumber: "12345",
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidPhone))
	})

	s.Run("missing reporter rejected", func() {
		_, err := s.svc.Create(ctx, CreateRequest{PhoneNumber: "9876543210"})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *ReportServiceSuite) TestCounts() {
	ctx := context.Background()
	other := id.NewUserID()
	for _, req := range []CreateRequest{
		{ReporterID: s.reporter, PhoneNumber: "9000000001"},
		{ReporterID: s.reporter, PhoneNumber: "9000000002"},
		{ReporterID: other, PhoneNumber: "9000000001"},
	} {
		_, err := s.svc.Create(ctx, req)
		s.Require().NoError(err)
	}

	byPhone, err := s.store.CountByPhone(ctx, "+919000000001")
	s.Require().NoError(err)
	s.Equal(2, byPhone)

	byReporter, err := s.store.CountByReporter(ctx, s.reporter.String())
	s.Require().NoError(err)
	s.Equal(2, byReporter)
}
