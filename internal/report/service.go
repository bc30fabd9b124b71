// Package report manages spam accusations against phone numbers.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"truedial/internal/audit"
	"truedial/internal/phone"
	id "truedial/pkg/domain"
	dErrors "truedial/pkg/domain-errors"
	"truedial/pkg/sentinel"
)

type Store interface {
	Save(ctx context.Context, r Report) error
	FindByID(ctx context.Context, reportID string) (Report, error)
	List(ctx context.Context, phoneNumber string, start, end *time.Time) ([]Report, error)
	CountByPhone(ctx context.Context, phoneNumber string) (int, error)
	CountByReporter(ctx context.Context, reporterID string) (int, error)
}

// InteractionRecorder captures that a report happened, for activity feeds.
// Recording is best-effort and never fails the report itself.
type InteractionRecorder interface {
	RecordSpamReport(ctx context.Context, reporterID id.UserID, phoneNumber string) error
}

type CreateRequest struct {
	ReporterID  id.UserID
	PhoneNumber string
	Description string
}

type Service struct {
	store        Store
	normalizer   *phone.Normalizer
	interactions InteractionRecorder
	auditor      *audit.Publisher
	logger       *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithInteractionRecorder mirrors each report into the interaction log.
func WithInteractionRecorder(rec InteractionRecorder) Option {
	return func(s *Service) { s.interactions = rec }
}

// WithAuditor publishes a spam.reported event per accepted report.
func WithAuditor(p *audit.Publisher) Option {
	return func(s *Service) { s.auditor = p }
}

func New(store Store, normalizer *phone.Normalizer, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("report store is required")
	}
	if normalizer == nil {
		return nil, fmt.Errorf("phone normalizer is required")
	}

	svc := &Service{
		store:      store,
		normalizer: normalizer,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Create records a spam report. Unlike contacts, the reported number must
// normalize: an accusation against an unparseable number is rejected.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Report, error) {
	if req.ReporterID.IsNil() {
		return Report{}, dErrors.New(dErrors.CodeInvalidInput, "reporter is required")
	}
	if req.PhoneNumber == "" {
		return Report{}, dErrors.New(dErrors.CodeInvalidInput, "phone number is required")
	}

	key, err := s.normalizer.Normalize(req.PhoneNumber)
	if err != nil {
		return Report{}, err
	}

	r := Report{
		ID:          id.NewReportID(),
		PhoneNumber: key.Canonical(),
		ReporterID:  req.ReporterID,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.store.Save(ctx, r); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return Report{}, dErrors.New(dErrors.CodeConflict, "you have already reported this number")
		}
		return Report{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "save report")
	}

	if s.interactions != nil {
		if err := s.interactions.RecordSpamReport(ctx, r.ReporterID, r.PhoneNumber); err != nil {
			s.logger.Warn("record spam interaction", "phone", r.PhoneNumber, "err", err)
		}
	}

	s.auditor.Emit(ctx, audit.Event{
		Action:      audit.ActionSpamReported,
		UserID:      r.ReporterID.String(),
		PhoneNumber: r.PhoneNumber,
	})

	return r, nil
}

// Get returns a single report by id.
func (s *Service) Get(ctx context.Context, reportID id.ReportID) (Report, error) {
	r, err := s.store.FindByID(ctx, reportID.String())
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Report{}, dErrors.New(dErrors.CodeNotFound, "report not found")
		}
		return Report{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "load report")
	}
	return r, nil
}
