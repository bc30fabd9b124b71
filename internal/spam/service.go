// Package spam aggregates spam reports per phone number: counts, distinct
// reporters, and latest-report metadata, with optional date-range and
// minimum-count filtering.
package spam

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"truedial/internal/phone"
	dErrors "truedial/pkg/domain-errors"
)

// ReportSource lists raw spam reports, optionally pre-filtered by phone and
// creation-time window.
type ReportSource interface {
	ListReports(ctx context.Context, phoneNumber string, start, end *time.Time) ([]Report, error)
}

type Service struct {
	source     ReportSource
	normalizer *phone.Normalizer
	logger     *slog.Logger
	tracer     trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func New(source ReportSource, normalizer *phone.Normalizer, opts ...Option) (*Service, error) {
	if source == nil {
		return nil, fmt.Errorf("report source is required")
	}
	if normalizer == nil {
		return nil, fmt.Errorf("phone normalizer is required")
	}

	svc := &Service{
		source:     source,
		normalizer: normalizer,
		logger:     slog.Default(),
		tracer:     otel.Tracer("truedial/spam"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Aggregate validates the filter, groups matching reports by canonical phone
// number, and returns per-number aggregates ordered by report count
// descending. Ties keep first-seen group order.
func (s *Service) Aggregate(ctx context.Context, filter Filter) ([]Aggregate, error) {
	ctx, span := s.tracer.Start(ctx, "spam.Aggregate")
	defer span.End()

	phoneNumber := ""
	if filter.PhoneNumber != "" {
		key, err := s.normalizer.Normalize(filter.PhoneNumber)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInvalidFilter, "invalid phone number filter")
		}
		phoneNumber = key.Canonical()
	}

	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, dErrors.New(dErrors.CodeInvalidDateRange, "end_date is before start_date")
	}
	if filter.MinReports != nil && *filter.MinReports < 0 {
		return nil, dErrors.New(dErrors.CodeInvalidCount, "min_reports must be a non-negative integer")
	}

	end := filter.EndDate
	if end != nil {
		e := endOfDay(*end)
		end = &e
	}

	reports, err := s.source.ListReports(ctx, phoneNumber, filter.StartDate, end)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "list spam reports")
	}

	// Group by phone, preserving first-seen order for stable tie-breaks.
	groups := make(map[string]*Aggregate, len(reports))
	latest := make(map[string]time.Time, len(reports))
	seenReporters := make(map[string]map[string]struct{}, len(reports))
	var order []string

	for _, r := range reports {
		agg, ok := groups[r.PhoneNumber]
		if !ok {
			agg = &Aggregate{PhoneNumber: r.PhoneNumber}
			groups[r.PhoneNumber] = agg
			seenReporters[r.PhoneNumber] = make(map[string]struct{})
			order = append(order, r.PhoneNumber)
		}
		agg.SpamCount++
		if r.ReporterID != "" {
			if _, dup := seenReporters[r.PhoneNumber][r.ReporterID]; !dup {
				seenReporters[r.PhoneNumber][r.ReporterID] = struct{}{}
				agg.ReportedByUsers = append(agg.ReportedByUsers, r.ReporterID)
			}
		}
		if r.CreatedAt.After(latest[r.PhoneNumber]) {
			latest[r.PhoneNumber] = r.CreatedAt
			agg.LatestReportDate = r.CreatedAt
			agg.LatestDescription = r.Description
		}
	}

	results := make([]Aggregate, 0, len(order))
	for _, p := range order {
		agg := groups[p]
		agg.UniqueReporters = len(agg.ReportedByUsers)
		if filter.MinReports != nil && agg.SpamCount < *filter.MinReports {
			continue
		}
		results = append(results, *agg)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].SpamCount > results[j].SpamCount
	})
	return results, nil
}

// endOfDay extends a date to 23:59:59 so the end bound covers the whole
// calendar day.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}
