// Package search answers phone-keyed and name-keyed directory queries over
// registered identities and personal contacts, ranked by name similarity and
// annotated with spam likelihood.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"truedial/internal/match"
	"truedial/internal/phone"
	dErrors "truedial/pkg/domain-errors"
	"truedial/pkg/sentinel"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// Scorer computes a bounded name similarity; swappable so the concrete
// edit-distance algorithm never leaks into ranking logic.
type Scorer func(a, b string) int

type Service struct {
	provider   RecordProvider
	normalizer *phone.Normalizer
	score      Scorer
	logger     *slog.Logger
	tracer     trace.Tracer
	pageSize   int
	maxPage    int
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithScorer(score Scorer) Option {
	return func(s *Service) { s.score = score }
}

func WithPageSize(size int) Option {
	return func(s *Service) { s.pageSize = size }
}

func New(provider RecordProvider, normalizer *phone.Normalizer, opts ...Option) (*Service, error) {
	if provider == nil {
		return nil, fmt.Errorf("record provider is required")
	}
	if normalizer == nil {
		return nil, fmt.Errorf("phone normalizer is required")
	}

	svc := &Service{
		provider:   provider,
		normalizer: normalizer,
		score:      match.Similarity,
		logger:     slog.Default(),
		tracer:     otel.Tracer("truedial/search"),
		pageSize:   DefaultPageSize,
		maxPage:    MaxPageSize,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Search classifies the query, retrieves and ranks candidates, deduplicates
// by canonical phone number, and returns one page of results enriched with
// spam likelihood. An empty trimmed query fails before any provider call.
func (s *Service) Search(ctx context.Context, query, accountID string, page, pageSize int) (Page, error) {
	ctx, span := s.tracer.Start(ctx, "search.Search")
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		return Page{}, dErrors.New(dErrors.CodeEmptyQuery, "search query is empty")
	}

	var (
		candidates []Candidate
		err        error
	)
	if isPhoneShaped(query) {
		span.SetAttributes(attribute.String("search.kind", "phone"))
		candidates, err = s.searchByPhone(ctx, query, accountID)
	} else {
		span.SetAttributes(attribute.String("search.kind", "name"))
		candidates, err = s.searchByName(ctx, query, accountID)
	}
	if err != nil {
		return Page{}, err
	}

	deduped := dedupe(candidates)
	slice, total := paginate(deduped, page, s.normalizePageSize(pageSize))

	results := make([]Result, 0, len(slice))
	for _, c := range slice {
		likelihood, err := s.provider.CountSpamReports(ctx, c.PhoneNumber)
		if err != nil {
			return Page{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "count spam reports")
		}
		results = append(results, Result{
			ID:             c.ID,
			Name:           c.DisplayName,
			PhoneNumber:    c.PhoneNumber,
			IsRegistered:   c.Kind == KindRegistered,
			SpamLikelihood: likelihood,
			MatchScore:     c.Score,
		})
	}

	return Page{Results: results, TotalCount: total}, nil
}

// Details resolves a single record by id, registered identities first. The
// email of a registered identity is revealed only when the requesting account
// has that phone number in its own contacts. Personal contacts are visible to
// their owner only.
func (s *Service) Details(ctx context.Context, id, accountID string) (Details, error) {
	ctx, span := s.tracer.Start(ctx, "search.Details")
	defer span.End()

	reg, err := s.provider.GetRegistered(ctx, id)
	switch {
	case err == nil:
		likelihood, err := s.provider.CountSpamReports(ctx, reg.PhoneNumber)
		if err != nil {
			return Details{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "count spam reports")
		}
		d := Details{
			ID:             reg.ID,
			FirstName:      reg.FirstName,
			LastName:       reg.LastName,
			FullName:       fullName(reg.FirstName, reg.LastName),
			PhoneNumber:    reg.PhoneNumber,
			IsRegistered:   true,
			SpamLikelihood: likelihood,
		}
		if reg.Email != "" {
			inContacts, err := s.provider.IsInContacts(ctx, accountID, reg.PhoneNumber)
			if err != nil {
				return Details{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "check contacts")
			}
			if inContacts {
				email := reg.Email
				d.Email = &email
			}
		}
		return d, nil
	case !errors.Is(err, sentinel.ErrNotFound):
		return Details{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "look up registered identity")
	}

	personal, err := s.provider.GetPersonal(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Details{}, dErrors.New(dErrors.CodeNotFound, "record not found")
		}
		return Details{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "look up personal contact")
	}
	if personal.OwnerID != accountID {
		return Details{}, dErrors.New(dErrors.CodeNotFound, "record not found")
	}

	likelihood, err := s.provider.CountSpamReports(ctx, personal.PhoneNumber)
	if err != nil {
		return Details{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "count spam reports")
	}
	return Details{
		ID:             personal.ID,
		FirstName:      personal.FirstName,
		LastName:       personal.LastName,
		FullName:       fullName(personal.FirstName, personal.LastName),
		PhoneNumber:    personal.PhoneNumber,
		IsRegistered:   false,
		SpamLikelihood: likelihood,
	}, nil
}

// isPhoneShaped reports whether the query's first character is an ASCII
// decimal digit. Purely syntactic; no locale-aware digit detection.
func isPhoneShaped(query string) bool {
	return query[0] >= '0' && query[0] <= '9'
}

// searchByPhone matches the variant set exactly. Registered identities mask
// personal contacts sharing the number; every hit scores 100.
func (s *Service) searchByPhone(ctx context.Context, query, accountID string) ([]Candidate, error) {
	variants := []string{query}
	if key, err := s.normalizer.Normalize(query); err == nil {
		variants = key.Variants()
	} else {
		// An unparseable phone-like query may still exact-match a malformed
		// stored number, so fall back to the raw trimmed query.
		s.logger.Debug("phone query fell back to literal match", "query", query, "err", err)
	}

	registered, err := s.provider.FindRegisteredByPhoneVariants(ctx, variants)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "find registered by phone")
	}
	candidates := registered
	if len(candidates) == 0 {
		candidates, err = s.provider.FindPersonalByPhoneVariants(ctx, variants, accountID)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "find personal by phone")
		}
	}

	for i := range candidates {
		candidates[i].Score = 100
	}
	return candidates, nil
}

// searchByName seeds candidates in four-tier priority order, scores every
// candidate against its full display name, then stably re-sorts the combined
// list by score descending. Tier order therefore decides only tie-breaks.
func (s *Service) searchByName(ctx context.Context, query, accountID string) ([]Candidate, error) {
	tiers := make([][]Candidate, 4)
	g, gctx := errgroup.WithContext(ctx)

	fetch := []func(context.Context) ([]Candidate, error){
		func(ctx context.Context) ([]Candidate, error) {
			return s.provider.FindRegisteredByNamePrefix(ctx, query)
		},
		func(ctx context.Context) ([]Candidate, error) {
			return s.provider.FindPersonalByNamePrefix(ctx, query, accountID)
		},
		func(ctx context.Context) ([]Candidate, error) {
			return s.provider.FindRegisteredByNameSubstring(ctx, query)
		},
		func(ctx context.Context) ([]Candidate, error) {
			return s.provider.FindPersonalByNameSubstring(ctx, query, accountID)
		},
	}
	for i, f := range fetch {
		g.Go(func() error {
			candidates, err := f(gctx)
			if err != nil {
				return err
			}
			tiers[i] = candidates
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "find candidates by name")
	}

	var combined []Candidate
	for _, tier := range tiers {
		combined = append(combined, tier...)
	}
	for i := range combined {
		combined[i].Score = s.score(query, combined[i].DisplayName)
	}

	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].Score > combined[j].Score
	})
	return combined, nil
}

// dedupe keeps at most one result per phone number. Two passes: registered
// candidates always win; personal candidates survive only when no registered
// candidate anywhere in the full result set shares their number.
func dedupe(candidates []Candidate) []Candidate {
	seen := make(map[string]struct{}, len(candidates))
	deduped := make([]Candidate, 0, len(candidates))

	for _, c := range candidates {
		if c.Kind != KindRegistered {
			continue
		}
		if _, ok := seen[c.PhoneNumber]; ok {
			continue
		}
		seen[c.PhoneNumber] = struct{}{}
		deduped = append(deduped, c)
	}
	for _, c := range candidates {
		if c.Kind != KindPersonal {
			continue
		}
		if _, ok := seen[c.PhoneNumber]; ok {
			continue
		}
		seen[c.PhoneNumber] = struct{}{}
		deduped = append(deduped, c)
	}
	return deduped
}

func (s *Service) normalizePageSize(size int) int {
	if size <= 0 {
		return s.pageSize
	}
	if size > s.maxPage {
		return s.maxPage
	}
	return size
}

func paginate(candidates []Candidate, page, size int) ([]Candidate, int) {
	if page < 1 {
		page = 1
	}
	total := len(candidates)
	start := (page - 1) * size
	if start >= total {
		return nil, total
	}
	end := start + size
	if end > total {
		end = total
	}
	return candidates[start:end], total
}

func fullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}
