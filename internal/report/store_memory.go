package report

import (
	"context"
	"sort"
	"sync"
	"time"

	"truedial/pkg/sentinel"
)

type InMemoryStore struct {
	mu      sync.RWMutex
	reports map[string]Report // keyed by id
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{reports: make(map[string]Report)}
}

func (s *InMemoryStore) Save(_ context.Context, r Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.reports {
		if existing.ReporterID == r.ReporterID && existing.PhoneNumber == r.PhoneNumber && existing.ID != r.ID {
			return sentinel.ErrConflict
		}
	}
	s.reports[r.ID.String()] = r
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, reportID string) (Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[reportID]
	if !ok {
		return Report{}, sentinel.ErrNotFound
	}
	return r, nil
}

func (s *InMemoryStore) List(_ context.Context, phoneNumber string, start, end *time.Time) ([]Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Report
	for _, r := range s.reports {
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
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryStore) CountByPhone(_ context.Context, phoneNumber string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, r := range s.reports {
		if r.PhoneNumber == phoneNumber {
			n++
		}
	}
	return n, nil
}

func (s *InMemoryStore) CountByReporter(_ context.Context, reporterID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, r := range s.reports {
		if r.ReporterID.String() == reporterID {
			n++
		}
	}
	return n, nil
}
