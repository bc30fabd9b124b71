package interaction

import (
	"context"
	"sort"
	"sync"
	"time"
)

type InMemoryStore struct {
	mu           sync.RWMutex
	interactions []Interaction // append order == chronological order
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Save(_ context.Context, in Interaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interactions = append(s.interactions, in)
	return nil
}

func (s *InMemoryStore) ListByInitiator(_ context.Context, initiatorID string, t Type, limit, offset int) ([]Interaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := s.filter(func(in Interaction) bool {
		return in.InitiatorID.String() == initiatorID && (t == "" || in.Type == t)
	})
	sortNewestFirst(matched)
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *InMemoryStore) CountByInitiator(_ context.Context, initiatorID string, t Type) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.filter(func(in Interaction) bool {
		return in.InitiatorID.String() == initiatorID && (t == "" || in.Type == t)
	})), nil
}

func (s *InMemoryStore) ListInvolving(_ context.Context, userID string, limit int) ([]Interaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := s.filter(func(in Interaction) bool { return involves(in, userID) })
	sortNewestFirst(matched)
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *InMemoryStore) CountInvolvingByType(_ context.Context, userID string) (map[Type]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[Type]int)
	for _, in := range s.interactions {
		if involves(in, userID) {
			out[in.Type]++
		}
	}
	return out, nil
}

func (s *InMemoryStore) CountInvolvingBetween(_ context.Context, userID string, start, end time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, in := range s.interactions {
		if involves(in, userID) && !in.CreatedAt.Before(start) && in.CreatedAt.Before(end) {
			n++
		}
	}
	return n, nil
}

func (s *InMemoryStore) TopByInitiator(_ context.Context, initiatorID string, limit int) ([]PhoneCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int)
	var order []string // first-seen, for a stable tie break
	for _, in := range s.interactions {
		if in.InitiatorID.String() != initiatorID {
			continue
		}
		if _, seen := counts[in.ReceiverPhone]; !seen {
			order = append(order, in.ReceiverPhone)
		}
		counts[in.ReceiverPhone]++
	}

	out := make([]PhoneCount, 0, len(order))
	for _, p := range order {
		out = append(out, PhoneCount{PhoneNumber: p, Count: counts[p]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (s *InMemoryStore) filter(keep func(Interaction) bool) []Interaction {
	var out []Interaction
	for _, in := range s.interactions {
		if keep(in) {
			out = append(out, in)
		}
	}
	return out
}

func involves(in Interaction, userID string) bool {
	if in.InitiatorID.String() == userID {
		return true
	}
	return in.ReceiverID != nil && in.ReceiverID.String() == userID
}

func sortNewestFirst(items []Interaction) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
}
