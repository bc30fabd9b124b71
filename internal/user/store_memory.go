package user

import (
	"context"
	"strings"
	"sync"

	"truedial/pkg/sentinel"
)

// InMemoryStore is the development and test implementation of Store.
type InMemoryStore struct {
	mu    sync.RWMutex
	users map[string]User // keyed by id
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{users: make(map[string]User)}
}

func (s *InMemoryStore) Save(_ context.Context, u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.PhoneNumber == u.PhoneNumber && existing.ID != u.ID {
			return sentinel.ErrConflict
		}
	}
	s.users[u.ID.String()] = u
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, userID string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return User{}, sentinel.ErrNotFound
	}
	return u, nil
}

func (s *InMemoryStore) FindByPhone(_ context.Context, phoneNumber string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.PhoneNumber == phoneNumber {
			return u, nil
		}
	}
	return User{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) FindByPhoneIn(_ context.Context, phoneNumbers []string) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wanted := make(map[string]struct{}, len(phoneNumbers))
	for _, p := range phoneNumbers {
		wanted[p] = struct{}{}
	}
	var out []User
	for _, u := range s.users {
		if _, ok := wanted[u.PhoneNumber]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *InMemoryStore) FindByNamePrefix(_ context.Context, q string) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q = strings.ToLower(q)
	var out []User
	for _, u := range s.users {
		if nameHasPrefix(u.FirstName, u.LastName, q) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *InMemoryStore) FindByNameSubstring(_ context.Context, q string) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q = strings.ToLower(q)
	var out []User
	for _, u := range s.users {
		if nameContains(u.FirstName, u.LastName, q) && !nameHasPrefix(u.FirstName, u.LastName, q) {
			out = append(out, u)
		}
	}
	return out, nil
}

func nameHasPrefix(first, last, q string) bool {
	return strings.HasPrefix(strings.ToLower(first), q) || strings.HasPrefix(strings.ToLower(last), q)
}

func nameContains(first, last, q string) bool {
	return strings.Contains(strings.ToLower(first), q) || strings.Contains(strings.ToLower(last), q)
}
