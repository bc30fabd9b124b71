package contact

import (
	"context"
	"strings"
	"sync"

	"truedial/pkg/sentinel"
)

type InMemoryStore struct {
	mu       sync.RWMutex
	contacts map[string]Contact // keyed by id
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{contacts: make(map[string]Contact)}
}

func (s *InMemoryStore) Save(_ context.Context, c Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.contacts {
		if existing.OwnerID == c.OwnerID && existing.PhoneNumber == c.PhoneNumber && existing.ID != c.ID {
			return sentinel.ErrConflict
		}
	}
	s.contacts[c.ID.String()] = c
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, contactID string) (Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.contacts[contactID]
	if !ok {
		return Contact{}, sentinel.ErrNotFound
	}
	return c, nil
}

func (s *InMemoryStore) FindByOwnerAndPhone(_ context.Context, ownerID, phoneNumber string) (Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.contacts {
		if c.OwnerID.String() == ownerID && c.PhoneNumber == phoneNumber {
			return c, nil
		}
	}
	return Contact{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) FindByPhoneIn(_ context.Context, phoneNumbers []string, ownerID string) ([]Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wanted := make(map[string]struct{}, len(phoneNumbers))
	for _, p := range phoneNumbers {
		wanted[p] = struct{}{}
	}
	var out []Contact
	for _, c := range s.contacts {
		if c.OwnerID.String() != ownerID {
			continue
		}
		if _, ok := wanted[c.PhoneNumber]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *InMemoryStore) FindByNamePrefix(_ context.Context, q, ownerID string) ([]Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q = strings.ToLower(q)
	var out []Contact
	for _, c := range s.contacts {
		if c.OwnerID.String() == ownerID && hasPrefix(c, q) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *InMemoryStore) FindByNameSubstring(_ context.Context, q, ownerID string) ([]Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q = strings.ToLower(q)
	var out []Contact
	for _, c := range s.contacts {
		if c.OwnerID.String() == ownerID && contains(c, q) && !hasPrefix(c, q) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *InMemoryStore) ExistsByOwnerAndPhone(ctx context.Context, ownerID, phoneNumber string) (bool, error) {
	_, err := s.FindByOwnerAndPhone(ctx, ownerID, phoneNumber)
	if err == nil {
		return true, nil
	}
	if err == sentinel.ErrNotFound {
		return false, nil
	}
	return false, err
}

func hasPrefix(c Contact, q string) bool {
	return strings.HasPrefix(strings.ToLower(c.FirstName), q) ||
		strings.HasPrefix(strings.ToLower(c.LastName), q)
}

func contains(c Contact, q string) bool {
	return strings.Contains(strings.ToLower(c.FirstName), q) ||
		strings.Contains(strings.ToLower(c.LastName), q)
}
