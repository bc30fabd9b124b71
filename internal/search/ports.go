package search

import "context"

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

// RegisteredRecord is the full stored form of a registered identity.
type RegisteredRecord struct {
	ID          string
	FirstName   string
	LastName    string
	PhoneNumber string
	Email       string
}

// PersonalRecord is the full stored form of a personal contact.
type PersonalRecord struct {
	ID          string
	FirstName   string
	LastName    string
	PhoneNumber string
	OwnerID     string
}

// RecordProvider supplies candidate records and spam counts from the record
// store. Name lookups are case-insensitive; the substring variants exclude
// prefix matches so the tiers stay disjoint. Personal lookups are scoped to
// the owning account. Implementations return sentinel.ErrNotFound from the
// Get methods when no record exists.
type RecordProvider interface {
	FindRegisteredByPhoneVariants(ctx context.Context, variants []string) ([]Candidate, error)
	FindPersonalByPhoneVariants(ctx context.Context, variants []string, ownerID string) ([]Candidate, error)
	FindRegisteredByNamePrefix(ctx context.Context, q string) ([]Candidate, error)
	FindRegisteredByNameSubstring(ctx context.Context, q string) ([]Candidate, error)
	FindPersonalByNamePrefix(ctx context.Context, q, ownerID string) ([]Candidate, error)
	FindPersonalByNameSubstring(ctx context.Context, q, ownerID string) ([]Candidate, error)
	CountSpamReports(ctx context.Context, phone string) (int, error)
	GetRegistered(ctx context.Context, id string) (RegisteredRecord, error)
	GetPersonal(ctx context.Context, id string) (PersonalRecord, error)
	IsInContacts(ctx context.Context, ownerID, phone string) (bool, error)
}
