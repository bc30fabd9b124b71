// Package contact manages personal address-book entries. Contacts are private
// to their owner; uniqueness is per (owner, phone number).
package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"truedial/internal/phone"
	id "truedial/pkg/domain"
	dErrors "truedial/pkg/domain-errors"
	"truedial/pkg/sentinel"
)

type Store interface {
	Save(ctx context.Context, c Contact) error
	FindByID(ctx context.Context, contactID string) (Contact, error)
	FindByOwnerAndPhone(ctx context.Context, ownerID, phoneNumber string) (Contact, error)
	FindByPhoneIn(ctx context.Context, phoneNumbers []string, ownerID string) ([]Contact, error)
	FindByNamePrefix(ctx context.Context, q, ownerID string) ([]Contact, error)
	FindByNameSubstring(ctx context.Context, q, ownerID string) ([]Contact, error)
	ExistsByOwnerAndPhone(ctx context.Context, ownerID, phoneNumber string) (bool, error)
}

type CreateRequest struct {
	OwnerID     id.UserID
	FirstName   string
	LastName    string
	PhoneNumber string
}

type Service struct {
	store      Store
	normalizer *phone.Normalizer
	logger     *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func New(store Store, normalizer *phone.Normalizer, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("contact store is required")
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

// Create stores a new contact for the owner. The phone number is normalized
// when possible; input that fails normalization is kept raw rather than
// rejected, since imported address books carry arbitrary legacy formats.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Contact, error) {
	if req.OwnerID.IsNil() {
		return Contact{}, dErrors.New(dErrors.CodeInvalidInput, "owner is required")
	}
	if req.FirstName == "" {
		return Contact{}, dErrors.New(dErrors.CodeInvalidInput, "first name is required")
	}
	if req.PhoneNumber == "" {
		return Contact{}, dErrors.New(dErrors.CodeInvalidInput, "phone number is required")
	}

	phoneNumber := req.PhoneNumber
	if key, err := s.normalizer.Normalize(req.PhoneNumber); err == nil {
		phoneNumber = key.Canonical()
	} else {
		s.logger.Debug("keeping raw contact phone", "phone", req.PhoneNumber, "err", err)
	}

	now := time.Now().UTC()
	c := Contact{
		ID:          id.NewContactID(),
		OwnerID:     req.OwnerID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: phoneNumber,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.Save(ctx, c); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return Contact{}, dErrors.New(dErrors.CodeConflict, "this phone number is already in your contacts")
		}
		return Contact{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "save contact")
	}

	return c, nil
}
