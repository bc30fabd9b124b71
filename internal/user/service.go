// Package user manages registered identities: phone-keyed accounts with
// bcrypt-hashed passwords.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"truedial/internal/phone"
	id "truedial/pkg/domain"
	dErrors "truedial/pkg/domain-errors"
	"truedial/pkg/sentinel"
)

// Store persists users. Implementations return sentinel.ErrNotFound and
// sentinel.ErrConflict; the service translates them into domain errors.
type Store interface {
	Save(ctx context.Context, u User) error
	FindByID(ctx context.Context, userID string) (User, error)
	FindByPhone(ctx context.Context, phoneNumber string) (User, error)
	FindByPhoneIn(ctx context.Context, phoneNumbers []string) ([]User, error)
	FindByNamePrefix(ctx context.Context, q string) ([]User, error)
	FindByNameSubstring(ctx context.Context, q string) ([]User, error)
}

type SignupRequest struct {
	PhoneNumber string
	Password    string
	FirstName   string
	LastName    string
	Email       string
}

type LoginRequest struct {
	PhoneNumber string
	Password    string
	// Profile fields used only when login auto-creates an unknown account.
	FirstName string
	LastName  string
	Email     string
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
		return nil, fmt.Errorf("user store is required")
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

// Signup creates a new account. The phone number is normalized strictly; an
// existing account on the same number is a conflict.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (User, error) {
	u, err := s.buildUser(req.PhoneNumber, req.Password, req.FirstName, req.LastName, req.Email)
	if err != nil {
		return User{}, err
	}

	if err := s.store.Save(ctx, u); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return User{}, dErrors.New(dErrors.CodeConflict, "an account already exists for this phone number")
		}
		return User{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "save user")
	}

	s.logger.Info("user signed up", "user_id", u.ID.String(), "phone", u.PhoneNumber)
	return u, nil
}

// Login authenticates by phone and password. An unknown phone number
// auto-creates an account when a first name is supplied; a wrong password on
// an existing account is unauthorized. Returns the user and whether the
// account was created by this call.
func (s *Service) Login(ctx context.Context, req LoginRequest) (User, bool, error) {
	key, err := s.normalizer.Normalize(req.PhoneNumber)
	if err != nil {
		return User{}, false, err
	}
	if req.Password == "" {
		return User{}, false, dErrors.New(dErrors.CodeInvalidInput, "password is required")
	}

	existing, err := s.store.FindByPhone(ctx, key.Canonical())
	switch {
	case err == nil:
		if bcrypt.CompareHashAndPassword([]byte(existing.PasswordHash), []byte(req.Password)) != nil {
			return User{}, false, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return existing, false, nil
	case !errors.Is(err, sentinel.ErrNotFound):
		return User{}, false, dErrors.Wrap(err, dErrors.CodeUnavailable, "find user by phone")
	}

	if req.FirstName == "" {
		return User{}, false, dErrors.New(dErrors.CodeInvalidInput, "first name is required for new account creation")
	}

	created, err := s.Signup(ctx, SignupRequest{
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
	})
	if err != nil {
		return User{}, false, err
	}
	return created, true, nil
}

// Get returns a user by id.
func (s *Service) Get(ctx context.Context, userID string) (User, error) {
	u, err := s.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return User{}, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return User{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "find user")
	}
	return u, nil
}

func (s *Service) buildUser(phoneNumber, password, firstName, lastName, email string) (User, error) {
	key, err := s.normalizer.Normalize(phoneNumber)
	if err != nil {
		return User{}, err
	}
	if firstName == "" {
		return User{}, dErrors.New(dErrors.CodeInvalidInput, "first name is required")
	}
	if password == "" {
		return User{}, dErrors.New(dErrors.CodeInvalidInput, "password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, dErrors.Wrap(err, dErrors.CodeInternal, "hash password")
	}

	now := time.Now().UTC()
	return User{
		ID:           id.NewUserID(),
		PhoneNumber:  key.Canonical(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
