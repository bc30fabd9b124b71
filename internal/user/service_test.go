package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"truedial/internal/phone"
	dErrors "truedial/pkg/domain-errors"
)

type UserServiceSuite struct {
	suite.Suite
	store *InMemoryStore
	svc   *Service
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceSuite))
}

func (s *UserServiceSuite) SetupTest() {
	s.store = NewInMemoryStore()

	var err error
	s.svc, err = New(s.store, phone.NewNormalizer("IN"))
	s.Require().NoError(err)
}

func (s *UserServiceSuite) TestSignup() {
	ctx := context.Background()

	s.Run("normalizes phone and hashes password", func() {
		u, err := s.svc.Signup(ctx, SignupRequest{
			PhoneNumber: "98765 43210",
			Password:    "hunter2!",
			FirstName:   "Asha",
			LastName:    "Rao",
			Email:       "asha@example.com",
		})
		s.Require().NoError(err)
		s.Equal("+919876543210", u.PhoneNumber)
		s.NotEqual("hunter2!", u.PasswordHash)
		s.NotEmpty(u.PasswordHash)
		s.False(u.ID.IsNil())
	})

	s.Run("duplicate phone conflicts", func() {
		_, err := s.svc.Signup(ctx, SignupRequest{
			PhoneNumber: "+91 98765 43210",
			Password:    "other",
			FirstName:   "Imposter",
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("invalid phone rejected", func() {
		_, err := s.svc.Signup(ctx, SignupRequest{
			PhoneNumber: "123",
			Password:    "pw",
			FirstName:   "Nobody",
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidPhone))
	})

	s.Run("missing first name rejected", func() {
		_, err := s.svc.Signup(ctx, SignupRequest{
			PhoneNumber: "9123456789",
			Password:    "pw",
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *UserServiceSuite) TestLogin() {
	ctx := context.Background()

	existing, err := s.svc.Signup(ctx, SignupRequest{
		PhoneNumber: "9876543210",
		Password:    "correct horse",
		FirstName:   "Asha",
	})
	s.Require().NoError(err)

	s.Run("valid credentials", func() {
		u, created, err := s.svc.Login(ctx, LoginRequest{
			PhoneNumber: "+919876543210",
			Password:    "correct horse",
		})
		s.Require().NoError(err)
		s.False(created)
		s.Equal(existing.ID, u.ID)
	})

	s.Run("wrong password on existing account", func() {
		_, _, err := s.svc.Login(ctx, LoginRequest{
			PhoneNumber: "9876543210",
			Password:    "wrong",
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("unknown phone auto-creates with first name", func() {
		u, created, err := s.svc.Login(ctx, LoginRequest{
			PhoneNumber: "9123456789",
			Password:    "fresh",
			FirstName:   "Nikhil",
		})
		s.Require().NoError(err)
		s.True(created)
		s.Equal("+919123456789", u.PhoneNumber)

		again, created, err := s.svc.Login(ctx, LoginRequest{
			PhoneNumber: "9123456789",
			Password:    "fresh",
		})
		s.Require().NoError(err)
		s.False(created)
		s.Equal(u.ID, again.ID)
	})

	s.Run("unknown phone without first name rejected", func() {
		_, _, err := s.svc.Login(ctx, LoginRequest{
			PhoneNumber: "9000000001",
			Password:    "pw",
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *UserServiceSuite) TestFullName() {
	s.Equal("Asha Rao", User{FirstName: "Asha", LastName: "Rao"}.FullName())
	s.Equal("Asha", User{FirstName: "Asha"}.FullName())
	s.Equal("+911234567890", User{PhoneNumber: "+911234567890"}.FullName())
}
