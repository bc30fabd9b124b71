package contact

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"truedial/internal/phone"
	id "truedial/pkg/domain"
	dErrors "truedial/pkg/domain-errors"
)

type ContactServiceSuite struct {
	suite.Suite
	store *InMemoryStore
	svc   *Service
	owner id.UserID
}

func TestContactServiceSuite(t *testing.T) {
	suite.Run(t, new(ContactServiceSuite))
}

func (s *ContactServiceSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.owner = id.NewUserID()

	var err error
	s.svc, err = New(s.store, phone.NewNormalizer("IN"))
	s.Require().NoError(err)
}

func (s *ContactServiceSuite) TestCreate() {
	ctx := context.Background()

	s.Run("normalizes phone on write", func() {
		c, err := s.svc.Create(ctx, CreateRequest{
			OwnerID:     s.owner,
			FirstName:   "Asha",
			LastName:    "Rao",
			PhoneNumber: "98765 43210",
		})
		s.Require().NoError(err)
		s.Equal("+919876543210", c.PhoneNumber)
		s.Equal("Asha Rao", c.FullName())
	})

	s.Run("duplicate per owner conflicts", func() {
		_, err := s.svc.Create(ctx, CreateRequest{
			OwnerID:     s.owner,
			FirstName:   "Asha again",
			PhoneNumber: "+919876543210",
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("same phone under another owner is fine", func() {
		_, err := s.svc.Create(ctx, CreateRequest{
			OwnerID:     id.NewUserID(),
			FirstName:   "Asha elsewhere",
			PhoneNumber: "9876543210",
		})
		s.NoError(err)
	})

	s.Run("legacy format kept raw when normalization fails", func() {
		c, err := s.svc.Create(ctx, CreateRequest{
			OwnerID:     s.owner,
			FirstName:   "Old Pager",
			PhoneNumber: "12345",
		})
		s.Require().NoError(err)
		s.Equal("12345", c.PhoneNumber)
	})

	s.Run("missing fields rejected", func() {
		_, err := s.svc.Create(ctx, CreateRequest{OwnerID: s.owner, PhoneNumber: "9876543210"})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

		_, err = s.svc.Create(ctx, CreateRequest{OwnerID: s.owner, FirstName: "No Phone"})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *ContactServiceSuite) TestStoreNameLookupsStayDisjoint() {
	ctx := context.Background()
	for _, c := range []CreateRequest{
		{OwnerID: s.owner, FirstName: "Anna", LastName: "Lee", PhoneNumber: "9000000001"},
		{OwnerID: s.owner, FirstName: "Marianne", LastName: "Cole", PhoneNumber: "9000000002"},
	} {
		_, err := s.svc.Create(ctx, c)
		s.Require().NoError(err)
	}

	prefix, err := s.store.FindByNamePrefix(ctx, "ann", s.owner.String())
	s.Require().NoError(err)
	s.Require().Len(prefix, 1)
	s.Equal("Anna", prefix[0].FirstName)

	substr, err := s.store.FindByNameSubstring(ctx, "ann", s.owner.String())
	s.Require().NoError(err)
	s.Require().Len(substr, 1)
	s.Equal("Marianne", substr[0].FirstName)
}
