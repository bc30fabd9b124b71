package interaction

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"truedial/internal/phone"
	id "truedial/pkg/domain"
	dErrors "truedial/pkg/domain-errors"
)

type fakePeers struct {
	registered map[string]struct {
		id   id.UserID
		name string
	}
	contacts map[string]string // phone -> name, owner-agnostic for the test
}

func (f *fakePeers) RegisteredByPhone(_ context.Context, phoneNumber string) (id.UserID, string, bool, error) {
	if r, ok := f.registered[phoneNumber]; ok {
		return r.id, r.name, true, nil
	}
	return id.UserID{}, "", false, nil
}

func (f *fakePeers) ContactName(_ context.Context, _ id.UserID, phoneNumber string) (string, bool, error) {
	name, ok := f.contacts[phoneNumber]
	return name, ok, nil
}

type InteractionServiceSuite struct {
	suite.Suite
	store     *InMemoryStore
	peers     *fakePeers
	svc       *Service
	initiator id.UserID
}

func TestInteractionServiceSuite(t *testing.T) {
	suite.Run(t, new(InteractionServiceSuite))
}

func (s *InteractionServiceSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.peers = &fakePeers{
		registered: make(map[string]struct {
			id   id.UserID
			name string
		}),
		contacts: make(map[string]string),
	}
	s.initiator = id.NewUserID()

	var err error
	s.svc, err = New(s.store, phone.NewNormalizer("IN"), s.peers)
	s.Require().NoError(err)
}

func (s *InteractionServiceSuite) registerPeer(phoneNumber, name string) id.UserID {
	peerID := id.NewUserID()
	s.peers.registered[phoneNumber] = struct {
		id   id.UserID
		name string
	}{peerID, name}
	return peerID
}

func (s *InteractionServiceSuite) TestCreate() {
	ctx := context.Background()

	s.Run("normalizes phone and links registered receiver", func() {
		peerID := s.registerPeer("+919876543210", "Asha Rao")

		in, err := s.svc.Create(ctx, CreateRequest{
			InitiatorID:   s.initiator,
			ReceiverPhone: "98765 43210",
			Type:          TypeCall,
			Metadata:      map[string]any{"duration": 42},
		})
		s.Require().NoError(err)
		s.Equal("+919876543210", in.ReceiverPhone)
		s.Require().NotNil(in.ReceiverID)
		s.Equal(peerID, *in.ReceiverID)
		s.Equal(42, in.Metadata["duration"])
	})

	s.Run("unregistered receiver keeps nil link", func() {
		in, err := s.svc.Create(ctx, CreateRequest{
			InitiatorID:   s.initiator,
			ReceiverPhone: "9111111111",
			Type:          TypeMessage,
		})
		s.Require().NoError(err)
		s.Nil(in.ReceiverID)
	})

	s.Run("device details land in metadata", func() {
		in, err := s.svc.Create(ctx, CreateRequest{
			InitiatorID:   s.initiator,
			ReceiverPhone: "9222222222",
			Type:          TypeCall,
			UserAgent:     "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
		})
		s.Require().NoError(err)
		deviceMeta, ok := in.Metadata["device"].(map[string]any)
		s.Require().True(ok)
		s.Equal("Firefox", deviceMeta["browser"])
	})

	s.Run("invalid type rejected", func() {
		_, err := s.svc.Create(ctx, CreateRequest{
			InitiatorID:   s.initiator,
			ReceiverPhone: "9222222222",
			Type:          Type("email"),
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidFilter))
	})

	s.Run("unparseable phone rejected", func() {
		_, err := s.svc.Create(ctx, CreateRequest{
			InitiatorID:   s.initiator,
			ReceiverPhone: "12345",
			Type:          TypeCall,
		})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidPhone))
	})
}

func (s *InteractionServiceSuite) TestRecent() {
	ctx := context.Background()
	for i := 0; i < 12; i++ {
		t := TypeCall
		if i%3 == 0 {
			t = TypeMessage
		}
		s.Require().NoError(s.store.Save(ctx, Interaction{
			ID:            id.NewInteractionID(),
			InitiatorID:   s.initiator,
			ReceiverPhone: fmt.Sprintf("+91900000%04d", i),
			Type:          t,
			CreatedAt:     time.Date(2026, 8, 1, 0, 0, i, 0, time.UTC),
		}))
	}

	s.Run("pages newest first with total", func() {
		page, err := s.svc.Recent(ctx, s.initiator, "", 1, 10)
		s.Require().NoError(err)
		s.Equal(12, page.TotalCount)
		s.Require().Len(page.Interactions, 10)
		s.Equal("+919000000011", page.Interactions[0].ReceiverPhone)

		page2, err := s.svc.Recent(ctx, s.initiator, "", 2, 10)
		s.Require().NoError(err)
		s.Len(page2.Interactions, 2)
	})

	s.Run("filters by type", func() {
		page, err := s.svc.Recent(ctx, s.initiator, "message", 1, 10)
		s.Require().NoError(err)
		s.Equal(4, page.TotalCount)
		for _, in := range page.Interactions {
			s.Equal(TypeMessage, in.Type)
		}
	})

	s.Run("rejects unknown type filter", func() {
		_, err := s.svc.Recent(ctx, s.initiator, "email", 1, 10)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidFilter))
	})
}

func (s *InteractionServiceSuite) TestTopContacts() {
	ctx := context.Background()
	s.registerPeer("+911111111111", "Reg User")
	s.peers.contacts["+912222222222"] = "Saved Contact"

	save := func(phoneNumber string, times int) {
		for i := 0; i < times; i++ {
			s.Require().NoError(s.store.Save(ctx, Interaction{
				ID:            id.NewInteractionID(),
				InitiatorID:   s.initiator,
				ReceiverPhone: phoneNumber,
				Type:          TypeCall,
				CreatedAt:     time.Now(),
			}))
		}
	}
	save("+911111111111", 3)
	save("+912222222222", 2)
	save("+913333333333", 1)

	top, err := s.svc.TopContacts(ctx, s.initiator, 0)
	s.Require().NoError(err)
	s.Require().Len(top, 3)

	s.Equal(TopContact{"Reg User", "+911111111111", 3, true}, top[0])
	s.Equal(TopContact{"Saved Contact", "+912222222222", 2, false}, top[1])
	s.Equal(TopContact{"+913333333333", "+913333333333", 1, false}, top[2])

	capped, err := s.svc.TopContacts(ctx, s.initiator, 2)
	s.Require().NoError(err)
	s.Len(capped, 2)
}

func (s *InteractionServiceSuite) TestRecordSpamReport() {
	ctx := context.Background()
	s.Require().NoError(s.svc.RecordSpamReport(ctx, s.initiator, "+919876543210"))

	page, err := s.svc.Recent(ctx, s.initiator, "spam_report", 1, 10)
	s.Require().NoError(err)
	s.Equal(1, page.TotalCount)
}
