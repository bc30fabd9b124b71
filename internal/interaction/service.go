// Package interaction tracks calls, messages, and spam reports between users,
// and aggregates them into activity views.
package interaction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"truedial/internal/interaction/device"
	"truedial/internal/phone"
	id "truedial/pkg/domain"
	dErrors "truedial/pkg/domain-errors"
)

const (
	DefaultPageSize = 10
	DefaultTopLimit = 5
	MaxTopLimit     = 50
)

type Store interface {
	Save(ctx context.Context, in Interaction) error
	ListByInitiator(ctx context.Context, initiatorID string, t Type, limit, offset int) ([]Interaction, error)
	CountByInitiator(ctx context.Context, initiatorID string, t Type) (int, error)
	ListInvolving(ctx context.Context, userID string, limit int) ([]Interaction, error)
	CountInvolvingByType(ctx context.Context, userID string) (map[Type]int, error)
	CountInvolvingBetween(ctx context.Context, userID string, start, end time.Time) (int, error)
	TopByInitiator(ctx context.Context, initiatorID string, limit int) ([]PhoneCount, error)
}

// PeerResolver looks up display names for the other side of an interaction.
type PeerResolver interface {
	RegisteredByPhone(ctx context.Context, phoneNumber string) (id.UserID, string, bool, error)
	ContactName(ctx context.Context, ownerID id.UserID, phoneNumber string) (string, bool, error)
}

type CreateRequest struct {
	InitiatorID   id.UserID
	ReceiverPhone string
	Type          Type
	Metadata      map[string]any
	UserAgent     string
}

type Service struct {
	store      Store
	normalizer *phone.Normalizer
	peers      PeerResolver
	logger     *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func New(store Store, normalizer *phone.Normalizer, peers PeerResolver, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("interaction store is required")
	}
	if normalizer == nil {
		return nil, fmt.Errorf("phone normalizer is required")
	}
	if peers == nil {
		return nil, fmt.Errorf("peer resolver is required")
	}

	svc := &Service{
		store:      store,
		normalizer: normalizer,
		peers:      peers,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Create logs an interaction. The receiver phone must normalize; the receiver
// account link is resolved when the number belongs to a registered user.
// Device details from the User-Agent are folded into the metadata.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Interaction, error) {
	if req.InitiatorID.IsNil() {
		return Interaction{}, dErrors.New(dErrors.CodeInvalidInput, "initiator is required")
	}
	if !req.Type.Valid() {
		return Interaction{}, dErrors.Newf(dErrors.CodeInvalidFilter,
			"invalid interaction type %q, must be one of: call, message, spam_report", req.Type)
	}

	key, err := s.normalizer.Normalize(req.ReceiverPhone)
	if err != nil {
		return Interaction{}, err
	}

	in := Interaction{
		ID:            id.NewInteractionID(),
		InitiatorID:   req.InitiatorID,
		ReceiverPhone: key.Canonical(),
		Type:          req.Type,
		Metadata:      req.Metadata,
		CreatedAt:     time.Now().UTC(),
	}

	if receiverID, _, found, err := s.peers.RegisteredByPhone(ctx, in.ReceiverPhone); err != nil {
		s.logger.Warn("resolve interaction receiver", "phone", in.ReceiverPhone, "err", err)
	} else if found {
		in.ReceiverID = &receiverID
	}

	if deviceMeta := device.Parse(req.UserAgent).Metadata(); deviceMeta != nil {
		if in.Metadata == nil {
			in.Metadata = make(map[string]any, 1)
		}
		in.Metadata["device"] = deviceMeta
	}

	if err := s.store.Save(ctx, in); err != nil {
		return Interaction{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "save interaction")
	}
	return in, nil
}

// RecordSpamReport logs the interaction companion of a spam report. It
// satisfies the recorder hook the report service consumes.
func (s *Service) RecordSpamReport(ctx context.Context, reporterID id.UserID, phoneNumber string) error {
	_, err := s.Create(ctx, CreateRequest{
		InitiatorID:   reporterID,
		ReceiverPhone: phoneNumber,
		Type:          TypeSpamReport,
	})
	return err
}

// Recent returns one page of the user's initiated interactions, newest
// first, optionally filtered by type. typeFilter may be empty.
func (s *Service) Recent(ctx context.Context, userID id.UserID, typeFilter string, page, pageSize int) (RecentPage, error) {
	var t Type
	if typeFilter != "" {
		t = Type(typeFilter)
		if !t.Valid() {
			return RecentPage{}, dErrors.Newf(dErrors.CodeInvalidFilter,
				"invalid interaction type %q, must be one of: call, message, spam_report", typeFilter)
		}
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	total, err := s.store.CountByInitiator(ctx, userID.String(), t)
	if err != nil {
		return RecentPage{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "count interactions")
	}

	items, err := s.store.ListByInitiator(ctx, userID.String(), t, pageSize, (page-1)*pageSize)
	if err != nil {
		return RecentPage{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "list interactions")
	}

	return RecentPage{Interactions: items, TotalCount: total}, nil
}

// TopContacts returns the user's most contacted peers. Names resolve
// registered-account first, then the user's own address book, then the raw
// number.
func (s *Service) TopContacts(ctx context.Context, userID id.UserID, limit int) ([]TopContact, error) {
	if limit < 1 {
		limit = DefaultTopLimit
	}
	if limit > MaxTopLimit {
		limit = MaxTopLimit
	}

	counts, err := s.store.TopByInitiator(ctx, userID.String(), limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "aggregate top contacts")
	}

	out := make([]TopContact, 0, len(counts))
	for _, pc := range counts {
		tc := TopContact{
			ContactName:      pc.PhoneNumber,
			ContactPhone:     pc.PhoneNumber,
			InteractionCount: pc.Count,
		}
		if _, name, found, err := s.peers.RegisteredByPhone(ctx, pc.PhoneNumber); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "resolve top contact")
		} else if found {
			tc.ContactName = name
			tc.IsRegistered = true
		} else if name, found, err := s.peers.ContactName(ctx, userID, pc.PhoneNumber); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "resolve top contact")
		} else if found {
			tc.ContactName = name
		}
		out = append(out, tc)
	}
	return out, nil
}
