// Package directory adapts the user, contact, and report stores into the
// read-side ports the search, spam, and interaction services consume. It is
// the single place where storage models become search candidates.
package directory

import (
	"context"
	"errors"
	"time"

	"truedial/internal/contact"
	"truedial/internal/interaction"
	"truedial/internal/report"
	"truedial/internal/search"
	"truedial/internal/spam"
	"truedial/internal/user"
	id "truedial/pkg/domain"
	"truedial/pkg/sentinel"
)

type Provider struct {
	users    user.Store
	contacts contact.Store
	reports  report.Store
}

var (
	_ search.RecordProvider    = (*Provider)(nil)
	_ spam.ReportSource        = (*Provider)(nil)
	_ interaction.PeerResolver = (*Provider)(nil)
)

func New(users user.Store, contacts contact.Store, reports report.Store) *Provider {
	return &Provider{users: users, contacts: contacts, reports: reports}
}

func (p *Provider) FindRegisteredByPhoneVariants(ctx context.Context, variants []string) ([]search.Candidate, error) {
	users, err := p.users.FindByPhoneIn(ctx, variants)
	if err != nil {
		return nil, err
	}
	return registeredCandidates(users), nil
}

func (p *Provider) FindPersonalByPhoneVariants(ctx context.Context, variants []string, ownerID string) ([]search.Candidate, error) {
	contacts, err := p.contacts.FindByPhoneIn(ctx, variants, ownerID)
	if err != nil {
		return nil, err
	}
	return personalCandidates(contacts), nil
}

func (p *Provider) FindRegisteredByNamePrefix(ctx context.Context, q string) ([]search.Candidate, error) {
	users, err := p.users.FindByNamePrefix(ctx, q)
	if err != nil {
		return nil, err
	}
	return registeredCandidates(users), nil
}

func (p *Provider) FindRegisteredByNameSubstring(ctx context.Context, q string) ([]search.Candidate, error) {
	users, err := p.users.FindByNameSubstring(ctx, q)
	if err != nil {
		return nil, err
	}
	return registeredCandidates(users), nil
}

func (p *Provider) FindPersonalByNamePrefix(ctx context.Context, q, ownerID string) ([]search.Candidate, error) {
	contacts, err := p.contacts.FindByNamePrefix(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	return personalCandidates(contacts), nil
}

func (p *Provider) FindPersonalByNameSubstring(ctx context.Context, q, ownerID string) ([]search.Candidate, error) {
	contacts, err := p.contacts.FindByNameSubstring(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	return personalCandidates(contacts), nil
}

func (p *Provider) CountSpamReports(ctx context.Context, phoneNumber string) (int, error) {
	return p.reports.CountByPhone(ctx, phoneNumber)
}

func (p *Provider) GetRegistered(ctx context.Context, userID string) (search.RegisteredRecord, error) {
	u, err := p.users.FindByID(ctx, userID)
	if err != nil {
		return search.RegisteredRecord{}, err
	}
	return search.RegisteredRecord{
		ID:          u.ID.String(),
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		Email:       u.Email,
	}, nil
}

func (p *Provider) GetPersonal(ctx context.Context, contactID string) (search.PersonalRecord, error) {
	c, err := p.contacts.FindByID(ctx, contactID)
	if err != nil {
		return search.PersonalRecord{}, err
	}
	return search.PersonalRecord{
		ID:          c.ID.String(),
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		PhoneNumber: c.PhoneNumber,
		OwnerID:     c.OwnerID.String(),
	}, nil
}

func (p *Provider) IsInContacts(ctx context.Context, ownerID, phoneNumber string) (bool, error) {
	return p.contacts.ExistsByOwnerAndPhone(ctx, ownerID, phoneNumber)
}

// ListReports feeds the spam aggregator with stored reports.
func (p *Provider) ListReports(ctx context.Context, phoneNumber string, start, end *time.Time) ([]spam.Report, error) {
	reports, err := p.reports.List(ctx, phoneNumber, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]spam.Report, 0, len(reports))
	for _, r := range reports {
		out = append(out, spam.Report{
			ID:          r.ID.String(),
			PhoneNumber: r.PhoneNumber,
			ReporterID:  r.ReporterID.String(),
			Description: r.Description,
			CreatedAt:   r.CreatedAt,
		})
	}
	return out, nil
}

// RegisteredByPhone resolves a phone number to a registered account.
func (p *Provider) RegisteredByPhone(ctx context.Context, phoneNumber string) (id.UserID, string, bool, error) {
	u, err := p.users.FindByPhone(ctx, phoneNumber)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return id.UserID{}, "", false, nil
		}
		return id.UserID{}, "", false, err
	}
	return u.ID, u.FullName(), true, nil
}

// ContactName resolves a phone number within the owner's address book.
func (p *Provider) ContactName(ctx context.Context, ownerID id.UserID, phoneNumber string) (string, bool, error) {
	c, err := p.contacts.FindByOwnerAndPhone(ctx, ownerID.String(), phoneNumber)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return c.FullName(), true, nil
}

func registeredCandidates(users []user.User) []search.Candidate {
	out := make([]search.Candidate, 0, len(users))
	for _, u := range users {
		out = append(out, search.Candidate{
			Kind:        search.KindRegistered,
			ID:          u.ID.String(),
			DisplayName: u.FullName(),
			PhoneNumber: u.PhoneNumber,
		})
	}
	return out
}

func personalCandidates(contacts []contact.Contact) []search.Candidate {
	out := make([]search.Candidate, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, search.Candidate{
			Kind:        search.KindPersonal,
			ID:          c.ID.String(),
			DisplayName: c.FullName(),
			PhoneNumber: c.PhoneNumber,
			OwnerID:     c.OwnerID.String(),
		})
	}
	return out
}
