// Package dashboard assembles a user's activity overview: interaction totals,
// recent history, top contacts, spam standing, and a 7-day trend.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"truedial/internal/interaction"
	"truedial/internal/user"
	id "truedial/pkg/domain"
	dErrors "truedial/pkg/domain-errors"
)

const (
	recentLimit     = 10
	topContactLimit = 5
	trendDays       = 7
)

type InteractionSource interface {
	ListInvolving(ctx context.Context, userID string, limit int) ([]interaction.Interaction, error)
	CountInvolvingByType(ctx context.Context, userID string) (map[interaction.Type]int, error)
	CountInvolvingBetween(ctx context.Context, userID string, start, end time.Time) (int, error)
}

type TopContactsProvider interface {
	TopContacts(ctx context.Context, userID id.UserID, limit int) ([]interaction.TopContact, error)
}

type ReportCounter interface {
	CountByPhone(ctx context.Context, phoneNumber string) (int, error)
	CountByReporter(ctx context.Context, reporterID string) (int, error)
}

type UserSource interface {
	Get(ctx context.Context, userID string) (user.User, error)
}

type UserInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type Stats struct {
	Calls       int `json:"calls"`
	Messages    int `json:"messages"`
	SpamReports int `json:"spam_reports"`
}

type RecentEntry struct {
	Type      string `json:"type"`
	With      string `json:"with"`
	Date      string `json:"date"`
	Direction string `json:"direction"`
}

type SpamCounts struct {
	Received int `json:"received"`
	Reported int `json:"reported"`
}

type TrendPoint struct {
	Date  string `json:"date"`
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type Summary struct {
	User               UserInfo                 `json:"user"`
	TotalInteractions  int                      `json:"total_interactions"`
	InteractionStats   Stats                    `json:"interaction_stats"`
	RecentInteractions []RecentEntry            `json:"recent_interactions"`
	TopContacts        []interaction.TopContact `json:"top_contacts"`
	SpamStats          SpamCounts               `json:"spam_stats"`
	ActivityTrend      []TrendPoint             `json:"activity_trend"`
}

type Service struct {
	interactions InteractionSource
	topContacts  TopContactsProvider
	reports      ReportCounter
	users        UserSource
	now          func() time.Time
}

type Option func(*Service)

// WithClock fixes "now" for deterministic trend windows in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(interactions InteractionSource, topContacts TopContactsProvider, reports ReportCounter, users UserSource, opts ...Option) (*Service, error) {
	if interactions == nil || topContacts == nil || reports == nil || users == nil {
		return nil, fmt.Errorf("all dashboard sources are required")
	}

	svc := &Service{
		interactions: interactions,
		topContacts:  topContacts,
		reports:      reports,
		users:        users,
		now:          func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Summarize gathers every dashboard panel for one user.
func (s *Service) Summarize(ctx context.Context, userID id.UserID) (Summary, error) {
	u, err := s.users.Get(ctx, userID.String())
	if err != nil {
		return Summary{}, err
	}

	byType, err := s.interactions.CountInvolvingByType(ctx, userID.String())
	if err != nil {
		return Summary{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "count interactions")
	}
	stats := Stats{
		Calls:       byType[interaction.TypeCall],
		Messages:    byType[interaction.TypeMessage],
		SpamReports: byType[interaction.TypeSpamReport],
	}
	total := stats.Calls + stats.Messages + stats.SpamReports

	recent, err := s.recentEntries(ctx, u)
	if err != nil {
		return Summary{}, err
	}

	top, err := s.topContacts.TopContacts(ctx, userID, topContactLimit)
	if err != nil {
		return Summary{}, err
	}

	received, err := s.reports.CountByPhone(ctx, u.PhoneNumber)
	if err != nil {
		return Summary{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "count spam received")
	}
	reported, err := s.reports.CountByReporter(ctx, userID.String())
	if err != nil {
		return Summary{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "count spam reported")
	}

	trend, err := s.activityTrend(ctx, userID)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		User:               UserInfo{Name: u.FullName(), Phone: u.PhoneNumber, Email: u.Email},
		TotalInteractions:  total,
		InteractionStats:   stats,
		RecentInteractions: recent,
		TopContacts:        top,
		SpamStats:          SpamCounts{Received: received, Reported: reported},
		ActivityTrend:      trend,
	}, nil
}

func (s *Service) recentEntries(ctx context.Context, u user.User) ([]RecentEntry, error) {
	items, err := s.interactions.ListInvolving(ctx, u.ID.String(), recentLimit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "list recent interactions")
	}

	entries := make([]RecentEntry, 0, len(items))
	for _, in := range items {
		entry := RecentEntry{
			Type: string(in.Type),
			Date: in.CreatedAt.Format("2006-01-02 15:04"),
		}
		if in.InitiatorID == u.ID {
			entry.Direction = "outgoing"
			entry.With = s.peerName(ctx, in.ReceiverID, in.ReceiverPhone)
		} else {
			entry.Direction = "incoming"
			entry.With = s.peerName(ctx, &in.InitiatorID, in.ReceiverPhone)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// peerName prefers the registered account's full name and falls back to the
// raw peer phone number.
func (s *Service) peerName(ctx context.Context, peerID *id.UserID, fallbackPhone string) string {
	if peerID == nil {
		return fallbackPhone
	}
	peer, err := s.users.Get(ctx, peerID.String())
	if err != nil {
		return fallbackPhone
	}
	return peer.FullName()
}

func (s *Service) activityTrend(ctx context.Context, userID id.UserID) ([]TrendPoint, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	trend := make([]TrendPoint, 0, trendDays)
	for i := trendDays - 1; i >= 0; i-- {
		dayStart := today.AddDate(0, 0, -i)
		dayEnd := dayStart.AddDate(0, 0, 1)

		count, err := s.interactions.CountInvolvingBetween(ctx, userID.String(), dayStart, dayEnd)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "count daily activity")
		}
		trend = append(trend, TrendPoint{
			Date:  dayStart.Format("2006-01-02"),
			Day:   dayStart.Format("Mon"),
			Count: count,
		})
	}
	return trend, nil
}
