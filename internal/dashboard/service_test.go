package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"truedial/internal/interaction"
	"truedial/internal/report"
	"truedial/internal/user"
	id "truedial/pkg/domain"
)

type fakeUsers struct {
	byID map[string]user.User
}

func (f *fakeUsers) Get(_ context.Context, userID string) (user.User, error) {
	if u, ok := f.byID[userID]; ok {
		return u, nil
	}
	return user.User{}, context.Canceled
}

type fakeTop struct {
	result []interaction.TopContact
}

func (f *fakeTop) TopContacts(_ context.Context, _ id.UserID, _ int) ([]interaction.TopContact, error) {
	return f.result, nil
}

type DashboardSuite struct {
	suite.Suite
	interactions *interaction.InMemoryStore
	reports      *report.InMemoryStore
	users        *fakeUsers
	top          *fakeTop
	svc          *Service
	me           user.User
	peer         user.User
	now          time.Time
}

func TestDashboardSuite(t *testing.T) {
	suite.Run(t, new(DashboardSuite))
}

func (s *DashboardSuite) SetupTest() {
	s.interactions = interaction.NewInMemoryStore()
	s.reports = report.NewInMemoryStore()
	s.me = user.User{ID: id.NewUserID(), FirstName: "Asha", LastName: "Rao", PhoneNumber: "+919876543210", Email: "asha@example.com"}
	s.peer = user.User{ID: id.NewUserID(), FirstName: "Ravi", PhoneNumber: "+911111111111"}
	s.users = &fakeUsers{byID: map[string]user.User{s.me.ID.String(): s.me, s.peer.ID.String(): s.peer}}
	s.top = &fakeTop{}
	s.now = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	var err error
	s.svc, err = New(s.interactions, s.top, s.reports, s.users,
		WithClock(func() time.Time { return s.now }))
	s.Require().NoError(err)
}

func (s *DashboardSuite) save(in interaction.Interaction) {
	if in.ID.IsNil() {
		in.ID = id.NewInteractionID()
	}
	s.Require().NoError(s.interactions.Save(context.Background(), in))
}

func (s *DashboardSuite) TestSummarize() {
	ctx := context.Background()

	// Two outgoing calls, one incoming message from a registered peer.
	s.save(interaction.Interaction{
		InitiatorID: s.me.ID, ReceiverPhone: s.peer.PhoneNumber, ReceiverID: &s.peer.ID,
		Type: interaction.TypeCall, CreatedAt: s.now.Add(-2 * time.Hour),
	})
	s.save(interaction.Interaction{
		InitiatorID: s.me.ID, ReceiverPhone: "+912222222222",
		Type: interaction.TypeCall, CreatedAt: s.now.Add(-26 * time.Hour),
	})
	s.save(interaction.Interaction{
		InitiatorID: s.peer.ID, ReceiverPhone: s.me.PhoneNumber, ReceiverID: &s.me.ID,
		Type: interaction.TypeMessage, CreatedAt: s.now.Add(-1 * time.Hour),
	})

	// One report against me, one made by me.
	s.Require().NoError(s.reports.Save(ctx, report.Report{
		ID: id.NewReportID(), PhoneNumber: s.me.PhoneNumber, ReporterID: s.peer.ID, CreatedAt: s.now,
	}))
	s.Require().NoError(s.reports.Save(ctx, report.Report{
		ID: id.NewReportID(), PhoneNumber: "+913333333333", ReporterID: s.me.ID, CreatedAt: s.now,
	}))

	s.top.result = []interaction.TopContact{{ContactName: "Ravi", ContactPhone: s.peer.PhoneNumber, InteractionCount: 1, IsRegistered: true}}

	summary, err := s.svc.Summarize(ctx, s.me.ID)
	s.Require().NoError(err)

	s.Equal(UserInfo{Name: "Asha Rao", Phone: "+919876543210", Email: "asha@example.com"}, summary.User)
	s.Equal(3, summary.TotalInteractions)
	s.Equal(Stats{Calls: 2, Messages: 1}, summary.InteractionStats)
	s.Equal(SpamCounts{Received: 1, Reported: 1}, summary.SpamStats)
	s.Equal(s.top.result, summary.TopContacts)

	s.Require().Len(summary.RecentInteractions, 3)
	s.Equal("incoming", summary.RecentInteractions[0].Direction)
	s.Equal("Ravi", summary.RecentInteractions[0].With)
	s.Equal("outgoing", summary.RecentInteractions[1].Direction)
	s.Equal("Ravi", summary.RecentInteractions[1].With)
	s.Equal("+912222222222", summary.RecentInteractions[2].With)
}

func (s *DashboardSuite) TestActivityTrendWindows() {
	// Today, two days ago, and just outside the 7-day window.
	s.save(interaction.Interaction{
		InitiatorID: s.me.ID, ReceiverPhone: "+912222222222",
		Type: interaction.TypeCall, CreatedAt: s.now.Add(-1 * time.Hour),
	})
	s.save(interaction.Interaction{
		InitiatorID: s.me.ID, ReceiverPhone: "+912222222222",
		Type: interaction.TypeCall, CreatedAt: s.now.AddDate(0, 0, -2),
	})
	s.save(interaction.Interaction{
		InitiatorID: s.me.ID, ReceiverPhone: "+912222222222",
		Type: interaction.TypeCall, CreatedAt: s.now.AddDate(0, 0, -8),
	})

	summary, err := s.svc.Summarize(context.Background(), s.me.ID)
	s.Require().NoError(err)

	trend := summary.ActivityTrend
	s.Require().Len(trend, 7)
	s.Equal("2026-08-24", trend[0].Date)
	s.Equal("2026-08-30", trend[6].Date)
	s.Equal(1, trend[6].Count)
	s.Equal(1, trend[4].Count)

	total := 0
	for _, p := range trend {
		total += p.Count
	}
	s.Equal(2, total)
}
