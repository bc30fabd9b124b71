package interaction

import (
	"time"

	id "truedial/pkg/domain"
)

// Type classifies an interaction.
type Type string

const (
	TypeCall       Type = "call"
	TypeMessage    Type = "message"
	TypeSpamReport Type = "spam_report"
)

// Types lists every valid interaction type, in display order.
var Types = []Type{TypeCall, TypeMessage, TypeSpamReport}

func (t Type) Valid() bool {
	switch t {
	case TypeCall, TypeMessage, TypeSpamReport:
		return true
	}
	return false
}

// Interaction is one call, message, or spam report initiated by a user.
// ReceiverID is set only when the peer is a registered account; the phone
// number is always kept so unregistered peers stay addressable.
type Interaction struct {
	ID            id.InteractionID
	InitiatorID   id.UserID
	ReceiverID    *id.UserID
	ReceiverPhone string
	Type          Type
	Metadata      map[string]any
	CreatedAt     time.Time
}

// PhoneCount is an aggregation bucket: interactions per peer phone.
type PhoneCount struct {
	PhoneNumber string
	Count       int
}

// TopContact is a PhoneCount enriched with the peer's display name.
type TopContact struct {
	ContactName      string `json:"contact_name"`
	ContactPhone     string `json:"contact_phone"`
	InteractionCount int    `json:"interaction_count"`
	IsRegistered     bool   `json:"is_registered"`
}

// RecentPage is one page of a user's interaction history, newest first.
type RecentPage struct {
	Interactions []Interaction `json:"interactions"`
	TotalCount   int           `json:"total_count"`
}
