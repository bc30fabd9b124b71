// Package domain holds typed identifiers shared across services. IDs must be
// valid, non-nil UUIDs; parsing enforces that invariant at trust boundaries.
package domain

import (
	"github.com/google/uuid"

	dErrors "truedial/pkg/domain-errors"
)

type (
	UserID        uuid.UUID
	ContactID     uuid.UUID
	ReportID      uuid.UUID
	InteractionID uuid.UUID
)

func NewUserID() UserID               { return UserID(uuid.New()) }
func NewContactID() ContactID         { return ContactID(uuid.New()) }
func NewReportID() ReportID           { return ReportID(uuid.New()) }
func NewInteractionID() InteractionID { return InteractionID(uuid.New()) }

func (id UserID) String() string        { return uuid.UUID(id).String() }
func (id ContactID) String() string     { return uuid.UUID(id).String() }
func (id ReportID) String() string      { return uuid.UUID(id).String() }
func (id InteractionID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id ContactID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id ReportID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id InteractionID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s)
	return UserID(u), err
}

func ParseContactID(s string) (ContactID, error) {
	u, err := parseUUID(s)
	return ContactID(u), err
}

func ParseReportID(s string) (ReportID, error) {
	u, err := parseUUID(s)
	return ReportID(u), err
}

func ParseInteractionID(s string) (InteractionID, error) {
	u, err := parseUUID(s)
	return InteractionID(u), err
}

func parseUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "id is not a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be the nil UUID")
	}
	return u, nil
}
