package contact

import (
	"strings"
	"time"

	id "truedial/pkg/domain"
)

// Contact is a private address-book entry owned by one account. The phone
// number is stored canonically when it normalizes; legacy formats are kept
// as-is so old imports remain searchable via phone variants.
type Contact struct {
	ID          id.ContactID
	OwnerID     id.UserID
	FirstName   string
	LastName    string
	PhoneNumber string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (c Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
