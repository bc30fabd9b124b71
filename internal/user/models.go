package user

import (
	"strings"
	"time"

	id "truedial/pkg/domain"
)

// User is a registered identity, keyed by canonical phone number.
type User struct {
	ID           id.UserID
	PhoneNumber  string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName returns first and last name joined; falls back to the phone number
// when both are blank so a display name is always available.
func (u User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.PhoneNumber
	}
	return name
}
