// Package user holds the minimal actor record used for check decisions and
// auto-accept audit trails. Authentication lives outside this service.
package user

import (
	"strings"

	"github.com/google/uuid"
)

// User is a decision actor.
type User struct {
	ID        uuid.UUID
	Username  string
	FirstName string
	LastName  string
}

// FullName returns the user's display name, falling back to the username.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}
