package models

import (
	"time"
)

type UserRole string

const (
	RoleAthlete UserRole = "athlete"
	RoleCoach   UserRole = "coach"
)

// ValidRole reports whether r is one of the enumerated account roles.
func ValidRole(r UserRole) bool {
	return r == RoleAthlete || r == RoleCoach
}

// User is a credential-store record. Records are immutable once created:
// there are no update or delete paths in this service.
//
// PasswordHash is the hex form of an unsalted SHA-256 digest of the plaintext
// password. This keeps the store byte-compatible with the legacy database it
// replaces (same plaintext always yields the same stored hash) and is a known
// weakness, not an oversight.
type User struct {
	ID           uint     `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string   `json:"username" gorm:"uniqueIndex;not null;size:255"`
	FullName     string   `json:"full_name" gorm:"not null;size:100"`
	PasswordHash string   `json:"-" gorm:"not null;size:64"`
	Role         UserRole `json:"role" gorm:"not null;size:16"`

	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// Identity is the authenticated view of a user, the only thing the
// credential store hands back on a successful login.
type Identity struct {
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
}
