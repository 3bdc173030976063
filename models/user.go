package models

import "time"

// Role is the authorization tag assigned to a user account at registration.
// Roles are a closed set; anything outside it is rejected at registration time.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleAnalyst       Role = "analyst"
	RoleResearcher    Role = "researcher"
	RoleTechnician    Role = "technician"
	RoleUser          Role = "user"
)

// DefaultRole is assigned when a registration request carries no role.
const DefaultRole = RoleUser

// ValidRole reports whether r is a member of the fixed role set.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdministrator, RoleAnalyst, RoleResearcher, RoleTechnician, RoleUser:
		return true
	}
	return false
}

// User represents an account entity used for authentication and authorization.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user,
	// assigned by the database on insert.
	UserID int64 `json:"-"`

	// Username is the unique, case-sensitive login identifier.
	Username string `json:"username"`

	// Password carries the plaintext password on inbound requests only.
	// It is never persisted; the store keeps only PasswordHash.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized.
	PasswordHash string `json:"-"`

	// Role is the authorization tag attached to the account.
	Role Role `json:"role"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
