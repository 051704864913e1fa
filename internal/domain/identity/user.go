package identity

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/rosemer/ledger/internal/domain/shared"
)

// Role enumerates the access levels a user can hold
type Role string

const (
	RoleAdministrator Role = "Administrator"
	RoleAttendant     Role = "Attendant"
)

// IsValid reports whether the role is one of the known values
func (r Role) IsValid() bool {
	return r == RoleAdministrator || r == RoleAttendant
}

// User is a local account. Passwords are stored as bcrypt hashes.
type User struct {
	shared.BaseEntity
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         Role   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a user with a freshly hashed password
func NewUser(username, password string, role Role) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "username is required")
	}
	if len(password) < 6 {
		return nil, shared.NewDomainError("INVALID_INPUT", "password must be at least 6 characters")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "unknown role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}, nil
}

// CheckPassword reports whether the plaintext matches the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword replaces the stored hash
func (u *User) ChangePassword(newPassword string) error {
	if len(newPassword) < 6 {
		return shared.NewDomainError("INVALID_INPUT", "password must be at least 6 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.Touch()
	return nil
}

// IsAdministrator reports whether the user holds the admin role
func (u *User) IsAdministrator() bool {
	return u.Role == RoleAdministrator
}
