package identity

import "context"

// UserRepository defines persistence for user accounts
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
	Save(ctx context.Context, user *User) error
	Delete(ctx context.Context, username string) error
}
