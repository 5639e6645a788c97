package auth

import "context"

// UserRepository defines the data-access contract.
// Service depends ONLY on this interface.
type UserRepository interface {
	// Provision inserts the user when absent and refreshes name and email
	// otherwise. An existing role is never overwritten.
	Provision(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]User, error)
	UpdateRole(ctx context.Context, id string, role Role) error
	UpdateName(ctx context.Context, id, name string) error
}
