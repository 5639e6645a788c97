package order

import "context"

type Repository interface {
	// Create stores the order and its lines together.
	Create(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id int) (*Order, error)
	// List returns orders newest first; an empty userID lists everyone's.
	List(ctx context.Context, userID string) ([]Order, error)
	UpdateStatus(ctx context.Context, id int, from, to Status) error
}
