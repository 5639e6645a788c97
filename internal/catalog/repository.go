package catalog

import "context"

// Repository defines all database operations for catalog items.
// Soft-deleted items are never returned.
type Repository interface {
	List(ctx context.Context, availableOnly bool) ([]Item, error)
	FindByID(ctx context.Context, id int) (*Item, error)
	Create(ctx context.Context, item *Item) error
	Update(ctx context.Context, item *Item) error
	SoftDelete(ctx context.Context, id int) error
	SetImageURL(ctx context.Context, id int, url string) error
}
