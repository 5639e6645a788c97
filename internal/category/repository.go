package category

import "context"

// Repository defines the data-access contract for categories.
type Repository interface {
	List(ctx context.Context, activeOnly bool) ([]Category, error)
	FindByID(ctx context.Context, id int) (*Category, error)
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
}
