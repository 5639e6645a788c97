package core

import (
	"context"

	"cuattro/internal/catalog"
)

// ItemReader is the read-only view of the catalog that carts and orders use
// to snapshot items.
type ItemReader interface {
	GetItem(ctx context.Context, id int) (*catalog.Item, error)
}
