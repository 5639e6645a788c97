package catalog

import (
	"context"
	"errors"

	"cuattro/internal/category"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// price is exchanged as text so no numeric codec is needed for decimal.Decimal.
const selectItem = `
	SELECT id, name, description, price::text, unit, base_quantity,
	       category_id, image_url, available, featured, display_order, tags
	FROM items
`

func scanItem(row pgx.Row) (*Item, error) {
	var (
		item  Item
		price string
	)
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&price,
		&item.Unit,
		&item.BaseQuantity,
		&item.CategoryID,
		&item.ImageURL,
		&item.Available,
		&item.Featured,
		&item.DisplayOrder,
		&item.Tags,
	)
	if err != nil {
		return nil, err
	}

	item.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, err
	}
	if item.CategoryID != nil {
		item.Category = category.ByID(*item.CategoryID)
	}
	return &item, nil
}

func (r *PostgresRepository) List(ctx context.Context, availableOnly bool) ([]Item, error) {
	rows, err := r.db.Query(ctx, selectItem+`
		WHERE deleted = false
		  AND ($1 = false OR available = true)
		ORDER BY display_order, id
	`, availableOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int) (*Item, error) {
	item, err := scanItem(r.db.QueryRow(ctx, selectItem+`
		WHERE id = $1 AND deleted = false
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, itemNotFound(id)
		}
		return nil, err
	}
	return item, nil
}

func (r *PostgresRepository) Create(ctx context.Context, item *Item) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO items (
			name, description, price, unit, base_quantity, category_id,
			image_url, available, featured, display_order, tags
		)
		VALUES ($1, $2, $3::text::numeric, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`,
		item.Name,
		item.Description,
		item.Price.String(),
		item.Unit,
		item.BaseQuantity,
		item.CategoryID,
		item.ImageURL,
		item.Available,
		item.Featured,
		item.DisplayOrder,
		tagsOrEmpty(item.Tags),
	).Scan(&item.ID)
}

func (r *PostgresRepository) Update(ctx context.Context, item *Item) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE items
		SET name = $1,
		    description = $2,
		    price = $3::text::numeric,
		    unit = $4,
		    base_quantity = $5,
		    category_id = $6,
		    image_url = $7,
		    available = $8,
		    featured = $9,
		    display_order = $10,
		    tags = $11,
		    updated_at = now()
		WHERE id = $12 AND deleted = false
	`,
		item.Name,
		item.Description,
		item.Price.String(),
		item.Unit,
		item.BaseQuantity,
		item.CategoryID,
		item.ImageURL,
		item.Available,
		item.Featured,
		item.DisplayOrder,
		tagsOrEmpty(item.Tags),
		item.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return itemNotFound(item.ID)
	}
	return nil
}

func (r *PostgresRepository) SoftDelete(ctx context.Context, id int) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE items
		SET deleted = true,
		    available = false,
		    updated_at = now()
		WHERE id = $1 AND deleted = false
	`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return itemNotFound(id)
	}
	return nil
}

func (r *PostgresRepository) SetImageURL(ctx context.Context, id int, url string) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE items
		SET image_url = $1,
		    updated_at = now()
		WHERE id = $2 AND deleted = false
	`, url, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return itemNotFound(id)
	}
	return nil
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
