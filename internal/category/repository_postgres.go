package category

import (
	"context"
	"errors"

	"cuattro/internal/apperr"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, activeOnly bool) ([]Category, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, display_order, active
		FROM categories
		WHERE ($1 = false OR active = true)
		ORDER BY display_order, id
	`, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Order, &c.Active); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int) (*Category, error) {
	var c Category
	err := r.db.QueryRow(ctx, `
		SELECT id, name, description, display_order, active
		FROM categories
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Description, &c.Order, &c.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFoundf("Categoria %d não encontrada.", id)
		}
		return nil, err
	}
	return &c, nil
}

// Create inserts a category. Names are not unique at the database level, so
// two concurrent get-or-create calls for the same name can both insert.
func (r *PostgresRepository) Create(ctx context.Context, c *Category) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO categories (name, description, display_order, active)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, c.Name, c.Description, c.Order, c.Active).Scan(&c.ID)
}

func (r *PostgresRepository) Update(ctx context.Context, c *Category) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE categories
		SET name = $1,
		    description = $2,
		    display_order = $3,
		    active = $4,
		    updated_at = now()
		WHERE id = $5
	`, c.Name, c.Description, c.Order, c.Active, c.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFoundf("Categoria %d não encontrada.", c.ID)
	}
	return nil
}
