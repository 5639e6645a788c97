package order

import (
	"context"
	"errors"
	"fmt"

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

func (r *PostgresRepository) Create(ctx context.Context, o *Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, delivery_address, payment_method, status, total)
		VALUES ($1, $2, $3, $4, $5::text::numeric)
		RETURNING id, created_at, updated_at
	`,
		o.UserID,
		o.DeliveryAddress,
		int(o.PaymentMethod),
		int(o.Status),
		o.Total.String(),
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	batch := &pgx.Batch{}
	for _, it := range o.Items {
		batch.Queue(`
			INSERT INTO order_items (order_id, item_id, quantity, unit_price, total)
			VALUES ($1, $2, $3, $4::text::numeric, $5::text::numeric)
		`, o.ID, it.ItemID, it.Quantity, it.UnitPrice.String(), it.Total.String())
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert order items: %w", err)
	}

	return tx.Commit(ctx)
}

const selectOrder = `
	SELECT id, user_id, delivery_address, payment_method, status, total::text, created_at, updated_at
	FROM orders
`

func scanOrder(row pgx.Row) (*Order, error) {
	var (
		o      Order
		pm, st int
		total  string
	)
	if err := row.Scan(&o.ID, &o.UserID, &o.DeliveryAddress, &pm, &st, &total, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.PaymentMethod = PaymentMethod(pm)
	o.Status = Status(st)

	var err error
	if o.Total, err = decimal.NewFromString(total); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int) (*Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, selectOrder+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, orderNotFound(id)
		}
		return nil, err
	}

	items, err := r.items(ctx, []int{id})
	if err != nil {
		return nil, err
	}
	o.Items = items[id]
	return o, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]Order, error) {
	rows, err := r.db.Query(ctx, selectOrder+`
		WHERE ($1 = '' OR user_id = $1)
		ORDER BY id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		orders []Order
		ids    []int
	)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return orders, nil
	}

	items, err := r.items(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, nil
}

func (r *PostgresRepository) items(ctx context.Context, orderIDs []int) (map[int][]OrderItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT order_id, item_id, quantity, unit_price::text, total::text
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, id
	`, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int][]OrderItem, len(orderIDs))
	for rows.Next() {
		var (
			orderID     int
			it          OrderItem
			unit, total string
		)
		if err := rows.Scan(&orderID, &it.ItemID, &it.Quantity, &unit, &total); err != nil {
			return nil, err
		}
		if it.UnitPrice, err = decimal.NewFromString(unit); err != nil {
			return nil, err
		}
		if it.Total, err = decimal.NewFromString(total); err != nil {
			return nil, err
		}
		out[orderID] = append(out[orderID], it)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int, from, to Status) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE orders
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3
	`, int(to), id, int(from))
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return statusConflict(id)
	}
	return nil
}
