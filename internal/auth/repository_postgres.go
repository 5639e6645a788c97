package auth

import (
	"context"
	"errors"

	"cuattro/internal/apperr"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Provision(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, name, email, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    email = EXCLUDED.email,
		    updated_at = now()
		RETURNING role, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		user.ID, user.Name, user.Email, int(user.Role),
	).Scan(&user.Role, &user.CreatedAt, &user.UpdatedAt)
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	query := `
		SELECT id, name, email, role, created_at, updated_at
		FROM users WHERE id = $1
	`
	var u User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFoundf("Usuário %s não encontrado.", id)
		}
		return nil, err
	}
	return &u, nil
}

func (r *PostgresUserRepository) List(ctx context.Context) ([]User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, email, role, created_at, updated_at
		FROM users
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PostgresUserRepository) UpdateRole(ctx context.Context, id string, role Role) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE users SET role = $1, updated_at = now() WHERE id = $2
	`, int(role), id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFoundf("Usuário %s não encontrado.", id)
	}
	return nil
}

func (r *PostgresUserRepository) UpdateName(ctx context.Context, id, name string) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE users SET name = $1, updated_at = now() WHERE id = $2
	`, name, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFoundf("Usuário %s não encontrado.", id)
	}
	return nil
}
