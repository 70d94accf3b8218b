package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"usermgmt/internal/db"
	dom "usermgmt/internal/domain/user"
	"usermgmt/internal/logging"
)

const userColumns = `id, first_name, last_name, phone, email, created_at, updated_at`

type UserRepository struct {
	client *db.Client
	logger logging.Logger
}

func NewUserRepository(client *db.Client, logger logging.Logger) dom.Repository {
	return &UserRepository{
		client: client,
		logger: logger.With("component", "user_repo"),
	}
}

func scanUser(row pgx.Row) (*dom.User, error) {
	var u dom.User
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Phone, &u.Email, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*dom.User, error) {
	row := r.client.Pool().QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dom.ErrNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]dom.User, error) {
	rows, err := r.client.Pool().Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	users := make([]dom.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// Create assigns a new id and the timestamps to u.
func (r *UserRepository) Create(ctx context.Context, u *dom.User) error {
	id := uuid.NewString()
	row := r.client.Pool().QueryRow(ctx,
		`INSERT INTO users (id, first_name, last_name, phone, email)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at`,
		id, u.FirstName, u.LastName, u.Phone, u.Email)
	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	u.ID = id
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *dom.User) error {
	row := r.client.Pool().QueryRow(ctx,
		`UPDATE users
		 SET first_name = $2, last_name = $3, phone = $4, email = $5, updated_at = now()
		 WHERE id = $1
		 RETURNING created_at, updated_at`,
		u.ID, u.FirstName, u.LastName, u.Phone, u.Email)
	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.ErrNotFound
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.client.Pool().Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dom.ErrNotFound
	}
	return nil
}
