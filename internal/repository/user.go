package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/user-service/internal/model"
	"github.com/jackc/pgx/v5"
)

// UserRepository stores users in the PostgreSQL "users" table.
type UserRepository struct {
	db DBTX
}

// NewUserRepository returns a repository running its queries on db.
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, password`

// Create inserts u and returns the stored row with its assigned id.
// Any id set on u is ignored.
func (r *UserRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	query := `
		INSERT INTO users (name, password)
		VALUES ($1, $2)
		RETURNING ` + userColumns

	created, err := scanUser(r.db.QueryRow(ctx, query, u.Name, u.Password))
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return created, nil
}

// FindByID returns the user with id, or ErrNotFound.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}

	return u, nil
}

// FindAll returns every user ordered by id. The result is never nil.
func (r *UserRepository) FindAll(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	return r.queryUsers(ctx, query)
}

// FindByName returns the users whose name equals name exactly, ordered by id.
func (r *UserRepository) FindByName(ctx context.Context, name string) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE name = $1 ORDER BY id`

	return r.queryUsers(ctx, query, name)
}

// UpdateByID overwrites name and password of the row at id in one statement.
// It returns ErrNotFound when no row has that id.
func (r *UserRepository) UpdateByID(ctx context.Context, id int64, u *model.User) (*model.User, error) {
	query := `
		UPDATE users
		SET name = $2, password = $3, updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns

	updated, err := scanUser(r.db.QueryRow(ctx, query, id, u.Name, u.Password))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update user %d: %w", id, err)
	}

	return updated, nil
}

// DeleteByID removes the row at id and returns it. It returns ErrNotFound
// when nothing was deleted.
func (r *UserRepository) DeleteByID(ctx context.Context, id int64) (*model.User, error) {
	query := `DELETE FROM users WHERE id = $1 RETURNING ` + userColumns

	deleted, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete user %d: %w", id, err)
	}

	return deleted, nil
}

func (r *UserRepository) queryUsers(ctx context.Context, query string, args ...any) ([]model.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Password); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Name, &u.Password); err != nil {
		return nil, err
	}
	return &u, nil
}
