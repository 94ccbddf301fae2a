package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/benedict-erwin/weather-insight/internal/entities/users"
	"github.com/benedict-erwin/weather-insight/internal/repository"
)

// UserRepository stores accounts in the users table
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts u; ErrDuplicate when the email is taken
func (r *UserRepository) Create(ctx context.Context, u *users.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, password, created_at) VALUES (?, ?, ?, ?)`,
		u.ID, u.Email, u.Password, u.CreatedAt.UnixNano(),
	)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByEmail returns nil, nil when no user matches
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*users.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, email, password, created_at FROM users WHERE email = ?`, email)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

// FindAll returns every user, oldest first
func (r *UserRepository) FindAll(ctx context.Context) ([]users.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, email, password, created_at FROM users ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []users.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*users.User, error) {
	var (
		u       users.User
		created int64
	)
	if err := s.Scan(&u.ID, &u.Email, &u.Password, &created); err != nil {
		return nil, err
	}
	u.CreatedAt = time.Unix(0, created)
	return &u, nil
}
