package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound indicates the requested user does not exist in storage.
var ErrNotFound = errors.New("user not found")

// Storage persists users. There is deliberately no update or delete.
type Storage interface {
	// List returns all users.
	List(ctx context.Context) ([]User, error)

	// GetByID returns ErrNotFound when id is unknown.
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByUsername returns ErrNotFound when no user has that username.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Create inserts a user and returns the stored row with its assigned id.
	Create(ctx context.Context, username, passwordHash string, isAdmin bool) (*User, error)
}

type sqlStorage struct {
	db *sql.DB
}

func NewStorage(db *sql.DB) Storage {
	return &sqlStorage{db: db}
}

func (s *sqlStorage) List(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, username, password_hash, is_admin FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsAdmin); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *sqlStorage) GetByID(ctx context.Context, id int64) (*User, error) {
	u := &User{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, is_admin FROM users WHERE id = $1", id).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsAdmin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

func (s *sqlStorage) GetByUsername(ctx context.Context, username string) (*User, error) {
	u := &User{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, is_admin FROM users WHERE username = $1", username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsAdmin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return u, nil
}

func (s *sqlStorage) Create(ctx context.Context, username, passwordHash string, isAdmin bool) (*User, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO users (username, password_hash, is_admin) VALUES ($1, $2, $3) RETURNING id",
		username, passwordHash, isAdmin).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	// Re-read so the caller sees exactly what the store holds.
	return s.GetByID(ctx, id)
}
