package book

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound indicates the requested book does not exist in storage.
var ErrNotFound = errors.New("book not found")

// Storage persists books. Read and create only.
type Storage interface {
	List(ctx context.Context) ([]Book, error)

	// GetByID returns ErrNotFound when id is unknown.
	GetByID(ctx context.Context, id int64) (*Book, error)

	// Create inserts a book and returns the stored row with its assigned id
	// and the is_borrowed default applied.
	Create(ctx context.Context, title, author string) (*Book, error)
}

type sqlStorage struct {
	db *sql.DB
}

func NewStorage(db *sql.DB) Storage {
	return &sqlStorage{db: db}
}

func (s *sqlStorage) List(ctx context.Context) ([]Book, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, author, is_borrowed FROM books ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := make([]Book, 0)
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.IsBorrowed); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func (s *sqlStorage) GetByID(ctx context.Context, id int64) (*Book, error) {
	b := &Book{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, author, is_borrowed FROM books WHERE id = $1", id).
		Scan(&b.ID, &b.Title, &b.Author, &b.IsBorrowed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get book by id: %w", err)
	}
	return b, nil
}

func (s *sqlStorage) Create(ctx context.Context, title, author string) (*Book, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO books (title, author) VALUES ($1, $2) RETURNING id",
		title, author).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert book: %w", err)
	}

	// Re-read so the caller sees the is_borrowed default the store applied.
	return s.GetByID(ctx, id)
}
