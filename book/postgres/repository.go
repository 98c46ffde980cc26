package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/marcelsud/bookshelf-api/book"
	_ "github.com/lib/pq" // PostgreSQL driver
)

/*
PostgreSQL implementation of book.Repository

- ids are generated by the service, the table keeps a BIGSERIAL seq column
  only to preserve insertion order for SelectAll
- placeholders are $1, $2, ...
- CreateTable is idempotent and runs on startup
*/

type Repository struct {
	DB *sql.DB
}

const columns = "id, name, year, author, summary, publisher, page_count, read_page, finished, reading, inserted_at, updated_at"

// NewRepository opens a PostgreSQL repository with the default pool (25, 5, 5 min)
func NewRepository(connectionString string) (*Repository, error) {
	return NewRepositoryWithPoolConfig(connectionString, 25, 5, 5)
}

// NewRepositoryWithPoolConfig opens a PostgreSQL repository with a custom pool
// maxOpenConns: maximum simultaneous connections (0 = unlimited)
// maxIdleConns: maximum idle connections kept in the pool
// maxLifeMinutes: maximum minutes a connection may be reused
func NewRepositoryWithPoolConfig(connectionString string, maxOpenConns, maxIdleConns, maxLifeMinutes int) (*Repository, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	if maxIdleConns > 0 {
		db.SetMaxIdleConns(maxIdleConns)
	}
	if maxLifeMinutes > 0 {
		db.SetConnMaxLifetime(time.Duration(maxLifeMinutes) * time.Minute)
	}

	return &Repository{
		DB: db,
	}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBook(s scanner) (book.Book, error) {
	var b book.Book
	err := s.Scan(
		&b.ID,
		&b.Name,
		&b.Year,
		&b.Author,
		&b.Summary,
		&b.Publisher,
		&b.PageCount,
		&b.ReadPage,
		&b.Finished,
		&b.Reading,
		&b.InsertedAt,
		&b.UpdatedAt,
	)
	return b, err
}

func (r *Repository) Select(ctx context.Context, id string) (book.Book, error) {
	query := "SELECT " + columns + " FROM books WHERE id = $1"

	b, err := scanBook(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return book.Book{}, book.ErrNotFound
	}
	if err != nil {
		return book.Book{}, fmt.Errorf("selecting book: %w", err)
	}

	return b, nil
}

func (r *Repository) SelectAll(ctx context.Context) ([]book.Book, error) {
	query := "SELECT " + columns + " FROM books ORDER BY seq"

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("selecting books: %w", err)
	}
	defer rows.Close()

	books := []book.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning book: %w", err)
		}
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating books: %w", err)
	}

	return books, nil
}

func (r *Repository) Insert(ctx context.Context, b book.Book) (string, error) {
	query := `
		INSERT INTO books (` + columns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	var id string
	err := r.DB.QueryRowContext(ctx, query,
		b.ID, b.Name, b.Year, b.Author, b.Summary, b.Publisher,
		b.PageCount, b.ReadPage, b.Finished, b.Reading, b.InsertedAt, b.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("inserting book: %w", err)
	}

	return id, nil
}

// Update rewrites every mutable column. id and inserted_at are never touched.
func (r *Repository) Update(ctx context.Context, b book.Book) error {
	query := `
		UPDATE books
		SET name = $1, year = $2, author = $3, summary = $4, publisher = $5,
			page_count = $6, read_page = $7, finished = $8, reading = $9, updated_at = $10
		WHERE id = $11
	`

	result, err := r.DB.ExecContext(ctx, query,
		b.Name, b.Year, b.Author, b.Summary, b.Publisher,
		b.PageCount, b.ReadPage, b.Finished, b.Reading, b.UpdatedAt, b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating book: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rows == 0 {
		return book.ErrNotFound
	}

	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	query := "DELETE FROM books WHERE id = $1"

	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rows == 0 {
		return book.ErrNotFound
	}

	return nil
}

func (r *Repository) Close(ctx context.Context) error {
	if r.DB != nil {
		return r.DB.Close()
	}
	return nil
}

// CreateTable creates the books table if it does not exist
func (r *Repository) CreateTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS books (
			seq BIGSERIAL PRIMARY KEY,
			id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			year INTEGER NOT NULL DEFAULT 0,
			author TEXT NOT NULL DEFAULT '',
			summary TEXT NOT NULL DEFAULT '',
			publisher TEXT NOT NULL DEFAULT '',
			page_count INTEGER NOT NULL DEFAULT 0,
			read_page INTEGER NOT NULL DEFAULT 0,
			finished BOOLEAN NOT NULL DEFAULT FALSE,
			reading BOOLEAN NOT NULL DEFAULT FALSE,
			inserted_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			CHECK (read_page <= page_count)
		)
	`

	_, err := r.DB.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("creating table: %w", err)
	}

	return nil
}

// DropTable removes the books table (used by tests)
func (r *Repository) DropTable(ctx context.Context) error {
	query := "DROP TABLE IF EXISTS books CASCADE"

	_, err := r.DB.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("dropping table: %w", err)
	}

	return nil
}
