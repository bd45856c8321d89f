// Package postgres implements the storage interfaces backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"

	"github.com/udvasito/storefront/internal/app/domain/catalog"
	"github.com/udvasito/storefront/internal/app/storage"
)

// Store implements the storage interfaces over a database handle.
type Store struct {
	db *sql.DB
}

var _ storage.BookStore = (*Store)(nil)
var _ storage.PortfolioStore = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// --- BookStore --------------------------------------------------------------

func (s *Store) CreateBook(ctx context.Context, book catalog.Book) (catalog.Book, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO books (title, author, price, description, cover_image, category, featured, isbn, pages, published_year, in_stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`, book.Title, book.Author, book.Price, book.Description, book.CoverImage, book.Category,
		book.Featured, nullString(book.ISBN), nullInt(book.Pages), nullInt(book.PublishedYear), book.InStock)

	if err := row.Scan(&book.ID); err != nil {
		return catalog.Book{}, err
	}
	return book, nil
}

func (s *Store) UpdateBook(ctx context.Context, book catalog.Book) (catalog.Book, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE books
		SET title = $2, author = $3, price = $4, description = $5, cover_image = $6,
		    category = $7, featured = $8, isbn = $9, pages = $10, published_year = $11, in_stock = $12
		WHERE id = $1
	`, book.ID, book.Title, book.Author, book.Price, book.Description, book.CoverImage,
		book.Category, book.Featured, nullString(book.ISBN), nullInt(book.Pages), nullInt(book.PublishedYear), book.InStock)
	if err != nil {
		return catalog.Book{}, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return catalog.Book{}, sql.ErrNoRows
	}
	return book, nil
}

func (s *Store) GetBook(ctx context.Context, id int) (catalog.Book, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, author, price, description, cover_image, category, featured, isbn, pages, published_year, in_stock
		FROM books
		WHERE id = $1
	`, id)
	return scanBook(row)
}

func (s *Store) ListBooks(ctx context.Context) ([]catalog.Book, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, author, price, description, cover_image, category, featured, isbn, pages, published_year, in_stock
		FROM books
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []catalog.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, book)
	}
	return result, rows.Err()
}

func (s *Store) DeleteBook(ctx context.Context, id int) error {
	// Row count is deliberately ignored: deleting a missing book succeeds.
	_, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	return err
}

// --- PortfolioStore ---------------------------------------------------------

func (s *Store) CreatePortfolioItem(ctx context.Context, item catalog.PortfolioItem) (catalog.PortfolioItem, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO portfolio (title, description, image, category, author, year)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, item.Title, item.Description, item.Image, item.Category, item.Author, nullInt(item.Year))

	if err := row.Scan(&item.ID); err != nil {
		return catalog.PortfolioItem{}, err
	}
	return item, nil
}

func (s *Store) UpdatePortfolioItem(ctx context.Context, item catalog.PortfolioItem) (catalog.PortfolioItem, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE portfolio
		SET title = $2, description = $3, image = $4, category = $5, author = $6, year = $7
		WHERE id = $1
	`, item.ID, item.Title, item.Description, item.Image, item.Category, item.Author, nullInt(item.Year))
	if err != nil {
		return catalog.PortfolioItem{}, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return catalog.PortfolioItem{}, sql.ErrNoRows
	}
	return item, nil
}

func (s *Store) GetPortfolioItem(ctx context.Context, id int) (catalog.PortfolioItem, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, image, category, author, year
		FROM portfolio
		WHERE id = $1
	`, id)
	return scanPortfolioItem(row)
}

func (s *Store) ListPortfolioItems(ctx context.Context) ([]catalog.PortfolioItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, image, category, author, year
		FROM portfolio
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []catalog.PortfolioItem
	for rows.Next() {
		item, err := scanPortfolioItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (s *Store) DeletePortfolioItem(ctx context.Context, id int) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM portfolio WHERE id = $1`, id)
	return err
}

// --- scanning helpers -------------------------------------------------------

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (catalog.Book, error) {
	var (
		book  catalog.Book
		isbn  sql.NullString
		pages sql.NullInt64
		year  sql.NullInt64
	)
	if err := row.Scan(&book.ID, &book.Title, &book.Author, &book.Price, &book.Description,
		&book.CoverImage, &book.Category, &book.Featured, &isbn, &pages, &year, &book.InStock); err != nil {
		return catalog.Book{}, err
	}
	if isbn.Valid {
		book.ISBN = isbn.String
	}
	if pages.Valid {
		book.Pages = int(pages.Int64)
	}
	if year.Valid {
		book.PublishedYear = int(year.Int64)
	}
	return book, nil
}

func scanPortfolioItem(row rowScanner) (catalog.PortfolioItem, error) {
	var (
		item catalog.PortfolioItem
		year sql.NullInt64
	)
	if err := row.Scan(&item.ID, &item.Title, &item.Description, &item.Image,
		&item.Category, &item.Author, &year); err != nil {
		return catalog.PortfolioItem{}, err
	}
	if year.Valid {
		item.Year = int(year.Int64)
	}
	return item, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullInt(n int) sql.NullInt64 {
	if n == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(n), Valid: true}
}
