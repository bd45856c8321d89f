// Package storage declares the persistence interfaces of the storefront.
// Implementations live in the memory and postgres subpackages.
package storage

import (
	"context"

	"github.com/udvasito/storefront/internal/app/domain/catalog"
)

// BookStore persists catalog books. List returns rows in insertion order.
// Get and Update report a missing row as sql.ErrNoRows; Delete of a missing
// row is not an error (the delete contract is idempotent-success).
type BookStore interface {
	CreateBook(ctx context.Context, book catalog.Book) (catalog.Book, error)
	UpdateBook(ctx context.Context, book catalog.Book) (catalog.Book, error)
	GetBook(ctx context.Context, id int) (catalog.Book, error)
	ListBooks(ctx context.Context) ([]catalog.Book, error)
	DeleteBook(ctx context.Context, id int) error
}

// PortfolioStore persists portfolio items with the same conventions as
// BookStore.
type PortfolioStore interface {
	CreatePortfolioItem(ctx context.Context, item catalog.PortfolioItem) (catalog.PortfolioItem, error)
	UpdatePortfolioItem(ctx context.Context, item catalog.PortfolioItem) (catalog.PortfolioItem, error)
	GetPortfolioItem(ctx context.Context, id int) (catalog.PortfolioItem, error)
	ListPortfolioItems(ctx context.Context) ([]catalog.PortfolioItem, error)
	DeletePortfolioItem(ctx context.Context, id int) error
}
