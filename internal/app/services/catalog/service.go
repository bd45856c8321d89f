// Package catalog implements the content-management operations over books
// and portfolio items.
package catalog

import (
	"context"
	"fmt"

	domain "github.com/udvasito/storefront/internal/app/domain/catalog"
	"github.com/udvasito/storefront/internal/app/metrics"
	"github.com/udvasito/storefront/internal/app/storage"
	"github.com/udvasito/storefront/internal/logging"
)

// Service validates catalog writes and delegates persistence to the stores.
// Missing rows surface as sql.ErrNoRows from the store, unchanged.
type Service struct {
	books     storage.BookStore
	portfolio storage.PortfolioStore
	log       *logging.Logger
}

// New creates a catalog service.
func New(books storage.BookStore, portfolio storage.PortfolioStore, log *logging.Logger) *Service {
	if log == nil {
		log = logging.NewDefault("catalog")
	}
	return &Service{books: books, portfolio: portfolio, log: log}
}

// ListBooks returns every book.
func (s *Service) ListBooks(ctx context.Context) ([]domain.Book, error) {
	return s.books.ListBooks(ctx)
}

// GetBook returns one book by id.
func (s *Service) GetBook(ctx context.Context, id int) (domain.Book, error) {
	return s.books.GetBook(ctx, id)
}

// CreateBook validates the insert schema and persists the new book. On
// validation failure nothing is written.
func (s *Service) CreateBook(ctx context.Context, input domain.BookInput) (domain.Book, error) {
	if err := input.Validate(); err != nil {
		return domain.Book{}, err
	}

	book, err := s.books.CreateBook(ctx, input.Book())
	if err != nil {
		return domain.Book{}, fmt.Errorf("create book: %w", err)
	}

	metrics.RecordCatalogWrite("books", "create")
	s.log.WithContext(ctx).WithFields(map[string]any{"id": book.ID, "title": book.Title}).Info("book created")
	return book, nil
}

// PatchBook applies a partial update. The read-then-write pair is not
// transactional; catalog writes come from a single admin session.
func (s *Service) PatchBook(ctx context.Context, id int, patch domain.BookPatch) (domain.Book, error) {
	book, err := s.books.GetBook(ctx, id)
	if err != nil {
		return domain.Book{}, err
	}

	patch.Apply(&book)
	updated, err := s.books.UpdateBook(ctx, book)
	if err != nil {
		return domain.Book{}, err
	}

	metrics.RecordCatalogWrite("books", "update")
	s.log.WithContext(ctx).WithField("id", id).Info("book updated")
	return updated, nil
}

// DeleteBook removes a book. Deleting an absent book succeeds.
func (s *Service) DeleteBook(ctx context.Context, id int) error {
	if err := s.books.DeleteBook(ctx, id); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	metrics.RecordCatalogWrite("books", "delete")
	s.log.WithContext(ctx).WithField("id", id).Info("book deleted")
	return nil
}

// ListPortfolio returns every portfolio item.
func (s *Service) ListPortfolio(ctx context.Context) ([]domain.PortfolioItem, error) {
	return s.portfolio.ListPortfolioItems(ctx)
}

// CreatePortfolioItem validates and persists a new portfolio item.
func (s *Service) CreatePortfolioItem(ctx context.Context, input domain.PortfolioInput) (domain.PortfolioItem, error) {
	if err := input.Validate(); err != nil {
		return domain.PortfolioItem{}, err
	}

	item, err := s.portfolio.CreatePortfolioItem(ctx, input.Item())
	if err != nil {
		return domain.PortfolioItem{}, fmt.Errorf("create portfolio item: %w", err)
	}

	metrics.RecordCatalogWrite("portfolio", "create")
	s.log.WithContext(ctx).WithFields(map[string]any{"id": item.ID, "title": item.Title}).Info("portfolio item created")
	return item, nil
}

// PatchPortfolioItem applies a partial update to a portfolio item. The
// operation exists for storage parity; the public API does not route it.
func (s *Service) PatchPortfolioItem(ctx context.Context, id int, patch domain.PortfolioPatch) (domain.PortfolioItem, error) {
	item, err := s.portfolio.GetPortfolioItem(ctx, id)
	if err != nil {
		return domain.PortfolioItem{}, err
	}

	patch.Apply(&item)
	updated, err := s.portfolio.UpdatePortfolioItem(ctx, item)
	if err != nil {
		return domain.PortfolioItem{}, err
	}

	metrics.RecordCatalogWrite("portfolio", "update")
	return updated, nil
}

// DeletePortfolioItem removes a portfolio item; absent ids succeed.
func (s *Service) DeletePortfolioItem(ctx context.Context, id int) error {
	if err := s.portfolio.DeletePortfolioItem(ctx, id); err != nil {
		return fmt.Errorf("delete portfolio item: %w", err)
	}
	metrics.RecordCatalogWrite("portfolio", "delete")
	s.log.WithContext(ctx).WithField("id", id).Info("portfolio item deleted")
	return nil
}
