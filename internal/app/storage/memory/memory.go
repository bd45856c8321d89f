// Package memory provides an in-memory implementation of the storage
// interfaces. It is safe for concurrent use and is primarily intended for
// tests and local development.
package memory

import (
	"context"
	"database/sql"
	"sync"

	"github.com/udvasito/storefront/internal/app/domain/catalog"
	"github.com/udvasito/storefront/internal/app/storage"
)

// Store keeps books and portfolio items in maps guarded by a mutex.
// Identifiers are assigned from a shared monotonic counter, mirroring the
// serial columns of the Postgres schema. Listing preserves insertion order.
type Store struct {
	mu             sync.RWMutex
	nextID         int
	books          map[int]catalog.Book
	bookOrder      []int
	portfolio      map[int]catalog.PortfolioItem
	portfolioOrder []int
}

var _ storage.BookStore = (*Store)(nil)
var _ storage.PortfolioStore = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		nextID:    1,
		books:     make(map[int]catalog.Book),
		portfolio: make(map[int]catalog.PortfolioItem),
	}
}

func (s *Store) nextIDLocked() int {
	id := s.nextID
	s.nextID++
	return id
}

// BookStore implementation ---------------------------------------------------

func (s *Store) CreateBook(_ context.Context, book catalog.Book) (catalog.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book.ID = s.nextIDLocked()
	s.books[book.ID] = book
	s.bookOrder = append(s.bookOrder, book.ID)
	return book, nil
}

func (s *Store) UpdateBook(_ context.Context, book catalog.Book) (catalog.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[book.ID]; !ok {
		return catalog.Book{}, sql.ErrNoRows
	}
	s.books[book.ID] = book
	return book, nil
}

func (s *Store) GetBook(_ context.Context, id int) (catalog.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	book, ok := s.books[id]
	if !ok {
		return catalog.Book{}, sql.ErrNoRows
	}
	return book, nil
}

func (s *Store) ListBooks(_ context.Context) ([]catalog.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]catalog.Book, 0, len(s.bookOrder))
	for _, id := range s.bookOrder {
		if book, ok := s.books[id]; ok {
			result = append(result, book)
		}
	}
	return result, nil
}

func (s *Store) DeleteBook(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Deleting an absent row succeeds.
	delete(s.books, id)
	s.bookOrder = removeID(s.bookOrder, id)
	return nil
}

func removeID(order []int, id int) []int {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

// PortfolioStore implementation ----------------------------------------------

func (s *Store) CreatePortfolioItem(_ context.Context, item catalog.PortfolioItem) (catalog.PortfolioItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = s.nextIDLocked()
	s.portfolio[item.ID] = item
	s.portfolioOrder = append(s.portfolioOrder, item.ID)
	return item, nil
}

func (s *Store) UpdatePortfolioItem(_ context.Context, item catalog.PortfolioItem) (catalog.PortfolioItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.portfolio[item.ID]; !ok {
		return catalog.PortfolioItem{}, sql.ErrNoRows
	}
	s.portfolio[item.ID] = item
	return item, nil
}

func (s *Store) GetPortfolioItem(_ context.Context, id int) (catalog.PortfolioItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.portfolio[id]
	if !ok {
		return catalog.PortfolioItem{}, sql.ErrNoRows
	}
	return item, nil
}

func (s *Store) ListPortfolioItems(_ context.Context) ([]catalog.PortfolioItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]catalog.PortfolioItem, 0, len(s.portfolioOrder))
	for _, id := range s.portfolioOrder {
		if item, ok := s.portfolio[id]; ok {
			result = append(result, item)
		}
	}
	return result, nil
}

func (s *Store) DeletePortfolioItem(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.portfolio, id)
	s.portfolioOrder = removeID(s.portfolioOrder, id)
	return nil
}
