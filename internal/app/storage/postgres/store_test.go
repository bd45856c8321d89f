package postgres

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/lib/pq"

	"github.com/udvasito/storefront/internal/app/domain/catalog"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func TestCreateBookReturnsID(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("INSERT INTO books").
		WithArgs("The Silent Echo", "Aminul Islam", 450, "desc", "cover", "Fiction",
			false, sql.NullString{String: "978-984-123-456-7", Valid: true},
			sql.NullInt64{Int64: 256, Valid: true}, sql.NullInt64{Int64: 2024, Valid: true}, true).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	book, err := store.CreateBook(context.Background(), catalog.Book{
		Title: "The Silent Echo", Author: "Aminul Islam", Price: 450,
		Description: "desc", CoverImage: "cover", Category: "Fiction",
		ISBN: "978-984-123-456-7", Pages: 256, PublishedYear: 2024, InStock: true,
	})
	if err != nil {
		t.Fatalf("CreateBook: %v", err)
	}
	if book.ID != 7 {
		t.Fatalf("id = %d, want 7", book.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUpdateBookMissingRow(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("UPDATE books").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := store.UpdateBook(context.Background(), catalog.Book{ID: 99, Title: "ghost"})
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestDeleteBookIgnoresRowCount(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("DELETE FROM books").
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := store.DeleteBook(context.Background(), 99); err != nil {
		t.Fatalf("delete of absent row must succeed, got %v", err)
	}
}

func TestGetBookScansNullables(t *testing.T) {
	store, mock := newMockStore(t)

	cols := []string{"id", "title", "author", "price", "description", "cover_image",
		"category", "featured", "isbn", "pages", "published_year", "in_stock"}
	mock.ExpectQuery("SELECT (.+) FROM books").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(3, "Heritage Tales", "Nusrat Jahan", 390, "d", "c", "Fiction", true, nil, nil, nil, true))

	book, err := store.GetBook(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetBook: %v", err)
	}
	if book.ISBN != "" || book.Pages != 0 || book.PublishedYear != 0 {
		t.Fatalf("null columns must scan to zero values, got %+v", book)
	}
	if !book.Featured {
		t.Fatal("featured = false, want true")
	}
}

func TestListPortfolioItems(t *testing.T) {
	store, mock := newMockStore(t)

	cols := []string{"id", "title", "description", "image", "category", "author", "year"}
	mock.ExpectQuery("SELECT (.+) FROM portfolio").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(1, "Botanical Dreams", "d", "i", "Poetry", "Fatima Rahman", 2024).
			AddRow(2, "Watercolor Memories", "d", "i", "Art", "Kamal Hossain", nil))

	items, err := store.ListPortfolioItems(context.Background())
	if err != nil {
		t.Fatalf("ListPortfolioItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].Year != 2024 || items[1].Year != 0 {
		t.Fatalf("unexpected years: %+v", items)
	}
}

func TestStoreIntegration(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set; skipping postgres integration test")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := EnsureSchema(ctx, db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	store := New(db)
	book, err := store.CreateBook(ctx, catalog.Book{
		Title: "Integration Check", Author: "Test Author", Price: 100,
		Description: "d", CoverImage: "c", Category: "Fiction", InStock: true,
	})
	if err != nil {
		t.Fatalf("create book: %v", err)
	}
	defer store.DeleteBook(ctx, book.ID)

	got, err := store.GetBook(ctx, book.ID)
	if err != nil {
		t.Fatalf("get book: %v", err)
	}
	if got.Title != "Integration Check" {
		t.Fatalf("title = %q", got.Title)
	}

	got.Price = 150
	if _, err := store.UpdateBook(ctx, got); err != nil {
		t.Fatalf("update book: %v", err)
	}

	item, err := store.CreatePortfolioItem(ctx, catalog.PortfolioItem{
		Title: "Integration Item", Description: "d", Image: "i", Category: "c", Author: "a",
	})
	if err != nil {
		t.Fatalf("create portfolio item: %v", err)
	}
	defer store.DeletePortfolioItem(ctx, item.ID)
}
