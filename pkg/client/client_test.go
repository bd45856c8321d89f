package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/udvasito/storefront/internal/app/domain/catalog"
)

func TestBooksCachesReads(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		json.NewEncoder(w).Encode([]catalog.Book{{ID: 1, Title: "The Silent Echo"}})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	for i := 0; i < 3; i++ {
		books, err := c.Books(context.Background())
		if err != nil {
			t.Fatalf("Books: %v", err)
		}
		if len(books) != 1 || books[0].Title != "The Silent Echo" {
			t.Fatalf("unexpected books: %+v", books)
		}
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Fatalf("server hit %d times, want 1", got)
	}
}

func TestBooksRefetchesWhenStale(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		json.NewEncoder(w).Encode([]catalog.Book{})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	current := time.Now()
	c.now = func() time.Time { return current }

	if _, err := c.Books(context.Background()); err != nil {
		t.Fatalf("Books: %v", err)
	}
	current = current.Add(cacheTTL + time.Second)
	if _, err := c.Books(context.Background()); err != nil {
		t.Fatalf("Books: %v", err)
	}
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Fatalf("server hit %d times, want 2", got)
	}
}

func TestInvalidateForcesRefetch(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		json.NewEncoder(w).Encode([]catalog.Book{})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	if _, err := c.Books(context.Background()); err != nil {
		t.Fatalf("Books: %v", err)
	}
	c.Invalidate("/api/books")
	if _, err := c.Books(context.Background()); err != nil {
		t.Fatalf("Books: %v", err)
	}
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Fatalf("server hit %d times, want 2", got)
	}
}

func TestReadRetriesOnce(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode([]catalog.Book{{ID: 1}})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	books, err := c.Books(context.Background())
	if err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if len(books) != 1 {
		t.Fatalf("unexpected books: %+v", books)
	}
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Fatalf("server hit %d times, want 2", got)
	}
}

func TestMutationSurfacesServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid ID"})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	err := c.DeleteBook(context.Background(), 1)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); got != "Invalid ID (status 400)" {
		t.Fatalf("error = %q", got)
	}
}

func TestMutationGenericFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := New(server.URL, nil)
	err := c.DeleteBook(context.Background(), 1)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); got != "request failed with status 502" {
		t.Fatalf("error = %q", got)
	}
}

func TestLoginAttachesBearerToken(t *testing.T) {
	var sawAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/admin/login":
			json.NewEncoder(w).Encode(map[string]string{"token": "session-token"})
		case "/api/books":
			sawAuth = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode(catalog.Book{ID: 1})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := New(server.URL, nil)
	if err := c.Login(context.Background(), "shelf-keeper"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	price := 450
	if _, err := c.CreateBook(context.Background(), catalog.BookInput{Title: "x", Price: &price}); err != nil {
		t.Fatalf("CreateBook: %v", err)
	}
	if sawAuth != "Bearer session-token" {
		t.Fatalf("Authorization = %q", sawAuth)
	}
}
