package client

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/udvasito/storefront/internal/app/domain/cart"
	"github.com/udvasito/storefront/internal/app/domain/catalog"
)

// cartSlot is the fixed key the cart persists under.
const cartSlot = "udvasito-cart"

// KV is the persistence boundary for the cart. Implementations hold small
// JSON blobs; Get reports whether the key existed.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}

// CartStore owns one shopper's cart and writes it through to a KV on every
// mutation, so the cart survives restarts. It is safe for concurrent use but
// models a single shopper; quantities are the caller's to clamp.
type CartStore struct {
	mu   sync.Mutex
	kv   KV
	cart cart.Cart
}

// NewCartStore loads the persisted cart, starting empty when none exists.
func NewCartStore(kv KV) (*CartStore, error) {
	s := &CartStore{kv: kv}
	raw, ok, err := kv.Get(cartSlot)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if ok {
		if err := json.Unmarshal(raw, &s.cart); err != nil {
			return nil, fmt.Errorf("decode cart: %w", err)
		}
	}
	return s, nil
}

// Add merges the book into the cart.
func (s *CartStore) Add(book catalog.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Add(book)
	return s.persistLocked()
}

// Remove drops the book's line entirely; absent books are a no-op.
func (s *CartStore) Remove(bookID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Remove(bookID)
	return s.persistLocked()
}

// SetQuantity overwrites one line's quantity.
func (s *CartStore) SetQuantity(bookID, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.SetQuantity(bookID, quantity)
	return s.persistLocked()
}

// Clear empties the cart.
func (s *CartStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	return s.persistLocked()
}

// Cart returns a copy of the current cart.
func (s *CartStore) Cart() cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

func (s *CartStore) persistLocked() error {
	raw, err := json.Marshal(s.cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.kv.Set(cartSlot, raw); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}

// FileKV keeps all keys in one JSON file. It suits a single local consumer;
// there is no cross-process locking.
type FileKV struct {
	mu   sync.Mutex
	path string
}

// NewFileKV creates a file-backed KV at path. The file is created on first
// write.
func NewFileKV(path string) *FileKV {
	return &FileKV{path: path}
}

// Get returns the value stored under key.
func (f *FileKV) Get(key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entries, err := f.readLocked()
	if err != nil {
		return nil, false, err
	}
	raw, ok := entries[key]
	return raw, ok, nil
}

// Set writes the value under key.
func (f *FileKV) Set(key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	entries, err := f.readLocked()
	if err != nil {
		return err
	}
	entries[key] = value
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, raw, 0o644)
}

func (f *FileKV) readLocked() (map[string]json.RawMessage, error) {
	entries := make(map[string]json.RawMessage)
	raw, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return entries, nil
	}
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return entries, nil
}
