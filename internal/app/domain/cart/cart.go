// Package cart models the shopper's cart: an ordered collection of book/
// quantity pairs with derived totals. All totals are pure functions of the
// cart contents and are recomputed on every read, never stored.
package cart

import (
	"errors"

	"github.com/udvasito/storefront/internal/app/domain/catalog"
)

// ErrEmptyCart rejects checkout of a cart with no items.
var ErrEmptyCart = errors.New("cart is empty")

const (
	// FreeShippingThreshold is the subtotal above which shipping is free.
	FreeShippingThreshold = 1000
	// ShippingFee is the flat delivery charge below the threshold.
	ShippingFee = 60
)

// Item pairs a book with a positive quantity.
type Item struct {
	Book     catalog.Book `json:"book"`
	Quantity int          `json:"quantity"`
}

// LineTotal is the price contribution of this item.
func (i Item) LineTotal() int {
	return i.Book.Price * i.Quantity
}

// Cart holds the items of one shopping session in insertion order. A book
// appears at most once; adding it again increments the existing quantity.
type Cart struct {
	Items []Item `json:"items"`
}

// Add merges the book into the cart: an existing line gains quantity 1, an
// absent book is appended with quantity 1. Add never fails.
func (c *Cart) Add(book catalog.Book) {
	for i := range c.Items {
		if c.Items[i].Book.ID == book.ID {
			c.Items[i].Quantity++
			return
		}
	}
	c.Items = append(c.Items, Item{Book: book, Quantity: 1})
}

// Remove deletes the line matching bookID. Removing an absent book is a
// no-op.
func (c *Cart) Remove(bookID int) {
	for i := range c.Items {
		if c.Items[i].Book.ID == bookID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// SetQuantity overwrites the quantity of the matching line. Callers are
// responsible for clamping to >= 1; the cart itself does not reject zero or
// negative values. Setting the quantity of an absent book is a no-op.
func (c *Cart) SetQuantity(bookID, quantity int) {
	for i := range c.Items {
		if c.Items[i].Book.ID == bookID {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// Len reports the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.Items)
}

// Subtotal is the sum of all line totals.
func (c *Cart) Subtotal() int {
	sum := 0
	for _, item := range c.Items {
		sum += item.LineTotal()
	}
	return sum
}

// Shipping is zero once the subtotal exceeds the free-shipping threshold,
// otherwise the flat fee.
func (c *Cart) Shipping() int {
	if c.Subtotal() > FreeShippingThreshold {
		return 0
	}
	return ShippingFee
}

// Total is subtotal plus shipping.
func (c *Cart) Total() int {
	return c.Subtotal() + c.Shipping()
}

// Clone returns an independent copy of the cart.
func (c *Cart) Clone() Cart {
	out := Cart{}
	if len(c.Items) > 0 {
		out.Items = make([]Item, len(c.Items))
		copy(out.Items, c.Items)
	}
	return out
}
