package client

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/udvasito/storefront/internal/app/domain/cart"
	"github.com/udvasito/storefront/internal/app/domain/order"
	"github.com/udvasito/storefront/internal/mailer"
)

// Checkout runs the shopper's order flow against a cart store. The
// notification is best effort: whether it succeeds or not, the order is
// confirmed and the cart cleared, because by this point the shopper has
// committed to the purchase.
type Checkout struct {
	Cart     *CartStore
	Notifier mailer.Notifier

	now func() time.Time
}

// NewCheckout builds the checkout flow.
func NewCheckout(cartStore *CartStore, notifier mailer.Notifier) *Checkout {
	return &Checkout{Cart: cartStore, Notifier: notifier, now: time.Now}
}

// Submit validates the form, sends the order notification, clears the cart
// and returns a confirmation. An empty cart or incomplete form is an error
// and leaves the cart untouched.
func (c *Checkout) Submit(ctx context.Context, form order.CheckoutForm) (order.Confirmation, bool, error) {
	if err := form.Validate(); err != nil {
		return order.Confirmation{}, false, err
	}

	snapshot := c.Cart.Cart()
	if snapshot.Len() == 0 {
		return order.Confirmation{}, false, cart.ErrEmptyCart
	}

	placedAt := c.now()
	payload := order.BuildPayload(snapshot, form, placedAt)
	notified := c.Notifier.Send(ctx, payload) == nil

	if err := c.Cart.Clear(); err != nil {
		return order.Confirmation{}, notified, err
	}

	return order.Confirmation{
		Reference: uuid.NewString(),
		PlacedAt:  placedAt,
		Total:     snapshot.Total(),
	}, notified, nil
}
