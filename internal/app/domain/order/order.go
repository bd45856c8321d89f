// Package order models the checkout form and the flat key-value payload sent
// to the transactional-email provider. The emailed payload is the system's
// only record of a placed order; no order entity is persisted.
package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/udvasito/storefront/internal/app/domain/cart"
)

// CheckoutForm is the transient shipping detail input collected at checkout.
// It is never persisted.
type CheckoutForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes,omitempty"`
}

// Validate checks that the required contact fields are present.
func (f CheckoutForm) Validate() error {
	var missing []string
	for _, field := range []struct {
		name  string
		value string
	}{
		{"name", f.Name},
		{"email", f.Email},
		{"phone", f.Phone},
		{"address", f.Address},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// currency renders an integer amount with the taka sign, matching the shop's
// display format.
func currency(amount int) string {
	return fmt.Sprintf("৳%d", amount)
}

// Lines formats one text line per cart item: title, author, quantity and
// line total.
func Lines(c cart.Cart) string {
	lines := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		lines = append(lines, fmt.Sprintf("%s by %s - Qty: %d - %s",
			item.Book.Title, item.Book.Author, item.Quantity, currency(item.LineTotal())))
	}
	return strings.Join(lines, "\n")
}

// BuildPayload flattens the cart and form into the template parameters
// expected by the email provider. Shipping renders as "Free" when zero.
func BuildPayload(c cart.Cart, form CheckoutForm, at time.Time) map[string]string {
	notes := strings.TrimSpace(form.Notes)
	if notes == "" {
		notes = "No additional notes"
	}
	shipping := "Free"
	if fee := c.Shipping(); fee != 0 {
		shipping = currency(fee)
	}
	return map[string]string{
		"customer_name":    form.Name,
		"customer_email":   form.Email,
		"customer_phone":   form.Phone,
		"customer_address": form.Address,
		"customer_notes":   notes,
		"order_details":    Lines(c),
		"subtotal":         currency(c.Subtotal()),
		"shipping":         shipping,
		"total":            currency(c.Total()),
		"order_date":       at.Format("2 January 2006, 3:04 PM"),
	}
}

// Confirmation is returned to the shopper once an order is placed. Reference
// identifies the submission in logs; it is not a persisted entity.
type Confirmation struct {
	Reference string    `json:"reference"`
	PlacedAt  time.Time `json:"placedAt"`
	Total     int       `json:"total"`
}
