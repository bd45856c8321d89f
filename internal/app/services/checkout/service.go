// Package checkout turns a cart and a customer form into an order
// notification.
package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/udvasito/storefront/internal/app/domain/cart"
	"github.com/udvasito/storefront/internal/app/domain/order"
	"github.com/udvasito/storefront/internal/app/metrics"
	"github.com/udvasito/storefront/internal/logging"
	"github.com/udvasito/storefront/internal/mailer"
)

// Service submits orders. The notification is best effort: a failed email
// still produces a confirmation, because the customer has already committed
// to the purchase and the failure belongs to operations, not to them.
type Service struct {
	notifier mailer.Notifier
	log      *logging.Logger
	now      func() time.Time
}

// New creates a checkout service.
func New(notifier mailer.Notifier, log *logging.Logger) *Service {
	if log == nil {
		log = logging.NewDefault("checkout")
	}
	return &Service{notifier: notifier, log: log, now: time.Now}
}

// Submit validates the form, notifies the shop of the order, and returns a
// confirmation. An empty cart or an incomplete form is an error; a failed
// notification is not.
func (s *Service) Submit(ctx context.Context, c *cart.Cart, form order.CheckoutForm) (order.Confirmation, error) {
	if err := form.Validate(); err != nil {
		return order.Confirmation{}, err
	}
	if c == nil || c.Len() == 0 {
		return order.Confirmation{}, cart.ErrEmptyCart
	}

	placedAt := s.now()
	payload := order.BuildPayload(*c, form, placedAt)

	notified := true
	if err := s.notifier.Send(ctx, payload); err != nil {
		notified = false
		s.log.WithContext(ctx).WithError(err).Error("order notification failed")
	}
	metrics.RecordOrder(notified)

	conf := order.Confirmation{
		Reference: uuid.NewString(),
		PlacedAt:  placedAt,
		Total:     c.Total(),
	}
	s.log.WithContext(ctx).WithFields(map[string]any{
		"reference": conf.Reference,
		"total":     conf.Total,
		"items":     c.Len(),
		"notified":  notified,
	}).Info("order submitted")
	return conf, nil
}
