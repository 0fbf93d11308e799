// Package checkout turns the current cart into an order. Items are copied,
// never referenced: once an order exists it is independent of later cart
// mutations.
package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/tracketo/storefront/internal/cart"
	"github.com/tracketo/storefront/internal/order"
	"github.com/tracketo/storefront/internal/session"
)

var ErrEmptyCart = errors.New("checkout: cart is empty")

type Service struct {
	cart    *cart.Cart
	orders  order.Service
	session *session.Session
}

func NewService(c *cart.Cart, orders order.Service, s *session.Session) *Service {
	return &Service{cart: c, orders: orders, session: s}
}

// PlaceOrder creates an order from the current cart and shipping details,
// attributed to the logged-in user or the guest sentinel. The cart is cleared
// only after the order is persisted; a failed checkout leaves it intact for
// retry.
func (s *Service) PlaceOrder(ctx context.Context, details order.CustomerDetails) (*order.Order, error) {
	items := s.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	userID := order.GuestUserID
	if u := s.session.Current(); u != nil {
		userID = u.ID
	}

	ord, err := s.orders.Create(ctx, order.CreateInput{
		UserID:          userID,
		Items:           items,
		CustomerDetails: details,
	})
	if err != nil {
		return nil, fmt.Errorf("checkout: failed to create order: %w", err)
	}

	if err := s.cart.Clear(ctx); err != nil {
		// The order exists; losing the cart reset is recoverable.
		log.Warn().Err(err).Str("order_id", ord.ID).Msg("checkout: order created but cart was not cleared")
	}

	return ord, nil
}
