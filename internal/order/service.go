package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tracketo/storefront/internal/cart"
	"github.com/tracketo/storefront/internal/session"
	"github.com/tracketo/storefront/internal/simulate"
	"github.com/tracketo/storefront/internal/storage"
)

const ordersKey = "orders"

var (
	ErrNotFound      = errors.New("order: order not found")
	ErrNoItems       = errors.New("order: order must contain at least one item")
	ErrInvalidStatus = errors.New("order: unknown order status")
)

// Service owns the persisted order collection. Orders are append-only except
// for the status field.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*Order, error)
	Get(ctx context.Context, id string) (*Order, error)
	ListForActor(ctx context.Context, role session.Role, actorID string) ([]Order, error)
	UpdateStatus(ctx context.Context, orderID string, status Status) error
}

// CreateInput is an order without the server-assigned fields: id, status and
// creation time are set by Create.
type CreateInput struct {
	UserID          string
	Items           []cart.Item
	CustomerDetails CustomerDetails
}

type service struct {
	store   storage.Store
	latency time.Duration
}

func NewService(store storage.Store, latency time.Duration) Service {
	return &service{store: store, latency: latency}
}

// Create appends a new PENDING order. Two calls with identical input produce
// two distinct orders; nothing is deduplicated and no stock is decremented.
func (s *service) Create(ctx context.Context, input CreateInput) (*Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrNoItems
	}

	total := 0.0
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("order: quantity for product %s must be greater than zero", item.ID)
		}
		total += item.LineTotal()
	}

	if err := simulate.Latency(ctx, s.latency); err != nil {
		return nil, err
	}

	orders, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	userID := input.UserID
	if userID == "" {
		userID = GuestUserID
	}

	ord := Order{
		ID:              newOrderID(),
		UserID:          userID,
		VendorID:        input.Items[0].VendorID,
		Items:           append([]cart.Item(nil), input.Items...),
		Total:           total,
		Status:          StatusPending,
		CreatedAt:       time.Now().UTC(),
		CustomerDetails: input.CustomerDetails,
	}

	if err := s.save(ctx, append(orders, ord)); err != nil {
		return nil, err
	}

	log.Info().Str("order_id", ord.ID).Str("user_id", ord.UserID).Float64("total", ord.Total).Msg("order: created")
	return &ord, nil
}

func (s *service) Get(ctx context.Context, id string) (*Order, error) {
	orders, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], nil
		}
	}

	return nil, ErrNotFound
}

// ListForActor returns the role-scoped view of the order collection: admins
// see everything, vendors see orders containing at least one of their items,
// users see their own orders and guests see nothing.
func (s *service) ListForActor(ctx context.Context, role session.Role, actorID string) ([]Order, error) {
	if err := simulate.Latency(ctx, s.latency); err != nil {
		return nil, err
	}

	orders, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	switch role {
	case session.RoleAdmin:
		return orders, nil
	case session.RoleVendor:
		scoped := make([]Order, 0)
		for _, ord := range orders {
			for _, item := range ord.Items {
				if item.VendorID == actorID {
					scoped = append(scoped, ord)
					break
				}
			}
		}
		return scoped, nil
	case session.RoleUser:
		scoped := make([]Order, 0)
		for _, ord := range orders {
			if ord.UserID == actorID {
				scoped = append(scoped, ord)
			}
		}
		return scoped, nil
	case session.RoleGuest:
		return []Order{}, nil
	default:
		return nil, fmt.Errorf("order: unknown role %q", role)
	}
}

// UpdateStatus replaces the status of the matching order. The new status must
// be a known value; beyond that any transition is allowed.
func (s *service) UpdateStatus(ctx context.Context, orderID string, status Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	orders, err := s.load(ctx)
	if err != nil {
		return err
	}

	for i := range orders {
		if orders[i].ID != orderID {
			continue
		}
		if orders[i].Status == status {
			log.Info().Str("order_id", orderID).Stringer("status", status).Msg("order: status already set, no update needed")
			return nil
		}

		old := orders[i].Status
		orders[i].Status = status
		if err := s.save(ctx, orders); err != nil {
			return err
		}

		log.Info().Str("order_id", orderID).Stringer("old_status", old).Stringer("new_status", status).Msg("order: status updated")
		return nil
	}

	return ErrNotFound
}

// load reads the persisted orders. Unlike the catalog, a corrupted order
// collection is not silently reset: purchase records are surfaced as an
// explicit failure for the operator to inspect.
func (s *service) load(ctx context.Context) ([]Order, error) {
	var orders []Order

	err := storage.GetJSON(ctx, s.store, storage.Namespace, ordersKey, &orders)
	switch {
	case errors.Is(err, storage.ErrKeyNotFound):
		return []Order{}, nil
	case err != nil:
		return nil, fmt.Errorf("order: failed to load orders: %w", err)
	}

	return orders, nil
}

func (s *service) save(ctx context.Context, orders []Order) error {
	if err := storage.PutJSON(ctx, s.store, storage.Namespace, ordersKey, orders); err != nil {
		return fmt.Errorf("order: failed to persist orders: %w", err)
	}
	return nil
}

func newOrderID() string {
	id := uuid.Must(uuid.NewV4()).String()
	return "ORD-" + strings.ToUpper(id[:8])
}
