package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/tracketo/storefront/internal/catalog"
	"github.com/tracketo/storefront/internal/storage"
)

const cartKey = "cart"

var (
	ErrOutOfStock      = errors.New("cart: product is out of stock")
	ErrInvalidQuantity = errors.New("cart: quantity must be at least 1")
)

// Item is a product plus the selected quantity. A cart never holds two items
// with the same product id.
type Item struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

func (i Item) LineTotal() float64 {
	return i.EffectivePrice() * float64(i.Quantity)
}

// Cart is the unsubmitted selection for the current browsing session,
// independent of authentication. Every mutation re-establishes the
// one-entry-per-product invariant and persists the whole collection as one
// step.
type Cart struct {
	store storage.Store

	mu    sync.Mutex
	items []Item
}

func New(store storage.Store) *Cart {
	return &Cart{store: store}
}

// Restore loads the persisted cart; an absent or corrupted record yields an
// empty cart.
func (c *Cart) Restore(ctx context.Context) ([]Item, error) {
	var items []Item

	err := storage.GetJSON(ctx, c.store, storage.Namespace, cartKey, &items)
	switch {
	case errors.Is(err, storage.ErrKeyNotFound):
		items = nil
	case errors.Is(err, storage.ErrCorrupted):
		log.Warn().Err(err).Msg("cart: persisted cart corrupted, resetting")
		if err := c.store.Delete(ctx, storage.Namespace, cartKey); err != nil {
			return nil, fmt.Errorf("cart: failed to reset corrupted cart: %w", err)
		}
		items = nil
	case err != nil:
		return nil, fmt.Errorf("cart: failed to restore cart: %w", err)
	}

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()

	return c.Items(), nil
}

// Add merges the product into the cart: an existing entry has its quantity
// incremented, otherwise a new item is appended. Out-of-stock products are
// rejected.
func (c *Cart) Add(ctx context.Context, product catalog.Product, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if product.OutOfStock() {
		return ErrOutOfStock
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	updated := c.copyItems()
	merged := false
	for i := range updated {
		if updated[i].ID == product.ID {
			updated[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		updated = append(updated, Item{Product: product, Quantity: quantity})
	}

	return c.commit(ctx, updated)
}

// Remove drops the entry for the product id; absent ids are a no-op.
func (c *Cart) Remove(ctx context.Context, productID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.commit(ctx, c.withoutProduct(productID))
}

// UpdateQuantity replaces the quantity for the product id. A non-positive
// quantity removes the entry.
func (c *Cart) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		return c.commit(ctx, c.withoutProduct(productID))
	}

	updated := c.copyItems()
	for i := range updated {
		if updated[i].ID == productID {
			updated[i].Quantity = quantity
			break
		}
	}

	return c.commit(ctx, updated)
}

// Clear empties the cart.
func (c *Cart) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.commit(ctx, []Item{})
}

// Items returns a copy of the current selection.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.copyItems()
}

// TotalItems is the sum of quantities, recomputed on every read.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the sum of line totals at effective prices, recomputed on
// every read.
func (c *Cart) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0.0
	for _, item := range c.items {
		total += item.LineTotal()
	}
	return total
}

// commit persists the updated selection and only then adopts it in memory,
// so a failed write leaves the cart unchanged. Callers hold c.mu.
func (c *Cart) commit(ctx context.Context, items []Item) error {
	if err := storage.PutJSON(ctx, c.store, storage.Namespace, cartKey, items); err != nil {
		return fmt.Errorf("cart: failed to persist cart: %w", err)
	}

	c.items = items
	return nil
}

func (c *Cart) copyItems() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) withoutProduct(productID string) []Item {
	out := make([]Item, 0, len(c.items))
	for _, item := range c.items {
		if item.ID != productID {
			out = append(out, item)
		}
	}
	return out
}
