package store

import (
	"context"
	"log/slog"

	"github.com/agrihub/storefront/internal/models"
	"github.com/agrihub/storefront/internal/storage"
)

// CartStore holds the working set of intended purchases, independent of the
// login state. Line items are unique per product ID and keep insertion
// order; every mutation re-persists the durable record. None of the
// operations fail: invalid inputs degrade to no-ops or clamped values.
type CartStore struct {
	storage storage.Store
	logger  *slog.Logger
	items   []models.CartItem
}

func NewCartStore(st storage.Store, logger *slog.Logger) *CartStore {
	return &CartStore{storage: st, logger: logger}
}

// Restore adopts the persisted cart at startup, falling back to an empty
// cart on a missing or malformed record. Lines that would violate the
// quantity-at-least-one invariant are dropped.
func (c *CartStore) Restore(ctx context.Context) {

	var items []models.CartItem

	found, err := c.storage.Get(ctx, storage.CartKey, &items)
	if err != nil {
		c.logger.Warn("discarding malformed cart record", slog.String("error", err.Error()))

		_ = c.storage.Delete(ctx, storage.CartKey)

		return
	}

	if !found {
		return
	}

	c.items = c.items[:0]

	for _, item := range items {
		if item.ID == "" || item.Quantity < 1 {
			c.logger.Warn("dropping invalid cart line", slog.String("product_id", item.ID), slog.Int("quantity", item.Quantity))

			continue
		}

		c.items = append(c.items, item)
	}

	c.logger.Info("cart restored", slog.Int("items", len(c.items)))
}

// Add merges into an existing line for the same product or appends a new
// one. Quantities below one count as one.
func (c *CartStore) Add(ctx context.Context, product models.Product, quantity int) {

	if quantity < 1 {
		quantity = 1
	}

	for i := range c.items {
		if c.items[i].ID == product.ID {
			c.items[i].Quantity += quantity

			c.persist(ctx)

			return
		}
	}

	c.items = append(c.items, models.CartItem{Product: product, Quantity: quantity})

	c.persist(ctx)
}

// SetQuantity applies the floor-then-filter policy: an explicit quantity of
// zero or less removes the line, anything else is floored at one. Unknown
// product IDs are a no-op.
func (c *CartStore) SetQuantity(ctx context.Context, productID string, quantity int) {

	for i := range c.items {
		if c.items[i].ID != productID {
			continue
		}

		if quantity <= 0 {
			c.items = append(c.items[:i], c.items[i+1:]...)
		} else {
			c.items[i].Quantity = quantity
		}

		c.persist(ctx)

		return
	}
}

// Remove deletes the line unconditionally if present.
func (c *CartStore) Remove(ctx context.Context, productID string) {

	for i := range c.items {
		if c.items[i].ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)

			c.persist(ctx)

			return
		}
	}
}

// Clear empties the cart. Used after a successful checkout.
func (c *CartStore) Clear(ctx context.Context) {

	c.items = c.items[:0]

	c.persist(ctx)
}

// Items returns a copy of the line items in insertion order.
func (c *CartStore) Items() []models.CartItem {

	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)

	return out
}

func (c *CartStore) Len() int {
	return len(c.items)
}

func (c *CartStore) Empty() bool {
	return len(c.items) == 0
}

// Count is the total unit count across lines, used for the header badge.
func (c *CartStore) Count() int {

	var count int

	for _, item := range c.items {
		count += item.Quantity
	}

	return count
}

// Total is recomputed on every read, never stored.
func (c *CartStore) Total() float64 {

	var total float64

	for _, item := range c.items {
		total += item.LineTotal()
	}

	return total
}

func (c *CartStore) persist(ctx context.Context) {

	if err := c.storage.Set(ctx, storage.CartKey, c.items); err != nil {
		c.logger.Error("failed to persist cart", slog.String("error", err.Error()))
	}
}
