package views

import (
	"context"
	"fmt"
	"io"

	"github.com/agrihub/storefront/internal/nav"
	"github.com/agrihub/storefront/internal/store"
)

// CartView renders the shopping cart and maps the quantity buttons onto
// the cart aggregate's operations.
type CartView struct {
	carts    *store.CartStore
	sessions *store.SessionStore
}

func NewCartView(carts *store.CartStore, sessions *store.SessionStore) *CartView {
	return &CartView{carts: carts, sessions: sessions}
}

func (v *CartView) Render(ctx context.Context, w io.Writer, params nav.Params) error {

	if v.carts.Empty() {
		fmt.Fprintln(w, "Your Cart is Empty")
		fmt.Fprintln(w, "Looks like you haven't added anything to your cart yet. Try 'products'.")

		return nil
	}

	fmt.Fprintln(w, "Your Shopping Cart")
	fmt.Fprintln(w)

	for _, item := range v.carts.Items() {
		fmt.Fprintf(w, "[%s] %s  $%.2f / %s  x %d = $%.2f\n",
			item.ID, item.Name, item.Price, item.Unit, item.Quantity, item.LineTotal())
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total Items: %d\n", v.carts.Count())
	fmt.Fprintf(w, "Subtotal: $%.2f\n", v.carts.Total())

	if v.sessions.LoggedIn() {
		fmt.Fprintln(w, "Use 'checkout' to proceed.")
	} else {
		fmt.Fprintln(w, "Log in to proceed to checkout.")
	}

	return nil
}

// Increment is the plus button on a cart line.
func (v *CartView) Increment(ctx context.Context, productID string) {

	for _, item := range v.carts.Items() {
		if item.ID == productID {
			v.carts.SetQuantity(ctx, productID, item.Quantity+1)

			return
		}
	}
}

// Decrement is the minus button: driving the quantity to zero removes the
// line through the explicit-zero path.
func (v *CartView) Decrement(ctx context.Context, productID string) {

	for _, item := range v.carts.Items() {
		if item.ID == productID {
			v.carts.SetQuantity(ctx, productID, item.Quantity-1)

			return
		}
	}
}

func (v *CartView) Remove(ctx context.Context, productID string) {
	v.carts.Remove(ctx, productID)
}

func (v *CartView) Clear(ctx context.Context) {
	v.carts.Clear(ctx)
}
