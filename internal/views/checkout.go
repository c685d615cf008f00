package views

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/agrihub/storefront/internal/api"
	apperrors "github.com/agrihub/storefront/internal/errors"
	"github.com/agrihub/storefront/internal/models"
	"github.com/agrihub/storefront/internal/nav"
	"github.com/agrihub/storefront/internal/store"
	"github.com/go-playground/validator/v10"
)

// CheckoutView turns the cart into an order. Both preconditions (a session
// and a non-empty cart) resolve to a notice plus a corrective navigation
// rather than a hard error.
type CheckoutView struct {
	client    *api.Client
	sessions  *store.SessionStore
	carts     *store.CartStore
	navigator *nav.Navigator
	logger    *slog.Logger
	validator *validator.Validate
}

func NewCheckoutView(client *api.Client, sessions *store.SessionStore, carts *store.CartStore, navigator *nav.Navigator, logger *slog.Logger) *CheckoutView {
	return &CheckoutView{
		client:    client,
		sessions:  sessions,
		carts:     carts,
		navigator: navigator,
		logger:    logger,
		validator: validator.New(),
	}
}

// guard checks the checkout preconditions and redirects when one fails.
func (v *CheckoutView) guard(w io.Writer) bool {

	if !v.sessions.LoggedIn() {
		fmt.Fprintln(w, "You must be logged in to checkout. Redirecting to login...")
		v.navigator.Navigate(nav.ViewAuth, nil)

		return false
	}

	if v.carts.Empty() {
		fmt.Fprintln(w, "Your cart is empty. Please add products before checking out. Redirecting to products...")
		v.navigator.Navigate(nav.ViewProducts, nil)

		return false
	}

	return true
}

func (v *CheckoutView) Render(ctx context.Context, w io.Writer, params nav.Params) error {

	if !v.guard(w) {
		return nil
	}

	fmt.Fprintln(w, "Checkout")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Order Summary")

	for _, item := range v.carts.Items() {
		fmt.Fprintf(w, "  %s (%d %s)  $%.2f\n", item.Name, item.Quantity, item.Unit, item.LineTotal())
	}

	fmt.Fprintf(w, "Total: $%.2f\n", v.carts.Total())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Place your order with:")
	fmt.Fprintln(w, "  order <card|paypal|m-pesa|cod> <shipping address>")

	return nil
}

// PlaceOrder validates the form, posts the order, and on success clears
// the cart and reports the order ID.
func (v *CheckoutView) PlaceOrder(ctx context.Context, w io.Writer, shippingAddress, paymentMethod string) error {

	if !v.guard(w) {
		return apperrors.PreconditionError("checkout preconditions not met")
	}

	items := v.carts.Items()

	req := &models.PlaceOrderRequest{
		OrderItems:      make([]models.OrderItemInput, 0, len(items)),
		ShippingAddress: shippingAddress,
		PaymentMethod:   paymentMethod,
	}

	for _, item := range items {
		req.OrderItems = append(req.OrderItems, models.OrderItemInput{
			ProductID: item.ID,
			Quantity:  item.Quantity,
		})
	}

	if err := validate(w, v.validator, req); err != nil {
		return err
	}

	placed, err := v.client.PlaceOrder(ctx, req)
	if err != nil {
		return fail(w, err)
	}

	v.carts.Clear(ctx)

	v.logger.Info("order placed", slog.String("order_id", placed.OrderID))

	fmt.Fprintln(w, "Order Placed Successfully!")
	fmt.Fprintf(w, "Your order ID is: %s\n", placed.OrderID)
	fmt.Fprintln(w, "Thank you for shopping with AgriHub!")

	return nil
}
