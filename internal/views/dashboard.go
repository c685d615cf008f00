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
)

// DashboardView shows role-dependent content: customers see their order
// history, farmers see incoming orders plus their own product listings,
// and admins see every order and product with status controls.
type DashboardView struct {
	client   *api.Client
	sessions *store.SessionStore
	logger   *slog.Logger
}

func NewDashboardView(client *api.Client, sessions *store.SessionStore, logger *slog.Logger) *DashboardView {
	return &DashboardView{
		client:   client,
		sessions: sessions,
		logger:   logger,
	}
}

func (v *DashboardView) Render(ctx context.Context, w io.Writer, params nav.Params) error {

	sess := v.sessions.Current()
	if sess == nil {
		return fail(w, apperrors.UnauthorizedError("log in to view your dashboard"))
	}

	fmt.Fprintf(w, "Dashboard for %s (%s)\n", sess.Username, sess.Role)
	fmt.Fprintln(w)

	switch sess.Role {
	case models.RoleCustomer:
		return v.renderCustomer(ctx, w)
	case models.RoleFarmer, models.RoleAdmin:
		return v.renderManager(ctx, w, sess)
	default:
		return fail(w, apperrors.ForbiddenError(fmt.Sprintf("unknown role %q", sess.Role)))
	}
}

func (v *DashboardView) renderCustomer(ctx context.Context, w io.Writer) error {

	orders, err := v.client.MyOrders(ctx)
	if err != nil {
		return fail(w, err)
	}

	fmt.Fprintln(w, "My Orders")

	if len(orders) == 0 {
		fmt.Fprintln(w, "  You have not placed any orders yet.")
		return nil
	}

	for _, order := range orders {
		v.renderOrder(w, order, false)
	}

	return nil
}

func (v *DashboardView) renderManager(ctx context.Context, w io.Writer, sess *models.Session) error {

	orders, err := v.client.ListOrders(ctx)
	if err != nil {
		return fail(w, err)
	}

	admin := sess.Role == models.RoleAdmin

	if admin {
		fmt.Fprintln(w, "All Orders")
	} else {
		fmt.Fprintln(w, "Incoming Orders")
	}

	if len(orders) == 0 {
		fmt.Fprintln(w, "  No orders yet.")
	}

	for _, order := range orders {
		v.renderOrder(w, order, true)
	}

	if admin {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Update a status with: status <order id> <pending|processing|shipped|delivered|cancelled>")
	}

	products, err := v.client.ListProducts(ctx, "")
	if err != nil {
		return fail(w, err)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "My Products")

	shown := 0

	for _, product := range products {
		if !admin && product.FarmerID != sess.ID {
			continue
		}

		fmt.Fprintf(w, "  [%s] %s  $%.2f/%s  stock %d\n",
			product.ID, product.Name, product.Price, product.Unit, product.StockQuantity)

		shown++
	}

	if shown == 0 {
		fmt.Fprintln(w, "  No products listed yet.")
	}

	return nil
}

func (v *DashboardView) renderOrder(w io.Writer, order models.Order, withCustomer bool) {

	fmt.Fprintf(w, "  Order %s  %s  $%.2f  (%s)\n", order.ID, order.OrderDate.Format("2006-01-02"), order.TotalAmount, order.Status)

	if withCustomer {
		fmt.Fprintf(w, "    Customer: %s <%s>\n", order.CustomerUsername, order.CustomerEmail)
	}

	fmt.Fprintf(w, "    Ship to: %s\n", order.ShippingAddress)

	for _, line := range order.Items {
		fmt.Fprintf(w, "    - %s x%d  $%.2f\n", line.ProductName, line.Quantity, line.Price)
	}
}

// UpdateStatus changes an order's status. Admin only; the order list is
// re-fetched by the next Render.
func (v *DashboardView) UpdateStatus(ctx context.Context, w io.Writer, orderID string, status models.OrderStatus) error {

	sess := v.sessions.Current()
	if sess == nil || sess.Role != models.RoleAdmin {
		return fail(w, apperrors.ForbiddenError("only admins can update order status"))
	}

	if !status.Valid() {
		return fail(w, apperrors.ValidationError(fmt.Sprintf("invalid order status %q", status)))
	}

	if err := v.client.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return fail(w, err)
	}

	v.logger.Info("order status updated",
		slog.String("order_id", orderID),
		slog.String("status", string(status)))

	fmt.Fprintf(w, "Order %s is now %s.\n", orderID, status)

	return nil
}
