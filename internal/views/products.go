package views

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/agrihub/storefront/internal/api"
	apperrors "github.com/agrihub/storefront/internal/errors"
	"github.com/agrihub/storefront/internal/models"
	"github.com/agrihub/storefront/internal/nav"
	"github.com/agrihub/storefront/internal/store"
	"github.com/go-playground/validator/v10"
)

// ProductsView lists the catalog with an optional category filter and a
// client-side search, and carries the farmer/admin management actions.
// Create and update invalidate the cached list so the next render
// re-fetches; delete patches the cached list in place.
type ProductsView struct {
	client    *api.Client
	sessions  *store.SessionStore
	logger    *slog.Logger
	validator *validator.Validate

	products []models.Product
	category string
	stale    bool
}

func NewProductsView(client *api.Client, sessions *store.SessionStore, logger *slog.Logger) *ProductsView {
	return &ProductsView{
		client:    client,
		sessions:  sessions,
		logger:    logger,
		validator: validator.New(),
		stale:     true,
	}
}

// Invalidate forces a re-fetch on the next render.
func (v *ProductsView) Invalidate() {
	v.stale = true
}

func (v *ProductsView) Render(ctx context.Context, w io.Writer, params nav.Params) error {

	category := params.String("category")
	search := params.String("search")

	if v.stale || category != v.category {

		products, err := v.client.ListProducts(ctx, category)
		if err != nil {
			return fail(w, err)
		}

		v.products = products
		v.category = category
		v.stale = false
	}

	categories, err := v.client.ListCategories(ctx)
	if err != nil {
		// The product list still renders without the category legend.
		v.logger.Warn("failed to load categories", slog.String("error", err.Error()))
	}

	fmt.Fprintln(w, "Our Farm Products")

	if len(categories) > 0 {

		names := make([]string, 0, len(categories))
		for _, c := range categories {
			names = append(names, fmt.Sprintf("%s (%s)", c.Name, c.ID))
		}

		fmt.Fprintf(w, "Categories: %s\n", strings.Join(names, ", "))
	}

	matched := filterProducts(v.products, search)

	if len(matched) == 0 {
		fmt.Fprintln(w, "No products found matching your criteria. Be the first to add one!")

		return nil
	}

	sess := v.sessions.Current()

	for _, p := range matched {

		fmt.Fprintf(w, "\n[%s] %s - $%.2f / %s\n", p.ID, p.Name, p.Price, p.Unit)
		fmt.Fprintf(w, "    %s\n", summarize(p.Description, 70))
		fmt.Fprintf(w, "    Category: %s | Farmer: %s | %s\n", p.CategoryName, p.FarmerUsername, stockLabel(p))

		if sess.CanManageProduct(p.FarmerID) {
			fmt.Fprintln(w, "    (you can edit or delete this listing)")
		}
	}

	if sess.CanManageProducts() {
		fmt.Fprintln(w, "\nUse 'product-add' to list a new product.")
	}

	return nil
}

// AddToCart fetches the product and puts it in the cart, honoring the
// out-of-stock guard the product card applies.
func (v *ProductsView) AddToCart(ctx context.Context, w io.Writer, carts *store.CartStore, productID string, quantity int) error {

	product, err := v.client.GetProduct(ctx, productID)
	if err != nil {
		return fail(w, err)
	}

	if !product.InStock() {
		return fail(w, apperrors.PreconditionError(fmt.Sprintf("%s is out of stock", product.Name)))
	}

	carts.Add(ctx, *product, quantity)

	fmt.Fprintf(w, "Added %s to your cart.\n", product.Name)

	return nil
}

func (v *ProductsView) Create(ctx context.Context, w io.Writer, req *models.CreateProductRequest) error {

	if !v.sessions.Current().CanManageProducts() {
		return fail(w, apperrors.ForbiddenError("You must be logged in as a farmer or admin to add products"))
	}

	if err := validate(w, v.validator, req); err != nil {
		return err
	}

	product, err := v.client.CreateProduct(ctx, req)
	if err != nil {
		return fail(w, err)
	}

	v.Invalidate()

	v.logger.Info("product created", slog.String("product_id", product.ID), slog.String("name", product.Name))

	fmt.Fprintf(w, "Product %s listed.\n", product.Name)

	return nil
}

func (v *ProductsView) Update(ctx context.Context, w io.Writer, productID string, req *models.UpdateProductRequest) error {

	if !v.sessions.Current().CanManageProducts() {
		return fail(w, apperrors.ForbiddenError("You must be logged in as a farmer or admin to edit products"))
	}

	if err := validate(w, v.validator, req); err != nil {
		return err
	}

	product, err := v.client.UpdateProduct(ctx, productID, req)
	if err != nil {
		return fail(w, err)
	}

	v.Invalidate()

	fmt.Fprintf(w, "Product %s updated.\n", product.Name)

	return nil
}

// Delete removes the listing and patches the cached list so the next
// render reflects it without a round trip.
func (v *ProductsView) Delete(ctx context.Context, w io.Writer, productID string) error {

	if !v.sessions.Current().CanManageProducts() {
		return fail(w, apperrors.ForbiddenError("You must be logged in as a farmer or admin to delete products"))
	}

	if err := v.client.DeleteProduct(ctx, productID); err != nil {
		return fail(w, err)
	}

	for i := range v.products {
		if v.products[i].ID == productID {
			v.products = append(v.products[:i], v.products[i+1:]...)

			break
		}
	}

	fmt.Fprintln(w, "Product deleted.")

	return nil
}

// filterProducts applies the search box: case-insensitive match across
// name, description, category name, and farmer username.
func filterProducts(products []models.Product, term string) []models.Product {

	if term == "" {
		return products
	}

	term = strings.ToLower(term)

	var matched []models.Product

	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term) ||
			strings.Contains(strings.ToLower(p.CategoryName), term) ||
			strings.Contains(strings.ToLower(p.FarmerUsername), term) {
			matched = append(matched, p)
		}
	}

	return matched
}

func stockLabel(p models.Product) string {

	if p.InStock() {
		return fmt.Sprintf("Stock: %d available", p.StockQuantity)
	}

	return "Out of Stock"
}

func summarize(s string, max int) string {

	if len(s) <= max {
		return s
	}

	return s[:max] + "..."
}
