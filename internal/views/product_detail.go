package views

import (
	"context"
	"fmt"
	"io"

	"github.com/agrihub/storefront/internal/api"
	apperrors "github.com/agrihub/storefront/internal/errors"
	"github.com/agrihub/storefront/internal/nav"
)

// ProductDetailView fetches and renders a single product. The product ID
// arrives in the navigation params set by the products view.
type ProductDetailView struct {
	client *api.Client
}

func NewProductDetailView(client *api.Client) *ProductDetailView {
	return &ProductDetailView{client: client}
}

func (v *ProductDetailView) Render(ctx context.Context, w io.Writer, params nav.Params) error {

	productID := params.String("productId")

	if productID == "" {
		return fail(w, apperrors.ValidationError("No product selected. Browse 'products' first."))
	}

	product, err := v.client.GetProduct(ctx, productID)
	if err != nil {
		return fail(w, err)
	}

	fmt.Fprintf(w, "%s\n", product.Name)
	fmt.Fprintf(w, "$%.2f / %s\n", product.Price, product.Unit)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s\n", product.Description)
	fmt.Fprintf(w, "Category: %s\n", product.CategoryName)
	fmt.Fprintf(w, "Farmer: %s\n", product.FarmerUsername)
	fmt.Fprintf(w, "%s\n", stockLabel(*product))

	if product.ImageURL != "" {
		fmt.Fprintf(w, "Image: %s\n", product.ImageURL)
	}

	return nil
}
