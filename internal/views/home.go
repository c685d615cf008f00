package views

import (
	"context"
	"fmt"
	"io"

	"github.com/agrihub/storefront/internal/nav"
)

type HomeView struct{}

func NewHomeView() *HomeView {
	return &HomeView{}
}

func (v *HomeView) Render(ctx context.Context, w io.Writer, params nav.Params) error {

	fmt.Fprintln(w, "Welcome to AgriHub!")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "AgriHub is a marketplace for the farming community: farmers list,")
	fmt.Fprintln(w, "promote, and sell their products directly to consumers, retailers,")
	fmt.Fprintln(w, "and businesses, without intermediaries.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "What makes AgriHub unique:")
	fmt.Fprintln(w, "  - Direct-to-market sales: produce, dairy, grains, meat, and value-added goods")
	fmt.Fprintln(w, "  - Integrated farm services: rentals, soil testing, crop spraying, on-farm experiences")
	fmt.Fprintln(w, "  - Smart tools for farmers: inventory, analytics, and compliance support")
	fmt.Fprintln(w, "  - Community and learning: events, knowledge hub, farmer-to-farmer exchange")

	return nil
}
