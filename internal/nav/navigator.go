// Package nav maps a requested view name and parameter bag to the view that
// actually renders, including the global login gate.
package nav

import (
	"github.com/agrihub/storefront/internal/store"
)

type View string

const (
	ViewHome          View = "home"
	ViewProducts      View = "products"
	ViewProductDetail View = "product_detail"
	ViewServices      View = "services"
	ViewEvents        View = "events"
	ViewDashboard     View = "dashboard"
	ViewCart          View = "cart"
	ViewCheckout      View = "checkout"
	ViewAuth          View = "auth"
)

// Params is the untyped parameter bag tied to the current view. A bag only
// means something together with the view name that produced it.
type Params map[string]any

func (p Params) String(key string) string {
	if v, ok := p[key].(string); ok {
		return v
	}

	return ""
}

// Known reports whether the name is in the closed view set.
func Known(v View) bool {
	switch v {
	case ViewHome, ViewProducts, ViewProductDetail, ViewServices, ViewEvents,
		ViewDashboard, ViewCart, ViewCheckout, ViewAuth:
		return true
	}

	return false
}

// Navigator holds the active view and its params. Navigations happen one
// at a time on the UI loop, so there is no locking.
type Navigator struct {
	sessions *store.SessionStore
	current  View
	params   Params
}

func New(sessions *store.SessionStore) *Navigator {
	return &Navigator{
		sessions: sessions,
		current:  ViewHome,
		params:   Params{},
	}
}

// Navigate atomically replaces the view and the whole parameter bag. The
// dispatch is total: an unrecognized name falls back to home, it never
// fails. Stale params from the previous view never leak through.
func (n *Navigator) Navigate(view View, params Params) {

	if !Known(view) {
		view = ViewHome
	}

	if params == nil {
		params = Params{}
	}

	n.current = view
	n.params = params
}

// Current is the requested view, before the login gate applies.
func (n *Navigator) Current() View {
	return n.current
}

func (n *Navigator) Params() Params {

	out := make(Params, len(n.params))
	for k, v := range n.params {
		out[k] = v
	}

	return out
}

// Resolve applies the global access rule: with no session present every
// view except auth renders as auth. The requested view is left untouched so
// it renders once the user logs in.
func (n *Navigator) Resolve() View {

	if !n.sessions.LoggedIn() && n.current != ViewAuth {
		return ViewAuth
	}

	return n.current
}
