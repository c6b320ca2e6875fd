// internal/adapters/in/http/store/router.go
package store

import (
	"log"
	"net/http"
	"strings"
)

// Deps is the buyer-facing (storefront) handler set.
type Deps struct {
	// /storefront/products/{id} (+ ?sku=) and /storefront/products/{id}/resolve
	ProductDetail http.Handler

	// /storefront/products/{id}/reviews
	Review http.Handler

	// /storefront/cart and /storefront/cart/items (authenticated)
	Cart http.Handler

	// /storefront/restock-subscriptions (authenticated)
	Restock http.Handler
}

// handleSafe registers pattern with h.
// If h is nil, it logs and registers NotFoundHandler instead (so Cloud Run won't crash).
func handleSafe(mux *http.ServeMux, pattern string, h http.Handler, name string) {
	if h == nil {
		log.Printf("[store.router] WARN: nil handler: %s pattern=%s (registering NotFoundHandler)", name, pattern)
		h = http.NotFoundHandler()
	}
	mux.Handle(pattern, h)
}

// productsDispatch sends "/storefront/products/{id}/reviews" to the review
// handler and everything else under the products prefix to the detail handler.
// ServeMux prefix matching alone cannot split these two.
func productsDispatch(detail, review http.Handler) http.Handler {
	if detail == nil {
		detail = http.NotFoundHandler()
	}
	if review == nil {
		review = http.NotFoundHandler()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(strings.TrimSuffix(r.URL.Path, "/"), "/reviews") {
			review.ServeHTTP(w, r)
			return
		}
		detail.ServeHTTP(w, r)
	})
}

// Register registers buyer-facing routes onto mux.
func Register(mux *http.ServeMux, deps Deps) {
	if mux == nil {
		return
	}

	handleSafe(mux, "/storefront/products/", productsDispatch(deps.ProductDetail, deps.Review), "ProductDetail/Review")

	handleSafe(mux, "/storefront/cart", deps.Cart, "Cart")
	handleSafe(mux, "/storefront/cart/", deps.Cart, "Cart")

	handleSafe(mux, "/storefront/restock-subscriptions", deps.Restock, "Restock")
	handleSafe(mux, "/storefront/restock-subscriptions/", deps.Restock, "Restock")
}
