// internal/platform/di/store/register.go
package store

import (
	"encoding/json"
	"log"
	"net/http"

	"storefront/internal/adapters/in/http/middleware"
	storehttp "storefront/internal/adapters/in/http/store"
	storeHandler "storefront/internal/adapters/in/http/store/handler"
)

// notImplemented returns a non-nil handler (so deps are never nil) for endpoints
// that are not wired yet.
func notImplemented(name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotImplemented)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error": "not_implemented",
			"name":  name,
		})
	})
}

// requireAvatarAuth wraps handler with AvatarAuth (fail-closed).
// If middleware is not initialized, it returns 503 so the bug is obvious.
func requireAvatarAuth(mw *middleware.AvatarAuth, h http.Handler, name string) http.Handler {
	if h == nil {
		h = http.NotFoundHandler()
	}
	if mw == nil || mw.FirebaseAuth == nil {
		log.Printf("[store.register] ERROR: AvatarAuth is not initialized (endpoint=%s). returning 503", name)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error": "avatar_auth_not_initialized",
				"name":  name,
			})
		})
	}
	return mw.Handler(h)
}

// Register registers storefront routes onto mux.
// Pure DI: construct handlers and pass into store router.Register.
func Register(mux *http.ServeMux, cont *Container) {
	if mux == nil || cont == nil {
		return
	}

	// ------------------------------------------------------------
	// Auth middleware (buyer side)
	// ------------------------------------------------------------
	var avatarMW *middleware.AvatarAuth
	if cont.Infra != nil && cont.Infra.FirebaseAuth != nil {
		avatarMW = &middleware.AvatarAuth{FirebaseAuth: cont.Infra.FirebaseAuth}
	} else {
		// fail-closed in requireAvatarAuth
		log.Printf("[store.register] WARN: FirebaseAuth is nil (authenticated endpoints will return 503)")
		avatarMW = &middleware.AvatarAuth{FirebaseAuth: nil}
	}

	// ----------------------------
	// Handlers (construct only)
	// ----------------------------
	detailH := notImplemented("ProductDetail")
	reviewH := notImplemented("Review")
	cartH := notImplemented("Cart")
	restockH := notImplemented("Restock")

	if cont.ProductDetailQ != nil {
		detailH = storeHandler.NewProductDetailHandler(cont.ProductDetailQ)
	}
	if cont.ReviewRepo != nil {
		// GET is public, POST checks the avatar id the optional auth injected
		reviewH = avatarMW.OptionalHandler(storeHandler.NewReviewHandler(cont.ReviewRepo))
	}
	if cont.CartUC != nil {
		cartH = requireAvatarAuth(avatarMW, storeHandler.NewCartHandler(cont.CartUC), "Cart")
	}
	if cont.RestockUC != nil {
		restockH = requireAvatarAuth(avatarMW, storeHandler.NewRestockHandler(cont.RestockUC), "Restock")
	}

	storehttp.Register(mux, storehttp.Deps{
		ProductDetail: detailH,
		Review:        reviewH,
		Cart:          cartH,
		Restock:       restockH,
	})
	log.Printf("[store.register] storefront routes registered")
}
