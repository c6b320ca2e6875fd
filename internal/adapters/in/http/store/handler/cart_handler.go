// internal/adapters/in/http/store/handler/cart_handler.go
package storeHandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"storefront/internal/adapters/in/http/middleware"
	usecase "storefront/internal/application/usecase"
	cartdom "storefront/internal/domain/cart"
)

// CartHandler serves the authenticated buyer's cart.
//
// Routes (avatar id comes from the verified token, never from the path):
// - GET    /storefront/cart
// - DELETE /storefront/cart
// - POST   /storefront/cart/items          body: {productId, skuId, qty}
// - PATCH  /storefront/cart/items          body: {productId, skuId, qty}
// - DELETE /storefront/cart/items          body: {productId, skuId}
type CartHandler struct {
	UC *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) http.Handler {
	return &CartHandler{UC: uc}
}

func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.UC == nil {
		internalError(w, "cart handler is not ready")
		return
	}

	avatarID := middleware.AvatarIDFromContext(r.Context())
	if avatarID == "" {
		unauthorized(w)
		return
	}

	path := strings.TrimSuffix(r.URL.Path, "/")

	switch path {
	case "/storefront/cart":
		h.cart(w, r, avatarID)
	case "/storefront/cart/items":
		h.items(w, r, avatarID)
	default:
		notFound(w)
	}
}

func (h *CartHandler) cart(w http.ResponseWriter, r *http.Request, avatarID string) {
	switch r.Method {
	case http.MethodGet:
		c, err := h.UC.Get(r.Context(), avatarID)
		if err != nil {
			if errors.Is(err, usecase.ErrCartNotFound) {
				// no doc yet = empty cart, not an error for the buyer
				writeJSON(w, http.StatusOK, map[string]any{"id": avatarID, "items": []cartdom.CartItem{}})
				return
			}
			internalError(w, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, c)

	case http.MethodDelete:
		if err := h.UC.Clear(r.Context(), avatarID); err != nil {
			internalError(w, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})

	default:
		methodNotAllowed(w)
	}
}

type cartItemRequest struct {
	ProductID string `json:"productId"`
	SKUID     string `json:"skuId"`
	Qty       int    `json:"qty"`
}

func (h *CartHandler) items(w http.ResponseWriter, r *http.Request, avatarID string) {
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json body")
		return
	}

	var (
		c   *cartdom.Cart
		err error
	)

	switch r.Method {
	case http.MethodPost:
		c, err = h.UC.AddItem(r.Context(), avatarID, req.ProductID, req.SKUID, req.Qty)
	case http.MethodPatch:
		c, err = h.UC.SetQty(r.Context(), avatarID, req.ProductID, req.SKUID, req.Qty)
	case http.MethodDelete:
		c, err = h.UC.RemoveItem(r.Context(), avatarID, req.ProductID, req.SKUID)
	default:
		methodNotAllowed(w)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrCartInvalidArgument):
			badRequest(w, err.Error())
		case errors.Is(err, usecase.ErrCartSKUNotFound):
			notFound(w)
		case errors.Is(err, usecase.ErrCartOutOfStock):
			conflict(w, "sku is out of stock")
		default:
			internalError(w, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, c)
}
