// internal/adapters/in/http/store/handler/restock_handler.go
package storeHandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"storefront/internal/adapters/in/http/middleware"
	usecase "storefront/internal/application/usecase"
)

// RestockHandler registers "notify me when back in stock" subscriptions.
//
// Routes:
// - POST /storefront/restock-subscriptions   body: {productId, skuId, email}
type RestockHandler struct {
	UC *usecase.RestockUsecase
}

func NewRestockHandler(uc *usecase.RestockUsecase) http.Handler {
	return &RestockHandler{UC: uc}
}

type restockSubscribeRequest struct {
	ProductID string `json:"productId"`
	SKUID     string `json:"skuId"`
	Email     string `json:"email"`
}

func (h *RestockHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.UC == nil {
		internalError(w, "restock handler is not ready")
		return
	}

	if strings.TrimSuffix(r.URL.Path, "/") != "/storefront/restock-subscriptions" {
		notFound(w)
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	// 購読はログイン必須（メールアドレスはボディで受けるが、匿名は弾く）
	if middleware.AvatarIDFromContext(r.Context()) == "" {
		unauthorized(w)
		return
	}

	var req restockSubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json body")
		return
	}

	sub, err := h.UC.Subscribe(r.Context(), req.ProductID, req.SKUID, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrRestockInvalidArgument):
			badRequest(w, err.Error())
		case errors.Is(err, usecase.ErrRestockSKUNotFound):
			notFound(w)
		case errors.Is(err, usecase.ErrRestockAlreadyInStock):
			conflict(w, "sku is already in stock")
		default:
			internalError(w, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}
