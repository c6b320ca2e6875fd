// internal/adapters/in/http/store/handler/review_handler.go
package storeHandler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"storefront/internal/adapters/in/http/middleware"
	revdom "storefront/internal/domain/review"
)

// ReviewHandler serves product reviews.
//
// Routes:
// - GET  /storefront/products/{productId}/reviews?limit=N
// - POST /storefront/products/{productId}/reviews   (authenticated)
type ReviewHandler struct {
	Repo revdom.Repository
}

func NewReviewHandler(repo revdom.Repository) http.Handler {
	return &ReviewHandler{Repo: repo}
}

func (h *ReviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Repo == nil {
		internalError(w, "review handler is not ready")
		return
	}

	path := strings.TrimSuffix(r.URL.Path, "/")
	if !strings.HasPrefix(path, productsPrefix) || !strings.HasSuffix(path, "/reviews") {
		notFound(w)
		return
	}
	productID := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(path, productsPrefix), "/reviews"))
	if productID == "" || strings.Contains(productID, "/") {
		notFound(w)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.list(w, r, productID)
	case http.MethodPost:
		h.create(w, r, productID)
	default:
		methodNotAllowed(w)
	}
}

func (h *ReviewHandler) list(w http.ResponseWriter, r *http.Request, productID string) {
	limit := parseIntDefault(r.URL.Query().Get("limit"), 20)

	reviews, err := h.Repo.ListByProductID(r.Context(), productID, limit)
	if err != nil {
		internalError(w, err.Error())
		return
	}

	summary, err := h.Repo.SummaryByProductID(r.Context(), productID)
	if err != nil {
		internalError(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"reviews": reviews,
		"summary": summary,
	})
}

type createReviewRequest struct {
	SKUID  string `json:"skuId"`
	Rating int    `json:"rating"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

func (h *ReviewHandler) create(w http.ResponseWriter, r *http.Request, productID string) {
	avatarID := middleware.AvatarIDFromContext(r.Context())
	if avatarID == "" {
		unauthorized(w)
		return
	}

	var req createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json body")
		return
	}

	rev := revdom.Review{
		ID:        newID(),
		ProductID: productID,
		SKUID:     strings.TrimSpace(req.SKUID),
		AvatarID:  avatarID,
		Rating:    req.Rating,
		Title:     strings.TrimSpace(req.Title),
		Body:      strings.TrimSpace(req.Body),
		CreatedAt: time.Now().UTC(),
	}
	if err := rev.Validate(); err != nil {
		badRequest(w, err.Error())
		return
	}

	if err := h.Repo.Add(r.Context(), rev); err != nil {
		internalError(w, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, rev)
}
