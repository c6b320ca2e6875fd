// internal/adapters/in/http/store/handler/product_detail_handler.go
package storeHandler

import (
	"encoding/json"
	"net/http"
	"strings"

	catalogquery "storefront/internal/application/query/catalog"
	catdom "storefront/internal/domain/catalog"
)

// ProductDetailHandler serves the buyer-facing product page read model.
//
// Routes:
// - GET  /storefront/products/{productId}            (?sku=<skuId> opens by SKU)
// - POST /storefront/products/{productId}/resolve    body: {"selection": {axisId: value}}
type ProductDetailHandler struct {
	Q *catalogquery.ProductDetailQuery
}

func NewProductDetailHandler(q *catalogquery.ProductDetailQuery) http.Handler {
	return &ProductDetailHandler{Q: q}
}

const productsPrefix = "/storefront/products/"

func (h *ProductDetailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Q == nil {
		internalError(w, "product detail handler is not ready")
		return
	}

	path := strings.TrimSuffix(r.URL.Path, "/")
	if !strings.HasPrefix(path, productsPrefix) {
		notFound(w)
		return
	}
	rest := strings.TrimPrefix(path, productsPrefix)

	// resolve: /storefront/products/{productId}/resolve
	if strings.HasSuffix(rest, "/resolve") {
		productID := strings.TrimSpace(strings.TrimSuffix(rest, "/resolve"))
		if productID == "" {
			notFound(w)
			return
		}
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		h.resolve(w, r, productID)
		return
	}

	// detail: /storefront/products/{productId}
	productID := strings.TrimSpace(rest)
	if productID == "" || strings.Contains(productID, "/") {
		notFound(w)
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	skuID := strings.TrimSpace(r.URL.Query().Get("sku"))

	dto, err := h.Q.GetByProductID(r.Context(), productID, skuID, nil)
	if err != nil {
		h.writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

type resolveRequest struct {
	Selection map[string]string `json:"selection"`
}

func (h *ProductDetailHandler) resolve(w http.ResponseWriter, r *http.Request, productID string) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json body")
		return
	}
	if req.Selection == nil {
		badRequest(w, "selection is required")
		return
	}

	dto, err := h.Q.GetByProductID(r.Context(), productID, "", catdom.Selection(req.Selection))
	if err != nil {
		h.writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

func (h *ProductDetailHandler) writeQueryError(w http.ResponseWriter, err error) {
	switch {
	case catdom.IsNotFound(err):
		// buyer-facing: not found is 404, never 500
		notFound(w)
	case catdom.IsInvalidInput(err):
		// caller constructed an impossible request; fail loudly
		badRequest(w, err.Error())
	default:
		internalError(w, err.Error())
	}
}
