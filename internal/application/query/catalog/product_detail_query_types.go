// internal/application/query/catalog/product_detail_query_types.go
package catalogQuery

import (
	"context"

	catdom "storefront/internal/domain/catalog"
	revdom "storefront/internal/domain/review"
)

// ============================================================
// Ports (minimal contracts for this query)
// ============================================================

// ReviewSummaryRepository is the read-only review contract the product
// page needs (full review listing has its own handler).
type ReviewSummaryRepository interface {
	SummaryByProductID(ctx context.Context, productID string) (revdom.Summary, error)
}

// MediaResolver maps an image identifier to a displayable URL.
// identifier -> URL mapping is entirely opaque to the resolution core;
// the query layer applies it as a best-effort decoration.
type MediaResolver interface {
	ResolveURL(ctx context.Context, imageID string) (string, error)
}

// ============================================================
// Query
// ============================================================

type ProductDetailQuery struct {
	ProductRepo catdom.Repository

	// Optional collaborators (best-effort; nil is allowed).
	ReviewRepo ReviewSummaryRepository
	Media      MediaResolver

	// DefaultUnselectedToFirstValue: 未選択 axis を先頭値で解決する旧挙動。
	// 明示フラグとしてのみ有効化できる（既定 off）。
	DefaultUnselectedToFirstValue bool
}

// ============================================================
// Constructor Options (single entrypoint)
// ============================================================

type ProductDetailQueryOption func(*ProductDetailQuery)

func WithReviewRepo(repo ReviewSummaryRepository) ProductDetailQueryOption {
	return func(q *ProductDetailQuery) {
		q.ReviewRepo = repo
	}
}

func WithMediaResolver(m MediaResolver) ProductDetailQueryOption {
	return func(q *ProductDetailQuery) {
		q.Media = m
	}
}

func WithDefaultUnselectedToFirstValue() ProductDetailQueryOption {
	return func(q *ProductDetailQuery) {
		q.DefaultUnselectedToFirstValue = true
	}
}

// NewProductDetailQuery is the ONLY wiring entrypoint.
// All dependencies must be routed through this constructor.
func NewProductDetailQuery(productRepo catdom.Repository, opts ...ProductDetailQueryOption) *ProductDetailQuery {
	q := &ProductDetailQuery{
		ProductRepo: productRepo,

		ReviewRepo: nil, // optional
		Media:      nil, // optional
	}

	for _, opt := range opts {
		if opt != nil {
			opt(q)
		}
	}
	return q
}
