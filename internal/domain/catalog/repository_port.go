// internal/domain/catalog/repository_port.go
package catalog

import "context"

// Repository is the read port for product-detail data.
//
// Storage recommendation (Firestore):
// - collection: products (docId = productId, embedded variationAxes)
// - subcollection: products/{productId}/skus (docId = skuId)
//
// Not-found policy: return ErrNotFound (wrapped is fine; callers test with
// errors.Is / IsNotFound).
type Repository interface {
	// GetDetailByProductID loads the product plus ALL its SKUs.
	// PrimarySKU is the first SKU in storage order unless skuID is given.
	GetDetailByProductID(ctx context.Context, productID string) (ProductDetail, error)

	// GetDetailBySKUID loads the detail with the named SKU as primary
	// (the page was opened by SKU id).
	GetDetailBySKUID(ctx context.Context, skuID string) (ProductDetail, error)
}
