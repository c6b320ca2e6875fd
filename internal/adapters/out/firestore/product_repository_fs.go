// internal/adapters/out/firestore/product_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	catdom "storefront/internal/domain/catalog"
)

// ProductRepositoryFS implements catalog.Repository using Firestore.
//
// Collection design:
// - collection: products (docId = productId, variationAxes embedded)
// - subcollection: products/{productId}/skus (docId = skuId)
//
// SKU storage order = upload order; the page's "primary" SKU is the first
// one unless the detail was opened by SKU id.
type ProductRepositoryFS struct {
	Client *firestore.Client
}

const (
	productsCollection = "products"
	skusSubcollection  = "skus"
)

func NewProductRepositoryFS(client *firestore.Client) *ProductRepositoryFS {
	return &ProductRepositoryFS{Client: client}
}

func (r *ProductRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(productsCollection)
}

// GetDetailByProductID loads the product plus all its SKUs.
func (r *ProductRepositoryFS) GetDetailByProductID(ctx context.Context, productID string) (catdom.ProductDetail, error) {
	if r == nil || r.Client == nil {
		return catdom.ProductDetail{}, errors.New("product_repository_fs: firestore client is nil")
	}

	pid := strings.TrimSpace(productID)
	if pid == "" {
		return catdom.ProductDetail{}, catdom.ErrNotFound
	}

	product, err := r.getProduct(ctx, pid)
	if err != nil {
		return catdom.ProductDetail{}, err
	}

	skus, err := r.listSKUs(ctx, pid)
	if err != nil {
		return catdom.ProductDetail{}, err
	}
	if len(skus) == 0 {
		// SKU の無い商品は販売できない。データ投入側の不備として not found 扱い。
		return catdom.ProductDetail{}, catdom.WrapInvalid(catdom.ErrNotFound, "product "+pid+" has no skus")
	}

	return catdom.ProductDetail{
		Product:     product,
		PrimarySKU:  skus[0],
		SiblingSKUs: skus[1:],
	}, nil
}

// GetDetailBySKUID loads the detail with the named SKU as primary.
func (r *ProductRepositoryFS) GetDetailBySKUID(ctx context.Context, skuID string) (catdom.ProductDetail, error) {
	if r == nil || r.Client == nil {
		return catdom.ProductDetail{}, errors.New("product_repository_fs: firestore client is nil")
	}

	sid := strings.TrimSpace(skuID)
	if sid == "" {
		return catdom.ProductDetail{}, catdom.ErrNotFound
	}

	// collection-group lookup: skus across all products, field id == skuId
	it := r.Client.CollectionGroup(skusSubcollection).Where("id", "==", sid).Limit(1).Documents(ctx)
	defer it.Stop()

	snap, err := it.Next()
	if err == iterator.Done {
		return catdom.ProductDetail{}, catdom.ErrNotFound
	}
	if err != nil {
		return catdom.ProductDetail{}, err
	}

	var primary catdom.SKU
	if err := snap.DataTo(&primary); err != nil {
		return catdom.ProductDetail{}, err
	}
	primary.ID = snap.Ref.ID

	// parent path: products/{productId}/skus/{skuId}
	productRef := snap.Ref.Parent.Parent
	if productRef == nil {
		return catdom.ProductDetail{}, errors.New("product_repository_fs: sku has no parent product")
	}
	primary.ProductID = productRef.ID

	product, err := r.getProduct(ctx, productRef.ID)
	if err != nil {
		return catdom.ProductDetail{}, err
	}

	skus, err := r.listSKUs(ctx, productRef.ID)
	if err != nil {
		return catdom.ProductDetail{}, err
	}

	siblings := make([]catdom.SKU, 0, len(skus))
	for _, s := range skus {
		if s.ID == primary.ID {
			continue
		}
		siblings = append(siblings, s)
	}

	return catdom.ProductDetail{
		Product:     product,
		PrimarySKU:  primary,
		SiblingSKUs: siblings,
	}, nil
}

// ─────────────────────────────────
// internals
// ─────────────────────────────────

func (r *ProductRepositoryFS) getProduct(ctx context.Context, productID string) (catdom.Product, error) {
	snap, err := r.col().Doc(productID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return catdom.Product{}, catdom.ErrNotFound
		}
		return catdom.Product{}, err
	}

	var p catdom.Product
	if err := snap.DataTo(&p); err != nil {
		return catdom.Product{}, err
	}
	// docId is the source of truth
	p.ID = snap.Ref.ID

	if err := p.Validate(); err != nil {
		return catdom.Product{}, err
	}
	return p, nil
}

func (r *ProductRepositoryFS) listSKUs(ctx context.Context, productID string) ([]catdom.SKU, error) {
	it := r.col().Doc(productID).Collection(skusSubcollection).Documents(ctx)
	defer it.Stop()

	var out []catdom.SKU
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var s catdom.SKU
		if err := snap.DataTo(&s); err != nil {
			return nil, err
		}
		s.ID = snap.Ref.ID
		s.ProductID = productID
		out = append(out, s)
	}
	return out, nil
}
