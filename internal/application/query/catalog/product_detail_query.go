// internal/application/query/catalog/product_detail_query.go
package catalogQuery

import (
	"context"
	"errors"
	"log"
	"strings"

	dto "storefront/internal/application/query/catalog/dto"
	catdom "storefront/internal/domain/catalog"
)

// GetByProductID builds the full product-detail read model.
//
//   - skuID != "": the page was opened by that SKU (it becomes primary)
//   - sel == nil : selection is seeded from the primary SKU
//   - sel != nil : the caller's selection is applied as-is (the engine never
//     auto-clears a stale axis choice; that stays caller policy)
func (q *ProductDetailQuery) GetByProductID(
	ctx context.Context,
	productID string,
	skuID string,
	sel catdom.Selection,
) (dto.ProductDetailDTO, error) {
	if q == nil || q.ProductRepo == nil {
		return dto.ProductDetailDTO{}, errors.New("productDetail query: product repo is nil")
	}

	productID = strings.TrimSpace(productID)
	skuID = strings.TrimSpace(skuID)
	if productID == "" && skuID == "" {
		return dto.ProductDetailDTO{}, catdom.ErrNotFound
	}

	log.Printf("[productDetail] start productId=%q skuId=%q", productID, skuID)

	var detail catdom.ProductDetail
	var err error
	if skuID != "" {
		detail, err = q.ProductRepo.GetDetailBySKUID(ctx, skuID)
	} else {
		detail, err = q.ProductRepo.GetDetailByProductID(ctx, productID)
	}
	if err != nil {
		log.Printf("[productDetail] fetch error productId=%q skuId=%q err=%q", productID, skuID, err.Error())
		return dto.ProductDetailDTO{}, err
	}

	product := detail.Product

	// ------------------------------------------------------------
	// Index (rebuilt per request; SKU セットが変われば作り直すだけ)
	// ------------------------------------------------------------
	idx := catdom.BuildVariantIndex(detail.AllSKUs(), product.VariationAxes)
	warnings := idx.Warnings()
	for _, w := range warnings {
		log.Printf("[productDetail] integrity warning productId=%q %s", product.ID, w.String())
	}

	var resolverOpts []catdom.ResolverOption
	if q.DefaultUnselectedToFirstValue {
		resolverOpts = append(resolverOpts, catdom.WithDefaultUnselectedToFirstValue())
	}
	resolver := catdom.NewSelectionResolver(product, idx, resolverOpts...)

	// ------------------------------------------------------------
	// Selection: caller's, or seeded from the primary SKU
	// ------------------------------------------------------------
	if sel == nil {
		seeded, seedWarns := resolver.SelectionFromSKU(detail.PrimarySKU)
		sel = seeded
		warnings = append(warnings, seedWarns...)
	}

	// ------------------------------------------------------------
	// Resolution + per-axis availability
	// ------------------------------------------------------------
	res, err := resolver.Resolve(sel)
	if err != nil {
		// InvalidInput: the caller constructed an impossible request.
		log.Printf("[productDetail] resolve error productId=%q err=%q", product.ID, err.Error())
		return dto.ProductDetailDTO{}, err
	}

	availability := make([]dto.AxisAvailabilityDTO, 0, len(product.VariationAxes))
	for _, axis := range product.VariationAxes {
		avail, aerr := resolver.AvailableValues(axis.ID, sel)
		if aerr != nil {
			log.Printf("[productDetail] availability error productId=%q axis=%q err=%q", product.ID, axis.ID, aerr.Error())
			return dto.ProductDetailDTO{}, aerr
		}
		availability = append(availability, toAxisAvailabilityDTO(axis, avail, sel))
	}

	// ------------------------------------------------------------
	// Gallery
	// ------------------------------------------------------------
	gallery := catdom.ImagesFor(res.SKU, product, detail.SiblingSKUs)

	out := dto.ProductDetailDTO{
		Product:      toProductDTO(product),
		SKUs:         toSKUDTOs(idx.SKUs()),
		Selection:    sel,
		Resolution:   toResolutionDTO(res),
		Availability: availability,
		Gallery:      gallery,
		Warnings:     toWarningDTOs(warnings),
	}

	// ------------------------------------------------------------
	// Media URLs (best-effort)
	// ------------------------------------------------------------
	if q.Media != nil && len(gallery) > 0 {
		urls, merr := q.resolveMediaURLs(ctx, gallery)
		if merr != "" {
			out.MediaError = merr
		} else {
			out.GalleryURLs = urls
		}
	}

	// ------------------------------------------------------------
	// Review summary (best-effort)
	// ------------------------------------------------------------
	if q.ReviewRepo != nil {
		sum, rerr := q.ReviewRepo.SummaryByProductID(ctx, product.ID)
		if rerr != nil {
			out.ReviewSummaryError = rerr.Error()
			log.Printf("[productDetail] review summary error productId=%q err=%q", product.ID, rerr.Error())
		} else {
			out.ReviewSummary = &dto.ReviewSummaryDTO{
				Total:     sum.Total,
				Average:   sum.Average,
				Breakdown: sum.Breakdown,
			}
		}
	}

	log.Printf("[productDetail] ok productId=%q state=%q skus=%d gallery=%d warnings=%d",
		product.ID, out.Resolution.State, len(out.SKUs), len(out.Gallery), len(out.Warnings))
	return out, nil
}

// resolveMediaURLs maps identifiers to URLs, same order as ids.
// 1 件でも失敗したら URL 列は返さない（順序ズレで UI が壊れるのを防ぐ）。
func (q *ProductDetailQuery) resolveMediaURLs(ctx context.Context, ids []string) ([]string, string) {
	urls := make([]string, 0, len(ids))
	for _, id := range ids {
		u, err := q.Media.ResolveURL(ctx, id)
		if err != nil {
			log.Printf("[productDetail] media resolve error imageId=%q err=%q", id, err.Error())
			return nil, err.Error()
		}
		urls = append(urls, u)
	}
	return urls, ""
}
