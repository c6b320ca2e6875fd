// internal/application/query/catalog/dto/product_detail_dto.go
package dto

// ProductDetailDTO is the read model the storefront product page renders.
// Best-effort sections carry their own error string instead of failing the
// whole page (reviews, media URLs).
type ProductDetailDTO struct {
	Product ProductDTO `json:"product"`

	// SKUs are the valid (indexed) SKUs, input order preserved.
	SKUs []SKUDTO `json:"skus"`

	// Selection is the axis id -> value map the resolution was computed for.
	Selection map[string]string `json:"selection"`

	Resolution ResolutionDTO `json:"resolution"`

	// Availability is recomputed for every axis on every request.
	Availability []AxisAvailabilityDTO `json:"availability"`

	// Gallery is the ordered, de-duplicated image identifier list.
	Gallery []string `json:"gallery"`
	// GalleryURLs: resolved display URLs, same order as Gallery (best-effort).
	GalleryURLs []string `json:"galleryUrls,omitempty"`
	MediaError  string   `json:"mediaError,omitempty"`

	// Warnings are non-fatal data-integrity reports (broken SKUs dropped).
	Warnings []IntegrityWarningDTO `json:"warnings,omitempty"`

	ReviewSummary      *ReviewSummaryDTO `json:"reviewSummary,omitempty"`
	ReviewSummaryError string            `json:"reviewSummaryError,omitempty"`
}

type ProductDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Axes        []AxisDTO `json:"axes"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	Images      []string  `json:"images,omitempty"`
}

type AxisDTO struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type SKUDTO struct {
	ID        string   `json:"id"`
	TierIndex []int    `json:"tierIndex"`
	Price     int64    `json:"price"`
	Stock     int      `json:"stock"`
	InStock   bool     `json:"inStock"`
	Thumbnail string   `json:"thumbnail,omitempty"`
	Images    []string `json:"images,omitempty"`
}

// ResolutionDTO.State is "incomplete" / "matched" / "no_such_combination".
// SKU is set only for "matched"; the UI reads price/stock off it and uses
// its id for add-to-cart.
type ResolutionDTO struct {
	State string  `json:"state"`
	SKU   *SKUDTO `json:"sku,omitempty"`
}

type AxisAvailabilityDTO struct {
	AxisID string              `json:"axisId"`
	Name   string              `json:"name"`
	Values []ValueAvailability `json:"values"`
}

// ValueAvailability drives "greying out": Available=false means no SKU
// matches this value once the other chosen axes are held fixed.
type ValueAvailability struct {
	Value     string `json:"value"`
	Available bool   `json:"available"`
	Selected  bool   `json:"selected"`
}

type IntegrityWarningDTO struct {
	SKUID  string `json:"skuId"`
	Reason string `json:"reason"`
	Detail string `json:"detail"`
}

type ReviewSummaryDTO struct {
	Total     int     `json:"total"`
	Average   float64 `json:"average"`
	Breakdown [5]int  `json:"breakdown"` // index i = count of (i+1)-star reviews
}
