// internal/domain/catalog/entity.go
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// 汎用エラー（ドメイン共通）
var (
	ErrNotFound = errors.New("catalog: not found")
	ErrInvalid  = errors.New("catalog: invalid")
	ErrInternal = errors.New("catalog: internal")

	// Caller programming errors (InvalidInput class).
	// これらは呼び出し側のバグであり、リトライ対象ではない。
	ErrUnknownAxis        = errors.New("catalog: unknown axis")
	ErrUnknownValue       = errors.New("catalog: unknown value for axis")
	ErrAxisCountMismatch  = errors.New("catalog: tier index length mismatch")
	ErrNilVariantIndex    = errors.New("catalog: variant index is nil")
	ErrEmptyVariationAxes = errors.New("catalog: product has no variation axes")
)

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
func IsInvalid(err error) bool  { return errors.Is(err, ErrInvalid) }

// IsInvalidInput reports whether err is a caller programming error
// (unknown axis/value, tuple length mismatch).
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrUnknownAxis) ||
		errors.Is(err, ErrUnknownValue) ||
		errors.Is(err, ErrAxisCountMismatch)
}

func WrapInvalid(err error, msg string) error {
	if err == nil {
		return fmt.Errorf("%w: %s", ErrInvalid, msg)
	}
	return fmt.Errorf("%w: %s: %v", ErrInvalid, msg, err)
}

// ======================================
// Axis
// ======================================

// Axis is one variation dimension of a product (e.g. "Color", "Size").
//
// Values の並び順がそのまま option index になる。
// SKU は値文字列ではなく index で参照するため、並び替えは厳禁。
type Axis struct {
	ID     string   `json:"id" firestore:"id"`
	Name   string   `json:"name" firestore:"name"`
	Values []string `json:"values" firestore:"values"`
}

// IndexOfValue returns the option index of value within the axis,
// or -1 when the value is not one of Axis.Values.
func (a Axis) IndexOfValue(value string) int {
	for i, v := range a.Values {
		if v == value {
			return i
		}
	}
	return -1
}

func (a Axis) validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return WrapInvalid(nil, "axis id is empty")
	}
	if len(a.Values) == 0 {
		return WrapInvalid(nil, "axis "+a.ID+" has no values")
	}
	return nil
}

// ======================================
// Product (SPU)
// ======================================

// Product is the SPU ("standard product unit") shared by all its SKUs.
//
// VariationAxes の順序が tierIndex タプルの位置の意味を決める。
// Lifecycle: 商品詳細ページ 1 回分の表示の間は不変として扱う。
type Product struct {
	ID          string `json:"id" firestore:"id"`
	Name        string `json:"name" firestore:"name"`
	Description string `json:"description" firestore:"description"`

	VariationAxes []Axis `json:"variationAxes" firestore:"variationAxes"`

	// Product-level fallback imagery (identifiers, not URLs).
	Thumbnail string   `json:"thumbnail" firestore:"thumbnail"`
	Images    []string `json:"images" firestore:"images"`
}

// AxisByID returns the axis with the given id and its position.
// Position is -1 when the axis does not exist on this product.
func (p Product) AxisByID(axisID string) (Axis, int) {
	for i, a := range p.VariationAxes {
		if a.ID == axisID {
			return a, i
		}
	}
	return Axis{}, -1
}

// AxisCount is the required tierIndex tuple length for this product.
func (p Product) AxisCount() int { return len(p.VariationAxes) }

func (p Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return WrapInvalid(nil, "product id is empty")
	}
	seen := make(map[string]struct{}, len(p.VariationAxes))
	for _, a := range p.VariationAxes {
		if err := a.validate(); err != nil {
			return err
		}
		if _, dup := seen[a.ID]; dup {
			return WrapInvalid(nil, "duplicate axis id "+a.ID)
		}
		seen[a.ID] = struct{}{}
	}
	return nil
}

// ======================================
// SKU
// ======================================

// SKU is one concrete purchasable variant of a product.
//
// TierIndex[i] is the option index into Product.VariationAxes[i].Values.
// The tuple is the SKU's unique variant signature within its product.
type SKU struct {
	ID        string `json:"id" firestore:"id"`
	ProductID string `json:"productId" firestore:"productId"`

	TierIndex []int `json:"tierIndex" firestore:"tierIndex"`

	// Price is in minor currency units (e.g. cents / 円).
	Price int64 `json:"price" firestore:"price"`
	Stock int   `json:"stock" firestore:"stock"`

	// Variant-specific imagery (identifiers, not URLs).
	Thumbnail string   `json:"thumbnail" firestore:"thumbnail"`
	Images    []string `json:"images" firestore:"images"`
}

// InStock reports whether the SKU can currently be purchased.
func (s SKU) InStock() bool { return s.Stock > 0 }

// ======================================
// ProductDetail (read aggregate)
// ======================================

// ProductDetail is the immutable product-detail read model: the product,
// the SKU the page was opened with, and the remaining sibling SKUs.
type ProductDetail struct {
	Product     Product
	PrimarySKU  SKU
	SiblingSKUs []SKU
}

// AllSKUs returns {primary} ∪ siblings in input order, primary first.
func (d ProductDetail) AllSKUs() []SKU {
	out := make([]SKU, 0, 1+len(d.SiblingSKUs))
	out = append(out, d.PrimarySKU)
	out = append(out, d.SiblingSKUs...)
	return out
}
