// internal/domain/catalog/variant_index.go
package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// ======================================
// Integrity warnings
// ======================================

// WarningReason classifies a data-integrity problem found while indexing.
type WarningReason string

const (
	WarnTierLengthMismatch  WarningReason = "tier_length_mismatch"
	WarnTierIndexOutOfRange WarningReason = "tier_index_out_of_range"
	WarnDuplicateTierIndex  WarningReason = "duplicate_tier_index"
)

// IntegrityWarning is a non-fatal data-quality report. The offending SKU is
// excluded from the index; the product still renders with the rest.
type IntegrityWarning struct {
	SKUID  string        `json:"skuId"`
	Reason WarningReason `json:"reason"`
	Detail string        `json:"detail"`
}

func (w IntegrityWarning) String() string {
	return fmt.Sprintf("sku=%s reason=%s detail=%s", w.SKUID, w.Reason, w.Detail)
}

// ======================================
// VariantIndex
// ======================================

// VariantIndex is an O(1) lookup from a complete tierIndex tuple to its
// owning SKU, plus the partial-match scans that drive availability pruning.
//
// Derived entirely from {primarySku} ∪ siblingSkus.
// SKU リストが変わったら作り直す（incremental update はしない）。
type VariantIndex struct {
	axisCount int
	byKey     map[string]SKU
	skus      []SKU // valid SKUs, input order preserved
	warnings  []IntegrityWarning
}

// tierKey builds the composite map key for a tuple.
// "/" は index（非負整数の10進表記）には現れないので separator として安全。
func tierKey(tier []int) string {
	parts := make([]string, len(tier))
	for i, v := range tier {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, "/")
}

// BuildVariantIndex indexes skus against the product's axes.
//
// Malformed SKUs are dropped and reported, never fatal:
//   - tuple length != len(axes)        -> WarnTierLengthMismatch
//   - tuple value out of axis range    -> WarnTierIndexOutOfRange
//   - duplicate tuple (first one wins) -> WarnDuplicateTierIndex (shadowed)
func BuildVariantIndex(skus []SKU, axes []Axis) *VariantIndex {
	idx := &VariantIndex{
		axisCount: len(axes),
		byKey:     make(map[string]SKU, len(skus)),
	}

	for _, s := range skus {
		if len(s.TierIndex) != idx.axisCount {
			idx.warnings = append(idx.warnings, IntegrityWarning{
				SKUID:  s.ID,
				Reason: WarnTierLengthMismatch,
				Detail: fmt.Sprintf("got %d positions, want %d", len(s.TierIndex), idx.axisCount),
			})
			continue
		}

		outOfRange := false
		for i, v := range s.TierIndex {
			if v < 0 || v >= len(axes[i].Values) {
				idx.warnings = append(idx.warnings, IntegrityWarning{
					SKUID:  s.ID,
					Reason: WarnTierIndexOutOfRange,
					Detail: fmt.Sprintf("axis %s: index %d out of range [0,%d)", axes[i].ID, v, len(axes[i].Values)),
				})
				outOfRange = true
				break
			}
		}
		if outOfRange {
			continue
		}

		key := tierKey(s.TierIndex)
		if prev, dup := idx.byKey[key]; dup {
			// 先勝ち。後から来た方は shadowed として報告する。
			idx.warnings = append(idx.warnings, IntegrityWarning{
				SKUID:  s.ID,
				Reason: WarnDuplicateTierIndex,
				Detail: fmt.Sprintf("tuple %s already owned by sku %s", key, prev.ID),
			})
			continue
		}

		idx.byKey[key] = s
		idx.skus = append(idx.skus, s)
	}

	return idx
}

// AxisCount returns the tuple length this index was built for.
func (idx *VariantIndex) AxisCount() int {
	if idx == nil {
		return 0
	}
	return idx.axisCount
}

// Len returns the number of valid (indexed) SKUs.
func (idx *VariantIndex) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.skus)
}

// Warnings returns the data-integrity warnings collected during build.
func (idx *VariantIndex) Warnings() []IntegrityWarning {
	if idx == nil {
		return nil
	}
	return idx.warnings
}

// SKUs returns the valid SKUs in input order.
func (idx *VariantIndex) SKUs() []SKU {
	if idx == nil {
		return nil
	}
	return idx.skus
}

// Lookup resolves a complete tuple to its owning SKU.
// ok=false は通常の結果（その組み合わせの在庫が存在しない）であり、エラーではない。
func (idx *VariantIndex) Lookup(tier []int) (SKU, bool) {
	if idx == nil || len(tier) != idx.axisCount {
		return SKU{}, false
	}
	s, ok := idx.byKey[tierKey(tier)]
	return s, ok
}

// ValuesAvailableAt returns the set of option indices for the axis at
// axisPos that appear in at least one SKU whose other fixed positions all
// match. fixed maps axis position -> option index; an entry for axisPos
// itself is ignored (we are asking what is still choosable there).
//
// Always computed from the full valid SKU set, never from the primary
// SKU alone.
func (idx *VariantIndex) ValuesAvailableAt(axisPos int, fixed map[int]int) map[int]struct{} {
	out := map[int]struct{}{}
	if idx == nil || axisPos < 0 || axisPos >= idx.axisCount {
		return out
	}

	for _, s := range idx.skus {
		match := true
		for pos, want := range fixed {
			if pos == axisPos {
				continue
			}
			if pos < 0 || pos >= idx.axisCount {
				match = false
				break
			}
			if s.TierIndex[pos] != want {
				match = false
				break
			}
		}
		if match {
			out[s.TierIndex[axisPos]] = struct{}{}
		}
	}
	return out
}
