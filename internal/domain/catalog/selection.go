// internal/domain/catalog/selection.go
package catalog

import (
	"fmt"
)

// ======================================
// Selection
// ======================================

// Selection maps axis id -> chosen value string. May be partial.
//
// 値は文字列で持ち、index は解決時に Axis.Values から引く
// （二つの axis が偶然同じ値文字列を共有しても破綻しないように axis id を key にする）。
type Selection map[string]string

// Clone returns a copy. Mutating the copy never affects the receiver.
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// ======================================
// Resolution result
// ======================================

type ResolutionState string

const (
	// ResolutionIncomplete: fewer than axisCount axes have a chosen value.
	ResolutionIncomplete ResolutionState = "incomplete"
	// ResolutionMatched: the complete selection maps to an existing SKU.
	ResolutionMatched ResolutionState = "matched"
	// ResolutionNoSuchCombination: complete selection, but no SKU owns the tuple.
	ResolutionNoSuchCombination ResolutionState = "no_such_combination"
)

// Resolution is a tagged result, never an error: Incomplete and
// NoSuchCombination are ordinary business outcomes and the UI needs to
// tell them apart ("select all options" vs "combination unavailable").
type Resolution struct {
	State ResolutionState
	// SKU is set only when State == ResolutionMatched.
	SKU *SKU
}

// ======================================
// SelectionResolver
// ======================================

// SelectionResolver mediates between the user-facing Selection
// (axis id -> value string) and the VariantIndex (integer tuples).
//
// Deliberately does NOT auto-clear a stale choice on another axis after a
// Choose narrows availability; that is caller policy (the engine only
// reports NoSuchCombination / narrowed AvailableValues).
type SelectionResolver struct {
	product Product
	index   *VariantIndex

	// defaultUnselectedToFirstValue: 未選択の axis を index 0 扱いで解決する。
	// 旧実装の暗黙挙動を明示的なポリシーとして切り出したもの。既定は off。
	defaultUnselectedToFirstValue bool
}

type ResolverOption func(*SelectionResolver)

// WithDefaultUnselectedToFirstValue makes Resolve treat an unselected axis
// as if its first value were chosen.
func WithDefaultUnselectedToFirstValue() ResolverOption {
	return func(r *SelectionResolver) {
		r.defaultUnselectedToFirstValue = true
	}
}

func NewSelectionResolver(p Product, idx *VariantIndex, opts ...ResolverOption) *SelectionResolver {
	r := &SelectionResolver{
		product: p,
		index:   idx,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// SelectionFromSKU seeds a Selection from the SKU the page was opened with:
// selection[axis[i].id] = axis[i].values[sku.tierIndex[i]].
//
// An out-of-range (or missing) tier position is a data error: that axis is
// left unselected and reported as a warning, never thrown.
func (r *SelectionResolver) SelectionFromSKU(sku SKU) (Selection, []IntegrityWarning) {
	sel := Selection{}
	var warns []IntegrityWarning

	for i, axis := range r.product.VariationAxes {
		if i >= len(sku.TierIndex) {
			warns = append(warns, IntegrityWarning{
				SKUID:  sku.ID,
				Reason: WarnTierLengthMismatch,
				Detail: fmt.Sprintf("got %d positions, want %d", len(sku.TierIndex), r.product.AxisCount()),
			})
			continue
		}
		v := sku.TierIndex[i]
		if v < 0 || v >= len(axis.Values) {
			warns = append(warns, IntegrityWarning{
				SKUID:  sku.ID,
				Reason: WarnTierIndexOutOfRange,
				Detail: fmt.Sprintf("axis %s: index %d out of range [0,%d)", axis.ID, v, len(axis.Values)),
			})
			continue
		}
		sel[axis.ID] = axis.Values[v]
	}
	return sel, warns
}

// Choose returns a new Selection with exactly one axis set to value, all
// other choices preserved. Pure: the input Selection is never mutated, and
// nothing is looked up.
func (r *SelectionResolver) Choose(sel Selection, axisID, value string) (Selection, error) {
	axis, pos := r.product.AxisByID(axisID)
	if pos < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAxis, axisID)
	}
	if axis.IndexOfValue(value) < 0 {
		return nil, fmt.Errorf("%w: axis %q value %q", ErrUnknownValue, axisID, value)
	}

	out := sel.Clone()
	out[axisID] = value
	return out, nil
}

// tierOf maps the selection to a tuple. complete=false when at least one
// axis has no chosen value (and defaulting is off). A value string that is
// not one of the axis's values is a caller programming error.
func (r *SelectionResolver) tierOf(sel Selection) (tier []int, complete bool, err error) {
	tier = make([]int, r.product.AxisCount())
	complete = true

	for i, axis := range r.product.VariationAxes {
		v, chosen := sel[axis.ID]
		if !chosen {
			if r.defaultUnselectedToFirstValue {
				tier[i] = 0
				continue
			}
			complete = false
			continue
		}
		vi := axis.IndexOfValue(v)
		if vi < 0 {
			return nil, false, fmt.Errorf("%w: axis %q value %q", ErrUnknownValue, axis.ID, v)
		}
		tier[i] = vi
	}
	return tier, complete, nil
}

// Resolve classifies the current selection.
//
// 同じ selection と同じ index に対しては常に同じ結果を返す
// （読み取り操作が index を書き換えることはない）。
func (r *SelectionResolver) Resolve(sel Selection) (Resolution, error) {
	if r == nil || r.index == nil {
		return Resolution{}, ErrNilVariantIndex
	}

	// Unknown axis ids in the selection are caller bugs, not "incomplete".
	for axisID := range sel {
		if _, pos := r.product.AxisByID(axisID); pos < 0 {
			return Resolution{}, fmt.Errorf("%w: %q", ErrUnknownAxis, axisID)
		}
	}

	tier, complete, err := r.tierOf(sel)
	if err != nil {
		return Resolution{}, err
	}
	if !complete {
		return Resolution{State: ResolutionIncomplete}, nil
	}

	sku, ok := r.index.Lookup(tier)
	if !ok {
		return Resolution{State: ResolutionNoSuchCombination}, nil
	}
	return Resolution{State: ResolutionMatched, SKU: &sku}, nil
}

// AvailableValues returns the value strings still choosable for axisID,
// holding every OTHER currently-chosen axis fixed. The queried axis itself
// is excluded from the fixed set. Result preserves Axis.Values order.
//
// Choose のたびに全 axis について呼び直すこと
// （一つの axis の変更が他の全 axis の可用性を変え得る）。
func (r *SelectionResolver) AvailableValues(axisID string, sel Selection) ([]string, error) {
	if r == nil || r.index == nil {
		return nil, ErrNilVariantIndex
	}

	axis, pos := r.product.AxisByID(axisID)
	if pos < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAxis, axisID)
	}

	fixed := map[int]int{}
	for id, v := range sel {
		a, p := r.product.AxisByID(id)
		if p < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAxis, id)
		}
		if p == pos {
			continue
		}
		vi := a.IndexOfValue(v)
		if vi < 0 {
			return nil, fmt.Errorf("%w: axis %q value %q", ErrUnknownValue, id, v)
		}
		fixed[p] = vi
	}

	avail := r.index.ValuesAvailableAt(pos, fixed)

	out := make([]string, 0, len(avail))
	for i, v := range axis.Values {
		if _, ok := avail[i]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}
