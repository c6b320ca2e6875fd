package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testProduct builds a two-axis product: Color=[Red,Blue,Green], Size=[S,M,L].
func testProduct() Product {
	return Product{
		ID:   "spu-1",
		Name: "Basic Tee",
		VariationAxes: []Axis{
			{ID: "color", Name: "Color", Values: []string{"Red", "Blue", "Green"}},
			{ID: "size", Name: "Size", Values: []string{"S", "M", "L"}},
		},
		Thumbnail: "P0",
		Images:    []string{"P1", "P2"},
	}
}

func testSKUs() []SKU {
	return []SKU{
		{ID: "sku-red-s", ProductID: "spu-1", TierIndex: []int{0, 0}, Price: 1900, Stock: 4},
		{ID: "sku-red-m", ProductID: "spu-1", TierIndex: []int{0, 1}, Price: 1900, Stock: 0},
		{ID: "sku-blue-m", ProductID: "spu-1", TierIndex: []int{1, 1}, Price: 2100, Stock: 7},
		{ID: "sku-green-l", ProductID: "spu-1", TierIndex: []int{2, 2}, Price: 2300, Stock: 1},
	}
}

func TestBuildVariantIndex_Lookup(t *testing.T) {
	p := testProduct()
	idx := BuildVariantIndex(testSKUs(), p.VariationAxes)

	require.Equal(t, 4, idx.Len())
	require.Empty(t, idx.Warnings())

	s, ok := idx.Lookup([]int{1, 1})
	require.True(t, ok)
	assert.Equal(t, "sku-blue-m", s.ID)

	// NotFound is a normal outcome, not an error.
	_, ok = idx.Lookup([]int{2, 0})
	assert.False(t, ok)

	// Wrong tuple length never matches.
	_, ok = idx.Lookup([]int{1})
	assert.False(t, ok)
}

func TestBuildVariantIndex_DropsLengthMismatch(t *testing.T) {
	p := testProduct()
	skus := append(testSKUs(), SKU{ID: "sku-broken", TierIndex: []int{0}})

	idx := BuildVariantIndex(skus, p.VariationAxes)

	assert.Equal(t, 4, idx.Len())
	require.Len(t, idx.Warnings(), 1)
	w := idx.Warnings()[0]
	assert.Equal(t, "sku-broken", w.SKUID)
	assert.Equal(t, WarnTierLengthMismatch, w.Reason)
}

func TestBuildVariantIndex_DropsOutOfRange(t *testing.T) {
	p := testProduct()
	skus := append(testSKUs(), SKU{ID: "sku-oob", TierIndex: []int{0, 9}})

	idx := BuildVariantIndex(skus, p.VariationAxes)

	assert.Equal(t, 4, idx.Len())
	require.Len(t, idx.Warnings(), 1)
	assert.Equal(t, WarnTierIndexOutOfRange, idx.Warnings()[0].Reason)
}

func TestBuildVariantIndex_DuplicateTupleFirstWins(t *testing.T) {
	p := testProduct()
	skus := []SKU{
		{ID: "sku-a", TierIndex: []int{0, 0}},
		{ID: "sku-b", TierIndex: []int{0, 0}},
		{ID: "sku-c", TierIndex: []int{0, 0}},
	}

	idx := BuildVariantIndex(skus, p.VariationAxes)

	// Exactly one SKU per distinct tuple, deterministically the first,
	// and exactly one warning per extra duplicate.
	require.Equal(t, 1, idx.Len())
	s, ok := idx.Lookup([]int{0, 0})
	require.True(t, ok)
	assert.Equal(t, "sku-a", s.ID)

	require.Len(t, idx.Warnings(), 2)
	for _, w := range idx.Warnings() {
		assert.Equal(t, WarnDuplicateTierIndex, w.Reason)
	}
	assert.Equal(t, "sku-b", idx.Warnings()[0].SKUID)
	assert.Equal(t, "sku-c", idx.Warnings()[1].SKUID)
}

func TestValuesAvailableAt(t *testing.T) {
	p := testProduct()
	idx := BuildVariantIndex(testSKUs(), p.VariationAxes)

	// No constraint: every stocked color index appears.
	colors := idx.ValuesAvailableAt(0, nil)
	assert.Equal(t, map[int]struct{}{0: {}, 1: {}, 2: {}}, colors)

	// Color=Red fixed -> sizes S and M only.
	sizes := idx.ValuesAvailableAt(1, map[int]int{0: 0})
	assert.Equal(t, map[int]struct{}{0: {}, 1: {}}, sizes)

	// A fixed entry for the queried axis itself is ignored.
	sizes = idx.ValuesAvailableAt(1, map[int]int{0: 0, 1: 2})
	assert.Equal(t, map[int]struct{}{0: {}, 1: {}}, sizes)

	// Color=Green fixed -> only L.
	sizes = idx.ValuesAvailableAt(1, map[int]int{0: 2})
	assert.Equal(t, map[int]struct{}{2: {}}, sizes)
}

// Availability soundness/completeness: every reported value is backed by a
// compatible SKU, and every compatible SKU's value is reported.
func TestValuesAvailableAt_SoundAndComplete(t *testing.T) {
	p := testProduct()
	skus := testSKUs()
	idx := BuildVariantIndex(skus, p.VariationAxes)

	for axisPos := 0; axisPos < 2; axisPos++ {
		other := 1 - axisPos
		for otherIdx := range p.VariationAxes[other].Values {
			fixed := map[int]int{other: otherIdx}
			got := idx.ValuesAvailableAt(axisPos, fixed)

			want := map[int]struct{}{}
			for _, s := range skus {
				if s.TierIndex[other] == otherIdx {
					want[s.TierIndex[axisPos]] = struct{}{}
				}
			}
			assert.Equal(t, want, got, "axisPos=%d fixed=%v", axisPos, fixed)
		}
	}
}
