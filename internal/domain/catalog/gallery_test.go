package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The exact ordering contract: variant imagery first, product fallback
// imagery second, other variants last, duplicates keep first occurrence.
func TestImagesFor_OrderingContract(t *testing.T) {
	product := Product{
		ID:        "spu-1",
		Thumbnail: "P0",
		Images:    []string{"P1", "P2"},
	}
	resolved := &SKU{
		ID:        "sku-1",
		Thumbnail: "S0",
		Images:    []string{"S0", "P1"}, // self-duplicate + product duplicate
	}
	siblings := []SKU{
		{ID: "sku-2", Thumbnail: "X0", Images: []string{"X1"}},
	}

	got := ImagesFor(resolved, product, siblings)

	// S0 once, P1 at its first position, P0 excluded because the resolved
	// SKU has a non-empty thumbnail.
	assert.Equal(t, []string{"S0", "P1", "P2", "X0", "X1"}, got)
}

func TestImagesFor_NoResolvedSKUFallsBackToProduct(t *testing.T) {
	product := Product{
		ID:        "spu-1",
		Thumbnail: "P0",
		Images:    []string{"P1"},
	}
	siblings := []SKU{
		{ID: "sku-2", Thumbnail: "X0", Images: []string{"X1"}},
	}

	got := ImagesFor(nil, product, siblings)

	assert.Equal(t, []string{"P0", "P1", "X0", "X1"}, got)
}

func TestImagesFor_EmptyResolvedThumbnailKeepsProductThumbnail(t *testing.T) {
	product := Product{ID: "spu-1", Thumbnail: "P0", Images: []string{"P1"}}
	resolved := &SKU{ID: "sku-1", Thumbnail: "", Images: []string{"S1"}}

	got := ImagesFor(resolved, product, nil)

	assert.Equal(t, []string{"S1", "P0", "P1"}, got)
}

func TestImagesFor_ResolvedSKUExcludedFromSiblings(t *testing.T) {
	product := Product{ID: "spu-1"}
	resolved := &SKU{ID: "sku-1", Thumbnail: "S0"}
	siblings := []SKU{
		{ID: "sku-1", Thumbnail: "S0", Images: []string{"S1"}}, // same SKU listed as sibling
		{ID: "sku-2", Thumbnail: "X0"},
	}

	got := ImagesFor(resolved, product, siblings)

	assert.Equal(t, []string{"S0", "X0"}, got)
}

func TestImagesFor_SkipsEmptyIdentifiers(t *testing.T) {
	product := Product{ID: "spu-1", Images: []string{"", "P1", "  "}}

	got := ImagesFor(nil, product, nil)

	assert.Equal(t, []string{"P1"}, got)
}

func TestImagesFor_EmptyEverythingGivesEmptyList(t *testing.T) {
	got := ImagesFor(nil, Product{ID: "spu-1"}, nil)
	assert.Empty(t, got)
}
