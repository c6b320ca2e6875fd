// internal/domain/catalog/gallery.go
package catalog

import "strings"

// ImagesFor produces the ordered, de-duplicated image identifier list for
// the currently resolved SKU (resolved may be nil).
//
// Priority ("show the exact variant first, then general product imagery,
// then other variants as a last resort"):
//  1. resolved SKU's thumbnail (if non-empty), then its images, in order
//  2. product thumbnail, only when resolved is nil or its thumbnail is empty
//  3. product images, in order
//  4. each sibling other than resolved (input order): thumbnail then images
//  5. de-dup keeping the FIRST occurrence (UI は先頭位置で "selected" サムネを
//     決めるので、この順序は厳守)
//
// Empty identifiers are skipped. An empty result is the caller's problem
// (placeholder substitution happens outside this function).
func ImagesFor(resolved *SKU, product Product, siblings []SKU) []string {
	out := make([]string, 0, 8)
	seen := map[string]struct{}{}

	push := func(id string) {
		id = strings.TrimSpace(id)
		if id == "" {
			return
		}
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	if resolved != nil {
		push(resolved.Thumbnail)
		for _, id := range resolved.Images {
			push(id)
		}
	}

	if resolved == nil || strings.TrimSpace(resolved.Thumbnail) == "" {
		push(product.Thumbnail)
	}

	for _, id := range product.Images {
		push(id)
	}

	for _, sib := range siblings {
		if resolved != nil && sib.ID == resolved.ID {
			continue
		}
		push(sib.Thumbnail)
		for _, id := range sib.Images {
			push(id)
		}
	}

	return out
}
