// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"sort"
	"strings"
	"time"
)

var (
	ErrInvalidCart = errors.New("cart: invalid")
)

// DefaultCartTTL is the inactivity window after which the cart becomes
// eligible for auto deletion (Firestore TTL should be configured on expiresAt).
const DefaultCartTTL = 7 * 24 * time.Hour

// CartItem represents one line item in a cart.
// Uniqueness is defined by (productId, skuId): the SKU id alone identifies
// the purchasable variant, productId is kept for display/navigation.
type CartItem struct {
	ProductID string `json:"productId" firestore:"productId"`
	SKUID     string `json:"skuId" firestore:"skuId"`
	Qty       int    `json:"qty" firestore:"qty"`
}

// Cart represents a cart document.
//   - docId = avatarId (Firestore)
//   - ExpiresAt: for Firestore TTL (auto deletion), refreshed on each mutation
type Cart struct {
	// ID is Firestore docId (= avatarId).
	ID string `json:"id" firestore:"id"`

	Items []CartItem `json:"items" firestore:"items"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
	ExpiresAt time.Time `json:"expiresAt" firestore:"expiresAt"`
}

// NewCart creates a new cart doc. id is the Firestore docId (avatarId).
// items can be nil (treated as empty).
func NewCart(id string, items []CartItem, now time.Time) (*Cart, error) {
	c := &Cart{
		ID:        strings.TrimSpace(id),
		Items:     cloneItems(items),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(DefaultCartTTL),
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Add increases quantity for a (productId, skuId). qty must be >= 1.
func (c *Cart) Add(productID, skuID string, qty int, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}

	pid := strings.TrimSpace(productID)
	sid := strings.TrimSpace(skuID)
	if pid == "" || sid == "" || qty <= 0 {
		return ErrInvalidCart
	}

	idx := findItemIndex(c.Items, pid, sid)
	if idx >= 0 {
		c.Items[idx].Qty += qty
	} else {
		c.Items = append(c.Items, CartItem{ProductID: pid, SKUID: sid, Qty: qty})
	}

	c.touch(now)
	return c.validate()
}

// SetQty sets quantity for a (productId, skuId).
// qty <= 0 removes the item from the cart.
func (c *Cart) SetQty(productID, skuID string, qty int, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}

	pid := strings.TrimSpace(productID)
	sid := strings.TrimSpace(skuID)
	if pid == "" || sid == "" {
		return ErrInvalidCart
	}

	idx := findItemIndex(c.Items, pid, sid)

	if qty <= 0 {
		if idx >= 0 {
			c.Items = removeIndex(c.Items, idx)
		}
		c.touch(now)
		return c.validate()
	}

	if idx >= 0 {
		c.Items[idx].Qty = qty
	} else {
		c.Items = append(c.Items, CartItem{ProductID: pid, SKUID: sid, Qty: qty})
	}

	c.touch(now)
	return c.validate()
}

// Remove removes a (productId, skuId) from the cart.
func (c *Cart) Remove(productID, skuID string, now time.Time) error {
	return c.SetQty(productID, skuID, 0, now)
}

// ConsumeAll clears items for order creation and returns a snapshot.
func (c *Cart) ConsumeAll(now time.Time) ([]CartItem, error) {
	if c == nil {
		return nil, ErrInvalidCart
	}

	snap := cloneItems(c.Items)
	c.Items = []CartItem{}

	c.touch(now)
	if err := c.validate(); err != nil {
		return nil, err
	}
	return snap, nil
}

func (c *Cart) touch(now time.Time) {
	c.UpdatedAt = now
	c.ExpiresAt = now.Add(DefaultCartTTL)
}

func (c *Cart) validate() error {
	if c == nil {
		return ErrInvalidCart
	}
	if strings.TrimSpace(c.ID) == "" {
		return ErrInvalidCart
	}
	if c.CreatedAt.IsZero() || c.UpdatedAt.IsZero() || c.ExpiresAt.IsZero() {
		return ErrInvalidCart
	}
	if c.UpdatedAt.Before(c.CreatedAt) {
		return ErrInvalidCart
	}
	if c.ExpiresAt.Before(c.UpdatedAt) {
		return ErrInvalidCart
	}

	if len(c.Items) == 0 {
		return nil
	}

	// normalize + merge duplicates + stable order
	c.Items = normalizeAndMerge(c.Items)

	for _, it := range c.Items {
		if strings.TrimSpace(it.ProductID) == "" || strings.TrimSpace(it.SKUID) == "" || it.Qty <= 0 {
			return ErrInvalidCart
		}
	}
	return nil
}

// ----------------------------
// Helpers
// ----------------------------

func findItemIndex(items []CartItem, pid, sid string) int {
	for i := range items {
		if items[i].ProductID == pid && items[i].SKUID == sid {
			return i
		}
	}
	return -1
}

func removeIndex(items []CartItem, idx int) []CartItem {
	if idx < 0 || idx >= len(items) {
		return items
	}
	// preserve order
	return append(items[:idx], items[idx+1:]...)
}

type itemKey struct {
	pid string
	sid string
}

func normalizeAndMerge(src []CartItem) []CartItem {
	m := map[itemKey]CartItem{}

	for _, it := range src {
		pid := strings.TrimSpace(it.ProductID)
		sid := strings.TrimSpace(it.SKUID)
		if pid == "" || sid == "" || it.Qty <= 0 {
			continue
		}

		k := itemKey{pid: pid, sid: sid}
		if exist, ok := m[k]; ok {
			exist.Qty += it.Qty
			m[k] = exist
		} else {
			m[k] = CartItem{ProductID: pid, SKUID: sid, Qty: it.Qty}
		}
	}

	keys := make([]itemKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].pid != keys[j].pid {
			return keys[i].pid < keys[j].pid
		}
		return keys[i].sid < keys[j].sid
	})

	out := make([]CartItem, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}

func cloneItems(src []CartItem) []CartItem {
	if len(src) == 0 {
		return []CartItem{}
	}
	cp := make([]CartItem, len(src))
	copy(cp, src)
	return normalizeAndMerge(cp)
}
