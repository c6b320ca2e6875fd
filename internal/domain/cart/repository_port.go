// internal/domain/cart/repository_port.go
package cart

import "context"

// Repository is a persistence port for Cart.
//
// Storage recommendation (Firestore):
// - collection: carts
// - docId: avatarId
// - fields: items([]CartItem), createdAt, updatedAt, expiresAt
//
// TTL:
// - Configure Firestore TTL on the "expiresAt" field.
// - expiresAt is refreshed on each cart mutation (domain touch()).
type Repository interface {
	// GetByAvatarID returns the cart for the avatar.
	// Returns (nil, nil) when no cart document exists (empty-cart policy).
	GetByAvatarID(ctx context.Context, avatarID string) (*Cart, error)

	// Upsert saves the cart (create or update).
	Upsert(ctx context.Context, c *Cart) error

	// DeleteByAvatarID deletes the cart for the avatar.
	DeleteByAvatarID(ctx context.Context, avatarID string) error
}
