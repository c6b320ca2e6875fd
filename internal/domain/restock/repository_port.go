// internal/domain/restock/repository_port.go
package restock

import "context"

// Repository is the persistence port for restock subscriptions.
//
// Storage recommendation (Firestore):
// - collection: restockSubscriptions
// - docId: subscription id
// - query key: skuId (+ notifiedAt == nil for pending)
type Repository interface {
	Upsert(ctx context.Context, s Subscription) error

	// ListPendingBySKUID returns subscriptions not yet notified.
	ListPendingBySKUID(ctx context.Context, skuID string) ([]Subscription, error)

	// MarkNotified stamps notifiedAt for the subscription.
	MarkNotified(ctx context.Context, id string) error
}

// Notifier sends the "back in stock" message to one subscriber.
// Implemented by the SendGrid mail adapter.
type Notifier interface {
	NotifyBackInStock(ctx context.Context, email, productName, skuID string) error
}
