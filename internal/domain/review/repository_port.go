// internal/domain/review/repository_port.go
package review

import "context"

// Repository is the persistence port for reviews (Postgres-backed).
type Repository interface {
	// Add persists a new review. Validate() must already have passed.
	Add(ctx context.Context, r Review) error

	// ListByProductID returns reviews newest-first.
	ListByProductID(ctx context.Context, productID string, limit int) ([]Review, error)

	// SummaryByProductID aggregates the per-star breakdown.
	SummaryByProductID(ctx context.Context, productID string) (Summary, error)
}
