// internal/adapters/out/postgres/review_repository_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	revdom "storefront/internal/domain/review"
)

// ReviewRepositoryPG is the Postgres adapter for reviews.
//
// Table:
//
//	CREATE TABLE reviews (
//	  id         TEXT PRIMARY KEY,
//	  product_id TEXT NOT NULL,
//	  sku_id     TEXT,
//	  avatar_id  TEXT NOT NULL,
//	  rating     INT  NOT NULL CHECK (rating BETWEEN 1 AND 5),
//	  title      TEXT NOT NULL DEFAULT '',
//	  body       TEXT NOT NULL DEFAULT '',
//	  created_at TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX reviews_product_idx ON reviews (product_id, created_at DESC);
type ReviewRepositoryPG struct {
	DB *sql.DB
}

func NewReviewRepositoryPG(db *sql.DB) *ReviewRepositoryPG {
	return &ReviewRepositoryPG{DB: db}
}

// ─────────────────────────────────
// Commands
// ─────────────────────────────────

func (r *ReviewRepositoryPG) Add(ctx context.Context, rev revdom.Review) error {
	if r == nil || r.DB == nil {
		return errors.New("review_repository_pg: db is nil")
	}
	if err := rev.Validate(); err != nil {
		return err
	}

	const q = `
INSERT INTO reviews (id, product_id, sku_id, avatar_id, rating, title, body, created_at)
VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8)
`
	_, err := r.DB.ExecContext(ctx, q,
		strings.TrimSpace(rev.ID),
		strings.TrimSpace(rev.ProductID),
		strings.TrimSpace(rev.SKUID),
		strings.TrimSpace(rev.AvatarID),
		rev.Rating,
		rev.Title,
		rev.Body,
		rev.CreatedAt,
	)
	return err
}

// ─────────────────────────────────
// Queries
// ─────────────────────────────────

func (r *ReviewRepositoryPG) ListByProductID(ctx context.Context, productID string, limit int) ([]revdom.Review, error) {
	if r == nil || r.DB == nil {
		return nil, errors.New("review_repository_pg: db is nil")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	const q = `
SELECT id, product_id, COALESCE(sku_id, ''), avatar_id, rating, title, body, created_at
FROM reviews
WHERE product_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2
`
	rows, err := r.DB.QueryContext(ctx, q, strings.TrimSpace(productID), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []revdom.Review
	for rows.Next() {
		var rev revdom.Review
		if err := rows.Scan(
			&rev.ID, &rev.ProductID, &rev.SKUID, &rev.AvatarID,
			&rev.Rating, &rev.Title, &rev.Body, &rev.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SummaryByProductID aggregates the per-star breakdown in one round trip.
func (r *ReviewRepositoryPG) SummaryByProductID(ctx context.Context, productID string) (revdom.Summary, error) {
	if r == nil || r.DB == nil {
		return revdom.Summary{}, errors.New("review_repository_pg: db is nil")
	}

	const q = `
SELECT rating, COUNT(*)
FROM reviews
WHERE product_id = $1
GROUP BY rating
`
	rows, err := r.DB.QueryContext(ctx, q, strings.TrimSpace(productID))
	if err != nil {
		return revdom.Summary{}, err
	}
	defer rows.Close()

	var breakdown revdom.RatingBreakdown
	for rows.Next() {
		var rating, count int
		if err := rows.Scan(&rating, &count); err != nil {
			return revdom.Summary{}, err
		}
		// CHECK constraint guarantees 1..5; skip anything else anyway
		if rating >= 1 && rating <= 5 {
			breakdown[rating-1] = count
		}
	}
	if err := rows.Err(); err != nil {
		return revdom.Summary{}, err
	}

	return revdom.NewSummary(productID, breakdown), nil
}
