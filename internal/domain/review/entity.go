// internal/domain/review/entity.go
package review

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound = errors.New("review: not found")
	ErrInvalid  = errors.New("review: invalid")
)

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// Review is one customer review of a product.
type Review struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	SKUID     string `json:"skuId,omitempty"`
	AvatarID  string `json:"avatarId"`

	// Rating is 1..5 stars.
	Rating int    `json:"rating"`
	Title  string `json:"title"`
	Body   string `json:"body"`

	CreatedAt time.Time `json:"createdAt"`
}

func (r Review) Validate() error {
	if strings.TrimSpace(r.ProductID) == "" {
		return ErrInvalid
	}
	if strings.TrimSpace(r.AvatarID) == "" {
		return ErrInvalid
	}
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalid
	}
	return nil
}

// ======================================
// RatingBreakdown
// ======================================

// RatingBreakdown counts reviews per star. Index i holds the count for
// (i+1) stars. A fixed-size array instead of a map with literal numeric
// keys, so every star bucket always exists.
type RatingBreakdown [5]int

// Add records one rating. Out-of-range ratings are ignored.
func (b *RatingBreakdown) Add(rating int) {
	if rating < 1 || rating > 5 {
		return
	}
	b[rating-1]++
}

// Count returns the number of reviews with exactly `stars` stars.
func (b RatingBreakdown) Count(stars int) int {
	if stars < 1 || stars > 5 {
		return 0
	}
	return b[stars-1]
}

// Total returns the total number of counted reviews.
func (b RatingBreakdown) Total() int {
	n := 0
	for _, c := range b {
		n += c
	}
	return n
}

// Average returns the mean star rating, 0 when there are no reviews.
func (b RatingBreakdown) Average() float64 {
	total := b.Total()
	if total == 0 {
		return 0
	}
	sum := 0
	for i, c := range b {
		sum += (i + 1) * c
	}
	return float64(sum) / float64(total)
}

// Summary is the aggregate the product page shows next to the gallery.
type Summary struct {
	ProductID string          `json:"productId"`
	Breakdown RatingBreakdown `json:"breakdown"`
	Total     int             `json:"total"`
	Average   float64         `json:"average"`
}

func NewSummary(productID string, breakdown RatingBreakdown) Summary {
	return Summary{
		ProductID: strings.TrimSpace(productID),
		Breakdown: breakdown,
		Total:     breakdown.Total(),
		Average:   breakdown.Average(),
	}
}
