// internal/domain/restock/entity.go
package restock

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound = errors.New("restock: not found")
	ErrInvalid  = errors.New("restock: invalid")
)

// Subscription is a "notify me when back in stock" registration for one SKU.
type Subscription struct {
	ID        string `json:"id" firestore:"id"`
	ProductID string `json:"productId" firestore:"productId"`
	SKUID     string `json:"skuId" firestore:"skuId"`
	Email     string `json:"email" firestore:"email"`

	CreatedAt  time.Time  `json:"createdAt" firestore:"createdAt"`
	NotifiedAt *time.Time `json:"notifiedAt,omitempty" firestore:"notifiedAt"`
}

func NewSubscription(id, productID, skuID, email string, now time.Time) (Subscription, error) {
	s := Subscription{
		ID:        strings.TrimSpace(id),
		ProductID: strings.TrimSpace(productID),
		SKUID:     strings.TrimSpace(skuID),
		Email:     strings.TrimSpace(email),
		CreatedAt: now,
	}
	if err := s.validate(); err != nil {
		return Subscription{}, err
	}
	return s, nil
}

func (s Subscription) validate() error {
	if s.ID == "" || s.ProductID == "" || s.SKUID == "" {
		return ErrInvalid
	}
	// 形式チェックは最小限（@ を含むこと）。配信可否は SendGrid 側に任せる。
	if !strings.Contains(s.Email, "@") {
		return ErrInvalid
	}
	return nil
}

// Notified reports whether the subscriber was already mailed.
func (s Subscription) Notified() bool { return s.NotifiedAt != nil }
