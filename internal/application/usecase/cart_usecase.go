// internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	cartdom "storefront/internal/domain/cart"
	catdom "storefront/internal/domain/catalog"
)

var (
	ErrCartInvalidArgument = errors.New("cart_usecase: invalid argument")
	ErrCartNotFound        = errors.New("cart_usecase: not found")
	ErrCartSKUNotFound     = errors.New("cart_usecase: sku not found")
	ErrCartOutOfStock      = errors.New("cart_usecase: sku out of stock")
)

// Clock provides current time (for testability).
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// CartUsecase coordinates cart operations.
//
// AddItem は必ず catalog 側で SKU の実在と在庫を確認してから積む。
// 解決エンジン（Matched の skuId）を経由した id のみが入ってくる想定だが、
// API 直叩きにも耐えるようにする。
type CartUsecase struct {
	repo     cartdom.Repository
	products catdom.Repository
	clock    Clock
}

func NewCartUsecase(repo cartdom.Repository, products catdom.Repository) *CartUsecase {
	return &CartUsecase{
		repo:     repo,
		products: products,
		clock:    systemClock{},
	}
}

// NewCartUsecaseWithClock is useful for tests.
func NewCartUsecaseWithClock(repo cartdom.Repository, products catdom.Repository, clock Clock) *CartUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &CartUsecase{repo: repo, products: products, clock: clock}
}

// Get returns the cart for avatarID.
// If cart does not exist, returns (nil, ErrCartNotFound).
func (uc *CartUsecase) Get(ctx context.Context, avatarID string) (*cartdom.Cart, error) {
	aid := strings.TrimSpace(avatarID)
	if aid == "" {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.repo.GetByAvatarID(ctx, aid)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCartNotFound
	}
	return c, nil
}

// GetOrCreate returns an existing cart; if absent, creates an empty one and persists it.
func (uc *CartUsecase) GetOrCreate(ctx context.Context, avatarID string) (*cartdom.Cart, error) {
	aid := strings.TrimSpace(avatarID)
	if aid == "" {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.repo.GetByAvatarID(ctx, aid)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}

	now := uc.clock.Now()
	newCart, err := cartdom.NewCart(aid, nil, now)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, newCart); err != nil {
		return nil, err
	}
	return newCart, nil
}

// AddItem increments qty for (productID, skuID) after verifying the SKU
// exists, belongs to the product, and is in stock. qty must be >= 1.
func (uc *CartUsecase) AddItem(ctx context.Context, avatarID, productID, skuID string, qty int) (*cartdom.Cart, error) {
	aid := strings.TrimSpace(avatarID)
	pid := strings.TrimSpace(productID)
	sid := strings.TrimSpace(skuID)
	if aid == "" || pid == "" || sid == "" || qty <= 0 {
		return nil, ErrCartInvalidArgument
	}

	sku, err := uc.lookupSKU(ctx, sid)
	if err != nil {
		return nil, err
	}
	if sku.ProductID != pid {
		return nil, ErrCartSKUNotFound
	}
	if !sku.InStock() {
		return nil, ErrCartOutOfStock
	}

	c, err := uc.GetOrCreate(ctx, aid)
	if err != nil {
		return nil, err
	}

	if err := c.Add(pid, sid, qty, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SetQty sets qty for (productID, skuID). qty <= 0 removes the line.
func (uc *CartUsecase) SetQty(ctx context.Context, avatarID, productID, skuID string, qty int) (*cartdom.Cart, error) {
	aid := strings.TrimSpace(avatarID)
	pid := strings.TrimSpace(productID)
	sid := strings.TrimSpace(skuID)
	if aid == "" || pid == "" || sid == "" {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.GetOrCreate(ctx, aid)
	if err != nil {
		return nil, err
	}

	if err := c.SetQty(pid, sid, qty, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveItem removes (productID, skuID) from the cart.
func (uc *CartUsecase) RemoveItem(ctx context.Context, avatarID, productID, skuID string) (*cartdom.Cart, error) {
	return uc.SetQty(ctx, avatarID, productID, skuID, 0)
}

// Clear deletes the whole cart document.
func (uc *CartUsecase) Clear(ctx context.Context, avatarID string) error {
	aid := strings.TrimSpace(avatarID)
	if aid == "" {
		return ErrCartInvalidArgument
	}
	return uc.repo.DeleteByAvatarID(ctx, aid)
}

// lookupSKU fetches the detail by SKU id; the named SKU comes back as primary.
func (uc *CartUsecase) lookupSKU(ctx context.Context, skuID string) (catdom.SKU, error) {
	if uc.products == nil {
		return catdom.SKU{}, ErrCartSKUNotFound
	}
	detail, err := uc.products.GetDetailBySKUID(ctx, skuID)
	if err != nil {
		if catdom.IsNotFound(err) {
			return catdom.SKU{}, ErrCartSKUNotFound
		}
		return catdom.SKU{}, err
	}
	if detail.PrimarySKU.ID != skuID {
		return catdom.SKU{}, ErrCartSKUNotFound
	}
	return detail.PrimarySKU, nil
}
