package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "storefront/internal/domain/cart"
	catdom "storefront/internal/domain/catalog"
)

// ------------------------------------------------------------
// fakes
// ------------------------------------------------------------

type memCartRepo struct {
	carts map[string]*cartdom.Cart
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: map[string]*cartdom.Cart{}}
}

func (m *memCartRepo) GetByAvatarID(_ context.Context, avatarID string) (*cartdom.Cart, error) {
	c, ok := m.carts[avatarID]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memCartRepo) Upsert(_ context.Context, c *cartdom.Cart) error {
	cp := *c
	m.carts[c.ID] = &cp
	return nil
}

func (m *memCartRepo) DeleteByAvatarID(_ context.Context, avatarID string) error {
	delete(m.carts, avatarID)
	return nil
}

type skuCatalogRepo struct {
	skus map[string]catdom.SKU
}

func (f *skuCatalogRepo) GetDetailByProductID(_ context.Context, _ string) (catdom.ProductDetail, error) {
	return catdom.ProductDetail{}, catdom.ErrNotFound
}

func (f *skuCatalogRepo) GetDetailBySKUID(_ context.Context, skuID string) (catdom.ProductDetail, error) {
	s, ok := f.skus[skuID]
	if !ok {
		return catdom.ProductDetail{}, catdom.ErrNotFound
	}
	return catdom.ProductDetail{
		Product:    catdom.Product{ID: s.ProductID, Name: "Basic Tee"},
		PrimarySKU: s,
	}, nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func newCartUC(t *testing.T) (*CartUsecase, *memCartRepo) {
	t.Helper()
	repo := newMemCartRepo()
	products := &skuCatalogRepo{skus: map[string]catdom.SKU{
		"sku-1": {ID: "sku-1", ProductID: "spu-1", Stock: 5},
		"sku-0": {ID: "sku-0", ProductID: "spu-1", Stock: 0},
	}}
	clock := fixedClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	return NewCartUsecaseWithClock(repo, products, clock), repo
}

// ------------------------------------------------------------
// tests
// ------------------------------------------------------------

func TestCartUsecase_AddItem(t *testing.T) {
	uc, repo := newCartUC(t)
	ctx := context.Background()

	c, err := uc.AddItem(ctx, "avatar-1", "spu-1", "sku-1", 2)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Qty)

	// persisted
	saved, err := uc.Get(ctx, "avatar-1")
	require.NoError(t, err)
	assert.Equal(t, c.Items, saved.Items)
	assert.Len(t, repo.carts, 1)
}

func TestCartUsecase_AddItem_UnknownSKU(t *testing.T) {
	uc, _ := newCartUC(t)

	_, err := uc.AddItem(context.Background(), "avatar-1", "spu-1", "sku-404", 1)
	assert.ErrorIs(t, err, ErrCartSKUNotFound)
}

func TestCartUsecase_AddItem_WrongProduct(t *testing.T) {
	uc, _ := newCartUC(t)

	_, err := uc.AddItem(context.Background(), "avatar-1", "spu-other", "sku-1", 1)
	assert.ErrorIs(t, err, ErrCartSKUNotFound)
}

func TestCartUsecase_AddItem_OutOfStock(t *testing.T) {
	uc, _ := newCartUC(t)

	_, err := uc.AddItem(context.Background(), "avatar-1", "spu-1", "sku-0", 1)
	assert.ErrorIs(t, err, ErrCartOutOfStock)
}

func TestCartUsecase_GetMissingCart(t *testing.T) {
	uc, _ := newCartUC(t)

	_, err := uc.Get(context.Background(), "avatar-none")
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestCartUsecase_SetQtyAndRemove(t *testing.T) {
	uc, _ := newCartUC(t)
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "avatar-1", "spu-1", "sku-1", 1)
	require.NoError(t, err)

	c, err := uc.SetQty(ctx, "avatar-1", "spu-1", "sku-1", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, c.Items[0].Qty)

	c, err = uc.RemoveItem(ctx, "avatar-1", "spu-1", "sku-1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestCartUsecase_Clear(t *testing.T) {
	uc, repo := newCartUC(t)
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "avatar-1", "spu-1", "sku-1", 1)
	require.NoError(t, err)

	require.NoError(t, uc.Clear(ctx, "avatar-1"))
	assert.Empty(t, repo.carts)
}
