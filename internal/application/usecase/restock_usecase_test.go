package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catdom "storefront/internal/domain/catalog"
	restockdom "storefront/internal/domain/restock"
)

// ------------------------------------------------------------
// fakes
// ------------------------------------------------------------

type memRestockRepo struct {
	subs map[string]restockdom.Subscription
}

func newMemRestockRepo() *memRestockRepo {
	return &memRestockRepo{subs: map[string]restockdom.Subscription{}}
}

func (m *memRestockRepo) Upsert(_ context.Context, s restockdom.Subscription) error {
	m.subs[s.ID] = s
	return nil
}

func (m *memRestockRepo) ListPendingBySKUID(_ context.Context, skuID string) ([]restockdom.Subscription, error) {
	var out []restockdom.Subscription
	for _, s := range m.subs {
		if s.SKUID == skuID && !s.Notified() {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memRestockRepo) MarkNotified(_ context.Context, id string) error {
	s, ok := m.subs[id]
	if !ok {
		return restockdom.ErrNotFound
	}
	now := time.Now()
	s.NotifiedAt = &now
	m.subs[id] = s
	return nil
}

type recordingNotifier struct {
	sent []string
	err  error
}

func (n *recordingNotifier) NotifyBackInStock(_ context.Context, email, _, _ string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, email)
	return nil
}

func newRestockUC(t *testing.T, stock int) (*RestockUsecase, *memRestockRepo, *recordingNotifier) {
	t.Helper()
	repo := newMemRestockRepo()
	notifier := &recordingNotifier{}
	products := &skuCatalogRepo{skus: map[string]catdom.SKU{
		"sku-1": {ID: "sku-1", ProductID: "spu-1", Stock: stock},
	}}
	clock := fixedClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	return NewRestockUsecaseWithClock(repo, products, notifier, clock), repo, notifier
}

// ------------------------------------------------------------
// tests
// ------------------------------------------------------------

func TestRestockUsecase_Subscribe(t *testing.T) {
	uc, repo, _ := newRestockUC(t, 0)

	sub, err := uc.Subscribe(context.Background(), "spu-1", "sku-1", " Customer@Example.com ")
	require.NoError(t, err)

	assert.Equal(t, "sku-1__customer@example.com", sub.ID)
	assert.Equal(t, "customer@example.com", sub.Email)
	assert.Len(t, repo.subs, 1)

	// idempotent: same email again overwrites the same doc
	_, err = uc.Subscribe(context.Background(), "spu-1", "sku-1", "customer@example.com")
	require.NoError(t, err)
	assert.Len(t, repo.subs, 1)
}

func TestRestockUsecase_Subscribe_InStockRejected(t *testing.T) {
	uc, _, _ := newRestockUC(t, 3)

	_, err := uc.Subscribe(context.Background(), "spu-1", "sku-1", "a@b.c")
	assert.ErrorIs(t, err, ErrRestockAlreadyInStock)
}

func TestRestockUsecase_Subscribe_UnknownSKU(t *testing.T) {
	uc, _, _ := newRestockUC(t, 0)

	_, err := uc.Subscribe(context.Background(), "spu-1", "sku-404", "a@b.c")
	assert.ErrorIs(t, err, ErrRestockSKUNotFound)
}

func TestRestockUsecase_Subscribe_BadEmail(t *testing.T) {
	uc, _, _ := newRestockUC(t, 0)

	_, err := uc.Subscribe(context.Background(), "spu-1", "sku-1", "not-an-email")
	assert.ErrorIs(t, err, restockdom.ErrInvalid)
}

func TestRestockUsecase_NotifyForSKU(t *testing.T) {
	uc, repo, notifier := newRestockUC(t, 0)
	ctx := context.Background()

	_, err := uc.Subscribe(ctx, "spu-1", "sku-1", "a@example.com")
	require.NoError(t, err)
	_, err = uc.Subscribe(ctx, "spu-1", "sku-1", "b@example.com")
	require.NoError(t, err)

	// still out of stock: nothing sent, nothing marked
	sent, err := uc.NotifyForSKU(ctx, "sku-1")
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Empty(t, notifier.sent)

	// restocked
	uc.products.(*skuCatalogRepo).skus["sku-1"] = catdom.SKU{ID: "sku-1", ProductID: "spu-1", Stock: 4}

	sent, err = uc.NotifyForSKU(ctx, "sku-1")
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.ElementsMatch(t, []string{"a@example.com", "b@example.com"}, notifier.sent)

	for _, s := range repo.subs {
		assert.True(t, s.Notified())
	}

	// second run is a no-op (everyone already notified)
	sent, err = uc.NotifyForSKU(ctx, "sku-1")
	require.NoError(t, err)
	assert.Zero(t, sent)
}

func TestRestockUsecase_NotifyFailureSkipsSubscriber(t *testing.T) {
	uc, repo, notifier := newRestockUC(t, 0)
	ctx := context.Background()

	_, err := uc.Subscribe(ctx, "spu-1", "sku-1", "a@example.com")
	require.NoError(t, err)

	uc.products.(*skuCatalogRepo).skus["sku-1"] = catdom.SKU{ID: "sku-1", ProductID: "spu-1", Stock: 1}
	notifier.err = errors.New("sendgrid down")

	sent, err := uc.NotifyForSKU(ctx, "sku-1")
	require.NoError(t, err)
	assert.Zero(t, sent)

	// still pending for the next attempt
	pending, err := repo.ListPendingBySKUID(ctx, "sku-1")
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}
