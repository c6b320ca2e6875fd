// internal/adapters/in/http/store/handler/handler_test.go
package storeHandler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/adapters/in/http/middleware"
	catalogquery "storefront/internal/application/query/catalog"
	"storefront/internal/application/query/catalog/dto"
	usecase "storefront/internal/application/usecase"
	cartdom "storefront/internal/domain/cart"
	catdom "storefront/internal/domain/catalog"
	restockdom "storefront/internal/domain/restock"
	revdom "storefront/internal/domain/review"
)

// ============================================================
// Fixtures / fakes
// ============================================================

func fixtureDetail() catdom.ProductDetail {
	return catdom.ProductDetail{
		Product: catdom.Product{
			ID:   "p1",
			Name: "Tote Bag",
			VariationAxes: []catdom.Axis{
				{ID: "color", Name: "Color", Values: []string{"Red", "Blue"}},
				{ID: "size", Name: "Size", Values: []string{"S", "M"}},
			},
			Thumbnail: "img-p1-thumb",
		},
		PrimarySKU: catdom.SKU{
			ID: "sku-red-s", ProductID: "p1", TierIndex: []int{0, 0}, Price: 4200, Stock: 3,
		},
		SiblingSKUs: []catdom.SKU{
			{ID: "sku-blue-m", ProductID: "p1", TierIndex: []int{1, 1}, Price: 4500, Stock: 0},
		},
	}
}

type fakeCatalogRepo struct {
	detail catdom.ProductDetail
}

func (f *fakeCatalogRepo) GetDetailByProductID(_ context.Context, productID string) (catdom.ProductDetail, error) {
	if productID != f.detail.Product.ID {
		return catdom.ProductDetail{}, catdom.ErrNotFound
	}
	return f.detail, nil
}

func (f *fakeCatalogRepo) GetDetailBySKUID(_ context.Context, skuID string) (catdom.ProductDetail, error) {
	all := f.detail.AllSKUs()
	for i, s := range all {
		if s.ID == skuID {
			out := f.detail
			out.PrimarySKU = s
			out.SiblingSKUs = append(append([]catdom.SKU{}, all[:i]...), all[i+1:]...)
			return out, nil
		}
	}
	return catdom.ProductDetail{}, catdom.ErrNotFound
}

type memCartRepo struct {
	carts map[string]*cartdom.Cart
}

func newMemCartRepo() *memCartRepo { return &memCartRepo{carts: map[string]*cartdom.Cart{}} }

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
		if s.SKUID == skuID && s.NotifiedAt == nil {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memRestockRepo) MarkNotified(_ context.Context, id string) error {
	s := m.subs[id]
	now := s.CreatedAt
	s.NotifiedAt = &now
	m.subs[id] = s
	return nil
}

type memReviewRepo struct {
	reviews []revdom.Review
}

func (m *memReviewRepo) Add(_ context.Context, r revdom.Review) error {
	m.reviews = append(m.reviews, r)
	return nil
}

func (m *memReviewRepo) ListByProductID(_ context.Context, productID string, limit int) ([]revdom.Review, error) {
	var out []revdom.Review
	for _, r := range m.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memReviewRepo) SummaryByProductID(_ context.Context, productID string) (revdom.Summary, error) {
	var b revdom.RatingBreakdown
	for _, r := range m.reviews {
		if r.ProductID == productID {
			b.Add(r.Rating)
		}
	}
	return revdom.NewSummary(productID, b), nil
}

func authed(r *http.Request, avatarID string) *http.Request {
	return r.WithContext(middleware.WithAvatarID(r.Context(), avatarID))
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

// ============================================================
// ProductDetailHandler
// ============================================================

func TestProductDetailHandler_Get(t *testing.T) {
	repo := &fakeCatalogRepo{detail: fixtureDetail()}
	h := NewProductDetailHandler(catalogquery.NewProductDetailQuery(repo))

	req := httptest.NewRequest(http.MethodGet, "/storefront/products/p1", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var out dto.ProductDetailDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Equal(t, "p1", out.Product.ID)
	// primary SKU seeds the selection, so the page opens fully resolved
	assert.Equal(t, "matched", out.Resolution.State)
	require.NotNil(t, out.Resolution.SKU)
	assert.Equal(t, "sku-red-s", out.Resolution.SKU.ID)
}

func TestProductDetailHandler_GetBySKU(t *testing.T) {
	repo := &fakeCatalogRepo{detail: fixtureDetail()}
	h := NewProductDetailHandler(catalogquery.NewProductDetailQuery(repo))

	req := httptest.NewRequest(http.MethodGet, "/storefront/products/p1?sku=sku-blue-m", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out dto.ProductDetailDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	require.NotNil(t, out.Resolution.SKU)
	assert.Equal(t, "sku-blue-m", out.Resolution.SKU.ID)
}

func TestProductDetailHandler_NotFound(t *testing.T) {
	repo := &fakeCatalogRepo{detail: fixtureDetail()}
	h := NewProductDetailHandler(catalogquery.NewProductDetailQuery(repo))

	req := httptest.NewRequest(http.MethodGet, "/storefront/products/nope", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductDetailHandler_Resolve(t *testing.T) {
	repo := &fakeCatalogRepo{detail: fixtureDetail()}
	h := NewProductDetailHandler(catalogquery.NewProductDetailQuery(repo))

	body := jsonBody(t, map[string]any{"selection": map[string]string{"color": "Red"}})
	req := httptest.NewRequest(http.MethodPost, "/storefront/products/p1/resolve", body)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out dto.ProductDetailDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Equal(t, "incomplete", out.Resolution.State)
	assert.Nil(t, out.Resolution.SKU)
}

func TestProductDetailHandler_ResolveUnknownAxis(t *testing.T) {
	repo := &fakeCatalogRepo{detail: fixtureDetail()}
	h := NewProductDetailHandler(catalogquery.NewProductDetailQuery(repo))

	body := jsonBody(t, map[string]any{"selection": map[string]string{"material": "Wood"}})
	req := httptest.NewRequest(http.MethodPost, "/storefront/products/p1/resolve", body)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ============================================================
// CartHandler
// ============================================================

func newCartHandlerForTest() (http.Handler, *memCartRepo) {
	cartRepo := newMemCartRepo()
	products := &fakeCatalogRepo{detail: fixtureDetail()}
	return NewCartHandler(usecase.NewCartUsecase(cartRepo, products)), cartRepo
}

func TestCartHandler_Unauthenticated(t *testing.T) {
	h, _ := newCartHandlerForTest()

	req := httptest.NewRequest(http.MethodGet, "/storefront/cart", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCartHandler_GetEmpty(t *testing.T) {
	h, _ := newCartHandlerForTest()

	req := authed(httptest.NewRequest(http.MethodGet, "/storefront/cart", nil), "avatar-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		ID    string             `json:"id"`
		Items []cartdom.CartItem `json:"items"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Equal(t, "avatar-1", out.ID)
	assert.Empty(t, out.Items)
}

func TestCartHandler_AddItem(t *testing.T) {
	h, repo := newCartHandlerForTest()

	body := jsonBody(t, cartItemRequest{ProductID: "p1", SKUID: "sku-red-s", Qty: 2})
	req := authed(httptest.NewRequest(http.MethodPost, "/storefront/cart/items", body), "avatar-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out cartdom.Cart
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	require.Len(t, out.Items, 1)
	assert.Equal(t, 2, out.Items[0].Qty)

	saved, _ := repo.GetByAvatarID(context.Background(), "avatar-1")
	require.NotNil(t, saved)
	assert.Len(t, saved.Items, 1)
}

func TestCartHandler_AddOutOfStock(t *testing.T) {
	h, _ := newCartHandlerForTest()

	body := jsonBody(t, cartItemRequest{ProductID: "p1", SKUID: "sku-blue-m", Qty: 1})
	req := authed(httptest.NewRequest(http.MethodPost, "/storefront/cart/items", body), "avatar-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCartHandler_AddUnknownSKU(t *testing.T) {
	h, _ := newCartHandlerForTest()

	body := jsonBody(t, cartItemRequest{ProductID: "p1", SKUID: "sku-nope", Qty: 1})
	req := authed(httptest.NewRequest(http.MethodPost, "/storefront/cart/items", body), "avatar-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartHandler_RemoveItem(t *testing.T) {
	h, _ := newCartHandlerForTest()

	add := jsonBody(t, cartItemRequest{ProductID: "p1", SKUID: "sku-red-s", Qty: 1})
	req := authed(httptest.NewRequest(http.MethodPost, "/storefront/cart/items", add), "avatar-1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	del := jsonBody(t, cartItemRequest{ProductID: "p1", SKUID: "sku-red-s"})
	req = authed(httptest.NewRequest(http.MethodDelete, "/storefront/cart/items", del), "avatar-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out cartdom.Cart
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Empty(t, out.Items)
}

// ============================================================
// RestockHandler
// ============================================================

func newRestockHandlerForTest() http.Handler {
	repo := newMemRestockRepo()
	products := &fakeCatalogRepo{detail: fixtureDetail()}
	return NewRestockHandler(usecase.NewRestockUsecase(repo, products, nil))
}

func TestRestockHandler_Subscribe(t *testing.T) {
	h := newRestockHandlerForTest()

	body := jsonBody(t, restockSubscribeRequest{ProductID: "p1", SKUID: "sku-blue-m", Email: "a@example.com"})
	req := authed(httptest.NewRequest(http.MethodPost, "/storefront/restock-subscriptions", body), "avatar-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var out restockdom.Subscription
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Equal(t, "sku-blue-m__a@example.com", out.ID)
}

func TestRestockHandler_SubscribeInStock(t *testing.T) {
	h := newRestockHandlerForTest()

	body := jsonBody(t, restockSubscribeRequest{ProductID: "p1", SKUID: "sku-red-s", Email: "a@example.com"})
	req := authed(httptest.NewRequest(http.MethodPost, "/storefront/restock-subscriptions", body), "avatar-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRestockHandler_Unauthenticated(t *testing.T) {
	h := newRestockHandlerForTest()

	body := jsonBody(t, restockSubscribeRequest{ProductID: "p1", SKUID: "sku-blue-m", Email: "a@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/storefront/restock-subscriptions", body)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ============================================================
// ReviewHandler
// ============================================================

func TestReviewHandler_CreateAndList(t *testing.T) {
	repo := &memReviewRepo{}
	h := NewReviewHandler(repo)

	body := jsonBody(t, createReviewRequest{Rating: 5, Title: "great", Body: "love it"})
	req := authed(httptest.NewRequest(http.MethodPost, "/storefront/products/p1/reviews", body), "avatar-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/storefront/products/p1/reviews", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Reviews []revdom.Review `json:"reviews"`
		Summary revdom.Summary  `json:"summary"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	require.Len(t, out.Reviews, 1)
	assert.Equal(t, "avatar-1", out.Reviews[0].AvatarID)
	assert.Equal(t, 1, out.Summary.Total)
	assert.InDelta(t, 5.0, out.Summary.Average, 0.001)
}

func TestReviewHandler_CreateUnauthenticated(t *testing.T) {
	h := NewReviewHandler(&memReviewRepo{})

	body := jsonBody(t, createReviewRequest{Rating: 4})
	req := httptest.NewRequest(http.MethodPost, "/storefront/products/p1/reviews", body)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReviewHandler_CreateInvalidRating(t *testing.T) {
	h := NewReviewHandler(&memReviewRepo{})

	body := jsonBody(t, createReviewRequest{Rating: 9})
	req := authed(httptest.NewRequest(http.MethodPost, "/storefront/products/p1/reviews", body), "avatar-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
