package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"discovery-service/internal/engine"
	mid "discovery-service/internal/middleware"
	"discovery-service/internal/model"
	"discovery-service/pkg/config"
	"discovery-service/pkg/jwtutil"
	"discovery-service/prometheus"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	cfg := &config.Config{
		Metrics: config.MetricsConfig{Prefix: "test_discovery"},
		JWT:     config.JWTConfig{SigningKey: "test-signing-key"},
	}
	prometheus.InitMetrics(cfg)
	jwtutil.Initialize(&cfg.JWT)
	os.Exit(m.Run())
}

// ==========================
// In-memory providers
// ==========================

type memProviders struct {
	products   []model.Product
	sellers    map[uint]model.Seller
	follows    map[uint][]uint
	wishlist   map[uint][]uint
	slots      []model.AdSlot
	catalogErr error
}

func (m *memProviders) ListPublishedProducts(ctx context.Context) ([]model.Product, error) {
	if m.catalogErr != nil {
		return nil, m.catalogErr
	}
	return m.products, nil
}

func (m *memProviders) GetSellersByIDs(ctx context.Context, ids []uint) (map[uint]model.Seller, error) {
	return m.sellers, nil
}

func (m *memProviders) GetActiveMarketingPlan(ctx context.Context, sellerID uint) (*model.MarketingPlan, error) {
	return nil, nil
}

func (m *memProviders) GetFollowedSellerIDs(ctx context.Context, viewerID uint) ([]uint, error) {
	return m.follows[viewerID], nil
}

func (m *memProviders) GetWishlistedProductIDs(ctx context.Context, viewerID uint) ([]uint, error) {
	return m.wishlist[viewerID], nil
}

func (m *memProviders) GetProductModerationStatus(ctx context.Context, productID uint) (model.ModerationStatus, error) {
	return model.ModerationStatus{}, nil
}

func (m *memProviders) CountUnresolvedReports(ctx context.Context, productID uint) (int, error) {
	return 0, nil
}

func (m *memProviders) ListPlacementOverrides(ctx context.Context) ([]model.AdSlot, error) {
	return m.slots, nil
}

func newTestServer(p *memProviders) *echo.Echo {
	rankEngine := engine.New(engine.Config{
		Catalog:      p,
		Sellers:      p,
		Interactions: p,
		Moderation:   p,
		Placements:   p,
		MaxPageSize:  100,
	})
	h := NewDiscoveryHandler(rankEngine, 20)

	e := echo.New()
	api := e.Group("/api/discovery", mid.ViewerMiddleware)
	api.GET("/products", h.SearchProducts)
	e.GET("/api/slots/:slot", h.ResolveSlot)
	return e
}

func defaultProviders() *memProviders {
	return &memProviders{
		products: []model.Product{
			{
				ID: 1, SellerID: 10, Name: "Widget Press", Category: "machinery",
				IsPublished: true, Rating: 4,
				Variants: []model.PriceVariant{{ProductID: 1, WholesalePrice: 250}},
			},
			{
				ID: 2, SellerID: 20, Name: "Bolt Cutter", Category: "tools",
				IsPublished: true, Rating: 5,
				Variants: []model.PriceVariant{{ProductID: 2, WholesalePrice: 80}},
			},
		},
		sellers: map[uint]model.Seller{
			10: {ID: 10, Name: "Seller 10", Slug: "seller-10", DefaultMOQ: 1, VerificationStatus: model.VerificationVerified},
			20: {ID: 20, Name: "Seller 20", Slug: "seller-20", DefaultMOQ: 1, VerificationStatus: model.VerificationVerified},
		},
		follows:  map[uint][]uint{},
		wishlist: map[uint][]uint{},
	}
}

func doRequest(e *echo.Echo, target, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func signViewerToken(t *testing.T, userID uint) string {
	t.Helper()
	claims := &jwtutil.ViewerClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-signing-key"))
	require.NoError(t, err)
	return token
}

// ==========================
// Discovery endpoint tests
// ==========================

func TestSearchProductsReturnsRankedPage(t *testing.T) {
	e := newTestServer(defaultProviders())

	rec := doRequest(e, "/api/discovery/products", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page engine.RankedPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 2, page.TotalCount)
	assert.Equal(t, 1, page.TotalPages)
	require.Len(t, page.Products, 2)
	// Higher-rated product ranks first.
	assert.Equal(t, uint(2), page.Products[0].ID)
	assert.Equal(t, "Seller 20", page.Products[0].SellerName)
}

func TestSearchProductsAppliesFilters(t *testing.T) {
	e := newTestServer(defaultProviders())

	rec := doRequest(e, "/api/discovery/products?category=tools&min_price=50&max_price=100", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page engine.RankedPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Products, 1)
	assert.Equal(t, uint(2), page.Products[0].ID)
}

func TestSearchProductsViewerPersonalization(t *testing.T) {
	p := defaultProviders()
	p.follows[7] = []uint{10}
	p.wishlist[7] = []uint{1}
	e := newTestServer(p)

	rec := doRequest(e, "/api/discovery/products", signViewerToken(t, 7))
	require.Equal(t, http.StatusOK, rec.Code)

	var page engine.RankedPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Products, 2)
	// Follow + wishlist bonuses lift the followed seller's product over
	// the higher-rated one.
	assert.Equal(t, uint(1), page.Products[0].ID)
}

func TestSearchProductsInvalidTokenServedAnonymously(t *testing.T) {
	p := defaultProviders()
	p.follows[7] = []uint{10}
	e := newTestServer(p)

	rec := doRequest(e, "/api/discovery/products", "not-a-token")
	require.Equal(t, http.StatusOK, rec.Code)

	var page engine.RankedPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, uint(2), page.Products[0].ID)
}

func TestSearchProductsRejectsBadParams(t *testing.T) {
	e := newTestServer(defaultProviders())

	tests := []struct {
		name   string
		target string
	}{
		{"unparseable page", "/api/discovery/products?page=abc"},
		{"unparseable price", "/api/discovery/products?min_price=cheap"},
		{"unparseable moq", "/api/discovery/products?moq=lots"},
		{"zero page", "/api/discovery/products?page=0"},
		{"oversized page size", "/api/discovery/products?page_size=5000"},
		{"unknown channel", "/api/discovery/products?channel=retail"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(e, tt.target, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSearchProductsProviderFailure(t *testing.T) {
	p := defaultProviders()
	p.catalogErr = errors.New("store unreachable")
	e := newTestServer(p)

	rec := doRequest(e, "/api/discovery/products", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSearchProductsEmptyResultIsNotAnError(t *testing.T) {
	e := newTestServer(defaultProviders())

	rec := doRequest(e, "/api/discovery/products?q=nonexistent", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page engine.RankedPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 0, page.TotalCount)
	assert.Empty(t, page.Products)
}

// ==========================
// Slot endpoint tests
// ==========================

func TestResolveSlotEndpoint(t *testing.T) {
	p := defaultProviders()
	p.slots = []model.AdSlot{
		{Slot: "homepage-featured", EntityType: model.SlotEntityProduct, EntityIDs: []uint{2}},
	}
	e := newTestServer(p)

	rec := doRequest(e, "/api/slots/homepage-featured", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var placement engine.SlotPlacement
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &placement))
	assert.Equal(t, []uint{2}, placement.EntityIDs)
	assert.False(t, placement.Fallback)
}

func TestResolveSlotEndpointFallback(t *testing.T) {
	e := newTestServer(defaultProviders())

	rec := doRequest(e, "/api/slots/unknown", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var placement engine.SlotPlacement
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &placement))
	assert.True(t, placement.Fallback)
}
