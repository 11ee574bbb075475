package service

import (
	"context"
	"errors"
	"testing"

	"github.com/damoang/pcmall-backend/internal/common"
	"github.com/damoang/pcmall-backend/internal/domain"
	"github.com/damoang/pcmall-backend/internal/repository"
	es "github.com/damoang/pcmall-backend/pkg/elasticsearch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockProductSearcher is a mock implementation of ProductSearcher
type MockProductSearcher struct {
	mock.Mock
}

func (m *MockProductSearcher) Index(ctx context.Context, doc es.ProductDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockProductSearcher) Remove(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductSearcher) Search(ctx context.Context, q es.ProductQuery) ([]int64, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]int64), args.Get(1).(int64), args.Error(2)
}

type productFixture struct {
	db     *gorm.DB
	search *MockProductSearcher
	svc    ProductService
	gpu    *domain.Category
	asus   *domain.Brand
}

func newProductFixture(t *testing.T, withSearch bool) *productFixture {
	db := newTestDB(t)
	f := &productFixture{db: db}

	f.gpu = &domain.Category{Name: "Graphics Cards", Slug: "graphics-cards", IsActive: true}
	mustCreate(t, db, f.gpu)
	f.asus = &domain.Brand{Name: "ASUS", Slug: "asus", IsActive: true}
	mustCreate(t, db, f.asus)

	var searcher ProductSearcher
	if withSearch {
		f.search = new(MockProductSearcher)
		searcher = f.search
	}
	f.svc = NewProductService(
		repository.NewProductRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewBrandRepository(db),
		searcher,
	)
	return f
}

func (f *productFixture) create(t *testing.T, name, sku string, price float64, status domain.ProductStatus) *domain.ProductResponse {
	t.Helper()
	resp, err := f.svc.Create(context.Background(), &domain.CreateProductRequest{
		Name:       name,
		SKU:        sku,
		Price:      price,
		Stock:      10,
		Status:     string(status),
		CategoryID: &f.gpu.ID,
		BrandID:    &f.asus.ID,
	})
	require.NoError(t, err)
	return resp
}

func TestProductService_CreateNormalisesInput(t *testing.T) {
	f := newProductFixture(t, true)
	f.search.On("Index", mock.Anything, mock.MatchedBy(func(doc es.ProductDocument) bool {
		return doc.CategorySlug == "graphics-cards" && doc.BrandSlug == "asus"
	})).Return(nil).Once()

	resp, err := f.svc.Create(context.Background(), &domain.CreateProductRequest{
		Name:        "ROG Strix <b>RTX 4070</b>",
		SKU:         " rog-4070 ",
		Summary:     "<script>alert(1)</script>Fast",
		Description: `<p onclick="x()">Hello</p><script>bad()</script>`,
		Price:       899000,
		Images:      []string{" https://cdn.example.com/a.jpg ", ""},
		CategoryID:  &f.gpu.ID,
		BrandID:     &f.asus.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "ROG Strix RTX 4070", resp.Name)
	assert.Equal(t, "rog-strix-rtx-4070", resp.Slug)
	assert.Equal(t, "ROG-4070", resp.SKU)
	assert.Equal(t, "Fast", resp.Summary)
	assert.Equal(t, "<p>Hello</p>", resp.Description)
	assert.Equal(t, string(domain.ProductStatusDraft), resp.Status)
	assert.JSONEq(t, `["https://cdn.example.com/a.jpg"]`, string(resp.Images))
	require.NotNil(t, resp.Category)
	assert.Equal(t, "graphics-cards", resp.Category.Slug)
	f.search.AssertExpectations(t)
}

func TestProductService_CreateValidation(t *testing.T) {
	f := newProductFixture(t, false)
	f.create(t, "RTX 4070", "SKU-1", 100, domain.ProductStatusPublished)

	missing := int64(404)
	tests := []struct {
		name string
		req  domain.CreateProductRequest
		want error
	}{
		{"duplicate sku ignores case", domain.CreateProductRequest{Name: "Other", SKU: "sku-1"}, ErrSKUAlreadyExists},
		{"unknown category", domain.CreateProductRequest{Name: "Other", SKU: "X", CategoryID: &missing}, ErrProductCategory},
		{"unknown brand", domain.CreateProductRequest{Name: "Other", SKU: "X", BrandID: &missing}, ErrProductBrand},
		{"explicit slug taken", domain.CreateProductRequest{Name: "Other", SKU: "X", Slug: "rtx-4070"}, ErrSlugAlreadyExists},
		{"unsafe image url", domain.CreateProductRequest{Name: "Other", SKU: "X", Images: []string{"javascript:alert(1)"}}, common.ErrUnsafeURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestProductService_PublicDetailHidesDrafts(t *testing.T) {
	f := newProductFixture(t, false)
	ctx := context.Background()
	f.create(t, "Draft Card", "D-1", 100, domain.ProductStatusDraft)
	f.create(t, "Live Card", "L-1", 100, domain.ProductStatusPublished)

	_, err := f.svc.GetPublishedBySlug(ctx, "draft-card")
	assert.ErrorIs(t, err, ErrProductNotFound)

	live, err := f.svc.GetPublishedBySlug(ctx, "live-card")
	require.NoError(t, err)
	assert.Equal(t, uint(1), live.ViewCount)

	_, err = f.svc.GetPublishedBySlug(ctx, "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_ListPublishedByCategorySubtree(t *testing.T) {
	f := newProductFixture(t, false)
	ctx := context.Background()

	nvidia := &domain.Category{Name: "NVIDIA", Slug: "nvidia", ParentID: &f.gpu.ID, IsActive: true}
	mustCreate(t, f.db, nvidia)

	f.create(t, "Top Level Card", "T-1", 100, domain.ProductStatusPublished)
	_, err := f.svc.Create(ctx, &domain.CreateProductRequest{
		Name: "Nested Card", SKU: "N-1", Price: 200, Status: "published", CategoryID: &nvidia.ID,
	})
	require.NoError(t, err)
	f.create(t, "Hidden Card", "H-1", 300, domain.ProductStatusDraft)

	items, meta, err := f.svc.ListPublished(ctx, &domain.ProductListRequest{CategorySlug: "graphics-cards", Sort: "price_asc"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Top Level Card", items[0].Name)
	assert.Equal(t, "Nested Card", items[1].Name)
	assert.Equal(t, int64(2), meta.Total)

	items, meta, err = f.svc.ListPublished(ctx, &domain.ProductListRequest{CategorySlug: "unknown"})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, int64(0), meta.Total)

	all, _, err := f.svc.ListAll(ctx, &domain.ProductListRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestProductService_ListRejectsInvertedPriceRange(t *testing.T) {
	f := newProductFixture(t, false)
	lo, hi := 500.0, 100.0

	_, _, err := f.svc.ListPublished(context.Background(), &domain.ProductListRequest{MinPrice: &lo, MaxPrice: &hi})
	assert.ErrorIs(t, err, ErrInvalidPriceRange)
}

func TestProductService_SearchUsesIndexInRelevanceOrder(t *testing.T) {
	f := newProductFixture(t, true)
	f.search.On("Index", mock.Anything, mock.Anything).Return(nil)

	a := f.create(t, "Card A", "A", 100, domain.ProductStatusPublished)
	b := f.create(t, "Card B", "B", 100, domain.ProductStatusPublished)
	draft := f.create(t, "Card C", "C", 100, domain.ProductStatusDraft)

	f.search.On("Search", mock.Anything, mock.MatchedBy(func(q es.ProductQuery) bool {
		return q.Text == "card" && q.From == 0 && q.Size == 20
	})).Return([]int64{b.ID, draft.ID, a.ID}, int64(3), nil).Once()

	items, meta, err := f.svc.ListPublished(context.Background(), &domain.ProductListRequest{Search: " card "})
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, b.ID, items[0].ID)
	assert.Equal(t, a.ID, items[1].ID)
	assert.Equal(t, int64(3), meta.Total)
	f.search.AssertExpectations(t)
}

func TestProductService_SearchFallsBackToSQL(t *testing.T) {
	f := newProductFixture(t, true)
	f.search.On("Index", mock.Anything, mock.Anything).Return(nil)
	f.create(t, "Radeon RX 7800", "RX", 100, domain.ProductStatusPublished)
	f.create(t, "GeForce RTX", "GF", 100, domain.ProductStatusPublished)

	f.search.On("Search", mock.Anything, mock.Anything).Return(nil, int64(0), errors.New("cluster down")).Once()

	items, _, err := f.svc.ListPublished(context.Background(), &domain.ProductListRequest{Search: "radeon"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Radeon RX 7800", items[0].Name)
	f.search.AssertExpectations(t)
}

func TestProductService_SortedSearchSkipsIndex(t *testing.T) {
	f := newProductFixture(t, true)
	f.search.On("Index", mock.Anything, mock.Anything).Return(nil)
	f.create(t, "Radeon RX 7800", "RX", 100, domain.ProductStatusPublished)

	items, _, err := f.svc.ListPublished(context.Background(), &domain.ProductListRequest{Search: "radeon", Sort: "price_desc"})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	f.search.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestProductService_UpdateAndDelete(t *testing.T) {
	f := newProductFixture(t, true)
	ctx := context.Background()
	f.search.On("Index", mock.Anything, mock.Anything).Return(nil)

	p := f.create(t, "Card", "SKU-A", 100, domain.ProductStatusDraft)
	f.create(t, "Other", "SKU-B", 100, domain.ProductStatusDraft)

	_, err := f.svc.Update(ctx, p.ID, &domain.UpdateProductRequest{SKU: strPtr("sku-b")})
	assert.ErrorIs(t, err, ErrSKUAlreadyExists)

	noBrand := int64(0)
	updated, err := f.svc.Update(ctx, p.ID, &domain.UpdateProductRequest{
		Status:  strPtr("published"),
		BrandID: &noBrand,
		Name:    strPtr("Card v2"),
	})
	require.NoError(t, err)
	assert.Equal(t, "published", updated.Status)
	assert.Nil(t, updated.Brand)
	assert.NotNil(t, updated.PublishedAt)
	// slug is kept when only the name changes
	assert.Equal(t, "card", updated.Slug)

	f.search.On("Remove", mock.Anything, p.ID).Return(nil).Once()
	require.NoError(t, f.svc.Delete(ctx, p.ID))
	assert.ErrorIs(t, f.svc.Delete(ctx, p.ID), ErrProductNotFound)

	_, err = f.svc.GetByID(p.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
	f.search.AssertExpectations(t)
}
