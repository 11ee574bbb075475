package service

import (
	"context"
	"testing"

	"github.com/damoang/pcmall-backend/internal/domain"
	"github.com/damoang/pcmall-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCategoryFixture(t *testing.T) (*gorm.DB, CategoryService) {
	db := newTestDB(t)
	return db, NewCategoryService(repository.NewCategoryRepository(db), nil)
}

func TestCategoryService_TreeAggregatesCounts(t *testing.T) {
	db, svc := newCategoryFixture(t)
	ctx := context.Background()

	parts, err := svc.Create(ctx, &domain.CreateCategoryRequest{Name: "Components"})
	require.NoError(t, err)
	assert.Equal(t, "components", parts.Slug)

	gpu, err := svc.Create(ctx, &domain.CreateCategoryRequest{Name: "Graphics Cards", ParentID: &parts.ID})
	require.NoError(t, err)

	mustCreate(t, db, &domain.Product{Name: "RTX", Slug: "rtx", SKU: "A1", CategoryID: &gpu.ID, Status: domain.ProductStatusPublished})
	mustCreate(t, db, &domain.Product{Name: "RX", Slug: "rx", SKU: "A2", CategoryID: &gpu.ID, Status: domain.ProductStatusDraft})

	tree, err := svc.GetTree(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, int64(1), tree[0].ProductCount)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "graphics-cards", tree[0].Children[0].Slug)
	assert.Equal(t, int64(1), tree[0].Children[0].ProductCount)

	found, err := svc.GetBySlug(ctx, "graphics-cards")
	require.NoError(t, err)
	assert.Equal(t, gpu.ID, found.ID)

	_, err = svc.GetBySlug(ctx, "nope")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryService_UpdateRejectsCycle(t *testing.T) {
	_, svc := newCategoryFixture(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, &domain.CreateCategoryRequest{Name: "A"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, &domain.CreateCategoryRequest{Name: "B", ParentID: &a.ID})
	require.NoError(t, err)

	_, err = svc.Update(ctx, a.ID, &domain.UpdateCategoryRequest{ParentID: &b.ID})
	assert.ErrorIs(t, err, ErrCategoryCycle)

	_, err = svc.Update(ctx, a.ID, &domain.UpdateCategoryRequest{ParentID: &a.ID})
	assert.ErrorIs(t, err, ErrCategoryCycle)

	missing := int64(999)
	_, err = svc.Update(ctx, b.ID, &domain.UpdateCategoryRequest{ParentID: &missing})
	assert.ErrorIs(t, err, ErrCategoryParent)

	top := int64(0)
	moved, err := svc.Update(ctx, b.ID, &domain.UpdateCategoryRequest{ParentID: &top})
	require.NoError(t, err)
	assert.Nil(t, moved.ParentID)
}

func TestCategoryService_SlugRules(t *testing.T) {
	_, svc := newCategoryFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.CreateCategoryRequest{Name: "Memory", Slug: "memory"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &domain.CreateCategoryRequest{Name: "RAM", Slug: "memory"})
	assert.ErrorIs(t, err, ErrSlugAlreadyExists)

	_, err = svc.Create(ctx, &domain.CreateCategoryRequest{Name: "RAM", Slug: "Bad Slug!"})
	assert.ErrorIs(t, err, ErrInvalidSlug)

	// derived slugs get a suffix instead of failing
	dup, err := svc.Create(ctx, &domain.CreateCategoryRequest{Name: "Memory"})
	require.NoError(t, err)
	assert.Equal(t, "memory-1", dup.Slug)
}

func TestCategoryService_DeleteNotFound(t *testing.T) {
	_, svc := newCategoryFixture(t)
	assert.ErrorIs(t, svc.Delete(context.Background(), 42), ErrCategoryNotFound)
}

func TestBrandService_InactiveHiddenFromPublic(t *testing.T) {
	db := newTestDB(t)
	svc := NewBrandService(repository.NewBrandRepository(db))

	brand, err := svc.Create(&domain.CreateBrandRequest{Name: "ASUS", IsActive: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, "asus", brand.Slug)

	_, err = svc.GetBySlug("asus")
	assert.ErrorIs(t, err, ErrBrandNotFound)

	_, err = svc.Update(brand.ID, &domain.UpdateBrandRequest{IsActive: boolPtr(true)})
	require.NoError(t, err)

	got, err := svc.GetBySlug("asus")
	require.NoError(t, err)
	assert.Equal(t, "ASUS", got.Name)

	assert.ErrorIs(t, svc.Delete(9999), ErrBrandNotFound)
}

func TestShopService_ActiveByID(t *testing.T) {
	db := newTestDB(t)
	svc := NewShopService(repository.NewShopRepository(db))

	shop, err := svc.Create(&domain.CreateShopRequest{Name: "Gangnam Store", Address: "Seoul", City: "Seoul"})
	require.NoError(t, err)
	assert.Equal(t, "gangnam-store", shop.Slug)
	assert.True(t, shop.IsActive)

	_, err = svc.GetActiveByID(shop.ID)
	require.NoError(t, err)

	_, err = svc.Update(shop.ID, &domain.UpdateShopRequest{IsActive: boolPtr(false)})
	require.NoError(t, err)

	_, err = svc.GetActiveByID(shop.ID)
	assert.ErrorIs(t, err, ErrShopNotFound)
	_, err = svc.GetBySlug("gangnam-store")
	assert.ErrorIs(t, err, ErrShopNotFound)

	all, err := svc.List(true, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPCBuilderService_CountsSubtree(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	gpu := &domain.Category{Name: "Graphics Cards", Slug: "graphics-cards", IsActive: true}
	mustCreate(t, db, gpu)
	nvidia := &domain.Category{Name: "NVIDIA", Slug: "nvidia", ParentID: &gpu.ID, IsActive: true}
	mustCreate(t, db, nvidia)
	mustCreate(t, db, &domain.Product{Name: "RTX", Slug: "rtx", SKU: "G1", CategoryID: &nvidia.ID, Status: domain.ProductStatusPublished})

	svc := NewPCBuilderService(repository.NewCategoryRepository(db), repository.NewProductRepository(db), nil)
	resp, err := svc.GetSlots(ctx)
	require.NoError(t, err)

	assert.Equal(t, domain.PCBuilderComingSoon, resp.Status)
	require.Len(t, resp.Slots, len(pcBuilderSlots))
	for _, slot := range resp.Slots {
		if slot.Key == "gpu" {
			assert.Equal(t, int64(1), slot.ProductCount)
			assert.True(t, slot.Available)
		} else {
			assert.Zero(t, slot.ProductCount, slot.Key)
			assert.False(t, slot.Available, slot.Key)
		}
	}
}
