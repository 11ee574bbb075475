package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/damoang/pcmall-backend/internal/domain"
	pkgcache "github.com/damoang/pcmall-backend/pkg/cache"
	"github.com/damoang/pcmall-backend/pkg/menutree"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockMenuRepository is a mock implementation of MenuRepository
type MockMenuRepository struct {
	mock.Mock
}

func (m *MockMenuRepository) ListMenus() ([]*domain.Menu, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Menu), args.Error(1)
}

func (m *MockMenuRepository) CountItemsByMenu() (map[int64]int, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int), args.Error(1)
}

func (m *MockMenuRepository) FindMenuByID(id int64) (*domain.Menu, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Menu), args.Error(1)
}

func (m *MockMenuRepository) FindMenuByLocation(location string) (*domain.Menu, error) {
	args := m.Called(location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Menu), args.Error(1)
}

func (m *MockMenuRepository) CreateMenu(menu *domain.Menu) error {
	return m.Called(menu).Error(0)
}

func (m *MockMenuRepository) UpdateMenu(menu *domain.Menu) error {
	return m.Called(menu).Error(0)
}

func (m *MockMenuRepository) DeleteMenu(id int64) error {
	return m.Called(id).Error(0)
}

func (m *MockMenuRepository) ListItems(menuID int64) ([]domain.MenuItem, error) {
	args := m.Called(menuID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MenuItem), args.Error(1)
}

func (m *MockMenuRepository) FindItem(menuID, itemID int64) (*domain.MenuItem, error) {
	args := m.Called(menuID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MenuItem), args.Error(1)
}

func (m *MockMenuRepository) CreateItem(item *domain.MenuItem) error {
	return m.Called(item).Error(0)
}

func (m *MockMenuRepository) UpdateItem(item *domain.MenuItem) error {
	return m.Called(item).Error(0)
}

func (m *MockMenuRepository) DeleteItem(item *domain.MenuItem) error {
	return m.Called(item).Error(0)
}

func (m *MockMenuRepository) ReorderItems(menuID int64, items []domain.MenuItem) error {
	return m.Called(menuID, items).Error(0)
}

func (m *MockMenuRepository) GetMaxSortOrder(menuID int64, parentID *int64) (int, error) {
	args := m.Called(menuID, parentID)
	return args.Int(0), args.Error(1)
}

// fakeCache is an in-memory pkgcache.Service. Values go through JSON like
// the Redis implementation.
type fakeCache struct {
	mu              sync.Mutex
	data            map[string][]byte
	menuInvalidated int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (f *fakeCache) Get(_ context.Context, key string, dest interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.data[key]
	if !ok {
		return pkgcache.ErrUnavailable
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = raw
	return nil
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func (f *fakeCache) DeleteByPattern(_ context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	f.mu.Lock()
	defer f.mu.Unlock()
	for k := range f.data {
		if strings.HasPrefix(k, prefix) {
			delete(f.data, k)
		}
	}
	return nil
}

func (f *fakeCache) GetMenu(ctx context.Context, location string, dest interface{}) error {
	return f.Get(ctx, pkgcache.MenuKey(location), dest)
}

func (f *fakeCache) SetMenu(ctx context.Context, location string, data interface{}) error {
	return f.Set(ctx, pkgcache.MenuKey(location), data, pkgcache.TTLMenu)
}

func (f *fakeCache) InvalidateMenus(ctx context.Context) error {
	f.mu.Lock()
	f.menuInvalidated++
	f.mu.Unlock()
	return f.DeleteByPattern(ctx, pkgcache.PrefixMenu+"*")
}

func (f *fakeCache) IsAvailable() bool          { return true }
func (f *fakeCache) Ping(context.Context) error { return nil }

func (f *fakeCache) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.data[key]
	return ok
}

func int64Ptr(v int64) *int64 { return &v }

// header: 1 Home, 2 Parts (inactive) > 3 GPUs, 4 Shops
func headerItems() []domain.MenuItem {
	return []domain.MenuItem{
		{ID: 1, MenuID: 1, Label: "Home", LinkType: "HOME", Target: "_self", IsActive: true, SortOrder: 1},
		{ID: 2, MenuID: 1, Label: "Parts", LinkType: "CUSTOM", URL: "/parts", Target: "_self", IsActive: false, SortOrder: 2},
		{ID: 3, MenuID: 1, ParentID: int64Ptr(2), Label: "GPUs", LinkType: "CATEGORY", LinkValue: "gpus", Target: "_self", IsActive: true, SortOrder: 1},
		{ID: 4, MenuID: 1, Label: "Shops", LinkType: "SHOP", Target: "_self", IsActive: true, SortOrder: 3},
	}
}

func TestMenuService_GetPublicMenu(t *testing.T) {
	repo := new(MockMenuRepository)
	svc := NewMenuService(repo, nil)

	repo.On("FindMenuByLocation", "header").Return(&domain.Menu{ID: 1, Name: "Header", Location: "header", IsActive: true}, nil)
	repo.On("ListItems", int64(1)).Return(headerItems(), nil)

	resp, err := svc.GetPublicMenu(context.Background(), "header")

	require.NoError(t, err)
	assert.Equal(t, "header", resp.Location)
	// the inactive Parts node takes GPUs with it
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "/", resp.Items[0].URL)
	assert.Equal(t, "/shops", resp.Items[1].URL)
	repo.AssertExpectations(t)
}

func TestMenuService_GetPublicMenu_InactiveMenu(t *testing.T) {
	repo := new(MockMenuRepository)
	svc := NewMenuService(repo, nil)

	repo.On("FindMenuByLocation", "footer").Return(&domain.Menu{ID: 2, Location: "footer", IsActive: false}, nil)

	_, err := svc.GetPublicMenu(context.Background(), "footer")
	assert.ErrorIs(t, err, ErrMenuNotFound)
}

func TestMenuService_GetPublicMenu_NotFound(t *testing.T) {
	repo := new(MockMenuRepository)
	svc := NewMenuService(repo, nil)

	repo.On("FindMenuByLocation", "nowhere").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetPublicMenu(context.Background(), "nowhere")
	assert.ErrorIs(t, err, ErrMenuNotFound)
}

func TestMenuService_GetMenu_AnnotatesTree(t *testing.T) {
	repo := new(MockMenuRepository)
	svc := NewMenuService(repo, nil)

	repo.On("FindMenuByID", int64(1)).Return(&domain.Menu{ID: 1, Location: "header", IsActive: true}, nil)
	repo.On("ListItems", int64(1)).Return(headerItems(), nil)

	resp, err := svc.GetMenu(1)

	require.NoError(t, err)
	assert.Equal(t, 4, resp.ItemCount)
	require.Len(t, resp.Items, 3)
	parts := resp.Items[1]
	assert.False(t, parts.IsActive)
	assert.Equal(t, "/parts", parts.ResolvedURL)
	assert.Equal(t, "Custom URL: /parts", parts.LinkDescription)
	require.Len(t, parts.Children, 1)
	assert.Equal(t, "/categories/gpus", parts.Children[0].ResolvedURL)
	assert.Equal(t, "Shop: Not specified", resp.Items[2].LinkDescription)
}

func TestMenuService_GetMenu_RepairsCycle(t *testing.T) {
	repo := new(MockMenuRepository)
	svc := NewMenuService(repo, nil)

	repo.On("FindMenuByID", int64(1)).Return(&domain.Menu{ID: 1, Location: "header"}, nil)
	repo.On("ListItems", int64(1)).Return([]domain.MenuItem{
		{ID: 1, MenuID: 1, ParentID: int64Ptr(2), LinkType: "HOME"},
		{ID: 2, MenuID: 1, ParentID: int64Ptr(1), LinkType: "HOME"},
	}, nil)

	resp, err := svc.GetMenu(1)

	require.NoError(t, err)
	assert.Equal(t, 2, resp.ItemCount)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, int64(1), resp.Items[0].ID)
	assert.Nil(t, resp.Items[0].ParentID)
}

func TestMenuService_CreateMenu(t *testing.T) {
	t.Run("normalizes location", func(t *testing.T) {
		repo := new(MockMenuRepository)
		svc := NewMenuService(repo, nil)

		repo.On("FindMenuByLocation", "main-nav").Return(nil, gorm.ErrRecordNotFound)
		repo.On("CreateMenu", mock.AnythingOfType("*domain.Menu")).Return(nil)

		resp, err := svc.CreateMenu(context.Background(), &domain.CreateMenuRequest{Name: " Main ", Location: " Main-Nav "})

		require.NoError(t, err)
		assert.Equal(t, "main-nav", resp.Location)
		assert.Equal(t, "Main", resp.Name)
		assert.True(t, resp.IsActive)
	})

	t.Run("location taken", func(t *testing.T) {
		repo := new(MockMenuRepository)
		svc := NewMenuService(repo, nil)

		repo.On("FindMenuByLocation", "header").Return(&domain.Menu{ID: 1, Location: "header"}, nil)

		_, err := svc.CreateMenu(context.Background(), &domain.CreateMenuRequest{Name: "x", Location: "header"})
		assert.ErrorIs(t, err, ErrMenuLocationTaken)
		repo.AssertNotCalled(t, "CreateMenu", mock.Anything)
	})

	t.Run("invalid location", func(t *testing.T) {
		svc := NewMenuService(new(MockMenuRepository), nil)
		_, err := svc.CreateMenu(context.Background(), &domain.CreateMenuRequest{Name: "x", Location: "top nav"})
		assert.ErrorIs(t, err, ErrInvalidMenuLocation)
	})
}

func TestMenuService_CreateItem(t *testing.T) {
	tests := []struct {
		name    string
		req     domain.CreateMenuItemRequest
		wantErr error
	}{
		{"unknown link type", domain.CreateMenuItemRequest{Label: "x", LinkType: "MENU"}, ErrInvalidLinkType},
		{"category without value", domain.CreateMenuItemRequest{Label: "x", LinkType: "CATEGORY", LinkValue: "  "}, ErrInvalidLinkValue},
		{"custom without url", domain.CreateMenuItemRequest{Label: "x", LinkType: "CUSTOM"}, ErrCustomURLRequired},
		{"custom with script url", domain.CreateMenuItemRequest{Label: "x", LinkType: "CUSTOM", URL: "javascript:alert(1)"}, ErrInvalidCustomURL},
		{"bad target", domain.CreateMenuItemRequest{Label: "x", LinkType: "HOME", Target: "popup"}, ErrInvalidTarget},
		{"parent in other menu", domain.CreateMenuItemRequest{Label: "x", LinkType: "HOME", ParentID: int64Ptr(99)}, ErrMenuParentMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockMenuRepository)
			svc := NewMenuService(repo, nil)

			repo.On("FindMenuByID", int64(1)).Return(&domain.Menu{ID: 1}, nil)
			repo.On("ListItems", int64(1)).Return(headerItems(), nil)

			req := tt.req
			_, err := svc.CreateItem(context.Background(), 1, &req)
			assert.ErrorIs(t, err, tt.wantErr)
			repo.AssertNotCalled(t, "CreateItem", mock.Anything)
		})
	}
}

func TestMenuService_CreateItem_AppendsToSiblings(t *testing.T) {
	repo := new(MockMenuRepository)
	svc := NewMenuService(repo, nil)

	repo.On("FindMenuByID", int64(1)).Return(&domain.Menu{ID: 1}, nil)
	repo.On("ListItems", int64(1)).Return(headerItems(), nil)
	repo.On("GetMaxSortOrder", int64(1), int64Ptr(2)).Return(1, nil)
	repo.On("CreateItem", mock.AnythingOfType("*domain.MenuItem")).Return(nil)

	item, err := svc.CreateItem(context.Background(), 1, &domain.CreateMenuItemRequest{
		ParentID:  int64Ptr(2),
		Label:     "CPUs",
		LinkType:  "category",
		LinkValue: " cpus ",
		URL:       "/ignored",
	})

	require.NoError(t, err)
	assert.Equal(t, string(menutree.LinkCategory), item.LinkType)
	assert.Equal(t, "cpus", item.LinkValue)
	assert.Empty(t, item.URL)
	assert.Equal(t, domain.TargetSelf, item.Target)
	assert.Equal(t, 2, item.SortOrder)
	assert.True(t, item.IsActive)
}

func TestMenuService_UpdateItem_RejectsCycle(t *testing.T) {
	repo := new(MockMenuRepository)
	svc := NewMenuService(repo, nil)

	items := headerItems()
	repo.On("FindItem", int64(1), int64(2)).Return(&items[1], nil)
	repo.On("ListItems", int64(1)).Return(headerItems(), nil)

	// Parts under its own child GPUs
	_, err := svc.UpdateItem(context.Background(), 1, 2, &domain.UpdateMenuItemRequest{ParentID: int64Ptr(3)})
	assert.ErrorIs(t, err, ErrMenuCycle)

	_, err = svc.UpdateItem(context.Background(), 1, 2, &domain.UpdateMenuItemRequest{ParentID: int64Ptr(2)})
	assert.ErrorIs(t, err, ErrMenuCycle)
	repo.AssertNotCalled(t, "UpdateItem", mock.Anything)
}

func TestMenuService_UpdateItem_MoveToTopLevel(t *testing.T) {
	repo := new(MockMenuRepository)
	svc := NewMenuService(repo, nil)

	items := headerItems()
	repo.On("FindItem", int64(1), int64(3)).Return(&items[2], nil)
	repo.On("ListItems", int64(1)).Return(headerItems(), nil)
	repo.On("UpdateItem", mock.AnythingOfType("*domain.MenuItem")).Return(nil)

	item, err := svc.UpdateItem(context.Background(), 1, 3, &domain.UpdateMenuItemRequest{ParentID: int64Ptr(0)})

	require.NoError(t, err)
	assert.Nil(t, item.ParentID)
}

func TestMenuService_UpdateItem_NotFound(t *testing.T) {
	repo := new(MockMenuRepository)
	svc := NewMenuService(repo, nil)

	repo.On("FindItem", int64(1), int64(42)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.UpdateItem(context.Background(), 1, 42, &domain.UpdateMenuItemRequest{})
	assert.ErrorIs(t, err, ErrMenuItemNotFound)
}

func TestMenuService_ReorderItems(t *testing.T) {
	repo := new(MockMenuRepository)
	svc := NewMenuService(repo, nil)

	repo.On("FindMenuByID", int64(1)).Return(&domain.Menu{ID: 1, Location: "header"}, nil)
	repo.On("ListItems", int64(1)).Return(headerItems(), nil)

	var saved []domain.MenuItem
	repo.On("ReorderItems", int64(1), mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).([]domain.MenuItem) }).
		Return(nil)

	// Shops first, GPUs moves under Home, Parts last
	_, err := svc.ReorderItems(context.Background(), 1, &domain.ReorderMenuItemsRequest{Items: []domain.ReorderNode{
		{ID: 4},
		{ID: 1, Children: []domain.ReorderNode{{ID: 3}}},
		{ID: 2},
	}})

	require.NoError(t, err)
	require.Len(t, saved, 4)
	assert.Equal(t, int64(4), saved[0].ID)
	assert.Nil(t, saved[0].ParentID)
	assert.Equal(t, 0, saved[0].SortOrder)
	assert.Equal(t, int64(1), saved[1].ID)
	assert.Equal(t, 1, saved[1].SortOrder)
	assert.Equal(t, int64(3), saved[2].ID)
	require.NotNil(t, saved[2].ParentID)
	assert.Equal(t, int64(1), *saved[2].ParentID)
	assert.Equal(t, 0, saved[2].SortOrder)
	assert.Equal(t, int64(2), saved[3].ID)
	assert.Equal(t, 2, saved[3].SortOrder)
}

func TestMenuService_ReorderItems_Mismatch(t *testing.T) {
	tests := []struct {
		name  string
		nodes []domain.ReorderNode
	}{
		{"missing item", []domain.ReorderNode{{ID: 1}, {ID: 2}, {ID: 3}}},
		{"duplicate item", []domain.ReorderNode{{ID: 1}, {ID: 2, Children: []domain.ReorderNode{{ID: 1}}}, {ID: 3}, {ID: 4}}},
		{"foreign item", []domain.ReorderNode{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 77}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockMenuRepository)
			svc := NewMenuService(repo, nil)

			repo.On("FindMenuByID", int64(1)).Return(&domain.Menu{ID: 1}, nil)
			repo.On("ListItems", int64(1)).Return(headerItems(), nil)

			_, err := svc.ReorderItems(context.Background(), 1, &domain.ReorderMenuItemsRequest{Items: tt.nodes})
			assert.ErrorIs(t, err, ErrReorderMismatch)
			repo.AssertNotCalled(t, "ReorderItems", mock.Anything, mock.Anything)
		})
	}
}

func TestMenuService_DeleteMenu_NotFound(t *testing.T) {
	repo := new(MockMenuRepository)
	svc := NewMenuService(repo, nil)

	repo.On("DeleteMenu", int64(9)).Return(gorm.ErrRecordNotFound)

	assert.ErrorIs(t, svc.DeleteMenu(context.Background(), 9), ErrMenuNotFound)
}

func TestMenuService_GetPublicMenu_CacheMissThenHit(t *testing.T) {
	repo := new(MockMenuRepository)
	cache := newFakeCache()
	svc := NewMenuService(repo, cache)

	repo.On("FindMenuByLocation", "header").Return(&domain.Menu{ID: 1, Name: "Header", Location: "header", IsActive: true}, nil).Once()
	repo.On("ListItems", int64(1)).Return(headerItems(), nil).Once()

	first, err := svc.GetPublicMenu(context.Background(), "header")
	require.NoError(t, err)
	assert.True(t, cache.has(pkgcache.MenuKey("header")), "miss writes the resolved tree")

	// same location in another case hits the same key
	second, err := svc.GetPublicMenu(context.Background(), " Header ")
	require.NoError(t, err)

	require.Len(t, second.Items, len(first.Items))
	assert.Equal(t, first.Items[0].URL, second.Items[0].URL)
	assert.Equal(t, "/shops", second.Items[1].URL)
	repo.AssertNumberOfCalls(t, "FindMenuByLocation", 1)
	repo.AssertNumberOfCalls(t, "ListItems", 1)
}

func TestMenuService_GetPublicMenu_CachedHitSkipsRepository(t *testing.T) {
	repo := new(MockMenuRepository)
	cache := newFakeCache()
	svc := NewMenuService(repo, cache)

	require.NoError(t, cache.SetMenu(context.Background(), "footer", &domain.MenuResponse{
		ID: 2, Name: "Footer", Location: "footer",
		Items: []menutree.Item{{ID: 9, Label: "About", LinkType: menutree.LinkAbout, URL: "/about", IsActive: true}},
	}))

	resp, err := svc.GetPublicMenu(context.Background(), "footer")

	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "About", resp.Items[0].Label)
	repo.AssertNotCalled(t, "FindMenuByLocation", mock.Anything)
}

func TestMenuService_GetPublicMenu_NoRedisCountsNothing(t *testing.T) {
	repo := new(MockMenuRepository)
	svc := NewMenuService(repo, nil)

	repo.On("FindMenuByLocation", "header").Return(&domain.Menu{ID: 1, Location: "header", IsActive: true}, nil)
	repo.On("ListItems", int64(1)).Return(headerItems(), nil)

	misses := cacheRequests.WithLabelValues("menu", "miss")
	before := testutil.ToFloat64(misses)

	_, err := svc.GetPublicMenu(context.Background(), "header")
	require.NoError(t, err)
	assert.Equal(t, before, testutil.ToFloat64(misses))
}

func TestMenuService_WritesInvalidateMenuCache(t *testing.T) {
	ctx := context.Background()
	header := &domain.Menu{ID: 1, Name: "Header", Location: "header", IsActive: true}

	tests := []struct {
		name  string
		setup func(repo *MockMenuRepository)
		run   func(svc MenuService) error
	}{
		{
			name: "create menu",
			setup: func(repo *MockMenuRepository) {
				repo.On("FindMenuByLocation", "sidebar").Return(nil, gorm.ErrRecordNotFound)
				repo.On("CreateMenu", mock.Anything).Return(nil)
			},
			run: func(svc MenuService) error {
				_, err := svc.CreateMenu(ctx, &domain.CreateMenuRequest{Name: "Sidebar", Location: "sidebar"})
				return err
			},
		},
		{
			name: "update menu",
			setup: func(repo *MockMenuRepository) {
				repo.On("FindMenuByID", int64(1)).Return(header, nil)
				repo.On("UpdateMenu", mock.Anything).Return(nil)
				repo.On("ListItems", int64(1)).Return(headerItems(), nil)
			},
			run: func(svc MenuService) error {
				name := "Main"
				_, err := svc.UpdateMenu(ctx, 1, &domain.UpdateMenuRequest{Name: &name})
				return err
			},
		},
		{
			name: "delete menu",
			setup: func(repo *MockMenuRepository) {
				repo.On("DeleteMenu", int64(1)).Return(nil)
			},
			run: func(svc MenuService) error { return svc.DeleteMenu(ctx, 1) },
		},
		{
			name: "create item",
			setup: func(repo *MockMenuRepository) {
				repo.On("FindMenuByID", int64(1)).Return(header, nil)
				repo.On("ListItems", int64(1)).Return(headerItems(), nil)
				repo.On("CreateItem", mock.Anything).Return(nil)
			},
			run: func(svc MenuService) error {
				_, err := svc.CreateItem(ctx, 1, &domain.CreateMenuItemRequest{Label: "Contact", LinkType: "CONTACT", SortOrder: 5})
				return err
			},
		},
		{
			name: "update item",
			setup: func(repo *MockMenuRepository) {
				item := headerItems()[0]
				repo.On("FindItem", int64(1), int64(1)).Return(&item, nil)
				repo.On("ListItems", int64(1)).Return(headerItems(), nil)
				repo.On("UpdateItem", mock.Anything).Return(nil)
			},
			run: func(svc MenuService) error {
				label := "Start"
				_, err := svc.UpdateItem(ctx, 1, 1, &domain.UpdateMenuItemRequest{Label: &label})
				return err
			},
		},
		{
			name: "delete item",
			setup: func(repo *MockMenuRepository) {
				item := headerItems()[3]
				repo.On("FindItem", int64(1), int64(4)).Return(&item, nil)
				repo.On("DeleteItem", mock.Anything).Return(nil)
			},
			run: func(svc MenuService) error { return svc.DeleteItem(ctx, 1, 4) },
		},
		{
			name: "reorder",
			setup: func(repo *MockMenuRepository) {
				repo.On("FindMenuByID", int64(1)).Return(header, nil)
				repo.On("ListItems", int64(1)).Return(headerItems(), nil)
				repo.On("ReorderItems", int64(1), mock.Anything).Return(nil)
			},
			run: func(svc MenuService) error {
				_, err := svc.ReorderItems(ctx, 1, &domain.ReorderMenuItemsRequest{Items: []domain.ReorderNode{
					{ID: 4}, {ID: 1}, {ID: 2, Children: []domain.ReorderNode{{ID: 3}}},
				}})
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockMenuRepository)
			cache := newFakeCache()
			svc := NewMenuService(repo, cache)
			require.NoError(t, cache.SetMenu(ctx, "header", &domain.MenuResponse{ID: 1, Location: "header"}))
			tt.setup(repo)

			require.NoError(t, tt.run(svc))

			assert.Equal(t, 1, cache.menuInvalidated)
			assert.False(t, cache.has(pkgcache.MenuKey("header")))
		})
	}
}

func TestMenuService_FailedWriteKeepsCache(t *testing.T) {
	repo := new(MockMenuRepository)
	cache := newFakeCache()
	svc := NewMenuService(repo, cache)

	repo.On("DeleteMenu", int64(9)).Return(gorm.ErrRecordNotFound)

	assert.ErrorIs(t, svc.DeleteMenu(context.Background(), 9), ErrMenuNotFound)
	assert.Zero(t, cache.menuInvalidated)
}
