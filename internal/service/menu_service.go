package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/damoang/pcmall-backend/internal/common"
	"github.com/damoang/pcmall-backend/internal/domain"
	"github.com/damoang/pcmall-backend/internal/repository"
	pkgcache "github.com/damoang/pcmall-backend/pkg/cache"
	pkglogger "github.com/damoang/pcmall-backend/pkg/logger"
	"github.com/damoang/pcmall-backend/pkg/menutree"
	"gorm.io/gorm"
)

// Menu 에러 정의
var (
	ErrMenuNotFound        = errors.New("menu not found")
	ErrMenuItemNotFound    = errors.New("menu item not found")
	ErrMenuLocationTaken   = errors.New("menu location already in use")
	ErrInvalidMenuLocation = errors.New("menu location must be lowercase letters, digits, '-' or '_'")
	ErrInvalidLinkType     = errors.New("invalid link type")
	ErrInvalidLinkValue    = errors.New("link value is required for this link type")
	ErrCustomURLRequired   = errors.New("custom link requires a url")
	ErrInvalidCustomURL    = errors.New("invalid custom url")
	ErrInvalidTarget       = errors.New("invalid link target")
	ErrMenuParentMismatch  = errors.New("parent item does not belong to this menu")
	ErrMenuCycle           = errors.New("parent would make the item its own ancestor")
	ErrReorderMismatch     = errors.New("reorder tree must list every item of the menu exactly once")
)

var menuLocationPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// MenuService business logic for menus
type MenuService interface {
	// Public API
	GetPublicMenu(ctx context.Context, location string) (*domain.MenuResponse, error)

	// Admin API
	ListMenus() ([]domain.AdminMenuResponse, error)
	GetMenu(id int64) (*domain.AdminMenuResponse, error)
	CreateMenu(ctx context.Context, req *domain.CreateMenuRequest) (*domain.AdminMenuResponse, error)
	UpdateMenu(ctx context.Context, id int64, req *domain.UpdateMenuRequest) (*domain.AdminMenuResponse, error)
	DeleteMenu(ctx context.Context, id int64) error

	CreateItem(ctx context.Context, menuID int64, req *domain.CreateMenuItemRequest) (*domain.MenuItem, error)
	UpdateItem(ctx context.Context, menuID, itemID int64, req *domain.UpdateMenuItemRequest) (*domain.MenuItem, error)
	DeleteItem(ctx context.Context, menuID, itemID int64) error
	ReorderItems(ctx context.Context, menuID int64, req *domain.ReorderMenuItemsRequest) (*domain.AdminMenuResponse, error)
}

type menuService struct {
	repo  repository.MenuRepository
	cache pkgcache.Service
}

// NewMenuService creates a new MenuService. cache may be nil.
func NewMenuService(repo repository.MenuRepository, cache pkgcache.Service) MenuService {
	if cache == nil {
		cache = pkgcache.NewService(nil)
	}
	return &menuService{repo: repo, cache: cache}
}

// GetPublicMenu returns the active tree at location with resolved URLs.
// Inactive items are removed together with everything below them.
func (s *menuService) GetPublicMenu(ctx context.Context, location string) (*domain.MenuResponse, error) {
	location = strings.ToLower(strings.TrimSpace(location))

	var cached domain.MenuResponse
	if err := s.cache.GetMenu(ctx, location, &cached); cacheHit(s.cache, "menu", err) {
		return &cached, nil
	}

	menu, err := s.repo.FindMenuByLocation(location)
	if err != nil {
		return nil, mapMenuErr(err)
	}
	if !menu.IsActive {
		return nil, ErrMenuNotFound
	}

	roots, err := s.buildTree(menu, "public")
	if err != nil {
		return nil, err
	}

	resp := &domain.MenuResponse{
		ID:       menu.ID,
		Name:     menu.Name,
		Location: menu.Location,
		Items:    menutree.Resolve(menutree.PruneInactive(roots)),
	}

	if err := s.cache.SetMenu(ctx, location, resp); err != nil {
		pkglogger.GetLogger().Warn().Err(err).Str("location", location).Msg("menu cache write failed")
	}
	return resp, nil
}

// ListMenus 관리자 메뉴 목록 (항목 수 포함)
func (s *menuService) ListMenus() ([]domain.AdminMenuResponse, error) {
	menus, err := s.repo.ListMenus()
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.CountItemsByMenu()
	if err != nil {
		return nil, err
	}

	out := make([]domain.AdminMenuResponse, 0, len(menus))
	for _, m := range menus {
		resp := m.ToAdminResponse()
		resp.ItemCount = counts[m.ID]
		out = append(out, resp)
	}
	return out, nil
}

// GetMenu 관리자용 전체 트리 (비활성 포함, resolved_url / link_description 포함)
func (s *menuService) GetMenu(id int64) (*domain.AdminMenuResponse, error) {
	menu, err := s.repo.FindMenuByID(id)
	if err != nil {
		return nil, mapMenuErr(err)
	}

	roots, err := s.buildTree(menu, "admin")
	if err != nil {
		return nil, err
	}

	resp := menu.ToAdminResponse()
	resp.Items = domain.NewAdminMenuItemTree(roots)
	resp.ItemCount = menutree.Count(roots)
	return &resp, nil
}

func (s *menuService) CreateMenu(ctx context.Context, req *domain.CreateMenuRequest) (*domain.AdminMenuResponse, error) {
	location, err := normalizeLocation(req.Location)
	if err != nil {
		return nil, err
	}
	if err := s.ensureLocationFree(location, 0); err != nil {
		return nil, err
	}

	menu := &domain.Menu{
		Name:        strings.TrimSpace(req.Name),
		Location:    location,
		Description: req.Description,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	if err := s.repo.CreateMenu(menu); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	resp := menu.ToAdminResponse()
	return &resp, nil
}

func (s *menuService) UpdateMenu(ctx context.Context, id int64, req *domain.UpdateMenuRequest) (*domain.AdminMenuResponse, error) {
	menu, err := s.repo.FindMenuByID(id)
	if err != nil {
		return nil, mapMenuErr(err)
	}

	if req.Location != nil {
		location, err := normalizeLocation(*req.Location)
		if err != nil {
			return nil, err
		}
		if err := s.ensureLocationFree(location, id); err != nil {
			return nil, err
		}
		menu.Location = location
	}
	if req.Name != nil {
		menu.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		menu.Description = *req.Description
	}
	if req.IsActive != nil {
		menu.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateMenu(menu); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return s.GetMenu(id)
}

func (s *menuService) DeleteMenu(ctx context.Context, id int64) error {
	if err := s.repo.DeleteMenu(id); err != nil {
		return mapMenuErr(err)
	}
	s.invalidate(ctx)
	return nil
}

// ============================================
// Items
// ============================================

func (s *menuService) CreateItem(ctx context.Context, menuID int64, req *domain.CreateMenuItemRequest) (*domain.MenuItem, error) {
	if _, err := s.repo.FindMenuByID(menuID); err != nil {
		return nil, mapMenuErr(err)
	}
	existing, err := s.repo.ListItems(menuID)
	if err != nil {
		return nil, err
	}

	item := &domain.MenuItem{
		MenuID:    menuID,
		ParentID:  req.ParentID,
		Label:     strings.TrimSpace(req.Label),
		URL:       req.URL,
		LinkType:  req.LinkType,
		LinkValue: req.LinkValue,
		Target:    req.Target,
		CSSClass:  req.CSSClass,
		IsActive:  req.IsActive == nil || *req.IsActive,
		SortOrder: req.SortOrder,
	}
	if err := validateMenuItem(item, existing); err != nil {
		return nil, err
	}

	if item.SortOrder == 0 {
		maxOrder, err := s.repo.GetMaxSortOrder(menuID, item.ParentID)
		if err != nil {
			return nil, err
		}
		item.SortOrder = maxOrder + 1
	}

	if err := s.repo.CreateItem(item); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return item, nil
}

func (s *menuService) UpdateItem(ctx context.Context, menuID, itemID int64, req *domain.UpdateMenuItemRequest) (*domain.MenuItem, error) {
	item, err := s.repo.FindItem(menuID, itemID)
	if err != nil {
		return nil, mapMenuItemErr(err)
	}
	existing, err := s.repo.ListItems(menuID)
	if err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		if *req.ParentID == 0 {
			item.ParentID = nil
		} else {
			parentID := *req.ParentID
			item.ParentID = &parentID
		}
	}
	if req.Label != nil {
		item.Label = strings.TrimSpace(*req.Label)
	}
	if req.LinkType != nil {
		item.LinkType = *req.LinkType
	}
	if req.LinkValue != nil {
		item.LinkValue = *req.LinkValue
	}
	if req.URL != nil {
		item.URL = *req.URL
	}
	if req.Target != nil {
		item.Target = *req.Target
	}
	if req.CSSClass != nil {
		item.CSSClass = *req.CSSClass
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		item.SortOrder = *req.SortOrder
	}

	if err := validateMenuItem(item, existing); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateItem(item); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return item, nil
}

// DeleteItem removes an item; its children move up to its parent
func (s *menuService) DeleteItem(ctx context.Context, menuID, itemID int64) error {
	item, err := s.repo.FindItem(menuID, itemID)
	if err != nil {
		return mapMenuItemErr(err)
	}
	if err := s.repo.DeleteItem(item); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// ReorderItems persists the tree edited in the admin UI. Nesting becomes
// parent_id and sibling position becomes sort_order.
func (s *menuService) ReorderItems(ctx context.Context, menuID int64, req *domain.ReorderMenuItemsRequest) (*domain.AdminMenuResponse, error) {
	if _, err := s.repo.FindMenuByID(menuID); err != nil {
		return nil, mapMenuErr(err)
	}
	existing, err := s.repo.ListItems(menuID)
	if err != nil {
		return nil, err
	}

	known := make(map[int64]bool, len(existing))
	for _, it := range existing {
		known[it.ID] = true
	}

	seen := make(map[int64]bool, len(existing))
	roots, err := reorderNodesToTree(req.Items, nil, known, seen)
	if err != nil {
		return nil, err
	}
	if len(seen) != len(known) {
		return nil, ErrReorderMismatch
	}

	flat := menutree.FlattenTree(roots)
	updates := make([]domain.MenuItem, 0, len(flat))
	for _, it := range flat {
		updates = append(updates, domain.MenuItem{ID: it.ID, ParentID: it.ParentID, SortOrder: it.SortOrder})
	}

	if err := s.repo.ReorderItems(menuID, updates); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return s.GetMenu(menuID)
}

func reorderNodesToTree(nodes []domain.ReorderNode, parentID *int64, known, seen map[int64]bool) ([]menutree.Item, error) {
	out := make([]menutree.Item, 0, len(nodes))
	for pos, n := range nodes {
		if !known[n.ID] || seen[n.ID] {
			return nil, fmt.Errorf("%w: item %d", ErrReorderMismatch, n.ID)
		}
		seen[n.ID] = true

		id := n.ID
		children, err := reorderNodesToTree(n.Children, &id, known, seen)
		if err != nil {
			return nil, err
		}
		out = append(out, menutree.Item{
			ID:        n.ID,
			ParentID:  parentID,
			SortOrder: pos,
			Children:  children,
		})
	}
	return out, nil
}

// validateMenuItem normalises item in place and applies the save guards.
// existing is the menu's current item list.
func validateMenuItem(item *domain.MenuItem, existing []domain.MenuItem) error {
	lt, ok := menutree.ParseLinkType(item.LinkType)
	if !ok {
		return ErrInvalidLinkType
	}
	item.LinkType = string(lt)
	item.LinkValue = strings.TrimSpace(item.LinkValue)

	if !menutree.ValidateLinkValue(lt, item.LinkValue) {
		return ErrInvalidLinkValue
	}

	if lt == menutree.LinkCustom {
		item.URL = strings.TrimSpace(item.URL)
		if item.URL == "" {
			return ErrCustomURLRequired
		}
		if err := common.ValidateCustomURL(item.URL); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidCustomURL, err)
		}
		item.LinkValue = ""
	} else {
		item.URL = ""
		if lt.IsStatic() {
			item.LinkValue = ""
		}
	}

	if item.Target == "" {
		item.Target = domain.TargetSelf
	}
	if !domain.IsValidTarget(item.Target) {
		return ErrInvalidTarget
	}

	if item.ParentID == nil {
		return nil
	}
	if item.ID != 0 && *item.ParentID == item.ID {
		return ErrMenuCycle
	}

	parentFound := false
	for _, it := range existing {
		if it.ID == *item.ParentID {
			parentFound = true
			break
		}
	}
	if !parentFound {
		return ErrMenuParentMismatch
	}

	if item.ID != 0 && menutree.WouldCycle(domain.ToTreeItems(existing), item.ID, item.ParentID) {
		return ErrMenuCycle
	}
	return nil
}

func (s *menuService) buildTree(menu *domain.Menu, view string) ([]menutree.Item, error) {
	items, err := s.repo.ListItems(menu.ID)
	if err != nil {
		return nil, err
	}

	roots, rep := menutree.BuildTreeWithReport(domain.ToTreeItems(items))
	menuTreeBuilds.WithLabelValues(view).Inc()
	if !rep.Clean() {
		menuTreeRepairs.WithLabelValues("dangling").Add(float64(len(rep.Dangling)))
		menuTreeRepairs.WithLabelValues("cycle").Add(float64(len(rep.CyclesBroken)))
		pkglogger.GetLogger().Warn().
			Int64("menu_id", menu.ID).
			Str("location", menu.Location).
			Ints64("dangling", rep.Dangling).
			Ints64("cycles_broken", rep.CyclesBroken).
			Msg("menu tree repaired while building")
	}
	return roots, nil
}

func (s *menuService) ensureLocationFree(location string, selfID int64) error {
	other, err := s.repo.FindMenuByLocation(location)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	case err != nil:
		return err
	case other.ID != selfID:
		return ErrMenuLocationTaken
	default:
		return nil
	}
}

func (s *menuService) invalidate(ctx context.Context) {
	if err := s.cache.InvalidateMenus(ctx); err != nil {
		pkglogger.GetLogger().Warn().Err(err).Msg("menu cache invalidation failed")
	}
}

func normalizeLocation(raw string) (string, error) {
	location := strings.ToLower(strings.TrimSpace(raw))
	if !menuLocationPattern.MatchString(location) {
		return "", ErrInvalidMenuLocation
	}
	return location, nil
}

func mapMenuErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrMenuNotFound
	}
	return err
}

func mapMenuItemErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrMenuItemNotFound
	}
	return err
}
