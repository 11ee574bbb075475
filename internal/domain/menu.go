package domain

import (
	"slices"
	"time"

	"github.com/damoang/pcmall-backend/pkg/menutree"
)

// Link targets accepted for menu items
const (
	TargetSelf   = "_self"
	TargetBlank  = "_blank"
	TargetParent = "_parent"
	TargetTop    = "_top"
)

var validTargets = []string{TargetSelf, TargetBlank, TargetParent, TargetTop}

// IsValidTarget reports whether target is an allowed link target
func IsValidTarget(target string) bool {
	return slices.Contains(validTargets, target)
}

// Menu 네비게이션 메뉴 (header, footer, ...)
// Table: menus
type Menu struct {
	ID          int64      `gorm:"column:id;primaryKey" json:"id"`
	Name        string     `gorm:"column:name;size:100;not null" json:"name"`
	Location    string     `gorm:"column:location;size:50;not null;uniqueIndex" json:"location"`
	Description string     `gorm:"column:description;size:255" json:"description,omitempty"`
	IsActive    bool       `gorm:"column:is_active;not null" json:"is_active"`
	Items       []MenuItem `gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for Menu model
func (Menu) TableName() string {
	return "menus"
}

// MenuItem 메뉴 항목. parent_id 는 같은 메뉴의 항목만 가리킨다.
// Table: menu_items
type MenuItem struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	MenuID    int64     `gorm:"column:menu_id;not null;index:idx_menu_items_menu_sort,priority:1" json:"menu_id"`
	ParentID  *int64    `gorm:"column:parent_id;index" json:"parent_id"`
	Label     string    `gorm:"column:label;size:100;not null" json:"label"`
	URL       string    `gorm:"column:url;size:500" json:"url,omitempty"`
	LinkType  string    `gorm:"column:link_type;size:20;not null;default:'CUSTOM'" json:"link_type"`
	LinkValue string    `gorm:"column:link_value;size:255" json:"link_value,omitempty"`
	Target    string    `gorm:"column:target;size:10;not null;default:'_self'" json:"target"`
	CSSClass  string    `gorm:"column:css_class;size:100" json:"css_class,omitempty"`
	IsActive  bool      `gorm:"column:is_active;not null" json:"is_active"`
	SortOrder int       `gorm:"column:sort_order;not null;default:0;index:idx_menu_items_menu_sort,priority:2" json:"sort_order"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for MenuItem model
func (MenuItem) TableName() string {
	return "menu_items"
}

// ToTreeItem converts the stored row into a tree engine item
func (m *MenuItem) ToTreeItem() menutree.Item {
	return menutree.Item{
		ID:        m.ID,
		Label:     m.Label,
		URL:       m.URL,
		LinkType:  menutree.LinkType(m.LinkType),
		LinkValue: m.LinkValue,
		Target:    m.Target,
		CSSClass:  m.CSSClass,
		IsActive:  m.IsActive,
		SortOrder: m.SortOrder,
		ParentID:  m.ParentID,
	}
}

// ToTreeItems converts rows in their stored order
func ToTreeItems(items []MenuItem) []menutree.Item {
	out := make([]menutree.Item, 0, len(items))
	for i := range items {
		out = append(out, items[i].ToTreeItem())
	}
	return out
}

// ============================================
// Public responses
// ============================================

// MenuResponse 공개 메뉴 (활성 항목만, URL 해석 완료)
type MenuResponse struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Location string          `json:"location"`
	Items    []menutree.Item `json:"items"`
}

// ============================================
// Admin Menu Management DTOs
// ============================================

// CreateMenuRequest is the request body for creating a menu
type CreateMenuRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Location    string `json:"location" binding:"required,max=50"`
	Description string `json:"description" binding:"max=255"`
	IsActive    *bool  `json:"is_active"`
}

// UpdateMenuRequest is the request body for updating a menu
type UpdateMenuRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Location    *string `json:"location,omitempty" binding:"omitempty,max=50"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=255"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// CreateMenuItemRequest is the request body for adding an item to a menu
type CreateMenuItemRequest struct {
	ParentID  *int64 `json:"parent_id"`
	Label     string `json:"label" binding:"required,max=100"`
	LinkType  string `json:"link_type" binding:"required,linktype"`
	LinkValue string `json:"link_value" binding:"max=255"`
	URL       string `json:"url" binding:"max=500"`
	Target    string `json:"target"`
	CSSClass  string `json:"css_class" binding:"max=100"`
	IsActive  *bool  `json:"is_active"`
	SortOrder int    `json:"sort_order"`
}

// UpdateMenuItemRequest is the request body for updating a menu item.
// parent_id 0 moves the item to the top level; omitted keeps the current parent.
type UpdateMenuItemRequest struct {
	ParentID  *int64  `json:"parent_id,omitempty"`
	Label     *string `json:"label,omitempty" binding:"omitempty,max=100"`
	LinkType  *string `json:"link_type,omitempty" binding:"omitempty,linktype"`
	LinkValue *string `json:"link_value,omitempty" binding:"omitempty,max=255"`
	URL       *string `json:"url,omitempty" binding:"omitempty,max=500"`
	Target    *string `json:"target,omitempty"`
	CSSClass  *string `json:"css_class,omitempty" binding:"omitempty,max=100"`
	IsActive  *bool   `json:"is_active,omitempty"`
	SortOrder *int    `json:"sort_order,omitempty"`
}

// ReorderMenuItemsRequest is the edited tree as the admin UI sends it back
type ReorderMenuItemsRequest struct {
	Items []ReorderNode `json:"items" binding:"required,min=1,dive"`
}

// ReorderNode one node of the edited tree. Sibling position becomes sort_order.
type ReorderNode struct {
	ID       int64         `json:"id" binding:"required"`
	Children []ReorderNode `json:"children,omitempty" binding:"omitempty,dive"`
}

// AdminMenuResponse 관리자용 메뉴 (비활성 항목 포함)
type AdminMenuResponse struct {
	ID          int64                   `json:"id"`
	Name        string                  `json:"name"`
	Location    string                  `json:"location"`
	Description string                  `json:"description,omitempty"`
	IsActive    bool                    `json:"is_active"`
	ItemCount   int                     `json:"item_count"`
	Items       []AdminMenuItemResponse `json:"items,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// AdminMenuItemResponse 관리자 트리 노드
type AdminMenuItemResponse struct {
	ID              int64                   `json:"id"`
	ParentID        *int64                  `json:"parent_id"`
	Label           string                  `json:"label"`
	URL             string                  `json:"url,omitempty"`
	LinkType        string                  `json:"link_type"`
	LinkValue       string                  `json:"link_value,omitempty"`
	Target          string                  `json:"target"`
	CSSClass        string                  `json:"css_class,omitempty"`
	IsActive        bool                    `json:"is_active"`
	SortOrder       int                     `json:"sort_order"`
	ResolvedURL     string                  `json:"resolved_url"`
	LinkDescription string                  `json:"link_description"`
	Children        []AdminMenuItemResponse `json:"children"`
}

// ToAdminResponse converts Menu to AdminMenuResponse without items
func (m *Menu) ToAdminResponse() AdminMenuResponse {
	return AdminMenuResponse{
		ID:          m.ID,
		Name:        m.Name,
		Location:    m.Location,
		Description: m.Description,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// NewAdminMenuItemTree annotates a built tree for the admin editor
func NewAdminMenuItemTree(nodes []menutree.Item) []AdminMenuItemResponse {
	out := make([]AdminMenuItemResponse, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, AdminMenuItemResponse{
			ID:              n.ID,
			ParentID:        n.ParentID,
			Label:           n.Label,
			URL:             n.URL,
			LinkType:        string(n.LinkType),
			LinkValue:       n.LinkValue,
			Target:          n.Target,
			CSSClass:        n.CSSClass,
			IsActive:        n.IsActive,
			SortOrder:       n.SortOrder,
			ResolvedURL:     menutree.ResolveURL(n),
			LinkDescription: menutree.DescribeLink(n),
			Children:        NewAdminMenuItemTree(n.Children),
		})
	}
	return out
}
