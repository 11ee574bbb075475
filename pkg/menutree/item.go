// Package menutree builds navigation trees from flat menu item lists and
// resolves each item's navigable URL from its link type.
//
// Everything in this package is a pure function over an input snapshot:
// nothing is cached, nothing in the input is mutated, and every operation is
// safe to call concurrently on independent inputs.
package menutree

import "strings"

// LinkType determines how an item's target URL is derived.
type LinkType string

const (
	LinkCustom   LinkType = "CUSTOM"
	LinkPage     LinkType = "PAGE"
	LinkCategory LinkType = "CATEGORY"
	LinkProduct  LinkType = "PRODUCT"
	LinkShop     LinkType = "SHOP"
	LinkBrand    LinkType = "BRAND"
	LinkHome     LinkType = "HOME"
	LinkContact  LinkType = "CONTACT"
	LinkAbout    LinkType = "ABOUT"
)

// LinkTypes lists every known link type in display order.
var LinkTypes = []LinkType{
	LinkCustom, LinkPage, LinkCategory, LinkProduct, LinkShop,
	LinkBrand, LinkHome, LinkContact, LinkAbout,
}

// IsValid reports whether t is one of the known link types.
func (t LinkType) IsValid() bool {
	switch t {
	case LinkCustom, LinkPage, LinkCategory, LinkProduct, LinkShop,
		LinkBrand, LinkHome, LinkContact, LinkAbout:
		return true
	}
	return false
}

// IsStatic reports whether t points at a fixed page and ignores LinkValue.
func (t LinkType) IsStatic() bool {
	return t == LinkHome || t == LinkContact || t == LinkAbout
}

// NeedsValue reports whether t is addressed through LinkValue.
func (t LinkType) NeedsValue() bool {
	switch t {
	case LinkCategory, LinkProduct, LinkShop, LinkBrand, LinkPage:
		return true
	}
	return false
}

// ParseLinkType normalizes s (trimmed, case-insensitive) into a known link type.
func ParseLinkType(s string) (LinkType, bool) {
	t := LinkType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", false
	}
	return t, true
}

// Item is a single navigable menu entry.
//
// URL and LinkValue use the empty string for "absent". Children is derived by
// BuildTree and is never stored.
type Item struct {
	ID        int64    `json:"id"`
	Label     string   `json:"label"`
	URL       string   `json:"url,omitempty"`
	LinkType  LinkType `json:"link_type"`
	LinkValue string   `json:"link_value,omitempty"`
	Target    string   `json:"target,omitempty"`
	CSSClass  string   `json:"css_class,omitempty"`
	IsActive  bool     `json:"is_active"`
	SortOrder int      `json:"sort_order"`
	ParentID  *int64   `json:"parent_id"`
	Children  []Item   `json:"children,omitempty"`
}

// IsRoot reports whether the item carries no parent reference.
func (it Item) IsRoot() bool {
	return it.ParentID == nil
}
