package menutree

import "strings"

const (
	// InertURL is what an item resolves to when it has nowhere to go.
	InertURL = "#"
	// ShopListingURL is the SHOP fallback when no specific shop is set.
	ShopListingURL = "/shops"

	notSpecified = "Not specified"
)

var valuePrefixes = map[LinkType]string{
	LinkCategory: "/categories/",
	LinkProduct:  "/products/",
	LinkShop:     "/shop/",
	LinkBrand:    "/brands/",
	LinkPage:     "/pages/",
}

var staticURLs = map[LinkType]string{
	LinkHome:    "/",
	LinkContact: "/contact",
	LinkAbout:   "/about",
}

// ResolveURL returns the navigable URL for item. It never fails: an item
// with an unknown link type is treated like CUSTOM.
func ResolveURL(item Item) string {
	if u, ok := staticURLs[item.LinkType]; ok {
		return u
	}

	if prefix, ok := valuePrefixes[item.LinkType]; ok {
		if item.LinkValue != "" {
			return prefix + item.LinkValue
		}
		if item.LinkType == LinkShop {
			return ShopListingURL
		}
		return InertURL
	}

	if item.URL != "" {
		return item.URL
	}
	return InertURL
}

// ValidateLinkValue reports whether linkValue is acceptable for linkType.
// Static types and CUSTOM accept anything; value-addressed types need a
// non-blank value; unknown types are rejected.
func ValidateLinkValue(linkType LinkType, linkValue string) bool {
	switch {
	case linkType.IsStatic(), linkType == LinkCustom:
		return true
	case linkType.NeedsValue():
		return strings.TrimSpace(linkValue) != ""
	default:
		return false
	}
}

// DescribeLink returns a short human-readable summary of where item points,
// for admin listings.
func DescribeLink(item Item) string {
	switch item.LinkType {
	case LinkHome:
		return "Home Page"
	case LinkContact:
		return "Contact Page"
	case LinkAbout:
		return "About Page"
	case LinkCategory:
		return "Category: " + orNotSpecified(item.LinkValue)
	case LinkProduct:
		return "Product: " + orNotSpecified(item.LinkValue)
	case LinkShop:
		return "Shop: " + orNotSpecified(item.LinkValue)
	case LinkBrand:
		return "Brand: " + orNotSpecified(item.LinkValue)
	case LinkPage:
		return "Page: " + orNotSpecified(item.LinkValue)
	case LinkCustom:
		return "Custom URL: " + orNotSpecified(item.URL)
	default:
		return "Unknown link type"
	}
}

func orNotSpecified(s string) string {
	if s == "" {
		return notSpecified
	}
	return s
}
