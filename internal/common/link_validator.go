package common

import (
	"net/url"
	"slices"
	"strings"
)

// Schemes accepted for absolute custom links
var allowedLinkSchemes = []string{"http", "https", "mailto", "tel"}

// ValidateCustomURL checks a literal link entered in the admin.
// Site-relative paths ("/promo"), fragments ("#top") and absolute URLs with an
// allowed scheme pass; script schemes and protocol-relative hosts do not.
func ValidateCustomURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ErrInvalidInput
	}

	if strings.HasPrefix(raw, "#") {
		return nil
	}
	if strings.HasPrefix(raw, "/") {
		if strings.HasPrefix(raw, "//") {
			return ErrUnsafeURL
		}
		return nil
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return ErrInvalidInput
	}
	if !slices.Contains(allowedLinkSchemes, strings.ToLower(u.Scheme)) {
		return ErrUnsafeURL
	}
	return nil
}
