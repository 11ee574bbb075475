package service

import (
	"errors"
	"strings"

	"github.com/damoang/pcmall-backend/pkg/slug"
)

// 슬러그 에러
var (
	ErrSlugAlreadyExists = errors.New("slug already exists")
	ErrInvalidSlug       = errors.New("slug must be lowercase letters, digits and single hyphens")
)

// resolveSlug returns the slug to store. An explicit slug must be canonical
// and free; otherwise one is derived from name and the repository makes it
// unique on insert.
func resolveSlug(explicit, name string, excludeID int64, available func(string, int64) (bool, error)) (string, error) {
	explicit = strings.TrimSpace(explicit)
	if explicit == "" {
		derived := slug.Make(name)
		if derived == "" {
			return "", ErrInvalidSlug
		}
		return derived, nil
	}

	explicit = strings.ToLower(explicit)
	if !slug.IsValid(explicit) {
		return "", ErrInvalidSlug
	}
	ok, err := available(explicit, excludeID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrSlugAlreadyExists
	}
	return explicit, nil
}
