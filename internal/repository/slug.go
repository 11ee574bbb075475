package repository

import (
	"fmt"

	"gorm.io/gorm"
)

// isSlugAvailable 슬러그 사용 가능 여부 (excludeID 는 수정 중인 자기 자신)
func isSlugAvailable(db *gorm.DB, model interface{}, slug string, excludeID int64) (bool, error) {
	var count int64
	query := db.Model(model).Where("slug = ?", slug)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

// ensureUniqueSlug appends -1, -2, ... until slug is free
func ensureUniqueSlug(db *gorm.DB, model interface{}, slug string, excludeID int64) (string, error) {
	candidate := slug
	for counter := 1; ; counter++ {
		available, err := isSlugAvailable(db, model, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if available {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", slug, counter)
	}
}
