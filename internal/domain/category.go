package domain

import (
	"bytes"
	"encoding/json"
	"slices"
	"sort"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/damoang/pcmall-backend/pkg/slug"
)

// Spec field types
const (
	SpecTypeText    = "text"
	SpecTypeNumber  = "number"
	SpecTypeSelect  = "select"
	SpecTypeBoolean = "boolean"
)

var specTypes = []string{SpecTypeText, SpecTypeNumber, SpecTypeSelect, SpecTypeBoolean}

// Category 상품 카테고리 (트리)
// Table: categories
type Category struct {
	ID           int64          `gorm:"column:id;primaryKey" json:"id"`
	ParentID     *int64         `gorm:"column:parent_id;index" json:"parent_id"`
	Name         string         `gorm:"column:name;size:100;not null" json:"name"`
	Slug         string         `gorm:"column:slug;size:120;not null;uniqueIndex" json:"slug"`
	Description  string         `gorm:"column:description;type:text" json:"description,omitempty"`
	ImageURL     string         `gorm:"column:image_url;size:500" json:"image_url,omitempty"`
	SpecTemplate datatypes.JSON `gorm:"column:spec_template" json:"-"`
	SortOrder    int            `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	IsActive     bool           `gorm:"column:is_active;not null" json:"is_active"`
	CreatedAt    time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

// TableName GORM 테이블명
func (Category) TableName() string {
	return "categories"
}

// SpecField one attribute products of a category are described by
type SpecField struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Unit     string   `json:"unit,omitempty"`
	Options  []string `json:"options,omitempty"`
	Required bool     `json:"required,omitempty"`
}

// ParseSpecTemplate decodes a stored spec template.
//
// Stored templates come from several admin generations, so every shape seen
// in the wild is accepted: a field array, that array JSON-encoded again as a
// string, {"fields": [...]}, a {key: label} object, or a list of bare labels.
// Anything unreadable yields an empty list.
func ParseSpecTemplate(raw []byte) []SpecField {
	return parseSpecTemplate(raw, 0)
}

func parseSpecTemplate(raw []byte, depth int) []SpecField {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || depth > 2 {
		return []SpecField{}
	}

	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return []SpecField{}
	}

	switch t := v.(type) {
	case string:
		return parseSpecTemplate([]byte(t), depth+1)
	case []interface{}:
		return specFieldsFromList(t)
	case map[string]interface{}:
		if list, ok := t["fields"].([]interface{}); ok {
			return specFieldsFromList(list)
		}
		return specFieldsFromMap(t)
	default:
		return []SpecField{}
	}
}

func specFieldsFromList(list []interface{}) []SpecField {
	fields := make([]SpecField, 0, len(list))
	for _, el := range list {
		var f SpecField
		switch e := el.(type) {
		case string:
			f = SpecField{Label: e}
		case map[string]interface{}:
			f = specFieldFromObject(e)
		default:
			continue
		}
		fields = appendSpecField(fields, f)
	}
	return fields
}

func specFieldsFromMap(m map[string]interface{}) []SpecField {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]SpecField, 0, len(keys))
	for _, k := range keys {
		label, _ := m[k].(string)
		if label == "" {
			label = k
		}
		fields = appendSpecField(fields, SpecField{Key: k, Label: label})
	}
	return fields
}

func specFieldFromObject(o map[string]interface{}) SpecField {
	f := SpecField{}
	f.Key, _ = o["key"].(string)
	f.Label, _ = o["label"].(string)
	if f.Label == "" {
		f.Label, _ = o["name"].(string)
	}
	f.Type, _ = o["type"].(string)
	f.Unit, _ = o["unit"].(string)
	f.Required, _ = o["required"].(bool)
	if opts, ok := o["options"].([]interface{}); ok {
		for _, opt := range opts {
			if s, ok := opt.(string); ok && strings.TrimSpace(s) != "" {
				f.Options = append(f.Options, strings.TrimSpace(s))
			}
		}
	}
	return f
}

// appendSpecField normalises f and appends it unless it is empty or its key is taken
func appendSpecField(fields []SpecField, f SpecField) []SpecField {
	f.Label = strings.TrimSpace(f.Label)
	f.Key = strings.TrimSpace(f.Key)
	if f.Key == "" {
		f.Key = slug.Key(f.Label)
	}
	if f.Key == "" {
		return fields
	}
	if f.Label == "" {
		f.Label = f.Key
	}
	f.Type = strings.ToLower(strings.TrimSpace(f.Type))
	if !slices.Contains(specTypes, f.Type) {
		f.Type = SpecTypeText
	}
	for _, existing := range fields {
		if existing.Key == f.Key {
			return fields
		}
	}
	return append(fields, f)
}

// CategoryResponse 카테고리 응답
type CategoryResponse struct {
	ID           int64              `json:"id"`
	ParentID     *int64             `json:"parent_id"`
	Name         string             `json:"name"`
	Slug         string             `json:"slug"`
	Description  string             `json:"description,omitempty"`
	ImageURL     string             `json:"image_url,omitempty"`
	SpecTemplate []SpecField        `json:"spec_template"`
	SortOrder    int                `json:"sort_order"`
	IsActive     bool               `json:"is_active"`
	ProductCount int64              `json:"product_count"`
	Children     []CategoryResponse `json:"children,omitempty"`
}

// ToResponse Category를 CategoryResponse로 변환
func (c *Category) ToResponse() CategoryResponse {
	return CategoryResponse{
		ID:           c.ID,
		ParentID:     c.ParentID,
		Name:         c.Name,
		Slug:         c.Slug,
		Description:  c.Description,
		ImageURL:     c.ImageURL,
		SpecTemplate: ParseSpecTemplate(c.SpecTemplate),
		SortOrder:    c.SortOrder,
		IsActive:     c.IsActive,
	}
}

// CreateCategoryRequest 카테고리 생성 요청
type CreateCategoryRequest struct {
	ParentID     *int64      `json:"parent_id"`
	Name         string      `json:"name" binding:"required,max=100"`
	Slug         string      `json:"slug" binding:"omitempty,max=120"`
	Description  string      `json:"description"`
	ImageURL     string      `json:"image_url" binding:"omitempty,max=500"`
	SpecTemplate []SpecField `json:"spec_template" binding:"omitempty,dive"`
	SortOrder    int         `json:"sort_order"`
	IsActive     *bool       `json:"is_active"`
}

// UpdateCategoryRequest 카테고리 수정 요청. parent_id 0 은 최상위로 이동.
type UpdateCategoryRequest struct {
	ParentID     *int64       `json:"parent_id"`
	Name         *string      `json:"name" binding:"omitempty,max=100"`
	Slug         *string      `json:"slug" binding:"omitempty,max=120"`
	Description  *string      `json:"description"`
	ImageURL     *string      `json:"image_url" binding:"omitempty,max=500"`
	SpecTemplate *[]SpecField `json:"spec_template"`
	SortOrder    *int         `json:"sort_order"`
	IsActive     *bool        `json:"is_active"`
}

// EncodeSpecTemplate normalises fields and encodes them in the canonical stored form
func EncodeSpecTemplate(fields []SpecField) (datatypes.JSON, error) {
	normalised := make([]SpecField, 0, len(fields))
	for _, f := range fields {
		normalised = appendSpecField(normalised, f)
	}
	data, err := json.Marshal(normalised)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}
