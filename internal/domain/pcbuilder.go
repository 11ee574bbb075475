package domain

// PC 견적 상태
const (
	PCBuilderComingSoon = "coming_soon"
)

// PCBuilderSlot 견적 슬롯 정의 (CPU, 메인보드, ...)
type PCBuilderSlot struct {
	Key          string `json:"key"`
	Label        string `json:"label"`
	CategorySlug string `json:"category_slug"`
	Required     bool   `json:"required"`
	ProductCount int64  `json:"product_count"`
	Available    bool   `json:"available"`
}

// PCBuilderResponse GET /api/pc-builder
type PCBuilderResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Slots   []PCBuilderSlot `json:"slots"`
}
