// Package sanitize cleans admin-entered text before it is stored.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer HTML 살균화 도구
type Sanitizer struct {
	rich   *bluemonday.Policy
	strict *bluemonday.Policy
}

// New 리치 텍스트(UGC 정책)와 일반 텍스트용 Sanitizer 생성
func New() *Sanitizer {
	rich := bluemonday.UGCPolicy()
	rich.RequireNoFollowOnLinks(true)
	rich.AddTargetBlankToFullyQualifiedLinks(true)
	// 상품 상세의 스펙 표
	rich.AllowElements("table", "thead", "tbody", "tr", "th", "td", "caption")

	return &Sanitizer{
		rich:   rich,
		strict: bluemonday.StrictPolicy(),
	}
}

// HTML keeps formatting tags and drops scripts, event handlers and unsafe URLs
func (s *Sanitizer) HTML(input string) string {
	if input == "" {
		return ""
	}
	return strings.TrimSpace(s.rich.Sanitize(input))
}

// Text strips every tag. Entities are decoded again so "A & B" survives as is;
// output is plain text and must be escaped by whoever renders it.
func (s *Sanitizer) Text(input string) string {
	if input == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(s.strict.Sanitize(input)))
}
