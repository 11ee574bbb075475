package elasticsearch

import (
	"context"
	"strconv"
)

// ProductIndex is the index name for catalog products
const ProductIndex = "products"

// ProductDocument is the searchable projection of a product
type ProductDocument struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	SKU          string  `json:"sku"`
	Summary      string  `json:"summary"`
	CategorySlug string  `json:"category_slug"`
	BrandSlug    string  `json:"brand_slug"`
	Price        float64 `json:"price"`
	Status       string  `json:"status"`
}

// ProductQuery narrows a product search
type ProductQuery struct {
	Text string
	// CategorySlugs matches any of the listed categories (a category and its descendants)
	CategorySlugs []string
	BrandSlug     string
	MinPrice      *float64
	MaxPrice      *float64
	From          int
	Size          int
}

var productMapping = map[string]interface{}{
	"mappings": map[string]interface{}{
		"properties": map[string]interface{}{
			"id":            map[string]interface{}{"type": "long"},
			"name":          map[string]interface{}{"type": "text"},
			"slug":          map[string]interface{}{"type": "keyword"},
			"sku":           map[string]interface{}{"type": "keyword"},
			"summary":       map[string]interface{}{"type": "text"},
			"category_slug": map[string]interface{}{"type": "keyword"},
			"brand_slug":    map[string]interface{}{"type": "keyword"},
			"price":         map[string]interface{}{"type": "double"},
			"status":        map[string]interface{}{"type": "keyword"},
		},
	},
}

// ProductSearch indexes and queries catalog products
type ProductSearch struct {
	client *Client
}

// NewProductSearch wraps client for the products index
func NewProductSearch(client *Client) *ProductSearch {
	return &ProductSearch{client: client}
}

// EnsureIndex creates the products index if missing
func (s *ProductSearch) EnsureIndex(ctx context.Context) error {
	return s.client.CreateIndex(ctx, ProductIndex, productMapping)
}

// Index upserts a product document
func (s *ProductSearch) Index(ctx context.Context, doc ProductDocument) error {
	return s.client.IndexDocument(ctx, ProductIndex, strconv.FormatInt(doc.ID, 10), doc)
}

// Remove deletes a product document
func (s *ProductSearch) Remove(ctx context.Context, id int64) error {
	return s.client.DeleteDocument(ctx, ProductIndex, strconv.FormatInt(id, 10))
}

// Search returns matching published product IDs in relevance order and the total hit count
func (s *ProductSearch) Search(ctx context.Context, q ProductQuery) ([]int64, int64, error) {
	resp, err := s.client.Search(ctx, ProductIndex, BuildProductQuery(q), q.From, q.Size)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int64, 0, len(resp.Results))
	for _, r := range resp.Results {
		id, err := strconv.ParseInt(r.ID, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, resp.Total, nil
}

// BuildProductQuery builds the bool query for q. Only published products match.
func BuildProductQuery(q ProductQuery) map[string]interface{} {
	filter := []interface{}{
		map[string]interface{}{"term": map[string]interface{}{"status": "published"}},
	}
	if len(q.CategorySlugs) > 0 {
		filter = append(filter, map[string]interface{}{"terms": map[string]interface{}{"category_slug": q.CategorySlugs}})
	}
	if q.BrandSlug != "" {
		filter = append(filter, map[string]interface{}{"term": map[string]interface{}{"brand_slug": q.BrandSlug}})
	}
	if q.MinPrice != nil || q.MaxPrice != nil {
		rng := map[string]interface{}{}
		if q.MinPrice != nil {
			rng["gte"] = *q.MinPrice
		}
		if q.MaxPrice != nil {
			rng["lte"] = *q.MaxPrice
		}
		filter = append(filter, map[string]interface{}{"range": map[string]interface{}{"price": rng}})
	}

	boolQuery := map[string]interface{}{"filter": filter}
	if q.Text != "" {
		boolQuery["must"] = []interface{}{
			map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":  q.Text,
					"fields": []string{"name^3", "sku^2", "summary"},
				},
			},
		}
	}

	return map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
	}
}
