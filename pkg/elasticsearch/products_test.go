package elasticsearch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildProductQuery_PublishedOnly(t *testing.T) {
	q := BuildProductQuery(ProductQuery{})

	boolQuery := q["query"].(map[string]interface{})["bool"].(map[string]interface{})
	filter := boolQuery["filter"].([]interface{})
	require.Len(t, filter, 1)
	assert.NotContains(t, boolQuery, "must")
}

func TestBuildProductQuery_AllFilters(t *testing.T) {
	minPrice, maxPrice := 100.0, 900.0
	q := BuildProductQuery(ProductQuery{
		Text:          "rtx",
		CategorySlugs: []string{"gpus", "workstation-gpus"},
		BrandSlug:     "asus",
		MinPrice:      &minPrice,
		MaxPrice:      &maxPrice,
	})

	boolQuery := q["query"].(map[string]interface{})["bool"].(map[string]interface{})
	filter := boolQuery["filter"].([]interface{})
	assert.Len(t, filter, 4)

	terms := filter[1].(map[string]interface{})["terms"].(map[string]interface{})
	assert.Equal(t, []string{"gpus", "workstation-gpus"}, terms["category_slug"])

	rng := filter[3].(map[string]interface{})["range"].(map[string]interface{})["price"].(map[string]interface{})
	assert.Equal(t, 100.0, rng["gte"])
	assert.Equal(t, 900.0, rng["lte"])

	must := boolQuery["must"].([]interface{})
	mm := must[0].(map[string]interface{})["multi_match"].(map[string]interface{})
	assert.Equal(t, "rtx", mm["query"])
}

func TestDecodeSearchResponse(t *testing.T) {
	body := `{"hits":{"total":{"value":2},"hits":[
		{"_id":"12","_score":3.5,"_source":{"name":"RTX 4070"}},
		{"_id":"7","_score":1.0,"_source":{"name":"RTX 4060"}}]}}`

	resp, err := decodeSearchResponse(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Total)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "12", resp.Results[0].ID)
	assert.Equal(t, "RTX 4070", resp.Results[0].Source["name"])
}

func TestDecodeSearchResponse_Invalid(t *testing.T) {
	_, err := decodeSearchResponse(strings.NewReader("{"))
	assert.Error(t, err)
}
