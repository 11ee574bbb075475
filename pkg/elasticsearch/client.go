package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	pkglogger "github.com/damoang/pcmall-backend/pkg/logger"
)

// Client wraps the Elasticsearch client with convenience methods
type Client struct {
	es *elasticsearch.Client
}

// NewClient creates a new Elasticsearch client and pings the cluster
func NewClient(addresses []string, username, password string) (*Client, error) {
	cfg := elasticsearch.Config{
		Addresses: addresses,
	}
	if username != "" {
		cfg.Username = username
		cfg.Password = password
	}

	es, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client creation failed: %w", err)
	}

	res, err := es.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch connection failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	pkglogger.GetLogger().Info().Strs("addresses", addresses).Msg("connected to Elasticsearch")
	return &Client{es: es}, nil
}

// IndexDocument indexes a single document
func (c *Client) IndexDocument(ctx context.Context, index, docID string, body interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      index,
		DocumentID: docID,
		Body:       bytes.NewReader(data),
		Refresh:    "false",
	}

	res, err := req.Do(ctx, c.es)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return responseError("index", res)
	}
	return nil
}

// DeleteDocument removes a document from an index
func (c *Client) DeleteDocument(ctx context.Context, index, docID string) error {
	req := esapi.DeleteRequest{
		Index:      index,
		DocumentID: docID,
	}

	res, err := req.Do(ctx, c.es)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	// 404 is ok (document already gone)
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("delete", res)
	}
	return nil
}

// SearchResult represents a single search hit
type SearchResult struct {
	ID     string                 `json:"id"`
	Score  float64                `json:"score"`
	Source map[string]interface{} `json:"source"`
}

// SearchResponse holds search results
type SearchResponse struct {
	Total   int64          `json:"total"`
	Results []SearchResult `json:"results"`
}

// Search performs a search query
func (c *Client) Search(ctx context.Context, index string, query map[string]interface{}, from, size int) (*SearchResponse, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, err
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(index),
		c.es.Search.WithBody(&buf),
		c.es.Search.WithFrom(from),
		c.es.Search.WithSize(size),
		c.es.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, responseError("search", res)
	}

	return decodeSearchResponse(res.Body)
}

// CreateIndex creates an index with the given mapping unless it already exists
func (c *Client) CreateIndex(ctx context.Context, index string, mapping map[string]interface{}) error {
	res, err := c.es.Indices.Exists([]string{index}, c.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return err
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(mapping); err != nil {
		return fmt.Errorf("failed to encode index mapping: %w", err)
	}

	res, err = c.es.Indices.Create(index, c.es.Indices.Create.WithBody(&buf), c.es.Indices.Create.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		if !strings.Contains(string(body), "resource_already_exists_exception") {
			return fmt.Errorf("create index error: %s", string(body))
		}
	}
	return nil
}

func responseError(op string, res *esapi.Response) error {
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("%s error [%s]: failed to read response body: %w", op, res.Status(), err)
	}
	return fmt.Errorf("%s error [%s]: %s", op, res.Status(), string(body))
}

type rawSearchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID     string                 `json:"_id"`
			Score  float64                `json:"_score"`
			Source map[string]interface{} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func decodeSearchResponse(r io.Reader) (*SearchResponse, error) {
	var raw rawSearchResponse
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	resp := &SearchResponse{
		Total:   raw.Hits.Total.Value,
		Results: make([]SearchResult, 0, len(raw.Hits.Hits)),
	}
	for _, h := range raw.Hits.Hits {
		resp.Results = append(resp.Results, SearchResult{ID: h.ID, Score: h.Score, Source: h.Source})
	}
	return resp, nil
}
