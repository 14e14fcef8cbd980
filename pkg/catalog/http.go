package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matst80/slask-browse/pkg/types"
)

var (
	noRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slaskbrowse_catalog_requests_total",
		Help: "The total number of catalog API requests",
	}, []string{"endpoint"})
	noRequestErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slaskbrowse_catalog_request_errors_total",
		Help: "The total number of failed catalog API requests",
	}, []string{"endpoint"})
)

const (
	searchPath         = "/v1/catalog/search"
	aggregatePath      = "/v1/catalog/aggregate"
	customizationsPath = "/v1/catalog/customizations/query"
	variantsPath       = "/v1/catalog/variants/query"
)

// HttpClient talks to the hosted catalog platform. It implements
// SearchClient, CustomizationClient and VariantClient.
type HttpClient struct {
	BaseUrl string
	Token   string
	Client  *http.Client
}

func NewHttpClient(baseUrl, token string) *HttpClient {
	return &HttpClient{
		BaseUrl: baseUrl,
		Token:   token,
		Client:  http.DefaultClient,
	}
}

func post[TReq any, TRes any](ctx context.Context, c *HttpClient, path string, payload *TReq) (*TRes, error) {
	noRequests.WithLabelValues(path).Inc()
	body, err := sonic.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseUrl+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", c.Token)
	}
	res, err := c.Client.Do(req)
	if err != nil {
		noRequestErrors.WithLabelValues(path).Inc()
		return nil, err
	}
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		noRequestErrors.WithLabelValues(path).Inc()
		return nil, err
	}
	if res.StatusCode >= 400 {
		noRequestErrors.WithLabelValues(path).Inc()
		return nil, fmt.Errorf("%s: status %d: %s", path, res.StatusCode, truncate(data, 256))
	}
	result := new(TRes)
	if err := sonic.Unmarshal(data, result); err != nil {
		noRequestErrors.WithLabelValues(path).Inc()
		return nil, fmt.Errorf("decode %s response: %w", path, err)
	}
	return result, nil
}

func truncate(data []byte, max int) string {
	if len(data) > max {
		return string(data[:max])
	}
	return string(data)
}

func (c *HttpClient) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	return post[SearchRequest, SearchResponse](ctx, c, searchPath, req)
}

func (c *HttpClient) Aggregate(ctx context.Context, req *AggregateRequest) (*AggregateResponse, error) {
	return post[AggregateRequest, AggregateResponse](ctx, c, aggregatePath, req)
}

type customizationsRequest struct {
	Paging CursorPaging `json:"paging"`
}

type customizationsResponse struct {
	Customizations []Customization `json:"customizations"`
	PagingMetadata PagingMetadata  `json:"pagingMetadata"`
}

func (c *HttpClient) ListCustomizations(ctx context.Context) ([]Customization, error) {
	all := []Customization{}
	cursor := ""
	for {
		req := &customizationsRequest{Paging: CursorPaging{Limit: 100, Cursor: cursor}}
		res, err := post[customizationsRequest, customizationsResponse](ctx, c, customizationsPath, req)
		if err != nil {
			return nil, err
		}
		all = append(all, res.Customizations...)
		cursor = res.PagingMetadata.Cursors.Next
		if cursor == "" || len(res.Customizations) == 0 {
			return all, nil
		}
	}
}

type variantsRequest struct {
	ProductIds []string     `json:"productIds"`
	Paging     CursorPaging `json:"paging"`
}

// VariantsByProductIds batches one query for all ids and follows the result
// cursor until exhausted.
func (c *HttpClient) VariantsByProductIds(ctx context.Context, productIds []string) ([]types.Variant, error) {
	all := []types.Variant{}
	cursor := ""
	for {
		req := &variantsRequest{ProductIds: productIds, Paging: CursorPaging{Limit: 100, Cursor: cursor}}
		res, err := post[variantsRequest, VariantPage](ctx, c, variantsPath, req)
		if err != nil {
			return nil, err
		}
		all = append(all, res.Variants...)
		cursor = res.PagingMetadata.Cursors.Next
		if cursor == "" || len(res.Variants) == 0 {
			return all, nil
		}
	}
}
