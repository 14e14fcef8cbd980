package browse

import (
	"context"
	"sync"

	"github.com/matst80/slask-browse/pkg/catalog"
	"github.com/matst80/slask-browse/pkg/types"
)

type fakeSearchClient struct {
	mu          sync.Mutex
	searchCalls []*catalog.SearchRequest
	aggCalls    []*catalog.AggregateRequest
	searchFn    func(*catalog.SearchRequest) (*catalog.SearchResponse, error)
	aggregateFn func(*catalog.AggregateRequest) (*catalog.AggregateResponse, error)
}

func (f *fakeSearchClient) Search(_ context.Context, req *catalog.SearchRequest) (*catalog.SearchResponse, error) {
	f.mu.Lock()
	f.searchCalls = append(f.searchCalls, req)
	f.mu.Unlock()
	if f.searchFn == nil {
		return &catalog.SearchResponse{}, nil
	}
	return f.searchFn(req)
}

func (f *fakeSearchClient) Aggregate(_ context.Context, req *catalog.AggregateRequest) (*catalog.AggregateResponse, error) {
	f.mu.Lock()
	f.aggCalls = append(f.aggCalls, req)
	f.mu.Unlock()
	if f.aggregateFn == nil {
		return &catalog.AggregateResponse{}, nil
	}
	return f.aggregateFn(req)
}

func (f *fakeSearchClient) searchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.searchCalls)
}

type fakeCustomizationClient struct {
	customizations []catalog.Customization
	err            error
}

func (f *fakeCustomizationClient) ListCustomizations(context.Context) ([]catalog.Customization, error) {
	return f.customizations, f.err
}

type fakeVariantClient struct {
	mu       sync.Mutex
	calls    [][]string
	variants []types.Variant
	err      error
}

func (f *fakeVariantClient) VariantsByProductIds(_ context.Context, productIds []string) ([]types.Variant, error) {
	f.mu.Lock()
	f.calls = append(f.calls, productIds)
	f.mu.Unlock()
	return f.variants, f.err
}

func pageOfItems(n int, prefix string) []types.CatalogItem {
	items := make([]types.CatalogItem, n)
	for i := range items {
		items[i] = types.CatalogItem{Id: prefix + string(rune('a'+i))}
	}
	return items
}

func priceAggregate(min, max float64) func(*catalog.AggregateRequest) (*catalog.AggregateResponse, error) {
	return func(*catalog.AggregateRequest) (*catalog.AggregateResponse, error) {
		return (&catalog.AggregateResponse{}).
			WithScalar(aggMinPrice, min).
			WithScalar(aggMaxPrice, max), nil
	}
}
