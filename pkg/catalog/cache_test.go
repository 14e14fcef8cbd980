package catalog

import (
	"context"
	"errors"
	"testing"
)

type countingSearchClient struct {
	aggregates int
	searches   int
	err        error
}

func (c *countingSearchClient) Search(_ context.Context, _ *SearchRequest) (*SearchResponse, error) {
	c.searches++
	return &SearchResponse{}, c.err
}

func (c *countingSearchClient) Aggregate(_ context.Context, _ *AggregateRequest) (*AggregateResponse, error) {
	c.aggregates++
	if c.err != nil {
		return nil, c.err
	}
	return (&AggregateResponse{}).WithScalar("minPrice", 10), nil
}

func TestCachingClientServesAggregateFromCache(t *testing.T) {
	inner := &countingSearchClient{}
	// no redis address: only the in-process layer
	client := NewCachingSearchClient(inner, NewCache("", "", 0))
	req := &AggregateRequest{Aggregations: []Aggregation{ScalarAgg("minPrice", FieldActualPrice, ScalarMin)}}

	first, err := client.Aggregate(context.Background(), req)
	if err != nil {
		t.Fatalf("first aggregate: %v", err)
	}
	second, err := client.Aggregate(context.Background(), req)
	if err != nil {
		t.Fatalf("second aggregate: %v", err)
	}
	if inner.aggregates != 1 {
		t.Errorf("expected one upstream call, got %d", inner.aggregates)
	}
	v1, _ := first.Scalar("minPrice")
	v2, _ := second.Scalar("minPrice")
	if v1 != 10 || v2 != 10 {
		t.Errorf("cached value differs: %v %v", v1, v2)
	}
}

func TestCachingClientDoesNotCacheErrors(t *testing.T) {
	inner := &countingSearchClient{err: errors.New("boom")}
	client := NewCachingSearchClient(inner, NewCache("", "", 0))
	req := &AggregateRequest{}

	if _, err := client.Aggregate(context.Background(), req); err == nil {
		t.Fatal("expected error")
	}
	inner.err = nil
	if _, err := client.Aggregate(context.Background(), req); err != nil {
		t.Fatalf("second call should reach upstream: %v", err)
	}
	if inner.aggregates != 2 {
		t.Errorf("expected both calls upstream, got %d", inner.aggregates)
	}
}

func TestCachingClientPassesSearchThrough(t *testing.T) {
	inner := &countingSearchClient{}
	client := NewCachingSearchClient(inner, NewCache("", "", 0))
	req := &SearchRequest{CursorPaging: CursorPaging{Limit: 20}}
	for i := 0; i < 2; i++ {
		if _, err := client.Search(context.Background(), req); err != nil {
			t.Fatalf("search: %v", err)
		}
	}
	if inner.searches != 2 {
		t.Errorf("item searches must not be cached, got %d upstream calls", inner.searches)
	}
}
