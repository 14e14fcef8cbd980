package catalog

import (
	"strconv"

	"github.com/matst80/slask-browse/pkg/types"
)

type Cursors struct {
	Next string `json:"next,omitempty"`
}

type PagingMetadata struct {
	Count   int     `json:"count,omitempty"`
	Total   int     `json:"total,omitempty"`
	Cursors Cursors `json:"cursors"`
}

// SearchResponse is the primary query result.
type SearchResponse struct {
	Items          []types.CatalogItem `json:"items"`
	PagingMetadata PagingMetadata      `json:"pagingMetadata"`
}

func (r *SearchResponse) NextCursor() string {
	return r.PagingMetadata.Cursors.Next
}

// The aggregate payload is schema-less: results keyed by aggregation name,
// each either a VALUE result list or a SCALAR value, under one of two
// top-level keys depending on API version. It stays untyped until the
// accessors below; nothing outside this file touches the raw shape.

type aggregationValue struct {
	Value any `json:"value"`
}

type aggregationValues struct {
	Results []aggregationValue `json:"results"`
}

type aggregationScalar struct {
	Value float64 `json:"value"`
}

type aggregationResult struct {
	Values *aggregationValues `json:"values,omitempty"`
	Scalar *aggregationScalar `json:"scalar,omitempty"`
}

// AggregateResponse is the zero-item aggregate result.
type AggregateResponse struct {
	Aggregations    map[string]aggregationResult `json:"aggregations,omitempty"`
	AggregationData map[string]aggregationResult `json:"aggregationData,omitempty"`
}

// WithScalar and WithValues assemble responses without the wire codec,
// for fakes and fixtures.
func (r *AggregateResponse) WithScalar(name string, value float64) *AggregateResponse {
	if r.Aggregations == nil {
		r.Aggregations = map[string]aggregationResult{}
	}
	r.Aggregations[name] = aggregationResult{Scalar: &aggregationScalar{Value: value}}
	return r
}

func (r *AggregateResponse) WithValues(name string, values ...string) *AggregateResponse {
	results := make([]aggregationValue, len(values))
	for i, v := range values {
		results[i] = aggregationValue{Value: v}
	}
	if r.Aggregations == nil {
		r.Aggregations = map[string]aggregationResult{}
	}
	r.Aggregations[name] = aggregationResult{Values: &aggregationValues{Results: results}}
	return r
}

func (r *AggregateResponse) result(name string) (aggregationResult, bool) {
	if res, ok := r.Aggregations[name]; ok {
		return res, true
	}
	res, ok := r.AggregationData[name]
	return res, ok
}

// Scalar returns the named SCALAR aggregation value.
func (r *AggregateResponse) Scalar(name string) (float64, bool) {
	res, ok := r.result(name)
	if !ok || res.Scalar == nil {
		return 0, false
	}
	return res.Scalar.Value, true
}

// Values returns the named VALUE aggregation results as strings. Numeric
// values are formatted, absent entries yield nil.
func (r *AggregateResponse) Values(name string) []string {
	res, ok := r.result(name)
	if !ok || res.Values == nil {
		return nil
	}
	out := make([]string, 0, len(res.Values.Results))
	for _, v := range res.Values.Results {
		switch value := v.Value.(type) {
		case string:
			if value != "" {
				out = append(out, value)
			}
		case float64:
			out = append(out, strconv.FormatFloat(value, 'f', -1, 64))
		}
	}
	return out
}

// Customization is a product option definition: which choices belong to
// which named option, including color metadata for swatches.
type Customization struct {
	Id         string                `json:"id"`
	Name       string                `json:"name"`
	RenderType string                `json:"customizationRenderType,omitempty"`
	Choices    []CustomizationChoice `json:"choices,omitempty"`
}

type CustomizationChoice struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	ColorCode string `json:"colorCode,omitempty"`
}

// VariantPage is one page of a variants-by-product-ids query.
type VariantPage struct {
	Variants       []types.Variant `json:"variants"`
	PagingMetadata PagingMetadata  `json:"pagingMetadata"`
}
