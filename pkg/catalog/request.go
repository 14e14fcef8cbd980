package catalog

// CursorPaging is the opaque-cursor pagination block of a search request.
type CursorPaging struct {
	Limit  int    `json:"limit"`
	Cursor string `json:"cursor,omitempty"`
}

// SortClause is one explicit field ordering.
type SortClause struct {
	FieldName string `json:"fieldName"`
	Order     string `json:"order"`
}

const (
	OrderAsc  = "ASC"
	OrderDesc = "DESC"
)

// RecommendedScope asks the server for its own computed ordering, scoped to
// a category when one is set.
type RecommendedScope struct {
	CategoryId string `json:"categoryId,omitempty"`
}

// SearchRequest is the primary item query. A cursor-only continuation
// carries neither filter nor sort; the server cursor encodes the
// originating query.
type SearchRequest struct {
	Filter         map[string]any    `json:"filter,omitempty"`
	Sort           []SortClause      `json:"sort,omitempty"`
	RecommendedFor *RecommendedScope `json:"recommendedFor,omitempty"`
	CursorPaging   CursorPaging      `json:"cursorPaging"`
	Fields         []string          `json:"fields,omitempty"`
}

// Aggregation types accepted by the aggregate-only mode.
const (
	AggregationScalar = "SCALAR"
	AggregationValue  = "VALUE"

	ScalarMin = "MIN"
	ScalarMax = "MAX"
)

type ScalarAggregation struct {
	Type string `json:"type"`
}

type ValueAggregation struct {
	Limit int `json:"limit"`
}

// Aggregation names one MIN/MAX scalar or distinct-values computation over
// a field path.
type Aggregation struct {
	Name      string             `json:"name"`
	Type      string             `json:"type"`
	FieldPath string             `json:"fieldPath"`
	Scalar    *ScalarAggregation `json:"scalar,omitempty"`
	Value     *ValueAggregation  `json:"value,omitempty"`
}

// AggregateRequest is a zero-item search carrying only aggregations.
// IncludeProducts is always false and the paging limit zero; the server
// computes aggregates over everything the filter matches.
type AggregateRequest struct {
	Filter          map[string]any `json:"filter,omitempty"`
	Aggregations    []Aggregation  `json:"aggregations"`
	IncludeProducts bool           `json:"includeProducts"`
	CursorPaging    CursorPaging   `json:"cursorPaging"`
}

func ScalarAgg(name, fieldPath, scalarType string) Aggregation {
	return Aggregation{
		Name:      name,
		Type:      AggregationScalar,
		FieldPath: fieldPath,
		Scalar:    &ScalarAggregation{Type: scalarType},
	}
}

func ValueAgg(name, fieldPath string, limit int) Aggregation {
	return Aggregation{
		Name:      name,
		Type:      AggregationValue,
		FieldPath: fieldPath,
		Value:     &ValueAggregation{Limit: limit},
	}
}
