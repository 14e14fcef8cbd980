package browse

import (
	"context"
	"log"

	"github.com/matst80/slask-browse/pkg/catalog"
	"github.com/matst80/slask-browse/pkg/reactive"
	"github.com/matst80/slask-browse/pkg/types"
)

const (
	aggMinPrice = "minPrice"
	aggMaxPrice = "maxPrice"
)

// PriceRangeLoader learns the catalog-wide (or category-scoped) price
// bounds through a zero-item aggregate query. A nil published range means
// "no meaningful price filter exists", which is not an error.
type PriceRangeLoader struct {
	CatalogPriceRange *reactive.Signal[*types.PriceRange]
	Error             *reactive.Signal[string]
	client            catalog.SearchClient
}

func NewPriceRangeLoader(client catalog.SearchClient) *PriceRangeLoader {
	return &PriceRangeLoader{
		CatalogPriceRange: reactive.NewSignal[*types.PriceRange](nil),
		Error:             reactive.NewSignal(""),
		client:            client,
	}
}

func visibilityFilter(categoryId string) map[string]any {
	clauses := []map[string]any{catalog.Eq(catalog.FieldVisible, true)}
	if categoryId != "" {
		clauses = append(clauses, catalog.HasSome(catalog.FieldCollectionIds, []string{categoryId}))
	}
	return catalog.Conjoin(clauses)
}

// LoadCatalogPriceRange publishes the MIN/MAX of the actual price over the
// visible catalog, scoped to categoryId when given. Failures publish nil
// and set the error signal; they never propagate.
func (l *PriceRangeLoader) LoadCatalogPriceRange(ctx context.Context, categoryId string) {
	req := &catalog.AggregateRequest{
		Filter: visibilityFilter(categoryId),
		Aggregations: []catalog.Aggregation{
			catalog.ScalarAgg(aggMinPrice, catalog.FieldActualPrice, catalog.ScalarMin),
			catalog.ScalarAgg(aggMaxPrice, catalog.FieldActualPrice, catalog.ScalarMax),
		},
		IncludeProducts: false,
		CursorPaging:    catalog.CursorPaging{Limit: 0},
	}
	res, err := l.client.Aggregate(ctx, req)
	if err != nil {
		log.Printf("price aggregate failed: %v", err)
		l.Error.Set(err.Error())
		l.CatalogPriceRange.Set(nil)
		return
	}
	minPrice, okMin := res.Scalar(aggMinPrice)
	maxPrice, okMax := res.Scalar(aggMaxPrice)
	if okMin && okMax && (minPrice > 0 || maxPrice > 0) {
		l.Error.Set("")
		l.CatalogPriceRange.Set(&types.PriceRange{Min: minPrice, Max: maxPrice})
		return
	}
	l.CatalogPriceRange.Set(nil)
}
