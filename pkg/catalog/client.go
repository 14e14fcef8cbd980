package catalog

import (
	"context"

	"github.com/matst80/slask-browse/pkg/types"
)

// SearchClient is the catalog search endpoint: item queries plus the
// aggregate-only mode.
type SearchClient interface {
	Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error)
	Aggregate(ctx context.Context, req *AggregateRequest) (*AggregateResponse, error)
}

// CustomizationClient returns the structured option definitions.
type CustomizationClient interface {
	ListCustomizations(ctx context.Context) ([]Customization, error)
}

// VariantClient resolves variants for a batch of product ids. The
// implementation follows result cursors internally; callers always get the
// complete set.
type VariantClient interface {
	VariantsByProductIds(ctx context.Context, productIds []string) ([]types.Variant, error)
}
