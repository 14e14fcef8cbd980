package browse

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matst80/slask-browse/pkg/catalog"
	"github.com/matst80/slask-browse/pkg/reactive"
	"github.com/matst80/slask-browse/pkg/tracking"
	"github.com/matst80/slask-browse/pkg/types"
)

var (
	noRefreshes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slaskbrowse_refreshes_total",
		Help: "The total number of collection refreshes",
	})
	noDroppedRefreshes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slaskbrowse_refreshes_dropped_total",
		Help: "The total number of refresh attempts dropped while one was in flight",
	})
	noLoadMores = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slaskbrowse_loadmore_total",
		Help: "The total number of load-more fetches",
	})
)

const (
	DefaultPageSize      = 20
	DefaultDebounceDelay = 50 * time.Millisecond
)

type CollectionStoreOptions struct {
	Search        catalog.SearchClient
	Variants      catalog.VariantClient
	Filters       *FilterStore
	Sort          *SortStore
	Category      *CategoryStore
	PriceLoader   *PriceRangeLoader
	OptionsLoader *CatalogOptionsLoader
	Tracker       tracking.Tracker
	PageSize      int
	DebounceDelay time.Duration
	Clock         reactive.Clock
	// InitialPage seeds the store from a server-rendered first page so no
	// fetch happens on construction.
	InitialPage *types.CollectionPage
}

// CollectionStore owns the accumulated result list and its pagination
// state. It reads the category/sort/filter stores and refreshes through a
// debounced, overlap-guarded fetch; it never duplicates their state.
type CollectionStore struct {
	Products        *reactive.Signal[[]types.CatalogItem]
	IsLoading       *reactive.Signal[bool]
	Error           *reactive.Signal[string]
	TotalProducts   *reactive.Signal[int]
	HasMoreProducts *reactive.Signal[bool]

	search        catalog.SearchClient
	variants      catalog.VariantClient
	filters       *FilterStore
	sortStore     *SortStore
	category      *CategoryStore
	priceLoader   *PriceRangeLoader
	optionsLoader *CatalogOptionsLoader
	tracker       tracking.Tracker
	pageSize      int
	debouncer     *reactive.Debouncer

	mu           sync.Mutex
	nextCursor   string
	inFlight     bool
	initializing bool

	dispose []func()
}

func NewCollectionStore(opts CollectionStoreOptions) *CollectionStore {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	delay := opts.DebounceDelay
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	c := &CollectionStore{
		Products:        reactive.NewSignal([]types.CatalogItem{}),
		IsLoading:       reactive.NewSignal(false),
		Error:           reactive.NewSignal(""),
		TotalProducts:   reactive.NewSignal(0),
		HasMoreProducts: reactive.NewSignal(false),
		search:          opts.Search,
		variants:        opts.Variants,
		filters:         opts.Filters,
		sortStore:       opts.Sort,
		category:        opts.Category,
		priceLoader:     opts.PriceLoader,
		optionsLoader:   opts.OptionsLoader,
		tracker:         opts.Tracker,
		pageSize:        pageSize,
		debouncer:       reactive.NewDebouncer(delay, opts.Clock),
	}
	if opts.InitialPage != nil {
		c.Products.Set(opts.InitialPage.Items)
		c.TotalProducts.Set(opts.InitialPage.Total)
		c.HasMoreProducts.Set(opts.InitialPage.HasMore)
		c.nextCursor = opts.InitialPage.Cursor
	}
	if c.filters != nil {
		c.dispose = append(c.dispose, reactive.Effect(func() {
			// while the aggregate loaders run their first load the filter
			// store adopts catalog bounds, which must not cause a second
			// startup fetch
			if c.isInitializing() {
				return
			}
			c.DebouncedRefresh()
		}, c.filters.CurrentFilters))
	}
	if c.sortStore != nil {
		c.dispose = append(c.dispose, reactive.Effect(func() {
			c.DebouncedRefresh()
		}, c.sortStore.CurrentSort))
	}
	if c.category != nil {
		c.dispose = append(c.dispose, reactive.Effect(func() {
			c.DebouncedRefresh()
			// the category changes what is filterable
			go c.reloadAggregates(context.Background())
		}, c.category.SelectedCategory))
	}
	return c
}

// Init runs the aggregate loaders' first load with the filter-triggered
// refresh suppressed, so startup performs no redundant duplicate fetch.
func (c *CollectionStore) Init(ctx context.Context) {
	c.mu.Lock()
	c.initializing = true
	c.mu.Unlock()
	c.reloadAggregates(ctx)
	c.mu.Lock()
	c.initializing = false
	c.mu.Unlock()
}

func (c *CollectionStore) isInitializing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initializing
}

func (c *CollectionStore) reloadAggregates(ctx context.Context) {
	categoryId := c.selectedCategory()
	if c.priceLoader != nil {
		c.priceLoader.LoadCatalogPriceRange(ctx, categoryId)
	}
	if c.optionsLoader != nil {
		c.optionsLoader.LoadCatalogOptions(ctx, categoryId)
	}
}

func (c *CollectionStore) selectedCategory() string {
	if c.category == nil {
		return ""
	}
	return c.category.SelectedCategory.Get()
}

func (c *CollectionStore) HasProducts() bool {
	return len(c.Products.Get()) > 0
}

// Close disposes the reactive effects.
func (c *CollectionStore) Close() {
	for _, d := range c.dispose {
		d()
	}
}

// begin claims the in-flight slot, or reports the attempt as dropped. An
// overlapping attempt is dropped, not queued; latest-wins comes from the
// debounce layer, not from cancellation.
func (c *CollectionStore) begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return false
	}
	c.inFlight = true
	return true
}

func (c *CollectionStore) end() {
	c.mu.Lock()
	c.inFlight = false
	c.mu.Unlock()
}

// Refresh rebuilds the request from the current store values, resets the
// cursor and replaces the item list. A failed fetch records the error and
// leaves the previous items untouched.
func (c *CollectionStore) Refresh(ctx context.Context, setTotal bool) error {
	if !c.begin() {
		noDroppedRefreshes.Inc()
		return nil
	}
	defer c.end()
	noRefreshes.Inc()
	c.IsLoading.Set(true)
	defer c.IsLoading.Set(false)

	req := c.buildSearchRequest()
	res, err := c.search.Search(ctx, req)
	if err != nil {
		log.Printf("collection refresh failed: %v", err)
		c.Error.Set(err.Error())
		return err
	}
	items := c.backfillVariants(ctx, res.Items)
	next := res.NextCursor()

	c.mu.Lock()
	c.nextCursor = next
	c.mu.Unlock()
	c.Error.Set("")
	c.Products.Set(items)
	c.HasMoreProducts.Set(next != "" && len(items) == c.pageSize)
	if setTotal {
		c.TotalProducts.Set(res.PagingMetadata.Total)
	}
	if c.tracker != nil {
		sortKey := types.DefaultSort
		if c.sortStore != nil {
			sortKey = c.sortStore.CurrentSort.Get()
		}
		c.tracker.TrackSearch(c.selectedCategory(), sortKey, res.PagingMetadata.Total)
	}
	return nil
}

// LoadMore fetches the next page through the stored cursor. The request
// carries no filter, sort or category clauses; the server cursor already
// encodes the originating query.
func (c *CollectionStore) LoadMore(ctx context.Context) error {
	if !c.HasMoreProducts.Get() {
		return nil
	}
	if !c.begin() {
		return nil
	}
	defer c.end()
	noLoadMores.Inc()
	c.IsLoading.Set(true)
	defer c.IsLoading.Set(false)

	c.mu.Lock()
	cursor := c.nextCursor
	c.mu.Unlock()
	req := &catalog.SearchRequest{
		CursorPaging: catalog.CursorPaging{Limit: c.pageSize, Cursor: cursor},
	}
	res, err := c.search.Search(ctx, req)
	if err != nil {
		log.Printf("load more failed: %v", err)
		c.Error.Set(err.Error())
		return err
	}
	items := c.backfillVariants(ctx, res.Items)
	next := res.NextCursor()

	c.mu.Lock()
	c.nextCursor = next
	c.mu.Unlock()
	existing := c.Products.Get()
	combined := make([]types.CatalogItem, 0, len(existing)+len(items))
	combined = append(combined, existing...)
	combined = append(combined, items...)
	c.Error.Set("")
	c.Products.Set(combined)
	// a short page is the end even when a cursor is present, saving an
	// empty round-trip
	c.HasMoreProducts.Set(next != "" && len(items) == c.pageSize)
	if c.tracker != nil {
		c.tracker.TrackLoadMore(len(items))
	}
	return nil
}

// DebouncedRefresh coalesces bursts of refresh triggers into one fetch
// shortly after the last trigger. The returned channel closes when the
// coalesced refresh has completed.
func (c *CollectionStore) DebouncedRefresh() <-chan struct{} {
	return c.debouncer.Trigger(func() {
		if err := c.Refresh(context.Background(), true); err != nil {
			log.Printf("debounced refresh: %v", err)
		}
	})
}

func (c *CollectionStore) buildSearchRequest() *catalog.SearchRequest {
	clauses := []map[string]any{}
	categoryId := c.selectedCategory()
	if categoryId != "" {
		clauses = append(clauses, catalog.HasSome(catalog.FieldCollectionIds, []string{categoryId}))
	}
	if c.filters != nil {
		criteria := c.filters.CurrentFilters.Get()
		available := c.filters.AvailableOptions.Get()
		if criteria.PriceRange.Min > 0 && criteria.PriceRange.Min > available.PriceRange.Min {
			clauses = append(clauses, catalog.Gte(catalog.FieldActualPrice, criteria.PriceRange.Min))
		}
		if criteria.PriceRange.Max > 0 && criteria.PriceRange.Max < available.PriceRange.Max {
			clauses = append(clauses, catalog.Lte(catalog.FieldActualPrice, criteria.PriceRange.Max))
		}
		optionIds := make([]string, 0, len(criteria.SelectedOptions))
		for optionId := range criteria.SelectedOptions {
			optionIds = append(optionIds, optionId)
		}
		// stable clause order keeps equal states producing equal requests
		sort.Strings(optionIds)
		for _, optionId := range optionIds {
			choices := criteria.SelectedOptions[optionId]
			if optionId == types.AvailabilityOptionId {
				clauses = append(clauses, catalog.HasSome(catalog.FieldInventoryStatus, choices))
			} else {
				clauses = append(clauses, catalog.HasSome(catalog.FieldChoiceIds, choices))
			}
		}
	}
	req := &catalog.SearchRequest{
		Filter:       catalog.Conjoin(clauses),
		CursorPaging: catalog.CursorPaging{Limit: c.pageSize},
	}
	c.applySort(req, categoryId)
	return req
}

func (c *CollectionStore) applySort(req *catalog.SearchRequest, categoryId string) {
	if c.sortStore == nil {
		return
	}
	switch c.sortStore.CurrentSort.Get() {
	case types.SortNameAsc:
		req.Sort = []catalog.SortClause{{FieldName: catalog.FieldName, Order: catalog.OrderAsc}}
	case types.SortNameDesc:
		req.Sort = []catalog.SortClause{{FieldName: catalog.FieldName, Order: catalog.OrderDesc}}
	case types.SortPriceAsc:
		req.Sort = []catalog.SortClause{{FieldName: catalog.FieldActualPrice, Order: catalog.OrderAsc}}
	case types.SortPriceDesc:
		req.Sort = []catalog.SortClause{{FieldName: catalog.FieldActualPrice, Order: catalog.OrderDesc}}
	case types.SortRecommended:
		req.RecommendedFor = &catalog.RecommendedScope{CategoryId: categoryId}
	default:
		// newest and unrecognized keys fall through to the server's
		// natural order
	}
}

// backfillVariants batches the ids of items whose variant data was elided
// by the primary query into one secondary lookup and grafts the results
// back. A failed back-fill logs and publishes the items as they arrived.
func (c *CollectionStore) backfillVariants(ctx context.Context, items []types.CatalogItem) []types.CatalogItem {
	if c.variants == nil {
		return items
	}
	need := []string{}
	for _, item := range items {
		if item.NeedsVariantData() {
			need = append(need, item.Id)
		}
	}
	if len(need) == 0 {
		return items
	}
	variants, err := c.variants.VariantsByProductIds(ctx, need)
	if err != nil {
		log.Printf("variant back-fill failed: %v", err)
		return items
	}
	byProduct := map[string][]types.Variant{}
	for _, variant := range variants {
		byProduct[variant.ProductId] = append(byProduct[variant.ProductId], variant)
	}
	for i := range items {
		if !items[i].NeedsVariantData() {
			continue
		}
		if matched, ok := byProduct[items[i].Id]; ok {
			items[i].Variants = matched
		}
	}
	return items
}
