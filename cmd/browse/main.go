package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matst80/slask-browse/pkg/browse"
	"github.com/matst80/slask-browse/pkg/catalog"
	"github.com/matst80/slask-browse/pkg/tracking"
	"github.com/matst80/slask-browse/pkg/urlstate"
)

var (
	catalogUrl   = "http://localhost:8080"
	catalogToken = ""
	redisAddr    = ""
	amqpUrl      = ""
	country      = "se"
	categoryId   = ""
	initialQuery = ""
	listenAddr   = ""
)

func init() {
	if v, ok := os.LookupEnv("CATALOG_URL"); ok {
		catalogUrl = v
	}
	if v, ok := os.LookupEnv("CATALOG_TOKEN"); ok {
		catalogToken = v
	}
	if v, ok := os.LookupEnv("REDIS_ADDR"); ok {
		redisAddr = v
	}
	if v, ok := os.LookupEnv("AMQP_URL"); ok {
		amqpUrl = v
	}
	if v, ok := os.LookupEnv("COUNTRY"); ok {
		country = v
	}
	if v, ok := os.LookupEnv("CATEGORY_ID"); ok {
		categoryId = v
	}
	if v, ok := os.LookupEnv("BROWSE_QUERY"); ok {
		initialQuery = v
	}
	if v, ok := os.LookupEnv("METRICS_LISTEN"); ok {
		listenAddr = v
	}
}

func main() {
	client := catalog.NewHttpClient(catalogUrl, catalogToken)

	var search catalog.SearchClient = client
	if redisAddr != "" {
		cache := catalog.NewCache(redisAddr, "", 0)
		defer cache.Close()
		search = catalog.NewCachingSearchClient(client, cache)
	}

	var tracker tracking.Tracker
	if amqpUrl != "" {
		rt, err := tracking.NewRabbitTracking(amqpUrl, country)
		if err != nil {
			log.Printf("tracking disabled: %v", err)
		} else {
			defer rt.Close()
			tracker = rt
		}
	}

	history := urlstate.NewMemoryHistory(urlstate.Parse(initialQuery))
	priceLoader := browse.NewPriceRangeLoader(search)
	optionsLoader := browse.NewCatalogOptionsLoader(search, client)
	sortStore := browse.NewSortStore(history)
	categoryStore := browse.NewCategoryStore(browse.CategoryStoreOptions{
		InitialCategoryId: categoryId,
	})
	filterStore := browse.NewFilterStore(browse.FilterStoreOptions{
		History:       history,
		PriceLoader:   priceLoader,
		OptionsLoader: optionsLoader,
		Tracker:       tracker,
		InitialParams: history.Current(),
	})
	collection := browse.NewCollectionStore(browse.CollectionStoreOptions{
		Search:        search,
		Variants:      client,
		Filters:       filterStore,
		Sort:          sortStore,
		Category:      categoryStore,
		PriceLoader:   priceLoader,
		OptionsLoader: optionsLoader,
		Tracker:       tracker,
	})
	defer collection.Close()

	ctx := context.Background()
	collection.Init(ctx)
	if err := collection.Refresh(ctx, true); err != nil {
		log.Fatalf("initial refresh failed: %v", err)
	}

	log.Printf("loaded %d of %d products, url state %q",
		len(collection.Products.Get()), collection.TotalProducts.Get(), history.QueryString())
	for _, item := range collection.Products.Get() {
		log.Printf("  %s %s", item.Id, item.Name)
	}
	available := filterStore.AvailableOptions.Get()
	log.Printf("price range %v-%v, %d filterable options",
		available.PriceRange.Min, available.PriceRange.Max, len(available.ProductOptions))

	if listenAddr != "" {
		http.Handle("/metrics", promhttp.Handler())
		log.Printf("serving metrics on %s", listenAddr)
		log.Fatal(http.ListenAndServe(listenAddr, nil))
	}
}
