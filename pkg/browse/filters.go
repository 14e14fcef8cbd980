package browse

import (
	"strconv"
	"sync"

	"github.com/matst80/slask-browse/pkg/reactive"
	"github.com/matst80/slask-browse/pkg/tracking"
	"github.com/matst80/slask-browse/pkg/types"
	"github.com/matst80/slask-browse/pkg/urlstate"
)

// FilterStore holds the applied filter criteria and the derived set of
// available options, fed by the two aggregate loaders. Non-default criteria
// are mirrored into the URL.
type FilterStore struct {
	CurrentFilters   *reactive.Signal[types.FilterCriteria]
	AvailableOptions *reactive.Signal[types.AvailableOptions]
	IsFullyLoaded    *reactive.Signal[bool]

	history urlstate.History
	tracker tracking.Tracker

	mu            sync.Mutex
	priceLoaded   bool
	optionsLoaded bool
	pendingParams urlstate.Params
}

type FilterStoreOptions struct {
	History       urlstate.History
	PriceLoader   *PriceRangeLoader
	OptionsLoader *CatalogOptionsLoader
	Tracker       tracking.Tracker
	// InitialParams carries URL state to restore. Price and availability
	// apply immediately; option selections keyed by display name resolve
	// once the option list has loaded.
	InitialParams urlstate.Params
}

func NewFilterStore(opts FilterStoreOptions) *FilterStore {
	s := &FilterStore{
		CurrentFilters:   reactive.NewSignal(types.DefaultFilterCriteria()),
		AvailableOptions: reactive.NewSignal(types.AvailableOptions{ProductOptions: []types.OptionDescriptor{}}),
		IsFullyLoaded:    reactive.NewSignal(false),
		history:          opts.History,
		tracker:          opts.Tracker,
		pendingParams:    opts.InitialParams,
	}
	if opts.InitialParams != nil {
		s.CurrentFilters.Set(CriteriaFromParams(opts.InitialParams, types.AvailableOptions{}))
	}
	if opts.PriceLoader != nil {
		reactive.Effect(func() {
			s.onPriceRange(opts.PriceLoader.CatalogPriceRange.Get())
		}, opts.PriceLoader.CatalogPriceRange)
	}
	if opts.OptionsLoader != nil {
		reactive.Effect(func() {
			s.onCatalogOptions(opts.OptionsLoader.CatalogOptions.Get())
		}, opts.OptionsLoader.CatalogOptions)
	}
	return s
}

// onPriceRange merges fresh catalog bounds into the available options and,
// while the applied range still carries a default sentinel, adopts them as
// the applied range. Adoption happens once; a user's manual range survives
// later aggregate refreshes.
func (s *FilterStore) onPriceRange(bounds *types.PriceRange) {
	if bounds != nil {
		available := s.AvailableOptions.Get()
		available.PriceRange = *bounds
		s.AvailableOptions.Set(available)

		current := s.CurrentFilters.Get()
		if current.PriceRange.IsDefaultSentinel() {
			current.PriceRange = *bounds
			s.CurrentFilters.Set(current)
		}
	}
	s.mu.Lock()
	s.priceLoaded = true
	s.mu.Unlock()
	s.updateLoaded()
}

func (s *FilterStore) onCatalogOptions(options []types.OptionDescriptor) {
	if len(options) > 0 {
		available := s.AvailableOptions.Get()
		available.ProductOptions = options
		s.AvailableOptions.Set(available)
		s.resolvePendingParams(available)
	}
	s.mu.Lock()
	s.optionsLoaded = true
	s.mu.Unlock()
	s.updateLoaded()
}

// resolvePendingParams maps URL parameters keyed by option display name to
// option ids now that the names are known.
func (s *FilterStore) resolvePendingParams(available types.AvailableOptions) {
	s.mu.Lock()
	params := s.pendingParams
	s.pendingParams = nil
	s.mu.Unlock()
	if params == nil {
		return
	}
	restored := CriteriaFromParams(params, available)
	if !restored.HasSelections() {
		return
	}
	current := s.CurrentFilters.Get()
	current.SelectedOptions = restored.SelectedOptions
	s.CurrentFilters.Set(current.Normalize())
}

func (s *FilterStore) updateLoaded() {
	s.mu.Lock()
	loaded := s.priceLoaded && s.optionsLoaded
	s.mu.Unlock()
	if loaded && !s.IsFullyLoaded.Get() {
		s.IsFullyLoaded.Set(true)
	}
}

// ApplyFilters replaces the criteria wholesale and rewrites the URL's
// filter parameters, preserving any sort parameter verbatim.
func (s *FilterStore) ApplyFilters(criteria types.FilterCriteria) {
	criteria = criteria.Normalize()
	s.CurrentFilters.Set(criteria)
	if s.tracker != nil {
		s.tracker.TrackFilter(criteria)
	}
	s.writeUrl(criteria)
}

// ClearFilters resets to the catalog bounds with no selections and strips
// the filter parameters from the URL.
func (s *FilterStore) ClearFilters() {
	available := s.AvailableOptions.Get()
	s.ApplyFilters(types.FilterCriteria{
		PriceRange:      available.PriceRange,
		SelectedOptions: map[string][]string{},
	})
}

// IsFiltered reports whether anything narrows the catalog: a price range
// differing from the catalog bounds or any selected option.
func (s *FilterStore) IsFiltered() bool {
	current := s.CurrentFilters.Get()
	available := s.AvailableOptions.Get()
	return current.PriceRange != available.PriceRange || current.HasSelections()
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (s *FilterStore) writeUrl(criteria types.FilterCriteria) {
	if s.history == nil {
		return
	}
	params := urlstate.Params{}
	if sortValue := s.history.Current().Get("sort"); sortValue != "" {
		params.Set("sort", sortValue)
	}
	available := s.AvailableOptions.Get()
	if criteria.PriceRange.Min > available.PriceRange.Min {
		params.Set("minPrice", formatPrice(criteria.PriceRange.Min))
	}
	if criteria.PriceRange.Max > 0 && criteria.PriceRange.Max < available.PriceRange.Max {
		params.Set("maxPrice", formatPrice(criteria.PriceRange.Max))
	}
	for optionId, choices := range criteria.SelectedOptions {
		key := optionId
		if optionId != types.AvailabilityOptionId {
			if opt, ok := available.OptionById(optionId); ok {
				key = opt.Name
			}
		}
		params.SetAll(key, choices)
	}
	s.history.Replace(params)
}

// CriteriaFromParams builds criteria from parsed URL parameters. Option
// parameters are keyed by display name and need the available option list
// to resolve; unknown keys are ignored.
func CriteriaFromParams(params urlstate.Params, available types.AvailableOptions) types.FilterCriteria {
	typed := params.Browse()
	criteria := types.DefaultFilterCriteria()
	if typed.MinPrice > 0 {
		criteria.PriceRange.Min = typed.MinPrice
	}
	if typed.MaxPrice > 0 {
		criteria.PriceRange.Max = typed.MaxPrice
	}
	if len(typed.Availability) > 0 {
		criteria.SelectedOptions[types.AvailabilityOptionId] = typed.Availability
	}
	for key, values := range params {
		switch key {
		case "sort", "minPrice", "maxPrice", types.AvailabilityOptionId:
			continue
		}
		if opt, ok := available.OptionByName(key); ok {
			criteria.SelectedOptions[opt.Id] = values
		}
	}
	return criteria.Normalize()
}
