package browse

import (
	"context"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/matst80/slask-browse/pkg/catalog"
	"github.com/matst80/slask-browse/pkg/reactive"
	"github.com/matst80/slask-browse/pkg/types"
)

const (
	aggOptionNames  = "optionNames"
	aggChoiceNames  = "choiceNames"
	aggAvailability = "availability"

	optionNameLimit   = 100
	choiceNameLimit   = 500
	availabilityLimit = 10
)

var availabilityLabels = map[string]string{
	"IN_STOCK":               "In Stock",
	"OUT_OF_STOCK":           "Out of Stock",
	"PARTIALLY_OUT_OF_STOCK": "Partially Out of Stock",
}

// CatalogOptionsLoader learns which option/choice names actually occur in
// the live catalog and intersects them with the customization definitions,
// so the filter UI never offers a choice with zero possible matches.
type CatalogOptionsLoader struct {
	CatalogOptions *reactive.Signal[[]types.OptionDescriptor]
	Error          *reactive.Signal[string]
	search         catalog.SearchClient
	customizations catalog.CustomizationClient
}

func NewCatalogOptionsLoader(search catalog.SearchClient, customizations catalog.CustomizationClient) *CatalogOptionsLoader {
	return &CatalogOptionsLoader{
		CatalogOptions: reactive.NewSignal([]types.OptionDescriptor{}),
		Error:          reactive.NewSignal(""),
		search:         search,
		customizations: customizations,
	}
}

// LoadCatalogOptions publishes the filterable option list for the given
// category scope ("" = whole catalog). Failures publish an empty list so
// the filter UI hides itself instead of erroring.
func (l *CatalogOptionsLoader) LoadCatalogOptions(ctx context.Context, categoryId string) {
	req := &catalog.AggregateRequest{
		Filter: visibilityFilter(categoryId),
		Aggregations: []catalog.Aggregation{
			catalog.ValueAgg(aggOptionNames, catalog.FieldOptionNames, optionNameLimit),
			catalog.ValueAgg(aggChoiceNames, catalog.FieldChoiceNames, choiceNameLimit),
			catalog.ValueAgg(aggAvailability, catalog.FieldInventoryStatus, availabilityLimit),
		},
		IncludeProducts: false,
		CursorPaging:    catalog.CursorPaging{Limit: 0},
	}
	res, err := l.search.Aggregate(ctx, req)
	if err != nil {
		log.Printf("options aggregate failed: %v", err)
		l.Error.Set(err.Error())
		l.CatalogOptions.Set([]types.OptionDescriptor{})
		return
	}
	definitions, err := l.customizations.ListCustomizations(ctx)
	if err != nil {
		log.Printf("customization query failed: %v", err)
		l.Error.Set(err.Error())
		l.CatalogOptions.Set([]types.OptionDescriptor{})
		return
	}

	options := intersectOptions(definitions, res.Values(aggOptionNames), res.Values(aggChoiceNames))
	statuses := res.Values(aggAvailability)
	if len(statuses) > 1 {
		options = append(options, availabilityOption(statuses))
	}
	l.Error.Set("")
	l.CatalogOptions.Set(options)
}

func lowerSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = struct{}{}
	}
	return set
}

// intersectOptions keeps only definitions observed in the aggregate, and
// within them only the observed choices. Matching is case-insensitive on
// display names.
func intersectOptions(definitions []catalog.Customization, optionNames, choiceNames []string) []types.OptionDescriptor {
	seenOptions := lowerSet(optionNames)
	seenChoices := lowerSet(choiceNames)
	result := []types.OptionDescriptor{}
	for _, def := range definitions {
		if _, ok := seenOptions[strings.ToLower(def.Name)]; !ok {
			continue
		}
		choices := []types.Choice{}
		for _, choice := range def.Choices {
			if _, ok := seenChoices[strings.ToLower(choice.Name)]; !ok {
				continue
			}
			choices = append(choices, types.Choice{
				Id:        choice.Id,
				Name:      choice.Name,
				ColorCode: choice.ColorCode,
			})
		}
		if len(choices) == 0 {
			continue
		}
		sortChoices(choices)
		result = append(result, types.OptionDescriptor{
			Id:         def.Id,
			Name:       def.Name,
			Choices:    choices,
			RenderType: def.RenderType,
		})
	}
	return result
}

// sortChoices orders numeric-looking names before the rest, numerics
// descending by value, the rest alphabetically.
func sortChoices(choices []types.Choice) {
	sort.SliceStable(choices, func(i, j int) bool {
		iv, iErr := strconv.ParseFloat(choices[i].Name, 64)
		jv, jErr := strconv.ParseFloat(choices[j].Name, 64)
		iNumeric := iErr == nil
		jNumeric := jErr == nil
		if iNumeric && jNumeric {
			return iv > jv
		}
		if iNumeric != jNumeric {
			return iNumeric
		}
		return choices[i].Name < choices[j].Name
	})
}

// availabilityOption synthesizes the "Availability" option from the raw
// inventory status codes when more than one is present in the catalog.
func availabilityOption(statuses []string) types.OptionDescriptor {
	choices := make([]types.Choice, 0, len(statuses))
	for _, status := range statuses {
		name, ok := availabilityLabels[status]
		if !ok {
			name = status
		}
		choices = append(choices, types.Choice{Id: status, Name: name})
	}
	return types.OptionDescriptor{
		Id:      types.AvailabilityOptionId,
		Name:    "Availability",
		Choices: choices,
	}
}
