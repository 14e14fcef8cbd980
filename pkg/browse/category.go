// Package browse is the reactive catalog browsing engine: the category,
// sort and filter stores, the catalog aggregate loaders and the paginated
// collection orchestrator that ties them together.
package browse

import "github.com/matst80/slask-browse/pkg/reactive"

// CategoryStore holds the active category id, "" meaning no category.
type CategoryStore struct {
	SelectedCategory *reactive.Signal[string]
}

type CategoryStoreOptions struct {
	InitialCategoryId string
	// OnCategoryChange fires for user-driven changes only, never for the
	// initial value.
	OnCategoryChange func(categoryId string)
}

func NewCategoryStore(opts CategoryStoreOptions) *CategoryStore {
	s := &CategoryStore{
		SelectedCategory: reactive.NewSignal(opts.InitialCategoryId),
	}
	// One-shot guard: the first emission is the construction value, and
	// reacting to it would trigger a redundant navigation on page load.
	seenInitial := false
	s.SelectedCategory.Subscribe(func(id string) {
		if !seenInitial {
			seenInitial = true
			return
		}
		if opts.OnCategoryChange != nil {
			opts.OnCategoryChange(id)
		}
	})
	return s
}

func (s *CategoryStore) SetSelectedCategory(id string) {
	s.SelectedCategory.Set(id)
}
