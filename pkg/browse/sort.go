package browse

import (
	"github.com/matst80/slask-browse/pkg/reactive"
	"github.com/matst80/slask-browse/pkg/types"
	"github.com/matst80/slask-browse/pkg/urlstate"
)

// SortStore holds the active sort key and mirrors it into the URL.
type SortStore struct {
	CurrentSort *reactive.Signal[types.SortKey]
	history     urlstate.History
}

// NewSortStore reads the initial key from the current URL; an absent sort
// parameter means the default.
func NewSortStore(history urlstate.History) *SortStore {
	initial := types.DefaultSort
	if history != nil {
		if v := history.Current().Get("sort"); v != "" {
			initial = types.SortKey(v)
		}
	}
	return &SortStore{
		CurrentSort: reactive.NewSignal(initial),
		history:     history,
	}
}

// SetSortBy sets the key and rewrites the URL: the default key deletes the
// sort parameter, anything else (known or not) is written verbatim.
func (s *SortStore) SetSortBy(key types.SortKey) {
	s.CurrentSort.Set(key)
	if s.history == nil {
		return
	}
	params := s.history.Current()
	if key.IsDefault() {
		params.Delete("sort")
	} else {
		params.Set("sort", string(key))
	}
	s.history.Replace(params)
}
