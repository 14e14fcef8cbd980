package browse

import (
	"testing"

	"github.com/matst80/slask-browse/pkg/types"
	"github.com/matst80/slask-browse/pkg/urlstate"
)

func TestSortStoreReadsInitialFromUrl(t *testing.T) {
	h := urlstate.NewMemoryHistory(urlstate.Parse("sort=price_desc"))
	s := NewSortStore(h)
	if s.CurrentSort.Get() != types.SortPriceDesc {
		t.Errorf("got %q", s.CurrentSort.Get())
	}
}

func TestSortStoreMirrorsToUrl(t *testing.T) {
	h := urlstate.NewMemoryHistory(urlstate.Parse("minPrice=10"))
	s := NewSortStore(h)
	s.SetSortBy(types.SortPriceAsc)
	if got := h.Current().Get("sort"); got != "price_asc" {
		t.Errorf("sort not written, got %q", got)
	}
	if got := h.Current().Get("minPrice"); got != "10" {
		t.Errorf("unrelated parameter lost: %q", got)
	}
}

func TestSortStoreDefaultDeletesParameter(t *testing.T) {
	h := urlstate.NewMemoryHistory(urlstate.Parse("sort=price_asc"))
	s := NewSortStore(h)
	s.SetSortBy(types.SortNewest)
	if got := h.Current().Get("sort"); got != "" {
		t.Errorf("default sort should delete the parameter, got %q", got)
	}
}

func TestSortStoreUnknownKeyPassesThrough(t *testing.T) {
	h := urlstate.NewMemoryHistory(nil)
	s := NewSortStore(h)
	s.SetSortBy(types.SortKey("trending"))
	if s.CurrentSort.Get() != "trending" {
		t.Errorf("got %q", s.CurrentSort.Get())
	}
	if got := h.Current().Get("sort"); got != "trending" {
		t.Errorf("unknown key should mirror verbatim, got %q", got)
	}
}
