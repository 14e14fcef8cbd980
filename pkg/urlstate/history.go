package urlstate

import "sync"

// History is the address-bar abstraction the stores mirror state into.
// Replace swaps the current query state without navigation, the analog of a
// browser history.replaceState.
type History interface {
	Current() Params
	Replace(Params)
}

// MemoryHistory is an in-process History. It doubles as the recording fake
// in tests and as the state holder in headless use.
type MemoryHistory struct {
	mu       sync.Mutex
	current  Params
	Replaces int
}

func NewMemoryHistory(initial Params) *MemoryHistory {
	if initial == nil {
		initial = Params{}
	}
	return &MemoryHistory{current: initial.Clone()}
}

func (h *MemoryHistory) Current() Params {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current.Clone()
}

func (h *MemoryHistory) Replace(p Params) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = p.Clone()
	h.Replaces++
}

// QueryString returns the current state serialized, for asserting on or for
// handing to a real address bar.
func (h *MemoryHistory) QueryString() string {
	return Serialize(h.Current())
}
