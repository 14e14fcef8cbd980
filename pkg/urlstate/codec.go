// Package urlstate translates between the engine's flat multi-value
// parameter map and a query string, and abstracts the address bar behind a
// History interface so the stores can mirror state without knowing about a
// browser.
package urlstate

import "net/url"

// Params is a flat multi-value parameter map. Repeated keys keep their
// values in order.
type Params url.Values

// Parse decodes a query string (with or without a leading "?") into Params.
// Malformed input degrades to whatever could be parsed, never an error.
func Parse(query string) Params {
	if len(query) > 0 && query[0] == '?' {
		query = query[1:]
	}
	values, err := url.ParseQuery(query)
	if err != nil && values == nil {
		return Params{}
	}
	return Params(values)
}

// Serialize encodes params to a query string, dropping keys whose values
// are all empty. Keys are emitted in sorted order (url.Values semantics) so
// equal states produce equal strings.
func Serialize(p Params) string {
	out := url.Values{}
	for key, values := range p {
		if key == "" {
			continue
		}
		for _, v := range values {
			if v == "" {
				continue
			}
			out.Add(key, v)
		}
	}
	return out.Encode()
}

// Get returns the first value for key or "".
func (p Params) Get(key string) string {
	return url.Values(p).Get(key)
}

// All returns every value for key.
func (p Params) All(key string) []string {
	return p[key]
}

// Set replaces all values for key.
func (p Params) Set(key, value string) {
	url.Values(p).Set(key, value)
}

// SetAll replaces the values for key with the given slice, dropping the key
// entirely when the slice is empty.
func (p Params) SetAll(key string, values []string) {
	if len(values) == 0 {
		delete(p, key)
		return
	}
	p[key] = append([]string(nil), values...)
}

// Delete removes key.
func (p Params) Delete(key string) {
	delete(p, key)
}

// Clone returns an independent copy.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for key, values := range p {
		out[key] = append([]string(nil), values...)
	}
	return out
}
