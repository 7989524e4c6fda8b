package params

import (
	"maps"
	"net/url"
	"strings"
)

// Canonical parameter keys carried in the shareable token.
const (
	KeyCategory       = "category"
	KeyMinPrice       = "minPrice"
	KeyMaxPrice       = "maxPrice"
	KeyUsePriceFilter = "usePriceFilter"
	KeySortValue      = "sortValue"
	KeyPage           = "page"
	KeyItemsPerPage   = "itemsPerPage"
	KeyDirectClick    = "directClick"
	KeyID             = "id"
)

// Mapping is a flat string-keyed parameter set. A key that is not present is
// absent, which is distinct from a key mapped to "".
type Mapping map[string]string

// Lookup reports the value for key and whether it is present.
func (m Mapping) Lookup(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m[key]
	return v, ok
}

// Get returns the value for key, or fallback when the key is absent.
func (m Mapping) Get(key, fallback string) string {
	if v, ok := m.Lookup(key); ok {
		return v
	}
	return fallback
}

// Clone returns an independent copy. The clone of a nil mapping is empty, not nil.
func (m Mapping) Clone() Mapping {
	dup := make(Mapping, len(m))
	maps.Copy(dup, m)
	return dup
}

// Merge returns m ∪ partial with partial's values winning. Neither input is modified.
func (m Mapping) Merge(partial Mapping) Mapping {
	merged := m.Clone()
	maps.Copy(merged, partial)
	return merged
}

// Encode serializes m into a single token. Keys are sorted so equal mappings
// always produce equal tokens.
func Encode(m Mapping) string {
	if len(m) == 0 {
		return ""
	}
	values := make(url.Values, len(m))
	for k, v := range m {
		values.Set(k, v)
	}
	return values.Encode()
}

// Decode parses a token produced by Encode (or typed by hand). A leading "?"
// or "&" is ignored, empty pairs are skipped, a key without "=" maps to "",
// and a later duplicate key replaces an earlier one. Escapes that cannot be
// decoded are kept verbatim rather than failing the whole token.
func Decode(token string) Mapping {
	out := Mapping{}
	token = strings.TrimLeft(token, "?&")
	if token == "" {
		return out
	}
	for pair := range strings.SplitSeq(token, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		out[unescape(rawKey)] = unescape(rawValue)
	}
	return out
}

func unescape(s string) string {
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}
