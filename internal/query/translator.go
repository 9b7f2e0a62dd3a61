// Package query turns raw request filter parameters into a validated,
// structured query description that repositories can materialize against
// Postgres. Operator promotion is strictly allow-listed.
package query

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Op is the comparison operator a filter was parsed into. Only the five
// bracketed tokens gt/gte/lt/lte/in are ever promoted; everything else
// stays an equality filter.
type Op int

const (
	OpEq Op = iota
	OpGt
	OpGte
	OpLt
	OpLte
	OpIn
)

var opTokens = map[string]Op{
	"gt":  OpGt,
	"gte": OpGte,
	"lt":  OpLt,
	"lte": OpLte,
	"in":  OpIn,
}

// Filter is one field comparison. Values has a single element except for
// OpIn, where the comma-separated list is split out.
type Filter struct {
	Field  string
	Op     Op
	Values []string
}

// SortKey orders results by one field; a leading '-' in the sort parameter
// means descending.
type SortKey struct {
	Field string
	Desc  bool
}

// Spec is the per-request query description. It is derived once from the
// URL parameters and never persisted.
type Spec struct {
	Filters []Filter
	Select  []string
	Sort    []SortKey
	Page    int
	Limit   int
}

const (
	DefaultLimit = 25
	MaxLimit     = 100
)

// reserved keys are stripped from the filter set before translation.
var reserved = map[string]bool{"select": true, "sort": true, "page": true, "limit": true}

// Parse derives a Spec from raw query parameters. Malformed select/sort
// fragments and unknown operator tokens are ignored rather than rejected:
// the translator narrows, it never errors.
func Parse(values url.Values) *Spec {
	s := &Spec{Page: 1, Limit: DefaultLimit}

	keys := make([]string, 0, len(values))
	for k := range values {
		if !reserved[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		raw := values.Get(key)
		field, op := parseKey(key)
		f := Filter{Field: field, Op: op}
		if op == OpIn {
			f.Values = splitList(raw)
			if len(f.Values) == 0 {
				continue
			}
		} else {
			f.Values = []string{raw}
		}
		s.Filters = append(s.Filters, f)
	}

	s.Select = splitList(values.Get("select"))
	for _, part := range splitList(values.Get("sort")) {
		if strings.HasPrefix(part, "-") {
			if name := strings.TrimPrefix(part, "-"); name != "" {
				s.Sort = append(s.Sort, SortKey{Field: name, Desc: true})
			}
			continue
		}
		s.Sort = append(s.Sort, SortKey{Field: part})
	}

	if p, err := strconv.Atoi(values.Get("page")); err == nil && p > 0 {
		s.Page = p
	}
	if l, err := strconv.Atoi(values.Get("limit")); err == nil && l > 0 {
		if l > MaxLimit {
			l = MaxLimit
		}
		s.Limit = l
	}
	return s
}

// parseKey splits "field[tok]" into field and operator. A bracketed token
// outside the allow-list is NOT translated: the full key is kept verbatim
// as an equality field, which the resource column map then drops.
func parseKey(key string) (string, Op) {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return key, OpEq
	}
	tok := key[open+1 : len(key)-1]
	if op, ok := opTokens[tok]; ok {
		return key[:open], op
	}
	return key, OpEq
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
