package listing

import "strings"

// All is the filter value that places no restriction on a dimension.
const All = "all"

// Dimension is one filter control of a table. A selected value is matched
// first against the derived buckets, then against the exact field value.
type Dimension[T any] struct {
	Buckets map[string]func(T) bool
	Value   func(T) string
}

// Match reports whether item satisfies the selected value.
func (d Dimension[T]) Match(item T, value string) bool {
	if value == "" || value == All {
		return true
	}
	if bucket, ok := d.Buckets[value]; ok {
		return bucket(item)
	}
	if d.Value == nil {
		return false
	}
	return d.Value(item) == value
}

// Accepts reports whether value is a known bucket or the sentinel. Field
// values are open-ended and always accepted.
func (d Dimension[T]) Accepts(value string) bool {
	if value == "" || value == All {
		return true
	}
	if _, ok := d.Buckets[value]; ok {
		return true
	}
	return d.Value != nil
}

// MatchesQuery is a case-insensitive substring test. A blank query matches.
func MatchesQuery(text, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(query))
}

// Matches combines the text query and every selected dimension with AND.
// Dimensions the table does not declare are ignored.
func Matches[T any](item T, cfg Config[T], query string, filters map[string]string) bool {
	if cfg.Search != nil && !MatchesQuery(cfg.Search(item), query) {
		return false
	}
	for name, value := range filters {
		dim, ok := cfg.Dimensions[name]
		if !ok {
			continue
		}
		if !dim.Match(item, value) {
			return false
		}
	}
	return true
}

// Filter returns the matching subset in source order. The input is not modified.
func Filter[T any](items []T, cfg Config[T], query string, filters map[string]string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if Matches(item, cfg, query, filters) {
			out = append(out, item)
		}
	}
	return out
}

// SearchText joins searchable fields with single spaces.
func SearchText(fields ...string) string {
	return strings.Join(fields, " ")
}
