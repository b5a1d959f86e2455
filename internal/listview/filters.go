// Package listview implements the list-state contract shared by every admin
// list screen: AND-combined filters with URL round-tripping, client-side
// pagination over an already-fetched result set, and a debounced refresh
// controller that discards stale responses.
package listview

import (
	"net/url"
	"strconv"
	"strings"
)

// Unconstrained is the categorical filter value meaning "no constraint",
// alongside the empty string.
const Unconstrained = "ALL"

// Filters is the filter state of one list screen: free-text search plus
// categorical fields (type, status, channel, ...). Filters AND-combine.
type Filters struct {
	Search string
	Fields map[string]string
}

// NewFilters returns an empty filter set.
func NewFilters() Filters {
	return Filters{Fields: make(map[string]string)}
}

// WithField returns a copy with the given categorical field set.
func (f Filters) WithField(name, value string) Filters {
	out := f.clone()
	out.Fields[name] = value
	return out
}

// WithSearch returns a copy with the search text set.
func (f Filters) WithSearch(text string) Filters {
	out := f.clone()
	out.Search = text
	return out
}

func (f Filters) clone() Filters {
	fields := make(map[string]string, len(f.Fields))
	for k, v := range f.Fields {
		fields[k] = v
	}
	return Filters{Search: f.Search, Fields: fields}
}

// Constraint returns the active value for a categorical field and whether it
// actually constrains the list. ""/"ALL" means unconstrained.
func (f Filters) Constraint(name string) (string, bool) {
	v := f.Fields[name]
	if v == "" || strings.EqualFold(v, Unconstrained) {
		return "", false
	}
	return v, true
}

// Query mirrors the active filters into URL query values for deep-linking.
// Unconstrained fields are omitted so links stay minimal.
func (f Filters) Query() url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	for name := range f.Fields {
		if v, ok := f.Constraint(name); ok {
			q.Set(name, v)
		}
	}
	return q
}

// ParseQuery reconstructs filter state from URL query values. fields names
// the categorical filters the screen understands; anything else in the query
// is ignored.
func ParseQuery(q url.Values, fields ...string) Filters {
	f := NewFilters()
	f.Search = q.Get("search")
	for _, name := range fields {
		if v := q.Get(name); v != "" {
			f.Fields[name] = v
		}
	}
	return f
}

// Accessor tells Apply how to read filterable values from an item.
type Accessor[T any] struct {
	// SearchText returns the texts matched (case-insensitively, substring)
	// against the free-text search.
	SearchText func(item T) []string
	// Field returns the item's value for a categorical filter field.
	Field func(item T, name string) string
}

// Apply returns the items matching every active filter (AND semantics).
// With no active filters all items are returned. The result is never nil.
func Apply[T any](items []T, f Filters, acc Accessor[T]) []T {
	out := make([]T, 0, len(items))
	search := strings.ToLower(strings.TrimSpace(f.Search))

	for _, item := range items {
		if search != "" && acc.SearchText != nil && !matchesSearch(acc.SearchText(item), search) {
			continue
		}
		if !matchesFields(item, f, acc) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesSearch(texts []string, search string) bool {
	for _, t := range texts {
		if strings.Contains(strings.ToLower(t), search) {
			return true
		}
	}
	return false
}

func matchesFields[T any](item T, f Filters, acc Accessor[T]) bool {
	if acc.Field == nil {
		return true
	}
	for name := range f.Fields {
		want, ok := f.Constraint(name)
		if !ok {
			continue
		}
		if !strings.EqualFold(acc.Field(item, name), want) {
			return false
		}
	}
	return true
}

// Page slices one page out of the filtered set. Out-of-range page numbers
// are clamped to the nearest valid page: below 1 becomes 1, past the end
// becomes the last page. An empty set yields page 1 of 1 with no items.
func Page[T any](items []T, page, perPage int) (pageItems []T, pageNum, totalPages int) {
	if perPage <= 0 {
		perPage = 25
	}
	totalPages = (len(items) + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out, page, totalPages
}

// PageParams reads page/itemsPerPage from URL query values with defaults.
func PageParams(q url.Values, defaultPerPage int) (page, perPage int) {
	page = 1
	perPage = defaultPerPage
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		page = v
	}
	if v, err := strconv.Atoi(q.Get("itemsPerPage")); err == nil && v > 0 {
		perPage = v
	}
	return page, perPage
}
