// Package listview implements the filter → sort → paginate pipeline
// every list endpoint renders through. It is a pure computation over its
// inputs and is re-run per request.
package listview

import (
	"sort"
	"strings"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

const DefaultPageSize = 5

// FilterAll is the sentinel filter value meaning "no constraint".
const FilterAll = "all"

// Range constrains a numeric field. An unset bound defaults to
// 0 / +infinity.
type Range struct {
	Min    float64
	Max    float64
	HasMin bool
	HasMax bool
}

// Query is the user-controlled view state for one list render.
type Query struct {
	Search   string
	Filters  map[string]string
	Ranges   map[string]Range
	SortKey  string
	SortDir  Direction
	Page     int
	PageSize int
}

// Value is a field value extracted from a record for filtering or
// sorting. Exactly one representation is meaningful per value.
type Value struct {
	Text   string
	Number float64
	List   []string
	kind   valueKind
}

type valueKind int

const (
	kindText valueKind = iota
	kindNumber
	kindList
)

func Text(s string) Value       { return Value{Text: s, kind: kindText} }
func Number(f float64) Value    { return Value{Number: f, kind: kindNumber} }
func List(items []string) Value { return Value{List: items, kind: kindList} }

// Schema tells the engine how to read one domain's records. Field is a
// presence-checked accessor: returning ok=false means the record variant
// does not carry that field at all (heterogeneous unions), which fails
// any active filter on it without panicking.
type Schema[T any] struct {
	SearchText func(T) []string
	Field      func(T, string) (Value, bool)
}

// Result is the rendered page plus pagination bookkeeping.
type Result[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// Apply runs filter, sort, and slice in that order. Filters combine with
// AND semantics; sorting is stable; pagination is 1-indexed.
func Apply[T any](items []T, schema Schema[T], q Query) Result[T] {
	filtered := make([]T, 0, len(items))
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	for _, item := range items {
		if !matchesSearch(item, schema, needle) {
			continue
		}
		if !matchesFilters(item, schema, q) {
			continue
		}
		filtered = append(filtered, item)
	}

	if q.SortKey != "" {
		dir := q.SortDir
		if dir != Desc {
			dir = Asc
		}
		sort.SliceStable(filtered, func(i, j int) bool {
			a, _ := schema.Field(filtered[i], q.SortKey)
			b, _ := schema.Field(filtered[j], q.SortKey)
			if dir == Desc {
				return compare(b, a) < 0
			}
			return compare(a, b) < 0
		})
	}

	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	total := len(filtered)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return Result[T]{
		Items:      filtered[start:end],
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

func matchesSearch[T any](item T, schema Schema[T], needle string) bool {
	if needle == "" {
		return true
	}
	if schema.SearchText == nil {
		return false
	}
	for _, text := range schema.SearchText(item) {
		if strings.Contains(strings.ToLower(text), needle) {
			return true
		}
	}
	return false
}

func matchesFilters[T any](item T, schema Schema[T], q Query) bool {
	for name, want := range q.Filters {
		if want == "" || want == FilterAll {
			continue
		}
		value, ok := schema.Field(item, name)
		if !ok {
			return false
		}
		if !valueMatches(value, want) {
			return false
		}
	}
	for name, r := range q.Ranges {
		if !r.HasMin && !r.HasMax {
			continue
		}
		value, ok := schema.Field(item, name)
		if !ok || value.kind != kindNumber {
			return false
		}
		min := 0.0
		if r.HasMin {
			min = r.Min
		}
		if value.Number < min {
			return false
		}
		if r.HasMax && value.Number > r.Max {
			return false
		}
	}
	return true
}

func valueMatches(value Value, want string) bool {
	switch value.kind {
	case kindList:
		for _, entry := range value.List {
			if strings.EqualFold(entry, want) {
				return true
			}
		}
		return false
	case kindNumber:
		return value.Text == want
	default:
		return strings.EqualFold(value.Text, want)
	}
}

func compare(a, b Value) int {
	if a.kind == kindNumber && b.kind == kindNumber {
		switch {
		case a.Number < b.Number:
			return -1
		case a.Number > b.Number:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(sortText(a), sortText(b))
}

func sortText(v Value) string {
	if v.kind == kindList {
		return strings.Join(v.List, ",")
	}
	return v.Text
}
