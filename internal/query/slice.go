package query

import (
	"context"
	"sort"
	"strings"
)

// SliceSource serves a Source from records held in memory. Searchable fields
// are matched case-insensitively; Columns maps sort column names to the value
// compared for each record.
type SliceSource[T any] struct {
	Records    []T
	Searchable func(T) []string
	Columns    map[string]func(T) string
}

// Count reports how many records match the search phrase.
func (s SliceSource[T]) Count(_ context.Context, criteria Criteria) (int64, error) {
	return int64(len(s.filter(criteria.SearchPhrase))), nil
}

// Find filters, orders and windows the records. Records comparing equal keep
// their input order.
func (s SliceSource[T]) Find(_ context.Context, criteria Criteria, window Window) ([]T, error) {
	matched := s.filter(criteria.SearchPhrase)

	if column, ok := s.Columns[criteria.SortBy]; ok && criteria.SortBy != "" {
		desc := criteria.SortDirection == Descending
		sort.SliceStable(matched, func(i, j int) bool {
			a, b := column(matched[i]), column(matched[j])
			if desc {
				return a > b
			}
			return a < b
		})
	}

	if window.Offset < 0 || window.Offset >= len(matched) {
		return []T{}, nil
	}
	end := len(matched)
	if window.Limit > 0 && window.Limit < end-window.Offset {
		end = window.Offset + window.Limit
	}
	return matched[window.Offset:end], nil
}

func (s SliceSource[T]) filter(phrase string) []T {
	out := make([]T, 0, len(s.Records))
	needle := strings.ToLower(phrase)
	for _, record := range s.Records {
		if needle == "" || s.matches(record, needle) {
			out = append(out, record)
		}
	}
	return out
}

func (s SliceSource[T]) matches(record T, needle string) bool {
	if s.Searchable == nil {
		return false
	}
	for _, field := range s.Searchable(record) {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
