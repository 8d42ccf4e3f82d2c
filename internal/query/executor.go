package query

import (
	"context"
	"fmt"
	"math"
)

// Criteria selects and orders records.
type Criteria struct {
	SearchPhrase  string
	SortBy        string
	SortDirection Direction
}

// Window selects a slice of the ordered result.
type Window struct {
	Offset int
	Limit  int
}

// Source is a filterable, sortable collection.
type Source[T any] interface {
	Count(ctx context.Context, criteria Criteria) (int64, error)
	Find(ctx context.Context, criteria Criteria, window Window) ([]T, error)
}

// Page is one page of a list result.
type Page[T any] struct {
	Items           []T `json:"items"`
	TotalItemsCount int `json:"totalItemsCount"`
	PageSize        int `json:"pageSize"`
	PageNumber      int `json:"pageNumber"`
	TotalPages      int `json:"totalPages"`
	ItemsFrom       int `json:"itemsFrom"`
	ItemsTo         int `json:"itemsTo"`
}

// NewPage assembles a page and derives its bounds from the total count.
func NewPage[T any](items []T, total, pageSize, pageNumber int) *Page[T] {
	if items == nil {
		items = []T{}
	}

	page := &Page[T]{
		Items:           items,
		TotalItemsCount: total,
		PageSize:        pageSize,
		PageNumber:      pageNumber,
	}
	if pageSize > 0 {
		offset := pageOffset(pageNumber, pageSize)
		page.TotalPages = (total + pageSize - 1) / pageSize
		page.ItemsFrom = offset + 1
		if offset == math.MaxInt {
			page.ItemsFrom = math.MaxInt
		}
		page.ItemsTo = total
		if offset < total-pageSize {
			page.ItemsTo = offset + pageSize
		}
	}
	return page
}

// Execute counts the records matching spec and loads the requested page.
// A page past the end of the data is returned empty.
func Execute[T any](ctx context.Context, source Source[T], spec Spec) (*Page[T], error) {
	if source == nil {
		return nil, fmt.Errorf("query: nil source")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	criteria := spec.Criteria()

	total, err := source.Count(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("query: count: %w", err)
	}

	var items []T
	if offset := spec.Offset(); offset >= 0 && int64(offset) < total {
		items, err = source.Find(ctx, criteria, spec.Window())
		if err != nil {
			return nil, fmt.Errorf("query: find: %w", err)
		}
	}
	if len(items) > spec.PageSize {
		items = items[:spec.PageSize]
	}

	return NewPage(items, int(total), spec.PageSize, spec.PageNumber), nil
}

// MapPage converts the items of a page, keeping its bounds.
func MapPage[A, B any](page *Page[A], fn func(A) B) *Page[B] {
	if page == nil {
		return nil
	}

	items := make([]B, len(page.Items))
	for i, item := range page.Items {
		items[i] = fn(item)
	}

	return &Page[B]{
		Items:           items,
		TotalItemsCount: page.TotalItemsCount,
		PageSize:        page.PageSize,
		PageNumber:      page.PageNumber,
		TotalPages:      page.TotalPages,
		ItemsFrom:       page.ItemsFrom,
		ItemsTo:         page.ItemsTo,
	}
}
