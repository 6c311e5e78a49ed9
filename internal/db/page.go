package db

import "math"

// Paging limits
const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	// maxPage keeps (page-1)*pageSize within an int for any valid pageSize
	maxPage = math.MaxInt / MaxPageSize
)

// Page is one slice of a paginated listing
type Page[T any] struct {
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Items    []T `json:"items"`
}

// NormalizePage moves page into [1, maxPage] and resets an out of range
// pageSize to the default
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}
	return page, pageSize
}

func offset(page, pageSize int) int {
	return (page - 1) * pageSize
}
