// Package paging wraps list results with 1-based page metadata.
package paging

type Result[T any] struct {
	Items        []T   `json:"items"`
	Page         int   `json:"page"`
	PageSize     int   `json:"pageSize"`
	TotalRecords int64 `json:"totalRecords"`
	TotalPages   int   `json:"totalPages"`
}

func NewResult[T any](items []T, page, pageSize int, total int64) Result[T] {
	pages := 0
	if pageSize > 0 {
		pages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return Result[T]{
		Items:        items,
		Page:         page,
		PageSize:     pageSize,
		TotalRecords: total,
		TotalPages:   pages,
	}
}

// Clamp normalizes page/pageSize the way the list endpoints expect.
func Clamp(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 200 {
		pageSize = 10
	}
	return page, pageSize
}
