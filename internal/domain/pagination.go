package domain

// PaginatedResult wraps a page of rows together with the total row count.
type PaginatedResult[T any] struct {
	Data       []T   `json:"data"`
	Count      int64 `json:"count"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}
