package model

// DefaultPageSize is the page size when the client does not send `limit`.
const DefaultPageSize = 6

// MaxPageSize caps `limit`.
const MaxPageSize = 100

// PaginatedResponse is the envelope of every paginated listing.
type PaginatedResponse[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// Pagination is a resolved page request.
type Pagination struct {
	Page  int
	Limit int
}

// NewPagination clamps raw page/limit values to sane bounds.
func NewPagination(page, limit int) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return Pagination{Page: page, Limit: limit}
}

// Offset is the number of rows to skip.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// HasNext reports whether a page follows this one.
func (p Pagination) HasNext(total int) bool {
	return p.Offset()+p.Limit < total
}
