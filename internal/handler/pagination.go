package handler

import (
	"strconv"

	"github.com/deppfellow/foodgram/internal/model"
	"github.com/labstack/echo/v4"
)

// PageQuery is embedded by listing requests. Pointers keep an explicit
// ?page=0 apart from a missing parameter.
type PageQuery struct {
	Page  *int `query:"page" validate:"omitempty,gte=1"`
	Limit *int `query:"limit" validate:"omitempty,gte=1"`
}

func (q PageQuery) Pagination() model.Pagination {
	return model.NewPagination(valueOr(q.Page, 1), valueOr(q.Limit, model.DefaultPageSize))
}

func valueOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

// paginate wraps results into the {count,next,previous,results} envelope.
// next/previous are absolute URLs of the neighbouring pages that keep every
// other query parameter; the first page is linked without ?page.
func paginate[T any](c echo.Context, p model.Pagination, total int, results []T) *model.PaginatedResponse[T] {
	if results == nil {
		results = []T{}
	}

	resp := &model.PaginatedResponse[T]{
		Count:   total,
		Results: results,
	}
	if p.HasNext(total) {
		next := pageURL(c, p.Page+1)
		resp.Next = &next
	}
	if p.Page > 1 {
		previous := pageURL(c, p.Page-1)
		resp.Previous = &previous
	}
	return resp
}

func pageURL(c echo.Context, page int) string {
	r := c.Request()

	u := *r.URL
	u.Scheme = c.Scheme()
	u.Host = r.Host

	query := u.Query()
	if page <= 1 {
		query.Del("page")
	} else {
		query.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = query.Encode()

	return u.String()
}
