package httputil

import (
	"net/http"
	"strconv"
)

// Pagination is the page/limit pair parsed from a request's query string
type Pagination struct {
	Page  int
	Limit int
}

// ParsePagination reads page and limit query parameters, falling back to
// the given defaults for missing or malformed values. Values below 1 are
// treated as malformed.
func ParsePagination(r *http.Request, defaultPage, defaultLimit int) Pagination {
	p := Pagination{Page: defaultPage, Limit: defaultLimit}

	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 1 {
			p.Page = v
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 1 {
			p.Limit = v
		}
	}

	return p
}

// PageMeta is the pagination block echoed in list responses
type PageMeta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// NewPageMeta computes the page count from a total and limit
func NewPageMeta(page, limit, total int) PageMeta {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return PageMeta{Page: page, Limit: limit, Total: total, Pages: pages}
}
