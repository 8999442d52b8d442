package pagination

import (
	"net/url"
	"strconv"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Params represents client-requested page parameters
type Params struct {
	Page     int `json:"page" form:"page"`
	PageSize int `json:"page_size" form:"page_size"`
}

// Page represents one page of results with navigation links
type Page struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// FromRequest parses page parameters from query strings, applying
// the default page size and the upper cap.
func FromRequest(pageStr, pageSizeStr string) Params {
	page, _ := strconv.Atoi(pageStr)
	size, _ := strconv.Atoi(pageSizeStr)

	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	return Params{Page: page, PageSize: size}
}

// Offset returns the number of records to skip
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Valid reports whether the requested page exists for the given total.
// Page 1 is always valid so an empty collection still lists.
func (p Params) Valid(total int64) bool {
	if p.Page == 1 {
		return true
	}
	return int64(p.Offset()) < total
}

// NewPage builds the response envelope for the current page. requestURL is the
// URL of the incoming request and is rewritten to produce next/previous links.
func NewPage(requestURL *url.URL, p Params, total int64, results interface{}) *Page {
	page := &Page{
		Count:   total,
		Results: results,
	}

	if int64(p.Offset()+p.PageSize) < total {
		page.Next = pageURL(requestURL, p.Page+1)
	}
	if p.Page > 1 {
		page.Previous = pageURL(requestURL, p.Page-1)
	}

	return page
}

func pageURL(requestURL *url.URL, page int) *string {
	u := *requestURL
	q := u.Query()
	if page <= 1 {
		// The first page link carries no page parameter
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}
