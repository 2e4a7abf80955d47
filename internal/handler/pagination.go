package handler

import (
	"net/http"
	"net/url"
	"strconv"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// PageDTO is the limit/offset pagination wrapper around a result list.
type PageDTO struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

type pageParams struct {
	limit  int
	offset int
}

// parsePageParams reads limit and offset query parameters. Invalid or
// missing values fall back to the defaults; limit is clamped to
// maxPageLimit.
func parsePageParams(r *http.Request) pageParams {
	p := pageParams{limit: defaultPageLimit}

	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			p.limit = parsed
		}
	}
	if p.limit > maxPageLimit {
		p.limit = maxPageLimit
	}

	if v := r.URL.Query().Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			p.offset = parsed
		}
	}
	return p
}

// paginatedResponse builds the page wrapper with absolute next and
// previous links, or null when the respective page does not exist.
func paginatedResponse(r *http.Request, count int, results any, p pageParams) PageDTO {
	page := PageDTO{Count: count, Results: results}

	if p.offset+p.limit < count {
		next := pageURL(r, p.limit, p.offset+p.limit)
		page.Next = &next
	}
	if p.offset > 0 {
		prevOffset := p.offset - p.limit
		if prevOffset < 0 {
			prevOffset = 0
		}
		prev := pageURL(r, p.limit, prevOffset)
		page.Previous = &prev
	}
	return page
}

// pageURL rebuilds the request URL with the given limit and offset.
// An offset of zero is omitted from the query string.
func pageURL(r *http.Request, limit, offset int) string {
	u := &url.URL{
		Scheme: requestScheme(r),
		Host:   r.Host,
		Path:   r.URL.Path,
	}

	q := r.URL.Query()
	q.Set("limit", strconv.Itoa(limit))
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	} else {
		q.Del("offset")
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func requestScheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
