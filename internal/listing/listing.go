// Package listing holds the paging arithmetic shared by the dashboard listings.
package listing

import (
	"net/url"
	"strconv"
	"strings"
)

// Normalize trims the search query and clamps the page number to 1 or more.
func Normalize(query string, page int) (string, int) {
	if page < 1 {
		page = 1
	}
	return strings.TrimSpace(query), page
}

// Offset returns the first row of page when pages hold perPage rows.
func Offset(page, perPage int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * perPage
}

// TotalPages returns how many pages of size perPage hold count rows.
func TotalPages(count, perPage int) int {
	if count <= 0 || perPage <= 0 {
		return 0
	}
	return (count + perPage - 1) / perPage
}

// CacheKey identifies one page of a listing in the page cache.
func CacheKey(query string, page int) string {
	v := url.Values{}
	v.Set("query", query)
	v.Set("page", strconv.Itoa(page))
	return v.Encode()
}
