package httputil

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseListing reads the query and page parameters of a listing request.
// A missing or malformed page falls back to the first page.
func ParseListing(c *gin.Context) (query string, page int) {
	query = c.Query("query")

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	return query, page
}
