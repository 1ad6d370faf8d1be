package helpers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage = 1
	MaxLimit    = 100
)

// PageParams holds the parsed pagination query parameters. Limit 0 means
// "no limit": the listing returns every row, which the dashboard relies on
// when it renders the whole table at once.
type PageParams struct {
	Page  int
	Limit int
}

// ParsePageParams extracts page and limit from the request query string.
func ParsePageParams(c *gin.Context) PageParams {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err == nil && parsed > 0 {
			limit = parsed
			if limit > MaxLimit {
				limit = MaxLimit
			}
		}
	}

	return PageParams{Page: page, Limit: limit}
}

// Offset converts the 1-based page into a row offset.
func (p PageParams) Offset() uint64 {
	if p.Limit == 0 || p.Page < 1 {
		return 0
	}
	return uint64((p.Page - 1) * p.Limit)
}

// TotalPages computes the page count for a result set.
func (p PageParams) TotalPages(total int64) int {
	if p.Limit == 0 {
		return 1
	}
	if total == 0 {
		return 1
	}
	return int(math.Ceil(float64(total) / float64(p.Limit)))
}
