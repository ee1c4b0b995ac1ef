package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ParsePageParams extracts and clamps the pagination parameters from the
// request query. page defaults to 1 and is floored at 1; pageSize defaults
// to 10 and is clamped to [1, MaxPageSize]. Unparseable values fall back to
// the defaults.
func ParsePageParams(c *gin.Context) (page, pageSize int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	pageSize, err = strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if err != nil || pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return page, pageSize
}

// OffsetLimit converts a 1-based page number into a SQL offset and limit.
func OffsetLimit(page, pageSize int) (offset, limit int) {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}
	return (page - 1) * pageSize, pageSize
}
