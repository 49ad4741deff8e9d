package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// MaxLimit caps every list endpoint.
const MaxLimit = 100

// ParsePagination parses offset and limit query parameters.
// Defaults are 0 for offset and 50 for limit; limit cannot exceed MaxLimit.
func ParsePagination(c *gin.Context) (offset, limit int, err error) {
	offsetStr := c.DefaultQuery("offset", "0")
	offset, err = strconv.Atoi(offsetStr)
	if err != nil || offset < 0 {
		return 0, 0, fmt.Errorf("invalid offset parameter: must be a non-negative integer")
	}

	limit, err = ParseLimit(c, 50)
	if err != nil {
		return 0, 0, err
	}

	return offset, limit, nil
}

// ParseLimit parses the limit query parameter, falling back to defaultLimit.
func ParseLimit(c *gin.Context, defaultLimit int) (int, error) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 || limit > MaxLimit {
		return 0, fmt.Errorf("invalid limit parameter: must be between 1 and %d", MaxLimit)
	}
	return limit, nil
}
