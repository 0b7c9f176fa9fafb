package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseBoolQuery parses the boolean query parameter key. A missing or empty parameter
// yields defaultValue. Accepted values are those of strconv.ParseBool.
func ParseBoolQuery(c *gin.Context, key string, defaultValue bool) (bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return defaultValue, nil
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s parameter: must be true or false", key)
	}

	return value, nil
}
