package request

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shareit-go/item-sharing-backend/internal/pkg/apperror"
)

// IDParam parses the named path parameter as an int64 identifier.
func IDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, apperror.Newf(http.StatusBadRequest, "Invalid %s.", name)
	}
	return id, nil
}

// QueryInt parses an optional integer query parameter with a default.
func QueryInt(c *gin.Context, name string, defaultValue int) (int, error) {
	raw := c.DefaultQuery(name, strconv.Itoa(defaultValue))
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.Newf(http.StatusBadRequest, "Invalid %s.", name)
	}
	return v, nil
}

// FromSize parses the from/size pagination query parameters with the
// API defaults (from=0, size=10).
func FromSize(c *gin.Context) (int, int, error) {
	from, err := QueryInt(c, "from", 0)
	if err != nil {
		return 0, 0, err
	}
	size, err := QueryInt(c, "size", 10)
	if err != nil {
		return 0, 0, err
	}
	return from, size, nil
}
