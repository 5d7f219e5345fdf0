package identity

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shareit-go/item-sharing-backend/internal/pkg/apperror"
	"github.com/shareit-go/item-sharing-backend/internal/pkg/response"
)

// Header carries the caller identity, set by the gateway in front of
// this service.
const Header = "X-Sharer-User-Id"

const contextKey = "sharerUserID"

var (
	ErrMissingHeader = apperror.New(http.StatusBadRequest, "X-Sharer-User-Id header is required.")
	ErrInvalidHeader = apperror.New(http.StatusBadRequest, "X-Sharer-User-Id header is invalid.")
)

// Required extracts the caller id from the sharer header and stores it
// in the request context. Requests without a usable header are rejected
// with a validation failure.
func Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(Header)
		if raw == "" {
			response.Error(c, ErrMissingHeader)
			c.Abort()
			return
		}

		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.Error(c, ErrInvalidHeader)
			c.Abort()
			return
		}

		c.Set(contextKey, id)
		c.Next()
	}
}

// CallerID returns the caller id stored by Required, or 0 when absent.
func CallerID(c *gin.Context) int64 {
	v, ok := c.Get(contextKey)
	if !ok {
		return 0
	}
	id, _ := v.(int64)
	return id
}
