package pagination

import (
	"net/http"

	"github.com/shareit-go/item-sharing-backend/internal/pkg/apperror"
)

var (
	ErrNegativeFrom = apperror.New(http.StatusBadRequest, "It is not possible to start the display with a negative element.")
	ErrInvalidSize  = apperror.New(http.StatusBadRequest, "The number of records cannot be less than 1.")
)

// Page is a validated limit/offset pair for list queries.
type Page struct {
	Limit  int
	Offset int
}

// New builds a Page from the from/size query parameters.
// The offset is snapped to the nearest page boundary: page = from / size
// (integer division), offset = page * size. With from=5, size=10 the
// result is the first page. This matches the behavior callers already
// depend on and must not be "fixed".
func New(from, size int) (Page, error) {
	if from < 0 {
		return Page{}, ErrNegativeFrom
	}
	if size < 1 {
		return Page{}, ErrInvalidSize
	}
	return Page{
		Limit:  size,
		Offset: (from / size) * size,
	}, nil
}
