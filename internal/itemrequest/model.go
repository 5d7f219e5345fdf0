package itemrequest

import (
	"net/http"
	"time"

	"github.com/shareit-go/item-sharing-backend/internal/item"
	"github.com/shareit-go/item-sharing-backend/internal/pkg/apperror"
)

var ErrEmptyDescription = apperror.New(http.StatusBadRequest, "Description can't be empty.")

// ItemRequest is a wish for an item to borrow. Items published in answer
// to it link back via Item.RequestID.
type ItemRequest struct {
	ID          int64
	Description string
	RequesterID int64
	Created     time.Time
}

// WithItems is a request together with the items answering it.
type WithItems struct {
	ItemRequest
	Items []*item.Item
}
