package http

import (
	itemHttp "github.com/shareit-go/item-sharing-backend/internal/item/http"
	"github.com/shareit-go/item-sharing-backend/internal/itemrequest"
	"github.com/shareit-go/item-sharing-backend/internal/pkg/localtime"
)

type CreateItemRequestRequest struct {
	Description string `json:"description"`
}

type ItemRequestResponse struct {
	ID          int64                   `json:"id"`
	Description string                  `json:"description"`
	RequesterID int64                   `json:"requesterId"`
	Created     localtime.LocalDateTime `json:"created"`
}

func NewItemRequestResponse(r *itemrequest.ItemRequest) ItemRequestResponse {
	return ItemRequestResponse{
		ID:          r.ID,
		Description: r.Description,
		RequesterID: r.RequesterID,
		Created:     localtime.Of(r.Created),
	}
}

// WithItemsResponse is a request together with the items published in
// answer to it.
type WithItemsResponse struct {
	ItemRequestResponse
	Items []itemHttp.ItemResponse `json:"items"`
}

func NewWithItemsResponse(wi *itemrequest.WithItems) WithItemsResponse {
	items := make([]itemHttp.ItemResponse, 0, len(wi.Items))
	for _, i := range wi.Items {
		items = append(items, itemHttp.NewItemResponse(i))
	}
	return WithItemsResponse{
		ItemRequestResponse: NewItemRequestResponse(&wi.ItemRequest),
		Items:               items,
	}
}

func NewWithItemsResponses(requests []*itemrequest.WithItems) []WithItemsResponse {
	items := make([]WithItemsResponse, 0, len(requests))
	for _, wi := range requests {
		items = append(items, NewWithItemsResponse(wi))
	}
	return items
}
