package http

import (
	"github.com/shareit-go/item-sharing-backend/internal/item"
	"github.com/shareit-go/item-sharing-backend/internal/pkg/localtime"
)

type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId"`
}

type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type CreateCommentRequest struct {
	Text string `json:"text"`
}

type ItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	RequestID   *int64 `json:"requestId"`
}

func NewItemResponse(i *item.Item) ItemResponse {
	return ItemResponse{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Available:   i.Available,
		OwnerID:     i.OwnerID,
		RequestID:   i.RequestID,
	}
}

type BookingTag struct {
	ID       int64                   `json:"id"`
	BookerID int64                   `json:"bookerId"`
	Start    localtime.LocalDateTime `json:"start"`
	End      localtime.LocalDateTime `json:"end"`
}

func newBookingTag(b *item.BookingInfo) *BookingTag {
	if b == nil {
		return nil
	}
	return &BookingTag{
		ID:       b.ID,
		BookerID: b.BookerID,
		Start:    localtime.Of(b.Start),
		End:      localtime.Of(b.End),
	}
}

type CommentResponse struct {
	ID         int64                   `json:"id"`
	Text       string                  `json:"text"`
	AuthorName string                  `json:"authorName"`
	Created    localtime.LocalDateTime `json:"created"`
}

func NewCommentResponse(cm *item.Comment) CommentResponse {
	return CommentResponse{
		ID:         cm.ID,
		Text:       cm.Text,
		AuthorName: cm.AuthorName,
		Created:    localtime.Of(cm.Created),
	}
}

// ProjectionResponse is an item with comments and, for the owner, the
// last and next approved bookings.
type ProjectionResponse struct {
	ItemResponse
	LastBooking *BookingTag       `json:"lastBooking"`
	NextBooking *BookingTag       `json:"nextBooking"`
	Comments    []CommentResponse `json:"comments"`
}

func NewProjectionResponse(p *item.Projection) ProjectionResponse {
	comments := make([]CommentResponse, 0, len(p.Comments))
	for i := range p.Comments {
		comments = append(comments, NewCommentResponse(&p.Comments[i]))
	}
	return ProjectionResponse{
		ItemResponse: NewItemResponse(&p.Item),
		LastBooking:  newBookingTag(p.LastBooking),
		NextBooking:  newBookingTag(p.NextBooking),
		Comments:     comments,
	}
}
