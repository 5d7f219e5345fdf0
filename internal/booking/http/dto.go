package http

import (
	"github.com/shareit-go/item-sharing-backend/internal/booking"
	"github.com/shareit-go/item-sharing-backend/internal/pkg/localtime"
)

// CreateBookingRequest is the POST /bookings body. Timestamps are
// validated by the service; the gateway already shapes the payload.
type CreateBookingRequest struct {
	ItemID int64                   `json:"itemId" binding:"required"`
	Start  localtime.LocalDateTime `json:"start"`
	End    localtime.LocalDateTime `json:"end"`
}

type ItemTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookerTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID     int64                   `json:"id"`
	Start  localtime.LocalDateTime `json:"start"`
	End    localtime.LocalDateTime `json:"end"`
	Status string                  `json:"status"`
	Booker BookerTag               `json:"booker"`
	Item   ItemTag                 `json:"item"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:     b.ID,
		Start:  localtime.Of(b.Start),
		End:    localtime.Of(b.End),
		Status: string(b.Status),
		Booker: BookerTag{ID: b.BookerID, Name: b.BookerName},
		Item:   ItemTag{ID: b.ItemID, Name: b.ItemName},
	}
}

func NewBookingResponses(bookings []*booking.Booking) []BookingResponse {
	items := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, NewBookingResponse(b))
	}
	return items
}
