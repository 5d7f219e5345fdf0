package item

import (
	"context"
	"net/http"
	"time"

	"github.com/shareit-go/item-sharing-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "Item not found.")
	ErrUnavailable       = apperror.New(http.StatusBadRequest, "Item is not available now.")
	ErrEmptyComment      = apperror.New(http.StatusBadRequest, "Text of comment can't be empty.")
	ErrCommentNotAllowed = apperror.New(http.StatusBadRequest, "This user can't add comment to this item.")
)

// Item is something a user shares. Available gates new bookings;
// RequestID links the item to the request it was published for.
type Item struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
	RequestID   *int64
}

// Comment is feedback a booker leaves after a finished booking.
type Comment struct {
	ID         int64
	ItemID     int64
	AuthorID   int64
	AuthorName string
	Text       string
	Created    time.Time
}

// BookingInfo is the booking summary attached to an item projection.
type BookingInfo struct {
	ID       int64
	BookerID int64
	Start    time.Time
	End      time.Time
}

// BookingLookup is the slice of the booking engine this package needs:
// the last/next approved booking probes for the owner projection and the
// finished-booking probe that gates comments. Implemented by the booking
// package; declared here to keep the dependency one-way.
type BookingLookup interface {
	LastForItem(ctx context.Context, itemID int64, at time.Time) (*BookingInfo, error)
	NextForItem(ctx context.Context, itemID int64, at time.Time) (*BookingInfo, error)
	HasFinishedBooking(ctx context.Context, itemID, userID int64, at time.Time) (bool, error)
}

// Projection is an item as seen through GET /items/{id}: comments for
// everyone, last/next booking only when the viewer owns the item.
type Projection struct {
	Item
	LastBooking *BookingInfo
	NextBooking *BookingInfo
	Comments    []Comment
}
