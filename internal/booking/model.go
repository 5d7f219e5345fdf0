package booking

import (
	"net/http"
	"time"

	"github.com/shareit-go/item-sharing-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "Booking not found.")
	ErrNoAccess        = apperror.New(http.StatusNotFound, "The user does not have access to the requested booking.")
	ErrNotOwner        = apperror.New(http.StatusNotFound, "This user can't change status.")
	ErrOwnItem         = apperror.New(http.StatusNotFound, "You can't booking own items.")
	ErrAlreadyApproved = apperror.New(http.StatusBadRequest, "This booking is approved before that.")
	ErrNotWaiting      = apperror.New(http.StatusBadRequest, "Booking is not in WAITING state.")
	ErrInvalidRange    = apperror.New(http.StatusBadRequest, "Invalid booking range")
)

// Status is the booking lifecycle state. WAITING is the only initial
// state; APPROVED and REJECTED are terminal for this engine.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// StateFilter selects the temporal slice of bookings a list query returns.
type StateFilter string

const (
	FilterAll      StateFilter = "ALL"
	FilterCurrent  StateFilter = "CURRENT"
	FilterPast     StateFilter = "PAST"
	FilterFuture   StateFilter = "FUTURE"
	FilterWaiting  StateFilter = "WAITING"
	FilterRejected StateFilter = "REJECTED"
)

// ParseStateFilter validates a state query parameter. The error message
// carries the rejected value verbatim; clients match on it.
func ParseStateFilter(s string) (StateFilter, error) {
	switch StateFilter(s) {
	case FilterAll, FilterCurrent, FilterPast, FilterFuture, FilterWaiting, FilterRejected:
		return StateFilter(s), nil
	default:
		return "", apperror.Newf(http.StatusBadRequest, "Unknown state: %s", s)
	}
}

// Booking is a reservation of an item for the half-open interval
// [Start, End). Rows are flattened with the item and booker names so
// responses need no extra lookups.
type Booking struct {
	ID         int64
	ItemID     int64
	ItemName   string
	BookerID   int64
	BookerName string
	Start      time.Time
	End        time.Time
	Status     Status
}
