package booking

import (
	"context"
	"time"

	"github.com/shareit-go/item-sharing-backend/internal/item"
)

type itemLookup struct {
	repo Repository
}

// NewItemLookup adapts the booking repository to the lookup port the
// item package consumes for its projection and comment checks.
func NewItemLookup(repo Repository) item.BookingLookup {
	return &itemLookup{repo: repo}
}

func (l *itemLookup) LastForItem(ctx context.Context, itemID int64, at time.Time) (*item.BookingInfo, error) {
	b, err := l.repo.LastApprovedBefore(ctx, itemID, at)
	if err != nil {
		return nil, err
	}
	return toBookingInfo(b), nil
}

func (l *itemLookup) NextForItem(ctx context.Context, itemID int64, at time.Time) (*item.BookingInfo, error) {
	b, err := l.repo.NextApprovedAfter(ctx, itemID, at)
	if err != nil {
		return nil, err
	}
	return toBookingInfo(b), nil
}

func (l *itemLookup) HasFinishedBooking(ctx context.Context, itemID, userID int64, at time.Time) (bool, error) {
	return l.repo.HasFinishedApproved(ctx, itemID, userID, at)
}

func toBookingInfo(b *Booking) *item.BookingInfo {
	if b == nil {
		return nil
	}
	return &item.BookingInfo{
		ID:       b.ID,
		BookerID: b.BookerID,
		Start:    b.Start,
		End:      b.End,
	}
}
