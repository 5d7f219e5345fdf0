package booking

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/shareit-go/item-sharing-backend/internal/item"
	"github.com/shareit-go/item-sharing-backend/internal/pkg/apperror"
	"github.com/shareit-go/item-sharing-backend/internal/pkg/clock"
	"github.com/shareit-go/item-sharing-backend/internal/pkg/pagination"
	"github.com/shareit-go/item-sharing-backend/internal/user"
)

// CreateRequest carries the fields for a new booking.
type CreateRequest struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

type Service interface {
	// Create books an item for [Start, End) on behalf of bookerID. The
	// booking starts WAITING; the item owner approves or rejects it.
	Create(ctx context.Context, bookerID int64, req CreateRequest) (*Booking, error)

	// Approve moves a WAITING booking to APPROVED or REJECTED. Only the
	// item owner may do this; both outcomes are terminal.
	Approve(ctx context.Context, id int64, approved bool, callerID int64) (*Booking, error)

	// GetByID returns the booking if the caller is its booker or the
	// item owner; anyone else gets not-found.
	GetByID(ctx context.Context, id, callerID int64) (*Booking, error)

	ListByBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]*Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]*Booking, error)
}

type service struct {
	repo  Repository
	users user.Service
	items item.Service
	clock clock.Clock
}

// NewService creates a new booking Service.
func NewService(repo Repository, users user.Service, items item.Service, clk clock.Clock) Service {
	return &service{
		repo:  repo,
		users: users,
		items: items,
		clock: clk,
	}
}

func (s *service) Create(ctx context.Context, bookerID int64, req CreateRequest) (*Booking, error) {
	booker, err := s.users.GetByID(ctx, bookerID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, apperror.Newf(http.StatusNotFound, "User with id = %d not exist.", bookerID)
		}
		return nil, err
	}

	it, err := s.loadAvailableItem(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID == bookerID {
		return nil, ErrOwnItem
	}

	if !req.Start.Before(req.End) || req.Start.Before(s.clock.Now()) {
		return nil, ErrInvalidRange
	}

	b := &Booking{
		ItemID:     it.ID,
		ItemName:   it.Name,
		BookerID:   booker.ID,
		BookerName: booker.Name,
		Start:      req.Start,
		End:        req.End,
		Status:     StatusWaiting,
	}
	// The repository re-checks for a conflicting APPROVED booking under
	// an item row lock before inserting.
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Approve(ctx context.Context, id int64, approved bool, callerID int64) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.containsUser(ctx, callerID); err != nil {
		return nil, err
	}

	it, err := s.items.Get(ctx, b.ItemID)
	if err != nil {
		return nil, err
	}
	// A non-owner is answered with not-found so booking existence is
	// not leaked to strangers.
	if it.OwnerID != callerID {
		return nil, ErrNotOwner
	}

	switch b.Status {
	case StatusApproved:
		return nil, ErrAlreadyApproved
	case StatusRejected:
		return nil, ErrNotWaiting
	}

	if approved {
		b.Status = StatusApproved
	} else {
		b.Status = StatusRejected
	}
	if err := s.repo.UpdateStatus(ctx, b.ID, b.Status); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id, callerID int64) (*Booking, error) {
	if err := s.containsUser(ctx, callerID); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	it, err := s.items.Get(ctx, b.ItemID)
	if err != nil {
		return nil, err
	}
	if b.BookerID != callerID && it.OwnerID != callerID {
		return nil, ErrNoAccess
	}
	return b, nil
}

func (s *service) ListByBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]*Booking, error) {
	if err := s.containsUser(ctx, bookerID); err != nil {
		return nil, err
	}

	filter, err := ParseStateFilter(state)
	if err != nil {
		return nil, err
	}
	page, err := pagination.New(from, size)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	switch filter {
	case FilterCurrent:
		return s.repo.ListByBookerCurrent(ctx, bookerID, now, page)
	case FilterPast:
		return s.repo.ListByBookerPast(ctx, bookerID, now, page)
	case FilterFuture:
		return s.repo.ListByBookerFuture(ctx, bookerID, now, page)
	case FilterWaiting:
		return s.repo.ListByBookerStatus(ctx, bookerID, StatusWaiting, page)
	case FilterRejected:
		return s.repo.ListByBookerStatus(ctx, bookerID, StatusRejected, page)
	default:
		return s.repo.ListByBooker(ctx, bookerID, page)
	}
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]*Booking, error) {
	if err := s.containsUser(ctx, ownerID); err != nil {
		return nil, err
	}

	filter, err := ParseStateFilter(state)
	if err != nil {
		return nil, err
	}
	page, err := pagination.New(from, size)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	switch filter {
	case FilterCurrent:
		return s.repo.ListByOwnerCurrent(ctx, ownerID, now, page)
	case FilterPast:
		return s.repo.ListByOwnerPast(ctx, ownerID, now, page)
	case FilterFuture:
		return s.repo.ListByOwnerFuture(ctx, ownerID, now, page)
	case FilterWaiting:
		return s.repo.ListByOwnerStatus(ctx, ownerID, StatusWaiting, page)
	case FilterRejected:
		return s.repo.ListByOwnerStatus(ctx, ownerID, StatusRejected, page)
	default:
		return s.repo.ListByOwner(ctx, ownerID, page)
	}
}

func (s *service) loadAvailableItem(ctx context.Context, itemID int64) (*item.Item, error) {
	it, err := s.items.Get(ctx, itemID)
	if err != nil {
		if errors.Is(err, item.ErrNotFound) {
			return nil, apperror.Newf(http.StatusNotFound, "Item with id = %d not exist.", itemID)
		}
		return nil, err
	}
	if !it.Available {
		return nil, item.ErrUnavailable
	}
	return it, nil
}

func (s *service) containsUser(ctx context.Context, id int64) error {
	exists, err := s.users.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return user.ErrNotFound
	}
	return nil
}
