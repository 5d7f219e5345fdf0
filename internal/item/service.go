package item

import (
	"context"
	"net/http"
	"strings"

	"github.com/shareit-go/item-sharing-backend/internal/pkg/apperror"
	"github.com/shareit-go/item-sharing-backend/internal/pkg/clock"
	"github.com/shareit-go/item-sharing-backend/internal/pkg/pagination"
	"github.com/shareit-go/item-sharing-backend/internal/user"
)

// CreateRequest carries the fields for publishing an item.
type CreateRequest struct {
	Name        string
	Description string
	Available   bool
	RequestID   *int64
}

// UpdateRequest carries a partial item update. Nil or blank fields are
// left as is.
type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

type Service interface {
	Create(ctx context.Context, ownerID int64, req CreateRequest) (*Item, error)
	Update(ctx context.Context, callerID, itemID int64, req UpdateRequest) (*Item, error)
	Delete(ctx context.Context, itemID int64) (*Item, error)

	// Get is the plain fetch used by collaborating services; no
	// projection is computed.
	Get(ctx context.Context, itemID int64) (*Item, error)

	// GetProjection returns the item with comments attached and, when
	// the viewer owns the item, the last/next approved bookings.
	GetProjection(ctx context.Context, itemID, viewerID int64) (*Projection, error)

	// ListByOwner returns projections for every item the owner shares.
	ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]*Projection, error)

	Search(ctx context.Context, text string, from, size int) ([]*Item, error)

	AddComment(ctx context.Context, authorID, itemID int64, text string) (*Comment, error)
}

type service struct {
	repo     Repository
	comments CommentRepository
	users    user.Service
	bookings BookingLookup
	clock    clock.Clock
}

// NewService creates a new item Service.
func NewService(repo Repository, comments CommentRepository, users user.Service, bookings BookingLookup, clk clock.Clock) Service {
	return &service{
		repo:     repo,
		comments: comments,
		users:    users,
		bookings: bookings,
		clock:    clk,
	}
}

func (s *service) Create(ctx context.Context, ownerID int64, req CreateRequest) (*Item, error) {
	if err := s.containsUser(ctx, ownerID); err != nil {
		return nil, err
	}

	i := &Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
		OwnerID:     ownerID,
		RequestID:   req.RequestID,
	}
	if err := s.repo.Create(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *service) Update(ctx context.Context, callerID, itemID int64, req UpdateRequest) (*Item, error) {
	if err := s.containsUser(ctx, callerID); err != nil {
		return nil, err
	}

	i, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	// Foreign callers get not-found rather than forbidden, so item
	// existence is not leaked.
	if i.OwnerID != callerID {
		return nil, apperror.Newf(http.StatusNotFound, "This item can update only user with id = %d", i.OwnerID)
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		i.Name = *req.Name
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) != "" {
		i.Description = *req.Description
	}
	if req.Available != nil {
		i.Available = *req.Available
	}

	if err := s.repo.Update(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *service) Delete(ctx context.Context, itemID int64) (*Item, error) {
	i, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, itemID); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *service) Get(ctx context.Context, itemID int64) (*Item, error) {
	return s.repo.GetByID(ctx, itemID)
}

func (s *service) GetProjection(ctx context.Context, itemID, viewerID int64) (*Projection, error) {
	i, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	p := &Projection{Item: *i, Comments: comments}
	if viewerID != i.OwnerID {
		return p, nil
	}

	now := s.clock.Now()
	if p.LastBooking, err = s.bookings.LastForItem(ctx, itemID, now); err != nil {
		return nil, err
	}
	if p.NextBooking, err = s.bookings.NextForItem(ctx, itemID, now); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]*Projection, error) {
	if err := s.containsUser(ctx, ownerID); err != nil {
		return nil, err
	}

	page, err := pagination.New(from, size)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, err
	}

	projections := make([]*Projection, 0, len(items))
	for _, i := range items {
		p, err := s.GetProjection(ctx, i.ID, ownerID)
		if err != nil {
			return nil, err
		}
		projections = append(projections, p)
	}
	return projections, nil
}

func (s *service) Search(ctx context.Context, text string, from, size int) ([]*Item, error) {
	if strings.TrimSpace(text) == "" {
		return []*Item{}, nil
	}

	page, err := pagination.New(from, size)
	if err != nil {
		return nil, err
	}
	return s.repo.Search(ctx, text, page)
}

func (s *service) AddComment(ctx context.Context, authorID, itemID int64, text string) (*Comment, error) {
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	i, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyComment
	}

	now := s.clock.Now()
	// Only a booker whose approved booking has already finished may
	// comment; end == now does not qualify.
	eligible, err := s.bookings.HasFinishedBooking(ctx, i.ID, author.ID, now)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, ErrCommentNotAllowed
	}

	cm := &Comment{
		ItemID:     i.ID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Text:       text,
		Created:    now,
	}
	if err := s.comments.Create(ctx, cm); err != nil {
		return nil, err
	}
	return cm, nil
}

func (s *service) containsUser(ctx context.Context, id int64) error {
	exists, err := s.users.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.Newf(http.StatusNotFound, "User with id = %d not exist.", id)
	}
	return nil
}
