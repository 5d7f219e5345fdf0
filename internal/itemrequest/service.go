package itemrequest

import (
	"context"
	"net/http"
	"strings"

	"github.com/shareit-go/item-sharing-backend/internal/item"
	"github.com/shareit-go/item-sharing-backend/internal/pkg/apperror"
	"github.com/shareit-go/item-sharing-backend/internal/pkg/clock"
	"github.com/shareit-go/item-sharing-backend/internal/pkg/pagination"
	"github.com/shareit-go/item-sharing-backend/internal/user"
)

type Service interface {
	Create(ctx context.Context, requesterID int64, description string) (*ItemRequest, error)
	GetByID(ctx context.Context, requestID, callerID int64) (*WithItems, error)

	// ListByRequester returns the caller's own requests with answers.
	ListByRequester(ctx context.Context, userID int64) ([]*WithItems, error)

	// ListAll returns other users' requests with answers, paged.
	ListAll(ctx context.Context, userID int64, from, size int) ([]*WithItems, error)
}

type service struct {
	repo  Repository
	users user.Service
	items item.Repository
	clock clock.Clock
}

// NewService creates a new item request Service.
func NewService(repo Repository, users user.Service, items item.Repository, clk clock.Clock) Service {
	return &service{
		repo:  repo,
		users: users,
		items: items,
		clock: clk,
	}
}

func (s *service) Create(ctx context.Context, requesterID int64, description string) (*ItemRequest, error) {
	if err := s.containsUser(ctx, requesterID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(description) == "" {
		return nil, ErrEmptyDescription
	}

	req := &ItemRequest{
		Description: description,
		RequesterID: requesterID,
		Created:     s.clock.Now(),
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) GetByID(ctx context.Context, requestID, callerID int64) (*WithItems, error) {
	if err := s.containsUser(ctx, callerID); err != nil {
		return nil, err
	}

	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, req)
}

func (s *service) ListByRequester(ctx context.Context, userID int64) ([]*WithItems, error) {
	if err := s.containsUser(ctx, userID); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.attachItemsAll(ctx, requests)
}

func (s *service) ListAll(ctx context.Context, userID int64, from, size int) ([]*WithItems, error) {
	if err := s.containsUser(ctx, userID); err != nil {
		return nil, err
	}

	page, err := pagination.New(from, size)
	if err != nil {
		return nil, err
	}

	requests, err := s.repo.ListOthers(ctx, userID, page)
	if err != nil {
		return nil, err
	}
	return s.attachItemsAll(ctx, requests)
}

func (s *service) attachItems(ctx context.Context, req *ItemRequest) (*WithItems, error) {
	items, err := s.items.ListByRequestID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*item.Item{}
	}
	return &WithItems{ItemRequest: *req, Items: items}, nil
}

func (s *service) attachItemsAll(ctx context.Context, requests []*ItemRequest) ([]*WithItems, error) {
	result := make([]*WithItems, 0, len(requests))
	for _, req := range requests {
		wi, err := s.attachItems(ctx, req)
		if err != nil {
			return nil, err
		}
		result = append(result, wi)
	}
	return result, nil
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
