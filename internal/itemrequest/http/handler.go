package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shareit-go/item-sharing-backend/internal/identity"
	"github.com/shareit-go/item-sharing-backend/internal/itemrequest"
	"github.com/shareit-go/item-sharing-backend/internal/pkg/request"
	"github.com/shareit-go/item-sharing-backend/internal/pkg/response"
)

type Handler struct {
	service itemrequest.Service
}

func NewHandler(service itemrequest.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateItemRequestRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, itemrequest.ErrEmptyDescription)
		return
	}

	r, err := h.service.Create(c.Request.Context(), identity.CallerID(c), body.Description)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemRequestResponse(r))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := request.IDParam(c, "requestId")
	if err != nil {
		response.Error(c, err)
		return
	}

	wi, err := h.service.GetByID(c.Request.Context(), id, identity.CallerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewWithItemsResponse(wi))
}

func (h *Handler) ListOwn(c *gin.Context) {
	requests, err := h.service.ListByRequester(c.Request.Context(), identity.CallerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewWithItemsResponses(requests))
}

func (h *Handler) ListAll(c *gin.Context) {
	from, size, err := request.FromSize(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	requests, err := h.service.ListAll(c.Request.Context(), identity.CallerID(c), from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewWithItemsResponses(requests))
}
