package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shareit-go/item-sharing-backend/internal/identity"
	"github.com/shareit-go/item-sharing-backend/internal/item"
	"github.com/shareit-go/item-sharing-backend/internal/pkg/apperror"
	"github.com/shareit-go/item-sharing-backend/internal/pkg/request"
	"github.com/shareit-go/item-sharing-backend/internal/pkg/response"
)

type Handler struct {
	service item.Service
}

func NewHandler(service item.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperror.Wrap(err, http.StatusBadRequest, "All item fields must be filled in."))
		return
	}

	i, err := h.service.Create(c.Request.Context(), identity.CallerID(c), item.CreateRequest{
		Name:        body.Name,
		Description: body.Description,
		Available:   *body.Available,
		RequestID:   body.RequestID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemResponse(i))
}

func (h *Handler) Update(c *gin.Context) {
	id, err := request.IDParam(c, "itemId")
	if err != nil {
		response.Error(c, err)
		return
	}

	var body UpdateItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperror.Wrap(err, http.StatusBadRequest, "Invalid request body."))
		return
	}

	i, err := h.service.Update(c.Request.Context(), identity.CallerID(c), id, item.UpdateRequest{
		Name:        body.Name,
		Description: body.Description,
		Available:   body.Available,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemResponse(i))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := request.IDParam(c, "itemId")
	if err != nil {
		response.Error(c, err)
		return
	}

	p, err := h.service.GetProjection(c.Request.Context(), id, identity.CallerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewProjectionResponse(p))
}

func (h *Handler) GetAll(c *gin.Context) {
	from, size, err := request.FromSize(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	projections, err := h.service.ListByOwner(c.Request.Context(), identity.CallerID(c), from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ProjectionResponse, 0, len(projections))
	for _, p := range projections {
		items = append(items, NewProjectionResponse(p))
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Search(c *gin.Context) {
	from, size, err := request.FromSize(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	found, err := h.service.Search(c.Request.Context(), c.Query("text"), from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ItemResponse, 0, len(found))
	for _, i := range found {
		items = append(items, NewItemResponse(i))
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := request.IDParam(c, "itemId")
	if err != nil {
		response.Error(c, err)
		return
	}

	i, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemResponse(i))
}

func (h *Handler) AddComment(c *gin.Context) {
	id, err := request.IDParam(c, "itemId")
	if err != nil {
		response.Error(c, err)
		return
	}

	var body CreateCommentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, item.ErrEmptyComment)
		return
	}

	cm, err := h.service.AddComment(c.Request.Context(), identity.CallerID(c), id, body.Text)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCommentResponse(cm))
}
