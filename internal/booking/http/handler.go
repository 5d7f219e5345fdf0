package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shareit-go/item-sharing-backend/internal/booking"
	"github.com/shareit-go/item-sharing-backend/internal/identity"
	"github.com/shareit-go/item-sharing-backend/internal/pkg/apperror"
	"github.com/shareit-go/item-sharing-backend/internal/pkg/request"
	"github.com/shareit-go/item-sharing-backend/internal/pkg/response"
)

var errInvalidApproved = apperror.New(http.StatusBadRequest, "Invalid approved parameter.")

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperror.Wrap(err, http.StatusBadRequest, "Invalid request body."))
		return
	}

	b, err := h.service.Create(c.Request.Context(), identity.CallerID(c), booking.CreateRequest{
		ItemID: body.ItemID,
		Start:  body.Start.Time,
		End:    body.End.Time,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Approve(c *gin.Context) {
	id, err := request.IDParam(c, "bookingId")
	if err != nil {
		response.Error(c, err)
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		response.Error(c, errInvalidApproved)
		return
	}

	b, err := h.service.Approve(c.Request.Context(), id, approved, identity.CallerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := request.IDParam(c, "bookingId")
	if err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id, identity.CallerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) ListForBooker(c *gin.Context) {
	state := c.DefaultQuery("state", "ALL")
	from, size, err := request.FromSize(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	bookings, err := h.service.ListByBooker(c.Request.Context(), identity.CallerID(c), state, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponses(bookings))
}

func (h *Handler) ListForOwner(c *gin.Context) {
	state := c.DefaultQuery("state", "ALL")
	from, size, err := request.FromSize(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	bookings, err := h.service.ListByOwner(c.Request.Context(), identity.CallerID(c), state, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponses(bookings))
}
