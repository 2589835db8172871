package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/netfirms/staycal/internal/modules/availability"
	"github.com/netfirms/staycal/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings", h.List)
	rg.POST("/bookings", h.Create)
	rg.PATCH("/bookings/:id", h.Update)
	rg.DELETE("/bookings/:id", h.Delete)
	rg.POST("/bookings/:id/status", h.UpdateStatus)
	rg.GET("/rooms/:id/availability", h.CheckAvailability)
}

func (h *Handler) List(c *gin.Context) {
	filter := ListFilter{
		Start: c.Query("start"),
		End:   c.Query("end"),
	}
	if v := c.Query("room_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room_id")
			return
		}
		filter.RoomID = id
	}

	bookings, err := h.service.List(c.Request.Context(), homestayID(c), filter)
	if err != nil {
		h.renderError(c, err)
		return
	}

	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": out})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Create(c.Request.Context(), homestayID(c), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"booking": toBookingResponse(*b)})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Update(c.Request.Context(), homestayID(c), id, req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": toBookingResponse(*b)})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), homestayID(c), id); err != nil {
		h.renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), homestayID(c), id, req.Status)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": toBookingResponse(*b)})
}

func (h *Handler) CheckAvailability(c *gin.Context) {
	roomID, ok := pathID(c)
	if !ok {
		return
	}

	var excludeID int64
	if v := c.Query("exclude_booking_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid exclude_booking_id")
			return
		}
		excludeID = id
	}

	decision, err := h.service.CheckAvailability(
		c.Request.Context(), homestayID(c), roomID,
		c.Query("start"), c.Query("end"), excludeID,
	)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"decision": decision})
}

func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking data")
	case errors.Is(err, availability.ErrInvalidRange):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "end_date must be after start_date")
	case errors.Is(err, ErrRoomNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrInternalConflict):
		response.Error(c, http.StatusConflict, "INTERNAL_CONFLICT", "Conflict: overlapping booking exists")
	case errors.Is(err, ErrExternalConflict):
		response.Error(c, http.StatusConflict, "EXTERNAL_CONFLICT", "Conflict: overlaps external OTA calendar")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Request failed")
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}

func homestayID(c *gin.Context) int64 {
	return c.GetInt64("homestay_id")
}
