package room

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/netfirms/staycal/internal/pkg/response"
	"github.com/netfirms/staycal/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/rooms", h.List)
	rg.POST("/rooms", h.Create)
	rg.GET("/rooms/:id", h.Get)
	rg.PATCH("/rooms/:id", h.Update)
	rg.DELETE("/rooms/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	rooms, err := h.service.List(c.Request.Context(), homestayID(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	out := make([]RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toRoomResponse(r))
	}
	response.Success(c, http.StatusOK, gin.H{"rooms": out})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	room, err := h.service.Get(c.Request.Context(), homestayID(c), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": toRoomResponse(*room)})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room data", errs)
		return
	}

	room, err := h.service.Create(c.Request.Context(), homestayID(c), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"room": toRoomResponse(*room)})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room data", errs)
		return
	}

	room, err := h.service.Update(c.Request.Context(), homestayID(c), id, req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": toRoomResponse(*room)})
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

func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room data")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
	case errors.Is(err, ErrRoomLimitReached):
		response.Error(c, http.StatusForbidden, "PLAN_LIMIT", "Room limit for the current plan reached")
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
