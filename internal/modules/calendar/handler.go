package calendar

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/netfirms/staycal/internal/domain"
	"github.com/netfirms/staycal/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin is enforced by the CORS layer in front of us.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	service *Service
	hub     *Hub
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/calendar", h.Rooms)
	rg.GET("/calendar/rooms/:id", h.Month)
	rg.GET("/calendar/ws", h.Watch)
}

// Rooms returns the homestay's rooms for the calendar page room switcher.
func (h *Handler) Rooms(c *gin.Context) {
	rooms, err := h.service.Rooms(c.Request.Context(), homestayID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Request failed")
		return
	}
	out := make([]gin.H, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, gin.H{"id": r.ID, "name": r.Name, "has_ota_feed": r.OTAICalURL != ""})
	}
	response.Success(c, http.StatusOK, gin.H{"rooms": out})
}

// Month returns one room's month view. Defaults to the current month.
func (h *Handler) Month(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || roomID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room id")
		return
	}

	now := time.Now().UTC()
	year, err := intQuery(c, "year", now.Year())
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "year must be an integer")
		return
	}
	month, err := intQuery(c, "month", int(now.Month()))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "month must be an integer")
		return
	}

	view, err := h.service.Month(c.Request.Context(), homestayID(c), roomID, year, time.Month(month))
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid year or month")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Request failed")
		}
		return
	}

	if view.Bookings == nil {
		view.Bookings = []domain.Booking{}
	}
	response.Success(c, http.StatusOK, gin.H{"calendar": view})
}

// Watch upgrades to a websocket and keeps the connection registered with
// the hub until the client goes away.
func (h *Handler) Watch(c *gin.Context) {
	id := homestayID(c)
	if id == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("calendar ws_upgrade_failed homestay_id=%d err=%v", id, err)
		return
	}

	h.hub.Register(id, conn)
	defer h.hub.Unregister(id, conn)

	// Clients only listen; the read loop just detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	v := c.Query(name)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func homestayID(c *gin.Context) int64 {
	return c.GetInt64("homestay_id")
}
