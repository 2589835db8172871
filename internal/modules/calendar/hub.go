package calendar

import (
	"sync"

	"github.com/gorilla/websocket"
)

// ChangeEvent is pushed to every open calendar view of a homestay when a
// booking mutates, so grids refresh without polling.
type ChangeEvent struct {
	Type      string `json:"type"`
	RoomID    int64  `json:"room_id"`
	BookingID int64  `json:"booking_id"`
	Action    string `json:"action"`
}

// Hub tracks open calendar websockets per homestay. Several browser tabs
// may watch the same homestay at once.
type Hub struct {
	mutex       sync.RWMutex
	connections map[int64]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]map[*websocket.Conn]bool),
	}
}

func (h *Hub) Register(homestayID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.connections[homestayID] == nil {
		h.connections[homestayID] = make(map[*websocket.Conn]bool)
	}
	h.connections[homestayID][conn] = true
}

func (h *Hub) Unregister(homestayID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if conns, exists := h.connections[homestayID]; exists {
		if conns[conn] {
			_ = conn.Close()
			delete(conns, conn)
		}
		if len(conns) == 0 {
			delete(h.connections, homestayID)
		}
	}
}

// NotifyBookingChanged broadcasts to every viewer of the homestay. Write
// failures drop the connection; the client reconnects.
func (h *Hub) NotifyBookingChanged(homestayID, roomID, bookingID int64, action string) {
	event := ChangeEvent{
		Type:      "booking_changed",
		RoomID:    roomID,
		BookingID: bookingID,
		Action:    action,
	}

	h.mutex.RLock()
	conns := make([]*websocket.Conn, 0, len(h.connections[homestayID]))
	for conn := range h.connections[homestayID] {
		conns = append(conns, conn)
	}
	h.mutex.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(event); err != nil {
			h.Unregister(homestayID, conn)
		}
	}
}

func (h *Hub) ViewerCount(homestayID int64) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections[homestayID])
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for homestayID, conns := range h.connections {
		for conn := range conns {
			_ = conn.Close()
		}
		delete(h.connections, homestayID)
	}
}
