// Package availability is the single authority deciding whether a room
// may be booked for a date range. It combines the internal overlap query
// with the room's external OTA calendar and never mutates booking state.
package availability

import (
	"context"
	"log"
	"time"

	"github.com/netfirms/staycal/internal/domain"
	"github.com/netfirms/staycal/internal/interval"
	"github.com/netfirms/staycal/internal/metrics"
)

type Reason string

const (
	ReasonNone             Reason = ""
	ReasonInternalConflict Reason = "internal_conflict"
	ReasonExternalConflict Reason = "external_conflict"
)

// Decision is the outcome of a check. Conflicts carries the internal
// bookings that collide; ExternalTitle names the OTA event when the
// conflict is external.
type Decision struct {
	OK            bool             `json:"ok"`
	Reason        Reason           `json:"reason,omitempty"`
	Conflicts     []domain.Booking `json:"conflicts,omitempty"`
	ExternalTitle string           `json:"external_title,omitempty"`
}

// CheckRequest describes a proposed stay. ExcludeBookingID is set when
// editing, so the booking does not conflict with itself. Statuses selects
// which booking statuses occupy the room; nil means the active set
// (tentative, confirmed, checked_in).
type CheckRequest struct {
	RoomID           int64
	Start            time.Time
	End              time.Time
	ExcludeBookingID int64
	Statuses         []domain.BookingStatus
}

type Service struct {
	bookings BookingStore
	rooms    RoomStore
	feeds    FeedCache
}

func NewService(bookings BookingStore, rooms RoomStore, feeds FeedCache) *Service {
	return &Service{bookings: bookings, rooms: rooms, feeds: feeds}
}

// Check validates the range, then tests the proposed stay against internal
// bookings and the room's OTA feed. Internal conflicts win over external
// ones. Store errors propagate; feed errors degrade to "no external
// conflicts" so an unreachable OTA never blocks a booking.
func (s *Service) Check(ctx context.Context, req CheckRequest) (*Decision, error) {
	if req.Start.IsZero() || req.End.IsZero() || !req.End.After(req.Start) {
		metrics.IncAvailabilityCheck("invalid_range")
		return nil, ErrInvalidRange
	}

	start := interval.DateOf(req.Start)
	end := interval.DateOf(req.End)

	room, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	statuses := req.Statuses
	if statuses == nil {
		statuses = domain.ActiveStatuses
	}

	existing, err := s.bookings.ListByRoom(ctx, req.RoomID, req.ExcludeBookingID, statuses)
	if err != nil {
		return nil, err
	}

	var conflicts []domain.Booking
	for _, b := range existing {
		if interval.Overlaps(start, end, b.StartDate, b.EndDate) {
			conflicts = append(conflicts, b)
		}
	}
	if len(conflicts) > 0 {
		metrics.IncAvailabilityCheck(string(ReasonInternalConflict))
		return &Decision{OK: false, Reason: ReasonInternalConflict, Conflicts: conflicts}, nil
	}

	if room.OTAICalURL != "" {
		events, err := s.feeds.GetEvents(ctx, room.OTAICalURL)
		if err != nil {
			// Feed unavailability must never block booking creation.
			log.Printf("availability ota_feed_degraded room_id=%d err=%v", room.ID, err)
			metrics.IncOTAFetch("failed")
			events = nil
		}
		for _, ev := range events {
			if interval.Overlaps(start, end, ev.Start, ev.End) {
				metrics.IncAvailabilityCheck(string(ReasonExternalConflict))
				return &Decision{OK: false, Reason: ReasonExternalConflict, ExternalTitle: ev.Title}, nil
			}
		}
	}

	metrics.IncAvailabilityCheck("ok")
	return &Decision{OK: true}, nil
}
