package calendar

import (
	"context"
	"log"
	"time"

	"github.com/netfirms/staycal/internal/domain"
	"github.com/netfirms/staycal/internal/ical"
	"github.com/netfirms/staycal/internal/interval"
)

// MonthView is everything a calendar grid needs for one room and month:
// the homestay's own bookings plus busy blocks from the room's OTA feed.
type MonthView struct {
	RoomID   int64            `json:"room_id"`
	RoomName string           `json:"room_name"`
	Year     int              `json:"year"`
	Month    int              `json:"month"`
	Bookings []domain.Booking `json:"bookings"`
	External []ical.Event     `json:"external"`
}

type Service struct {
	bookings BookingStore
	rooms    RoomStore
	feeds    FeedCache
	sweeper  Sweeper
}

func NewService(bookings BookingStore, rooms RoomStore, feeds FeedCache, sweeper Sweeper) *Service {
	return &Service{bookings: bookings, rooms: rooms, feeds: feeds, sweeper: sweeper}
}

// Month assembles the view for one room. OTA feed trouble degrades to an
// empty external list; the grid still renders the homestay's own bookings.
func (s *Service) Month(ctx context.Context, homestayID, roomID int64, year int, month time.Month) (*MonthView, error) {
	if year < 2000 || year > 2100 || month < time.January || month > time.December {
		return nil, ErrValidation
	}

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil || room.HomestayID != homestayID {
		return nil, ErrNotFound
	}

	if s.sweeper != nil {
		s.sweeper.RunQuietly(ctx)
	}

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	nextMonth := monthStart.AddDate(0, 1, 0)
	monthEnd := nextMonth.AddDate(0, 0, -1)

	bookings, err := s.bookings.ListForMonth(ctx, roomID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	var external []ical.Event
	if room.OTAICalURL != "" {
		events, err := s.feeds.GetEvents(ctx, room.OTAICalURL)
		if err != nil {
			log.Printf("calendar ota_feed_degraded room_id=%d err=%v", roomID, err)
		}
		for _, e := range events {
			if interval.Overlaps(e.Start, e.End, monthStart, nextMonth) {
				external = append(external, e)
			}
		}
	}

	return &MonthView{
		RoomID:   room.ID,
		RoomName: room.Name,
		Year:     year,
		Month:    int(month),
		Bookings: bookings,
		External: external,
	}, nil
}

// Rooms lists the homestay's rooms so the calendar page can build its
// room switcher.
func (s *Service) Rooms(ctx context.Context, homestayID int64) ([]domain.Room, error) {
	return s.rooms.ListByHomestay(ctx, homestayID)
}
