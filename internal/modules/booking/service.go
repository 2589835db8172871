package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/netfirms/staycal/internal/domain"
	"github.com/netfirms/staycal/internal/modules/availability"
	"github.com/netfirms/staycal/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
)

const dateLayout = "2006-01-02"

type Service struct {
	bookings BookingRepository
	rooms    RoomRepository
	checker  AvailabilityChecker
	sweeper  Sweeper
	notifs   ChangeNotifier
}

func NewService(
	bookings BookingRepository,
	rooms RoomRepository,
	checker AvailabilityChecker,
	sweeper Sweeper,
	notifs ChangeNotifier,
) *Service {
	return &Service{
		bookings: bookings,
		rooms:    rooms,
		checker:  checker,
		sweeper:  sweeper,
		notifs:   notifs,
	}
}

// ListFilter mirrors the query params of the listing endpoint.
type ListFilter struct {
	RoomID int64
	Start  string
	End    string
}

// List returns the homestay's bookings, newest stay first. The
// auto-checkout sweep runs first so listings do not show stays that ended
// yesterday as still checked in.
func (s *Service) List(ctx context.Context, homestayID int64, f ListFilter) ([]domain.Booking, error) {
	if s.sweeper != nil {
		s.sweeper.RunQuietly(ctx)
	}

	repoFilter := repository.BookingFilter{RoomID: f.RoomID}
	if f.Start != "" {
		t, err := parseDate(f.Start)
		if err != nil {
			return nil, ErrValidation
		}
		repoFilter.Start = t
	}
	if f.End != "" {
		t, err := parseDate(f.End)
		if err != nil {
			return nil, ErrValidation
		}
		repoFilter.End = t
	}

	return s.bookings.ListForHomestay(ctx, homestayID, repoFilter)
}

func (s *Service) Create(ctx context.Context, homestayID int64, req CreateBookingRequest) (*domain.Booking, error) {
	if strings.TrimSpace(req.GuestName) == "" {
		return nil, ErrValidation
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, ErrValidation
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, ErrValidation
	}

	status := domain.BookingConfirmed
	if req.Status != "" {
		status = domain.BookingStatus(req.Status)
		if !status.Valid() {
			return nil, ErrValidation
		}
	}

	room, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil || room.HomestayID != homestayID {
		return nil, ErrRoomNotFound
	}

	if err := s.ensureAvailable(ctx, req.RoomID, start, end, 0); err != nil {
		return nil, err
	}

	b := &domain.Booking{
		RoomID:       req.RoomID,
		GuestName:    strings.TrimSpace(req.GuestName),
		GuestContact: strings.TrimSpace(req.GuestContact),
		StartDate:    start,
		EndDate:      end,
		Price:        req.Price,
		Status:       status,
		Comment:      strings.TrimSpace(req.Comment),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		// The overlap check and the insert are not atomic; the range
		// exclusion constraint is the backstop that closes the race.
		if isOverlapConstraintViolation(err) {
			return nil, ErrInternalConflict
		}
		return nil, err
	}

	if s.notifs != nil {
		s.notifs.NotifyBookingChanged(homestayID, b.RoomID, b.ID, "created")
	}
	return b, nil
}

func (s *Service) Update(ctx context.Context, homestayID, bookingID int64, req UpdateBookingRequest) (*domain.Booking, error) {
	b, err := s.scopedBooking(ctx, homestayID, bookingID)
	if err != nil {
		return nil, err
	}

	roomID := b.RoomID
	if req.RoomID != nil {
		roomID = *req.RoomID
	}
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil || room.HomestayID != homestayID {
		return nil, ErrRoomNotFound
	}

	start := b.StartDate
	if req.StartDate != nil {
		if start, err = parseDate(*req.StartDate); err != nil {
			return nil, ErrValidation
		}
	}
	end := b.EndDate
	if req.EndDate != nil {
		if end, err = parseDate(*req.EndDate); err != nil {
			return nil, ErrValidation
		}
	}

	if err := s.ensureAvailable(ctx, roomID, start, end, b.ID); err != nil {
		return nil, err
	}

	b.RoomID = roomID
	b.StartDate = start
	b.EndDate = end
	if req.GuestName != nil {
		if strings.TrimSpace(*req.GuestName) == "" {
			return nil, ErrValidation
		}
		b.GuestName = strings.TrimSpace(*req.GuestName)
	}
	if req.GuestContact != nil {
		b.GuestContact = strings.TrimSpace(*req.GuestContact)
	}
	if req.Price != nil {
		b.Price = req.Price
	}
	if req.Status != nil {
		status := domain.BookingStatus(*req.Status)
		if !status.Valid() {
			return nil, ErrValidation
		}
		b.Status = status
	}
	if req.Comment != nil {
		b.Comment = strings.TrimSpace(*req.Comment)
	}

	if err := s.bookings.Update(ctx, b); err != nil {
		if isOverlapConstraintViolation(err) {
			return nil, ErrInternalConflict
		}
		return nil, err
	}

	if s.notifs != nil {
		s.notifs.NotifyBookingChanged(homestayID, b.RoomID, b.ID, "updated")
	}
	return b, nil
}

func (s *Service) Delete(ctx context.Context, homestayID, bookingID int64) error {
	b, err := s.scopedBooking(ctx, homestayID, bookingID)
	if err != nil {
		return err
	}
	if err := s.bookings.Delete(ctx, b.ID); err != nil {
		return err
	}
	if s.notifs != nil {
		s.notifs.NotifyBookingChanged(homestayID, b.RoomID, b.ID, "deleted")
	}
	return nil
}

// UpdateStatus applies a manual lifecycle transition. Operators may move a
// booking between any states; only the sweeper is restricted to the
// active-to-checked_out edge.
func (s *Service) UpdateStatus(ctx context.Context, homestayID, bookingID int64, status string) (*domain.Booking, error) {
	next := domain.BookingStatus(status)
	if !next.Valid() {
		return nil, ErrValidation
	}

	b, err := s.scopedBooking(ctx, homestayID, bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.bookings.UpdateStatus(ctx, b.ID, next); err != nil {
		return nil, err
	}
	b.Status = next

	if s.notifs != nil {
		s.notifs.NotifyBookingChanged(homestayID, b.RoomID, b.ID, "status")
	}
	return b, nil
}

// CheckAvailability exposes the checker for the pre-flight endpoint the
// booking form calls while the operator picks dates.
func (s *Service) CheckAvailability(ctx context.Context, homestayID, roomID int64, startStr, endStr string, excludeID int64) (*availability.Decision, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil || room.HomestayID != homestayID {
		return nil, ErrRoomNotFound
	}

	start, err := parseDate(startStr)
	if err != nil {
		return nil, availability.ErrInvalidRange
	}
	end, err := parseDate(endStr)
	if err != nil {
		return nil, availability.ErrInvalidRange
	}

	return s.checker.Check(ctx, availability.CheckRequest{
		RoomID:           roomID,
		Start:            start,
		End:              end,
		ExcludeBookingID: excludeID,
	})
}

func (s *Service) ensureAvailable(ctx context.Context, roomID int64, start, end time.Time, excludeID int64) error {
	decision, err := s.checker.Check(ctx, availability.CheckRequest{
		RoomID:           roomID,
		Start:            start,
		End:              end,
		ExcludeBookingID: excludeID,
	})
	if err != nil {
		return err
	}
	if decision.OK {
		return nil
	}
	switch decision.Reason {
	case availability.ReasonExternalConflict:
		return ErrExternalConflict
	default:
		return ErrInternalConflict
	}
}

func (s *Service) scopedBooking(ctx context.Context, homestayID, bookingID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, ErrNotFound
	}
	room, err := s.rooms.GetByID(ctx, b.RoomID)
	if err != nil || room.HomestayID != homestayID {
		return nil, ErrNotFound
	}
	return b, nil
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, strings.TrimSpace(s), time.UTC)
}

// isOverlapConstraintViolation recognizes the Postgres range-exclusion
// constraint on (room_id, daterange) firing when two requests raced past
// the in-process check.
func isOverlapConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code == "23P01" {
		return true
	}
	return pgErr.Code == "23505" && pgErr.ConstraintName == "idx_no_overbooking"
}
