package repository

import (
	"context"
	"time"

	"github.com/netfirms/staycal/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	RoomID       int64     `gorm:"column:room_id;index"`
	GuestName    string    `gorm:"column:guest_name"`
	GuestContact *string   `gorm:"column:guest_contact"`
	StartDate    time.Time `gorm:"column:start_date;index"`
	EndDate      time.Time `gorm:"column:end_date;index"`
	Price        *float64  `gorm:"column:price"`
	Status       string    `gorm:"column:status"`
	Comment      *string   `gorm:"column:comment"`
	ImageURL     *string   `gorm:"column:image_url"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	b := &domain.Booking{
		ID:        m.ID,
		RoomID:    m.RoomID,
		GuestName: m.GuestName,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		Price:     m.Price,
		Status:    domain.BookingStatus(m.Status),
		CreatedAt: m.CreatedAt,
	}
	if m.GuestContact != nil {
		b.GuestContact = *m.GuestContact
	}
	if m.Comment != nil {
		b.Comment = *m.Comment
	}
	if m.ImageURL != nil {
		b.ImageURL = *m.ImageURL
	}
	return b
}

func toBookingModel(b *domain.Booking) bookingModel {
	m := bookingModel{
		ID:        b.ID,
		RoomID:    b.RoomID,
		GuestName: b.GuestName,
		StartDate: b.StartDate,
		EndDate:   b.EndDate,
		Price:     b.Price,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
	}
	if b.GuestContact != "" {
		v := b.GuestContact
		m.GuestContact = &v
	}
	if b.Comment != "" {
		v := b.Comment
		m.Comment = &v
	}
	if b.ImageURL != "" {
		v := b.ImageURL
		m.ImageURL = &v
	}
	return m
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&bookingModel{}, id).Error
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}

// ListByRoom returns a room's bookings for the overlap check. excludeID,
// when non-zero, removes one booking from the result so edits do not
// conflict with themselves. An empty statuses slice means every status
// participates.
func (r *BookingRepository) ListByRoom(ctx context.Context, roomID int64, excludeID int64, statuses []domain.BookingStatus) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).Where("room_id = ?", roomID)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statusStrings(statuses))
	}

	var rows []bookingModel
	if err := q.Order("start_date ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainBookings(rows), nil
}

// BookingFilter narrows ListForHomestay. Zero values mean "no filter".
type BookingFilter struct {
	RoomID int64
	Start  time.Time
	End    time.Time
}

func (r *BookingRepository) ListForHomestay(ctx context.Context, homestayID int64, f BookingFilter) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).
		Table("bookings").
		Select("bookings.*").
		Joins("JOIN rooms ON rooms.id = bookings.room_id").
		Where("rooms.homestay_id = ?", homestayID)
	if f.RoomID > 0 {
		q = q.Where("bookings.room_id = ?", f.RoomID)
	}
	if !f.Start.IsZero() {
		q = q.Where("bookings.end_date > ?", f.Start)
	}
	if !f.End.IsZero() {
		q = q.Where("bookings.start_date < ?", f.End)
	}

	var rows []bookingModel
	if err := q.Order("bookings.start_date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainBookings(rows), nil
}

// ListForMonth returns the bookings touching [monthStart, monthEnd] for
// one room, for the calendar grid.
func (r *BookingRepository) ListForMonth(ctx context.Context, roomID int64, monthStart, monthEnd time.Time) ([]domain.Booking, error) {
	var rows []bookingModel
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Where("start_date <= ? AND end_date >= ?", monthEnd, monthStart).
		Order("start_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainBookings(rows), nil
}

// CheckoutPastDue flips every booking with end_date before today and a
// status in the given set to checked_out, in one batch. Returns the number
// of rows changed; a second run on the same day changes nothing.
func (r *BookingRepository) CheckoutPastDue(ctx context.Context, today time.Time, statuses []domain.BookingStatus) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("end_date < ?", today).
		Where("status IN ?", statusStrings(statuses)).
		Update("status", string(domain.BookingCheckedOut))
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func toDomainBookings(rows []bookingModel) []domain.Booking {
	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}
