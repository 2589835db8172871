package repository

import (
	"context"

	"github.com/netfirms/staycal/internal/domain"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

type roomModel struct {
	ID          int64    `gorm:"column:id;primaryKey"`
	HomestayID  int64    `gorm:"column:homestay_id;index"`
	Name        string   `gorm:"column:name"`
	Capacity    int      `gorm:"column:capacity"`
	DefaultRate *float64 `gorm:"column:default_rate"`
	OTAICalURL  *string  `gorm:"column:ota_ical_url"`
	ImageURL    *string  `gorm:"column:image_url"`
}

func (roomModel) TableName() string { return "rooms" }

func toDomainRoom(m roomModel) *domain.Room {
	r := &domain.Room{
		ID:          m.ID,
		HomestayID:  m.HomestayID,
		Name:        m.Name,
		Capacity:    m.Capacity,
		DefaultRate: m.DefaultRate,
	}
	if m.OTAICalURL != nil {
		r.OTAICalURL = *m.OTAICalURL
	}
	if m.ImageURL != nil {
		r.ImageURL = *m.ImageURL
	}
	return r
}

func toRoomModel(r *domain.Room) roomModel {
	m := roomModel{
		ID:          r.ID,
		HomestayID:  r.HomestayID,
		Name:        r.Name,
		Capacity:    r.Capacity,
		DefaultRate: r.DefaultRate,
	}
	if r.OTAICalURL != "" {
		v := r.OTAICalURL
		m.OTAICalURL = &v
	}
	if r.ImageURL != "" {
		v := r.ImageURL
		m.ImageURL = &v
	}
	return m
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*room = *toDomainRoom(m)
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRoom(m), nil
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*room = *toDomainRoom(m)
	return nil
}

// Delete removes the room and, through the FK cascade, its bookings.
func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&roomModel{}, id).Error
}

func (r *RoomRepository) ListByHomestay(ctx context.Context, homestayID int64) ([]domain.Room, error) {
	var rows []roomModel
	err := r.db.WithContext(ctx).
		Where("homestay_id = ?", homestayID).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Room, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainRoom(m))
	}
	return out, nil
}

func (r *RoomRepository) CountByHomestay(ctx context.Context, homestayID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&roomModel{}).
		Where("homestay_id = ?", homestayID).
		Count(&cnt).Error
	return cnt, err
}
