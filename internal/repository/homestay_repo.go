package repository

import (
	"context"
	"time"

	"github.com/netfirms/staycal/internal/domain"

	"gorm.io/gorm"
)

type HomestayRepository struct {
	db *gorm.DB
}

func NewHomestayRepository(db *gorm.DB) *HomestayRepository {
	return &HomestayRepository{db: db}
}

type homestayModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	OwnerID   int64     `gorm:"column:owner_id"`
	Name      string    `gorm:"column:name"`
	Address   *string   `gorm:"column:address"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (homestayModel) TableName() string { return "homestays" }

func (r *HomestayRepository) GetByID(ctx context.Context, id int64) (*domain.Homestay, error) {
	var m homestayModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	h := &domain.Homestay{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
	}
	if m.Address != nil {
		h.Address = *m.Address
	}
	return h, nil
}
