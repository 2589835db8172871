package repository

import (
	"context"
	"errors"
	"time"

	"github.com/netfirms/staycal/internal/domain"

	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

type planModel struct {
	ID           int64   `gorm:"column:id;primaryKey"`
	Name         string  `gorm:"column:name;uniqueIndex"`
	PriceMonthly float64 `gorm:"column:price_monthly"`
	PriceYearly  float64 `gorm:"column:price_yearly"`
	RoomLimit    int     `gorm:"column:room_limit"`
	UserLimit    int     `gorm:"column:user_limit"`
	IsActive     bool    `gorm:"column:is_active"`
}

func (planModel) TableName() string { return "plans" }

type subscriptionModel struct {
	ID        int64      `gorm:"column:id;primaryKey"`
	OwnerID   int64      `gorm:"column:owner_id;uniqueIndex"`
	PlanID    int64      `gorm:"column:plan_id"`
	Status    string     `gorm:"column:status"`
	ExpiresAt *time.Time `gorm:"column:expires_at"`
}

func (subscriptionModel) TableName() string { return "subscriptions" }

func toDomainPlan(m planModel) *domain.Plan {
	return &domain.Plan{
		ID:           m.ID,
		Name:         m.Name,
		PriceMonthly: m.PriceMonthly,
		PriceYearly:  m.PriceYearly,
		RoomLimit:    m.RoomLimit,
		UserLimit:    m.UserLimit,
		IsActive:     m.IsActive,
	}
}

func (r *SubscriptionRepository) GetByOwner(ctx context.Context, ownerID int64) (*domain.Subscription, error) {
	var m subscriptionModel
	tx := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return &domain.Subscription{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		PlanID:    m.PlanID,
		Status:    domain.SubscriptionStatus(m.Status),
		ExpiresAt: m.ExpiresAt,
	}, nil
}

func (r *SubscriptionRepository) GetPlanByID(ctx context.Context, id int64) (*domain.Plan, error) {
	var m planModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainPlan(m), nil
}

// GetFreePlan returns the fallback plan applied to owners without a
// current subscription.
func (r *SubscriptionRepository) GetFreePlan(ctx context.Context) (*domain.Plan, error) {
	var m planModel
	tx := r.db.WithContext(ctx).Where("name = ?", "free").First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return toDomainPlan(m), nil
}
