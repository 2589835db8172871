package room

import (
	"context"

	"github.com/netfirms/staycal/internal/domain"
)

type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	Update(ctx context.Context, room *domain.Room) error
	Delete(ctx context.Context, id int64) error
	ListByHomestay(ctx context.Context, homestayID int64) ([]domain.Room, error)
	CountByHomestay(ctx context.Context, homestayID int64) (int64, error)
}

type HomestayRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Homestay, error)
}

// SubscriptionRepository is the read-only view onto the state the billing
// collaborator maintains; room creation is gated on the owner's plan.
type SubscriptionRepository interface {
	GetByOwner(ctx context.Context, ownerID int64) (*domain.Subscription, error)
	GetPlanByID(ctx context.Context, id int64) (*domain.Plan, error)
	GetFreePlan(ctx context.Context) (*domain.Plan, error)
}
