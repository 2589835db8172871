package room

import (
	"context"
	"strings"
	"time"

	"github.com/netfirms/staycal/internal/domain"
)

type Service struct {
	rooms     RoomRepository
	homestays HomestayRepository
	subs      SubscriptionRepository
}

func NewService(rooms RoomRepository, homestays HomestayRepository, subs SubscriptionRepository) *Service {
	return &Service{rooms: rooms, homestays: homestays, subs: subs}
}

func (s *Service) List(ctx context.Context, homestayID int64) ([]domain.Room, error) {
	return s.rooms.ListByHomestay(ctx, homestayID)
}

func (s *Service) Get(ctx context.Context, homestayID, roomID int64) (*domain.Room, error) {
	return s.scopedRoom(ctx, homestayID, roomID)
}

func (s *Service) Create(ctx context.Context, homestayID int64, req CreateRoomRequest) (*domain.Room, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrValidation
	}

	if err := s.checkRoomLimit(ctx, homestayID); err != nil {
		return nil, err
	}

	capacity := req.Capacity
	if capacity <= 0 {
		capacity = 2
	}

	room := &domain.Room{
		HomestayID:  homestayID,
		Name:        strings.TrimSpace(req.Name),
		Capacity:    capacity,
		DefaultRate: req.DefaultRate,
		OTAICalURL:  strings.TrimSpace(req.OTAICalURL),
		ImageURL:    req.ImageURL,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) Update(ctx context.Context, homestayID, roomID int64, req UpdateRoomRequest) (*domain.Room, error) {
	room, err := s.scopedRoom(ctx, homestayID, roomID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrValidation
		}
		room.Name = strings.TrimSpace(*req.Name)
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, ErrValidation
		}
		room.Capacity = *req.Capacity
	}
	if req.DefaultRate != nil {
		room.DefaultRate = req.DefaultRate
	}
	if req.OTAICalURL != nil {
		room.OTAICalURL = strings.TrimSpace(*req.OTAICalURL)
	}
	if req.ImageURL != nil {
		room.ImageURL = *req.ImageURL
	}

	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// Delete removes the room; bookings cascade with it.
func (s *Service) Delete(ctx context.Context, homestayID, roomID int64) error {
	room, err := s.scopedRoom(ctx, homestayID, roomID)
	if err != nil {
		return err
	}
	return s.rooms.Delete(ctx, room.ID)
}

// checkRoomLimit enforces the owner's plan room limit. No subscription
// falls back to the free plan; no plans at all means no gating.
func (s *Service) checkRoomLimit(ctx context.Context, homestayID int64) error {
	homestay, err := s.homestays.GetByID(ctx, homestayID)
	if err != nil {
		return err
	}

	var plan *domain.Plan
	sub, err := s.subs.GetByOwner(ctx, homestay.OwnerID)
	if err != nil {
		return err
	}
	if sub != nil && sub.Current(time.Now().UTC()) {
		plan, err = s.subs.GetPlanByID(ctx, sub.PlanID)
	} else {
		plan, err = s.subs.GetFreePlan(ctx)
	}
	if err != nil {
		return err
	}
	if plan == nil || plan.RoomLimit <= 0 {
		return nil
	}

	count, err := s.rooms.CountByHomestay(ctx, homestayID)
	if err != nil {
		return err
	}
	if count >= int64(plan.RoomLimit) {
		return ErrRoomLimitReached
	}
	return nil
}

func (s *Service) scopedRoom(ctx context.Context, homestayID, roomID int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil || room.HomestayID != homestayID {
		return nil, ErrNotFound
	}
	return room, nil
}
