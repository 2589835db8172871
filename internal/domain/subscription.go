package domain

import "time"

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionExpired   SubscriptionStatus = "expired"
)

type Plan struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	PriceMonthly float64 `json:"price_monthly"`
	PriceYearly  float64 `json:"price_yearly"`
	// RoomLimit of 0 means unlimited.
	RoomLimit int  `json:"room_limit"`
	UserLimit int  `json:"user_limit"`
	IsActive  bool `json:"is_active"`
}

type Subscription struct {
	ID        int64              `json:"id"`
	OwnerID   int64              `json:"owner_id"`
	PlanID    int64              `json:"plan_id"`
	Status    SubscriptionStatus `json:"status"`
	ExpiresAt *time.Time         `json:"expires_at,omitempty"`
}

// Current reports whether the subscription still grants its plan's limits
// at the given instant. Billing lives outside this service; we only read
// the state it maintains.
func (s Subscription) Current(now time.Time) bool {
	if s.Status != SubscriptionActive {
		return false
	}
	if s.ExpiresAt != nil && s.ExpiresAt.Before(now) {
		return false
	}
	return true
}
