package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/netfirms/staycal/internal/config"
	"github.com/netfirms/staycal/internal/database"
	"github.com/netfirms/staycal/internal/domain"
	"github.com/netfirms/staycal/internal/repository"
)

// Seeds a local database with a demo homestay. Not for production.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	// Cleanup old data (FK-safe order)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM rooms")
	db.Exec("DELETE FROM subscriptions")
	db.Exec("DELETE FROM homestays")
	db.Exec("DELETE FROM plans")

	log.Println("Creating plans...")
	db.Table("plans").Create(map[string]interface{}{
		"id": 1, "name": "free", "price_monthly": 0.0, "price_yearly": 0.0,
		"room_limit": 3, "user_limit": 1, "is_active": true,
	})
	db.Table("plans").Create(map[string]interface{}{
		"id": 2, "name": "pro", "price_monthly": 12.0, "price_yearly": 120.0,
		"room_limit": 0, "user_limit": 5, "is_active": true,
	})

	log.Println("Creating homestay...")
	db.Table("homestays").Create(map[string]interface{}{
		"id": 1, "owner_id": 1, "name": "Baan Suan Homestay",
		"address": "12 Moo 4, Chiang Mai", "created_at": time.Now().UTC(),
	})

	expires := time.Now().UTC().AddDate(0, 1, 0)
	db.Table("subscriptions").Create(map[string]interface{}{
		"id": 1, "owner_id": 1, "plan_id": 2, "status": "active", "expires_at": expires,
	})

	ctx := context.Background()
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	log.Println("Creating rooms...")
	rate := 45.0
	rooms := []*domain.Room{
		{HomestayID: 1, Name: "Garden View", Capacity: 2, DefaultRate: &rate},
		{HomestayID: 1, Name: "River View", Capacity: 3, DefaultRate: &rate,
			OTAICalURL: "https://www.airbnb.com/calendar/ical/demo.ics"},
		{HomestayID: 1, Name: "Family Suite", Capacity: 5},
	}
	for _, r := range rooms {
		if err := roomRepo.Create(ctx, r); err != nil {
			log.Fatal("Room create failed:", err)
		}
	}

	log.Println("Creating bookings...")
	today := time.Now().UTC().Truncate(24 * time.Hour)
	price := 90.0
	bookings := []*domain.Booking{
		{
			RoomID: rooms[0].ID, GuestName: "Anong S.", GuestContact: "+66 81 234 5678",
			StartDate: today.AddDate(0, 0, 2), EndDate: today.AddDate(0, 0, 5),
			Price: &price, Status: domain.BookingConfirmed, CreatedAt: time.Now().UTC(),
		},
		{
			RoomID: rooms[0].ID, GuestName: "Miguel R.",
			StartDate: today.AddDate(0, 0, 5), EndDate: today.AddDate(0, 0, 7),
			Status: domain.BookingTentative, Comment: "asked for late check-in",
			CreatedAt: time.Now().UTC(),
		},
		{
			RoomID: rooms[1].ID, GuestName: "Lena K.",
			StartDate: today.AddDate(0, 0, -1), EndDate: today.AddDate(0, 0, 3),
			Status: domain.BookingCheckedIn, CreatedAt: time.Now().UTC(),
		},
		// Past-due stay; the first sweep flips it to checked_out.
		{
			RoomID: rooms[2].ID, GuestName: "Tom B.",
			StartDate: today.AddDate(0, 0, -6), EndDate: today.AddDate(0, 0, -3),
			Status: domain.BookingCheckedIn, CreatedAt: time.Now().UTC(),
		},
		{
			RoomID: rooms[2].ID, GuestName: "Cancelled guest",
			StartDate: today.AddDate(0, 0, 4), EndDate: today.AddDate(0, 0, 6),
			Status: domain.BookingCancelled, CreatedAt: time.Now().UTC(),
		},
	}
	for _, b := range bookings {
		if err := bookingRepo.Create(ctx, b); err != nil {
			log.Fatal("Booking create failed:", err)
		}
	}

	log.Println("Seed completed!")
	log.Printf("Homestay id=1 rooms=%d bookings=%d", len(rooms), len(bookings))
}
