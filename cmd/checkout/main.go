package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/netfirms/staycal/internal/config"
	"github.com/netfirms/staycal/internal/database"
	"github.com/netfirms/staycal/internal/modules/checkout"
	"github.com/netfirms/staycal/internal/repository"
)

// One-shot auto-checkout sweep for cron. The API runs the same sweep
// lazily on read paths; this keeps statuses fresh on quiet days too.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	svc := checkout.NewService(repository.NewBookingRepository(db))

	n, err := svc.Run(context.Background(), time.Time{})
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("auto_checkout done checked_out=%d", n)
}
