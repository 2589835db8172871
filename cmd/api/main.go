package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/netfirms/staycal/internal/config"
	"github.com/netfirms/staycal/internal/database"
	"github.com/netfirms/staycal/internal/ical"
	"github.com/netfirms/staycal/internal/metrics"
	"github.com/netfirms/staycal/internal/middleware"
	"github.com/netfirms/staycal/internal/modules/availability"
	"github.com/netfirms/staycal/internal/modules/booking"
	"github.com/netfirms/staycal/internal/modules/calendar"
	"github.com/netfirms/staycal/internal/modules/checkout"
	"github.com/netfirms/staycal/internal/modules/room"
	jwtsvc "github.com/netfirms/staycal/internal/pkg/jwt"
	"github.com/netfirms/staycal/internal/repository"
)

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
	if err := repository.Migrate(db); err != nil {
		log.Fatal(err)
	}

	metrics.Register()

	bookingRepo := repository.NewBookingRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	homestayRepo := repository.NewHomestayRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	// One process uses the in-memory feed cache; a fleet shares Redis.
	var feeds availability.FeedCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		feeds = ical.NewRedisFeedCache(rdb, cfg.OTACacheTTL, ical.HTTPFetcher(cfg.OTAFetchTimeout))
		log.Printf("ota_cache backend=redis addr=%s ttl=%s", cfg.RedisAddr, cfg.OTACacheTTL)
	} else {
		feeds = ical.NewFeedCache(cfg.OTACacheTTL, cfg.OTAFetchTimeout)
		log.Printf("ota_cache backend=memory ttl=%s", cfg.OTACacheTTL)
	}

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	hub := calendar.NewHub()
	defer hub.Close()

	availabilityService := availability.NewService(bookingRepo, roomRepo, feeds)
	sweeper := checkout.NewService(bookingRepo)

	bookingService := booking.NewService(bookingRepo, roomRepo, availabilityService, sweeper, hub)
	bookingHandler := booking.NewHandler(bookingService)

	roomService := room.NewService(roomRepo, homestayRepo, subscriptionRepo)
	roomHandler := room.NewHandler(roomService)

	calendarService := calendar.NewService(bookingRepo, roomRepo, feeds, sweeper)
	calendarHandler := calendar.NewHandler(calendarService, hub)

	r := gin.New()
	r.Use(
		gin.Logger(),
		middleware.RequestID(),
		middleware.ErrorLogger(),
		middleware.CORS(cfg.CORSOrigins),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			bookingHandler.RegisterRoutes(protected)
			roomHandler.RegisterRoutes(protected)
			calendarHandler.RegisterRoutes(protected)
		}
	}

	log.Printf("listening addr=%s env=%s", cfg.HTTPAddr, cfg.AppEnv)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
