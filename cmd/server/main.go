package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/kevinwu/room-reservation/internal/config"
	"github.com/kevinwu/room-reservation/internal/database"
	"github.com/kevinwu/room-reservation/internal/handler"
	appmw "github.com/kevinwu/room-reservation/internal/middleware"
	"github.com/kevinwu/room-reservation/internal/queue"
	"github.com/kevinwu/room-reservation/internal/repository"
	"github.com/kevinwu/room-reservation/internal/router"
	"github.com/kevinwu/room-reservation/internal/service"
)

func main() {
	// Load .env if present; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}
	if cfg.SeedDemo {
		if err := database.Seed(context.Background(), db, cfg.BcryptCost); err != nil {
			log.Fatalf("seed database: %v", err)
		}
	}

	// Redis is optional: caching and rate limiting degrade to no-ops
	// when no client could be created.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Print("redis unavailable; response cache and rate limiting disabled")
	}

	userRepo := repository.NewUserRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	booking := service.NewBookingService(reservationRepo)

	authHandler := handler.NewAuthHandler(cfg, userRepo)
	roomHandler := handler.NewRoomHandler(roomRepo)
	reservationHandler := handler.NewReservationHandler(userRepo, reservationRepo, booking)

	// Background consumer appends reservation.created events to
	// logs/reservation.log; it reconnects on broker failures forever.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	cache := appmw.NewRedisCache(config.LoadCacheConfig(), rdb)
	limiter := appmw.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	router.RegisterRoutes(e, authHandler, roomHandler, reservationHandler, cfg.JWTSecret, cache, limiter)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
