package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/config"
	"github.com/iliyamo/restaurant-table-reservation/internal/database"
	"github.com/iliyamo/restaurant-table-reservation/internal/handler"
	"github.com/iliyamo/restaurant-table-reservation/internal/middleware"
	"github.com/iliyamo/restaurant-table-reservation/internal/queue"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
	"github.com/iliyamo/restaurant-table-reservation/internal/router"
	queue_publisher "github.com/iliyamo/restaurant-table-reservation/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	hours := config.LoadHoursConfig()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	reservations := repository.NewReservationRepo(db)
	tables := repository.NewTableRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	resHandler := handler.NewReservationHandler(reservations, hours, nil)
	tblHandler := handler.NewTableHandler(tables, reservations, queue_publisher.PublishSeatingEvent)
	authHandler := handler.NewAuthHandler(cfg, users, tokens)

	e := echo.New()

	rdb := config.NewRedisClient()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	readCache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterReservations(e, resHandler, cfg.JWTSecret, readCache)
	router.RegisterTables(e, tblHandler, cfg.JWTSecret, readCache)

	// Consumer writes seating activity to logs/seating.log; it reconnects
	// on its own and must not block startup.
	go func() {
		if err := queue.StartSeatingConsumer(); err != nil {
			log.Printf("⚠️ seating consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
