package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/travel-booking/internal/config"     // Internal config loader
	"github.com/iliyamo/travel-booking/internal/database"   // MySQL connection pool
	"github.com/iliyamo/travel-booking/internal/handler"    // HTTP handlers
	"github.com/iliyamo/travel-booking/internal/mailer"     // SMTP mailer for notifications
	"github.com/iliyamo/travel-booking/internal/middleware" // Rate limiting and caching middleware
	"github.com/iliyamo/travel-booking/internal/queue"      // Email event consumer
	"github.com/iliyamo/travel-booking/internal/repository" // Data access layer
	"github.com/iliyamo/travel-booking/internal/router"     // Route registration
)

func main() {
	if err := godotenv.Load(); err != nil { // Load .env if present
		log.Println("no .env file found, relying on environment")
	}

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName, database.PoolFromEnv()) // Open MySQL pool
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories share the single connection pool.
	clients := repository.NewClientRepo(db)
	trips := repository.NewTripRepo(db)
	reservations := repository.NewReservationRepo(db)
	payments := repository.NewPaymentRepo(db)
	users := repository.NewUserRepo(db)
	logs := repository.NewLogRepo(db)

	// Start the email consumer in the background.  It reconnects on its
	// own, so a broker outage never blocks request handling.
	go queue.StartEmailConsumer(mailer.New(cfg))

	e := echo.New()

	// Redis-backed middleware degrades to pass-through when Redis is
	// unreachable or disabled via config.
	rdb := config.NewRedisClient()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterUsuario(e, handler.NewAuthHandler(cfg, users))
	router.RegisterClientes(e, handler.NewClientHandler(clients), cache)
	router.RegisterViagens(e, handler.NewTripHandler(trips), cache)
	router.RegisterReservas(e, handler.NewReservationHandler(reservations, clients, trips, logs), cfg.JWTSecret, cache)
	router.RegisterPagamentos(e, handler.NewPaymentHandler(payments, reservations, logs), cfg.JWTSecret)
	router.RegisterLogs(e, handler.NewLogHandler(logs), cfg.JWTSecret)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err)
	}
}
