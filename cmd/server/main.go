package main // Entry point package

import (
	"context"
	"log" // Logging library
	"os"
	"time"

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/avelks/donorboard/internal/config"     // Internal config loader
	"github.com/avelks/donorboard/internal/database"   // MySQL pool + migrations
	"github.com/avelks/donorboard/internal/handler"    // HTTP handlers
	"github.com/avelks/donorboard/internal/middleware" // rate limiting
	"github.com/avelks/donorboard/internal/queue"      // donation event consumer
	"github.com/avelks/donorboard/internal/repository" // DB repositories
	"github.com/avelks/donorboard/internal/router"     // Internal router setup
	"github.com/avelks/donorboard/internal/utils"      // decoy password verifier
	"github.com/avelks/donorboard/internal/view"       // HTML renderer
)

func main() {
	cfg := config.Load() // Load environment config (.env aware)

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database open: %v", err)
	}

	// Apply schema migrations before serving a single request.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("database migrate: %v", err)
	}
	cancel()

	users := repository.NewUserRepo(db)
	sessions := repository.NewSessionRepo(db)
	donations := repository.NewDonationRepo(db)

	renderer, err := view.NewRenderer()
	if err != nil {
		log.Fatalf("template parse: %v", err)
	}

	e := echo.New()
	e.Renderer = renderer
	e.HideBanner = true

	// Rate limiting degrades to a pass-through when Redis is unreachable.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting disabled")
	}
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	// Donation events need a broker; skip the pipeline when none is set.
	publish := os.Getenv("RABBITMQ_URL") != "" || os.Getenv("AMQP_URL") != ""
	if publish {
		go func() {
			if err := queue.StartDonationConsumer(); err != nil {
				log.Printf("donation consumer stopped: %v", err)
			}
		}()
	}

	// The decoy hash keeps unknown-username logins as slow as real ones.
	decoy, err := utils.NewFakeVerifier(cfg.BcryptCost)
	if err != nil {
		log.Fatalf("decoy hash: %v", err)
	}

	authH := handler.NewAuthHandler(cfg, decoy, users, sessions)
	dashH := handler.NewDashboardHandler(users)
	donH := handler.NewDonationHandler(users, donations, publish)

	router.RegisterRoutes(e)                                    // health check + root redirect
	router.RegisterAuth(e, authH, dashH, donH, sessions, limit) // app routes

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
