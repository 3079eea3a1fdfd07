package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"eventhub/internal/config"
	"eventhub/internal/database"
	"eventhub/internal/handlers"
	"eventhub/internal/jobs"
	"eventhub/internal/logging"
	"eventhub/internal/middleware"
	"eventhub/internal/services"
	"eventhub/pkg/auth"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Initialize structured logging (JSON in production, text in dev)
	logging.Init()

	log.Println("🚀 Starting EventHub Server...")

	// Load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  No .env file found or error loading it: %v", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	cfg := config.Load()
	log.Printf("📋 Configuration loaded (Port: %s)", cfg.Port)

	// MongoDB is required
	db, err := database.NewMongoDB(cfg.MongoURI)
	if err != nil {
		log.Fatalf("❌ Failed to connect to MongoDB: %v", err)
	}
	defer db.Close(context.Background())

	initCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.Initialize(initCtx); err != nil {
		cancel()
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}
	cancel()

	// Redis is optional - insight report caching and job locking degrade
	// gracefully without it
	var redisService *services.RedisService
	if cfg.RedisURL != "" {
		log.Println("🔗 Connecting to Redis...")
		redisService, err = services.NewRedisService(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️ Failed to connect to Redis: %v (caching disabled)", err)
			redisService = nil
		}
	} else {
		log.Println("⚠️ REDIS_URL not set - insight caching disabled")
	}

	// JWT auth
	var jwtAuth *auth.LocalJWTAuth
	if cfg.JWTSecret != "" {
		jwtAuth, err = auth.NewLocalJWTAuth(cfg.JWTSecret, cfg.AccessTokenExpiry, cfg.RefreshTokenExpiry)
		if err != nil {
			log.Fatalf("❌ Failed to initialize JWT auth: %v", err)
		}
		log.Println("✅ JWT authentication initialized")
	} else {
		if cfg.Environment == "production" {
			log.Fatal("❌ JWT_SECRET is required in production")
		}
		log.Println("⚠️ JWT_SECRET not set - authentication disabled (development mode)")
	}

	// Services
	connManager := services.NewConnectionManager()
	metrics := services.InitMetrics(connManager)
	log.Println("✅ Prometheus metrics initialized")

	userService := services.NewUserService(db)
	eventService := services.NewEventService(db)
	ticketService := services.NewTicketService(db, eventService)
	rsvpService := services.NewRSVPService(db, eventService, userService)
	messageService := services.NewMessageService(db, eventService, metrics)
	insightService := services.NewInsightService(db, eventService, messageService, redisService, metrics)
	log.Println("✅ Services initialized")

	// Scheduled insight refresh
	var scheduler *jobs.Scheduler
	if cfg.InsightRefreshEnabled {
		scheduler, err = jobs.NewScheduler()
		if err != nil {
			log.Fatalf("❌ Failed to create job scheduler: %v", err)
		}
		refreshJob := jobs.NewInsightRefreshJob(messageService, insightService, redisService)
		if err := scheduler.Register(cfg.InsightRefreshCron, refreshJob); err != nil {
			log.Fatalf("❌ Failed to schedule insight refresh: %v", err)
		}
		scheduler.Start()
	} else {
		log.Println("⚠️ Insight refresh job disabled")
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "EventHub v1.0",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		BodyLimit:    1 * 1024 * 1024, // 1MB is plenty for JSON bodies
	})

	app.Use(recover.New())
	app.Use(logger.New())

	// Prometheus metrics middleware
	prometheus := fiberprometheus.New("eventhub")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)
	log.Println("📊 Prometheus metrics endpoint enabled at /metrics")

	rateLimitConfig := middleware.LoadRateLimitConfig()
	log.Printf("🛡️  [RATE-LIMIT] Loaded config: Global=%d/min, Auth=%d/15min, Analyze=%d/min, WS=%d/min",
		rateLimitConfig.GlobalAPIMax,
		rateLimitConfig.AuthMax,
		rateLimitConfig.AnalyzeMax,
		rateLimitConfig.WebSocketMax,
	)

	// Fiber's CORS middleware does not allow AllowCredentials with
	// wildcard origins. With a same-origin deployment (ALLOWED_ORIGINS=*)
	// credentials aren't needed anyway.
	allowCredentials := cfg.AllowedOrigins != "*"

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: allowCredentials,
	}))
	log.Printf("🔒 [SECURITY] CORS allowed origins: %s", cfg.AllowedOrigins)

	// Global API rate limiter - first line of defense
	app.Use("/api", middleware.GlobalAPIRateLimiter(rateLimitConfig))

	// Handlers
	healthHandler := handlers.NewHealthHandler(db, redisService, connManager)
	authHandler := handlers.NewLocalAuthHandler(jwtAuth, userService)
	eventHandler := handlers.NewEventHandler(eventService)
	ticketHandler := handlers.NewTicketHandler(ticketService)
	rsvpHandler := handlers.NewRSVPHandler(rsvpService)
	messageHandler := handlers.NewMessageHandler(messageService, insightService, connManager)
	userHandler := handlers.NewUserHandler(userService)
	wsHandler := handlers.NewWebSocketHandler(connManager, eventService, messageService, metrics)

	requireAuth := middleware.LocalAuthMiddleware(jwtAuth)

	// Health check
	app.Get("/health", healthHandler.Handle)

	// Auth routes (brute-force limited)
	authGroup := app.Group("/api/auth", middleware.AuthRateLimiter(rateLimitConfig))
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.RefreshToken)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", requireAuth, authHandler.GetCurrentUser)

	// Event routes (reads are public, mutations are host-only)
	events := app.Group("/api/events")
	events.Get("/", eventHandler.List)
	events.Get("/mine", requireAuth, eventHandler.ListMine)
	events.Get("/:id", eventHandler.Get)
	events.Post("/", requireAuth, eventHandler.Create)
	events.Put("/:id", requireAuth, eventHandler.Update)
	events.Delete("/:id", requireAuth, eventHandler.Delete)

	// Ticket routes
	tickets := app.Group("/api/tickets")
	tickets.Get("/event/:eventId", ticketHandler.ListByEvent)
	tickets.Post("/", requireAuth, ticketHandler.Create)
	tickets.Post("/book", requireAuth, ticketHandler.Book)

	// RSVP routes
	rsvp := app.Group("/api/rsvp", requireAuth)
	rsvp.Post("/invite", rsvpHandler.Invite)
	rsvp.Post("/respond", rsvpHandler.Respond)
	rsvp.Get("/event/:eventId", rsvpHandler.ListByEvent)
	rsvp.Get("/me", rsvpHandler.ListMine)

	// Message and insight routes
	messages := app.Group("/api/messages", requireAuth)
	messages.Post("/", messageHandler.Send)
	messages.Get("/insights/:eventId", messageHandler.GetInsights)
	messages.Post("/analyze/:eventId", middleware.AnalyzeRateLimiter(rateLimitConfig), messageHandler.Analyze)
	messages.Get("/:eventId", messageHandler.List)

	// User directory (for the invite picker)
	app.Get("/api/users", requireAuth, userHandler.List)

	// Live event chat over WebSocket (token via query parameter)
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	wsConfig := websocket.Config{
		Origins: strings.Split(cfg.AllowedOrigins, ","),
	}

	app.Use("/ws/events", middleware.WebSocketRateLimiter(rateLimitConfig))
	app.Use("/ws/events", requireAuth)
	app.Get("/ws/events/:id", websocket.New(wsHandler.Handle, wsConfig))

	log.Printf("🌐 Server listening on port %s", cfg.Port)
	log.Printf("💬 Event chat endpoint: ws://localhost:%s/ws/events/:id", cfg.Port)
	log.Printf("📡 Health check: http://localhost:%s/health", cfg.Port)
	if scheduler != nil {
		log.Printf("🕐 Background jobs: insight refresh (%s UTC)", cfg.InsightRefreshCron)
	}

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("\n🛑 Shutting down server...")

		if scheduler != nil {
			if err := scheduler.Stop(); err != nil {
				log.Printf("⚠️ Error stopping scheduler: %v", err)
			}
		}

		if redisService != nil {
			if err := redisService.Close(); err != nil {
				log.Printf("⚠️ Error closing Redis: %v", err)
			}
		}

		if err := app.Shutdown(); err != nil {
			log.Printf("⚠️ Error shutting down server: %v", err)
		}
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
