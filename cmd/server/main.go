package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/caso-enron/comments-backend/internal/config"
	"github.com/caso-enron/comments-backend/internal/database"
	"github.com/caso-enron/comments-backend/internal/handlers"
	"github.com/caso-enron/comments-backend/internal/middleware"
	"github.com/caso-enron/comments-backend/internal/routes"
	"github.com/caso-enron/comments-backend/internal/services"
	"github.com/caso-enron/comments-backend/internal/store"
	"github.com/caso-enron/comments-backend/internal/store/filestore"
	"github.com/caso-enron/comments-backend/internal/store/memstore"
	"github.com/caso-enron/comments-backend/internal/store/mongostore"
	"github.com/caso-enron/comments-backend/internal/store/pgstore"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	// Select the comment store backend. Exactly one is active per deployment.
	var commentStore store.Store
	switch cfg.Backend {
	case config.BackendFile:
		commentStore = filestore.New(cfg.CommentsFile)
		log.Printf("✅ Using file-backed comment store (%s)", cfg.CommentsFile)
	case config.BackendMemory:
		commentStore = memstore.New()
		log.Println("✅ Using in-memory comment store (comments will not survive restarts)")
	case config.BackendMongo:
		log.Println("Connecting to MongoDB...")
		client, db, err := database.ConnectMongo(cfg.MongoURI)
		if err != nil {
			log.Fatal("Failed to connect to MongoDB:", err)
		}
		defer database.DisconnectMongo(client)
		commentStore = mongostore.New(db)
	case config.BackendPostgres:
		log.Println("Connecting to PostgreSQL...")
		db, err := database.ConnectPostgres(cfg.PostgresURI)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL:", err)
		}
		defer db.Close()
		commentStore = pgstore.New(db)
	default:
		log.Fatalf("Unknown COMMENTS_BACKEND %q (expected file, memory, mongo or postgres)", cfg.Backend)
	}

	// Redis is optional: it carries the cross-instance live feed and the
	// development rate limiter. The board works without it.
	var redisClient *redis.Client
	if cfg.RedisURI != "" {
		log.Println("Connecting to Redis...")
		client, err := database.ConnectRedis(cfg.RedisURI)
		if err != nil {
			log.Printf("Warning: failed to connect to Redis: %v", err)
			log.Println("Live feed will be per-instance only and rate limiting disabled")
		} else {
			redisClient = client
			defer redisClient.Close()
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	feedHub := services.NewFeedHub()
	feedBus := services.NewFeedBus(feedHub, redisClient)
	feedBus.StartSubscriber(ctx)

	commentService := services.NewCommentService(commentStore, feedBus)
	commentsHandler := handlers.NewCommentsHandler(commentService)
	feedHandler := handlers.NewFeedHandler(commentService, feedHub)

	// Setup router
	r := chi.NewRouter()

	// CORS: the board is embedded in a static site served from anywhere,
	// so every origin is allowed, with the original method list.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS", "PATCH", "DELETE", "POST", "PUT"},
		AllowedHeaders:   []string{"X-CSRF-Token", "X-Requested-With", "Accept", "Accept-Version", "Content-Length", "Content-MD5", "Content-Type", "Date", "X-Api-Version", "X-Owner-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity() {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, per-IP rate limiting)")
	} else if redisClient != nil {
		r.Use(middleware.RateLimit(redisClient))
	}

	routes.SetupRoutes(r, commentsHandler, feedHandler)

	log.Println("📋 Registered routes:")
	log.Println("  GET    /api/comments")
	log.Println("  POST   /api/comments")
	log.Println("  PUT    /api/comments/{id}")
	log.Println("  DELETE /api/comments/{id}")
	log.Println("  GET    /api/health")
	log.Println("  GET    /ws/comments")

	log.Printf("🚀 Comment board backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
