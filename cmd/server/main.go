package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/kunalgoyal9/gembot-backend/internal/config"
	"github.com/kunalgoyal9/gembot-backend/internal/database"
	"github.com/kunalgoyal9/gembot-backend/internal/genai"
	"github.com/kunalgoyal9/gembot-backend/internal/handlers"
	"github.com/kunalgoyal9/gembot-backend/internal/middleware"
	"github.com/kunalgoyal9/gembot-backend/internal/routes"
	"github.com/kunalgoyal9/gembot-backend/internal/store/mongostore"
	"github.com/kunalgoyal9/gembot-backend/internal/store/pgstore"
	"github.com/kunalgoyal9/gembot-backend/web"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	if cfg.GoogleAPIKey == "" {
		log.Println("⚠️  WARNING: GOOGLE_API_KEY not set. Chat replies will fail.")
	}

	// Connect to PostgreSQL (credential store)
	log.Printf("Connecting to PostgreSQL...")
	pgDB, err := database.ConnectPostgres(cfg.PostgresURI)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer pgDB.Close()

	// Connect to Redis (rate limiting)
	log.Printf("Connecting to Redis...")
	redisClient, err := database.ConnectRedis(cfg.RedisURI)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	// Connect to MongoDB (chat log store)
	log.Printf("Connecting to MongoDB...")
	mongoClient, mongoDB, err := database.ConnectMongo(cfg.MongoURI)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.DisconnectMongo(mongoClient)

	userStore := pgstore.New(pgDB)
	chatStore := mongostore.New(mongoDB)

	if err := chatStore.EnsureIndexes(context.Background()); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure MongoDB chat indexes: %v", err)
	} else {
		log.Println("✅ MongoDB chat indexes ensured")
	}

	authHandler := &handlers.AuthHandler{
		Users:     userStore,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
	}
	chatHandler := &handlers.ChatHandler{
		Users:     userStore,
		Chats:     chatStore,
		AI:        genai.NewClient(cfg.GoogleAPIKey, cfg.GeminiModel),
		JWTSecret: cfg.JWTSecret,
	}
	verify := middleware.VerifyToken(userStore, cfg.JWTSecret)

	// Setup router
	r := chi.NewRouter()

	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.HostCheck(cfg.AllowedHost))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.ClientOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RateLimit(redisClient))
	r.Use(middleware.HistoryRateLimit())

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.Setup(r, authHandler, chatHandler, verify)

	// Embedded chat frontend
	r.Handle("/*", web.Handler())

	log.Println("📋 Registered routes:")
	log.Println("  GET  /health")
	log.Println("  POST /auth/register")
	log.Println("  POST /auth/login")
	log.Println("  POST /auth/logout")
	log.Println("  GET  /auth/")
	log.Println("  POST /chatBot")
	log.Println("  GET  /chatBot")
	log.Println("  GET  /ws/chat")

	log.Printf("🚀 gembot backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
