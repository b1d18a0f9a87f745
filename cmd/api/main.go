package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/davidereni/studylog/internal/adapters/cache"
	adapterHTTP "github.com/davidereni/studylog/internal/adapters/handler/http"
	"github.com/davidereni/studylog/internal/adapters/repository"
	"github.com/davidereni/studylog/internal/core/domain"
	"github.com/davidereni/studylog/internal/core/services"
	"github.com/davidereni/studylog/internal/core/workers"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	startTime := time.Now()

	_ = godotenv.Load()

	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbHost := getenv("DB_HOST", "localhost")
	dbPort := getenv("DB_PORT", "5432")
	serverPort := getenv("PORT", "8080")

	accessKey := os.Getenv("ACCESS_KEY")
	if accessKey == "" {
		log.Fatal("Critical: ACCESS_KEY must be set")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("Critical: JWT_SECRET must be set")
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPass, dbHost, dbPort, dbName)

	log.Println("Connecting to database...")

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		log.Fatalf("Critical: Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("Database connected successfully.")

	pgSessionRepo := repository.NewPostgresSessionRepository(db)
	badgeRepo := repository.NewPostgresBadgeStateRepository(db)

	schemaCtx, schemaCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer schemaCancel()
	if err := pgSessionRepo.EnsureSchema(schemaCtx); err != nil {
		log.Fatalf("Critical: Failed to ensure sessions schema: %v", err)
	}
	if err := badgeRepo.EnsureSchema(schemaCtx); err != nil {
		log.Fatalf("Critical: Failed to ensure badge_states schema: %v", err)
	}

	var sessionRepo domain.SessionRepository = pgSessionRepo

	var redisClient *redis.Client
	if redisHost := os.Getenv("REDIS_HOST"); redisHost == "" {
		log.Println("Redis not configured, cache and rate limiting disabled.")
	} else {
		redisClient, err = cache.NewRedisClient(redisHost, getenv("REDIS_PORT", "6379"), os.Getenv("REDIS_PASSWORD"), 0)
		if err != nil {
			redisClient = nil
			log.Printf("Redis unavailable, continuing without cache: %v", err)
		} else {
			sessionRepo = repository.NewCachedSessionRepository(pgSessionRepo, redisClient)
			log.Println("Redis connected, session cache enabled.")
		}
	}

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	worker := workers.NewAchievementWorker(sessionRepo, badgeRepo)
	worker.Start(workerCtx)

	tokenService := services.NewTokenService(jwtSecret, "studylog", 24*time.Hour)
	authService, err := services.NewAuthService(accessKey, tokenService)
	if err != nil {
		log.Fatalf("Critical: Failed to initialize auth: %v", err)
	}

	sessionService := services.NewSessionService(sessionRepo, worker)
	statsService := services.NewStatsService(sessionRepo)
	achievementService := services.NewAchievementService(sessionRepo, badgeRepo)
	backupService := services.NewBackupService(sessionRepo, badgeRepo)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:        adapterHTTP.NewAuthHandler(authService),
		SessionHandler:     adapterHTTP.NewSessionHandler(sessionService),
		StatsHandler:       adapterHTTP.NewStatsHandler(statsService),
		AchievementHandler: adapterHTTP.NewAchievementHandler(achievementService),
		BackupHandler:      adapterHTTP.NewBackupHandler(backupService),
		TokenService:       tokenService,
		DB:                 db,
		Redis:              redisClient,
		StartTime:          startTime,
	})

	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Studylog API running on http://localhost:%s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	workerCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
