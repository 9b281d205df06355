package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	// Embedded zone data keeps timezone resolution working on scratch
	// containers without a tzdata package.
	_ "time/tzdata"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/glowtrack/routine-engine/internal/adapters/cache"
	adapterHTTP "github.com/glowtrack/routine-engine/internal/adapters/handler/http"
	"github.com/glowtrack/routine-engine/internal/adapters/repository"
	"github.com/glowtrack/routine-engine/internal/core/domain"
	"github.com/glowtrack/routine-engine/internal/core/services"
	"github.com/glowtrack/routine-engine/internal/core/workers"
)

func main() {
	startTime := time.Now()

	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}

	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "5432"
	}

	serverPort := os.Getenv("PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("Critical: JWT_SECRET must be set")
	}

	apiKeys := splitKeys(os.Getenv("API_KEYS"))
	if len(apiKeys) == 0 {
		log.Fatal("Critical: API_KEYS must contain at least one key")
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

	var profileRepo domain.UserProfileRepository = repository.NewPostgresProfileRepository(db)
	completionRepo := repository.NewPostgresCompletionRepository(db)
	coachRepo := repository.NewPostgresCoachRepository(db.DB)

	rdb, err := cache.NewRedisClient(
		getEnv("REDIS_HOST", "localhost"),
		getEnv("REDIS_PORT", "6379"),
		os.Getenv("REDIS_PASSWORD"),
		0,
	)
	if err != nil {
		log.Printf("Redis unavailable, running without cache and rate limiting: %v", err)
		rdb = nil
	} else {
		profileRepo = repository.NewCachedProfileRepository(profileRepo, rdb)
	}

	statsService := services.NewStatsService(profileRepo, completionRepo, nil)
	completionService := services.NewCompletionService(profileRepo, completionRepo, nil)
	profileService := services.NewProfileService(profileRepo)
	authService := services.NewAuthService(coachRepo)
	tokenService := services.NewTokenService(jwtSecret, "routine-engine", 24*time.Hour, coachRepo)

	rootCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	missedWorker := workers.NewMissedWorker(completionRepo, time.Hour, nil)
	missedWorker.Start(rootCtx)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:       adapterHTTP.NewAuthHandler(authService, tokenService),
		ProfileHandler:    adapterHTTP.NewProfileHandler(profileService),
		CompletionHandler: adapterHTTP.NewCompletionHandler(completionService),
		StatsHandler:      adapterHTTP.NewStatsHandler(statsService),
		TokenService:      tokenService,
		APIKeys:           apiKeys,
		DB:                db,
		Redis:             rdb,
		StartTime:         startTime,
	})

	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Routine Engine running on http://localhost:%s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	cancelWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitKeys(raw string) []string {
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
