package main

import (
	"log"
	"net/http"
	"os"

	_ "pwdassist/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"pwdassist/internal/auth"
	"pwdassist/internal/cache"
	"pwdassist/internal/config"
	"pwdassist/internal/db"
	"pwdassist/internal/handler"
	"pwdassist/internal/model"
	"pwdassist/internal/repository"
	"pwdassist/internal/router"
	"pwdassist/internal/service"
	"pwdassist/internal/web"
)

// @title PWD Assistant API
// @version 1.0
// @description Disability-services platform backend with session authentication and NGO student records.
// @host localhost:5000
// @schemes http
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("parse templates: %v", err)
	}
	e.Renderer = renderer

	gormDB, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		for _, table := range []interface{}{&model.Student{}, &model.User{}} {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(&model.User{}, &model.Student{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	// Session store: Redis when configured, in-process otherwise
	var sessions auth.Store
	var cacheClient *cache.Client
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		sessions = auth.NewRedisStore(redisClient, cfg.SessionTTL)
		cacheClient = cache.New(redisClient)
	} else {
		log.Println("REDIS_ADDR not set, using in-memory session store")
		sessions = auth.NewMemoryStore(cfg.SessionTTL)
		cacheClient = cache.New(nil)
	}

	gate := auth.NewGate(sessions, cfg.IsProduction(), cfg.SessionTTL)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	studentRepo := repository.NewStudentRepository(gormDB)

	// Initialize services
	authService := service.NewAuthService(userRepo, sessions)
	profileService := service.NewProfileService(userRepo, cacheClient)
	studentService := service.NewStudentService(studentRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, gate)
	pageHandler := handler.NewPageHandler()
	profileHandler := handler.NewProfileHandler(profileService, sessions)
	studentHandler := handler.NewStudentHandler(studentService)

	// Register routes
	router.Register(e, gate, authHandler, pageHandler, profileHandler, studentHandler)

	swaggerHost := cfg.SwaggerHost
	if swaggerHost == "" {
		swaggerHost = "http://localhost:" + cfg.ServerPort
	}
	log.Printf("Swagger documentation available at: %s/swagger/index.html", swaggerHost)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
