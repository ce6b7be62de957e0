package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/example/workwear/internal/config"
	"github.com/example/workwear/internal/database"
	"github.com/example/workwear/internal/handlers"
	"github.com/example/workwear/internal/middleware"
	"github.com/example/workwear/internal/routes"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("database connect error: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("database close error: %v", err)
		}
	}()

	var rates middleware.RateStore
	if rdb := connectRedis(cfg.RedisURL); rdb != nil {
		defer rdb.Close()
		rates = middleware.NewRedisRateStore(rdb)
	}

	app := fiber.New(fiber.Config{
		AppName:      "Workwear Shop Backend",
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	routes.Register(app, db, cfg, rates)

	go func() {
		log.Printf("Starting server on :%s", cfg.AppPort)
		if err := app.Listen(":" + cfg.AppPort); err != nil {
			log.Panicf("fiber.Listen error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}

// connectRedis returns a client for url, or nil when redis is not configured or unreachable.
func connectRedis(url string) *redis.Client {
	if url == "" {
		return nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[Redis] invalid REDIS_URL, rate limiting disabled: %v", err)
		return nil
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[Redis] ping failed, rate limiting disabled: %v", err)
		_ = client.Close()
		return nil
	}

	log.Println("[Redis] connected")
	return client
}
