package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	apimod "github.com/example/task-service/modules/api"
	cachemod "github.com/example/task-service/modules/cache"
	notificationmod "github.com/example/task-service/modules/notification"
	taskmod "github.com/example/task-service/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load configuration from environment
	httpPort := getEnvInt("HTTP_PORT", 8000)
	dbPath := getEnv("DB_PATH", "./tasks.db")
	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	cacheTTL := getEnvDuration("CACHE_TTL", 5*time.Minute)
	cachePrefix := getEnv("CACHE_PREFIX", "task:")
	cacheEnabled := getEnv("CACHE_ENABLED", "true") == "true"

	log.Println("=== Task Service ===")
	log.Printf("HTTP Port: %d", httpPort)
	log.Printf("Database: %s", dbPath)
	if cacheEnabled {
		log.Printf("Redis: %s (prefix: %s, TTL: %s)", redisAddr, cachePrefix, cacheTTL)
	} else {
		log.Println("Cache: disabled")
	}

	// Create modules
	taskModule := taskmod.NewModule(dbPath)
	notificationModule := notificationmod.NewModule()
	apiModule := apimod.NewModule(httpPort)

	var cacheModule *cachemod.Module
	if cacheEnabled {
		cacheModule = cachemod.NewModule(redisAddr, cachePrefix, cacheTTL)
	}

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
	)
	if err != nil {
		log.Fatalf("Failed to create mono application: %v", err)
	}

	// Register modules
	if cacheModule != nil {
		app.Register(cacheModule)
	}
	app.Register(taskModule)
	app.Register(notificationModule)
	app.Register(apiModule)

	// Wire module dependencies
	apiModule.SetTaskModule(taskModule)
	if cacheModule != nil {
		apiModule.SetCacheModule(cacheModule)
	}

	// Start modules (this handles Init and Start)
	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}

	// The cache instance exists only after the cache module initialized
	if cacheModule != nil {
		taskModule.SetCache(cacheModule.GetCache())
	}

	log.Println("=== Application Started ===")
	log.Printf("API available at http://localhost:%d", httpPort)
	log.Println("Endpoints:")
	log.Println("  GET    /health                 - Health check")
	log.Println("  POST   /tasks/                 - Create task")
	log.Println("  GET    /tasks/                 - List tasks (skip/limit)")
	log.Println("  GET    /tasks/:id              - Get task")
	log.Println("  PUT    /tasks/:id              - Update task")
	log.Println("  DELETE /tasks/:id              - Delete task")
	log.Println("  GET    /cache/stats            - Cache statistics")
	log.Println("  POST   /cache/stats/reset      - Reset cache stats")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown")

	// Setup graceful shutdown using gelmium/graceful-shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	// Wait for shutdown signal and exit with appropriate code
	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration returns environment variable as duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}
