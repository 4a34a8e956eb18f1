// Package api provides the HTTP surface of the task service: task CRUD,
// cache statistics, and health reporting over Fiber.
package api

import (
	"context"
	"fmt"
	"log"

	cachemod "github.com/example/task-service/modules/cache"
	taskmod "github.com/example/task-service/modules/task"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Module provides the HTTP API for the task service.
type Module struct {
	app         *fiber.App
	handlers    *Handlers
	taskModule  *taskmod.Module
	cacheModule *cachemod.Module
	port        int
}

var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new API module listening on the given port.
func NewModule(port int) *Module {
	return &Module{port: port}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "api"
}

// SetTaskModule sets the task module dependency.
func (m *Module) SetTaskModule(tm *taskmod.Module) {
	m.taskModule = tm
}

// SetCacheModule sets the optional cache module dependency.
func (m *Module) SetCacheModule(cm *cachemod.Module) {
	m.cacheModule = cm
}

// Init initializes the Fiber app and global middleware.
func (m *Module) Init(_ mono.ServiceContainer) error {
	m.app = fiber.New(fiber.Config{
		AppName:               "Task Service",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	m.app.Use(cors.New())

	return nil
}

// Start wires the handlers and starts the HTTP server.
func (m *Module) Start(_ context.Context) error {
	if m.taskModule == nil {
		return fmt.Errorf("task module not set")
	}
	service := m.taskModule.GetService()
	if service == nil {
		return fmt.Errorf("task service not available")
	}

	var c *cachemod.Cache
	if m.cacheModule != nil {
		c = m.cacheModule.GetCache()
	}
	m.handlers = NewHandlers(service, c)

	registerRoutes(m.app, m.handlers)
	m.app.Get("/health", m.healthCheck)

	go func() {
		addr := fmt.Sprintf(":%d", m.port)
		log.Printf("[api] Starting HTTP server on %s", addr)
		if err := m.app.Listen(addr); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	return nil
}

// registerRoutes configures the task and cache routes on the given app.
func registerRoutes(app *fiber.App, h *Handlers) {
	tasks := app.Group("/tasks")
	tasks.Post("/", h.CreateTask)
	tasks.Get("/", h.ListTasks)
	tasks.Get("/:id", h.GetTask)
	tasks.Put("/:id", h.UpdateTask)
	tasks.Delete("/:id", h.DeleteTask)

	cache := app.Group("/cache")
	cache.Get("/stats", h.GetCacheStats)
	cache.Post("/stats/reset", h.ResetCacheStats)
}

// Stop shuts down the HTTP server gracefully.
func (m *Module) Stop(_ context.Context) error {
	if m.app != nil {
		log.Println("[api] Shutting down HTTP server...")
		return m.app.Shutdown()
	}
	return nil
}

// Health reports the HTTP server state.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	if m.app == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "server not initialized",
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"port": m.port,
		},
	}
}

// healthCheck handles GET /health, aggregating the health of every wired
// module. The response is 503 when any module reports unhealthy.
func (m *Module) healthCheck(c *fiber.Ctx) error {
	modules := map[string]ModuleHealth{}
	healthy := true

	record := func(name string, status mono.HealthStatus) {
		modules[name] = ModuleHealth{
			Healthy: status.Healthy,
			Message: status.Message,
		}
		if !status.Healthy {
			healthy = false
		}
	}

	record(m.taskModule.Name(), m.taskModule.Health(c.UserContext()))
	if m.cacheModule != nil {
		record(m.cacheModule.Name(), m.cacheModule.Health(c.UserContext()))
	}

	resp := HealthResponse{Status: "ok", Modules: modules}
	code := fiber.StatusOK
	if !healthy {
		resp.Status = "degraded"
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(resp)
}

// errorHandler converts unhandled route errors into the standard error
// body.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "internal_error",
		Message: message,
	})
}

// GetApp returns the Fiber app (for testing).
func (m *Module) GetApp() *fiber.App {
	return m.app
}
