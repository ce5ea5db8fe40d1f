package http

import (
	"time"

	"kanban/internal/http/handlers"
	"kanban/internal/http/middleware"
	"kanban/internal/http/views"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Limits configures the rate limiters in front of the write routes.
type Limits struct {
	AuthRateLimit   int
	AuthRateWindow  time.Duration
	TaskWriteLimit  int
	TaskWriteWindow time.Duration
}

// DefaultLimits is used when no configuration is supplied.
var DefaultLimits = Limits{
	AuthRateLimit:   20,
	AuthRateWindow:  time.Minute,
	TaskWriteLimit:  120,
	TaskWriteWindow: time.Minute,
}

// NewRouter builds the engine with the global middleware chain, templates
// and every route registered.
func NewRouter(h *handlers.Handler, health *handlers.HealthHandler, limits Limits) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(),
		middleware.Metrics(),
		middleware.LoadUser(h.Sessions, h.Auth),
	)
	r.SetHTMLTemplate(views.Load())

	RegisterRoutes(r, h, health, limits)
	return r
}

func RegisterRoutes(r *gin.Engine, h *handlers.Handler, health *handlers.HealthHandler, limits Limits) {
	// Health checks and metrics (no rate limiting)
	r.GET("/health", health.Health)
	r.GET("/healthz", health.Liveness)
	r.GET("/readyz", health.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Landing page
	r.GET("/kanban", h.Kanban)

	authRL := middleware.RateLimit(limits.AuthRateLimit, limits.AuthRateWindow)
	auth := r.Group("/auth")
	{
		auth.GET("/register", h.RegisterForm)
		auth.POST("/register", authRL, h.Register)
		auth.GET("/login", h.LoginForm)
		auth.POST("/login", authRL, h.Login)
		auth.GET("/logout", h.Logout)
	}

	// Task board, everything below needs a session
	writeRL := middleware.UserRateLimit(limits.TaskWriteLimit, limits.TaskWriteWindow)
	board := r.Group("/")
	board.Use(middleware.LoginRequired())
	{
		board.GET("/", h.Index)
		board.GET("/create", h.CreateForm)
		board.POST("/create", writeRL, h.Create)
		board.GET("/:id/update", h.UpdateForm)
		board.POST("/:id/update", writeRL, h.Update)
		board.POST("/:id/delete", writeRL, h.Delete)
		board.POST("/:id/markdoing", writeRL, h.MarkDoing)
		board.POST("/:id/markdone", writeRL, h.MarkDone)
	}
}
