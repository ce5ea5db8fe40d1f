package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"kanban/internal/domain"
	"kanban/internal/http/middleware"
	"kanban/internal/logger"
	"kanban/internal/service"

	"github.com/gin-gonic/gin"
)

// HandlerConfig holds configuration for handler
type HandlerConfig struct {
	CookieSecure bool
}

type Handler struct {
	Auth     *service.AuthService
	Tasks    *service.TaskService
	Sessions *service.SessionManager
	Audit    *service.AuditService
	cfg      HandlerConfig
}

func NewHandler(auth *service.AuthService, tasks *service.TaskService, sessions *service.SessionManager, audit *service.AuditService) *Handler {
	return NewHandlerWithConfig(auth, tasks, sessions, audit, HandlerConfig{})
}

// NewHandlerWithConfig creates a handler with custom configuration
func NewHandlerWithConfig(auth *service.AuthService, tasks *service.TaskService, sessions *service.SessionManager, audit *service.AuditService, cfg HandlerConfig) *Handler {
	return &Handler{
		Auth:     auth,
		Tasks:    tasks,
		Sessions: sessions,
		Audit:    audit,
		cfg:      cfg,
	}
}

// render executes a page template with the current user and any flash
// messages added to data.
func (h *Handler) render(c *gin.Context, status int, page string, data gin.H, flashes ...string) {
	if data == nil {
		data = gin.H{}
	}
	if u, ok := middleware.CurrentUser(c); ok {
		data["user"] = u
	}
	data["flashes"] = flashes
	c.HTML(status, page, data)
}

// fail maps service errors onto the error page. Validation and auth errors
// are handled by the callers since they re-render their own form.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.render(c, http.StatusNotFound, "error.html", gin.H{
			"status": http.StatusNotFound, "title": "Not Found", "message": "Task doesn't exist.",
		})
	case errors.Is(err, domain.ErrForbidden):
		h.render(c, http.StatusForbidden, "error.html", gin.H{
			"status": http.StatusForbidden, "title": "Forbidden",
		})
	default:
		_ = c.Error(err)
		logger.WithContext(c.Request.Context()).Error("request failed", "path", c.FullPath(), "error", err)
		h.render(c, http.StatusInternalServerError, "error.html", gin.H{
			"status": http.StatusInternalServerError, "title": "Internal Server Error",
		})
	}
}

// taskID parses the :id path segment. Anything that is not a positive
// integer is answered like an unknown task.
func taskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// principal returns the signed-in user. Routes using it sit behind
// middleware.LoginRequired.
func principal(c *gin.Context) *domain.User {
	u, _ := middleware.CurrentUser(c)
	return u
}
