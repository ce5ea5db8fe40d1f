package handlers

import (
	"errors"
	"net/http"

	"kanban/internal/domain"
	"kanban/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type credentialsForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

func (h *Handler) RegisterForm(c *gin.Context) {
	h.render(c, http.StatusOK, "register.html", nil)
}

func (h *Handler) Register(c *gin.Context) {
	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusBadRequest, "register.html", nil, "Invalid form.")
		return
	}

	_, err := h.Auth.Register(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			h.render(c, http.StatusOK, "register.html", gin.H{"username": form.Username}, vErr.Message)
			return
		}
		h.fail(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/auth/login")
}

func (h *Handler) LoginForm(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", nil)
}

func (h *Handler) Login(c *gin.Context) {
	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusBadRequest, "login.html", nil, "Invalid form.")
		return
	}

	ctx := c.Request.Context()
	user, err := h.Auth.Login(ctx, form.Username, form.Password)
	if err != nil {
		var aErr *domain.AuthError
		if errors.As(err, &aErr) {
			h.Audit.LogLoginFailed(ctx, aErr.UserID, form.Username, c.ClientIP(), c.Request.UserAgent())
			h.render(c, http.StatusOK, "login.html", gin.H{"username": form.Username}, aErr.Message)
			return
		}
		h.fail(c, err)
		return
	}

	token, err := h.Sessions.Issue(user.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	middleware.SetSession(c, token, h.Sessions.TTL(), h.cfg.CookieSecure)
	h.Audit.LogLogin(ctx, user.ID, c.ClientIP(), c.Request.UserAgent())

	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) Logout(c *gin.Context) {
	if u, ok := middleware.CurrentUser(c); ok {
		h.Audit.LogLogout(c.Request.Context(), u.ID, c.ClientIP(), c.Request.UserAgent())
	}

	middleware.ClearSession(c, h.cfg.CookieSecure)
	c.Redirect(http.StatusFound, "/kanban")
}

// Kanban is the public landing page.
func (h *Handler) Kanban(c *gin.Context) {
	h.render(c, http.StatusOK, "kanban.html", nil)
}
