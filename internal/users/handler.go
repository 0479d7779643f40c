package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mtb0903/manage-docs/internal/shared/auth"
	"github.com/mtb0903/manage-docs/internal/shared/server/middleware"
	"github.com/mtb0903/manage-docs/internal/shared/server/respond"
	"github.com/mtb0903/manage-docs/internal/shared/telemetry"
)

// Handler wires the login and logout endpoints to the credential store.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the public auth routes.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/login", h.loginForm)
	r.POST("/login", h.login)
	r.GET("/logout", h.logout)
}

type loginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

func (h *Handler) loginForm(c *gin.Context) {
	respond.OK(c, gin.H{
		"action": "/login",
		"method": http.MethodPost,
		"fields": []string{"username", "password"},
	})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil || req.Username == "" || req.Password == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "username and password are required", nil)
		return
	}

	user, err := h.Svc.Verify(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "Login failed. User or password invalid", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to verify credentials", nil)
		return
	}

	token, err := auth.SignSession(auth.Session{UserID: user.ID, Username: user.Username})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to establish session", nil)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(auth.SessionTTL.Seconds()), "/", "", false, true)

	telemetry.Info("auth.login", map[string]any{
		"user_id":    user.ID,
		"request_id": c.GetString("requestId"),
	})

	c.Redirect(http.StatusFound, middleware.SafeNextPath(c.Query("next")))
}

// logout clears the session cookie. Safe to call when not logged in.
func (h *Handler) logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}
