package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mtb0903/manage-docs/internal/documents"
	"github.com/mtb0903/manage-docs/internal/shared/config"
	"github.com/mtb0903/manage-docs/internal/shared/server/middleware"
	"github.com/mtb0903/manage-docs/internal/shared/server/respond"
	"github.com/mtb0903/manage-docs/internal/users"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config           config.Config
	UsersHandler     *users.Handler
	DocumentsHandler *documents.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
// Login and logout are public; everything else sits behind the auth gate.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	deps.UsersHandler.RegisterRoutes(r)

	protected := r.Group("/", middleware.Auth())
	deps.DocumentsHandler.RegisterRoutes(protected)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
