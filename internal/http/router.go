package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/devffery/task-two/internal/config"
	"github.com/devffery/task-two/internal/http/handler"
	httpmiddleware "github.com/devffery/task-two/internal/http/middleware"
	"github.com/devffery/task-two/internal/middleware"
)

// NewRouter wires Gin routes and middleware.
func NewRouter(cfg config.Config, identityHandler *handler.IdentityHandler, authMiddleware *httpmiddleware.Auth, rateLimiter *middleware.RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpmiddleware.RequestLogger(nil))
	if rateLimiter != nil {
		r.Use(rateLimiter.Handler())
	}
	r.Use(middleware.CORS(cfg))
	r.Use(otelgin.Middleware(cfg.ServiceName))

	auth := r.Group("/auth")
	{
		auth.POST("/register", identityHandler.Register)
		auth.POST("/login", identityHandler.Login)
	}

	api := r.Group("/api", authMiddleware.RequireUser)
	{
		api.GET("/users/:userId", identityHandler.GetUser)

		orgs := api.Group("/organizations")
		{
			orgs.GET("", identityHandler.ListOrganizations)
			orgs.POST("", identityHandler.CreateOrganization)
			orgs.GET("/:orgId", identityHandler.GetOrganization)
			orgs.POST("/:orgId/users", identityHandler.AddMember)
		}
	}

	return r
}
