package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"careerarchitect/internal/resumes"
	"careerarchitect/internal/services/health"
	"careerarchitect/internal/shared/config"
	"careerarchitect/internal/shared/metrics"
	"careerarchitect/internal/shared/server/middleware"
	"careerarchitect/internal/shared/server/respond"
	"careerarchitect/internal/users"
)

const rootMessage = "CareerArchitect API - AI Resume Builder"

// RouterDeps groups the handlers mounted on the router.
type RouterDeps struct {
	Config        config.Config
	Tokens        middleware.TokenDecoder
	Health        *health.Service
	UserHandler   *users.Handler
	ResumeHandler *resumes.Handler
}

// PublicPaths are reachable without a bearer token.
var PublicPaths = []string{
	"/api/",
	"/api/health",
	"/api/metrics",
	"/api/auth/register",
	"/api/auth/login",
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env != "test" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Tokens, PublicPaths...),
	)

	api := r.Group("/api")
	api.GET("/", func(c *gin.Context) {
		respond.OK(c, gin.H{"message": rootMessage})
	})
	api.GET("/health", func(c *gin.Context) {
		body, ok := deps.Health.Status(c.Request.Context())
		status := http.StatusOK
		if !ok {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, body)
	})
	api.GET("/metrics", metrics.Handler())

	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(api)
	}

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
