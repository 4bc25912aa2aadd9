package v1

import (
	"portfolio-contact-api/config"
	"portfolio-contact-api/internal/delivery/http/middleware"
	"portfolio-contact-api/internal/domain"
	"portfolio-contact-api/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	HealthUC  usecase.HealthUsecase
	Config    *config.Config
	// ContactLimit replaces the default contact rate limiter (tests)
	ContactLimit gin.HandlerFunc
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.Config{}
	}

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(otelgin.Middleware(serviceName(cfg)))
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	healthUC := deps.HealthUC
	if healthUC == nil {
		healthUC = usecase.NewHealthUsecase(nil, nil)
	}
	NewHealthHandler(v1, healthUC)

	limit := deps.ContactLimit
	if limit == nil {
		limit = middleware.RateLimitMiddleware(middleware.ContactRateLimitConfig(cfg.RateLimitContactPerMinute))
	}
	NewContactHandler(v1, deps.ContactUC, limit)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func serviceName(cfg *config.Config) string {
	if cfg.ServiceName != "" {
		return cfg.ServiceName
	}
	return "portfolio-contact-api"
}
