package v1

import (
	"net/http"
	"time"

	"pathbridge-backend/config"
	"pathbridge-backend/internal/delivery/http/middleware"
	"pathbridge-backend/internal/delivery/http/response"
	"pathbridge-backend/internal/domain"
	"pathbridge-backend/pkg/cache"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC         domain.AuthUsecase
	ProfileUC      domain.ProfileUsecase
	AssignmentUC   domain.AssignmentUsecase
	SubmissionUC   domain.SubmissionUsecase
	MessageUC      domain.MessageUsecase
	NotificationUC domain.NotificationUsecase
	FollowUC       domain.FollowUsecase
	AlumniUC       domain.AlumniUsecase
	MentorshipUC   domain.MentorshipUsecase
	ViewCache      *cache.ViewCache
	Config         *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(
		deps.Config.RateLimitRequests,
		time.Duration(deps.Config.RateLimitWindowSec)*time.Second,
	)))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")

	// Health check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes resolve the caller when a token is present so
	// owner/following flags stay caller-relative for anonymous visitors too.
	public := v1.Group("")
	public.Use(middleware.OptionalAuthMiddleware(deps.Config, deps.AuthUC))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Config, deps.AuthUC))

	writeLimit := middleware.RateLimitMiddleware(middleware.WriteRateLimitConfig(
		deps.Config.RateLimitWriteRequests,
		time.Duration(deps.Config.RateLimitWindowSec)*time.Second,
	))
	{
		NewAssignmentHandler(public, protected, deps.AssignmentUC, deps.ViewCache)
		NewSubmissionHandler(protected, deps.SubmissionUC, writeLimit)
		NewMessageHandler(protected, deps.MessageUC, writeLimit)
		NewNotificationHandler(protected, deps.NotificationUC)
		NewProfileHandler(public, protected, deps.ProfileUC, deps.AuthUC)
		NewUserHandler(protected, deps.FollowUC, deps.ProfileUC)
		NewAlumniHandler(protected, deps.AlumniUC)
		NewMentorshipHandler(protected, deps.MentorshipUC)
	}

	return r
}
