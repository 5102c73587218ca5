package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yoockh/huffaz-portal/internal/api/handlers"
	"github.com/yoockh/huffaz-portal/internal/api/middleware"
)

type Deps struct {
	Tokens middleware.TokenVerifier

	Auth        *handlers.AuthHandler
	Jobs        *handlers.JobHandler
	Application *handlers.ApplicationHandler
	Profile     *handlers.ProfileHandler
	MBTI        *handlers.MBTIHandler
	Health      *handlers.HealthHandler
	Web         *handlers.WebHandler

	// nil limiters allow everything
	LoginLimiter *middleware.RedisLimiter
	ApplyLimiter *middleware.RedisLimiter

	// UploadDir is served at /uploads when documents are stored locally.
	UploadDir string
}

// RegisterRoutes mounts the JSON API under /api. Every other path belongs to
// the web bundle behind the page guard.
func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/ping", d.Health.Ping)
	r.GET("/health", d.Health.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if d.UploadDir != "" {
		r.Static("/uploads", d.UploadDir)
	}

	api := r.Group(middleware.APIPrefix)

	// Public
	api.POST("/auth/register", d.Auth.Register)
	api.POST("/auth/login", middleware.RateLimit(d.LoginLimiter, middleware.ByClientIP), d.Auth.Login)

	api.GET("/jobs", d.Jobs.List)
	api.GET("/jobs/recent", d.Jobs.Recent)
	api.GET("/jobs/:id", middleware.OptionalSession(d.Tokens), d.Jobs.Get)

	api.GET("/mbti/questions", d.MBTI.Questions)
	api.GET("/mbti/types/:code", d.MBTI.Type)

	// Session
	session := api.Group("")
	session.Use(middleware.SessionAuth(d.Tokens))

	session.POST("/auth/logout", d.Auth.Logout)
	session.GET("/auth/me", d.Auth.Me)

	session.POST("/applications", middleware.RateLimit(d.ApplyLimiter, middleware.ByPrincipal), d.Application.Apply)
	session.GET("/applications/my", d.Application.Mine)
	session.POST("/applications/cancel", d.Application.Cancel)

	session.GET("/profile", d.Profile.Get)
	session.PUT("/profile", d.Profile.Update)
	session.POST("/profile/upload", d.Profile.Upload)
	session.POST("/profile/mbti", d.Profile.SetMBTI)
	session.POST("/profile/mbti/answers", d.Profile.SubmitAnswers)
	session.GET("/profile/mbti/history", d.Profile.AssessmentHistory)
	session.GET("/profile/mbti/latest", d.Profile.LatestAssessment)

	// Admin
	admin := session.Group("")
	admin.Use(middleware.RequireAdmin())

	admin.POST("/jobs", d.Jobs.Create)
	admin.PATCH("/jobs/:id", d.Jobs.Update)
	admin.POST("/jobs/update-fields", d.Jobs.BackfillDetails)
	admin.GET("/admin/jobs", d.Jobs.ListAll)
	admin.GET("/admin/jobs/:id/applications", d.Application.ListForJob)
	admin.PATCH("/admin/applications/:id", d.Application.Review)

	if d.Web.Enabled() {
		r.NoRoute(middleware.PageGuard(d.Tokens), d.Web.Serve)
	} else {
		r.NoRoute(d.Web.Serve)
	}
}
