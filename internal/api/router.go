package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Vedant-Rajput22/hostel-complain-info/internal/api/handlers"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/api/middleware"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/auth"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/complaints"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/database/models"
)

type Router struct {
	chi.Router
}

type RouterConfig struct {
	DB               *gorm.DB
	Redis            *redis.Client
	Logger           *slog.Logger
	JWTService       *auth.JWTService
	AuthService      *auth.Service
	ComplaintService *complaints.Service
	GoogleOAuth      *auth.GoogleOAuth
	ClientOrigin     string
	SecureCookies    bool
	RateLimitReqs    int
	RateLimitSecs    int
}

func NewRouter(cfg RouterConfig) *Router {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	if cfg.RateLimitReqs > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitReqs, cfg.RateLimitSecs))
	}

	allowedOrigins := []string{"http://localhost:5173"}
	if cfg.ClientOrigin != "" {
		allowedOrigins = []string{cfg.ClientOrigin}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	healthHandler := handlers.NewHealthHandler(cfg.DB, cfg.Redis)
	authHandler := handlers.NewAuthHandler(cfg.AuthService, cfg.GoogleOAuth, cfg.ClientOrigin, cfg.SecureCookies, cfg.Logger)
	complaintHandler := handlers.NewComplaintHandler(cfg.ComplaintService)
	messHandler := handlers.NewMessHandler(cfg.DB)
	busHandler := handlers.NewBusHandler(cfg.DB)
	cleaningHandler := handlers.NewCleaningHandler(cfg.DB)
	internetHandler := handlers.NewInternetHandler(cfg.DB)
	logHandler := handlers.NewLogHandler(cfg.DB)
	dashboardHandler := handlers.NewDashboardHandler(cfg.DB)
	userHandler := handlers.NewUserHandler(cfg.DB)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Health)

		// Public auth endpoints
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Get("/verify", authHandler.VerifyEmail)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)
			r.Get("/google", authHandler.GoogleStart)
			r.Get("/google/callback", authHandler.GoogleCallback)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthRequired(cfg.JWTService))
				r.Get("/me", authHandler.Me)
				r.Patch("/profile", authHandler.UpdateProfile)
			})
		})

		// Everything below requires a valid access token.
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthRequired(cfg.JWTService))

			r.Route("/complaints", func(r chi.Router) {
				r.Post("/", complaintHandler.Create)
				r.Get("/mine", complaintHandler.Mine)
				r.Get("/resolved/recent", complaintHandler.RecentResolved)
				r.Get("/all", complaintHandler.All)

				r.With(middleware.RequireRole(models.RoleStaff, models.RoleAdmin)).
					Patch("/{id}/status", complaintHandler.SetStatus)
				r.With(middleware.RequireRole(models.RoleAdmin)).
					Patch("/{id}/assign", complaintHandler.Assign)
				r.Patch("/{id}/rating", complaintHandler.Rate)
			})

			r.Route("/mess", func(r chi.Router) {
				r.Get("/timetable", messHandler.GetTimetable)
				r.Post("/feedback", messHandler.SubmitFeedback)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(models.RoleAdmin))
					r.Put("/timetable", messHandler.UpdateTimetable)
					r.Get("/feedback", messHandler.ListFeedback)
				})
			})

			r.Route("/bus", func(r chi.Router) {
				r.Get("/timetable", busHandler.GetTimetable)
				r.With(middleware.RequireRole(models.RoleAdmin)).
					Put("/timetable", busHandler.UpdateTimetable)
			})

			r.Route("/cleaning", func(r chi.Router) {
				r.Post("/", cleaningHandler.Create)
				r.Get("/mine", cleaningHandler.Mine)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(models.RoleStaff, models.RoleAdmin))
					r.Get("/", cleaningHandler.All)
					r.Patch("/{id}/status", cleaningHandler.SetStatus)
				})
				r.With(middleware.RequireRole(models.RoleAdmin)).
					Patch("/{id}/assign", cleaningHandler.Assign)
			})

			r.Route("/internet", func(r chi.Router) {
				r.Post("/issues", internetHandler.CreateIssue)
				r.Get("/issues/mine", internetHandler.MyIssues)
				r.Get("/outages", internetHandler.ActiveOutages)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(models.RoleStaff, models.RoleAdmin))
					r.Get("/issues", internetHandler.AllIssues)
					r.Patch("/issues/{id}/status", internetHandler.SetIssueStatus)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(models.RoleAdmin))
					r.Post("/outages", internetHandler.AnnounceOutage)
					r.Patch("/outages/{id}/deactivate", internetHandler.DeactivateOutage)
				})
			})

			r.Route("/logs", func(r chi.Router) {
				r.Post("/", logHandler.Record)
				r.Get("/mine", logHandler.Mine)
				r.Get("/", logHandler.All)
				r.With(middleware.RequireRole(models.RoleAdmin)).
					Get("/export", logHandler.Export)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/student", dashboardHandler.Student)
				r.With(middleware.RequireRole(models.RoleAdmin)).
					Get("/admin", dashboardHandler.Admin)
			})

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin))
				r.Get("/", userHandler.List)
				r.Patch("/{id}/role", userHandler.UpdateRole)
			})
		})
	})

	return &Router{r}
}
