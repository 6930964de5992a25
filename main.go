package main

import (
	"net/http"

	"nadgodziny/cache"
	"nadgodziny/config"
	"nadgodziny/database"
	"nadgodziny/handlers"
	"nadgodziny/logger"
	"nadgodziny/middleware"
	"nadgodziny/models"
	"nadgodziny/repositories"
	"nadgodziny/services"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.Env, Level: cfg.LogLevel})

	// Initialize JWT secret
	middleware.SetJWTSecret(cfg.JWTSecret)

	// Initialize database
	if err := database.Init(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	db := database.GetDB()

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	requestRepo := repositories.NewRequestRepository(db)
	balanceRepo := repositories.NewBalanceRepository(db)

	// Dashboard view cache
	views := cache.NewViewCache()

	// Services
	overtimeService := services.NewOvertimeService(requestRepo, balanceRepo, userRepo, views, log)
	dashboardService := services.NewDashboardService(requestRepo, balanceRepo, userRepo, views)

	// Handlers
	authHandler := handlers.NewAuthHandler(cfg, userRepo)
	overtimeHandler := handlers.NewOvertimeHandler(overtimeService, dashboardService)

	// Setup router
	router := chi.NewRouter()
	router.Use(middleware.RequestLogger(log))
	router.Use(chimiddleware.Recoverer)

	router.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware)

			r.Post("/logout", authHandler.Logout)
			r.Post("/change-password", authHandler.ChangePassword)

			r.Get("/dashboard/employee", overtimeHandler.EmployeeDashboard)
			r.Post("/requests", overtimeHandler.Submit)
			r.Get("/requests", overtimeHandler.List)

			// Manager only routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleManager))
				r.Get("/dashboard/manager", overtimeHandler.ManagerDashboard)
				r.Post("/requests/forced", overtimeHandler.SubmitForced)
				r.Post("/requests/{id}/resolve", overtimeHandler.Resolve)
			})

			// Manager and HR routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleManager, models.RoleHR))
				r.Get("/requests/export.csv", overtimeHandler.ExportCSV)
			})
		})
	})

	log.Info().Str("port", cfg.ServerPort).Msg("server starting")
	if err := http.ListenAndServe(":"+cfg.ServerPort, router); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
