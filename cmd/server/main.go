package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"protrack/internal/auth"
	"protrack/internal/config"
	"protrack/internal/domain/models"
	"protrack/internal/handler"
	"protrack/internal/mail"
	"protrack/internal/middleware"
	"protrack/internal/repository/postgres"
	"protrack/internal/service"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, cfg.MaxLogFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Session token issuer
	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("Failed to create token issuer: %v", err)
	}

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	userRepo := postgres.NewUserRepository(repoConfig)
	projectRepo := postgres.NewProjectRepository(repoConfig)
	permRepo := postgres.NewPermissionRepository(repoConfig)
	docRepo := postgres.NewDocumentRepository(repoConfig)
	notifRepo := postgres.NewNotificationRepository(repoConfig)
	eventRepo := postgres.NewEventRepository(repoConfig)
	activityRepo := postgres.NewActivityRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Outbound email and one-time codes
	mailer := mail.NewResendSender(cfg.ResendAPIKey, cfg.ResendFromEmail, logger)
	otpStore := auth.NewOTPStore()

	// Create services
	activityLogger := service.NewActivityLogger(activityRepo, logger)
	notifService := service.NewNotificationService(notifRepo, logger)
	permService := service.NewPermissionService(permRepo, projectRepo, userRepo, notifService, logger)
	projectService := service.NewProjectService(projectRepo, permRepo, docRepo, userRepo, txManager, logger)
	docService := service.NewDocumentService(docRepo, projectRepo, activityLogger, logger)
	shareService := service.NewShareLinkService(docRepo, cfg.PublicBaseURL, logger)
	userService := service.NewUserService(userRepo, logger)
	authService := service.NewAuthService(userRepo, tokens, otpStore, mailer, logger)
	eventService := service.NewEventService(eventRepo, notifRepo, userRepo, logger)
	leaderboardService := service.NewLeaderboardService(activityRepo, userRepo, logger)

	// Create handlers; projects and documents get one instance per program
	setupProjects := handler.NewProjectHandler(models.KindSetup, projectService, logger)
	cestProjects := handler.NewProjectHandler(models.KindCest, projectService, logger)
	setupDocs := handler.NewDocumentHandler(models.KindSetup, docService, logger)
	cestDocs := handler.NewDocumentHandler(models.KindCest, docService, logger)
	permHandler := handler.NewPermissionHandler(permService, userService, logger)
	viewDocHandler := handler.NewViewDocHandler(shareService, logger)
	authHandler := handler.NewAuthHandler(authService, logger)
	userHandler := handler.NewUserHandler(userService, logger)
	notifHandler := handler.NewNotificationHandler(notifService, logger)
	eventHandler := handler.NewEventHandler(eventService, userService, logger)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Project routes, one prefix per program
	registerProjectRoutes(mux, "setup-projects", setupProjects, setupDocs, permHandler)
	registerProjectRoutes(mux, "cest-projects", cestProjects, cestDocs, permHandler)

	// Public share-link routes
	mux.HandleFunc("GET /api/view-doc/{docId}", viewDocHandler.GetMeta)
	mux.HandleFunc("POST /api/view-doc/{docId}", viewDocHandler.ServeDocument)
	mux.HandleFunc("PATCH /api/view-doc/{docId}", viewDocHandler.SetPin)
	mux.HandleFunc("GET /api/view-doc/{docId}/qr", viewDocHandler.QRCode)

	// Auth routes
	mux.HandleFunc("POST /api/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/check-email", authHandler.CheckEmail)
	mux.HandleFunc("POST /api/auth/check-name", authHandler.CheckName)
	mux.HandleFunc("POST /api/auth/forgot-password", authHandler.ForgotPassword)
	mux.HandleFunc("POST /api/auth/reset-password", authHandler.ResetPassword)

	// User routes
	mux.HandleFunc("GET /api/users", userHandler.ListUsers)
	mux.HandleFunc("GET /api/users/{id}", userHandler.GetUser)
	mux.HandleFunc("PATCH /api/users/{id}", userHandler.UpdateUser)

	// Notification routes
	mux.HandleFunc("POST /api/notifications", notifHandler.CreateNotification)
	mux.HandleFunc("GET /api/notifications", notifHandler.ListNotifications)
	mux.HandleFunc("PATCH /api/notifications/{id}", notifHandler.UpdateNotification)
	mux.HandleFunc("DELETE /api/notifications/{id}", notifHandler.DeleteNotification)

	// Calendar routes
	mux.HandleFunc("GET /api/calendar-events", eventHandler.ListEvents)
	mux.HandleFunc("POST /api/calendar-events", eventHandler.CreateEvent)
	mux.HandleFunc("DELETE /api/calendar-events/{id}", eventHandler.DeleteEvent)

	// Snake leaderboard routes
	mux.HandleFunc("GET /api/snake-scores", leaderboardHandler.GetLeaderboard)
	mux.HandleFunc("POST /api/snake-scores", leaderboardHandler.SubmitScore)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Identify → Routes
	root = middleware.Identify(tokens, logger)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "x-user-id"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     root,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// registerProjectRoutes wires the project, document and permission routes
// under one program prefix.
func registerProjectRoutes(mux *http.ServeMux, prefix string, projects *handler.ProjectHandler, docs *handler.DocumentHandler, perms *handler.PermissionHandler) {
	mux.HandleFunc("GET /api/"+prefix, projects.ListProjects)
	mux.HandleFunc("POST /api/"+prefix, projects.CreateProject)
	mux.HandleFunc("GET /api/"+prefix+"/{id}", projects.GetProject)
	mux.HandleFunc("PATCH /api/"+prefix+"/{id}", projects.UpdateProject)
	mux.HandleFunc("DELETE /api/"+prefix+"/{id}", projects.DeleteProject)

	mux.HandleFunc("POST /api/"+prefix+"/{id}/documents", docs.UploadDocument)
	mux.HandleFunc("GET /api/"+prefix+"/{id}/documents", docs.ListDocuments)
	mux.HandleFunc("GET /api/"+prefix+"/{id}/documents/progress", docs.GetProgress)
	mux.HandleFunc("DELETE /api/"+prefix+"/{id}/documents/{docId}", docs.DeleteDocument)
	mux.HandleFunc("DELETE /api/"+prefix+"/{id}/checklist-items/{templateItemId}", docs.DeleteChecklistRow)

	mux.HandleFunc("GET /api/"+prefix+"/{id}/permissions", perms.ListPermissions)
	mux.HandleFunc("POST /api/"+prefix+"/{id}/edit-requests", perms.RequestEdit)
	mux.HandleFunc("POST /api/"+prefix+"/{id}/edit-requests/{userId}/accept", perms.AcceptEditRequest)
	mux.HandleFunc("POST /api/"+prefix+"/{id}/edit-requests/{userId}/decline", perms.DeclineEditRequest)
	mux.HandleFunc("DELETE /api/"+prefix+"/{id}/editors/{userId}", perms.RevokeEditAccess)
}
