package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"taskflow/internal/auth"
	"taskflow/internal/config"
	"taskflow/internal/handler"
	"taskflow/internal/metrics"
	"taskflow/internal/middleware"
	"taskflow/internal/policy"
	"taskflow/internal/repository/postgres"
	serviceAuthz "taskflow/internal/service/authz"
	serviceGuard "taskflow/internal/service/guard"
	serviceIdentity "taskflow/internal/service/identity"
	serviceResource "taskflow/internal/service/resource"
	serviceTenancy "taskflow/internal/service/tenancy"

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

	var logWriter io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logWriter = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logWriter, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
		"auth_provider", cfg.AuthProvider,
	)

	// Create JWT verifier against the auth platform's JWKS endpoint
	verifier, err := auth.NewJWKSVerifier(cfg.AuthJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer verifier.Close()

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
	companyRepo := postgres.NewCompanyRepository(repoConfig)
	profileRepo := postgres.NewProfileRepository(repoConfig)
	operatorRepo := postgres.NewOperatorRepository(repoConfig)
	resourceRepo := postgres.NewResourceRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	// Select the identity provider backend
	provider, err := setupIdentityProvider(cfg, repoConfig)
	if err != nil {
		log.Fatalf("Failed to setup identity provider: %v", err)
	}

	// Load the resource type catalog
	catalog, err := policy.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load resource catalog: %v", err)
	}
	logger.Info("resource catalog loaded", "types", len(catalog.Types()))

	// Create services
	resolver := serviceIdentity.NewResolver(profileRepo, operatorRepo, logger)
	evaluator := serviceAuthz.NewEvaluator(catalog, logger)
	guard := serviceGuard.NewGuard(resourceRepo, catalog, logger)
	tenancyService := serviceTenancy.NewService(companyRepo, profileRepo, provider, txManager, logger)
	resourceService := serviceResource.NewService(resourceRepo, evaluator, guard, logger)

	// Create handlers
	signupHandler := handler.NewSignupHandler(tenancyService, logger)
	userHandler := handler.NewUserHandler(tenancyService, resolver, logger)
	companyHandler := handler.NewCompanyHandler(tenancyService, resolver, logger)
	meHandler := handler.NewMeHandler(tenancyService, resolver, logger)
	authzHandler := handler.NewAuthzHandler(evaluator, resolver, logger)
	resourceHandler := handler.NewResourceHandler(resourceService, resolver, logger)
	bootstrapHandler := handler.NewBootstrapHandler(operatorRepo, logger)

	metrics.Register()
	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check and metrics
	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /metrics", metrics.Handler())

	// Public routes
	mux.HandleFunc("POST /api/auth/signup", signupHandler.Signup)
	mux.HandleFunc("GET /api/bootstrap/operator", bootstrapHandler.OperatorStatus)

	// Caller identity
	mux.HandleFunc("GET /api/me", meHandler.GetMe)

	// Authorization check
	mux.HandleFunc("POST /api/authz/check", authzHandler.Check)

	// Company routes
	mux.HandleFunc("POST /api/companies", companyHandler.CreateCompany)

	// Administrative user management
	mux.HandleFunc("GET /api/admin/users", userHandler.ListUsers)
	mux.HandleFunc("POST /api/admin/users", userHandler.CreateUser)
	mux.HandleFunc("PATCH /api/admin/users/{id}/role", userHandler.UpdateUserRole)
	mux.HandleFunc("DELETE /api/admin/users/{id}", userHandler.DeleteUser)

	// Guarded resource writes
	mux.HandleFunc("POST /api/resources", resourceHandler.CreateResource)
	mux.HandleFunc("DELETE /api/resources/{type}/{id}", resourceHandler.DeleteResource)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Metrics → Recovery → Auth → Routes
	publicPaths := map[string]bool{
		"/health":                 true,
		"/metrics":                true,
		"/api/auth/signup":        true,
		"/api/bootstrap/operator": true,
	}
	root = middleware.Auth(verifier, publicPaths)(root)
	root = middleware.Recovery(logger)(root)
	root = middleware.Metrics(mux)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupIdentityProvider selects the configured identity backend: the
// hosted auth platform's admin API, or local Postgres-backed credentials.
func setupIdentityProvider(cfg *config.Config, repoConfig *postgres.RepositoryConfig) (auth.IdentityProvider, error) {
	switch cfg.AuthProvider {
	case "hosted":
		if cfg.AuthURL == "" || cfg.AuthKey == "" {
			return nil, fmt.Errorf("AUTH_URL and AUTH_SERVICE_KEY are required for the hosted provider")
		}
		return auth.NewAdminClient(cfg.AuthURL, cfg.AuthKey), nil
	case "local":
		return postgres.NewLocalIdentityProvider(repoConfig), nil
	default:
		return nil, fmt.Errorf("unknown auth provider %q", cfg.AuthProvider)
	}
}
