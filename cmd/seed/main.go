package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"taskflow/internal/auth"
	"taskflow/internal/config"
	"taskflow/internal/domain"
	"taskflow/internal/domain/models"
	"taskflow/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't grant an operator")
	operatorEmail := flag.String("operator-email", "", "Email of the system operator to grant (created if missing)")
	operatorPassword := flag.String("operator-password", "", "Initial credential for a newly created operator identity")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("🚫 BLOCKED: Cannot run --drop-tables in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log.Printf("🌱 Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Drop tables if requested
	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	// Run schema to ensure tables exist
	log.Println("📋 Ensuring database schema is up to date...")
	if err := postgres.ApplySchema(ctx, pool, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	if *operatorEmail == "" {
		log.Println("✅ Seed complete (no --operator-email, skipping operator grant)")
		return
	}

	// Grant the system operator. Operator capability lives in its own
	// table written only by this tool, never through a request path.
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	operatorRepo := postgres.NewOperatorRepository(repoConfig)

	provider, err := setupIdentityProvider(cfg, repoConfig)
	if err != nil {
		log.Fatalf("Failed to setup identity provider: %v", err)
	}

	userID, err := ensureOperatorIdentity(ctx, provider, *operatorEmail, *operatorPassword)
	if err != nil {
		log.Fatalf("Failed to ensure operator identity: %v", err)
	}

	if err := operatorRepo.Grant(ctx, userID); err != nil {
		log.Fatalf("Failed to grant operator: %v", err)
	}
	log.Printf("✅ Operator granted (user: %s)", userID)
}

// ensureOperatorIdentity resolves the operator's user ID, creating the
// identity when the email is unknown to the provider.
func ensureOperatorIdentity(ctx context.Context, provider auth.IdentityProvider, email, password string) (string, error) {
	userID, err := provider.FindUserIDByEmail(ctx, email)
	if err == nil {
		return userID, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}

	if password == "" {
		return "", fmt.Errorf("identity %s does not exist; pass --operator-password to create it", email)
	}

	return provider.CreateUser(ctx, auth.NewIdentity{
		Email:         email,
		Password:      password,
		FirstName:     "System",
		LastName:      "Operator",
		RequireChange: true,
		AppMetadata: map[string]interface{}{
			"role": string(models.RoleAdmin),
		},
	})
}

// dropAllTables drops every managed table. CASCADE because resource tables
// hold composite foreign keys into each other.
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	for _, table := range tables.All() {
		if _, err := pool.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}

// setupIdentityProvider mirrors the server's provider selection.
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
