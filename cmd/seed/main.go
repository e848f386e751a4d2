package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"pixelbin/internal/config"
	"pixelbin/internal/domain/services"
	"pixelbin/internal/repository/postgres"
	"pixelbin/internal/service"
	"pixelbin/internal/storage"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed demo folders")
	clearData := flag.Bool("clear-data", false, "Clear all folders and images (keep schema)")
	seedUserID := flag.String("user", "00000000-0000-0000-0000-000000000001", "User ID to own the seeded folders")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("🚫 BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if *clearData {
		log.Printf("🧹 Clearing data only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else if *schemaOnly {
		log.Printf("🏗️  Setting up schema only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else {
		log.Printf("🌱 Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	}

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
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	// Exit early if schema-only mode
	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	// Exit early if clear-data mode (just clear and exit)
	if *clearData {
		log.Println("🧹 Clearing existing folders and images...")
		if err := clearAllData(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("✅ Data cleared successfully")
		return
	}

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	folderRepo := postgres.NewFolderRepository(repoConfig)
	imageRepo := postgres.NewImageRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	fileStore, err := storage.NewLocalFileStore(cfg.UploadDir, logger)
	if err != nil {
		log.Fatalf("Failed to initialize file store: %v", err)
	}

	// Create services
	folderService := service.NewFolderService(folderRepo, imageRepo, fileStore, txManager, logger)

	// Seed a demo folder hierarchy. Images come in through the upload API.
	log.Printf("📁 Seeding demo folder structure for user %s...", *seedUserID)
	if err := seedFolders(ctx, folderService, *seedUserID); err != nil {
		log.Fatalf("Failed to seed folders: %v", err)
	}

	log.Println("✅ Seeding complete")
}

// runSchema creates the tables and indexes if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	// Enable UUID extension
	_, err := pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"")
	if err != nil {
		return err
	}

	// Create folders table
	createFolders := `
		CREATE TABLE IF NOT EXISTS ` + tables.Folders + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL,
			parent_id UUID REFERENCES ` + tables.Folders + `(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE(user_id, parent_id, name)
		)
	`
	if _, err := pool.Exec(ctx, createFolders); err != nil {
		return err
	}

	// Create images table
	createImages := `
		CREATE TABLE IF NOT EXISTS ` + tables.Images + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL,
			folder_id UUID NOT NULL REFERENCES ` + tables.Folders + `(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			original_name TEXT NOT NULL,
			filename TEXT NOT NULL UNIQUE,
			filepath TEXT NOT NULL,
			mime_type TEXT NOT NULL,
			size_bytes BIGINT NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createImages); err != nil {
		return err
	}

	// Create indexes. The partial unique index covers root-level siblings,
	// where parent_id IS NULL escapes the composite UNIQUE constraint.
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `folders_user_parent ON ` + tables.Folders + `(user_id, parent_id)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_` + tablePrefix + `folders_root_unique ON ` + tables.Folders + `(user_id, name) WHERE parent_id IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `images_user_folder ON ` + tables.Images + `(user_id, folder_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `images_user_created ON ` + tables.Images + `(user_id, created_at DESC)`,
	}

	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops all tables in reverse order (to respect foreign keys)
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.Images,
		tables.Folders,
	}

	for _, table := range tableNames {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return err
		}
	}

	return nil
}

// clearAllData removes every row but keeps the schema
func clearAllData(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	if _, err := pool.Exec(ctx, "DELETE FROM "+tables.Images); err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, "DELETE FROM "+tables.Folders); err != nil {
		return err
	}
	return nil
}

// seedFolders creates a small demo hierarchy through the service layer so
// the same validation and uniqueness rules apply as in production.
func seedFolders(ctx context.Context, folderService services.FolderService, userID string) error {
	structure := map[string][]string{
		"Photos": {"Vacation", "Family", "Screenshots"},
		"Work":   {"Diagrams", "Mockups"},
	}

	for rootName, childNames := range structure {
		root, err := folderService.CreateFolder(ctx, &services.CreateFolderRequest{
			UserID: userID,
			Name:   rootName,
		})
		if err != nil {
			return err
		}
		log.Printf("  📁 %s", root.Path)

		for _, childName := range childNames {
			child, err := folderService.CreateFolder(ctx, &services.CreateFolderRequest{
				UserID:   userID,
				Name:     childName,
				ParentID: &root.ID,
			})
			if err != nil {
				return err
			}
			log.Printf("  📁 %s", child.Path)
		}
	}

	return nil
}
