package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"pixelbin/internal/auth"
	"pixelbin/internal/config"
	"pixelbin/internal/formats"
	"pixelbin/internal/handler"
	"pixelbin/internal/middleware"
	"pixelbin/internal/repository/postgres"
	"pixelbin/internal/service"
	"pixelbin/internal/storage"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// JWT verifier for bearer-token authentication
	jwtVerifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

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

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	folderRepo := postgres.NewFolderRepository(repoConfig)
	imageRepo := postgres.NewImageRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Stored-file placement and the accepted-format registry
	fileStore, err := storage.NewLocalFileStore(cfg.UploadDir, logger)
	if err != nil {
		log.Fatalf("Failed to initialize file store: %v", err)
	}

	formatRegistry, err := formats.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load image format registry: %v", err)
	}

	// Create services
	folderService := service.NewFolderService(folderRepo, imageRepo, fileStore, txManager, logger)
	treeService := service.NewTreeService(folderRepo, logger)
	imageService := service.NewImageService(imageRepo, folderRepo, fileStore, formatRegistry, logger)

	// Create handlers
	folderHandler := handler.NewFolderHandler(folderService, logger)
	treeHandler := handler.NewTreeHandler(treeService, logger)
	imageHandler := handler.NewImageHandler(imageService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", imageHandler.HealthCheck)

	// Folder routes
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("GET /api/folders", folderHandler.ListFolders)
	mux.HandleFunc("GET /api/folders/tree", treeHandler.GetTree) // Must come before {id} route
	mux.HandleFunc("GET /api/folders/{id}", folderHandler.GetFolder)
	mux.HandleFunc("PATCH /api/folders/{id}", folderHandler.UpdateFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.DeleteFolder)

	// Image routes
	mux.HandleFunc("POST /api/images", imageHandler.UploadImage)
	mux.HandleFunc("GET /api/images", imageHandler.ListImages)
	mux.HandleFunc("GET /api/images/search", imageHandler.SearchImages) // Must come before {id} route
	mux.HandleFunc("GET /api/images/{id}", imageHandler.GetImage)
	mux.HandleFunc("PATCH /api/images/{id}", imageHandler.RenameImage)
	mux.HandleFunc("POST /api/images/{id}/move", imageHandler.MoveImage)
	mux.HandleFunc("DELETE /api/images/{id}", imageHandler.DeleteImage)

	// Stored files are served directly from the upload directory
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	root = middleware.Auth(jwtVerifier)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
