package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/foxxcyber/recipe-box/internal/config"
	"github.com/foxxcyber/recipe-box/internal/handlers"
	"github.com/foxxcyber/recipe-box/internal/middleware"
	"github.com/foxxcyber/recipe-box/internal/services"
	"github.com/foxxcyber/recipe-box/internal/store"
)

func main() {
	// Load .env file if it exists
	godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Open the recipe folder
	s, err := store.Open(cfg.RecipesDir)
	if err != nil {
		log.Fatalf("Failed to open recipe folder: %v", err)
	}
	log.Printf("Loaded %d recipe(s) from %s", s.Count(), s.Dir())

	// Watch the folder for changes synced in from other devices
	watcher, err := store.NewWatcher(s)
	if err != nil {
		log.Fatalf("Failed to create folder watcher: %v", err)
	}
	if err := watcher.Start(); err != nil {
		log.Fatalf("Failed to watch recipe folder: %v", err)
	}
	defer watcher.Stop()

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Create handler with dependencies
	h := handlers.New(s, cfg)

	// Initialize OCR for photo import (optional)
	var ocrService *services.OCRService
	if cfg.OCREnabled {
		ocrService, err = services.NewOCRService()
		if err != nil {
			log.Printf("Warning: Failed to initialize OCR service: %v", err)
			ocrService = nil
		} else {
			log.Println("Photo import service initialized")
		}
	}
	importHandler := handlers.NewImportHandler(s, ocrService)

	// Initialize S3 backups (optional)
	var backupHandler *handlers.BackupHandler
	initBackupService := func() {
		if !cfg.S3Enabled {
			return
		}
		if cfg.S3Endpoint == "" || cfg.S3AccessKey == "" || cfg.S3SecretKey == "" {
			log.Println("S3 credentials not configured, backups disabled")
			return
		}

		backupService, err := services.NewBackupService(
			cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3Region, cfg.S3UseSSL,
		)
		if err != nil {
			log.Printf("Warning: Failed to initialize backup service: %v", err)
			return
		}

		if err := backupService.EnsureBucket(context.Background()); err != nil {
			log.Printf("Warning: Failed to ensure backup bucket exists: %v", err)
		}

		backupHandler = handlers.NewBackupHandler(h, backupService)
		log.Println("Folder backup service initialized")
	}
	initBackupService()

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "recipes": s.Count()})
	})

	// API routes
	api := app.Group("/api")

	// Recipe routes
	recipes := api.Group("/recipes")
	recipes.Get("/", h.ListRecipes)
	recipes.Post("/", h.CreateRecipe)
	recipes.Get("/:id", h.GetRecipe)
	recipes.Put("/:id", h.UpdateRecipe)
	recipes.Delete("/:id", h.DeleteRecipe)
	recipes.Post("/:id/rating", h.RateRecipe)
	recipes.Get("/:id/export", h.ExportRecipe)
	recipes.Post("/:id/share", h.ShareRecipe)

	// Tags routes
	api.Get("/tags", h.ListTags)

	// Grocery list routes (session-scoped, in memory)
	lists := api.Group("/grocery-lists")
	lists.Post("/", h.BuildGroceryList)
	lists.Get("/:session", h.GetGroceryList)
	lists.Post("/:session/items/:key/check", h.ToggleItemChecked)
	lists.Post("/:session/items/:key/have", h.ToggleItemHave)
	lists.Get("/:session/export", h.ExportGroceryList)
	lists.Post("/:session/share", h.ShareGroceryList)

	// Import routes
	api.Post("/import/text", importHandler.ImportText)
	if ocrService != nil {
		api.Post("/import/photo", importHandler.ImportPhoto)
	}

	// Backup routes (only if S3 is configured)
	if backupHandler != nil {
		api.Post("/backups", backupHandler.RunBackup)
		api.Get("/backups/status", backupHandler.Status)
		api.Post("/recipes/:id/export-link", backupHandler.ExportRecipeLink)
		api.Post("/grocery-lists/:session/export-link", backupHandler.ExportListLink)
	}

	// Public share route (token is the only credential)
	app.Get("/share/:token", middleware.ShareTokenRequired(h.Shares()), h.GetShared)

	// Static files - serve the web/ directory
	app.Static("/", "./web", fiber.Static{
		Index:  "index.html",
		Browse: false,
	})

	// Fallback for SPA-style routing - serve index.html for unmatched routes
	app.Get("/*", func(c *fiber.Ctx) error {
		return c.SendFile("./web/index.html")
	})

	// Log external folder changes so syncing is visible in the server log
	go func() {
		for event := range watcher.Subscribe() {
			log.Printf("Synced change applied: %s %s", event.Op, event.Path)
		}
	}()

	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
