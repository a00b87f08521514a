package handlers

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/recipe-box/internal/services"
	"github.com/foxxcyber/recipe-box/internal/store"
)

// exportLinkExpiry bounds how long an uploaded export stays downloadable
const exportLinkExpiry = 24 * time.Hour

// BackupHandler drives folder snapshots and export uploads to
// S3-compatible storage. Mounted only when S3 is configured.
type BackupHandler struct {
	h      *Handler
	backup *services.BackupService

	mu      sync.Mutex
	running bool
	last    *services.SnapshotResult
	lastErr string
}

// NewBackupHandler creates a backup handler
func NewBackupHandler(h *Handler, backup *services.BackupService) *BackupHandler {
	return &BackupHandler{
		h:      h,
		backup: backup,
	}
}

// RunBackup snapshots the recipe folder. One snapshot runs at a time;
// a second request while one is in flight gets a 409.
func (bh *BackupHandler) RunBackup(c *fiber.Ctx) error {
	bh.mu.Lock()
	if bh.running {
		bh.mu.Unlock()
		return Error(c, fiber.StatusConflict, "a backup is already running")
	}
	bh.running = true
	bh.mu.Unlock()

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Minute)
	defer cancel()

	result, err := bh.backup.SnapshotFolder(ctx, bh.h.store.Dir())

	bh.mu.Lock()
	bh.running = false
	if err != nil {
		bh.lastErr = err.Error()
		bh.mu.Unlock()
		log.Printf("Backup failed: %v", err)
		return Error(c, fiber.StatusInternalServerError, "backup failed")
	}
	bh.last = result
	bh.lastErr = ""
	bh.mu.Unlock()

	log.Printf("Backup complete: %d files (%d bytes) under %s", result.FileCount, result.TotalSize, result.Prefix)
	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success: true,
		Data:    result,
	})
}

// Status reports whether a backup is running and the last result
func (bh *BackupHandler) Status(c *fiber.Ctx) error {
	bh.mu.Lock()
	defer bh.mu.Unlock()

	return Success(c, fiber.Map{
		"running":    bh.running,
		"bucket":     bh.backup.GetBucketName(),
		"last":       bh.last,
		"last_error": bh.lastErr,
	})
}

// ExportRecipeLink renders a recipe export, stores it in the backup
// bucket and returns a time-limited download link
func (bh *BackupHandler) ExportRecipeLink(c *fiber.Ctx) error {
	format, ok := parseFormat(c)
	if !ok {
		return Error(c, fiber.StatusBadRequest, "format must be text, markdown or html")
	}

	recipe, err := bh.h.store.GetRecipe(c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrRecipeNotFound) {
			return Error(c, fiber.StatusNotFound, "recipe not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to load recipe")
	}

	rendered, err := bh.h.exporter.Recipe(recipe, format)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to render recipe")
	}

	return bh.uploadAndLink(c, "exports/recipes/"+recipe.ID+"."+format.Ext(), rendered, format)
}

// ExportListLink renders a grocery-list export, stores it in the backup
// bucket and returns a time-limited download link
func (bh *BackupHandler) ExportListLink(c *fiber.Ctx) error {
	format, ok := parseFormat(c)
	if !ok {
		return Error(c, fiber.StatusBadRequest, "format must be text, markdown or html")
	}

	session, err := bh.h.getSession(c.Params("session"))
	if err != nil {
		return Error(c, fiber.StatusNotFound, "grocery list not found")
	}

	rendered, err := bh.h.exporter.GroceryList(session, format)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to render list")
	}

	return bh.uploadAndLink(c, "exports/lists/"+session.ID+"."+format.Ext(), rendered, format)
}

func (bh *BackupHandler) uploadAndLink(c *fiber.Ctx, key, rendered string, format services.ExportFormat) error {
	ctx, cancel := context.WithTimeout(c.Context(), time.Minute)
	defer cancel()

	if err := bh.backup.UploadExport(ctx, key, []byte(rendered), format.ContentType()); err != nil {
		log.Printf("Failed to upload export %s: %v", key, err)
		return Error(c, fiber.StatusInternalServerError, "failed to store export")
	}

	url, err := bh.backup.GetPresignedURL(ctx, key, exportLinkExpiry)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to create download link")
	}

	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success: true,
		Data: fiber.Map{
			"key":        key,
			"url":        url,
			"expires_in": exportLinkExpiry.String(),
		},
	})
}
