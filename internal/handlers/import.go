package handlers

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/recipe-box/internal/models"
	"github.com/foxxcyber/recipe-box/internal/services"
	"github.com/foxxcyber/recipe-box/internal/store"
)

// ImportHandler turns pasted text or recipe-card photos into recipes.
// The OCR service is optional; photo import is only mounted when it is
// available.
type ImportHandler struct {
	store  *store.Store
	parser *services.IngredientParser
	ocr    *services.OCRService
}

// NewImportHandler creates an import handler; ocr may be nil
func NewImportHandler(s *store.Store, ocr *services.OCRService) *ImportHandler {
	return &ImportHandler{
		store:  s,
		parser: services.NewIngredientParser(),
		ocr:    ocr,
	}
}

// ImportText imports a pasted recipe: the first non-empty line is the
// name, every following non-empty line is one ingredient
func (ih *ImportHandler) ImportText(c *fiber.Ctx) error {
	var req models.ImportTextRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Content) == "" {
		return Error(c, fiber.StatusBadRequest, "content is required")
	}

	preview := ih.buildPreview(splitImportLines(req.Content))
	if preview.Name == "" {
		return Error(c, fiber.StatusBadRequest, "could not find a recipe name")
	}

	if req.Save {
		recipe, err := ih.store.CreateRecipe(&models.CreateRecipeRequest{
			Name:        preview.Name,
			Ingredients: preview.Lines,
		})
		if err != nil {
			return Error(c, fiber.StatusInternalServerError, "failed to save imported recipe")
		}
		preview.Recipe = recipe
	}

	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success: true,
		Data:    preview,
	})
}

// ImportPhoto runs OCR over an uploaded recipe-card photo and returns
// the same preview as a text import. Nothing is saved; the caller
// reviews the preview and posts it to the text import with save=true.
func (ih *ImportHandler) ImportPhoto(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "image file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "failed to open uploaded image")
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(file)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to read uploaded image")
	}

	result, err := ih.ocr.ProcessImage(imageBytes)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to read text from image")
	}
	if len(result.Lines) == 0 {
		return Error(c, fiber.StatusUnprocessableEntity, "no text found in image")
	}

	return Success(c, ih.buildPreview(result.Lines))
}

// buildPreview parses import lines into a named ingredient preview
func (ih *ImportHandler) buildPreview(lines []string) models.ImportPreview {
	preview := models.ImportPreview{}
	if len(lines) == 0 {
		return preview
	}

	preview.Name = lines[0]
	preview.Lines = lines[1:]
	preview.Parsed = ih.parser.ParseAll(preview.Lines)
	return preview
}

// splitImportLines breaks pasted content into trimmed, non-empty lines
func splitImportLines(content string) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
