package handlers

import (
	"context"
	"errors"
	"io/fs"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/log"
	"github.com/google/uuid"

	"github.com/v0idhrt/boxdiagram/internal/catalog"
	"github.com/v0idhrt/boxdiagram/internal/diagram"
	"github.com/v0idhrt/boxdiagram/internal/renderer/models"
	"github.com/v0idhrt/boxdiagram/internal/renderer/repository"
	"github.com/v0idhrt/boxdiagram/internal/renderer/service"
	"github.com/v0idhrt/boxdiagram/internal/surface"
)

const (
	maxDPI          = 600
	maxRenderPixels = 1 << 25
	defaultListSize = 20
	maxListSize     = 100
)

// History stores and finds rendered files.
type History interface {
	Insert(ctx context.Context, rec *models.Render) error
	GetByID(ctx context.Context, id string) (*models.Render, error)
	ListRecent(ctx context.Context, limit int) ([]models.Render, error)
}

// ============================================================
// Render Handler
// ============================================================

type RenderHandler struct {
	history       History
	storage       *service.FileStorage
	open          diagram.Opener
	defaultDPI    float64
	defaultFormat surface.Format
}

func NewRenderHandler(history History, storage *service.FileStorage, defaultDPI float64, defaultFormat surface.Format) *RenderHandler {
	return &RenderHandler{
		history:       history,
		storage:       storage,
		open:          boundedOpen(maxRenderPixels),
		defaultDPI:    defaultDPI,
		defaultFormat: defaultFormat,
	}
}

// ListDiagrams describes the catalog.
func (h *RenderHandler) ListDiagrams(c fiber.Ctx) error {
	formats := make([]string, 0, len(surface.Formats()))
	for _, f := range surface.Formats() {
		formats = append(formats, f.Extension())
	}

	out := []models.DiagramInfo{}
	for _, d := range catalog.List() {
		out = append(out, models.DiagramInfo{
			Name:        d.Name,
			Title:       d.Title,
			Description: d.Description,
			Formats:     formats,
		})
	}
	return c.JSON(out)
}

// RenderDiagram renders a catalog diagram, records it and returns the file.
func (h *RenderHandler) RenderDiagram(c fiber.Ctx) error {
	name := c.Params("name")
	d, err := catalog.Lookup(name)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	format := h.defaultFormat
	if q := c.Query("format"); q != "" {
		if format, err = surface.ParseFormat(q); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}

	dpi := h.defaultDPI
	if q := c.Query("dpi"); q != "" {
		dpi, err = strconv.ParseFloat(q, 64)
		if err != nil || dpi <= 0 || dpi > maxDPI {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "dpi must be a number in (0, 600]"})
		}
	}

	id := uuid.NewString()
	if err := h.storage.EnsureDir(d.Name); err != nil {
		log.Errorf("[RENDER] %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "storage unavailable"})
	}
	path := h.storage.RenderPath(d.Name, id, format.Extension())

	log.Infof("[RENDER] %s -> %s (dpi %g)", d.Name, path, dpi)
	if err := d.Render(h.open, path, dpi); err != nil {
		if errors.Is(err, diagram.ErrCanvasTooLarge) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		log.Errorf("[RENDER] Render error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	data, err := h.storage.ReadFile(path)
	if err != nil {
		log.Errorf("[RENDER] Read error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "rendered file missing"})
	}

	rec := &models.Render{
		ID:        id,
		Diagram:   d.Name,
		Format:    string(format),
		Path:      path,
		SizeBytes: int64(len(data)),
		DPI:       dpi,
	}
	if err := h.history.Insert(c.Context(), rec); err != nil {
		log.Warnf("[RENDER] History not recorded for %s: %v", id, err)
	}

	c.Set("X-Render-ID", id)
	c.Set("Content-Type", format.ContentType())
	return c.Send(data)
}

// ListRenders returns the most recent renders.
func (h *RenderHandler) ListRenders(c fiber.Ctx) error {
	limit := defaultListSize
	if q := c.Query("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 || n > maxListSize {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must be between 1 and 100"})
		}
		limit = n
	}

	list, err := h.history.ListRecent(c.Context(), limit)
	if err != nil {
		log.Errorf("[RENDER] List error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "history unavailable"})
	}
	return c.JSON(list)
}

// GetRender returns a previously rendered file.
func (h *RenderHandler) GetRender(c fiber.Ctx) error {
	rec, err := h.history.GetByID(c.Context(), c.Params("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "render not found"})
	}
	if err != nil {
		log.Errorf("[RENDER] Lookup error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "history unavailable"})
	}

	data, err := h.storage.ReadFile(rec.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return c.Status(fiber.StatusGone).JSON(fiber.Map{"error": "rendered file was removed"})
	}
	if err != nil {
		log.Errorf("[RENDER] Read error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "rendered file unavailable"})
	}

	format, err := surface.ParseFormat(rec.Format)
	if err != nil {
		format = surface.PNG
	}
	c.Set("X-Render-ID", rec.ID)
	c.Set("Content-Type", format.ContentType())
	return c.Send(data)
}

// boundedOpen refuses canvases larger than limit pixels before any image is allocated.
func boundedOpen(limit int64) diagram.Opener {
	return func(c diagram.Canvas, path string) (diagram.Surface, error) {
		if err := c.CheckPixels(limit); err != nil {
			return nil, err
		}
		return surface.Open(c, path)
	}
}
