package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	editor "floorplan-editor/internal/editor/service"
	"floorplan-editor/internal/floorplan/models"
	"floorplan-editor/internal/floorplan/service"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// maxImportSize caps uploaded plan files.
const maxImportSize = 10 << 20

// ============================================================
// Floor Plan Handler
// ============================================================

type PlanHandler struct {
	store    *service.Store
	sessions *editor.SessionManager
	logger   *zap.Logger
}

func NewPlanHandler(store *service.Store, sessions *editor.SessionManager, logger *zap.Logger) *PlanHandler {
	return &PlanHandler{store: store, sessions: sessions, logger: logger}
}

func (h *PlanHandler) Register(r fiber.Router) {
	r.Get("/plans", h.List)
	r.Post("/plans", h.Save)
	r.Post("/plans/import", h.Import)
	r.Get("/plans/:id", h.Get)
	r.Put("/plans/:id", h.Update)
	r.Delete("/plans/:id", h.Delete)
	r.Post("/plans/:id/load", h.Load)
	r.Get("/plans/:id/export", h.Export)
}

type saveRequest struct {
	Session     string `json:"session"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type loadRequest struct {
	Session string `json:"session"`
}

// planResponse reports whether the change reached durable storage. The
// in-memory list is updated either way.
type planResponse struct {
	Plan      models.FloorPlan `json:"plan"`
	Persisted bool             `json:"persisted"`
}

func (h *PlanHandler) List(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"plans": h.store.List()})
}

func (h *PlanHandler) Get(c fiber.Ctx) error {
	plan, ok := h.store.Get(c.Params("id"))
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "floor plan not found"})
	}
	return c.JSON(plan)
}

// Save snapshots a session's scene as a new plan.
func (h *PlanHandler) Save(c fiber.Ctx) error {
	var req saveRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	ed, ok := h.session(c, req.Session)
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}

	plan, err := h.store.Save(context.Background(), ed.Scene(), req.Name, req.Description)
	if err != nil && !errors.Is(err, service.ErrPersistence) {
		return h.fail(c, err)
	}
	return c.Status(http.StatusCreated).JSON(planResponse{Plan: plan, Persisted: err == nil})
}

func (h *PlanHandler) Update(c fiber.Ctx) error {
	var req saveRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	ed, ok := h.session(c, req.Session)
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}

	id := c.Params("id")
	found, err := h.store.Update(context.Background(), id, ed.Scene(), req.Name, req.Description)
	if err != nil && !errors.Is(err, service.ErrPersistence) {
		return h.fail(c, err)
	}
	if !found {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "floor plan not found"})
	}
	plan, _ := h.store.Get(id)
	return c.JSON(planResponse{Plan: plan, Persisted: err == nil})
}

// Delete is idempotent: an unknown id still answers 200 with deleted=false.
func (h *PlanHandler) Delete(c fiber.Ctx) error {
	deleted, err := h.store.Delete(context.Background(), c.Params("id"))
	if err != nil && !errors.Is(err, service.ErrPersistence) {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"deleted": deleted, "persisted": err == nil})
}

// Load replaces a session's scene with the stored snapshot.
func (h *PlanHandler) Load(c fiber.Ctx) error {
	var req loadRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	ed, ok := h.session(c, req.Session)
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}

	scene, err := h.store.Load(c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	ed.Replace(scene)
	return c.JSON(fiber.Map{"loaded": c.Params("id"), "objects": scene.Len()})
}

func (h *PlanHandler) Export(c fiber.Ctx) error {
	id := c.Params("id")
	text, ok := h.store.ExportJSON(id)
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "floor plan not found"})
	}

	c.Attachment(ExportFilename(id))
	c.Set("Content-Type", "application/json")
	return c.SendString(text)
}

// Import accepts either a raw JSON body or a multipart upload in "file".
func (h *PlanHandler) Import(c fiber.Ctx) error {
	var text string
	if strings.HasPrefix(c.Get("Content-Type"), "multipart/form-data") {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "file required"})
		}
		if ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext != ".json" {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "only json allowed"})
		}

		file, err := fileHeader.Open()
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to open file"})
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxImportSize))
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to read file"})
		}
		text = string(data)
	} else {
		text = string(c.Body())
	}

	plan, err := h.store.ImportJSON(context.Background(), text)
	if err != nil && !errors.Is(err, service.ErrPersistence) {
		return h.fail(c, err)
	}
	h.logger.Info("floor plan imported", zap.String("id", plan.ID), zap.String("name", plan.Name))
	return c.Status(http.StatusCreated).JSON(planResponse{Plan: plan, Persisted: err == nil})
}

// ============================================================
// Helpers
// ============================================================

func (h *PlanHandler) session(c fiber.Ctx, sid string) (*editor.Editor, bool) {
	ed, ok := h.sessions.Resolve(sid)
	if ok {
		c.Locals("session", sid)
	}
	return ed, ok
}

func (h *PlanHandler) fail(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrMalformed), errors.Is(err, service.ErrNameRequired):
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrCorruptData):
		return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	h.logger.Error("floor plan request", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}

func ExportFilename(id string) string {
	return "floor-plan-" + id + ".json"
}
