package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"floorplan-editor/internal/editor/catalog"
	"floorplan-editor/internal/editor/models"
	"floorplan-editor/internal/editor/properties"
	"floorplan-editor/internal/editor/service"
	"floorplan-editor/internal/editor/tools"
	"floorplan-editor/internal/export"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// ============================================================
// Editor Handler
// ============================================================

type EditorHandler struct {
	sessions *service.SessionManager
	logger   *zap.Logger
}

func NewEditorHandler(sessions *service.SessionManager, logger *zap.Logger) *EditorHandler {
	return &EditorHandler{sessions: sessions, logger: logger}
}

// Register mounts the editor routes on r.
func (h *EditorHandler) Register(r fiber.Router) {
	r.Get("/catalog", h.Catalog)

	r.Post("/sessions", h.OpenSession)
	r.Delete("/sessions/:sid", h.CloseSession)
	r.Get("/sessions/:sid/scene", h.GetScene)
	r.Post("/sessions/:sid/tool", h.SelectTool)
	r.Post("/sessions/:sid/pointer", h.Pointer)
	r.Post("/sessions/:sid/furniture", h.PlaceFurniture)
	r.Post("/sessions/:sid/selection", h.Select)

	r.Get("/sessions/:sid/objects/:oid", h.GetObject)
	r.Patch("/sessions/:sid/objects/:oid", h.UpdateObject)
	r.Delete("/sessions/:sid/objects/:oid", h.DeleteObject)
	r.Post("/sessions/:sid/objects/:oid/duplicate", h.DuplicateObject)
	r.Post("/sessions/:sid/objects/:oid/front", h.BringToFront)
	r.Post("/sessions/:sid/objects/:oid/back", h.SendToBack)

	r.Post("/sessions/:sid/canvas/:command", h.Canvas)
	r.Get("/sessions/:sid/export/:format", h.Export)
}

type toolRequest struct {
	Tool string `json:"tool"`
}

type toolResponse struct {
	Tool    tools.Tool           `json:"tool"`
	Mode    string               `json:"mode"`
	Brush   *tools.Brush         `json:"brush,omitempty"`
	Stamped *properties.Snapshot `json:"stamped,omitempty"`
}

type pointerRequest struct {
	Phase string  `json:"phase"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

type furnitureRequest struct {
	ItemID string `json:"itemId"`
}

type selectionRequest struct {
	ID string `json:"id"`
}

type attributeRequest struct {
	Attr  string `json:"attr"`
	Value string `json:"value"`
}

// Catalog lists furniture templates filtered by ?search= and ?category=.
func (h *EditorHandler) Catalog(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"categories": catalog.Categories(),
		"items":      catalog.Filter(c.Query("search"), c.Query("category")),
	})
}

func (h *EditorHandler) OpenSession(c fiber.Ctx) error {
	id, ed := h.sessions.Open()
	h.logger.Info("editor session opened", zap.String("session", id))
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"session": id,
		"tool":    ed.Tool(),
	})
}

func (h *EditorHandler) CloseSession(c fiber.Ctx) error {
	if !h.sessions.Close(c.Params("sid")) {
		return sessionNotFound(c)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *EditorHandler) GetScene(c fiber.Ctx) error {
	ed, ok := h.editor(c)
	if !ok {
		return sessionNotFound(c)
	}
	data, err := ed.Scene().Encode()
	if err != nil {
		h.logger.Error("encode scene", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to encode scene"})
	}
	c.Set("Content-Type", "application/json")
	return c.Send(data)
}

func (h *EditorHandler) SelectTool(c fiber.Ctx) error {
	ed, ok := h.editor(c)
	if !ok {
		return sessionNotFound(c)
	}
	var req toolRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	tool, err := tools.Parse(req.Tool)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	stamped, err := ed.SelectTool(tool)
	if err != nil {
		return h.fail(c, err)
	}

	effect := tool.Effect()
	resp := toolResponse{Tool: tool, Mode: effect.Mode.String(), Stamped: stamped}
	if effect.Mode == tools.ModeFreeDraw {
		resp.Brush = &effect.Brush
	}
	return c.JSON(resp)
}

func (h *EditorHandler) Pointer(c fiber.Ctx) error {
	ed, ok := h.editor(c)
	if !ok {
		return sessionNotFound(c)
	}
	var req pointerRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	res, err := ed.Pointer(service.Phase(req.Phase), req.X, req.Y)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(res)
}

func (h *EditorHandler) PlaceFurniture(c fiber.Ctx) error {
	ed, ok := h.editor(c)
	if !ok {
		return sessionNotFound(c)
	}
	var req furnitureRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	snap, err := ed.PlaceFurniture(req.ItemID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(http.StatusCreated).JSON(snap)
}

// Select makes an object the active one; an empty id clears the selection.
func (h *EditorHandler) Select(c fiber.Ctx) error {
	ed, ok := h.editor(c)
	if !ok {
		return sessionNotFound(c)
	}
	var req selectionRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	var snap *properties.Snapshot
	err := ed.Do(func(s *models.Scene) error {
		if req.ID == "" {
			s.ClearSelection()
			return nil
		}
		if err := s.Select(req.ID); err != nil {
			return err
		}
		read, err := properties.Read(s, req.ID)
		snap = &read
		return err
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"selected": snap})
}

// ============================================================
// Properties
// ============================================================

func (h *EditorHandler) GetObject(c fiber.Ctx) error {
	return h.withObject(c, func(s *models.Scene, id string) (any, error) {
		return properties.Read(s, id)
	})
}

func (h *EditorHandler) UpdateObject(c fiber.Ctx) error {
	var req attributeRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	return h.withObject(c, func(s *models.Scene, id string) (any, error) {
		if err := properties.Apply(s, id, properties.Attribute(req.Attr), req.Value); err != nil {
			return nil, err
		}
		return properties.Read(s, id)
	})
}

func (h *EditorHandler) DeleteObject(c fiber.Ctx) error {
	return h.withObject(c, func(s *models.Scene, id string) (any, error) {
		return fiber.Map{"deleted": id}, properties.Delete(s, id)
	})
}

func (h *EditorHandler) DuplicateObject(c fiber.Ctx) error {
	return h.withObject(c, func(s *models.Scene, id string) (any, error) {
		return properties.Duplicate(s, id)
	})
}

func (h *EditorHandler) BringToFront(c fiber.Ctx) error {
	return h.withObject(c, func(s *models.Scene, id string) (any, error) {
		if err := properties.BringToFront(s, id); err != nil {
			return nil, err
		}
		return fiber.Map{"order": s.IDs()}, nil
	})
}

func (h *EditorHandler) SendToBack(c fiber.Ctx) error {
	return h.withObject(c, func(s *models.Scene, id string) (any, error) {
		if err := properties.SendToBack(s, id); err != nil {
			return nil, err
		}
		return fiber.Map{"order": s.IDs()}, nil
	})
}

// ============================================================
// Canvas & export
// ============================================================

func (h *EditorHandler) Canvas(c fiber.Ctx) error {
	ed, ok := h.editor(c)
	if !ok {
		return sessionNotFound(c)
	}

	var delta struct {
		DX float64 `json:"dx"`
		DY float64 `json:"dy"`
	}
	if c.Params("command") == "pan" {
		if err := json.Unmarshal(c.Body(), &delta); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
	}

	var known = true
	_ = ed.Do(func(s *models.Scene) error {
		switch c.Params("command") {
		case "clear":
			s.Clear()
		case "zoom-in":
			s.ZoomIn()
		case "zoom-out":
			s.ZoomOut()
		case "zoom-reset":
			s.ResetZoom()
		case "grid":
			s.ToggleGrid()
		case "pan":
			s.Pan(delta.DX, delta.DY)
		default:
			known = false
		}
		return nil
	})
	if !known {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "unknown canvas command"})
	}

	scene := ed.Scene()
	return c.JSON(fiber.Map{
		"zoom":    scene.Viewport.Zoom,
		"panX":    scene.Viewport.PanX,
		"panY":    scene.Viewport.PanY,
		"grid":    scene.Background.Grid,
		"objects": scene.Len(),
	})
}

// Export streams the scene as a file download.
func (h *EditorHandler) Export(c fiber.Ctx) error {
	ed, ok := h.editor(c)
	if !ok {
		return sessionNotFound(c)
	}
	format, err := export.ParseFormat(c.Params("format"))
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	artifact, err := export.Export(ed.Scene(), format, c.Query("filename"))
	if err != nil {
		h.logger.Error("export scene", zap.String("format", string(format)), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "export failed"})
	}

	c.Attachment(artifact.Filename)
	c.Set("Content-Type", artifact.ContentType)
	return c.Send(artifact.Data)
}

// ============================================================
// Helpers
// ============================================================

func (h *EditorHandler) editor(c fiber.Ctx) (*service.Editor, bool) {
	sid := c.Params("sid")
	ed, ok := h.sessions.Resolve(sid)
	if ok {
		c.Locals("session", sid)
	}
	return ed, ok
}

func sessionNotFound(c fiber.Ctx) error {
	return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
}

func (h *EditorHandler) withObject(c fiber.Ctx, fn func(*models.Scene, string) (any, error)) error {
	ed, ok := h.editor(c)
	if !ok {
		return sessionNotFound(c)
	}
	var out any
	err := ed.Do(func(s *models.Scene) error {
		var err error
		out, err = fn(s, c.Params("oid"))
		return err
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

func (h *EditorHandler) fail(c fiber.Ctx, err error) error {
	return c.Status(StatusFor(err)).JSON(fiber.Map{"error": err.Error()})
}

// StatusFor maps editor errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUnknownItem):
		return http.StatusNotFound
	case errors.Is(err, models.ErrNotSelectable),
		errors.Is(err, properties.ErrUnsupported):
		return http.StatusConflict
	case errors.Is(err, properties.ErrUnknownAttribute),
		errors.Is(err, service.ErrUnknownPhase),
		errors.Is(err, tools.ErrUnknownTool),
		errors.Is(err, tools.ErrEmptyStroke):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
