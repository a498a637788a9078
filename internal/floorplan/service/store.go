package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	editor "floorplan-editor/internal/editor/models"
	"floorplan-editor/internal/floorplan/models"
	"floorplan-editor/internal/floorplan/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultKey is the slot the plan list lives in.
const DefaultKey = "floorPlans"

const importedName = "Imported floor plan"

var (
	ErrNotFound     = errors.New("floor plan not found")
	ErrCorruptData  = errors.New("floor plan data is corrupt")
	ErrMalformed    = errors.New("malformed floor plan json")
	ErrNameRequired = errors.New("floor plan name is required")
	// ErrPersistence means the in-memory change was applied but could not
	// be flushed to the slot.
	ErrPersistence = errors.New("floor plan persistence failed")
)

// ============================================================
// Floor Plan Store
// ============================================================

// Store keeps the plan list in memory and flushes all of it to a single
// slot after every mutation.
type Store struct {
	mu     sync.Mutex
	slot   repository.Slot
	key    string
	plans  []models.FloorPlan
	logger *zap.Logger
	now    func() time.Time
}

type Option func(*Store)

// WithClock overrides the time source used for ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore loads the plan list from the slot once. A missing or unreadable
// slot yields an empty store; the failure is only logged.
func NewStore(ctx context.Context, slot repository.Slot, key string, logger *zap.Logger, opts ...Option) *Store {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		slot:   slot,
		key:    key,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.load(ctx)
	return s
}

// Save stores a new plan built from the scene.
func (s *Store) Save(ctx context.Context, scene *editor.Scene, name, description string) (models.FloorPlan, error) {
	if strings.TrimSpace(name) == "" {
		return models.FloorPlan{}, ErrNameRequired
	}
	data, err := scene.Encode()
	if err != nil {
		return models.FloorPlan{}, fmt.Errorf("serialize scene: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	plan := models.FloorPlan{
		ID:          s.generateID(now),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Data:        string(data),
	}
	s.plans = append(s.plans, plan)
	return plan, s.persist(ctx)
}

// Load decodes the stored snapshot into a new scene.
func (s *Store) Load(id string) (*editor.Scene, error) {
	s.mu.Lock()
	plan, ok := s.find(id)
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	scene, err := editor.Decode([]byte(plan.Data))
	if err != nil {
		s.logger.Warn("load floor plan", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	return scene, nil
}

func (s *Store) Get(id string) (models.FloorPlan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.find(id)
}

// List returns the plans in insertion order.
func (s *Store) List() []models.FloorPlan {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.FloorPlan, len(s.plans))
	copy(out, s.plans)
	return out
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	s.plans = append(s.plans[:idx], s.plans[idx+1:]...)
	return true, s.persist(ctx)
}

// Update replaces the snapshot of an existing plan. Name and description
// change only when a non-empty value is supplied.
func (s *Store) Update(ctx context.Context, id string, scene *editor.Scene, name, description string) (bool, error) {
	data, err := scene.Encode()
	if err != nil {
		return false, fmt.Errorf("serialize scene: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	plan := &s.plans[idx]
	plan.Data = string(data)
	plan.UpdatedAt = s.now()
	if name != "" {
		plan.Name = name
	}
	if description != "" {
		plan.Description = description
	}
	return true, s.persist(ctx)
}

// ExportJSON renders the full record, metadata included, for download.
func (s *Store) ExportJSON(id string) (string, bool) {
	s.mu.Lock()
	plan, ok := s.find(id)
	s.mu.Unlock()
	if !ok {
		return "", false
	}

	out, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		s.logger.Error("export floor plan", zap.String("id", id), zap.Error(err))
		return "", false
	}
	return string(out), true
}

type importDoc struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Data        json.RawMessage `json:"data"`
}

// ImportJSON adds a plan from an exported record. The incoming id and
// timestamps are discarded.
func (s *Store) ImportJSON(ctx context.Context, text string) (models.FloorPlan, error) {
	trimmed := bytes.TrimSpace([]byte(text))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return models.FloorPlan{}, ErrMalformed
	}

	var doc importDoc
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		s.logger.Warn("import floor plan", zap.Error(err))
		return models.FloorPlan{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	data, err := importData(doc.Data)
	if err != nil {
		return models.FloorPlan{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	name := doc.Name
	if strings.TrimSpace(name) == "" {
		name = importedName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	plan := models.FloorPlan{
		ID:          s.generateID(now),
		Name:        name,
		Description: doc.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Data:        data,
	}
	s.plans = append(s.plans, plan)
	return plan, s.persist(ctx)
}

// importData accepts the snapshot either as a JSON string (the exported
// form) or as an inline object.
func importData(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	return string(raw), nil
}

// ============================================================
// Internals
// ============================================================

func (s *Store) find(id string) (models.FloorPlan, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return models.FloorPlan{}, false
	}
	return s.plans[idx], true
}

func (s *Store) indexOf(id string) int {
	for i := range s.plans {
		if s.plans[i].ID == id {
			return i
		}
	}
	return -1
}

// generateID is a base36 millisecond timestamp followed by a random suffix.
// A collision is unlikely but not excluded.
func (s *Store) generateID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:11]
	return strconv.FormatInt(now.UnixMilli(), 36) + suffix
}

func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(s.plans)
	if err != nil {
		s.logger.Error("encode floor plans", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := s.slot.Set(ctx, s.key, string(data)); err != nil {
		s.logger.Error("save floor plans", zap.String("key", s.key), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

func (s *Store) load(ctx context.Context) {
	raw, err := s.slot.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, repository.ErrSlotEmpty) {
			s.logger.Error("read floor plans", zap.String("key", s.key), zap.Error(err))
		}
		s.plans = nil
		return
	}

	var plans []models.FloorPlan
	if err := json.Unmarshal([]byte(raw), &plans); err != nil {
		s.logger.Error("decode floor plans", zap.String("key", s.key), zap.Error(err))
		s.plans = nil
		return
	}
	s.plans = plans
	s.logger.Info("floor plans loaded", zap.Int("count", len(plans)))
}
