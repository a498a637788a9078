package models

import (
	"encoding/json"
	"fmt"
)

// ============================================================
// Scene JSON codec
// ============================================================

const sceneVersion = 1

type sceneDoc struct {
	Version    int               `json:"version"`
	Width      float64           `json:"width"`
	Height     float64           `json:"height"`
	Background Background        `json:"background"`
	Viewport   Viewport          `json:"viewport"`
	Objects    []json.RawMessage `json:"objects"`
}

// Encode serializes the scene. Selection is not part of the snapshot.
func (s *Scene) Encode() ([]byte, error) {
	doc := sceneDoc{
		Version:    sceneVersion,
		Width:      s.Width,
		Height:     s.Height,
		Background: s.Background,
		Viewport:   s.Viewport,
		Objects:    make([]json.RawMessage, 0, len(s.objects)),
	}
	for _, obj := range s.objects {
		raw, err := encodeObject(obj)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", obj.Attrs().ID, err)
		}
		doc.Objects = append(doc.Objects, raw)
	}
	return json.Marshal(doc)
}

// Decode parses a snapshot produced by Encode into a new scene.
func Decode(data []byte) (*Scene, error) {
	var doc sceneDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}

	// Width and height are written for readers only; the canvas is fixed.
	scene := NewScene()
	if doc.Background.Color != "" {
		scene.Background = doc.Background
	}
	if doc.Viewport.Zoom > 0 {
		scene.Viewport = doc.Viewport
		scene.SetZoom(doc.Viewport.Zoom)
	}

	for i, raw := range doc.Objects {
		obj, err := decodeObject(raw)
		if err != nil {
			return nil, fmt.Errorf("decode object %d: %w", i, err)
		}
		if _, err := scene.Add(obj); err != nil {
			return nil, err
		}
	}
	return scene, nil
}

func (s *Scene) MarshalJSON() ([]byte, error) {
	return s.Encode()
}

func (s *Scene) UnmarshalJSON(data []byte) error {
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	*s = *decoded
	return nil
}

func encodeObject(obj Object) (json.RawMessage, error) {
	switch v := obj.(type) {
	case *Rect:
		return json.Marshal(struct {
			Type Kind `json:"type"`
			*Rect
		}{KindRect, v})
	case *Ellipse:
		return json.Marshal(struct {
			Type Kind `json:"type"`
			*Ellipse
		}{KindEllipse, v})
	case *Path:
		return json.Marshal(struct {
			Type Kind `json:"type"`
			*Path
		}{KindPath, v})
	case *Line:
		return json.Marshal(struct {
			Type Kind `json:"type"`
			*Line
		}{KindLine, v})
	case *Text:
		return json.Marshal(struct {
			Type Kind `json:"type"`
			*Text
		}{KindText, v})
	}
	return nil, fmt.Errorf("unknown object type %T", obj)
}

func decodeObject(raw json.RawMessage) (Object, error) {
	var head struct {
		Type Kind `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}

	var obj Object
	switch head.Type {
	case KindRect:
		obj = &Rect{}
	case KindEllipse:
		obj = &Ellipse{}
	case KindPath:
		obj = &Path{}
	case KindLine:
		obj = &Line{}
	case KindText:
		obj = &Text{}
	default:
		return nil, fmt.Errorf("unknown object type %q", head.Type)
	}
	if err := json.Unmarshal(raw, obj); err != nil {
		return nil, err
	}
	return obj, nil
}
