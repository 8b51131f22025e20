package config

import (
	"encoding/json"
	"fmt"
)

// Editor is the general editor configuration document (config/config.json).
// It is loaded once at startup and treated as read-only afterwards.
type Editor struct {
	ProjectName    string            `json:"projectName"`
	ProjectMeta    string            `json:"projectMeta"`
	DefaultProject string            `json:"defaultProject"`
	PageContainer  string            `json:"pageContainer"`
	AssetPaths     map[string]string `json:"assetPaths"`
	GoogleFonts    []string          `json:"googleFonts"`
	SystemSettings map[string]any    `json:"systemSettings"`
}

// Layers is the element-classification document (config/layers.json).
// The editor keeps it around but does not interpret it yet.
type Layers struct {
	Raw json.RawMessage
}

// ParseEditor decodes a config document.
func ParseEditor(data []byte) (*Editor, error) {
	var cfg Editor
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decoding editor config: %w", err)
	}
	return &cfg, nil
}

// ParseLayers checks that data is JSON and keeps it verbatim.
func ParseLayers(data []byte) (*Layers, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("decoding layers config: invalid JSON")
	}
	return &Layers{Raw: json.RawMessage(data)}, nil
}

// Feature reports whether the named system setting is a true boolean.
func (e *Editor) Feature(name string) bool {
	if e == nil || e.SystemSettings == nil {
		return false
	}
	on, _ := e.SystemSettings[name].(bool)
	return on
}
