// Package config persists user defaults for the render pipeline as a
// JSON file under the platform config directory. A missing file is the
// normal "use defaults" condition, not an error.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/imsel/echotrails/trail"
)

// Settings are the persisted render defaults.
type Settings struct {
	HistoryLength   int    `json:"history_length"`
	BackgroundColor string `json:"background_color"`
	CurrentColor    string `json:"current_color"`
	HistoryColor    string `json:"history_color"`
	Threads         int    `json:"threads"`
	Limit           int    `json:"limit"`
}

// Default returns the out-of-the-box settings.
func Default() Settings {
	return Settings{
		HistoryLength:   5,
		BackgroundColor: "#000000",
		CurrentColor:    "#00ff00",
		HistoryColor:    "#ff7f00",
		Threads:         0,
		Limit:           0,
	}
}

// Path returns the settings file location.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not determine config directory: %w", err)
	}
	return filepath.Join(dir, "echotrails", "settings.json"), nil
}

// Load reads the persisted settings, falling back to defaults when no
// settings file exists yet.
func Load() (Settings, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}

	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("failed to read settings: %w", err)
	}

	settings := Default()
	if err := json.Unmarshal(content, &settings); err != nil {
		return Default(), fmt.Errorf("failed to parse settings: %w", err)
	}
	return settings, nil
}

// Save writes the settings, creating the config directory if needed.
func Save(settings Settings) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	content, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// Validate checks the settings the same way the pipeline will:
// history length at least 1 and all three colors parseable. These are
// configuration errors and abort a run before any work is scheduled.
func (s Settings) Validate() error {
	if s.HistoryLength < 1 {
		return errors.New("history_length must be at least 1")
	}
	if _, err := trail.ParseHexColor(s.BackgroundColor); err != nil {
		return fmt.Errorf("background_color: %w", err)
	}
	if _, err := trail.ParseHexColor(s.CurrentColor); err != nil {
		return fmt.Errorf("current_color: %w", err)
	}
	if _, err := trail.ParseHexColor(s.HistoryColor); err != nil {
		return fmt.Errorf("history_color: %w", err)
	}
	return nil
}
