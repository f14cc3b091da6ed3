// Package templates holds the built-in form template and showcase theme
// presets, embedded as YAML.
package templates

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"trustimonials/internal/formflow"
	"trustimonials/models"
)

var (
	//go:embed default_form.yaml
	defaultFormYAML []byte

	//go:embed themes.yaml
	themesYAML []byte
)

// Theme is one named style preset.
type Theme struct {
	Label string                 `yaml:"label" json:"label"`
	Style map[string]interface{} `yaml:"style" json:"style"`
}

type themeSet struct {
	Default string           `yaml:"default"`
	Themes  map[string]Theme `yaml:"themes"`
}

var (
	themesOnce sync.Once
	themes     map[models.ShowcaseKind]themeSet
	themesErr  error
)

// DefaultForm returns a fresh copy of the default form configuration.
func DefaultForm() (formflow.Config, error) {
	var cfg formflow.Config
	if err := yaml.Unmarshal(defaultFormYAML, &cfg); err != nil {
		return formflow.Config{}, fmt.Errorf("failed to parse default form template: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return formflow.Config{}, err
	}
	return cfg, nil
}

func loadThemes() (map[models.ShowcaseKind]themeSet, error) {
	themesOnce.Do(func() {
		var raw map[models.ShowcaseKind]themeSet
		if err := yaml.Unmarshal(themesYAML, &raw); err != nil {
			themesErr = fmt.Errorf("failed to parse theme presets: %w", err)
			return
		}
		themes = raw
	})
	return themes, themesErr
}

// Themes returns the presets available for a showcase kind.
func Themes(kind models.ShowcaseKind) (map[string]Theme, error) {
	all, err := loadThemes()
	if err != nil {
		return nil, err
	}
	set, ok := all[kind]
	if !ok {
		return nil, fmt.Errorf("no themes for %q", kind)
	}
	return set.Themes, nil
}

// ValidTheme reports whether name is a preset for kind.
func ValidTheme(kind models.ShowcaseKind, name string) bool {
	set, err := Themes(kind)
	if err != nil {
		return false
	}
	_, ok := set[name]
	return ok
}

// DefaultShowcaseConfig returns the config a new wall or widget starts with.
func DefaultShowcaseConfig(kind models.ShowcaseKind) (models.ShowcaseConfig, error) {
	all, err := loadThemes()
	if err != nil {
		return models.ShowcaseConfig{}, err
	}
	set, ok := all[kind]
	if !ok {
		return models.ShowcaseConfig{}, fmt.Errorf("no themes for %q", kind)
	}
	return ShowcaseConfigFor(kind, set.Default)
}

// ShowcaseConfigFor returns the preset style for a theme name.
func ShowcaseConfigFor(kind models.ShowcaseKind, name string) (models.ShowcaseConfig, error) {
	set, err := Themes(kind)
	if err != nil {
		return models.ShowcaseConfig{}, err
	}
	theme, ok := set[name]
	if !ok {
		return models.ShowcaseConfig{}, fmt.Errorf("unknown %s theme %q", kind, name)
	}
	style, err := json.Marshal(theme.Style)
	if err != nil {
		return models.ShowcaseConfig{}, fmt.Errorf("failed to encode theme style: %w", err)
	}
	return models.ShowcaseConfig{Theme: name, Style: style}, nil
}
