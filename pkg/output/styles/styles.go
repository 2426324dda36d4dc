// Package styles defines the visual styling of dedupe's stderr summaries.
//
// All styles use semantic names and adaptive colors that automatically
// adjust to light and dark terminal themes. The definitions live in an
// embedded styles.yaml; a user styles.yaml (see UserStylesPath) may override
// individual colors and styles through LoadStyles.
package styles

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var defaultStyles []byte

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Width      int    `yaml:"width,omitempty"`
	MarginTop  int    `yaml:"marginTop,omitempty"`
}

// Config represents the complete styles configuration
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// StyleRegistry maps semantic names to lipgloss styles
var StyleRegistry map[string]lipgloss.Style

func init() {
	if err := parseStyles(defaultStyles); err != nil {
		panic(fmt.Sprintf("failed to load embedded styles: %v", err))
	}
}

// UserStylesPath returns $XDG_CONFIG_HOME/dedupe/styles.yaml.
func UserStylesPath() string {
	xdg.Reload()
	return filepath.Join(xdg.ConfigHome, "dedupe", "styles.yaml")
}

// LoadStyles overlays the colors and styles defined in a YAML file on the
// embedded ones. Names the file does not mention keep their embedded values.
func LoadStyles(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read styles file %s: %w", path, err)
	}
	return parseStyles(defaultStyles, data)
}

func parseStyles(layers ...[]byte) error {
	merged := Config{
		Colors: make(map[string]ColorDef),
		Styles: make(map[string]StyleDef),
	}
	for _, data := range layers {
		var config Config
		if err := yaml.Unmarshal(data, &config); err != nil {
			return fmt.Errorf("failed to parse styles: %w", err)
		}
		for name, def := range config.Colors {
			merged.Colors[name] = def
		}
		for name, def := range config.Styles {
			merged.Styles[name] = def
		}
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(merged.Colors))
	for name, def := range merged.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	registry := make(map[string]lipgloss.Style, len(merged.Styles))
	for name, def := range merged.Styles {
		registry[name] = buildStyle(def, colors)
	}
	StyleRegistry = registry
	return nil
}

// buildStyle constructs a lipgloss style from a style definition
func buildStyle(def StyleDef, colors map[string]lipgloss.AdaptiveColor) lipgloss.Style {
	style := lipgloss.NewStyle()

	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}
	if def.Foreground != "" {
		if color, ok := colors[def.Foreground]; ok {
			style = style.Foreground(color)
		}
	}
	if def.Width > 0 {
		style = style.Width(def.Width)
	}
	if def.MarginTop > 0 {
		style = style.MarginTop(def.MarginTop)
	}

	return style
}

// GetStyle safely retrieves a style from the registry
func GetStyle(name string) lipgloss.Style {
	if style, ok := StyleRegistry[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}
