package config

import (
	"fmt"
	"os"

	"github.com/fitz/taskflow/internal/models"
	"gopkg.in/yaml.v3"
)

// PaletteFile is the YAML form of a category palette:
//
//	categories:
//	  - name: Work
//	    color: "153"
//	    border: "33"
//	  - name: Uncategorized
//	    color: "252"
//	    border: "245"
type PaletteFile struct {
	Categories []models.CategoryStyle `yaml:"categories"`
}

// LoadPalette returns the built-in palette extended by the YAML file at
// path. An empty path returns the built-in palette. An entry named
// Uncategorized replaces the default style.
func LoadPalette(path string) (*models.Palette, error) {
	palette := models.DefaultPalette()
	if path == "" {
		return palette, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read category palette: %w", err)
	}

	var file PaletteFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse category palette: %w", err)
	}

	for i, style := range file.Categories {
		if style.Color == "" {
			return nil, fmt.Errorf("category palette entry %d (%q) has no color", i, style.Name)
		}
		if style.Border == "" {
			style.Border = style.Color
		}
		palette.Set(style)
	}
	return palette, nil
}
