package controllers

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/folio/internal/domain/entities"
)

// loadPortfolio reads portfolio data from a YAML or JSON file.
func loadPortfolio(path string) (entities.PortfolioData, error) {
	var data entities.PortfolioData
	if path == "" {
		return data, fmt.Errorf("%w: --data is required", entities.ErrValidation)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return data, fmt.Errorf("failed to read portfolio data %q: %w", path, err)
	}
	// JSON documents are valid YAML
	if err = yaml.Unmarshal(raw, &data); err != nil {
		return data, fmt.Errorf("%w: failed to parse portfolio data %q: %v", entities.ErrValidation, path, err)
	}
	return data, nil
}

// parsePlatformFlag reads the --platform flag, defaulting to GitHub Pages.
func parsePlatformFlag(raw string) (entities.Platform, error) {
	if raw == "" {
		return entities.PlatformPages, nil
	}
	return entities.ParsePlatform(raw)
}
