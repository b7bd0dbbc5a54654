package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/myrjola/fitplan/internal/contexthelpers"
	"github.com/myrjola/fitplan/internal/errors"
	"github.com/myrjola/fitplan/internal/i18n"
)

type BaseTemplateData struct {
	Language  i18n.Language
	Languages []i18n.Language
	// HistoryOpen tells the navigation which view toggle to offer.
	HistoryOpen bool
}

func newBaseTemplateData(r *http.Request) BaseTemplateData {
	return BaseTemplateData{
		Language:    contexthelpers.Language(r.Context()),
		Languages:   i18n.SupportedLanguages(),
		HistoryOpen: false,
	}
}

// findModuleDir walks up from the working directory to the directory containing go.mod.
func findModuleDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "get working directory")
	}
	for {
		if _, err = os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.Wrap(os.ErrNotExist, "go.mod not found")
		}
		dir = parent
	}
}

// resolveUIPath returns override when set, otherwise ui/<name> relative to the working directory or the module root.
// The result must be an existing directory.
func resolveUIPath(override, name string) (string, error) {
	dir := override
	if dir == "" {
		dir = filepath.Join("ui", name)
		if _, err := os.Stat(dir); err != nil {
			moduleDir, modErr := findModuleDir()
			if modErr != nil {
				return "", errors.Wrap(modErr, "find module dir")
			}
			dir = filepath.Join(moduleDir, "ui", name)
		}
	}
	stat, err := os.Stat(dir)
	if err != nil {
		return "", errors.Wrap(err, "ui path not found", slog.String("path", dir))
	}
	if !stat.IsDir() {
		return "", errors.New("ui path is not a directory", slog.String("path", dir))
	}
	return dir, nil
}
