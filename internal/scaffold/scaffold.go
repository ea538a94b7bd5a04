// Package scaffold creates fresh content directories from embedded
// descriptor templates.
package scaffold

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ALescoulie/sitegen/internal/content"
	"github.com/ALescoulie/sitegen/internal/logfields"
)

//go:embed templates
var templatesFS embed.FS

// ErrAlreadyExists indicates the target content directory is already present.
var ErrAlreadyExists = errors.New("content directory already exists")

// New creates <sourceDir>/<name>/ with an empty static subdirectory and a
// template descriptor of the given kind. The author fills the descriptor in
// afterwards.
func New(kind content.Kind, sourceDir, name string) error {
	target := filepath.Join(sourceDir, name)
	if _, err := os.Stat(target); err == nil {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, target)
	}

	if err := os.MkdirAll(filepath.Join(target, "static"), 0o755); err != nil {
		return fmt.Errorf("create %s %s: %w", kind, name, err)
	}

	data, err := templatesFS.ReadFile("templates/" + kind.DescriptorName())
	if err != nil {
		return fmt.Errorf("read embedded %s template: %w", kind, err)
	}
	descPath := filepath.Join(target, kind.DescriptorName())
	if err := os.WriteFile(descPath, data, 0o644); err != nil {
		return fmt.Errorf("write descriptor %s: %w", descPath, err)
	}

	slog.Info("Scaffolded content directory",
		logfields.Kind(string(kind)),
		logfields.Directory(name),
		logfields.Path(target))
	return nil
}
