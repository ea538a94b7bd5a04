package convert

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ALescoulie/sitegen/internal/content"
	"github.com/ALescoulie/sitegen/internal/logfields"
)

// Rendered pairs a content item's metadata with its converted HTML body
// fragment. Immutable once created.
type Rendered struct {
	Meta content.Metadata
	HTML string
}

// Render reads the item's raw body from sourceDir/<directory>/<file> and
// converts it through conv. A missing body file is ErrSourceNotFound;
// converter failures propagate unwrapped beyond the item context prefix.
func Render(conv Converter, meta content.Metadata, sourceDir string) (Rendered, error) {
	srcPath := filepath.Join(sourceDir, meta.Directory, meta.SourcePath)

	raw, err := os.ReadFile(srcPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Rendered{}, fmt.Errorf("%s %s: %w: %s", meta.Kind, meta.Directory, ErrSourceNotFound, srcPath)
		}
		return Rendered{}, fmt.Errorf("%s %s: read %s: %w", meta.Kind, meta.Directory, srcPath, err)
	}

	html, err := conv.Convert(raw, meta.Format)
	if err != nil {
		return Rendered{}, fmt.Errorf("%s %s: %w", meta.Kind, meta.Directory, err)
	}

	slog.Debug("Converted content body",
		logfields.Kind(string(meta.Kind)),
		logfields.Directory(meta.Directory),
		logfields.Path(srcPath))
	return Rendered{Meta: meta, HTML: html}, nil
}
