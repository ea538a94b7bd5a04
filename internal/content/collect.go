package content

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ALescoulie/sitegen/internal/logfields"
	"github.com/ALescoulie/sitegen/internal/util/sets"
)

// Collect scans the immediate subdirectories of sourceDir for descriptor
// files of the given kind and parses each into a Metadata record. Directories
// without a descriptor are skipped; a source tree with no descriptors at all
// yields an empty slice, not an error. The scan does not recurse beyond one
// level and the order of returned items is unspecified.
func Collect(kind Kind, sourceDir string) ([]Metadata, error) {
	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("Content source directory not found", logfields.Kind(string(kind)), logfields.Path(sourceDir))
			return []Metadata{}, nil
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceScanFailed, sourceDir, err)
	}

	items := make([]Metadata, 0, len(entries))
	seen := sets.New[string]()
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		descPath := filepath.Join(sourceDir, entry.Name(), kind.DescriptorName())
		data, err := os.ReadFile(descPath)
		if err != nil {
			if os.IsNotExist(err) {
				slog.Debug("No descriptor in directory", logfields.Kind(string(kind)), logfields.Directory(entry.Name()))
				continue
			}
			return nil, fmt.Errorf("%w: %s: %w", ErrSourceScanFailed, descPath, err)
		}

		meta, err := ParseDescriptor(kind, data)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", kind, entry.Name(), err)
		}

		if seen.Has(meta.Directory) {
			return nil, fmt.Errorf("%w: %s %q declared more than once", ErrDuplicateDirectory, kind, meta.Directory)
		}
		seen.Add(meta.Directory)

		slog.Debug("Collected content item",
			logfields.Kind(string(kind)),
			logfields.Directory(meta.Directory),
			logfields.Title(meta.Title))
		items = append(items, meta)
	}

	slog.Info("Content collected", logfields.Kind(string(kind)), logfields.Count(len(items)))
	return items, nil
}
