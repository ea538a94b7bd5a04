// Package site determines output paths for built artifacts, writes page
// files, and stages static asset bundles into the output tree.
package site

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ALescoulie/sitegen/internal/content"
)

// ErrUnsafeOutputName indicates a computed output name would escape the
// output root.
var ErrUnsafeOutputName = errors.New("output name escapes output root")

// BuiltPage records a page that has been persisted: its final output path,
// the output directory, and the originating metadata.
type BuiltPage struct {
	Path string
	Dir  string
	Meta content.Metadata
}

// Key returns the page's stable identity (kind plus directory).
func (p BuiltPage) Key() string { return p.Meta.Key() }

// Writer persists composed pages and assets under an output root.
type Writer struct {
	outputRoot string
}

// NewWriter creates a Writer rooted at outputRoot.
func NewWriter(outputRoot string) *Writer {
	return &Writer{outputRoot: outputRoot}
}

// Root returns the output root directory.
func (w *Writer) Root() string { return w.outputRoot }

// Prepare creates the output root if needed. A plain file squatting on the
// path is removed first.
func (w *Writer) Prepare() error {
	if info, err := os.Stat(w.outputRoot); err == nil && !info.IsDir() {
		if err := os.Remove(w.outputRoot); err != nil {
			return fmt.Errorf("remove non-directory output path %s: %w", w.outputRoot, err)
		}
	}
	if err := os.MkdirAll(w.outputRoot, 0o755); err != nil {
		return fmt.Errorf("create output root %s: %w", w.outputRoot, err)
	}
	return nil
}

// Clean removes the output root and everything under it.
func Clean(outputRoot string) error {
	if err := os.RemoveAll(outputRoot); err != nil {
		return fmt.Errorf("clean output root %s: %w", outputRoot, err)
	}
	return nil
}

// WritePage writes a composed content page to
// <root>/<kind dir>/<directory>/<base>.html, creating intermediate
// directories, and returns the recorded BuiltPage.
func (w *Writer) WritePage(meta content.Metadata, page string) (BuiltPage, error) {
	dir := filepath.Join(w.outputRoot, meta.Kind.BuildDir(), meta.Directory)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return BuiltPage{}, fmt.Errorf("%s %s: create output directory: %w", meta.Kind, meta.Directory, err)
	}

	path := filepath.Join(dir, meta.OutputBase())
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		return BuiltPage{}, fmt.Errorf("%s %s: write page: %w", meta.Kind, meta.Directory, err)
	}

	return BuiltPage{Path: path, Dir: dir, Meta: meta}, nil
}

// WriteTopLevel writes a page directly under the output root, e.g.
// blog.html, projects.html, or a tag page. The name must stay within the
// root.
func (w *Writer) WriteTopLevel(name, page string) (string, error) {
	cleaned := filepath.Clean(name)
	if filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") {
		return "", fmt.Errorf("%w: %q", ErrUnsafeOutputName, name)
	}

	path := filepath.Join(w.outputRoot, cleaned)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// StageAssets copies the item's static asset bundle from
// <sourceDir>/<directory>/<static dir> into
// <root>/<kind dir>/<directory>/static, merging into any existing tree with
// overwrite-on-conflict. A metadata record with no static dir is a no-op.
func (w *Writer) StageAssets(meta content.Metadata, sourceDir string) error {
	if meta.StaticDir == "" {
		return nil
	}

	src := filepath.Join(sourceDir, meta.Directory, meta.StaticDir)
	dst := filepath.Join(w.outputRoot, meta.Kind.BuildDir(), meta.Directory, "static")
	if err := CopyTree(src, dst); err != nil {
		return fmt.Errorf("%s %s: stage assets: %w", meta.Kind, meta.Directory, err)
	}
	return nil
}

// CopySiteStatic copies the site-wide static directory into <root>/static.
func (w *Writer) CopySiteStatic(staticDir string) error {
	if _, err := os.Stat(staticDir); os.IsNotExist(err) {
		return nil
	}
	if err := CopyTree(staticDir, filepath.Join(w.outputRoot, "static")); err != nil {
		return fmt.Errorf("copy site static dir: %w", err)
	}
	return nil
}

// CopyTree recursively copies src into dst, creating directories as needed
// and overwriting existing files.
func CopyTree(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if info.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		return os.WriteFile(target, data, info.Mode().Perm())
	})
}
