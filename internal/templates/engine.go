// Package templates loads named page templates from a directory and renders
// them with string bindings. Templates use Go text/template syntax and are
// stored as <name>.html.tmpl files.
package templates

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

var (
	// ErrTemplateNotFound indicates a named template is missing from the
	// template directory.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrMissingContext indicates a render variable required by the template
	// was absent from the bindings.
	ErrMissingContext = errors.New("missing template context variable")
)

// Template renders to a string given a mapping of named values.
type Template interface {
	Render(bindings map[string]string) (string, error)
}

// Engine loads named templates.
type Engine interface {
	Load(name string) (Template, error)
}

// DirEngine is an Engine backed by a directory of <name>.html.tmpl files.
// Parsed templates are cached for the lifetime of the engine.
type DirEngine struct {
	dir   string
	cache map[string]*template.Template
}

// NewDirEngine creates an engine rooted at dir.
func NewDirEngine(dir string) *DirEngine {
	return &DirEngine{dir: dir, cache: make(map[string]*template.Template)}
}

// Load parses and caches the named template. Missing files map to
// ErrTemplateNotFound.
func (e *DirEngine) Load(name string) (Template, error) {
	if tpl, ok := e.cache[name]; ok {
		return &dirTemplate{name: name, tpl: tpl}, nil
	}

	path := filepath.Join(e.dir, name+".html.tmpl")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q (%s)", ErrTemplateNotFound, name, path)
		}
		return nil, fmt.Errorf("read template %q: %w", name, err)
	}

	tpl, err := template.New(name).Option("missingkey=error").Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse template %q: %w", name, err)
	}

	e.cache[name] = tpl
	return &dirTemplate{name: name, tpl: tpl}, nil
}

type dirTemplate struct {
	name string
	tpl  *template.Template
}

// Render executes the template against the bindings. A reference to an
// absent binding maps to ErrMissingContext.
func (t *dirTemplate) Render(bindings map[string]string) (string, error) {
	var buf bytes.Buffer
	if err := t.tpl.Execute(&buf, bindings); err != nil {
		if strings.Contains(err.Error(), "map has no entry for key") {
			return "", fmt.Errorf("%w: template %q: %v", ErrMissingContext, t.name, err)
		}
		return "", fmt.Errorf("render template %q: %w", t.name, err)
	}
	return buf.String(), nil
}
