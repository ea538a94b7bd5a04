// Package convert turns a content item's raw body into an HTML fragment.
package convert

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

var (
	// ErrConversion indicates the converter could not process the input,
	// either because the declared format is unsupported or the markup is
	// malformed.
	ErrConversion = errors.New("document conversion failed")

	// ErrSourceNotFound indicates a content item's body file is absent.
	ErrSourceNotFound = errors.New("content source file not found")
)

// Converter converts raw text in a declared source format into an HTML
// fragment.
type Converter interface {
	Convert(raw []byte, format string) (string, error)
}

// Markdown is a goldmark-backed Converter for markdown sources.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown constructs the markdown converter with GitHub-flavored
// extensions and typographic punctuation. Raw HTML in sources is passed
// through; all content is authored by the site owner.
func NewMarkdown() *Markdown {
	return &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Typographer,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				gmhtml.WithUnsafe(),
			),
		),
	}
}

// Formats accepted by the markdown converter.
func (m *Markdown) supports(format string) bool {
	switch format {
	case "markdown", "md", "gfm":
		return true
	}
	return false
}

// Convert renders raw markdown to an HTML fragment.
func (m *Markdown) Convert(raw []byte, format string) (string, error) {
	if !m.supports(format) {
		return "", fmt.Errorf("%w: unsupported format %q", ErrConversion, format)
	}
	var buf bytes.Buffer
	if err := m.md.Convert(raw, &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrConversion, err)
	}
	return buf.String(), nil
}
