// Package compose combines rendered content fragments with shared page
// chrome (header, navbar) into complete page strings. All compositions
// thread a link-depth prefix so relative links resolve from nested output
// directories.
package compose

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ALescoulie/sitegen/internal/content"
	"github.com/ALescoulie/sitegen/internal/convert"
	"github.com/ALescoulie/sitegen/internal/templates"
)

// ContentDepth is the link depth of single post and project pages, which
// live two directories below the site root.
const ContentDepth = 2

// DepthPrefix returns the relative prefix for links rendered at the given
// depth: "" at the root, "../../" two levels down.
func DepthPrefix(depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat("../", depth)
}

// Composer renders pages through the template engine with shared chrome.
type Composer struct {
	engine   templates.Engine
	siteName string
}

// New creates a Composer using the given engine and site name. The site name
// suffixes page titles.
func New(engine templates.Engine, siteName string) *Composer {
	return &Composer{engine: engine, siteName: siteName}
}

// SiteName returns the configured site name.
func (c *Composer) SiteName() string { return c.siteName }

// Chrome renders the header and navbar fragments for a page with the given
// title at the given link depth.
func (c *Composer) Chrome(title string, depth int) (header, navbar string, err error) {
	headerTpl, err := c.engine.Load("header")
	if err != nil {
		return "", "", err
	}
	header, err = headerTpl.Render(map[string]string{
		"title": title,
		"depth": DepthPrefix(depth),
	})
	if err != nil {
		return "", "", err
	}

	navbarTpl, err := c.engine.Load("navbar")
	if err != nil {
		return "", "", err
	}
	navbar, err = navbarTpl.Render(map[string]string{
		"depth": DepthPrefix(depth),
	})
	if err != nil {
		return "", "", err
	}
	return header, navbar, nil
}

// PostPage composes a complete single-post page from a rendered body.
func (c *Composer) PostPage(r convert.Rendered) (string, error) {
	author, err := content.FormatAuthors(r.Meta.Authors)
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", r.Meta.Kind, r.Meta.Directory, err)
	}

	header, navbar, err := c.Chrome(r.Meta.Title+" - "+c.siteName, ContentDepth)
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", r.Meta.Kind, r.Meta.Directory, err)
	}

	tpl, err := c.engine.Load("post-page")
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", r.Meta.Kind, r.Meta.Directory, err)
	}
	page, err := tpl.Render(map[string]string{
		"header":      header,
		"navbar":      navbar,
		"post_title":  r.Meta.Title,
		"post_author": author,
		"post_date":   r.Meta.Date.Format(),
		"post_html":   r.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", r.Meta.Kind, r.Meta.Directory, err)
	}
	return page, nil
}

// ProjectPage composes a complete single-project page from a rendered body
// and the pre-rendered blocks of the project's associated posts.
func (c *Composer) ProjectPage(r convert.Rendered, postBlocks []string) (string, error) {
	header, navbar, err := c.Chrome(r.Meta.Title+" - "+c.siteName, ContentDepth)
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", r.Meta.Kind, r.Meta.Directory, err)
	}

	tpl, err := c.engine.Load("project-page")
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", r.Meta.Kind, r.Meta.Directory, err)
	}
	page, err := tpl.Render(map[string]string{
		"header":       header,
		"navbar":       navbar,
		"project_name": r.Meta.Title,
		"project_html": r.HTML,
		"posts":        strings.Join(postBlocks, "\n"),
	})
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", r.Meta.Kind, r.Meta.Directory, err)
	}
	return page, nil
}

var pageTitleCaser = cases.Title(language.English)

// StaticPage composes a top-level page authored as a template in the source
// directory. The index page's title is the bare site name; other pages use
// "<Name> - <SiteName>" with the name title-cased.
func (c *Composer) StaticPage(pages templates.Engine, name string) (string, error) {
	title := c.siteName
	if name != "index" {
		title = pageTitleCaser.String(name) + " - " + c.siteName
	}

	header, navbar, err := c.Chrome(title, 0)
	if err != nil {
		return "", fmt.Errorf("page %s: %w", name, err)
	}

	tpl, err := pages.Load(name)
	if err != nil {
		return "", fmt.Errorf("page %s: %w", name, err)
	}
	page, err := tpl.Render(map[string]string{
		"header": header,
		"navbar": navbar,
	})
	if err != nil {
		return "", fmt.Errorf("page %s: %w", name, err)
	}
	return page, nil
}

// DiscoverPages lists the top-level page template names in the source
// directory (the base names of *.html.tmpl files).
func DiscoverPages(srcDir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(srcDir, "*.html.tmpl"))
	if err != nil {
		return nil, fmt.Errorf("scan source pages in %s: %w", srcDir, err)
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if info, err := os.Stat(m); err != nil || info.IsDir() {
			continue
		}
		names = append(names, strings.TrimSuffix(filepath.Base(m), ".html.tmpl"))
	}
	return names, nil
}
